// =================================
// File: internal/config/config.go
// =================================
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/joho/godotenv"
	"github.com/rovshanmuradov/memeterm/internal/trade"
	"github.com/rovshanmuradov/memeterm/internal/wallet"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const (
	// DefaultPath is read when no --config is given; it may be absent.
	DefaultPath = "config.json"
	// EnvPrefix prefixes environment overrides, e.g. MEMETERM_EXECUTION_DELAY_MS.
	EnvPrefix = "MEMETERM"

	DefaultLogFile          = "logs/memeterm.log"
	DefaultSubmitTimeoutMS  = 15000
	DefaultExecutionDelayMS = 2000
	DefaultFeeBps           = 25
	DefaultPriceRetryMS     = 3000
	DefaultTickIntervalMS   = 3000
	DefaultVolatilityBps    = 150
	DefaultWalletAddress    = "DKPZt3G5GWHRAMAYM5EkxMRsgF1rnb3fk9GvhcajKRT1"
	DefaultSOLBalance       = "124.53"
)

// Config holds application settings loaded from config.json.
type Config struct {
	DebugLogging bool            `mapstructure:"debug_logging"`
	Logging      LoggingConfig   `mapstructure:"logging"`
	Trade        TradeConfig     `mapstructure:"trade"`
	Execution    ExecutionConfig `mapstructure:"execution"`
	Market       MarketConfig    `mapstructure:"market"`
	Wallet       WalletConfig    `mapstructure:"wallet"`
}

type LoggingConfig struct {
	File         string `mapstructure:"file"`
	Color        bool   `mapstructure:"color"`
	TradeJournal string `mapstructure:"trade_journal"`
}

type TradeConfig struct {
	SubmitTimeout      time.Duration `mapstructure:"-"`
	SubmitTimeoutMS    int           `mapstructure:"submit_timeout_ms"`
	DefaultSlippageBps int           `mapstructure:"default_slippage_bps"`
}

type ExecutionConfig struct {
	Delay                  time.Duration `mapstructure:"-"`
	DelayMS                int           `mapstructure:"delay_ms"`
	FeeBps                 int           `mapstructure:"fee_bps"`
	PriceRetryMaxElapsed   time.Duration `mapstructure:"-"`
	PriceRetryMaxElapsedMS int           `mapstructure:"price_retry_max_elapsed_ms"`
	FailReason             string        `mapstructure:"fail_reason"`
}

type MarketConfig struct {
	CatalogFile    string        `mapstructure:"catalog_file"`
	TickInterval   time.Duration `mapstructure:"-"`
	TickIntervalMS int           `mapstructure:"tick_interval_ms"`
	VolatilityBps  int           `mapstructure:"volatility_bps"`
}

// HoldingConfig is a starting token position. Amount is a decimal string.
type HoldingConfig struct {
	Mint   string `mapstructure:"mint"`
	Symbol string `mapstructure:"symbol"`
	Amount string `mapstructure:"amount"`
}

type WalletConfig struct {
	Address     string          `mapstructure:"address"`
	AutoConnect bool            `mapstructure:"auto_connect"`
	SOLBalance  string          `mapstructure:"sol_balance"`
	Holdings    []HoldingConfig `mapstructure:"holdings"`
}

// LoadDotEnv loads a .env file into the process environment. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// LoadConfig reads configuration from path and performs validation.
// An empty path reads DefaultPath if it exists and falls back to defaults otherwise.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	file := path
	if file == "" {
		if _, err := os.Stat(DefaultPath); err == nil {
			file = DefaultPath
		}
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config error: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	// Convert ms to Duration
	cfg.Trade.SubmitTimeout = time.Duration(cfg.Trade.SubmitTimeoutMS) * time.Millisecond
	cfg.Execution.Delay = time.Duration(cfg.Execution.DelayMS) * time.Millisecond
	cfg.Execution.PriceRetryMaxElapsed = time.Duration(cfg.Execution.PriceRetryMaxElapsedMS) * time.Millisecond
	cfg.Market.TickInterval = time.Duration(cfg.Market.TickIntervalMS) * time.Millisecond

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("debug_logging", false)
	v.SetDefault("logging.file", DefaultLogFile)
	v.SetDefault("logging.color", false)
	v.SetDefault("logging.trade_journal", "")

	v.SetDefault("trade.submit_timeout_ms", DefaultSubmitTimeoutMS)
	v.SetDefault("trade.default_slippage_bps", trade.DefaultSlippageBps)

	v.SetDefault("execution.delay_ms", DefaultExecutionDelayMS)
	v.SetDefault("execution.fee_bps", DefaultFeeBps)
	v.SetDefault("execution.price_retry_max_elapsed_ms", DefaultPriceRetryMS)
	v.SetDefault("execution.fail_reason", "")

	v.SetDefault("market.catalog_file", "")
	v.SetDefault("market.tick_interval_ms", DefaultTickIntervalMS)
	v.SetDefault("market.volatility_bps", DefaultVolatilityBps)

	v.SetDefault("wallet.address", DefaultWalletAddress)
	v.SetDefault("wallet.auto_connect", true)
	v.SetDefault("wallet.sol_balance", DefaultSOLBalance)
	v.SetDefault("wallet.holdings", []map[string]interface{}{
		{"mint": "2gMKR43578dM3vD3PNaiRwreKLVQBpFfBgifM9HjvdZT", "symbol": "DOGEJR", "amount": "15000"},
		{"mint": "9kQt38amSH7XPG73embSfQMAWSM3TG4JFGKjTwDBWCLx", "symbol": "PEPERKT", "amount": "25000"},
		{"mint": "HfWiGzuALHj6GTXwpdHQtBCfEPoWJEFogDotXptjFhpf", "symbol": "MLAMBO", "amount": "75000"},
	})
}

// validate checks ranges and cross-field constraints.
func (c *Config) validate() error {
	if c.Trade.SubmitTimeout <= 0 {
		return fmt.Errorf("trade.submit_timeout_ms must be positive")
	}
	if !trade.ValidSlippage(c.Trade.DefaultSlippageBps) {
		return fmt.Errorf("trade.default_slippage_bps out of range: %d", c.Trade.DefaultSlippageBps)
	}
	if c.Execution.DelayMS < 0 {
		return fmt.Errorf("execution.delay_ms must not be negative")
	}
	if c.Execution.FeeBps < 0 || c.Execution.FeeBps >= 10000 {
		return fmt.Errorf("execution.fee_bps out of range: %d", c.Execution.FeeBps)
	}
	if c.Execution.FailReason != "" {
		if _, ok := trade.ParseFailureReason(c.Execution.FailReason); !ok {
			return fmt.Errorf("execution.fail_reason %q is not a known failure reason", c.Execution.FailReason)
		}
	}
	if c.Market.TickIntervalMS < 0 {
		return fmt.Errorf("market.tick_interval_ms must not be negative")
	}
	if c.Market.VolatilityBps < 0 || c.Market.VolatilityBps > 5000 {
		return fmt.Errorf("market.volatility_bps out of range: %d", c.Market.VolatilityBps)
	}
	if c.Wallet.AutoConnect {
		if _, err := c.Wallet.ConnectParams(); err != nil {
			return err
		}
	}
	return nil
}

// ConnectParams converts the wallet section into wallet.ConnectParams.
func (w WalletConfig) ConnectParams() (wallet.ConnectParams, error) {
	if _, err := solana.PublicKeyFromBase58(w.Address); err != nil {
		return wallet.ConnectParams{}, fmt.Errorf("wallet.address is not a valid public key: %w", err)
	}
	sol, err := decimal.NewFromString(w.SOLBalance)
	if err != nil || sol.IsNegative() {
		return wallet.ConnectParams{}, fmt.Errorf("wallet.sol_balance %q is invalid", w.SOLBalance)
	}

	params := wallet.ConnectParams{Address: w.Address, SOL: sol}
	for i, h := range w.Holdings {
		amount, err := decimal.NewFromString(h.Amount)
		if err != nil || !amount.IsPositive() {
			return wallet.ConnectParams{}, fmt.Errorf("wallet.holdings[%d].amount %q is invalid", i, h.Amount)
		}
		if _, err := solana.PublicKeyFromBase58(h.Mint); err != nil {
			return wallet.ConnectParams{}, fmt.Errorf("wallet.holdings[%d].mint is not a valid public key: %w", i, err)
		}
		params.Holdings = append(params.Holdings, wallet.Holding{Mint: h.Mint, Symbol: h.Symbol, Amount: amount})
	}
	return params, nil
}
