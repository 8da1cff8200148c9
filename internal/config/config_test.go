package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, DefaultLogFile, cfg.Logging.File)
	assert.Equal(t, 15*time.Second, cfg.Trade.SubmitTimeout)
	assert.Equal(t, 100, cfg.Trade.DefaultSlippageBps)
	assert.Equal(t, 2*time.Second, cfg.Execution.Delay)
	assert.Equal(t, 25, cfg.Execution.FeeBps)
	assert.Equal(t, 3*time.Second, cfg.Execution.PriceRetryMaxElapsed)
	assert.True(t, cfg.Wallet.AutoConnect)

	params, err := cfg.Wallet.ConnectParams()
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("124.53").Equal(params.SOL))
	require.Len(t, params.Holdings, 3)
	assert.Equal(t, "DOGEJR", params.Holdings[0].Symbol)
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `{
		"debug_logging": true,
		"trade": {"submit_timeout_ms": 5000, "default_slippage_bps": 200},
		"execution": {"delay_ms": 0, "fail_reason": "slippage_exceeded"},
		"market": {"tick_interval_ms": 0},
		"wallet": {"auto_connect": false, "holdings": []}
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.DebugLogging)
	assert.Equal(t, 5*time.Second, cfg.Trade.SubmitTimeout)
	assert.Equal(t, 200, cfg.Trade.DefaultSlippageBps)
	assert.Equal(t, time.Duration(0), cfg.Execution.Delay)
	assert.Equal(t, "slippage_exceeded", cfg.Execution.FailReason)
	assert.Equal(t, time.Duration(0), cfg.Market.TickInterval)
	assert.False(t, cfg.Wallet.AutoConnect)
	assert.Equal(t, 25, cfg.Execution.FeeBps, "unset keys keep defaults")
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("MEMETERM_EXECUTION_FAIL_REASON", "network")
	t.Setenv("MEMETERM_EXECUTION_DELAY_MS", "250")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "network", cfg.Execution.FailReason)
	assert.Equal(t, 250*time.Millisecond, cfg.Execution.Delay)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err, "an explicit path must exist")

	tests := []struct {
		name string
		body string
	}{
		{"bad slippage", `{"trade": {"default_slippage_bps": 10000}}`},
		{"zero timeout", `{"trade": {"submit_timeout_ms": 0}}`},
		{"bad fee", `{"execution": {"fee_bps": -1}}`},
		{"unknown fail reason", `{"execution": {"fail_reason": "meteor"}}`},
		{"bad volatility", `{"market": {"volatility_bps": 9000}}`},
		{"bad wallet address", `{"wallet": {"address": "nope"}}`},
		{"bad holding amount", `{"wallet": {"holdings": [{"mint": "2gMKR43578dM3vD3PNaiRwreKLVQBpFfBgifM9HjvdZT", "amount": "-5"}]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, LoadDotEnv(filepath.Join(dir, ".env")), "missing file is fine")

	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("MEMETERM_TEST_DOTENV=loaded\n"), 0o644))
	t.Setenv("MEMETERM_TEST_DOTENV", "")
	os.Unsetenv("MEMETERM_TEST_DOTENV")

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "loaded", os.Getenv("MEMETERM_TEST_DOTENV"))
}
