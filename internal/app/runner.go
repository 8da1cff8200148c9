// internal/app/runner.go
package app

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rovshanmuradov/memeterm/internal/config"
	"github.com/rovshanmuradov/memeterm/internal/execution"
	"github.com/rovshanmuradov/memeterm/internal/market"
	"github.com/rovshanmuradov/memeterm/internal/notify"
	"github.com/rovshanmuradov/memeterm/internal/trade"
	"github.com/rovshanmuradov/memeterm/internal/ui"
	"github.com/rovshanmuradov/memeterm/internal/ui/screen"
	"github.com/rovshanmuradov/memeterm/internal/wallet"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// busSize is the buffer of the UI event bus
const busSize = 256

// Runner owns the services of one terminal session
type Runner struct {
	logger    *zap.Logger
	config    *config.Config
	catalog   *market.Catalog
	wallet    *wallet.Manager
	provider  *market.Provider
	submitter trade.Submitter
	journal   *execution.Journal
	notifier  notify.Sink
	bus       *ui.EventBus
	ticker    *market.Ticker
}

// NewRunner builds catalog, wallet, simulator and notification fan-out from cfg
func NewRunner(cfg *config.Config, logger *zap.Logger) (*Runner, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	catalog, err := market.LoadCatalog(cfg.Market.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	logger.Info("📋 Catalog loaded", zap.Int("tokens", catalog.Len()))

	wm := wallet.NewManager()
	if cfg.Wallet.AutoConnect {
		params, err := connectParams(cfg.Wallet, catalog)
		if err != nil {
			return nil, err
		}
		session, err := wm.Connect(params)
		if err != nil {
			return nil, fmt.Errorf("connect wallet: %w", err)
		}
		logger.Info("👛 Wallet connected", zap.String("address", session.ShortAddress()))
	}

	r := &Runner{
		logger:   logger,
		config:   cfg,
		catalog:  catalog,
		wallet:   wm,
		provider: market.NewProvider(catalog, wm),
		bus:      ui.NewEventBus(busSize, logger),
	}
	r.notifier = notify.Multi{notify.NewLogSink(logger), notify.NewBusSink(r.bus.PublishNotification)}

	sim, err := execution.NewSimulator(catalog, wm, execution.Config{
		Delay:                cfg.Execution.Delay,
		PriceRetryMaxElapsed: cfg.Execution.PriceRetryMaxElapsed,
		FeeBps:               cfg.Execution.FeeBps,
		FailReason:           cfg.Execution.FailReason,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create simulator: %w", err)
	}
	r.submitter = sim

	if path := cfg.Logging.TradeJournal; path != "" {
		journal, err := execution.OpenJournal(path)
		if err != nil {
			return nil, fmt.Errorf("open trade journal: %w", err)
		}
		r.journal = journal
		r.submitter = execution.WithJournal(sim, journal, logger)
		logger.Info("📒 Trade journal enabled", zap.String("path", path))
	}

	r.ticker = market.NewTicker(catalog, cfg.Market.TickInterval, cfg.Market.VolatilityBps, logger)
	r.ticker.Subscribe(r.bus.PublishPriceUpdate)

	return r, nil
}

// connectParams reads the configured wallet. Holdings without a cost basis
// are valued at the current catalog price.
func connectParams(w config.WalletConfig, catalog *market.Catalog) (wallet.ConnectParams, error) {
	params, err := w.ConnectParams()
	if err != nil {
		return wallet.ConnectParams{}, err
	}
	for i, h := range params.Holdings {
		if !h.CostSOL.IsZero() {
			continue
		}
		if t, err := catalog.Get(context.Background(), h.Mint); err == nil {
			params.Holdings[i].CostSOL = h.Amount.Mul(t.Price)
		}
	}
	return params, nil
}

// Provider returns the token data provider
func (r *Runner) Provider() *market.Provider {
	return r.provider
}

// Wallet returns the wallet manager
func (r *Runner) Wallet() *wallet.Manager {
	return r.wallet
}

// NewEngine creates a submission engine bound to the runner's submitter
func (r *Runner) NewEngine() *trade.Engine {
	return trade.NewEngine(trade.EngineConfig{
		Submitter: r.submitter,
		Notifier:  r.notifier,
		Timeout:   r.config.Trade.SubmitTimeout,
		Logger:    r.logger,
	})
}

// Deps returns the screen dependencies; ctx bounds trade submissions
func (r *Runner) Deps(ctx context.Context) screen.Deps {
	return screen.Deps{
		Ctx:                ctx,
		Provider:           r.provider,
		Wallet:             r.wallet,
		NewEngine:          r.NewEngine,
		Presets:            trade.DefaultPresets(),
		DefaultSlippageBps: r.config.Trade.DefaultSlippageBps,
		Logger:             r.logger,
	}
}

// NewModel creates the root model opened at start
func (r *Runner) NewModel(ctx context.Context, start ui.RouterMsg) *Model {
	return NewModel(ModelConfig{
		Deps: r.Deps(ctx),
		Bus:  r.bus,
		Connect: func() (wallet.ConnectParams, error) {
			return connectParams(r.config.Wallet, r.catalog)
		},
		Start: start,
	})
}

// Run runs the terminal UI and the price ticker until the UI quits or ctx ends
func (r *Runner) Run(ctx context.Context, start ui.RouterMsg, opts ...tea.ProgramOption) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := r.NewModel(runCtx, start)
	defer model.Close()

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(runCtx)}, opts...)
	program := tea.NewProgram(ui.NewSafeModel(model, r.logger), opts...)

	r.logger.Info("🚀 Starting terminal", zap.String("path", start.To.Path(start.Param)))

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		// Выход из UI останавливает остальные горутины
		defer cancel()
		_, err := program.Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		return r.ticker.Run(gctx)
	})
	g.Go(func() error {
		r.bus.LogStats()
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		r.bus.Close()
		return nil
	})

	err := g.Wait()
	r.logger.Info("🛑 Terminal stopped")
	return err
}

// Shutdown releases the trade journal
func (r *Runner) Shutdown() {
	r.logger.Info("👋 Shutting down")

	if r.journal != nil {
		if err := r.journal.Close(); err != nil {
			r.logger.Warn("Trade journal close failed", zap.Error(err))
		}
	}
}
