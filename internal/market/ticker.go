// internal/market/ticker.go
package market

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PriceUpdateCallback is called for every price written by the ticker.
type PriceUpdateCallback func(PriceUpdate)

// Ticker moves catalog prices by a bounded random walk.
// It stands in for a live price feed.
type Ticker struct {
	catalog       *Catalog
	interval      time.Duration
	volatilityBps int
	logger        *zap.Logger

	mu          sync.Mutex
	rnd         *rand.Rand
	subscribers []PriceUpdateCallback
}

// NewTicker creates a ticker. volatilityBps bounds the move per step.
func NewTicker(catalog *Catalog, interval time.Duration, volatilityBps int, logger *zap.Logger) *Ticker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ticker{
		catalog:       catalog,
		interval:      interval,
		volatilityBps: volatilityBps,
		logger:        logger.Named("ticker"),
		rnd:           rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Subscribe registers a callback for price updates.
func (t *Ticker) Subscribe(cb PriceUpdateCallback) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.subscribers = append(t.subscribers, cb)
}

// Run steps prices every interval until ctx is done. A zero interval disables the ticker.
func (t *Ticker) Run(ctx context.Context) error {
	if t.interval <= 0 || t.volatilityBps <= 0 {
		t.logger.Debug("Ticker disabled")
		return nil
	}

	t.logger.Info("Starting price ticker",
		zap.Duration("interval", t.interval),
		zap.Int("volatility_bps", t.volatilityBps))

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			t.Step()
		case <-ctx.Done():
			t.logger.Debug("Ticker stopped")
			return nil
		}
	}
}

// Step moves every price once and notifies subscribers.
func (t *Ticker) Step() []PriceUpdate {
	var updates []PriceUpdate
	for _, mint := range t.catalog.Mints() {
		tok, err := t.catalog.Get(context.Background(), mint)
		if err != nil {
			continue
		}

		next := tok.Price.Mul(decimal.NewFromInt(1).Add(t.move())).Round(12)
		if !next.IsPositive() {
			continue
		}
		u, err := t.catalog.SetPrice(mint, next)
		if err != nil {
			t.logger.Warn("Failed to set price", zap.String("mint", mint), zap.Error(err))
			continue
		}
		updates = append(updates, u)
	}

	t.mu.Lock()
	subs := append([]PriceUpdateCallback(nil), t.subscribers...)
	t.mu.Unlock()

	for _, u := range updates {
		for _, cb := range subs {
			cb(u)
		}
	}
	return updates
}

// move returns a relative change in [-volatility, +volatility].
func (t *Ticker) move() decimal.Decimal {
	t.mu.Lock()
	bps := t.rnd.Intn(2*t.volatilityBps+1) - t.volatilityBps
	t.mu.Unlock()
	return decimal.New(int64(bps), -4)
}
