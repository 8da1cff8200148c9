// =============================================
// File: internal/execution/simulator.go
// =============================================
package execution

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"github.com/rovshanmuradov/memeterm/internal/market"
	"github.com/rovshanmuradov/memeterm/internal/trade"
	"github.com/rovshanmuradov/memeterm/internal/wallet"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const bpsDenominator = 10000

// PriceSource returns the live token record.
type PriceSource interface {
	Get(ctx context.Context, mint string) (market.TokenInfo, error)
}

// Ledger is the wallet side of a fill.
type Ledger interface {
	SOLBalance() (decimal.Decimal, error)
	Balance(mint string) decimal.Decimal
	ApplyFill(f wallet.Fill) error
}

// Config controls the simulated venue.
type Config struct {
	// Delay is the simulated confirmation latency.
	Delay time.Duration
	// PriceRetryMaxElapsed bounds retries of the live price lookup.
	PriceRetryMaxElapsed time.Duration
	// FeeBps is the protocol fee charged on the SOL side.
	FeeBps int
	// FailReason forces every submission to fail with this reason when set.
	FailReason string
}

// Simulator executes orders against the catalog price and the wallet ledger.
// It satisfies trade.Submitter.
type Simulator struct {
	prices PriceSource
	ledger Ledger
	cfg    Config
	forced trade.FailureReason
	logger *zap.Logger

	newID func() string
	now   func() time.Time
}

// NewSimulator validates cfg and creates a simulator.
func NewSimulator(prices PriceSource, ledger Ledger, cfg Config, logger *zap.Logger) (*Simulator, error) {
	if prices == nil || ledger == nil {
		return nil, errors.New("price source and ledger are required")
	}
	if cfg.Delay < 0 {
		return nil, errors.New("delay must not be negative")
	}
	if cfg.FeeBps < 0 || cfg.FeeBps >= bpsDenominator {
		return nil, fmt.Errorf("fee_bps must be in [0, %d)", bpsDenominator)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Simulator{
		prices: prices,
		ledger: ledger,
		cfg:    cfg,
		logger: logger.Named("simulator"),
		newID:  func() string { return uuid.NewString() },
		now:    time.Now,
	}
	if cfg.FailReason != "" {
		reason, ok := trade.ParseFailureReason(cfg.FailReason)
		if !ok {
			return nil, fmt.Errorf("unknown fail_reason %q", cfg.FailReason)
		}
		s.forced = reason
	}
	return s, nil
}

var _ trade.Submitter = (*Simulator)(nil)

// Execute waits for the simulated confirmation, re-checks the price against
// the slippage tolerance and fills the wallet.
func (s *Simulator) Execute(ctx context.Context, order trade.Order) (trade.Receipt, error) {
	s.logger.Debug("Executing order",
		zap.String("direction", order.Direction.String()),
		zap.String("symbol", order.Symbol),
		zap.String("amount", order.Amount.String()),
		zap.Int("slippage_bps", order.SlippageBps))

	if err := s.wait(ctx); err != nil {
		return trade.Receipt{}, err
	}

	if s.forced != "" {
		return trade.Receipt{}, trade.NewSubmissionError(s.forced, errors.New("forced by configuration"))
	}

	solBalance, err := s.ledger.SOLBalance()
	if err != nil {
		return trade.Receipt{}, trade.NewSubmissionError(trade.FailureRejected, err)
	}

	live, err := s.livePrice(ctx, order.Mint)
	if err != nil {
		return trade.Receipt{}, err
	}
	if !live.IsPositive() {
		return trade.Receipt{}, trade.NewSubmissionError(trade.FailureRejected, errors.New("live price is not positive"))
	}

	fill := s.buildFill(order, live)
	if err := checkSlippage(order, fill); err != nil {
		s.logger.Info("Slippage tolerance exceeded",
			zap.String("symbol", order.Symbol),
			zap.String("quoted", order.QuotedPrice.String()),
			zap.String("live", live.String()),
			zap.Int("fee_bps", s.cfg.FeeBps))
		return trade.Receipt{}, err
	}

	if order.Direction == trade.Buy && order.Amount.GreaterThan(solBalance) {
		return trade.Receipt{}, trade.NewSubmissionError(trade.FailureInsufficientFunds,
			fmt.Errorf("need %s SOL, have %s", order.Amount, solBalance))
	}
	if order.Direction == trade.Sell {
		if held := s.ledger.Balance(order.Mint); order.Amount.GreaterThan(held) {
			return trade.Receipt{}, trade.NewSubmissionError(trade.FailureInsufficientFunds,
				fmt.Errorf("need %s %s, have %s", order.Amount, order.Symbol, held))
		}
	}

	// После ApplyFill отмена уже ничего не откатит
	if err := ctx.Err(); err != nil {
		return trade.Receipt{}, err
	}

	if err := s.ledger.ApplyFill(fill.Fill); err != nil {
		return trade.Receipt{}, trade.NewSubmissionError(trade.FailureInsufficientFunds, err)
	}

	receipt := trade.Receipt{
		ID:            fill.ID,
		Direction:     order.Direction,
		Mint:          order.Mint,
		ExecutedPrice: live,
		TokenAmount:   fill.TokenAmount,
		SolAmount:     fill.SolAmount,
		Fee:           fill.fee,
		ExecutedAt:    fill.At,
	}
	s.logger.Info("Order filled",
		zap.String("id", receipt.ID),
		zap.String("direction", order.Direction.String()),
		zap.String("symbol", order.Symbol),
		zap.String("tokens", receipt.TokenAmount.String()),
		zap.String("sol", receipt.SolAmount.String()),
		zap.String("fee", receipt.Fee.String()))
	return receipt, nil
}

func (s *Simulator) wait(ctx context.Context) error {
	if s.cfg.Delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.cfg.Delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// livePrice перечитывает цену с повторами; отсутствие токена не повторяется.
func (s *Simulator) livePrice(ctx context.Context, mint string) (decimal.Decimal, error) {
	op := func() (decimal.Decimal, error) {
		tok, err := s.prices.Get(ctx, mint)
		if err != nil {
			if errors.Is(err, market.ErrTokenNotFound) || ctx.Err() != nil {
				return decimal.Zero, backoff.Permanent(err)
			}
			return decimal.Zero, err
		}
		return tok.Price, nil
	}

	notify := func(err error, d time.Duration) {
		s.logger.Debug("Retrying price lookup", zap.String("mint", mint), zap.Error(err), zap.Duration("backoff", d))
	}

	maxElapsed := s.cfg.PriceRetryMaxElapsed
	if maxElapsed <= 0 {
		maxElapsed = 3 * time.Second
	}
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 50 * time.Millisecond

	price, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(policy),
		backoff.WithMaxElapsedTime(maxElapsed),
		backoff.WithNotify(notify))
	if err != nil {
		if ctx.Err() != nil {
			return decimal.Zero, ctx.Err()
		}
		if errors.Is(err, market.ErrTokenNotFound) {
			return decimal.Zero, trade.NewSubmissionError(trade.FailureRejected, err)
		}
		return decimal.Zero, trade.NewSubmissionError(trade.FailureNetwork, err)
	}
	return price, nil
}

// checkSlippage compares what the wallet actually receives, net of the fee,
// with the slippage-adjusted minimum at the quoted price.
func checkSlippage(order trade.Order, f filled) error {
	quoted, ok := trade.ComputeQuote(order.Direction, order.Amount.String(), order.QuotedPrice)
	if !ok {
		return trade.NewSubmissionError(trade.FailureRejected, errors.New("order cannot be quoted"))
	}

	received := f.TokenAmount
	if order.Direction == trade.Sell {
		received = f.SolAmount
	}
	minOut := trade.MinAmountOut(quoted.EstimatedCounterAmount, order.SlippageBps)
	if received.LessThan(minOut) {
		return trade.NewSubmissionError(trade.FailureSlippageExceeded,
			fmt.Errorf("would receive %s, minimum %s", received.StringFixed(6), minOut.StringFixed(6)))
	}
	return nil
}

type filled struct {
	wallet.Fill
	fee decimal.Decimal
}

// buildFill prices the order at live, charging the fee on the SOL side.
func (s *Simulator) buildFill(order trade.Order, live decimal.Decimal) filled {
	feeRate := decimal.New(int64(s.cfg.FeeBps), -4)
	f := filled{Fill: wallet.Fill{
		ID:     s.newID(),
		Buy:    order.Direction == trade.Buy,
		Mint:   order.Mint,
		Symbol: order.Symbol,
		Price:  live,
		At:     s.now(),
	}}

	switch order.Direction {
	case trade.Buy:
		f.fee = order.Amount.Mul(feeRate).Round(9)
		f.SolAmount = order.Amount
		f.TokenAmount = order.Amount.Sub(f.fee).Div(live).Round(6)
	default:
		gross := order.Amount.Mul(live)
		f.fee = gross.Mul(feeRate).Round(9)
		f.TokenAmount = order.Amount
		f.SolAmount = gross.Sub(f.fee).Round(9)
	}
	return f
}
