// internal/trade/engine.go
package trade

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rovshanmuradov/memeterm/internal/notify"
	"go.uber.org/zap"
)

// DefaultSubmitTimeout bounds a single attempt when no timeout is configured.
const DefaultSubmitTimeout = 15 * time.Second

// Submitter executes orders. It stands in for a real execution backend.
type Submitter interface {
	Execute(ctx context.Context, order Order) (Receipt, error)
}

// Notifier receives user-facing messages. Fire-and-forget.
type Notifier interface {
	Notify(level notify.Level, message string)
}

// EngineConfig configures an Engine.
type EngineConfig struct {
	Submitter Submitter
	Notifier  Notifier
	Timeout   time.Duration
	Logger    *zap.Logger
}

// Engine drives the Idle -> Submitting -> Idle submission flow.
// At most one attempt is in flight at a time.
type Engine struct {
	submitter Submitter
	notifier  Notifier
	timeout   time.Duration
	logger    *zap.Logger

	mu     sync.Mutex
	state  State
	cancel context.CancelFunc
}

// NewEngine creates an idle engine.
func NewEngine(cfg EngineConfig) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultSubmitTimeout
	}
	notifier := cfg.Notifier
	if notifier == nil {
		notifier = notify.Discard
	}
	return &Engine{
		submitter: cfg.Submitter,
		notifier:  notifier,
		timeout:   timeout,
		logger:    logger.Named("trade_engine"),
	}
}

// State returns the current state of the engine.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Submit validates req against qc, moves the engine to Submitting and executes
// the order asynchronously. The returned channel yields exactly one Outcome,
// after the engine is back to Idle and the notification has been sent.
func (e *Engine) Submit(ctx context.Context, qc TokenQuoteContext, req Request) (<-chan Outcome, error) {
	if err := qc.Validate(); err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}
	if v := ValidateRequest(req.Direction, req.Amount, qc.UserBalance); !v.Valid {
		return nil, v.Err()
	}

	slippage := req.SlippageBps
	if slippage == 0 {
		slippage = DefaultSlippageBps
	}
	if !ValidSlippage(slippage) {
		return nil, &ValidationError{Reason: fmt.Sprintf("invalid slippage %d bps", slippage)}
	}

	amount, _ := ParseAmount(req.Amount)
	order := Order{
		Direction:   req.Direction,
		Mint:        qc.Mint,
		Symbol:      qc.Symbol,
		Amount:      amount,
		SlippageBps: slippage,
		QuotedPrice: qc.Price,
	}

	e.mu.Lock()
	if e.state != StateIdle {
		e.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	attemptCtx, cancel := context.WithCancel(ctx)
	e.state = StateSubmitting
	e.cancel = cancel
	e.mu.Unlock()

	e.logger.Info("Submitting trade",
		zap.String("direction", order.Direction.String()),
		zap.String("mint", order.Mint),
		zap.String("amount", order.Amount.String()),
		zap.Int("slippage_bps", order.SlippageBps))

	out := make(chan Outcome, 1)
	go func() {
		defer cancel()
		outcome := e.execute(attemptCtx, order)
		outcome.Amount = strings.TrimSpace(req.Amount)
		e.finish(outcome)
		out <- outcome
		close(out)
	}()

	return out, nil
}

// Cancel aborts the in-flight attempt, if any.
func (e *Engine) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancel != nil {
		e.cancel()
	}
}

// cancelGrace is how long a cancelled attempt waits for the submitter's own result.
const cancelGrace = 250 * time.Millisecond

// execute runs the submitter under the engine timeout. The wait is bounded
// even if the submitter ignores its context. A receipt returned after
// cancellation still counts as a fill.
func (e *Engine) execute(ctx context.Context, order Order) Outcome {
	execCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	type result struct {
		receipt Receipt
		err     error
	}
	done := make(chan result, 1)
	go func() {
		receipt, err := e.submitter.Execute(execCtx, order)
		done <- result{receipt: receipt, err: err}
	}()

	var res result
	select {
	case res = <-done:
	case <-execCtx.Done():
		// Сабмиттер мог уже исполнить ордер: даём ему короткое окно вернуть чек
		grace := time.NewTimer(cancelGrace)
		defer grace.Stop()
		select {
		case res = <-done:
		case <-grace.C:
			res = result{err: execCtx.Err()}
		}
	}

	if res.err == nil {
		receipt := res.receipt
		return Outcome{Order: order, Receipt: &receipt}
	}

	return Outcome{Order: order, Err: e.classify(ctx, execCtx, res.err)}
}

func (e *Engine) classify(attemptCtx, execCtx context.Context, err error) error {
	switch {
	case attemptCtx.Err() != nil:
		return fmt.Errorf("%w: %v", ErrSubmissionCancelled, err)
	case errors.Is(execCtx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w after %s", ErrSubmissionTimeout, e.timeout)
	}
	if _, ok := ReasonOf(err); ok {
		return err
	}
	return NewSubmissionError(FailureRejected, err)
}

func (e *Engine) finish(outcome Outcome) {
	e.mu.Lock()
	e.state = StateIdle
	e.cancel = nil
	e.mu.Unlock()

	order := outcome.Order
	if outcome.Success() {
		e.logger.Info("Trade executed",
			zap.String("id", outcome.Receipt.ID),
			zap.String("direction", order.Direction.String()),
			zap.String("mint", order.Mint),
			zap.String("executed_price", outcome.Receipt.ExecutedPrice.String()))
		e.notifier.Notify(notify.LevelSuccess, SuccessMessage(order.Direction, outcome.Amount, order.Symbol))
		return
	}

	e.logger.Warn("Trade failed",
		zap.String("direction", order.Direction.String()),
		zap.String("mint", order.Mint),
		zap.Bool("retryable", Retryable(outcome.Err)),
		zap.Error(outcome.Err))

	level := notify.LevelError
	if errors.Is(outcome.Err, ErrSubmissionCancelled) {
		level = notify.LevelWarning
	}
	e.notifier.Notify(level, FailureMessage(order.Direction, order.Symbol, outcome.Err))
}

// SuccessMessage is the notification text of an executed trade.
func SuccessMessage(direction Direction, amount, symbol string) string {
	if direction == Buy {
		return fmt.Sprintf("Successfully bought %s SOL worth of %s!", amount, symbol)
	}
	return fmt.Sprintf("Successfully sold %s %s!", amount, symbol)
}

// FailureMessage is the notification text of a failed attempt.
func FailureMessage(direction Direction, symbol string, err error) string {
	verb := "Buy"
	if direction == Sell {
		verb = "Sell"
	}
	switch {
	case errors.Is(err, ErrSubmissionCancelled):
		return fmt.Sprintf("%s %s cancelled", verb, symbol)
	case errors.Is(err, ErrSubmissionTimeout):
		return fmt.Sprintf("%s %s timed out, you can retry", verb, symbol)
	}
	if reason, ok := ReasonOf(err); ok {
		return fmt.Sprintf("%s %s failed: %s", verb, symbol, reason.Describe())
	}
	return fmt.Sprintf("%s %s failed: %v", verb, symbol, err)
}
