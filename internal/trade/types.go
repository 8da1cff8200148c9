// internal/trade/types.go
package trade

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Direction is the side of a trade.
type Direction int

const (
	Buy Direction = iota
	Sell
)

// String returns the lower-case name of the direction
func (d Direction) String() string {
	switch d {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return "unknown"
	}
}

// ParseDirection parses "buy" or "sell" (case-insensitive).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy":
		return Buy, nil
	case "sell":
		return Sell, nil
	default:
		return Buy, errors.New("direction must be buy or sell")
	}
}

// TokenQuoteContext is the token state a quote is computed against.
// Price is denominated in SOL per token.
type TokenQuoteContext struct {
	Mint        string
	Symbol      string
	Price       decimal.Decimal
	UserBalance decimal.Decimal
	UpdatedAt   time.Time
}

// Validate checks the invariants of the quote context.
func (c TokenQuoteContext) Validate() error {
	if strings.TrimSpace(c.Symbol) == "" {
		return errors.New("token symbol is empty")
	}
	if !c.Price.IsPositive() {
		return errors.New("token price must be positive")
	}
	if c.UserBalance.IsNegative() {
		return errors.New("user balance must not be negative")
	}
	return nil
}

// HasBalance reports whether the user holds any of the token.
func (c TokenQuoteContext) HasBalance() bool {
	return c.UserBalance.IsPositive()
}

// Request is a trade as entered by the user. Amount is raw input text:
// SOL for Buy, token units for Sell.
type Request struct {
	Direction   Direction
	Amount      string
	SlippageBps int
}

// Quote is a non-binding estimate of what a trade yields at the current price.
type Quote struct {
	Direction Direction
	Amount    decimal.Decimal
	Price     decimal.Decimal

	// EstimatedCounterAmount is tokens received for Buy, SOL received for Sell.
	EstimatedCounterAmount decimal.Decimal

	// MinReceived is the estimate reduced by the slippage tolerance.
	MinReceived decimal.Decimal
}

// Order is what the engine hands to a Submitter.
type Order struct {
	Direction   Direction
	Mint        string
	Symbol      string
	Amount      decimal.Decimal
	SlippageBps int
	QuotedPrice decimal.Decimal
}

// Receipt describes an executed trade.
type Receipt struct {
	ID            string
	Direction     Direction
	Mint          string
	ExecutedPrice decimal.Decimal
	TokenAmount   decimal.Decimal
	SolAmount     decimal.Decimal
	Fee           decimal.Decimal
	ExecutedAt    time.Time
}

// State of the submission state machine.
type State int

const (
	StateIdle State = iota
	StateSubmitting
)

func (s State) String() string {
	if s == StateSubmitting {
		return "submitting"
	}
	return "idle"
}

// Outcome is the resolution of one submission attempt.
type Outcome struct {
	Order   Order
	Amount  string
	Receipt *Receipt
	Err     error
}

// Success reports whether the attempt executed.
func (o Outcome) Success() bool {
	return o.Err == nil && o.Receipt != nil
}
