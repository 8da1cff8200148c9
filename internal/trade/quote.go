// internal/trade/quote.go
package trade

import (
	"strings"

	"github.com/shopspring/decimal"
)

const bpsDenominator = 10000

// ParseAmount parses user input into a strictly positive finite decimal.
func ParseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsPositive() {
		return decimal.Zero, false
	}
	return d, true
}

// ComputeQuote estimates the counter amount of a trade at price.
// Buy yields amount/price tokens, Sell yields amount*price SOL.
// The second result is false when no quote should be shown.
func ComputeQuote(direction Direction, amount string, price decimal.Decimal) (Quote, bool) {
	parsed, ok := ParseAmount(amount)
	if !ok || !price.IsPositive() {
		return Quote{}, false
	}

	var estimated decimal.Decimal
	switch direction {
	case Buy:
		estimated = parsed.Div(price)
	case Sell:
		estimated = parsed.Mul(price)
	default:
		return Quote{}, false
	}

	return Quote{
		Direction:              direction,
		Amount:                 parsed,
		Price:                  price,
		EstimatedCounterAmount: estimated,
		MinReceived:            estimated,
	}, true
}

// WithSlippage returns a copy of q whose MinReceived honours the tolerance.
func (q Quote) WithSlippage(bps int) Quote {
	q.MinReceived = MinAmountOut(q.EstimatedCounterAmount, bps)
	return q
}

// MinAmountOut reduces expected by a slippage tolerance in basis points.
func MinAmountOut(expected decimal.Decimal, bps int) decimal.Decimal {
	if bps <= 0 {
		return expected
	}
	if bps >= bpsDenominator {
		return decimal.Zero
	}
	multiplier := decimal.NewFromInt(int64(bpsDenominator - bps)).Div(decimal.NewFromInt(bpsDenominator))
	return expected.Mul(multiplier)
}
