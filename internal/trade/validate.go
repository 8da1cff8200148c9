// internal/trade/validate.go
package trade

import (
	"github.com/shopspring/decimal"
)

// Validation is the result of ValidateRequest.
type Validation struct {
	Valid  bool
	Reason string
}

// Err converts a failed validation into a *ValidationError.
func (v Validation) Err() error {
	if v.Valid {
		return nil
	}
	return &ValidationError{Reason: v.Reason}
}

func invalid(reason string) Validation {
	return Validation{Valid: false, Reason: reason}
}

// ValidateRequest decides whether a trade may be submitted.
// Buy has no upper bound here; the execution backend checks SOL funds.
// Sell requires a balance and rejects amounts above it.
func ValidateRequest(direction Direction, amount string, balance decimal.Decimal) Validation {
	parsed, ok := ParseAmount(amount)
	if !ok {
		return invalid("amount must be a positive number")
	}

	switch direction {
	case Buy:
		return Validation{Valid: true}
	case Sell:
		if !balance.IsPositive() {
			return invalid("no balance to sell")
		}
		if parsed.GreaterThan(balance) {
			return invalid("amount exceeds balance")
		}
		return Validation{Valid: true}
	default:
		return invalid("unknown direction")
	}
}
