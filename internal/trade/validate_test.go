package trade

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name      string
		direction Direction
		amount    string
		balance   string
		valid     bool
	}{
		{"buy positive", Buy, "0.5", "0", true},
		{"buy has no balance bound", Buy, "1000000", "0", true},
		{"buy empty", Buy, "", "0", false},
		{"buy zero", Buy, "0", "0", false},
		{"buy garbage", Buy, "abc", "0", false},
		{"sell within balance", Sell, "7500", "15000", true},
		{"sell whole balance", Sell, "15000", "15000", true},
		{"sell above balance", Sell, "15000.1", "15000", false},
		{"sell without balance", Sell, "1", "0", false},
		{"sell negative", Sell, "-1", "15000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ValidateRequest(tt.direction, tt.amount, decimal.RequireFromString(tt.balance))
			assert.Equal(t, tt.valid, v.Valid, v.Reason)
			if !tt.valid {
				assert.NotEmpty(t, v.Reason)
				assert.True(t, errors.Is(v.Err(), ErrInputInvalid))
			} else {
				assert.NoError(t, v.Err())
			}
		})
	}
}

func TestPresets(t *testing.T) {
	p := DefaultPresets()

	amount, ok := p.BuyAmount(0)
	assert.True(t, ok)
	assert.Equal(t, "0.1", amount)
	assert.Equal(t, "1 SOL", p.BuyLabel(2))

	balance := decimal.NewFromInt(15000)
	want := []string{"3750", "7500", "15000"}
	for i, w := range want {
		got, ok := p.SellAmount(i, balance)
		assert.True(t, ok)
		assert.Equal(t, w, got)
	}
	assert.Equal(t, "Max", p.SellLabel(2))
	assert.Equal(t, "25%", p.SellLabel(0))

	_, ok = p.SellAmount(0, decimal.Zero)
	assert.False(t, ok)
	_, ok = p.BuyAmount(7)
	assert.False(t, ok)
}

func TestErrorClassification(t *testing.T) {
	assert.True(t, Retryable(ErrSubmissionTimeout))
	assert.True(t, Retryable(NewSubmissionError(FailureNetwork, errors.New("rpc down"))))
	assert.False(t, Retryable(NewSubmissionError(FailureSlippageExceeded, nil)))
	assert.False(t, Retryable(errors.New("boom")))

	reason, ok := ParseFailureReason("insufficient_funds")
	assert.True(t, ok)
	assert.Equal(t, FailureInsufficientFunds, reason)
	_, ok = ParseFailureReason("meteor")
	assert.False(t, ok)

	inner := errors.New("blockhash not found")
	err := NewSubmissionError(FailureNetwork, inner)
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "network error")
}
