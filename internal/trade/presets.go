// internal/trade/presets.go
package trade

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Presets are the quick-amount buttons of the trade panel.
type Presets struct {
	// Buy amounts in SOL.
	Buy []decimal.Decimal
	// SellPercents of the current balance.
	SellPercents []int
}

// DefaultPresets returns 0.1/0.5/1 SOL and 25/50/100 percent.
func DefaultPresets() Presets {
	return Presets{
		Buy: []decimal.Decimal{
			decimal.RequireFromString("0.1"),
			decimal.RequireFromString("0.5"),
			decimal.NewFromInt(1),
		},
		SellPercents: []int{25, 50, 100},
	}
}

// BuyLabel returns the button label of buy preset i.
func (p Presets) BuyLabel(i int) string {
	return fmt.Sprintf("%s SOL", p.Buy[i].String())
}

// SellLabel returns the button label of sell preset i.
func (p Presets) SellLabel(i int) string {
	if p.SellPercents[i] == 100 {
		return "Max"
	}
	return fmt.Sprintf("%d%%", p.SellPercents[i])
}

// BuyAmount returns the amount text of buy preset i.
func (p Presets) BuyAmount(i int) (string, bool) {
	if i < 0 || i >= len(p.Buy) {
		return "", false
	}
	return p.Buy[i].String(), true
}

// SellAmount returns balance * percent / 100 as amount text, snapshotted
// at call time.
func (p Presets) SellAmount(i int, balance decimal.Decimal) (string, bool) {
	if i < 0 || i >= len(p.SellPercents) || !balance.IsPositive() {
		return "", false
	}
	amount := balance.Mul(decimal.NewFromInt(int64(p.SellPercents[i]))).Div(decimal.NewFromInt(100))
	return amount.String(), true
}
