// internal/trade/slippage.go
package trade

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultSlippageBps: допуск проскальзывания по умолчанию (1%)
const DefaultSlippageBps = 100

// SlippagePresetsBps: варианты допуска, доступные в панели торговли
var SlippagePresetsBps = []int{50, 100, 200, 500}

// ParseSlippagePercent переводит пользовательский процент ("1.5") в базисные пункты.
// Значение должно быть положительным и меньше 100%.
func ParseSlippagePercent(s string) (int, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	pct, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid slippage %q: %w", s, err)
	}
	bps := pct.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	if bps <= 0 || bps >= bpsDenominator {
		return 0, fmt.Errorf("slippage must be between 0%% and 100%%, got %s%%", s)
	}
	return int(bps), nil
}

// FormatSlippage форматирует базисные пункты как процент ("0.5%", "1%")
func FormatSlippage(bps int) string {
	return decimal.NewFromInt(int64(bps)).Div(decimal.NewFromInt(100)).String() + "%"
}

// ValidSlippage проверяет допуск в базисных пунктах
func ValidSlippage(bps int) bool {
	return bps > 0 && bps < bpsDenominator
}
