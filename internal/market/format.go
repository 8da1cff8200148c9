// internal/market/format.go
package market

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

var million = decimal.NewFromInt(1_000_000)

// FormatChange renders a 24h change as "+156.7%" / "-23.4%".
func FormatChange(change decimal.Decimal) string {
	s := change.StringFixed(1) + "%"
	if !change.IsNegative() {
		s = "+" + s
	}
	return s
}

// ChangeUp reports whether a change should render in the "up" colour.
func ChangeUp(change decimal.Decimal) bool {
	return !change.IsNegative()
}

// FormatMillions renders volumes and market caps as "$2.4M".
func FormatMillions(v decimal.Decimal) string {
	return "$" + v.Div(million).StringFixed(1) + "M"
}

// FormatCount groups an integer count: 2847 -> "2,847".
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}

// FormatAmount groups a token amount with up to 2 decimals.
func FormatAmount(d decimal.Decimal) string {
	f, _ := d.Float64()
	return humanize.FormatFloat("#,###.##", f)
}

// FormatSOL renders a SOL amount with 4 decimals.
func FormatSOL(d decimal.Decimal) string {
	return d.StringFixed(4) + " SOL"
}

// FormatAge renders a timestamp relative to now ("3 days ago").
func FormatAge(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.Time(t)
}
