// internal/trade/format.go
package trade

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatPrice renders a unit price with 6 decimals.
func FormatPrice(price decimal.Decimal) string {
	return price.StringFixed(6)
}

// FormatEstimate renders the "you get" line of a quote:
// tokens grouped with 2 decimals for Buy, SOL with 4 decimals for Sell.
func FormatEstimate(q Quote, symbol string) string {
	if q.Direction == Sell {
		return q.EstimatedCounterAmount.StringFixed(4) + " SOL"
	}
	return formatTokens(q.EstimatedCounterAmount) + " " + symbol
}

// FormatMinReceived renders the slippage-adjusted minimum of a quote.
func FormatMinReceived(q Quote, symbol string) string {
	if q.Direction == Sell {
		return q.MinReceived.StringFixed(4) + " SOL"
	}
	return formatTokens(q.MinReceived) + " " + symbol
}

func formatTokens(d decimal.Decimal) string {
	f, _ := d.Float64()
	return humanize.FormatFloat("#,###.##", f)
}
