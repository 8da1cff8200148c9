// internal/market/token.go
package market

import (
	"time"

	"github.com/shopspring/decimal"
)

// Links are the optional social links of a token.
type Links struct {
	Website  string `json:"website,omitempty"`
	Telegram string `json:"telegram,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
}

// TokenInfo is the full record shown on a token page.
// Price is denominated in SOL per token.
type TokenInfo struct {
	Mint        string `json:"mint"`
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Description string `json:"description"`

	Price       decimal.Decimal `json:"price"`
	Change24h   decimal.Decimal `json:"change_24h"`
	Volume24h   decimal.Decimal `json:"volume_24h"`
	MarketCap   decimal.Decimal `json:"market_cap"`
	TotalSupply decimal.Decimal `json:"total_supply"`
	Holders     int             `json:"holders"`

	// BondingCurveProgress is displayed as-is, its meaning is owned by the launchpad.
	BondingCurveProgress decimal.Decimal `json:"bonding_curve_progress"`

	CreatedAt  time.Time `json:"created_at"`
	Links      Links     `json:"links"`
	IsNew      bool      `json:"is_new"`
	IsTrending bool      `json:"is_trending"`

	// UpdatedAt is when the price was last written.
	UpdatedAt time.Time `json:"-"`
}

// PriceUpdate is emitted whenever a token price changes.
type PriceUpdate struct {
	Mint      string
	Symbol    string
	Price     decimal.Decimal
	Previous  decimal.Decimal
	UpdatedAt time.Time
}

// PercentChange returns the change relative to the previous price.
func (u PriceUpdate) PercentChange() decimal.Decimal {
	if !u.Previous.IsPositive() {
		return decimal.Zero
	}
	return u.Price.Sub(u.Previous).Div(u.Previous).Mul(decimal.NewFromInt(100))
}
