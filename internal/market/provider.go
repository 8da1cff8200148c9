// internal/market/provider.go
package market

import (
	"context"

	"github.com/rovshanmuradov/memeterm/internal/trade"
	"github.com/shopspring/decimal"
)

// BalanceSource reports the user's holding of a token.
type BalanceSource interface {
	Balance(mint string) decimal.Decimal
}

// Provider joins catalog data with the wallet session into quote contexts.
type Provider struct {
	catalog *Catalog
	wallet  BalanceSource
}

// NewProvider creates a provider. wallet may be nil, balances are then zero.
func NewProvider(catalog *Catalog, wallet BalanceSource) *Provider {
	return &Provider{catalog: catalog, wallet: wallet}
}

// Catalog returns the underlying catalog.
func (p *Provider) Catalog() *Catalog {
	return p.catalog
}

// Token returns the full token record.
func (p *Provider) Token(ctx context.Context, mint string) (TokenInfo, error) {
	return p.catalog.Get(ctx, mint)
}

// QuoteContext returns the current price and user balance for mint.
func (p *Provider) QuoteContext(ctx context.Context, mint string) (trade.TokenQuoteContext, error) {
	t, err := p.catalog.Get(ctx, mint)
	if err != nil {
		return trade.TokenQuoteContext{}, err
	}

	balance := decimal.Zero
	if p.wallet != nil {
		balance = p.wallet.Balance(mint)
	}

	return trade.TokenQuoteContext{
		Mint:        t.Mint,
		Symbol:      t.Symbol,
		Price:       t.Price,
		UserBalance: balance,
		UpdatedAt:   t.UpdatedAt,
	}, nil
}
