// internal/app/quote.go
package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/rovshanmuradov/memeterm/internal/market"
	"github.com/rovshanmuradov/memeterm/internal/trade"
)

// QuoteResult is a one-shot quote for the command line
type QuoteResult struct {
	Token       market.TokenInfo
	Quote       trade.Quote
	SlippageBps int
	Validation  trade.Validation
}

// ResolveToken finds a token by mint or by exact symbol
func ResolveToken(ctx context.Context, provider *market.Provider, ref string) (market.TokenInfo, error) {
	ref = strings.TrimSpace(ref)
	if t, err := provider.Token(ctx, ref); err == nil {
		return t, nil
	}
	for _, t := range provider.Catalog().Search(ref) {
		if strings.EqualFold(t.Symbol, ref) {
			return t, nil
		}
	}
	return market.TokenInfo{}, fmt.Errorf("token %q not found", ref)
}

// Quote computes what trading amount of ref would yield at the current price.
// Validation reports whether the connected wallet could submit it.
func Quote(ctx context.Context, provider *market.Provider, direction trade.Direction, ref, amount string, slippageBps int) (QuoteResult, error) {
	if !trade.ValidSlippage(slippageBps) {
		return QuoteResult{}, fmt.Errorf("invalid slippage %d bps", slippageBps)
	}

	token, err := ResolveToken(ctx, provider, ref)
	if err != nil {
		return QuoteResult{}, err
	}
	qc, err := provider.QuoteContext(ctx, token.Mint)
	if err != nil {
		return QuoteResult{}, fmt.Errorf("quote context: %w", err)
	}

	q, ok := trade.ComputeQuote(direction, amount, qc.Price)
	if !ok {
		return QuoteResult{}, fmt.Errorf("%w: amount %q must be a positive number", trade.ErrInputInvalid, amount)
	}

	return QuoteResult{
		Token:       token,
		Quote:       q.WithSlippage(slippageBps),
		SlippageBps: slippageBps,
		Validation:  trade.ValidateRequest(direction, amount, qc.UserBalance),
	}, nil
}

// Lines renders the result the way the trade panel shows it
func (r QuoteResult) Lines() []string {
	lines := []string{
		fmt.Sprintf("%s (%s) %s", r.Token.Name, r.Token.Symbol, r.Token.Mint),
		fmt.Sprintf("Price:          %s SOL", trade.FormatPrice(r.Quote.Price)),
		fmt.Sprintf("You get (est.): %s", trade.FormatEstimate(r.Quote, r.Token.Symbol)),
		fmt.Sprintf("Min received:   %s (slippage %s)", trade.FormatMinReceived(r.Quote, r.Token.Symbol), trade.FormatSlippage(r.SlippageBps)),
	}
	if !r.Validation.Valid {
		lines = append(lines, "Cannot submit: "+r.Validation.Reason)
	}
	return lines
}
