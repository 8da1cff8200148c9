// internal/market/catalog.go
package market

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

//go:embed catalog.json
var defaultCatalog []byte

// ErrTokenNotFound is returned when a mint is not in the catalog.
var ErrTokenNotFound = errors.New("token not found")

// Catalog is the in-memory token store backing every page of the terminal.
type Catalog struct {
	mu     sync.RWMutex
	tokens map[string]*TokenInfo
	order  []string
	now    func() time.Time
}

// LoadCatalog reads the catalog from path, or the built-in one when path is empty.
func LoadCatalog(path string) (*Catalog, error) {
	data := defaultCatalog
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog file: %w", err)
		}
		data = raw
	}

	var tokens []TokenInfo
	if err := json.Unmarshal(data, &tokens); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return NewCatalog(tokens)
}

// NewCatalog validates tokens and builds a catalog preserving their order.
func NewCatalog(tokens []TokenInfo) (*Catalog, error) {
	c := &Catalog{
		tokens: make(map[string]*TokenInfo, len(tokens)),
		now:    time.Now,
	}
	now := c.now()

	for i := range tokens {
		t := tokens[i]
		if err := validateToken(t); err != nil {
			return nil, fmt.Errorf("catalog entry %d: %w", i, err)
		}
		if _, dup := c.tokens[t.Mint]; dup {
			return nil, fmt.Errorf("catalog entry %d: duplicate mint %s", i, t.Mint)
		}
		t.UpdatedAt = now
		c.tokens[t.Mint] = &t
		c.order = append(c.order, t.Mint)
	}
	return c, nil
}

func validateToken(t TokenInfo) error {
	if _, err := solana.PublicKeyFromBase58(t.Mint); err != nil {
		return fmt.Errorf("invalid mint %q: %w", t.Mint, err)
	}
	if strings.TrimSpace(t.Symbol) == "" {
		return errors.New("symbol is empty")
	}
	if !t.Price.IsPositive() {
		return fmt.Errorf("%s: price must be positive", t.Symbol)
	}
	return nil
}

// Get returns the token for mint.
func (c *Catalog) Get(ctx context.Context, mint string) (TokenInfo, error) {
	if err := ctx.Err(); err != nil {
		return TokenInfo{}, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.tokens[mint]
	if !ok {
		return TokenInfo{}, fmt.Errorf("%w: %s", ErrTokenNotFound, mint)
	}
	return *t, nil
}

// List returns every token in catalog order.
func (c *Catalog) List() []TokenInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]TokenInfo, 0, len(c.order))
	for _, mint := range c.order {
		out = append(out, *c.tokens[mint])
	}
	return out
}

// Trending returns up to n trending tokens, highest volume first. n <= 0 means all.
func (c *Catalog) Trending(n int) []TokenInfo {
	out := c.filter(func(t TokenInfo) bool { return t.IsTrending })
	sort.SliceStable(out, func(i, j int) bool { return out[i].Volume24h.GreaterThan(out[j].Volume24h) })
	return limit(out, n)
}

// New returns up to n new tokens, most recently created first. n <= 0 means all.
func (c *Catalog) New(n int) []TokenInfo {
	out := c.filter(func(t TokenInfo) bool { return t.IsNew })
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return limit(out, n)
}

// Search matches query case-insensitively against name, symbol and mint.
// Exact symbol matches come first.
func (c *Catalog) Search(query string) []TokenInfo {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	out := c.filter(func(t TokenInfo) bool {
		return strings.Contains(strings.ToLower(t.Name), q) ||
			strings.Contains(strings.ToLower(t.Symbol), q) ||
			strings.Contains(strings.ToLower(t.Mint), q)
	})
	sort.SliceStable(out, func(i, j int) bool {
		return strings.EqualFold(out[i].Symbol, q) && !strings.EqualFold(out[j].Symbol, q)
	})
	return out
}

// SetPrice writes a new price and scales the market cap with it.
func (c *Catalog) SetPrice(mint string, price decimal.Decimal) (PriceUpdate, error) {
	if !price.IsPositive() {
		return PriceUpdate{}, errors.New("price must be positive")
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	t, ok := c.tokens[mint]
	if !ok {
		return PriceUpdate{}, fmt.Errorf("%w: %s", ErrTokenNotFound, mint)
	}

	prev := t.Price
	t.MarketCap = t.MarketCap.Mul(price).Div(prev).Round(0)
	t.Price = price
	t.UpdatedAt = c.now()

	return PriceUpdate{
		Mint:      t.Mint,
		Symbol:    t.Symbol,
		Price:     price,
		Previous:  prev,
		UpdatedAt: t.UpdatedAt,
	}, nil
}

// Mints returns every mint in catalog order.
func (c *Catalog) Mints() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.order...)
}

// Len returns the number of tokens.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

func (c *Catalog) filter(keep func(TokenInfo) bool) []TokenInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []TokenInfo
	for _, mint := range c.order {
		if t := c.tokens[mint]; keep(*t) {
			out = append(out, *t)
		}
	}
	return out
}

func limit(tokens []TokenInfo, n int) []TokenInfo {
	if n > 0 && len(tokens) > n {
		return tokens[:n]
	}
	return tokens
}
