package market

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const dogeMint = "2gMKR43578dM3vD3PNaiRwreKLVQBpFfBgifM9HjvdZT"

type fixedBalance map[string]decimal.Decimal

func (f fixedBalance) Balance(mint string) decimal.Decimal {
	return f[mint]
}

func loadDefault(t *testing.T) *Catalog {
	t.Helper()
	c, err := LoadCatalog("")
	require.NoError(t, err)
	return c
}

func TestDefaultCatalog(t *testing.T) {
	c := loadDefault(t)
	assert.Equal(t, 6, c.Len())

	tok, err := c.Get(context.Background(), dogeMint)
	require.NoError(t, err)
	assert.Equal(t, "DOGEJR", tok.Symbol)
	assert.Equal(t, "DogeCoin Jr", tok.Name)
	assert.True(t, decimal.RequireFromString("0.000123").Equal(tok.Price))
	assert.Equal(t, 2847, tok.Holders)
	assert.False(t, tok.UpdatedAt.IsZero())

	_, err = c.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrTokenNotFound)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Get(ctx, dogeMint)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCatalogRejectsInvalidEntries(t *testing.T) {
	_, err := NewCatalog([]TokenInfo{{Mint: "bad", Symbol: "X", Price: decimal.NewFromInt(1)}})
	assert.Error(t, err)

	_, err = NewCatalog([]TokenInfo{{Mint: dogeMint, Symbol: "X"}})
	assert.Error(t, err, "zero price")

	dup := TokenInfo{Mint: dogeMint, Symbol: "X", Price: decimal.NewFromInt(1)}
	_, err = NewCatalog([]TokenInfo{dup, dup})
	assert.Error(t, err)
}

func TestLoadCatalogFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"mint":"`+dogeMint+`","symbol":"ONE","price":"0.5"}]`), 0o644))

	c, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	_, err = LoadCatalog(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestCatalogQueries(t *testing.T) {
	c := loadDefault(t)

	trending := c.Trending(0)
	require.Len(t, trending, 3)
	assert.Equal(t, "DOGEJR", trending[0].Symbol, "highest volume first")
	assert.Len(t, c.Trending(2), 2)

	fresh := c.New(0)
	require.NotEmpty(t, fresh)
	assert.Equal(t, "WIFHAT", fresh[0].Symbol, "newest first")

	results := c.Search("doge")
	require.Len(t, results, 2)
	assert.Empty(t, c.Search("   "))

	results = c.Search("doges")
	require.Len(t, results, 1)
	assert.Equal(t, "Doge Supreme", results[0].Name)

	results = c.Search(dogeMint[:10])
	require.Len(t, results, 1)
	assert.Equal(t, "DOGEJR", results[0].Symbol)
}

func TestSetPrice(t *testing.T) {
	c := loadDefault(t)
	before, _ := c.Get(context.Background(), dogeMint)

	u, err := c.SetPrice(dogeMint, decimal.RequireFromString("0.000246"))
	require.NoError(t, err)
	assert.True(t, u.Previous.Equal(before.Price))
	assert.True(t, decimal.NewFromInt(100).Equal(u.PercentChange()))

	after, _ := c.Get(context.Background(), dogeMint)
	assert.True(t, before.MarketCap.Mul(decimal.NewFromInt(2)).Equal(after.MarketCap))

	_, err = c.SetPrice(dogeMint, decimal.Zero)
	assert.Error(t, err)
	_, err = c.SetPrice("missing", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestProviderQuoteContext(t *testing.T) {
	c := loadDefault(t)
	p := NewProvider(c, fixedBalance{dogeMint: decimal.NewFromInt(15000)})

	qc, err := p.QuoteContext(context.Background(), dogeMint)
	require.NoError(t, err)
	assert.Equal(t, "DOGEJR", qc.Symbol)
	assert.True(t, decimal.NewFromInt(15000).Equal(qc.UserBalance))
	assert.NoError(t, qc.Validate())

	qc, err = NewProvider(c, nil).QuoteContext(context.Background(), dogeMint)
	require.NoError(t, err)
	assert.True(t, qc.UserBalance.IsZero())
	assert.False(t, qc.HasBalance())

	_, err = p.QuoteContext(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestTickerStepStaysWithinVolatility(t *testing.T) {
	c := loadDefault(t)
	ticker := NewTicker(c, 0, 500, zap.NewNop())

	var got []PriceUpdate
	ticker.Subscribe(func(u PriceUpdate) { got = append(got, u) })

	updates := ticker.Step()
	assert.Len(t, updates, c.Len())
	assert.Equal(t, updates, got)

	for _, u := range updates {
		assert.True(t, u.Price.IsPositive())
		assert.True(t, u.PercentChange().Abs().LessThanOrEqual(decimal.NewFromInt(5)), "%s moved %s%%", u.Symbol, u.PercentChange())
	}
}

func TestTickerRunDisabled(t *testing.T) {
	ticker := NewTicker(loadDefault(t), 0, 100, nil)
	assert.NoError(t, ticker.Run(context.Background()))
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "+156.7%", FormatChange(decimal.RequireFromString("156.7")))
	assert.Equal(t, "-23.4%", FormatChange(decimal.RequireFromString("-23.4")))
	assert.False(t, ChangeUp(decimal.RequireFromString("-0.1")))
	assert.Equal(t, "$2.4M", FormatMillions(decimal.NewFromInt(2_400_000)))
	assert.Equal(t, "$0.9M", FormatMillions(decimal.NewFromInt(890_000)))
	assert.Equal(t, "2,847", FormatCount(2847))
	assert.Equal(t, "50,000.00", FormatAmount(decimal.NewFromInt(50000)))
	assert.Equal(t, "124.5300 SOL", FormatSOL(decimal.RequireFromString("124.53")))
}
