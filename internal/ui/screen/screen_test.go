package screen

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rovshanmuradov/memeterm/internal/market"
	"github.com/rovshanmuradov/memeterm/internal/notify"
	"github.com/rovshanmuradov/memeterm/internal/trade"
	"github.com/rovshanmuradov/memeterm/internal/ui"
	"github.com/rovshanmuradov/memeterm/internal/wallet"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	dogeMint    = "2gMKR43578dM3vD3PNaiRwreKLVQBpFfBgifM9HjvdZT"
	lamboMint   = "HfWiGzuALHj6GTXwpdHQtBCfEPoWJEFogDotXptjFhpf"
	testAddress = "DKPZt3G5GWHRAMAYM5EkxMRsgF1rnb3fk9GvhcajKRT1"
)

// gatedSubmitter blocks every order until release is closed or ctx ends.
type gatedSubmitter struct {
	release chan struct{}
}

func (g *gatedSubmitter) Execute(ctx context.Context, order trade.Order) (trade.Receipt, error) {
	select {
	case <-g.release:
		return trade.Receipt{
			ID:            "test-receipt",
			Direction:     order.Direction,
			Mint:          order.Mint,
			ExecutedPrice: order.QuotedPrice,
			ExecutedAt:    time.Now(),
		}, nil
	case <-ctx.Done():
		return trade.Receipt{}, ctx.Err()
	}
}

type fixture struct {
	deps      Deps
	wallet    *wallet.Manager
	catalog   *market.Catalog
	submitter *gatedSubmitter
	recorder  *notify.Recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	catalog, err := market.LoadCatalog("")
	require.NoError(t, err)

	wm := wallet.NewManager()
	_, err = wm.Connect(wallet.ConnectParams{
		Address: testAddress,
		SOL:     decimal.NewFromInt(10),
		Holdings: []wallet.Holding{
			{Mint: dogeMint, Symbol: "DOGEJR", Amount: decimal.NewFromInt(15000), CostSOL: decimal.NewFromInt(1)},
		},
	})
	require.NoError(t, err)

	f := &fixture{
		wallet:    wm,
		catalog:   catalog,
		submitter: &gatedSubmitter{release: make(chan struct{})},
		recorder:  &notify.Recorder{},
	}
	f.deps = Deps{
		Ctx:      context.Background(),
		Provider: market.NewProvider(catalog, wm),
		Wallet:   wm,
		NewEngine: func() *trade.Engine {
			return trade.NewEngine(trade.EngineConfig{
				Submitter: f.submitter,
				Notifier:  f.recorder,
				Timeout:   5 * time.Second,
			})
		},
		Presets:            trade.DefaultPresets(),
		DefaultSlippageBps: trade.DefaultSlippageBps,
	}
	return f
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeKeys(s *TokenScreen, keys ...tea.KeyMsg) {
	for _, k := range keys {
		s.Update(k)
	}
}

func TestTokenScreenQuotesTypedAmount(t *testing.T) {
	f := newFixture(t)
	s := NewTokenScreen(f.deps, dogeMint)
	require.True(t, s.Found())

	typeKeys(s, runes("1"))
	assert.Equal(t, "1", s.Panel().Amount())

	q, ok := s.Panel().Quote()
	require.True(t, ok)
	assert.Equal(t, "8130.08", q.EstimatedCounterAmount.StringFixed(2))
	assert.Contains(t, s.View(), "8,130.08 DOGEJR")

	// Letters are hotkeys, not amount input
	typeKeys(s, runes("a"), runes("."), runes("."), runes("5"))
	assert.Equal(t, "1.5", s.Panel().Amount())

	typeKeys(s, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "1.", s.Panel().Amount())

	typeKeys(s, tea.KeyMsg{Type: tea.KeyCtrlU})
	assert.Equal(t, "", s.Panel().Amount())
}

func TestTokenScreenSellPreset(t *testing.T) {
	f := newFixture(t)
	s := NewTokenScreen(f.deps, dogeMint)

	typeKeys(s, runes("s"), tea.KeyMsg{Type: tea.KeyF2})
	assert.Equal(t, trade.Sell, s.Panel().Direction())
	assert.Equal(t, "7500", s.Panel().Amount())
	assert.Equal(t, "Sell DOGEJR", s.Panel().SubmitLabel())

	typeKeys(s, runes("b"))
	assert.Equal(t, trade.Buy, s.Panel().Direction())
	assert.Equal(t, "", s.Panel().Amount(), "each tab keeps its own amount")
}

func TestTokenScreenSellDisabledWithoutBalance(t *testing.T) {
	f := newFixture(t)
	s := NewTokenScreen(f.deps, lamboMint)

	typeKeys(s, runes("s"))
	assert.Equal(t, trade.Buy, s.Panel().Direction())
	assert.False(t, s.Panel().SellEnabled())
	assert.Contains(t, s.View(), "Sell is disabled")
}

func TestTokenScreenSubmitLifecycle(t *testing.T) {
	f := newFixture(t)
	s := NewTokenScreen(f.deps, dogeMint)

	typeKeys(s, runes("0"), runes("."), runes("5"))
	_, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	assert.Equal(t, "Buying…", s.Panel().SubmitLabel())
	assert.False(t, s.Panel().CanSubmit())

	// A second enter while submitting does nothing
	_, again := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, again)

	close(f.submitter.release)
	msg := cmd()
	outcome, ok := msg.(ui.TradeOutcomeMsg)
	require.True(t, ok)
	require.True(t, outcome.Outcome.Success())

	_, follow := s.Update(outcome)
	require.NotNil(t, follow)
	assert.IsType(t, ui.WalletChangedMsg{}, follow())

	assert.Equal(t, "", s.Panel().Amount())
	assert.Equal(t, "Buy DOGEJR", s.Panel().SubmitLabel())

	n, ok := f.recorder.Last()
	require.True(t, ok)
	assert.Equal(t, notify.LevelSuccess, n.Level)
	assert.Equal(t, "Successfully bought 0.5 SOL worth of DOGEJR!", n.Message)
}

func TestTokenScreenAmountLockedWhileSubmitting(t *testing.T) {
	f := newFixture(t)
	s := NewTokenScreen(f.deps, dogeMint)

	typeKeys(s, runes("1"))
	_, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	typeKeys(s, runes("2"), tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyCtrlU})
	assert.Equal(t, "1", s.Panel().Amount())
	assert.Contains(t, s.View(), "Amount is locked")

	close(f.submitter.release)
	s.Update(cmd())
	assert.Equal(t, "", s.Panel().Amount())

	typeKeys(s, runes("2"))
	assert.Equal(t, "2", s.Panel().Amount())
}

func TestTokenScreenIgnoresOtherScreensOutcomes(t *testing.T) {
	f := newFixture(t)
	a := NewTokenScreen(f.deps, dogeMint)
	b := NewTokenScreen(f.deps, dogeMint)

	typeKeys(a, runes("1"))
	_, cmd := b.Update(ui.TradeOutcomeMsg{
		Source:  a.id,
		Mint:    dogeMint,
		Outcome: trade.Outcome{Order: trade.Order{Direction: trade.Buy}, Receipt: &trade.Receipt{}},
	})
	assert.Nil(t, cmd)
	assert.Equal(t, "1", a.Panel().Amount())
}

func TestTokenScreenCloseCancelsSubmission(t *testing.T) {
	f := newFixture(t)
	s := NewTokenScreen(f.deps, dogeMint)

	typeKeys(s, runes("1"))
	_, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	s.Close()
	msg := cmd().(ui.TradeOutcomeMsg)
	assert.ErrorIs(t, msg.Outcome.Err, trade.ErrSubmissionCancelled)

	n, ok := f.recorder.Last()
	require.True(t, ok)
	assert.Equal(t, notify.LevelWarning, n.Level)
}

func TestTokenScreenSlippage(t *testing.T) {
	f := newFixture(t)
	s := NewTokenScreen(f.deps, dogeMint)
	assert.Equal(t, 100, s.Panel().SlippageBps())

	typeKeys(s, runes("x"))
	assert.Equal(t, 200, s.Panel().SlippageBps())

	typeKeys(s, runes("X"))
	assert.True(t, s.CapturesInput())
	typeKeys(s, runes("1.5"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, s.CapturesInput())
	assert.Equal(t, 150, s.Panel().SlippageBps())

	// Custom values leave the preset cycle at its start
	typeKeys(s, runes("x"))
	assert.Equal(t, 50, s.Panel().SlippageBps())

	typeKeys(s, runes("X"), runes("250"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, s.CapturesInput(), "invalid value keeps the field open")
	typeKeys(s, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, s.CapturesInput())
	assert.Equal(t, 50, s.Panel().SlippageBps())
}

func TestTokenScreenPriceUpdate(t *testing.T) {
	f := newFixture(t)
	s := NewTokenScreen(f.deps, dogeMint)

	update, err := f.catalog.SetPrice(dogeMint, decimal.RequireFromString("0.000246"))
	require.NoError(t, err)
	s.Update(ui.PriceUpdateMsg{Update: update})

	typeKeys(s, runes("1"))
	q, ok := s.Panel().Quote()
	require.True(t, ok)
	assert.Equal(t, "4065.04", q.EstimatedCounterAmount.StringFixed(2))
}

func TestTokenScreenUnknownMint(t *testing.T) {
	f := newFixture(t)
	s := NewTokenScreen(f.deps, "nope")
	assert.False(t, s.Found())
	assert.Contains(t, s.View(), "Token not found")

	_, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, ui.RouterMsg{To: ui.RouteHome}, cmd())
	s.Close()
}

func TestSearchScreen(t *testing.T) {
	f := newFixture(t)
	s := NewSearchScreen(f.deps)
	assert.True(t, s.CapturesInput())

	s.Update(runes("doge"))
	s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Len(t, s.Results(), 2)
	assert.False(t, s.CapturesInput(), "enter with results leaves the input")

	s.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Len(t, s.Results(), 1)
	assert.Equal(t, "DOGEJR", s.Results()[0].Symbol)

	_, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, ui.RouterMsg{To: ui.RouteToken, Param: dogeMint}, cmd())

	s.SetFilter(FilterAll)
	s.Search("zzz")
	assert.Empty(t, s.Results())
	assert.Contains(t, s.View(), "No tokens found")
}

func TestTrendingScreen(t *testing.T) {
	f := newFixture(t)
	s := NewTrendingScreen(f.deps)
	assert.False(t, s.CapturesInput())
	assert.Len(t, s.Results(), len(f.catalog.Trending(0)))
	for _, tok := range s.Results() {
		assert.True(t, tok.IsTrending)
	}
}

func TestHomeScreenOpensSelectedToken(t *testing.T) {
	f := newFixture(t)
	s := NewHomeScreen(f.deps)

	_, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg := cmd().(ui.RouterMsg)
	assert.Equal(t, ui.RouteToken, msg.To)
	assert.Equal(t, f.catalog.Trending(1)[0].Mint, msg.Param)
	assert.Contains(t, s.View(), "Active Tokens")
}

func TestProfileScreen(t *testing.T) {
	f := newFixture(t)
	s := NewProfileScreen(f.deps)
	view := s.View()
	assert.Contains(t, view, "DKPZ...KRT1")
	assert.Contains(t, view, "DOGEJR")

	_, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, ui.RouterMsg{To: ui.RouteToken, Param: dogeMint}, cmd())

	f.wallet.Disconnect()
	s.Update(ui.WalletChangedMsg{})
	assert.Contains(t, s.View(), "No wallet connected")
}

func TestCreateScreen(t *testing.T) {
	f := newFixture(t)
	s := NewCreateScreen(f.deps)
	assert.True(t, s.CapturesInput())

	_, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd, "empty form does not submit")
	assert.Equal(t, "This field is required", s.Form().GetError("name"))

	s.Form().
		SetFieldValue("name", "Moon Cat").
		SetFieldValue("symbol", "MCAT").
		SetFieldValue("supply", "1000000000").
		SetFieldValue("website", "not a url")
	_, cmd = s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, "must be an http(s) URL", s.Form().GetError("website"))

	s.Form().SetFieldValue("website", "https://mooncat.xyz")
	_, cmd = s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	n, ok := cmd().(ui.NotificationMsg)
	require.True(t, ok)
	assert.Equal(t, notify.LevelWarning, n.Notification.Level)
	assert.Contains(t, n.Notification.Message, "MCAT")

	_, cmd = s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, ui.BackMsg{}, cmd())
	assert.Equal(t, "5.1", DefaultLaunchCosts.Total().String())
}

func TestNotFoundScreen(t *testing.T) {
	s := NewNotFoundScreen("/nowhere")
	assert.Contains(t, s.View(), "/nowhere")
	_, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, ui.RouterMsg{To: ui.RouteHome}, cmd())
}
