package screen

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/memeterm/internal/market"
	"github.com/rovshanmuradov/memeterm/internal/trade"
	"github.com/rovshanmuradov/memeterm/internal/ui"
	"github.com/rovshanmuradov/memeterm/internal/ui/component"
	"github.com/rovshanmuradov/memeterm/internal/ui/router"
	"github.com/rovshanmuradov/memeterm/internal/ui/style"
	"github.com/rovshanmuradov/memeterm/internal/wallet"
	"github.com/shopspring/decimal"
)

const (
	profileTabHoldings = iota
	profileTabTrades
)

// ProfileScreen shows the connected wallet: balances, holdings and recent trades
type ProfileScreen struct {
	deps   Deps
	width  int
	height int
	keyMap ui.KeyMap

	helpBar  *component.HelpBar
	holdings *component.Table
	trades   *component.Table

	tab          int
	holdingMints []string
}

// NewProfileScreen creates the profile screen
func NewProfileScreen(deps Deps) *ProfileScreen {
	keyMap := ui.DefaultKeyMap()
	s := &ProfileScreen{
		deps:    deps,
		keyMap:  keyMap,
		helpBar: component.NewHelpBar().SetKeyBindings(keyMap.ContextualHelp(ui.RouteProfile)),
		holdings: component.NewTable().SetColumns([]component.TableColumn{
			{Header: "Token", Width: 10, Align: lipgloss.Left},
			{Header: "Amount", Width: 16, Align: lipgloss.Right},
			{Header: "Value", Width: 16, Align: lipgloss.Right},
			{Header: "Cost", Width: 16, Align: lipgloss.Right},
			{Header: "PnL", Width: 10, Align: lipgloss.Right},
		}).SetEmptyText("No token holdings yet"),
		trades: component.NewTable().SetColumns([]component.TableColumn{
			{Header: "Type", Width: 5, Align: lipgloss.Left},
			{Header: "Token", Width: 10, Align: lipgloss.Left},
			{Header: "Amount", Width: 16, Align: lipgloss.Right},
			{Header: "SOL", Width: 14, Align: lipgloss.Right},
			{Header: "Price", Width: 10, Align: lipgloss.Right},
			{Header: "When", Width: 0, Align: lipgloss.Left},
		}).SetEmptyText("No trades in this session").SetSelectable(false),
	}
	s.reload()
	return s
}

// Init initializes the profile screen
func (s *ProfileScreen) Init() tea.Cmd {
	s.reload()
	return nil
}

// Update handles screen updates
func (s *ProfileScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keyMap.Tab), key.Matches(msg, s.keyMap.ShiftTab):
			s.tab = 1 - s.tab
		case key.Matches(msg, s.keyMap.Up):
			s.holdings.MoveUp()
		case key.Matches(msg, s.keyMap.Down):
			s.holdings.MoveDown()
		case key.Matches(msg, s.keyMap.Enter):
			if s.tab == profileTabHoldings {
				if i := s.holdings.GetSelectedRow(); i < len(s.holdingMints) {
					return s, navigate(ui.RouteToken, s.holdingMints[i])
				}
			}
		}

	case ui.PriceUpdateMsg, ui.WalletChangedMsg:
		s.reload()
	}
	return s, nil
}

// holdingValue returns the SOL value of a holding at the current catalog price
func (s *ProfileScreen) holdingValue(h wallet.Holding) decimal.Decimal {
	t, err := s.deps.Provider.Token(s.deps.context(), h.Mint)
	if err != nil {
		return decimal.Zero
	}
	return h.Amount.Mul(t.Price)
}

func (s *ProfileScreen) reload() {
	session, ok := s.deps.Wallet.Current()
	if !ok {
		s.holdingMints = nil
		s.holdings.SetRows(nil)
		s.trades.SetRows(nil)
		return
	}

	var rows []component.TableRow
	s.holdingMints = s.holdingMints[:0]
	for _, h := range session.Holdings() {
		value := s.holdingValue(h)
		pnl := component.NewPnLGauge(h.CostSOL, value)
		rows = append(rows, component.TableRow{
			Data: []string{
				h.Symbol,
				market.FormatAmount(h.Amount),
				market.FormatSOL(value),
				market.FormatSOL(h.CostSOL),
				pnl.Text(),
			},
			CellStyles: map[int]lipgloss.Style{4: lipgloss.NewStyle().Foreground(pnl.GetColor())},
		})
		s.holdingMints = append(s.holdingMints, h.Mint)
	}
	s.holdings.SetRows(rows)

	var trades []component.TableRow
	for _, t := range session.Trades() {
		side := strings.ToUpper(t.Side)
		trades = append(trades, component.TableRow{
			Data: []string{
				side,
				t.Symbol,
				market.FormatAmount(t.TokenAmount),
				t.SolAmount.StringFixed(4),
				trade.FormatPrice(t.Price),
				market.FormatAge(t.At),
			},
			CellStyles: map[int]lipgloss.Style{0: style.Change(t.Side == "buy")},
		})
	}
	s.trades.SetRows(trades)
}

// View renders the profile screen
func (s *ProfileScreen) View() string {
	var b strings.Builder
	b.WriteString(style.TitleStyle.Render("Portfolio"))
	b.WriteString("\n")

	session, ok := s.deps.Wallet.Current()
	if !ok {
		b.WriteString(style.WarningStyle.Render("No wallet connected. Press w to connect."))
		b.WriteString("\n")
		b.WriteString(s.helpBar.View())
		return b.String()
	}

	b.WriteString(style.MutedStyle.Render("Wallet: " + session.ShortAddress() + "  (" + session.Address().String() + ")"))
	b.WriteString("\n\n")

	total := session.SOL()
	for _, h := range session.Holdings() {
		total = total.Add(s.holdingValue(h))
	}
	cards := []string{
		s.card("SOL Balance", style.WarningStyle.Render(market.FormatSOL(session.SOL()))),
		s.card("Total Value", style.TextStyle.Bold(true).Render(market.FormatSOL(total))),
		s.card("Connected", style.MutedStyle.Render(market.FormatAge(session.ConnectedAt()))),
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	b.WriteString("\n")

	tabs := []string{style.ChipStyle.Render("Holdings"), style.ChipStyle.Render("Recent Trades")}
	tabs[s.tab] = style.ChipActiveStyle.Render([]string{"Holdings", "Recent Trades"}[s.tab])
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n")

	if s.tab == profileTabHoldings {
		b.WriteString(s.holdings.View())
	} else {
		b.WriteString(s.trades.View())
	}
	b.WriteString("\n")
	b.WriteString(s.helpBar.View())
	return b.String()
}

func (s *ProfileScreen) card(title, value string) string {
	return style.PanelStyle.Width(24).Render(style.MutedStyle.Render(title) + "\n" + value)
}

// SetSize sets the screen dimensions
func (s *ProfileScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.holdings.SetWidth(width)
	s.trades.SetWidth(width)
	s.helpBar.SetWidth(width)
}
