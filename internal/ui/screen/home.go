package screen

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/memeterm/internal/market"
	"github.com/rovshanmuradov/memeterm/internal/ui"
	"github.com/rovshanmuradov/memeterm/internal/ui/component"
	"github.com/rovshanmuradov/memeterm/internal/ui/router"
	"github.com/rovshanmuradov/memeterm/internal/ui/style"
	"github.com/shopspring/decimal"
)

// Вкладки главного экрана
const (
	homeTabTrending = iota
	homeTabNew
	homeTabAll
)

var homeTabNames = []string{"Trending", "New Launches", "All Tokens"}

// HomeScreen is the discovery page: market stats and token lists by tab
type HomeScreen struct {
	deps   Deps
	width  int
	height int
	keyMap ui.KeyMap

	helpBar *component.HelpBar
	table   *component.Table

	tab    int
	tokens []market.TokenInfo
}

// NewHomeScreen creates the home screen
func NewHomeScreen(deps Deps) *HomeScreen {
	keyMap := ui.DefaultKeyMap()
	s := &HomeScreen{
		deps:    deps,
		keyMap:  keyMap,
		helpBar: component.NewHelpBar().SetKeyBindings(keyMap.ContextualHelp(ui.RouteHome)),
		table:   component.NewTable().SetColumns(tokenColumns),
	}
	s.reload()
	return s
}

// Init initializes the home screen
func (s *HomeScreen) Init() tea.Cmd {
	s.reload()
	return nil
}

// Update handles screen updates
func (s *HomeScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keyMap.Up):
			s.table.MoveUp()
		case key.Matches(msg, s.keyMap.Down):
			s.table.MoveDown()
		case key.Matches(msg, s.keyMap.Tab):
			s.tab = (s.tab + 1) % len(homeTabNames)
			s.table.SetSelectedRow(0)
			s.reload()
		case key.Matches(msg, s.keyMap.ShiftTab):
			s.tab = (s.tab + len(homeTabNames) - 1) % len(homeTabNames)
			s.table.SetSelectedRow(0)
			s.reload()
		case key.Matches(msg, s.keyMap.Enter):
			if mint := mintAt(s.tokens, s.table.GetSelectedRow()); mint != "" {
				return s, navigate(ui.RouteToken, mint)
			}
		}

	case ui.PriceUpdateMsg:
		s.reload()
	}

	return s, nil
}

func (s *HomeScreen) reload() {
	catalog := s.deps.Provider.Catalog()
	switch s.tab {
	case homeTabTrending:
		s.tokens = catalog.Trending(0)
	case homeTabNew:
		s.tokens = catalog.New(0)
	default:
		s.tokens = catalog.List()
	}
	s.table.SetRows(tokenRows(s.tokens))
}

// View renders the home screen
func (s *HomeScreen) View() string {
	var b strings.Builder

	b.WriteString(s.statsBar())
	b.WriteString("\n")
	b.WriteString(style.TitleStyle.Render("TRIGGER TERMINAL"))
	b.WriteString("\n")
	b.WriteString(style.MutedStyle.Render("Discover trending Solana memecoins and trade them from the terminal."))
	b.WriteString("\n\n")

	var tabs []string
	for i, name := range homeTabNames {
		if i == s.tab {
			tabs = append(tabs, style.ChipActiveStyle.Render(name))
		} else {
			tabs = append(tabs, style.ChipStyle.Render(name))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n")
	b.WriteString(s.table.View())
	b.WriteString("\n")
	b.WriteString(s.helpBar.View())

	return b.String()
}

func (s *HomeScreen) statsBar() string {
	all := s.deps.Provider.Catalog().List()
	mcap, volume := decimal.Zero, decimal.Zero
	for _, t := range all {
		mcap = mcap.Add(t.MarketCap)
		volume = volume.Add(t.Volume24h)
	}

	return lipgloss.JoinHorizontal(lipgloss.Left,
		style.MutedStyle.Render("Total Market Cap: "),
		style.WarningStyle.Render(market.FormatMillions(mcap)),
		"   ",
		style.MutedStyle.Render("24h Volume: "),
		style.InfoStyle.Render(market.FormatMillions(volume)),
		"   ",
		style.MutedStyle.Render("Active Tokens: "),
		style.SuccessStyle.Render(market.FormatCount(len(all))),
	)
}

// SetSize sets the screen dimensions
func (s *HomeScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.table.SetWidth(width)
	s.helpBar.SetWidth(width)
}
