package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/memeterm/internal/market"
	"github.com/rovshanmuradov/memeterm/internal/ui"
	"github.com/rovshanmuradov/memeterm/internal/ui/component"
	"github.com/rovshanmuradov/memeterm/internal/ui/router"
	"github.com/rovshanmuradov/memeterm/internal/ui/style"
)

// SearchFilter narrows search results
type SearchFilter int

const (
	FilterAll SearchFilter = iota
	FilterTrending
	FilterNew
)

var searchFilterNames = []string{"All", "Trending", "New"}

var searchSuggestions = []string{"DOGEJR", "PEPE", "BONK", "WIF"}

// SearchScreen searches the catalog by name, symbol or mint
type SearchScreen struct {
	deps   Deps
	width  int
	height int
	keyMap ui.KeyMap

	input   textinput.Model
	helpBar *component.HelpBar
	table   *component.Table

	filter   SearchFilter
	query    string
	searched bool
	results  []market.TokenInfo
}

// NewSearchScreen creates the search screen with the query input focused
func NewSearchScreen(deps Deps) *SearchScreen {
	keyMap := ui.DefaultKeyMap()

	input := textinput.New()
	input.Placeholder = "Search tokens, symbols, addresses..."
	input.CharLimit = 64
	input.Width = 50
	input.Focus()

	return &SearchScreen{
		deps:    deps,
		keyMap:  keyMap,
		input:   input,
		helpBar: component.NewHelpBar().SetKeyBindings(keyMap.ContextualHelp(ui.RouteSearch)),
		table:   component.NewTable().SetColumns(tokenColumns).SetEmptyText("No tokens found"),
	}
}

// NewTrendingScreen is the search screen opened on the Trending filter
func NewTrendingScreen(deps Deps) *SearchScreen {
	s := NewSearchScreen(deps)
	s.input.Blur()
	s.helpBar.SetKeyBindings(s.keyMap.ContextualHelp(ui.RouteTrending))
	s.SetFilter(FilterTrending)
	return s
}

// Init initializes the search screen
func (s *SearchScreen) Init() tea.Cmd {
	return textinput.Blink
}

// CapturesInput is true while the query input is focused
func (s *SearchScreen) CapturesInput() bool {
	return s.input.Focused()
}

// Update handles screen updates
func (s *SearchScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if s.input.Focused() {
			return s.updateInput(msg)
		}
		switch {
		case key.Matches(msg, s.keyMap.Search):
			s.input.Focus()
			return s, textinput.Blink
		case key.Matches(msg, s.keyMap.Tab):
			s.SetFilter((s.filter + 1) % SearchFilter(len(searchFilterNames)))
		case key.Matches(msg, s.keyMap.ShiftTab):
			s.SetFilter((s.filter + SearchFilter(len(searchFilterNames)) - 1) % SearchFilter(len(searchFilterNames)))
		case key.Matches(msg, s.keyMap.Up):
			s.table.MoveUp()
		case key.Matches(msg, s.keyMap.Down):
			s.table.MoveDown()
		case key.Matches(msg, s.keyMap.Enter):
			if mint := mintAt(s.results, s.table.GetSelectedRow()); mint != "" {
				return s, navigate(ui.RouteToken, mint)
			}
		}

	case ui.PriceUpdateMsg:
		if s.searched {
			s.run()
		}
	}

	return s, nil
}

func (s *SearchScreen) updateInput(msg tea.KeyMsg) (router.Screen, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		s.Search(s.input.Value())
		if len(s.results) > 0 {
			s.input.Blur()
		}
		return s, nil
	case tea.KeyEsc:
		s.input.Blur()
		return s, nil
	case tea.KeyTab:
		s.SetFilter((s.filter + 1) % SearchFilter(len(searchFilterNames)))
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// Search runs query against the catalog
func (s *SearchScreen) Search(query string) {
	s.query = strings.TrimSpace(query)
	s.searched = s.query != ""
	s.input.SetValue(query)
	s.table.SetSelectedRow(0)
	s.run()
}

// SetFilter switches the quick filter and re-runs the last search
func (s *SearchScreen) SetFilter(f SearchFilter) {
	s.filter = f
	s.table.SetSelectedRow(0)
	s.run()
}

// Results returns the current results
func (s *SearchScreen) Results() []market.TokenInfo {
	return s.results
}

func (s *SearchScreen) run() {
	catalog := s.deps.Provider.Catalog()

	var found []market.TokenInfo
	if s.query != "" {
		found = catalog.Search(s.query)
	} else if s.filter != FilterAll {
		found = catalog.List()
	}

	s.results = s.results[:0]
	for _, t := range found {
		switch {
		case s.filter == FilterTrending && !t.IsTrending:
		case s.filter == FilterNew && !t.IsNew:
		default:
			s.results = append(s.results, t)
		}
	}
	s.table.SetRows(tokenRows(s.results))
}

// View renders the search screen
func (s *SearchScreen) View() string {
	var b strings.Builder

	b.WriteString(style.TitleStyle.Render("TOKEN SEARCH"))
	b.WriteString("\n")
	b.WriteString(style.MutedStyle.Render("Find the next moonshot. Search by name, symbol, or contract address."))
	b.WriteString("\n\n")

	inputStyle := style.PanelStyle
	if s.input.Focused() {
		inputStyle = style.ActivePanelStyle
	}
	b.WriteString(inputStyle.Render(s.input.View()))
	b.WriteString("\n")

	var chips []string
	for i, name := range searchFilterNames {
		if SearchFilter(i) == s.filter {
			chips = append(chips, style.ChipActiveStyle.Render(name))
		} else {
			chips = append(chips, style.ChipStyle.Render(name))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, chips...))
	b.WriteString("\n\n")

	switch {
	case len(s.results) > 0:
		b.WriteString(style.SubHeaderStyle.Render(fmt.Sprintf("Search Results (%d)", len(s.results))))
		b.WriteString("\n")
		b.WriteString(s.table.View())
	case s.searched:
		b.WriteString(style.WarningStyle.Render(fmt.Sprintf("No tokens found for %q", s.query)))
		b.WriteString("\n")
		b.WriteString(style.MutedStyle.Render("Try searching with different keywords or check the spelling. Press t for trending tokens."))
	default:
		b.WriteString(style.MutedStyle.Render("Search for any token by name, symbol, or contract address. Popular: "))
		b.WriteString(style.InfoStyle.Render(strings.Join(searchSuggestions, "  ")))
	}

	b.WriteString("\n")
	b.WriteString(s.helpBar.View())
	return b.String()
}

// SetSize sets the screen dimensions
func (s *SearchScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.table.SetWidth(width)
	s.helpBar.SetWidth(width)
	if width > 20 {
		s.input.Width = min(60, width-10)
	}
}
