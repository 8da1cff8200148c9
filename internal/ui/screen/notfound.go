package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rovshanmuradov/memeterm/internal/ui"
	"github.com/rovshanmuradov/memeterm/internal/ui/component"
	"github.com/rovshanmuradov/memeterm/internal/ui/router"
	"github.com/rovshanmuradov/memeterm/internal/ui/style"
)

// NotFoundScreen is shown for unknown paths
type NotFoundScreen struct {
	path    string
	keyMap  ui.KeyMap
	helpBar *component.HelpBar
}

// NewNotFoundScreen creates the 404 screen for path
func NewNotFoundScreen(path string) *NotFoundScreen {
	keyMap := ui.DefaultKeyMap()
	return &NotFoundScreen{
		path:    path,
		keyMap:  keyMap,
		helpBar: component.NewHelpBar().SetKeyBindings(keyMap.ContextualHelp(ui.RouteNotFound)),
	}
}

func (s *NotFoundScreen) Init() tea.Cmd { return nil }

func (s *NotFoundScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, s.keyMap.Enter) {
		return s, navigate(ui.RouteHome, "")
	}
	return s, nil
}

func (s *NotFoundScreen) View() string {
	var b strings.Builder
	b.WriteString(style.TitleStyle.Render("404"))
	b.WriteString("\n")
	b.WriteString(style.TextStyle.Render(fmt.Sprintf("Oops! Page %s not found", s.path)))
	b.WriteString("\n")
	b.WriteString(style.MutedStyle.Render("Press enter to return home."))
	b.WriteString("\n")
	b.WriteString(s.helpBar.View())
	return b.String()
}

func (s *NotFoundScreen) SetSize(width, height int) {
	s.helpBar.SetWidth(width)
}
