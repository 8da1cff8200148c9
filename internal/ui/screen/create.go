package screen

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/memeterm/internal/market"
	"github.com/rovshanmuradov/memeterm/internal/notify"
	"github.com/rovshanmuradov/memeterm/internal/ui"
	"github.com/rovshanmuradov/memeterm/internal/ui/component"
	"github.com/rovshanmuradov/memeterm/internal/ui/router"
	"github.com/rovshanmuradov/memeterm/internal/ui/style"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// LaunchCosts are the estimated SOL costs of launching a token
type LaunchCosts struct {
	Creation  decimal.Decimal
	Liquidity decimal.Decimal
}

// Total returns creation plus initial liquidity
func (c LaunchCosts) Total() decimal.Decimal {
	return c.Creation.Add(c.Liquidity)
}

// DefaultLaunchCosts: 0.1 SOL creation fee and 5 SOL initial liquidity
var DefaultLaunchCosts = LaunchCosts{
	Creation:  decimal.RequireFromString("0.1"),
	Liquidity: decimal.NewFromInt(5),
}

// ErrLaunchUnavailable: запуск токена требует бэкенда лаунчпада
var ErrLaunchUnavailable = errors.New("token launch needs the launchpad backend, which is not available in this build")

// CreateScreen is the token launch form
type CreateScreen struct {
	deps   Deps
	width  int
	height int
	keyMap ui.KeyMap

	form    *component.Form
	helpBar *component.HelpBar
	costs   LaunchCosts
}

// NewCreateScreen creates the token launch form
func NewCreateScreen(deps Deps) *CreateScreen {
	keyMap := ui.DefaultKeyMap()

	form := component.NewForm().
		AddField("name", component.FieldTypeText, "Token Name", true, "e.g., DogeCoin Jr", 32).
		AddField("symbol", component.FieldTypeText, "Symbol", true, "e.g., DOGEJR", 10).
		AddField("description", component.FieldTypeText, "Description", false, "Tell the world about your token...", 280).
		AddField("supply", component.FieldTypeNumber, "Total Supply", true, "1000000000", 20).
		AddField("website", component.FieldTypeURL, "Website", false, "https://", 120).
		AddField("twitter", component.FieldTypeURL, "Twitter", false, "https://twitter.com/...", 120).
		AddField("telegram", component.FieldTypeURL, "Telegram", false, "https://t.me/...", 120)

	form.SetFieldValidation("symbol", validateSymbol)
	form.SetFieldValidation("supply", validateSupply)
	for _, name := range []string{"website", "twitter", "telegram"} {
		form.SetFieldValidation(name, validateLink)
	}

	return &CreateScreen{
		deps:    deps,
		keyMap:  keyMap,
		form:    form,
		helpBar: component.NewHelpBar().SetKeyBindings(keyMap.ContextualHelp(ui.RouteCreate)),
		costs:   DefaultLaunchCosts,
	}
}

func validateSymbol(s string) error {
	s = strings.TrimSpace(s)
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return errors.New("symbol must be letters and digits only")
		}
	}
	return nil
}

func validateSupply(s string) error {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || !d.IsPositive() || !d.IsInteger() {
		return errors.New("supply must be a positive whole number")
	}
	return nil
}

func validateLink(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		return errors.New("must be an http(s) URL")
	}
	return nil
}

// Init initializes the create screen
func (s *CreateScreen) Init() tea.Cmd {
	return s.form.Init()
}

// CapturesInput is always true: every key edits the form
func (s *CreateScreen) CapturesInput() bool {
	return true
}

// Form exposes the form for tests
func (s *CreateScreen) Form() *component.Form {
	return s.form
}

// Update handles screen updates
func (s *CreateScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEsc:
			return s, back
		case tea.KeyEnter:
			return s, s.submit()
		}
	}

	var cmd tea.Cmd
	s.form, cmd = s.form.Update(msg)
	if s.form.FocusedField() == "symbol" {
		if v := s.form.GetValue("symbol"); v != strings.ToUpper(v) {
			s.form.SetFieldValue("symbol", strings.ToUpper(v))
		}
	}
	return s, cmd
}

func (s *CreateScreen) submit() tea.Cmd {
	if !s.form.Validate() {
		return nil
	}

	values := s.form.GetValues()
	s.deps.logger().Info("Token launch requested",
		zap.String("name", values["name"]),
		zap.String("symbol", values["symbol"]),
		zap.String("supply", values["supply"]),
		zap.String("estimated_cost_sol", s.costs.Total().String()))

	message := fmt.Sprintf("Cannot launch %s: %v", values["symbol"], ErrLaunchUnavailable)
	return func() tea.Msg {
		return ui.NotificationMsg{Notification: notify.Notification{
			Level:   notify.LevelWarning,
			Message: message,
			At:      time.Now(),
		}}
	}
}

// View renders the create screen
func (s *CreateScreen) View() string {
	formWidth := style.AdaptiveWidth(s.width, 58)

	header := lipgloss.JoinVertical(lipgloss.Left,
		style.TitleStyle.Render("CREATE TOKEN"),
		style.MutedStyle.Render("Launch your own memecoin on Solana. Deploy, trade, and moon."),
	)

	form := style.PanelStyle.Width(formWidth).Render(
		style.SubHeaderStyle.UnsetMargins().Render("Token Details") + "\n" + s.form.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		style.AdaptiveJoinHorizontal(s.width, form, s.viewCosts()),
		s.helpBar.View(),
	)
}

func (s *CreateScreen) viewCosts() string {
	label := style.MutedStyle.Width(20)
	lines := []string{
		style.SubHeaderStyle.UnsetMargins().Render("Estimated Costs"),
		label.Render("Creation Fee") + style.TextStyle.Render(market.FormatSOL(s.costs.Creation)),
		label.Render("Initial Liquidity") + style.TextStyle.Render(market.FormatSOL(s.costs.Liquidity)),
		label.Render("Total") + style.WarningStyle.Render(market.FormatSOL(s.costs.Total())),
	}

	sol, err := s.deps.Wallet.SOLBalance()
	switch {
	case err != nil:
		lines = append(lines, "", style.WarningStyle.Render("Connect a wallet to launch"))
	case sol.LessThan(s.costs.Total()):
		lines = append(lines, "", style.ErrorStyle.Render("Insufficient SOL: "+market.FormatSOL(sol)))
	}
	lines = append(lines, "", style.MutedStyle.Render("Launching needs the launchpad backend."))

	return style.PanelStyle.Render(strings.Join(lines, "\n"))
}

// SetSize sets the screen dimensions
func (s *CreateScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.form.SetWidth(style.AdaptiveWidth(width, 58) - 4)
	s.helpBar.SetWidth(width)
}
