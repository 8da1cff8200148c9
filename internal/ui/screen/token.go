package screen

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/memeterm/internal/market"
	"github.com/rovshanmuradov/memeterm/internal/trade"
	"github.com/rovshanmuradov/memeterm/internal/ui"
	"github.com/rovshanmuradov/memeterm/internal/ui/component"
	"github.com/rovshanmuradov/memeterm/internal/ui/router"
	"github.com/rovshanmuradov/memeterm/internal/ui/style"
	"go.uber.org/zap"
)

const maxAmountLen = 24

// TokenScreen shows a token's details and its trade panel
type TokenScreen struct {
	deps   Deps
	id     uint64
	mint   string
	width  int
	height int
	keyMap ui.KeyMap

	helpBar   *component.HelpBar
	sparkline *component.Sparkline
	bonding   *component.ProgressBar

	token   market.TokenInfo
	loadErr error

	panel *trade.Panel
	hint  string

	slippageInput   textinput.Model
	editingSlippage bool
	slippageErr     string
}

// NewTokenScreen creates the page of mint. An unknown mint renders a not-found card.
func NewTokenScreen(deps Deps, mint string) *TokenScreen {
	keyMap := ui.DefaultKeyMap()

	si := textinput.New()
	si.Placeholder = "1.5"
	si.CharLimit = 6
	si.Width = 8

	s := &TokenScreen{
		deps:          deps,
		id:            nextScreenID(),
		mint:          mint,
		keyMap:        keyMap,
		helpBar:       component.NewHelpBar().SetKeyBindings(keyMap.ContextualHelp(ui.RouteToken)),
		sparkline:     component.NewSparkline(40),
		bonding:       component.NewProgressBar(30),
		slippageInput: si,
	}

	token, err := deps.Provider.Token(deps.context(), mint)
	if err != nil {
		s.loadErr = err
		deps.logger().Debug("Token page for unknown mint", zap.String("mint", mint), zap.Error(err))
		return s
	}
	s.token = token
	s.sparkline.AddPrice(token.Price)
	s.bonding.SetPercent(token.BondingCurveProgress)

	qc, err := deps.Provider.QuoteContext(deps.context(), mint)
	if err != nil {
		s.loadErr = err
		return s
	}
	s.panel = trade.NewPanel(deps.NewEngine(), deps.Presets, qc)
	if deps.DefaultSlippageBps > 0 {
		if err := s.panel.SetSlippageBps(deps.DefaultSlippageBps); err != nil {
			deps.logger().Warn("Ignoring default slippage", zap.Error(err))
		}
	}
	return s
}

// Init initializes the token screen
func (s *TokenScreen) Init() tea.Cmd {
	s.refresh()
	return nil
}

// Panel exposes the trade panel state
func (s *TokenScreen) Panel() *trade.Panel {
	return s.panel
}

// Found reports whether the mint resolved to a token
func (s *TokenScreen) Found() bool {
	return s.panel != nil
}

// CapturesInput is true while the custom slippage field is open
func (s *TokenScreen) CapturesInput() bool {
	return s.editingSlippage
}

// Close cancels an in-flight submission when the screen leaves the stack
func (s *TokenScreen) Close() {
	if s.panel != nil {
		s.panel.Close()
	}
}

// Update handles screen updates
func (s *TokenScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	if s.panel == nil {
		if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, s.keyMap.Enter) {
			return s, navigate(ui.RouteHome, "")
		}
		return s, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if s.editingSlippage {
			return s.updateSlippageInput(msg)
		}
		return s.handleKey(msg)

	case ui.TradeOutcomeMsg:
		if msg.Source != s.id {
			return s, nil
		}
		s.panel.Resolve(msg.Outcome)
		s.refresh()
		return s, func() tea.Msg { return ui.WalletChangedMsg{} }

	case ui.PriceUpdateMsg:
		if msg.Update.Mint == s.mint {
			s.sparkline.AddPrice(msg.Update.Price)
			s.refresh()
		}

	case ui.WalletChangedMsg:
		s.refresh()
	}

	return s, nil
}

func (s *TokenScreen) handleKey(msg tea.KeyMsg) (router.Screen, tea.Cmd) {
	s.hint = ""

	switch {
	case key.Matches(msg, s.keyMap.BuyTab):
		s.panel.SetDirection(trade.Buy)
	case key.Matches(msg, s.keyMap.SellTab):
		if !s.panel.SetDirection(trade.Sell) {
			s.hint = "Sell is disabled: you hold no " + s.token.Symbol
		}
	case key.Matches(msg, s.keyMap.Slippage):
		s.cycleSlippage()
	case key.Matches(msg, s.keyMap.CustomSlippage):
		s.editingSlippage = true
		s.slippageErr = ""
		s.slippageInput.SetValue("")
		s.slippageInput.Focus()
		return s, textinput.Blink
	case key.Matches(msg, s.keyMap.Submit):
		return s, s.submit()
	case s.panel.Submitting():
		// Сумма заблокирована до результата, иначе Resolve сотрёт ввод
		s.hint = "Amount is locked until the trade completes"
	case key.Matches(msg, s.keyMap.ClearAmount):
		s.panel.SetAmount("")
	default:
		for i, b := range s.keyMap.Presets() {
			if key.Matches(msg, b) {
				s.panel.ApplyPreset(i)
				return s, nil
			}
		}
		s.editAmount(msg)
	}
	return s, nil
}

// editAmount accepts digits, one decimal point and backspace, so letters stay hotkeys
func (s *TokenScreen) editAmount(msg tea.KeyMsg) {
	amount := s.panel.Amount()
	switch msg.Type {
	case tea.KeyBackspace:
		if amount != "" {
			r := []rune(amount)
			s.panel.SetAmount(string(r[:len(r)-1]))
		}
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if len(amount) >= maxAmountLen {
				break
			}
			switch {
			case r >= '0' && r <= '9':
				amount += string(r)
			case r == '.' && !strings.Contains(amount, "."):
				if amount == "" {
					amount = "0"
				}
				amount += "."
			}
		}
		s.panel.SetAmount(amount)
	}
}

func (s *TokenScreen) updateSlippageInput(msg tea.KeyMsg) (router.Screen, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if err := s.panel.SetCustomSlippage(s.slippageInput.Value()); err != nil {
			s.slippageErr = err.Error()
			return s, nil
		}
		s.closeSlippageInput()
		return s, nil
	case tea.KeyEsc:
		s.closeSlippageInput()
		return s, nil
	}

	var cmd tea.Cmd
	s.slippageInput, cmd = s.slippageInput.Update(msg)
	return s, cmd
}

func (s *TokenScreen) closeSlippageInput() {
	s.editingSlippage = false
	s.slippageErr = ""
	s.slippageInput.Blur()
}

// cycleSlippage steps through the preset tolerances
func (s *TokenScreen) cycleSlippage() {
	presets := trade.SlippagePresetsBps
	next := presets[0]
	if i := slices.Index(presets, s.panel.SlippageBps()); i >= 0 {
		next = presets[(i+1)%len(presets)]
	}
	_ = s.panel.SetSlippageBps(next)
}

func (s *TokenScreen) submit() tea.Cmd {
	if !s.panel.CanSubmit() {
		return nil
	}

	out, err := s.panel.Submit(s.deps.context())
	if err != nil {
		if !errors.Is(err, trade.ErrInputInvalid) {
			s.deps.logger().Warn("Trade submission refused", zap.Error(err))
		}
		s.hint = err.Error()
		return nil
	}

	id, mint := s.id, s.mint
	return func() tea.Msg {
		return ui.TradeOutcomeMsg{Source: id, Mint: mint, Outcome: <-out}
	}
}

// refresh re-reads the token and the quote context
func (s *TokenScreen) refresh() {
	if s.panel == nil {
		return
	}
	ctx := s.deps.context()
	if token, err := s.deps.Provider.Token(ctx, s.mint); err == nil {
		s.token = token
		s.bonding.SetPercent(token.BondingCurveProgress)
	}
	qc, err := s.deps.Provider.QuoteContext(ctx, s.mint)
	if err != nil {
		s.deps.logger().Warn("Quote context refresh failed", zap.String("mint", s.mint), zap.Error(err))
		return
	}
	s.panel.Refresh(qc)
}

// View renders the token screen
func (s *TokenScreen) View() string {
	if s.panel == nil {
		return s.viewNotFound()
	}

	infoWidth := style.AdaptiveWidth(s.width, 58)
	tradeWidth := style.AdaptiveWidth(s.width, 38)

	left := lipgloss.JoinVertical(lipgloss.Left,
		style.PanelStyle.Width(infoWidth).Render(s.viewInfo()),
		style.PanelStyle.Width(infoWidth).Render(s.viewStats()),
	)
	if holdings := s.viewHoldings(); holdings != "" {
		left = lipgloss.JoinVertical(lipgloss.Left, left, style.PanelStyle.Width(infoWidth).Render(holdings))
	}
	right := style.ActivePanelStyle.Width(tradeWidth).Render(s.viewTrade())

	return lipgloss.JoinVertical(lipgloss.Left,
		style.AdaptiveJoinHorizontal(s.width, left, right),
		s.helpBar.View(),
	)
}

func (s *TokenScreen) viewNotFound() string {
	var b strings.Builder
	b.WriteString(style.TitleStyle.Render("Token not found"))
	b.WriteString("\n")
	b.WriteString(style.MutedStyle.Render(fmt.Sprintf("No token with mint %q is listed.", s.mint)))
	b.WriteString("\n")
	b.WriteString(s.helpBar.ViewContextual([]key.Binding{s.keyMap.Enter, s.keyMap.Back}))
	return b.String()
}

func (s *TokenScreen) viewInfo() string {
	t := s.token
	var b strings.Builder

	badges := []string{style.TitleStyle.UnsetMargins().Render(t.Name), style.ChipActiveStyle.Render("$" + t.Symbol)}
	if s.panel.SellEnabled() {
		badges = append(badges, style.BadgeNewStyle.Background(style.DefaultPalette().Success).Render("OWNED"))
	}
	if t.IsNew {
		badges = append(badges, style.BadgeNewStyle.Render("NEW"))
	}
	if t.IsTrending {
		badges = append(badges, style.BadgeTrendingStyle.Render("TRENDING"))
	}
	b.WriteString(strings.Join(badges, " "))
	b.WriteString("\n")
	if t.Description != "" {
		b.WriteString(style.MutedStyle.Render(t.Description))
		b.WriteString("\n")
	}
	b.WriteString(style.MutedStyle.Render(fmt.Sprintf("Created %s  •  %s", t.CreatedAt.Format("2006-01-02"), t.Mint)))

	var links []string
	if t.Links.Website != "" {
		links = append(links, "Website: "+t.Links.Website)
	}
	if t.Links.Telegram != "" {
		links = append(links, "Telegram: "+t.Links.Telegram)
	}
	if t.Links.Twitter != "" {
		links = append(links, "Twitter: "+t.Links.Twitter)
	}
	if len(links) > 0 {
		b.WriteString("\n")
		b.WriteString(style.InfoStyle.Render(strings.Join(links, "  ")))
	}
	return b.String()
}

func (s *TokenScreen) viewStats() string {
	t := s.token
	label := style.MutedStyle.Width(16)

	rows := []string{
		style.SubHeaderStyle.UnsetMargins().Render("Market Statistics"),
		label.Render("Price") + style.TextStyle.Render(trade.FormatPrice(t.Price)+" SOL"),
		label.Render("24h Change") + style.Change(market.ChangeUp(t.Change24h)).Render(market.FormatChange(t.Change24h)),
		label.Render("Volume 24h") + style.TextStyle.Render(market.FormatMillions(t.Volume24h)),
		label.Render("Market Cap") + style.TextStyle.Render(market.FormatMillions(t.MarketCap)),
		label.Render("Total Supply") + style.TextStyle.Render(market.FormatAmount(t.TotalSupply)),
		label.Render("Holders") + style.TextStyle.Render(market.FormatCount(t.Holders)),
		label.Render("Bonding Curve") + s.bonding.View(),
		label.Render("Price history") + s.sparkline.View(),
		label.Render("Updated") + style.MutedStyle.Render(market.FormatAge(s.panel.Context().UpdatedAt)),
	}
	return strings.Join(rows, "\n")
}

func (s *TokenScreen) viewHoldings() string {
	qc := s.panel.Context()
	if !qc.HasBalance() {
		return ""
	}
	value := qc.UserBalance.Mul(qc.Price)
	label := style.MutedStyle.Width(16)
	return strings.Join([]string{
		style.SuccessStyle.Render("Your Holdings"),
		label.Render("Balance") + style.TextStyle.Render(market.FormatAmount(qc.UserBalance)+" "+qc.Symbol),
		label.Render("Value") + style.TextStyle.Render(market.FormatSOL(value)),
	}, "\n")
}

func (s *TokenScreen) viewTrade() string {
	p := s.panel
	qc := p.Context()
	var b strings.Builder

	b.WriteString(style.SubHeaderStyle.UnsetMargins().Render("Trade " + qc.Symbol))
	b.WriteString("\n")

	buyTab, sellTab := style.TabStyle.Render("Buy (b)"), style.TabStyle.Render("Sell (s)")
	if p.Direction() == trade.Buy {
		buyTab = style.BuyButtonStyle.Render("Buy (b)")
	} else {
		sellTab = style.SellButtonStyle.Render("Sell (s)")
	}
	if !p.SellEnabled() {
		sellTab = style.ButtonDisabledStyle.Render("Sell (s)")
	}
	b.WriteString(buyTab + " " + sellTab)
	b.WriteString("\n\n")

	unit := "SOL"
	if p.Direction() == trade.Sell {
		unit = qc.Symbol
	}
	amount := p.Amount()
	if amount == "" {
		amount = style.MutedStyle.Render("0.0")
	}
	b.WriteString(style.FormLabelStyle.Render(fmt.Sprintf("Amount (%s)", unit)))
	b.WriteString("\n")
	b.WriteString(style.ActivePanelStyle.Render(amount + "▏"))
	b.WriteString("\n")

	var presets []string
	for i, l := range p.PresetLabels() {
		presets = append(presets, style.ChipStyle.Render(fmt.Sprintf("F%d %s", i+1, l)))
	}
	b.WriteString(strings.Join(presets, ""))
	b.WriteString("\n\n")

	if q, ok := p.Quote(); ok {
		b.WriteString(style.MutedStyle.Render("You get (est.)  ") + style.TextStyle.Render(trade.FormatEstimate(q, qc.Symbol)))
		b.WriteString("\n")
		b.WriteString(style.MutedStyle.Render("Min received    ") + style.TextStyle.Render(trade.FormatMinReceived(q, qc.Symbol)))
		b.WriteString("\n")
		if v := p.Validation(); !v.Valid {
			b.WriteString(style.FormErrorStyle.Render(v.Reason))
			b.WriteString("\n")
		}
	}

	label := p.SubmitLabel()
	switch {
	case !p.CanSubmit():
		b.WriteString(style.ButtonDisabledStyle.Render(label))
	case p.Direction() == trade.Sell:
		b.WriteString(style.SellButtonStyle.Render(label))
	default:
		b.WriteString(style.BuyButtonStyle.Render(label))
	}
	b.WriteString("\n\n")

	if s.editingSlippage {
		b.WriteString(style.MutedStyle.Render("Custom slippage %: ") + s.slippageInput.View())
		if s.slippageErr != "" {
			b.WriteString("\n")
			b.WriteString(style.FormErrorStyle.Render(s.slippageErr))
		}
	} else {
		b.WriteString(style.MutedStyle.Render("Slippage Tolerance: ") + style.TextStyle.Render(trade.FormatSlippage(p.SlippageBps())))
	}

	if !s.deps.Wallet.Connected() {
		b.WriteString("\n")
		b.WriteString(style.WarningStyle.Render("Connect a wallet (w) to trade"))
	}
	if s.hint != "" {
		b.WriteString("\n")
		b.WriteString(style.MutedStyle.Render(s.hint))
	}
	return b.String()
}

// SetSize sets the screen dimensions
func (s *TokenScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.helpBar.SetWidth(width)
}
