// internal/app/model.go
package app

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/memeterm/internal/notify"
	"github.com/rovshanmuradov/memeterm/internal/ui"
	"github.com/rovshanmuradov/memeterm/internal/ui/component"
	"github.com/rovshanmuradov/memeterm/internal/ui/router"
	"github.com/rovshanmuradov/memeterm/internal/ui/screen"
	"github.com/rovshanmuradov/memeterm/internal/wallet"
	"go.uber.org/zap"
)

// AppTitle is shown in the status header
const AppTitle = "MEMETERM"

// toastExpireMsg fires when the oldest toast may have expired
type toastExpireMsg time.Time

// ModelConfig wires the application model
type ModelConfig struct {
	Deps screen.Deps
	// Bus delivers background messages (prices, notifications). Optional.
	Bus *ui.EventBus
	// Connect returns the session parameters used when the user connects the wallet.
	Connect func() (wallet.ConnectParams, error)
	// Start is the first route opened on top of home.
	Start ui.RouterMsg
}

// Model is the root bubbletea model: a status header, the screen router and toasts.
type Model struct {
	deps    screen.Deps
	bus     *ui.EventBus
	connect func() (wallet.ConnectParams, error)
	start   ui.RouterMsg
	logger  *zap.Logger

	router  *router.Router
	entries []ui.RouterMsg
	header  *component.StatusHeader
	toasts  *component.Toasts
	keyMap  ui.KeyMap

	width  int
	height int
}

// NewModel creates the root model with the home screen at the bottom of the stack
func NewModel(cfg ModelConfig) *Model {
	logger := cfg.Deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &Model{
		deps:    cfg.Deps,
		bus:     cfg.Bus,
		connect: cfg.Connect,
		start:   cfg.Start,
		logger:  logger.Named("app"),
		router:  router.New(screen.NewHomeScreen(cfg.Deps)),
		entries: []ui.RouterMsg{{To: ui.RouteHome}},
		header:  component.NewStatusHeader(AppTitle),
		toasts:  component.NewToasts(component.DefaultToastTTL, 3),
		keyMap:  ui.DefaultKeyMap(),
	}
	m.syncHeader()
	return m
}

// Init starts the router, the bus listener and opens the start route
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.router.Init()}
	if m.bus != nil {
		cmds = append(cmds, m.bus.Listen())
	}
	if m.start.To != ui.RouteHome {
		start := m.start
		cmds = append(cmds, func() tea.Msg { return start })
	}
	return tea.Batch(cmds...)
}

// Update handles application-level updates
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ui.BusMsg:
		// Re-arm only here, otherwise every message would start another listener
		_, cmd := m.Update(msg.Msg)
		if m.bus == nil {
			return m, cmd
		}
		return m, tea.Batch(cmd, m.bus.Listen())

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.header.SetWidth(msg.Width)
		m.router.SetSize(msg.Width, max(0, msg.Height-m.header.GetHeight()))
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if !m.router.CapturesInput() {
			if cmd, handled := m.handleGlobalKey(msg); handled {
				return m, cmd
			}
		}
		_, cmd := m.router.Update(msg)
		m.syncEntries()
		return m, cmd

	case ui.RouterMsg:
		return m, m.handleNavigation(msg)

	case ui.BackMsg:
		cmd := m.router.Back()
		m.syncEntries()
		return m, cmd

	case ui.NotificationMsg:
		m.toasts.Push(msg.Notification)
		return m, m.expireToasts()

	case toastExpireMsg:
		m.toasts.Expire(time.Time(msg))
		return m, nil

	case ui.WalletChangedMsg:
		m.syncHeader()
		return m, m.router.Broadcast(msg)

	case ui.PriceUpdateMsg, ui.TradeOutcomeMsg:
		return m, m.router.Broadcast(msg)
	}

	_, cmd := m.router.Update(msg)
	return m, cmd
}

// handleGlobalKey handles keys that work on every screen
func (m *Model) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return tea.Quit, true
	case key.Matches(msg, m.keyMap.Wallet):
		return m.toggleWallet(), true
	}

	pages := []struct {
		binding key.Binding
		route   ui.Route
	}{
		{m.keyMap.Home, ui.RouteHome},
		{m.keyMap.Search, ui.RouteSearch},
		{m.keyMap.Trending, ui.RouteTrending},
		{m.keyMap.Create, ui.RouteCreate},
		{m.keyMap.Profile, ui.RouteProfile},
	}
	for _, p := range pages {
		if !key.Matches(msg, p.binding) {
			continue
		}
		// На своей странице клавиша достаётся экрану ("/" фокусирует поиск)
		if m.CurrentRoute().To == p.route {
			return nil, false
		}
		return m.handleNavigation(ui.RouterMsg{To: p.route}), true
	}
	return nil, false
}

// handleNavigation opens the screen of a route
func (m *Model) handleNavigation(msg ui.RouterMsg) tea.Cmd {
	var next router.Screen

	switch msg.To {
	case ui.RouteHome:
		m.entries = []ui.RouterMsg{msg}
		cmd := m.router.Reset(screen.NewHomeScreen(m.deps))
		m.syncHeader()
		return cmd
	case ui.RouteSearch:
		next = screen.NewSearchScreen(m.deps)
	case ui.RouteTrending:
		next = screen.NewTrendingScreen(m.deps)
	case ui.RouteCreate:
		next = screen.NewCreateScreen(m.deps)
	case ui.RouteProfile:
		next = screen.NewProfileScreen(m.deps)
	case ui.RouteToken:
		next = screen.NewTokenScreen(m.deps, msg.Param)
	default:
		msg = ui.RouterMsg{To: ui.RouteNotFound, Param: msg.Param}
		next = screen.NewNotFoundScreen(msg.Param)
	}

	m.logger.Debug("Navigate", zap.String("path", msg.To.Path(msg.Param)))
	m.entries = append(m.entries, msg)
	cmd := m.router.Push(next)
	m.syncHeader()
	return cmd
}

// toggleWallet connects or disconnects the wallet session
func (m *Model) toggleWallet() tea.Cmd {
	var n notify.Notification
	if m.deps.Wallet.Connected() {
		m.deps.Wallet.Disconnect()
		n = notify.Notification{Level: notify.LevelInfo, Message: "Wallet disconnected"}
	} else {
		session, err := m.connectWallet()
		if err != nil {
			m.logger.Warn("Wallet connect failed", zap.Error(err))
			n = notify.Notification{Level: notify.LevelError, Message: "Wallet connect failed: " + err.Error()}
		} else {
			n = notify.Notification{Level: notify.LevelSuccess, Message: "Wallet connected: " + session.ShortAddress()}
		}
	}
	n.At = time.Now()

	return tea.Batch(
		func() tea.Msg { return ui.NotificationMsg{Notification: n} },
		func() tea.Msg { return ui.WalletChangedMsg{} },
	)
}

func (m *Model) connectWallet() (*wallet.Session, error) {
	if m.connect == nil {
		return nil, fmt.Errorf("no wallet configured")
	}
	params, err := m.connect()
	if err != nil {
		return nil, err
	}
	return m.deps.Wallet.Connect(params)
}

func (m *Model) expireToasts() tea.Cmd {
	return tea.Tick(m.toasts.TTL(), func(t time.Time) tea.Msg {
		return toastExpireMsg(t)
	})
}

// syncEntries drops route entries of screens the router popped on its own
func (m *Model) syncEntries() {
	if d := m.router.Depth(); d < len(m.entries) {
		m.entries = m.entries[:d]
	}
	m.syncHeader()
}

func (m *Model) syncHeader() {
	current := m.CurrentRoute()
	m.header.SetPath(current.To.Path(current.Param))

	status := component.WalletStatus{}
	if session, ok := m.deps.Wallet.Current(); ok {
		status = component.WalletStatus{Connected: true, ShortAddress: session.ShortAddress(), SOL: session.SOL()}
	}
	m.header.SetWallet(status)
}

// CurrentRoute returns the route of the top screen
func (m *Model) CurrentRoute() ui.RouterMsg {
	if len(m.entries) == 0 {
		return ui.RouterMsg{To: ui.RouteHome}
	}
	return m.entries[len(m.entries)-1]
}

// Router exposes the screen stack for tests
func (m *Model) Router() *router.Router {
	return m.router
}

// Toasts returns the visible notifications
func (m *Model) Toasts() []notify.Notification {
	return m.toasts.Items()
}

// Close releases every screen; in-flight trades are cancelled
func (m *Model) Close() {
	m.router.Close()
}

// View renders the application
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	parts := []string{m.header.View(), m.router.View()}
	if toasts := m.toasts.View(); toasts != "" {
		parts = append(parts, toasts)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
