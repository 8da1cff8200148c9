package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines keyboard shortcuts for the application
type KeyMap struct {
	// Global navigation
	Quit   key.Binding
	Back   key.Binding
	Wallet key.Binding

	// Pages
	Home     key.Binding
	Search   key.Binding
	Trending key.Binding
	Create   key.Binding
	Profile  key.Binding

	// Lists
	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding
	Tab      key.Binding
	ShiftTab key.Binding

	// Trade panel
	BuyTab         key.Binding
	SellTab        key.Binding
	Preset1        key.Binding
	Preset2        key.Binding
	Preset3        key.Binding
	Slippage       key.Binding
	CustomSlippage key.Binding
	Submit         key.Binding
	ClearAmount    key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Wallet: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "wallet"),
		),

		Home: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "home"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Trending: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "trending"),
		),
		Create: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "create"),
		),
		Profile: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "profile"),
		),

		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev"),
		),

		BuyTab: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "buy"),
		),
		SellTab: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sell"),
		),
		Preset1: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "preset 1"),
		),
		Preset2: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("F2", "preset 2"),
		),
		Preset3: key.NewBinding(
			key.WithKeys("f3"),
			key.WithHelp("F3", "preset 3"),
		),
		Slippage: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "slippage"),
		),
		CustomSlippage: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "custom slippage"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		ClearAmount: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "clear"),
		),
	}
}

// Presets returns the preset bindings in order
func (k KeyMap) Presets() []key.Binding {
	return []key.Binding{k.Preset1, k.Preset2, k.Preset3}
}

// ShortHelp returns key help text for the current context
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Back, k.Quit}
}

// Navigation returns the page shortcuts available everywhere
func (k KeyMap) Navigation() []key.Binding {
	return []key.Binding{k.Home, k.Search, k.Trending, k.Create, k.Profile, k.Wallet}
}

// ContextualHelp returns help text based on the current route
func (k KeyMap) ContextualHelp(route Route) []key.Binding {
	switch route {
	case RouteHome:
		return []key.Binding{k.Up, k.Down, k.Tab, k.Enter, k.Search, k.Trending, k.Create, k.Profile, k.Wallet, k.Quit}
	case RouteSearch:
		return []key.Binding{k.Search, k.Tab, k.Up, k.Down, k.Enter, k.Back, k.Quit}
	case RouteTrending:
		return []key.Binding{k.Up, k.Down, k.Enter, k.Back, k.Quit}
	case RouteToken:
		return []key.Binding{k.BuyTab, k.SellTab, k.Preset1, k.Preset2, k.Preset3, k.Slippage, k.CustomSlippage, k.Submit, k.Wallet, k.Back}
	case RouteProfile:
		return []key.Binding{k.Up, k.Down, k.Enter, k.Wallet, k.Back, k.Quit}
	case RouteCreate:
		return []key.Binding{k.Tab, k.ShiftTab, k.Submit, k.Back}
	case RouteNotFound:
		return []key.Binding{k.Enter, k.Back, k.Quit}
	default:
		return k.ShortHelp()
	}
}
