package component

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/memeterm/internal/market"
	"github.com/rovshanmuradov/memeterm/internal/ui/style"
	"github.com/shopspring/decimal"
)

// WalletStatus is what the header knows about the wallet
type WalletStatus struct {
	Connected    bool
	ShortAddress string
	SOL          decimal.Decimal
}

// StatusHeader shows the app title, current path and wallet status
type StatusHeader struct {
	title  string
	path   string
	wallet WalletStatus
	styles style.HeaderStyles
	width  int
}

// NewStatusHeader creates a new status header component
func NewStatusHeader(title string) *StatusHeader {
	return &StatusHeader{
		title:  title,
		path:   "/",
		styles: style.NewHeaderStyles(style.DefaultPalette()),
	}
}

// SetWallet updates the wallet display
func (sh *StatusHeader) SetWallet(w WalletStatus) {
	sh.wallet = w
}

// SetPath updates the current route path
func (sh *StatusHeader) SetPath(path string) {
	sh.path = path
}

// Path returns the displayed route path
func (sh *StatusHeader) Path() string {
	return sh.path
}

// SetWidth sets the component width for responsive layout
func (sh *StatusHeader) SetWidth(width int) {
	sh.width = width
}

// View renders the status header
func (sh *StatusHeader) View() string {
	content := lipgloss.JoinHorizontal(
		lipgloss.Left,
		sh.styles.Title.Render(sh.title),
		"  ",
		sh.styles.Path.Render(sh.path),
		"  |  ",
		sh.renderWallet(),
	)

	container := sh.styles.Container
	if sh.width > 4 {
		container = container.Width(sh.width - 2)
	}
	return container.Render(content)
}

func (sh *StatusHeader) renderWallet() string {
	if !sh.wallet.Connected {
		return sh.styles.Disconnected.Render("Wallet not connected (w)")
	}
	return lipgloss.JoinHorizontal(
		lipgloss.Left,
		sh.styles.Wallet.Render(fmt.Sprintf("Wallet: %s", sh.wallet.ShortAddress)),
		"  ",
		sh.styles.Balance.Render(market.FormatSOL(sh.wallet.SOL)),
	)
}

// GetHeight returns the component height for layout calculations
func (sh *StatusHeader) GetHeight() int {
	return 3 // Border + content
}
