package style

import (
	"github.com/charmbracelet/lipgloss"
)

// HeaderStyles provides styling for the status header
type HeaderStyles struct {
	Container    lipgloss.Style
	Title        lipgloss.Style
	Path         lipgloss.Style
	Wallet       lipgloss.Style
	Balance      lipgloss.Style
	Disconnected lipgloss.Style
}

// NewHeaderStyles creates header styles with the given palette
func NewHeaderStyles(palette Palette) HeaderStyles {
	return HeaderStyles{
		Container: lipgloss.NewStyle().
			Foreground(palette.Text).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.Primary).
			Padding(0, 2),

		Title: lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true),

		Path: lipgloss.NewStyle().
			Foreground(palette.TextMuted),

		Wallet: lipgloss.NewStyle().
			Foreground(palette.TextSecondary),

		Balance: lipgloss.NewStyle().
			Foreground(palette.Success).
			Bold(true),

		Disconnected: lipgloss.NewStyle().
			Foreground(palette.Warning),
	}
}

// ToastStyles provides styling per notification level
type ToastStyles struct {
	Info    lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// NewToastStyles creates toast styles with the given palette
func NewToastStyles(palette Palette) ToastStyles {
	base := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	return ToastStyles{
		Info:    base.BorderForeground(palette.Info).Foreground(palette.Info),
		Success: base.BorderForeground(palette.Success).Foreground(palette.Success),
		Warning: base.BorderForeground(palette.Warning).Foreground(palette.Warning),
		Error:   base.BorderForeground(palette.Error).Foreground(palette.Error),
	}
}
