package style

import (
	"github.com/charmbracelet/lipgloss"
)

var palette = DefaultPalette()

// Header styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true).
			Margin(1, 0, 0, 0)

	SubHeaderStyle = lipgloss.NewStyle().
			Foreground(palette.Secondary).
			Bold(true).
			Margin(1, 0, 0, 0)

	MutedStyle = lipgloss.NewStyle().
			Foreground(palette.TextMuted)

	TextStyle = lipgloss.NewStyle().
			Foreground(palette.Text)
)

// Layout styles
var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.TextMuted).
			Padding(0, 1)

	ActivePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(palette.Primary).
				Padding(0, 1)
)

// Button and tab styles
var (
	ButtonStyle = lipgloss.NewStyle().
			Foreground(palette.Background).
			Background(palette.Secondary).
			Padding(0, 2).
			Bold(true)

	ButtonDisabledStyle = lipgloss.NewStyle().
				Foreground(palette.TextMuted).
				Background(palette.BackgroundAlt).
				Padding(0, 2)

	BuyButtonStyle = ButtonStyle.Background(palette.Buy)

	SellButtonStyle = ButtonStyle.Background(palette.Sell)

	TabStyle = lipgloss.NewStyle().
			Foreground(palette.TextMuted).
			Padding(0, 2)

	ChipStyle = lipgloss.NewStyle().
			Foreground(palette.TextSecondary).
			Background(palette.BackgroundAlt).
			Padding(0, 1).
			MarginRight(1)

	ChipActiveStyle = lipgloss.NewStyle().
			Foreground(palette.Background).
			Background(palette.Primary).
			Padding(0, 1).
			MarginRight(1)
)

// Form styles
var (
	FormLabelStyle = lipgloss.NewStyle().
			Foreground(palette.Text).
			Bold(true)

	FormErrorStyle = lipgloss.NewStyle().
			Foreground(palette.Error)
)

// Status styles
var (
	SuccessStyle = lipgloss.NewStyle().
			Foreground(palette.Success).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(palette.Error).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(palette.Warning).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(palette.Info)
)

// Market styles
var (
	UpStyle = lipgloss.NewStyle().
		Foreground(palette.Up).
		Bold(true)

	DownStyle = lipgloss.NewStyle().
			Foreground(palette.Down).
			Bold(true)

	BadgeNewStyle = lipgloss.NewStyle().
			Foreground(palette.Background).
			Background(palette.Accent).
			Padding(0, 1)

	BadgeTrendingStyle = lipgloss.NewStyle().
				Foreground(palette.Background).
				Background(palette.Warning).
				Padding(0, 1)
)

// Change picks the up or down style for a price change.
func Change(up bool) lipgloss.Style {
	if up {
		return UpStyle
	}
	return DownStyle
}

// AdaptiveJoinHorizontal stacks blocks vertically on narrow screens
func AdaptiveJoinHorizontal(width int, blocks ...string) string {
	if width < 100 {
		return lipgloss.JoinVertical(lipgloss.Left, blocks...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}

// AdaptiveWidth returns percentage of width, or almost all of it on narrow screens
func AdaptiveWidth(width, percentage int) int {
	if width < 100 {
		return width - 4
	}
	return (width * percentage) / 100
}
