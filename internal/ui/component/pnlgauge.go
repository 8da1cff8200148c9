package component

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/memeterm/internal/ui/style"
	"github.com/shopspring/decimal"
)

// PnLGauge renders the unrealized profit/loss of a holding
type PnLGauge struct {
	cost  decimal.Decimal
	value decimal.Decimal
}

// NewPnLGauge creates a gauge for a position bought for cost SOL and now worth value SOL
func NewPnLGauge(cost, value decimal.Decimal) *PnLGauge {
	return &PnLGauge{cost: cost, value: value}
}

// Percent returns the PnL relative to cost. Zero cost means no basis, so zero.
func (p *PnLGauge) Percent() decimal.Decimal {
	if !p.cost.IsPositive() {
		return decimal.Zero
	}
	return p.value.Sub(p.cost).Div(p.cost).Mul(decimal.NewFromInt(100))
}

// GetArrow returns the arrow character for the current trend
func (p *PnLGauge) GetArrow() string {
	switch pct := p.Percent(); {
	case pct.GreaterThanOrEqual(decimal.NewFromInt(5)):
		return "↗"
	case pct.LessThanOrEqual(decimal.NewFromInt(-5)):
		return "↘"
	case pct.IsPositive():
		return "↑"
	case pct.IsNegative():
		return "↓"
	default:
		return "→"
	}
}

// GetColor returns the color for the current value
func (p *PnLGauge) GetColor() lipgloss.Color {
	palette := style.DefaultPalette()
	switch pct := p.Percent(); {
	case pct.IsPositive():
		return palette.Up
	case pct.IsNegative():
		return palette.Down
	default:
		return palette.TextMuted
	}
}

// Text returns the plain text form, e.g. "+12.5% ↗"
func (p *PnLGauge) Text() string {
	pct := p.Percent()
	sign := ""
	if pct.IsPositive() {
		sign = "+"
	}
	if !p.cost.IsPositive() {
		return "n/a"
	}
	return fmt.Sprintf("%s%s%% %s", sign, pct.StringFixed(1), p.GetArrow())
}

// ViewCompact renders the colored text form
func (p *PnLGauge) ViewCompact() string {
	return lipgloss.NewStyle().Foreground(p.GetColor()).Bold(true).Render(p.Text())
}

// ProgressBar renders a 0-100 percent bar, used for the bonding curve
type ProgressBar struct {
	percent decimal.Decimal
	width   int
}

// NewProgressBar creates a progress bar of the given inner width
func NewProgressBar(width int) *ProgressBar {
	return &ProgressBar{width: width}
}

// SetPercent sets the filled share, clamped to 0..100
func (b *ProgressBar) SetPercent(p decimal.Decimal) *ProgressBar {
	hundred := decimal.NewFromInt(100)
	switch {
	case p.IsNegative():
		p = decimal.Zero
	case p.GreaterThan(hundred):
		p = hundred
	}
	b.percent = p
	return b
}

// View renders the bar followed by the percentage
func (b *ProgressBar) View() string {
	palette := style.DefaultPalette()
	filled := int(b.percent.Mul(decimal.NewFromInt(int64(b.width))).Div(decimal.NewFromInt(100)).IntPart())

	bar := lipgloss.NewStyle().Foreground(palette.Warning).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(palette.TextMuted).Render(strings.Repeat("░", b.width-filled))
	return bar + " " + b.percent.StringFixed(1) + "%"
}
