package component

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/memeterm/internal/ui/style"
	"github.com/shopspring/decimal"
)

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline is a mini graph of the recent price history of a token
type Sparkline struct {
	data  []float64
	width int
}

// NewSparkline creates a new sparkline component
func NewSparkline(width int) *Sparkline {
	return &Sparkline{width: width}
}

// AddPrice appends a price, keeping only the last width points
func (s *Sparkline) AddPrice(price decimal.Decimal) *Sparkline {
	s.data = append(s.data, price.InexactFloat64())
	if len(s.data) > s.width {
		s.data = s.data[len(s.data)-s.width:]
	}
	return s
}

// SetWidth sets the width of the sparkline
func (s *Sparkline) SetWidth(width int) *Sparkline {
	s.width = width
	if len(s.data) > width {
		s.data = s.data[len(s.data)-width:]
	}
	return s
}

// Len returns the number of points
func (s *Sparkline) Len() int {
	return len(s.data)
}

// View renders the sparkline colored by the overall trend
func (s *Sparkline) View() string {
	palette := style.DefaultPalette()
	if len(s.data) < 2 {
		return lipgloss.NewStyle().Foreground(palette.TextMuted).Render(strings.Repeat("▁", s.width))
	}

	color := palette.TextMuted
	switch first, last := s.data[0], s.data[len(s.data)-1]; {
	case last > first:
		color = palette.Up
	case last < first:
		color = palette.Down
	}
	return lipgloss.NewStyle().Foreground(color).Render(s.blocks())
}

// blocks creates the spark characters based on data
func (s *Sparkline) blocks() string {
	lo, hi := s.data[0], s.data[0]
	for _, v := range s.data {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	var result strings.Builder
	for _, v := range s.data {
		index := len(sparkChars) / 2
		if hi > lo {
			index = int((v - lo) / (hi - lo) * float64(len(sparkChars)-1))
		}
		result.WriteRune(sparkChars[index])
	}
	for i := len(s.data); i < s.width; i++ {
		result.WriteRune(' ')
	}
	return result.String()
}
