package screen

import (
	"context"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/memeterm/internal/market"
	"github.com/rovshanmuradov/memeterm/internal/trade"
	"github.com/rovshanmuradov/memeterm/internal/ui"
	"github.com/rovshanmuradov/memeterm/internal/ui/component"
	"github.com/rovshanmuradov/memeterm/internal/ui/style"
	"github.com/rovshanmuradov/memeterm/internal/wallet"
	"go.uber.org/zap"
)

// Deps are the services shared by all screens
type Deps struct {
	// Ctx bounds trade submissions; cancelled on shutdown.
	Ctx      context.Context
	Provider *market.Provider
	Wallet   *wallet.Manager
	// NewEngine creates the submission engine of one token screen.
	NewEngine          func() *trade.Engine
	Presets            trade.Presets
	DefaultSlippageBps int
	Logger             *zap.Logger
}

func (d Deps) context() context.Context {
	if d.Ctx == nil {
		return context.Background()
	}
	return d.Ctx
}

func (d Deps) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

var screenIDs atomic.Uint64

func nextScreenID() uint64 {
	return screenIDs.Add(1)
}

func navigate(route ui.Route, param string) tea.Cmd {
	return func() tea.Msg {
		return ui.RouterMsg{To: route, Param: param}
	}
}

func back() tea.Msg {
	return ui.BackMsg{}
}

// tokenColumns are the columns of every token list
var tokenColumns = []component.TableColumn{
	{Header: "Token", Width: 0, Align: lipgloss.Left},
	{Header: "Symbol", Width: 8, Align: lipgloss.Left},
	{Header: "Price (SOL)", Width: 12, Align: lipgloss.Right},
	{Header: "24h", Width: 8, Align: lipgloss.Right},
	{Header: "Volume", Width: 8, Align: lipgloss.Right},
	{Header: "MCap", Width: 8, Align: lipgloss.Right},
	{Header: "", Width: 5, Align: lipgloss.Left},
}

// tokenRows renders tokens as table rows with the change column colored
func tokenRows(tokens []market.TokenInfo) []component.TableRow {
	rows := make([]component.TableRow, 0, len(tokens))
	for _, t := range tokens {
		badge := ""
		switch {
		case t.IsNew:
			badge = "NEW"
		case t.IsTrending:
			badge = "HOT"
		}
		rows = append(rows, component.TableRow{
			Data: []string{
				t.Name,
				t.Symbol,
				trade.FormatPrice(t.Price),
				market.FormatChange(t.Change24h),
				market.FormatMillions(t.Volume24h),
				market.FormatMillions(t.MarketCap),
				badge,
			},
			CellStyles: map[int]lipgloss.Style{
				3: style.Change(market.ChangeUp(t.Change24h)),
			},
		})
	}
	return rows
}

// mintAt returns the mint of row i, or "" when out of range
func mintAt(tokens []market.TokenInfo, i int) string {
	if i < 0 || i >= len(tokens) {
		return ""
	}
	return tokens[i].Mint
}
