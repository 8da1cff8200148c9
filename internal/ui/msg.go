package ui

import (
	"strings"

	"github.com/rovshanmuradov/memeterm/internal/market"
	"github.com/rovshanmuradov/memeterm/internal/notify"
	"github.com/rovshanmuradov/memeterm/internal/trade"
)

// Tea message types for UI communication

// RouterMsg represents navigation between screens.
// Param carries the route parameter, e.g. the mint of RouteToken.
type RouterMsg struct {
	To    Route
	Param string
}

// BackMsg asks the router to pop the current screen
type BackMsg struct{}

// NotificationMsg carries a toast to display
type NotificationMsg struct {
	Notification notify.Notification
}

// PriceUpdateMsg represents a catalog price change
type PriceUpdateMsg struct {
	Update market.PriceUpdate
}

// TradeOutcomeMsg delivers the resolution of a submission to the screen that started it.
// Source identifies that screen instance, since outcomes are broadcast.
type TradeOutcomeMsg struct {
	Source  uint64
	Mint    string
	Outcome trade.Outcome
}

// WalletChangedMsg is sent after connect, disconnect or a fill
type WalletChangedMsg struct{}

// Route represents different screens in the application
type Route int

const (
	RouteHome Route = iota
	RouteSearch
	RouteTrending
	RouteCreate
	RouteProfile
	RouteToken
	RouteNotFound
)

// String returns the string representation of the route
func (r Route) String() string {
	switch r {
	case RouteHome:
		return "home"
	case RouteSearch:
		return "search"
	case RouteTrending:
		return "trending"
	case RouteCreate:
		return "create"
	case RouteProfile:
		return "profile"
	case RouteToken:
		return "token"
	case RouteNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Path renders the route as a URL-like path
func (r Route) Path(param string) string {
	switch r {
	case RouteHome:
		return "/"
	case RouteSearch:
		return "/search"
	case RouteTrending:
		return "/trending"
	case RouteCreate:
		return "/create"
	case RouteProfile:
		return "/profile"
	case RouteToken:
		return "/token/" + param
	default:
		return param
	}
}

// ParseRoute maps a path to a route. Unknown paths resolve to RouteNotFound
// with the original path as the parameter.
func ParseRoute(path string) RouterMsg {
	p := strings.TrimSpace(path)
	if p == "" {
		p = "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimSuffix(p, "/")
	}

	switch p {
	case "/":
		return RouterMsg{To: RouteHome}
	case "/search":
		return RouterMsg{To: RouteSearch}
	case "/trending":
		return RouterMsg{To: RouteTrending}
	case "/create":
		return RouterMsg{To: RouteCreate}
	case "/profile":
		return RouterMsg{To: RouteProfile}
	}

	if mint, ok := strings.CutPrefix(p, "/token/"); ok && mint != "" && !strings.Contains(mint, "/") {
		return RouterMsg{To: RouteToken, Param: mint}
	}
	return RouterMsg{To: RouteNotFound, Param: p}
}
