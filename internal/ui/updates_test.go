package ui

import (
	"testing"

	"github.com/rovshanmuradov/memeterm/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBusNeverBlocks(t *testing.T) {
	bus := NewEventBus(2, nil)
	defer bus.Close()

	for i := 0; i < 5; i++ {
		bus.Send(WalletChangedMsg{})
	}
	sent, dropped := bus.GetStats()
	assert.Equal(t, uint64(2), sent)
	assert.Equal(t, uint64(3), dropped)
}

func TestEventBusListenWrapsMessages(t *testing.T) {
	bus := NewEventBus(4, nil)
	defer bus.Close()

	bus.PublishNotification(notify.Notification{Level: notify.LevelSuccess, Message: "done"})

	msg := bus.Listen()()
	wrapped, ok := msg.(BusMsg)
	require.True(t, ok)
	n, ok := wrapped.Msg.(NotificationMsg)
	require.True(t, ok)
	assert.Equal(t, "done", n.Notification.Message)
}

func TestEventBusCloseReleasesListener(t *testing.T) {
	bus := NewEventBus(1, nil)
	done := make(chan struct{})
	go func() {
		bus.Listen()()
		close(done)
	}()
	bus.Close()
	bus.Close()
	<-done
}

func TestParseRoute(t *testing.T) {
	tests := []struct {
		path  string
		route Route
		param string
	}{
		{"/", RouteHome, ""},
		{"", RouteHome, ""},
		{"/search", RouteSearch, ""},
		{"trending", RouteTrending, ""},
		{"/create/", RouteCreate, ""},
		{"/profile", RouteProfile, ""},
		{"/token/2gMKR43578dM3vD3PNaiRwreKLVQBpFfBgifM9HjvdZT", RouteToken, "2gMKR43578dM3vD3PNaiRwreKLVQBpFfBgifM9HjvdZT"},
		{"/token/", RouteNotFound, "/token"},
		{"/token/a/b", RouteNotFound, "/token/a/b"},
		{"/nowhere", RouteNotFound, "/nowhere"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			msg := ParseRoute(tt.path)
			assert.Equal(t, tt.route, msg.To)
			assert.Equal(t, tt.param, msg.Param)
		})
	}

	assert.Equal(t, "/token/abc", RouteToken.Path("abc"))
	assert.Equal(t, "/", RouteHome.Path(""))
}
