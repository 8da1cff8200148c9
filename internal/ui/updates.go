package ui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rovshanmuradov/memeterm/internal/market"
	"github.com/rovshanmuradov/memeterm/internal/notify"
	"go.uber.org/zap"
)

// BusMsg wraps a message received from an EventBus. The application model
// unwraps it and re-arms the listener.
type BusMsg struct {
	Msg tea.Msg
}

// EventBus carries messages from background goroutines into the tea loop
// without ever blocking the sender.
type EventBus struct {
	msgChan        chan tea.Msg
	droppedUpdates uint64
	sentUpdates    uint64
	logger         *zap.Logger
	statsInterval  time.Duration
	stopStats      chan struct{}
}

// NewEventBus creates a bus with the given buffer size
func NewEventBus(size int, logger *zap.Logger) *EventBus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventBus{
		msgChan:       make(chan tea.Msg, size),
		logger:        logger.Named("ui_bus"),
		statsInterval: 30 * time.Second,
		stopStats:     make(chan struct{}),
	}
}

// Send sends a message to UI without blocking. Dropped messages are counted.
func (b *EventBus) Send(msg tea.Msg) {
	select {
	case b.msgChan <- msg:
		atomic.AddUint64(&b.sentUpdates, 1)
	default:
		atomic.AddUint64(&b.droppedUpdates, 1)
	}
}

// Listen returns a tea.Cmd that waits for the next bus message
func (b *EventBus) Listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-b.msgChan:
			return BusMsg{Msg: msg}
		case <-b.stopStats:
			return nil
		}
	}
}

// PublishNotification sends a toast
func (b *EventBus) PublishNotification(n notify.Notification) {
	b.Send(NotificationMsg{Notification: n})
}

// PublishPriceUpdate sends a price change
func (b *EventBus) PublishPriceUpdate(u market.PriceUpdate) {
	b.Send(PriceUpdateMsg{Update: u})
}

// GetStats returns current statistics
func (b *EventBus) GetStats() (sent, dropped uint64) {
	sent = atomic.LoadUint64(&b.sentUpdates)
	dropped = atomic.LoadUint64(&b.droppedUpdates)
	return sent, dropped
}

// LogStats periodically logs drop statistics until Close
func (b *EventBus) LogStats() {
	ticker := time.NewTicker(b.statsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			sent, dropped := b.GetStats()
			if dropped > 0 {
				b.logger.Warn("UI update statistics",
					zap.Uint64("sent", sent),
					zap.Uint64("dropped", dropped),
					zap.Float64("drop_rate", float64(dropped)/float64(sent+dropped)*100))
			}
		case <-b.stopStats:
			return
		}
	}
}

// Close stops the stats loop and releases pending listeners
func (b *EventBus) Close() {
	select {
	case <-b.stopStats:
	default:
		close(b.stopStats)
	}
}
