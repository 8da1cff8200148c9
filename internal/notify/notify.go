// internal/notify/notify.go
package notify

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Level is the severity of a notification
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

// String returns the level name
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Notification is a single user-facing message
type Notification struct {
	Level   Level
	Message string
	At      time.Time
}

// Sink receives notifications. Implementations must not block.
type Sink interface {
	Notify(level Level, message string)
}

// SinkFunc adapts a function to Sink
type SinkFunc func(level Level, message string)

func (f SinkFunc) Notify(level Level, message string) { f(level, message) }

// Discard drops every notification
var Discard Sink = SinkFunc(func(Level, string) {})

// LogSink writes notifications to a zap logger
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink creates a sink logging under the "notify" name
func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger.Named("notify")}
}

func (s *LogSink) Notify(level Level, message string) {
	switch level {
	case LevelError:
		s.logger.Error(message)
	case LevelWarning:
		s.logger.Warn(message)
	default:
		s.logger.Info(message, zap.String("level", level.String()))
	}
}

// BusSink forwards notifications to a publish function, typically the UI bus
type BusSink struct {
	publish func(Notification)
}

// NewBusSink creates a sink that stamps and forwards notifications
func NewBusSink(publish func(Notification)) *BusSink {
	return &BusSink{publish: publish}
}

func (s *BusSink) Notify(level Level, message string) {
	s.publish(Notification{Level: level, Message: message, At: time.Now()})
}

// Multi fans a notification out to several sinks
type Multi []Sink

func (m Multi) Notify(level Level, message string) {
	for _, s := range m {
		s.Notify(level, message)
	}
}

// Recorder keeps every notification in memory
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

func (r *Recorder) Notify(level Level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, Notification{Level: level, Message: message, At: time.Now()})
}

// All returns a copy of the recorded notifications
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.items))
	copy(out, r.items)
	return out
}

// Last returns the most recent notification
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items) == 0 {
		return Notification{}, false
	}
	return r.items[len(r.items)-1], true
}
