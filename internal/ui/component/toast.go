package component

import (
	"time"

	"github.com/rovshanmuradov/memeterm/internal/notify"
	"github.com/rovshanmuradov/memeterm/internal/ui/style"
)

// DefaultToastTTL is how long a toast stays visible
const DefaultToastTTL = 4 * time.Second

// Toasts keeps the most recent notifications until they expire
type Toasts struct {
	items  []notify.Notification
	ttl    time.Duration
	max    int
	styles style.ToastStyles
}

// NewToasts creates a toast stack showing at most max items
func NewToasts(ttl time.Duration, max int) *Toasts {
	if ttl <= 0 {
		ttl = DefaultToastTTL
	}
	if max <= 0 {
		max = 3
	}
	return &Toasts{ttl: ttl, max: max, styles: style.NewToastStyles(style.DefaultPalette())}
}

// TTL returns the display duration
func (t *Toasts) TTL() time.Duration {
	return t.ttl
}

// Push adds a notification, dropping the oldest over max
func (t *Toasts) Push(n notify.Notification) {
	if n.At.IsZero() {
		n.At = time.Now()
	}
	t.items = append(t.items, n)
	if len(t.items) > t.max {
		t.items = t.items[len(t.items)-t.max:]
	}
}

// Expire removes toasts older than the ttl at now
func (t *Toasts) Expire(now time.Time) {
	kept := t.items[:0]
	for _, n := range t.items {
		if now.Sub(n.At) < t.ttl {
			kept = append(kept, n)
		}
	}
	t.items = kept
}

// Items returns the visible notifications, oldest first
func (t *Toasts) Items() []notify.Notification {
	return t.items
}

// View renders the visible toasts, one per line
func (t *Toasts) View() string {
	out := ""
	for _, n := range t.items {
		s := t.styles.Info
		switch n.Level {
		case notify.LevelSuccess:
			s = t.styles.Success
		case notify.LevelWarning:
			s = t.styles.Warning
		case notify.LevelError:
			s = t.styles.Error
		}
		out += s.Render(n.Message) + "\n"
	}
	return out
}
