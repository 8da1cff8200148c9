package router

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type fakeScreen struct {
	name      string
	capturing bool
	closed    int
	inits     int
	updates   int
	w, h      int
}

func (f *fakeScreen) Init() tea.Cmd { f.inits++; return nil }

func (f *fakeScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	f.updates++
	return f, nil
}

func (f *fakeScreen) View() string            { return f.name }
func (f *fakeScreen) SetSize(width, height int) { f.w, f.h = width, height }
func (f *fakeScreen) CapturesInput() bool     { return f.capturing }
func (f *fakeScreen) Close()                  { f.closed++ }

func TestRouterStack(t *testing.T) {
	home := &fakeScreen{name: "home"}
	r := New(home)
	r.SetSize(80, 24)

	token := &fakeScreen{name: "token"}
	r.Push(token)
	assert.Equal(t, 2, r.Depth())
	assert.Equal(t, "token", r.View())
	assert.Equal(t, 80, token.w)

	r.Back()
	assert.Equal(t, 1, token.closed)
	assert.Equal(t, "home", r.View())
	assert.False(t, r.CanGoBack())

	// Last screen is never popped
	assert.Nil(t, r.Pop())
	assert.Equal(t, 1, r.Depth())
}

func TestRouterEscRespectsInputCapture(t *testing.T) {
	r := New(&fakeScreen{name: "home"})
	search := &fakeScreen{name: "search", capturing: true}
	r.Push(search)

	esc := tea.KeyMsg{Type: tea.KeyEsc}
	r.Update(esc)
	assert.Equal(t, 2, r.Depth(), "capturing screen receives esc")
	assert.Equal(t, 1, search.updates)

	search.capturing = false
	r.Update(esc)
	assert.Equal(t, 1, r.Depth())
	assert.Equal(t, 1, search.closed)
}

func TestRouterReplaceAndReset(t *testing.T) {
	first := &fakeScreen{name: "first"}
	r := New(first)
	second := &fakeScreen{name: "second"}
	r.Replace(second)
	assert.Equal(t, 1, first.closed)
	assert.Equal(t, 1, r.Depth())

	r.Push(&fakeScreen{name: "third"})
	root := &fakeScreen{name: "root"}
	r.Reset(root)
	assert.Equal(t, 1, r.Depth())
	assert.Equal(t, 1, second.closed)
	assert.Equal(t, "root", r.View())
}

func TestRouterBroadcastReachesAllScreens(t *testing.T) {
	a := &fakeScreen{name: "a"}
	b := &fakeScreen{name: "b"}
	r := New(a)
	r.Push(b)
	r.Broadcast("tick")
	assert.Equal(t, 1, a.updates)
	assert.Equal(t, 1, b.updates)
}
