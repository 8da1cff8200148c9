package ui

import (
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// SafeModel wraps a tea.Model with panic recovery, so a bug in one screen
// shows an error line instead of leaving the terminal in raw mode.
type SafeModel struct {
	model  tea.Model
	logger *zap.Logger
	failed bool
}

// NewSafeModel creates a new safe UI wrapper
func NewSafeModel(model tea.Model, logger *zap.Logger) *SafeModel {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SafeModel{model: model, logger: logger.Named("ui")}
}

// Init wraps the Init method with panic recovery
func (sm *SafeModel) Init() (cmd tea.Cmd) {
	defer sm.recoverFromPanic("Init", &cmd)
	return sm.model.Init()
}

// Update wraps the Update method with panic recovery
func (sm *SafeModel) Update(msg tea.Msg) (model tea.Model, cmd tea.Cmd) {
	defer sm.recoverFromPanic("Update", &cmd)
	model = sm
	next, cmd := sm.model.Update(msg)
	sm.model = next
	return sm, cmd
}

// View wraps the View method with panic recovery
func (sm *SafeModel) View() (view string) {
	defer func() {
		if r := recover(); r != nil {
			sm.logger.Error("View panic recovered",
				zap.Any("panic", r),
				zap.String("stack", string(debug.Stack())))
			sm.failed = true
			view = "UI error: view crashed, press ctrl+c to exit. Details are in the log file."
		}
	}()
	return sm.model.View()
}

// Failed reports whether a panic was recovered
func (sm *SafeModel) Failed() bool {
	return sm.failed
}

func (sm *SafeModel) recoverFromPanic(method string, cmd *tea.Cmd) {
	if r := recover(); r != nil {
		sm.logger.Error("UI method panic recovered",
			zap.String("method", method),
			zap.Any("panic", r),
			zap.String("stack", string(debug.Stack())))
		sm.failed = true
		*cmd = nil
	}
}
