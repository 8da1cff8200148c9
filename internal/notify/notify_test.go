package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMultiFansOut(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	var published []Notification
	rec := &Recorder{}

	sink := Multi{
		NewLogSink(zap.New(core)),
		NewBusSink(func(n Notification) { published = append(published, n) }),
		rec,
		Discard,
	}
	sink.Notify(LevelSuccess, "Successfully bought 1 SOL worth of DOGEJR!")
	sink.Notify(LevelWarning, "Buy DOGEJR cancelled")

	require.Len(t, published, 2)
	assert.Equal(t, LevelSuccess, published[0].Level)
	assert.False(t, published[0].At.IsZero())

	assert.Len(t, rec.All(), 2)
	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, "Buy DOGEJR cancelled", last.Message)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "notify", entries[0].LoggerName)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
}

func TestRecorderEmpty(t *testing.T) {
	_, ok := (&Recorder{}).Last()
	assert.False(t, ok)
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelInfo, "info"},
		{LevelSuccess, "success"},
		{LevelWarning, "warning"},
		{LevelError, "error"},
		{Level(42), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.level.String())
	}
}
