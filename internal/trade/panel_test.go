package trade

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rovshanmuradov/memeterm/internal/notify"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanelSellTabDisabledWithoutBalance(t *testing.T) {
	qc := testContext()
	qc.UserBalance = decimal.Zero
	panel := NewPanel(NewEngine(EngineConfig{Submitter: newGatedSubmitter()}), DefaultPresets(), qc)

	assert.False(t, panel.SellEnabled())
	assert.False(t, panel.SetDirection(Sell))
	assert.Equal(t, Buy, panel.Direction())
	assert.Len(t, panel.PresetLabels(), 3)
}

func TestPanelRefreshLeavesSellWhenBalanceGone(t *testing.T) {
	panel := NewPanel(NewEngine(EngineConfig{Submitter: newGatedSubmitter()}), DefaultPresets(), testContext())
	require.True(t, panel.SetDirection(Sell))

	qc := testContext()
	qc.UserBalance = decimal.Zero
	panel.Refresh(qc)
	assert.Equal(t, Buy, panel.Direction())
}

func TestPanelSellPresetSnapshot(t *testing.T) {
	panel := NewPanel(NewEngine(EngineConfig{Submitter: newGatedSubmitter()}), DefaultPresets(), testContext())
	require.True(t, panel.SetDirection(Sell))

	require.True(t, panel.ApplyPreset(1))
	assert.Equal(t, "7500", panel.Amount())
	assert.Equal(t, []string{"25%", "50%", "Max"}, panel.PresetLabels())

	// balance changes later do not rewrite the applied amount
	qc := testContext()
	qc.UserBalance = decimal.NewFromInt(100)
	panel.Refresh(qc)
	assert.Equal(t, "7500", panel.Amount())
	assert.False(t, panel.CanSubmit(), "amount now exceeds balance")
}

func TestPanelQuoteAndSlippage(t *testing.T) {
	panel := NewPanel(NewEngine(EngineConfig{Submitter: newGatedSubmitter()}), DefaultPresets(), testContext())

	_, ok := panel.Quote()
	assert.False(t, ok)

	panel.SetAmount("1")
	q, ok := panel.Quote()
	require.True(t, ok)
	f, _ := q.EstimatedCounterAmount.Float64()
	assert.InDelta(t, 8130.08, f, 0.01)

	require.NoError(t, panel.SetCustomSlippage("2"))
	assert.Equal(t, 200, panel.SlippageBps())
	q, _ = panel.Quote()
	assert.True(t, q.MinReceived.LessThan(q.EstimatedCounterAmount))

	assert.Error(t, panel.SetSlippageBps(0))
	assert.Error(t, panel.SetCustomSlippage("x"))
	assert.Equal(t, 200, panel.SlippageBps())
}

func TestPanelBuySubmitScenario(t *testing.T) {
	sub := newGatedSubmitter()
	rec := &notify.Recorder{}
	panel := NewPanel(NewEngine(EngineConfig{Submitter: sub, Notifier: rec, Timeout: time.Second}), DefaultPresets(), testContext())

	panel.SetAmount("0.5")
	assert.True(t, panel.CanSubmit())
	assert.Equal(t, "Buy DOGEJR", panel.SubmitLabel())

	ch, err := panel.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Buying…", panel.SubmitLabel())
	assert.False(t, panel.CanSubmit())
	<-sub.orders
	assert.False(t, panel.CanSubmit(), "still disabled until resolution")

	close(sub.release)
	outcome := waitOutcome(t, ch)
	panel.Resolve(outcome)

	assert.Equal(t, "Buy DOGEJR", panel.SubmitLabel())
	assert.Equal(t, "", panel.Amount())

	last, ok := rec.Last()
	require.True(t, ok)
	assert.True(t, strings.Contains(last.Message, "0.5"))
	assert.True(t, strings.Contains(last.Message, "DOGEJR"))
}

func TestPanelFailureKeepsAmount(t *testing.T) {
	sub := newGatedSubmitter()
	sub.err = NewSubmissionError(FailureInsufficientFunds, nil)
	panel := NewPanel(NewEngine(EngineConfig{Submitter: sub, Timeout: time.Second}), DefaultPresets(), testContext())
	require.True(t, panel.SetDirection(Sell))
	panel.SetAmount("100")

	ch, err := panel.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Selling…", panel.SubmitLabel())

	close(sub.release)
	panel.Resolve(waitOutcome(t, ch))

	assert.Equal(t, "100", panel.Amount())
	assert.True(t, panel.CanSubmit())
}

func TestPanelCloseCancelsInFlight(t *testing.T) {
	sub := newGatedSubmitter()
	panel := NewPanel(NewEngine(EngineConfig{Submitter: sub, Timeout: time.Second}), DefaultPresets(), testContext())
	panel.SetAmount("1")

	ch, err := panel.Submit(context.Background())
	require.NoError(t, err)
	<-sub.orders

	panel.Close()
	outcome := waitOutcome(t, ch)
	assert.ErrorIs(t, outcome.Err, ErrSubmissionCancelled)
	assert.Equal(t, "1", panel.Amount())
}

func TestPanelAmountLockedUntilResolved(t *testing.T) {
	sub := newGatedSubmitter()
	panel := NewPanel(NewEngine(EngineConfig{Submitter: sub, Timeout: time.Second}), DefaultPresets(), testContext())
	panel.SetAmount("0.5")

	ch, err := panel.Submit(context.Background())
	require.NoError(t, err)
	<-sub.orders

	panel.SetAmount("3")
	assert.False(t, panel.ApplyPreset(2))
	assert.Equal(t, "0.5", panel.Amount())

	close(sub.release)
	outcome := waitOutcome(t, ch)

	// Движок уже свободен, но результат ещё не применён
	assert.Equal(t, StateIdle, panel.engine.State())
	assert.True(t, panel.Submitting())
	panel.SetAmount("3")
	assert.Equal(t, "0.5", panel.Amount())

	panel.Resolve(outcome)
	assert.False(t, panel.Submitting())
	panel.SetAmount("3")
	assert.Equal(t, "3", panel.Amount())
}
