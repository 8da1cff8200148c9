// internal/trade/panel.go
package trade

import (
	"context"
	"fmt"
)

// Panel is the state of a token's trade card: active tab, per-tab amount
// text and slippage. It is owned by a single view and is not safe for
// concurrent use; the engine it wraps is.
type Panel struct {
	engine      *Engine
	presets     Presets
	qc          TokenQuoteContext
	direction   Direction
	amounts     [2]string
	slippageBps int
	// pending держится от Submit до Resolve, даже если движок уже свободен
	pending bool
}

// NewPanel creates a panel on the Buy tab with default slippage.
func NewPanel(engine *Engine, presets Presets, qc TokenQuoteContext) *Panel {
	return &Panel{
		engine:      engine,
		presets:     presets,
		qc:          qc,
		direction:   Buy,
		slippageBps: DefaultSlippageBps,
	}
}

// Context returns the quote context the panel currently quotes against.
func (p *Panel) Context() TokenQuoteContext {
	return p.qc
}

// Refresh replaces the quote context, e.g. after a price update or a fill.
// Leaves the Sell tab when the balance drops to zero.
func (p *Panel) Refresh(qc TokenQuoteContext) {
	p.qc = qc
	if p.direction == Sell && !p.SellEnabled() {
		p.direction = Buy
	}
}

// Direction returns the active tab.
func (p *Panel) Direction() Direction {
	return p.direction
}

// SellEnabled reports whether the Sell tab is reachable.
func (p *Panel) SellEnabled() bool {
	return p.qc.HasBalance()
}

// SetDirection switches tabs. Switching to Sell without a balance is refused.
func (p *Panel) SetDirection(d Direction) bool {
	if d == Sell && !p.SellEnabled() {
		return false
	}
	p.direction = d
	return true
}

// Amount returns the amount text of the active tab.
func (p *Panel) Amount() string {
	return p.amounts[p.direction]
}

// AmountFor returns the amount text of the given tab.
func (p *Panel) AmountFor(d Direction) string {
	return p.amounts[d]
}

// SetAmount sets the amount text of the active tab.
// Ignored while an attempt is pending.
func (p *Panel) SetAmount(s string) {
	if p.Submitting() {
		return
	}
	p.amounts[p.direction] = s
}

// PresetLabels returns the quick-amount labels of the active tab.
func (p *Panel) PresetLabels() []string {
	var labels []string
	if p.direction == Buy {
		for i := range p.presets.Buy {
			labels = append(labels, p.presets.BuyLabel(i))
		}
		return labels
	}
	if !p.SellEnabled() {
		return nil
	}
	for i := range p.presets.SellPercents {
		labels = append(labels, p.presets.SellLabel(i))
	}
	return labels
}

// ApplyPreset fills the active tab with quick amount i. Refused while an
// attempt is pending.
func (p *Panel) ApplyPreset(i int) bool {
	if p.Submitting() {
		return false
	}
	var (
		amount string
		ok     bool
	)
	if p.direction == Buy {
		amount, ok = p.presets.BuyAmount(i)
	} else {
		amount, ok = p.presets.SellAmount(i, p.qc.UserBalance)
	}
	if ok {
		p.amounts[p.direction] = amount
	}
	return ok
}

// SlippageBps returns the slippage tolerance.
func (p *Panel) SlippageBps() int {
	return p.slippageBps
}

// SetSlippageBps sets the tolerance in basis points.
func (p *Panel) SetSlippageBps(bps int) error {
	if !ValidSlippage(bps) {
		return fmt.Errorf("invalid slippage %d bps", bps)
	}
	p.slippageBps = bps
	return nil
}

// SetCustomSlippage sets the tolerance from a percent string such as "1.5".
func (p *Panel) SetCustomSlippage(percent string) error {
	bps, err := ParseSlippagePercent(percent)
	if err != nil {
		return err
	}
	p.slippageBps = bps
	return nil
}

// Quote computes the estimate of the active tab. Never cached.
func (p *Panel) Quote() (Quote, bool) {
	q, ok := ComputeQuote(p.direction, p.Amount(), p.qc.Price)
	if !ok {
		return Quote{}, false
	}
	return q.WithSlippage(p.slippageBps), true
}

// Validation validates the active tab's amount.
func (p *Panel) Validation() Validation {
	return ValidateRequest(p.direction, p.Amount(), p.qc.UserBalance)
}

// Submitting reports whether an attempt is in flight or its outcome has not
// been resolved yet.
func (p *Panel) Submitting() bool {
	return p.pending || p.engine.State() == StateSubmitting
}

// CanSubmit reports whether the submit control is enabled.
func (p *Panel) CanSubmit() bool {
	return !p.Submitting() && p.Validation().Valid
}

// SubmitLabel returns the label of the submit control.
func (p *Panel) SubmitLabel() string {
	switch {
	case p.direction == Buy && p.Submitting():
		return "Buying…"
	case p.direction == Sell && p.Submitting():
		return "Selling…"
	case p.direction == Sell:
		return "Sell " + p.qc.Symbol
	default:
		return "Buy " + p.qc.Symbol
	}
}

// Submit sends the active tab's request to the engine.
func (p *Panel) Submit(ctx context.Context) (<-chan Outcome, error) {
	out, err := p.engine.Submit(ctx, p.qc, Request{
		Direction:   p.direction,
		Amount:      p.Amount(),
		SlippageBps: p.slippageBps,
	})
	if err != nil {
		return nil, err
	}
	p.pending = true
	return out, nil
}

// Resolve applies an outcome: success clears that tab's amount, failure
// keeps it for retry.
func (p *Panel) Resolve(o Outcome) {
	p.pending = false
	if o.Success() {
		p.amounts[o.Order.Direction] = ""
	}
}

// Close cancels any in-flight attempt; called on view teardown.
func (p *Panel) Close() {
	p.engine.Cancel()
}
