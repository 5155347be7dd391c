package budget

import (
	"math"

	"github.com/shopspring/decimal"
)

// DefaultThreshold is the remaining fraction at or below which an alert fires.
const DefaultThreshold = 0.10

// AlertEvent describes a category that is nearly or fully spent.
type AlertEvent struct {
	Recipient string
	Category  string
	Total     float64
	Ceiling   float64
}

// Monitor evaluates category totals against their ceilings. It keeps no
// memory of earlier alerts, so every qualifying addition fires again.
type Monitor struct {
	threshold decimal.Decimal
}

// NewMonitor returns a Monitor for threshold, using DefaultThreshold when
// threshold is not in (0, 1].
func NewMonitor(threshold float64) *Monitor {
	if math.IsNaN(threshold) || threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &Monitor{threshold: decimal.NewFromFloat(threshold)}
}

// Threshold returns the configured remaining fraction.
func (m *Monitor) Threshold() float64 {
	return m.threshold.InexactFloat64()
}

// ShouldAlert reports whether (ceiling - total) / ceiling <= threshold.
// A ceiling of zero or less never alerts, nor does a NaN total.
func (m *Monitor) ShouldAlert(total, ceiling float64) bool {
	if math.IsNaN(ceiling) || math.IsInf(ceiling, 0) || ceiling <= 0 {
		return false
	}
	if math.IsNaN(total) {
		return false
	}
	if math.IsInf(total, 0) {
		return total > 0
	}
	c := decimal.NewFromFloat(ceiling)
	remaining := c.Sub(decimal.NewFromFloat(total)).Div(c)
	return remaining.LessThanOrEqual(m.threshold)
}

// Evaluate checks category's new total against budgets and returns the
// alert to send, if any.
func (m *Monitor) Evaluate(recipient, category string, total float64, budgets Budgets) (AlertEvent, bool) {
	ceiling, ok := budgets.Ceiling(category)
	if !ok || !m.ShouldAlert(total, ceiling) {
		return AlertEvent{}, false
	}
	return AlertEvent{
		Recipient: recipient,
		Category:  category,
		Total:     total,
		Ceiling:   ceiling,
	}, true
}
