package budget

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldAlert(t *testing.T) {
	m := NewMonitor(DefaultThreshold)
	cases := []struct {
		name           string
		total, ceiling float64
		want           bool
	}{
		{"91 of 100", 91, 100, true},
		{"89 of 100", 89, 100, false},
		{"exactly 90 of 100", 90, 100, true},
		{"over spent", 150, 100, true},
		{"zero ceiling", 1000, 0, false},
		{"negative ceiling", 5, -10, false},
		{"nan total", math.NaN(), 100, false},
		{"nan ceiling", 50, math.NaN(), false},
		{"refund keeps fraction high", -20, 100, false},
		{"cents", 45.01, 50, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, m.ShouldAlert(tc.total, tc.ceiling))
		})
	}
}

func TestEvaluate(t *testing.T) {
	m := NewMonitor(0.10)
	b := Budgets{"Groceries": 100, "Bills": 0}

	ev, ok := m.Evaluate("a@b.c", "Groceries", 95, b)
	assert.True(t, ok)
	assert.Equal(t, AlertEvent{Recipient: "a@b.c", Category: "Groceries", Total: 95, Ceiling: 100}, ev)

	_, ok = m.Evaluate("a@b.c", "Bills", 95, b)
	assert.False(t, ok, "zero ceiling never fires")

	_, ok = m.Evaluate("a@b.c", "Travel", 95, b)
	assert.False(t, ok, "absent ceiling never fires")

	// No suppression: a second crossing fires again.
	_, ok = m.Evaluate("a@b.c", "Groceries", 99, b)
	assert.True(t, ok)
}

func TestNewMonitorThreshold(t *testing.T) {
	assert.Equal(t, 0.25, NewMonitor(0.25).Threshold())
	assert.Equal(t, DefaultThreshold, NewMonitor(0).Threshold())
	assert.Equal(t, DefaultThreshold, NewMonitor(2).Threshold())
	assert.Equal(t, DefaultThreshold, NewMonitor(math.NaN()).Threshold())

	wide := NewMonitor(0.5)
	assert.True(t, wide.ShouldAlert(50, 100))
	assert.False(t, wide.ShouldAlert(49, 100))
}
