// Package ledger holds a session's ordered expense records.
package ledger

import (
	"math"
	"sync"

	"github.com/shopspring/decimal"

	"budgetplanner/internal/core"
)

// Ledger is an append-only, ordered list of expenses safe for concurrent use.
type Ledger struct {
	mu    sync.RWMutex
	items []core.Expense
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// Append adds e and returns the new cumulative total of its category.
// The append and the total are computed under one lock.
func (l *Ledger) Append(e core.Expense) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(l.items, e)
	return total(l.items, e.Category)
}

// AppendAll adds every expense in order as one step.
func (l *Ledger) AppendAll(es []core.Expense) {
	if len(es) == 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(l.items, es...)
}

// All returns a copy of the expenses in insertion order.
func (l *Ledger) All() []core.Expense {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]core.Expense, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of expenses.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// Total returns the sum of amounts recorded under category. It is NaN when
// any of those amounts is not finite.
func (l *Ledger) Total(category string) float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return total(l.items, category)
}

// ByCategory sums amounts per category in order of first appearance.
func (l *Ledger) ByCategory() []core.CategoryAmount {
	l.mu.RLock()
	defer l.mu.RUnlock()

	index := make(map[string]int)
	sums := make([]decimal.Decimal, 0)
	invalid := make([]bool, 0)
	names := make([]string, 0)
	for _, e := range l.items {
		i, ok := index[e.Category]
		if !ok {
			i = len(names)
			index[e.Category] = i
			names = append(names, e.Category)
			sums = append(sums, decimal.Zero)
			invalid = append(invalid, false)
		}
		if !e.HasValidAmount() {
			invalid[i] = true
			continue
		}
		sums[i] = sums[i].Add(decimal.NewFromFloat(e.Amount))
	}

	out := make([]core.CategoryAmount, len(names))
	for i, name := range names {
		amount := sums[i].InexactFloat64()
		if invalid[i] {
			amount = math.NaN()
		}
		out[i] = core.CategoryAmount{Name: name, Amount: amount}
	}
	return out
}

// Reset drops every expense.
func (l *Ledger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = nil
}

func total(items []core.Expense, category string) float64 {
	sum := decimal.Zero
	for _, e := range items {
		if e.Category != category {
			continue
		}
		if !e.HasValidAmount() {
			return math.NaN()
		}
		sum = sum.Add(decimal.NewFromFloat(e.Amount))
	}
	return sum.InexactFloat64()
}
