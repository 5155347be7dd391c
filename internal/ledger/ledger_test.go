package ledger

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgetplanner/internal/core"
)

func TestAppendRoundTrip(t *testing.T) {
	l := New()
	e := core.Expense{Amount: 12.34, Category: "Other", Description: "  gift  "}
	l.Append(e)
	require.Equal(t, 1, l.Len())
	assert.Equal(t, e, l.All()[0])
}

func TestAppendReturnsCategoryTotal(t *testing.T) {
	l := New()
	assert.Equal(t, 0.1, l.Append(core.Expense{Amount: 0.1, Category: "Bills"}))
	assert.Equal(t, 5.0, l.Append(core.Expense{Amount: 5, Category: "Transport"}))
	assert.Equal(t, 0.3, l.Append(core.Expense{Amount: 0.2, Category: "Bills"}), "decimal sum avoids 0.30000000000000004")
	assert.Equal(t, 0.3, l.Total("Bills"))
	assert.Equal(t, 0.0, l.Total("Groceries"))
}

func TestTotalWithInvalidAmount(t *testing.T) {
	l := New()
	l.AppendAll([]core.Expense{
		{Amount: 10, Category: "Bills"},
		{Amount: math.NaN(), Category: "Bills"},
		{Amount: 4, Category: "Transport"},
	})
	assert.True(t, math.IsNaN(l.Total("Bills")))
	assert.Equal(t, 4.0, l.Total("Transport"))
}

func TestByCategoryFirstAppearanceOrder(t *testing.T) {
	l := New()
	l.AppendAll([]core.Expense{
		{Amount: 3, Category: "Transport"},
		{Amount: 1, Category: "Groceries"},
		{Amount: 2, Category: "Transport"},
		{Amount: math.NaN(), Category: "Bills"},
	})
	got := l.ByCategory()
	require.Len(t, got, 3)
	assert.Equal(t, core.CategoryAmount{Name: "Transport", Amount: 5}, got[0])
	assert.Equal(t, core.CategoryAmount{Name: "Groceries", Amount: 1}, got[1])
	assert.Equal(t, "Bills", got[2].Name)
	assert.True(t, math.IsNaN(got[2].Amount))
}

func TestResetAndCopies(t *testing.T) {
	l := New()
	l.Append(core.Expense{Amount: 1, Category: "Other"})
	all := l.All()
	all[0].Amount = 99
	assert.Equal(t, 1.0, l.All()[0].Amount)
	l.Reset()
	assert.Equal(t, 0, l.Len())
	assert.Empty(t, l.ByCategory())
}

func TestConcurrentAppend(t *testing.T) {
	l := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Append(core.Expense{Amount: 1, Category: "Bills"})
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, l.Len())
	assert.Equal(t, 50.0, l.Total("Bills"))
}
