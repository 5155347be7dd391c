package ingest

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgetplanner/internal/categorize"
	"budgetplanner/internal/core"
)

func TestIngestScenario(t *testing.T) {
	rows := []Row{
		{"amount": "12.50", "description": "UBER TRIP"},
		{"amount": "bad", "category": "Bills"},
	}
	got := Ingest(rows)
	require.Len(t, got, 2)

	assert.Equal(t, core.Expense{Amount: 12.5, Category: "Transport", Description: "UBER TRIP"}, got[0])
	assert.True(t, math.IsNaN(got[1].Amount))
	assert.Equal(t, "Bills", got[1].Category)
	assert.Equal(t, "", got[1].Description)
	assert.Equal(t, 1, CountInvalid(got))
}

func TestIngestCategoryVerbatim(t *testing.T) {
	rows := []Row{
		{"amount": "1", "category": "Rent", "description": "uber"},
		{"amount": "2", "category": " groceries ", "description": "netflix"},
		{"amount": "3", "category": "", "description": "Netflix"},
		{"amount": "4"},
	}
	got := Ingest(rows)
	require.Len(t, got, len(rows))
	assert.Equal(t, "Rent", got[0].Category)
	assert.Equal(t, " groceries ", got[1].Category)
	assert.Equal(t, core.CategoryEntertainment, got[2].Category)
	assert.Equal(t, core.CategoryOther, got[3].Category)
	for i, e := range got {
		assert.Equal(t, float64(i+1), e.Amount, "order preserved at %d", i)
	}
}

func TestIngestEmpty(t *testing.T) {
	assert.Empty(t, Ingest(nil))
	assert.Equal(t, 0, CountInvalid(nil))
}

func TestIngestorCustomCategorizer(t *testing.T) {
	ing := NewIngestor(categorize.NewWithRules([]categorize.Rule{
		{Keywords: []string{"landlord"}, Category: "Housing"},
	}))
	got := ing.Ingest([]Row{{"amount": "900", "description": "LANDLORD LLC"}})
	assert.Equal(t, "Housing", got[0].Category)
}
