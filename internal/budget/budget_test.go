package budget

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	d := Defaults()
	assert.Equal(t, []string{"Groceries", "Transport", "Entertainment", "Bills", "Other"}, d.Names())
	for _, v := range d {
		assert.Zero(t, v)
	}
}

func TestCeiling(t *testing.T) {
	b := Budgets{"Bills": 200, "Other": 0}
	c, ok := b.Ceiling("Bills")
	assert.True(t, ok)
	assert.Equal(t, 200.0, c)
	_, ok = b.Ceiling("Other")
	assert.False(t, ok)
	_, ok = b.Ceiling("Missing")
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Budgets{"Bills": 10, "Vacation": 0}.Validate())
	assert.ErrorIs(t, Budgets{"Bills": -1}.Validate(), ErrNegativeCeiling)
	assert.ErrorIs(t, Budgets{"Bills": math.NaN()}.Validate(), ErrInvalidCeiling)
	assert.ErrorIs(t, Budgets{" ": 5}.Validate(), ErrEmptyName)
}

func TestNamesAndClone(t *testing.T) {
	b := Budgets{"Vacation": 1, "Bills": 2, "Books": 3}
	assert.Equal(t, []string{"Bills", "Books", "Vacation"}, b.Names())
	c := b.Clone()
	c["Bills"] = 99
	assert.Equal(t, 2.0, b["Bills"])
}
