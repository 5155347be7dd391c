package categorize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"budgetplanner/internal/core"
)

func TestGuess(t *testing.T) {
	cases := []struct {
		desc string
		want string
	}{
		{"UBER TRIP 1234", core.CategoryTransport},
		{"Lyft ride", core.CategoryTransport},
		{"WALMART SUPERCENTER", core.CategoryGroceries},
		{"Aldi #12", core.CategoryGroceries},
		{"corner grocery", core.CategoryGroceries},
		{"NETFLIX.COM", core.CategoryEntertainment},
		{"Spotify premium", core.CategoryEntertainment},
		{"movie tickets", core.CategoryEntertainment},
		{"AMAZON MKTPLACE", core.CategoryShopping},
		{"Target store", core.CategoryShopping},
		{"APPLE.COM/BILL", core.CategoryShopping},
		{"itunes purchase", core.CategoryShopping},
		{"Doctor visit", core.CategoryHealth},
		{"CVS PHARMACY", core.CategoryHealth},
		{"city hospital", core.CategoryHealth},
		{"STARBUCKS 55", core.CategoryDining},
		{"Cafe Luna", core.CategoryDining},
		{"restaurant week", core.CategoryDining},
		{"COMCAST CABLE", core.CategoryUtilities},
		{"PG&E payment", core.CategoryUtilities},
		{"water utility", core.CategoryUtilities},
		{"Gold's GYM", core.CategoryHealth},
		{"fitness first", core.CategoryHealth},
		{"rent march", core.CategoryOther},
		{"", core.CategoryOther},
	}
	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.want, Guess(tc.desc))
		})
	}
}

func TestGuessPriority(t *testing.T) {
	// Transport outranks Entertainment.
	assert.Equal(t, core.CategoryTransport, Guess("uber to netflix party"))
	assert.Equal(t, core.CategoryTransport, Guess("NETFLIX then UBER"))
	// Health rule 5 and rule 8 agree, but Dining at 6 outranks gym at 8.
	assert.Equal(t, core.CategoryDining, Guess("gym cafe"))
}

func TestCustomRules(t *testing.T) {
	c := NewWithRules([]Rule{
		{Keywords: []string{"  RENT "}, Category: "Housing"},
		{Keywords: []string{""}, Category: "Never"},
	})
	assert.Equal(t, "Housing", c.Guess("March rent"))
	assert.Equal(t, core.CategoryOther, c.Guess("anything else"))
	assert.Len(t, c.Rules(), 2)
	assert.Empty(t, c.Rules()[1].Keywords)
}
