package categorize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"budgetplanner/internal/core"
)

func TestSuggest(t *testing.T) {
	cases := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{"Groceries", "", false},
		{"groceries", "Groceries", true},
		{"Grocerys", "Groceries", true},
		{"Transprt", "Transport", true},
		{"Bils", "Bills", true},
		{"Vacation", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Suggest(tc.name, core.KnownCategories)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}
