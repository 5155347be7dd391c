// Package budget holds per-category spending ceilings and the threshold
// monitor that decides when a category is nearly exhausted.
package budget

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"budgetplanner/internal/core"
)

var (
	ErrNegativeCeiling = errors.New("budget ceiling must not be negative")
	ErrInvalidCeiling  = errors.New("budget ceiling must be a number")
	ErrEmptyName       = errors.New("budget category name is empty")
)

// Budgets maps a category name to its ceiling. Names are free text.
type Budgets map[string]float64

// Defaults returns the zero-ceiling budgets shown on a fresh form.
func Defaults() Budgets {
	b := make(Budgets, len(core.EntryCategories))
	for _, c := range core.EntryCategories {
		b[c] = 0
	}
	return b
}

// Ceiling returns the ceiling for category and whether one is set (> 0).
func (b Budgets) Ceiling(category string) (float64, bool) {
	c, ok := b[category]
	if !ok || !core.IsFinite(c) || c <= 0 {
		return 0, false
	}
	return c, true
}

// Validate rejects blank names and negative or non-numeric ceilings.
func (b Budgets) Validate() error {
	var errs []error
	for _, name := range b.Names() {
		c := b[name]
		switch {
		case strings.TrimSpace(name) == "":
			errs = append(errs, ErrEmptyName)
		case !core.IsFinite(c):
			errs = append(errs, fmt.Errorf("%s: %w", name, ErrInvalidCeiling))
		case c < 0:
			errs = append(errs, fmt.Errorf("%s: %w", name, ErrNegativeCeiling))
		}
	}
	return errors.Join(errs...)
}

// Clone returns an independent copy.
func (b Budgets) Clone() Budgets {
	out := make(Budgets, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Names returns the category names with entry categories first, in form
// order, followed by the rest alphabetically.
func (b Budgets) Names() []string {
	names := make([]string, 0, len(b))
	seen := make(map[string]bool, len(b))
	for _, c := range core.EntryCategories {
		if _, ok := b[c]; ok {
			names = append(names, c)
			seen[c] = true
		}
	}
	var rest []string
	for k := range b {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}
