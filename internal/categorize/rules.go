// Package categorize infers spending categories from transaction descriptions.
package categorize

import (
	"strings"

	"budgetplanner/internal/core"
)

// Rule maps a set of lower-case keywords to a category.
type Rule struct {
	Keywords []string
	Category string
}

// DefaultRules is evaluated in order; the first rule with a keyword contained
// in the description wins.
var DefaultRules = []Rule{
	{Keywords: []string{"uber", "lyft"}, Category: core.CategoryTransport},
	{Keywords: []string{"walmart", "aldi", "grocery"}, Category: core.CategoryGroceries},
	{Keywords: []string{"netflix", "spotify", "movie"}, Category: core.CategoryEntertainment},
	{Keywords: []string{"amazon", "target", "apple.com", "itunes"}, Category: core.CategoryShopping},
	{Keywords: []string{"doctor", "pharmacy", "hospital"}, Category: core.CategoryHealth},
	{Keywords: []string{"starbucks", "cafe", "restaurant"}, Category: core.CategoryDining},
	{Keywords: []string{"comcast", "pg&e", "utility"}, Category: core.CategoryUtilities},
	{Keywords: []string{"gym", "fitness"}, Category: core.CategoryHealth},
}

// Categorizer assigns categories using an ordered rule table.
type Categorizer struct {
	rules    []Rule
	fallback string
}

// New returns a Categorizer using DefaultRules.
func New() *Categorizer {
	return NewWithRules(DefaultRules)
}

// NewWithRules returns a Categorizer over rules. Keywords are lower-cased.
func NewWithRules(rules []Rule) *Categorizer {
	normalized := make([]Rule, 0, len(rules))
	for _, r := range rules {
		kws := make([]string, 0, len(r.Keywords))
		for _, k := range r.Keywords {
			if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
				kws = append(kws, k)
			}
		}
		normalized = append(normalized, Rule{Keywords: kws, Category: r.Category})
	}
	return &Categorizer{rules: normalized, fallback: core.CategoryOther}
}

// Guess returns the category for description, or Other when nothing matches.
func (c *Categorizer) Guess(description string) string {
	d := strings.ToLower(description)
	for _, r := range c.rules {
		for _, k := range r.Keywords {
			if strings.Contains(d, k) {
				return r.Category
			}
		}
	}
	return c.fallback
}

// Rules returns a copy of the rule table in evaluation order.
func (c *Categorizer) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

var defaultCategorizer = New()

// Guess classifies description with the default rule table.
func Guess(description string) string {
	return defaultCategorizer.Guess(description)
}
