package core

import (
	"errors"
	"math"
	"strings"
)

const (
	CategoryGroceries     = "Groceries"
	CategoryTransport     = "Transport"
	CategoryEntertainment = "Entertainment"
	CategoryBills         = "Bills"
	CategoryOther         = "Other"
	CategoryShopping      = "Shopping"
	CategoryHealth        = "Health & Wellness"
	CategoryDining        = "Dining Out"
	CategoryUtilities     = "Bills & Utilities"
)

// MaxDescriptionLength bounds free-text descriptions on manual entries.
const MaxDescriptionLength = 200

type (
	// Expense is a single spending record. Amount may be NaN when it was
	// imported from a statement cell that did not hold a number.
	Expense struct {
		Amount      float64
		Category    string
		Description string
	}
)

var (
	// KnownCategories lists the entry categories plus those only inference
	// produces. Budgets may still use any other name.
	KnownCategories = []string{
		CategoryGroceries,
		CategoryTransport,
		CategoryEntertainment,
		CategoryBills,
		CategoryOther,
		CategoryShopping,
		CategoryHealth,
		CategoryDining,
		CategoryUtilities,
	}

	// EntryCategories are offered on the manual entry form and seeded as
	// zero-ceiling budgets.
	EntryCategories = []string{
		CategoryGroceries,
		CategoryTransport,
		CategoryEntertainment,
		CategoryBills,
		CategoryOther,
	}
)

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrEmptyCategory      = errors.New("empty category")
	ErrDescriptionTooLong = errors.New("description too long (max 200 characters)")
)

// IsKnownCategory reports whether name exactly matches a known category.
func IsKnownCategory(name string) bool {
	for _, c := range KnownCategories {
		if c == name {
			return true
		}
	}
	return false
}

// HasValidAmount reports whether the amount is a finite number.
func (e Expense) HasValidAmount() bool {
	return IsFinite(e.Amount)
}

// Validate checks an expense entered by hand. Imported expenses skip this.
func (e Expense) Validate() error {
	if !e.HasValidAmount() {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if len(e.Description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}

// IsFinite reports whether f is neither NaN nor infinite.
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
