// Package ingest turns bank statements into expense records.
//
// Reading a statement happens in two steps. A tokenizer (CSV or XLSX) turns
// the file into header-keyed rows and owns every structural failure. The
// Ingestor then maps rows to expenses and never fails: a row with an
// unreadable amount is kept with a NaN amount.
package ingest

import (
	"budgetplanner/internal/categorize"
	"budgetplanner/internal/core"
)

// Column names recognised in a statement header.
const (
	ColumnAmount      = "amount"
	ColumnCategory    = "category"
	ColumnDescription = "description"
)

// Row is one tokenized statement record keyed by lower-cased header name.
type Row map[string]string

// Ingestor maps statement rows to expenses.
type Ingestor struct {
	categorizer *categorize.Categorizer
}

// NewIngestor returns an Ingestor that infers missing categories with c.
// A nil categorizer uses the default rule table.
func NewIngestor(c *categorize.Categorizer) *Ingestor {
	if c == nil {
		c = categorize.New()
	}
	return &Ingestor{categorizer: c}
}

// Ingest converts rows in order. The result always has len(rows) entries.
func (i *Ingestor) Ingest(rows []Row) []core.Expense {
	out := make([]core.Expense, len(rows))
	for n, row := range rows {
		out[n] = i.expense(row)
	}
	return out
}

func (i *Ingestor) expense(row Row) core.Expense {
	desc := row[ColumnDescription]
	category := row[ColumnCategory]
	if category == "" {
		category = i.categorizer.Guess(desc)
	}
	return core.Expense{
		Amount:      core.ParseAmount(row[ColumnAmount]),
		Category:    category,
		Description: desc,
	}
}

// Ingest converts rows with the default rule table.
func Ingest(rows []Row) []core.Expense {
	return NewIngestor(nil).Ingest(rows)
}

// CountInvalid returns how many expenses carry a non-finite amount.
func CountInvalid(expenses []core.Expense) int {
	n := 0
	for _, e := range expenses {
		if !e.HasValidAmount() {
			n++
		}
	}
	return n
}
