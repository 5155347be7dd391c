package http

import (
	"fmt"
	"html/template"
	"math"
	"strings"

	"github.com/gosimple/slug"

	"budgetplanner/internal/budget"
	"budgetplanner/internal/core"
)

var chartColors = []string{"#8884d8", "#82ca9d", "#ffc658", "#ff8042", "#a4de6c", "#ffb6b9", "#d0ed57"}

// elementID gives a stable DOM id for a free-text category name.
func elementID(prefix, name string) string {
	s := slug.Make(name)
	if s == "" {
		s = "blank"
	}
	return prefix + "-" + s
}

type chartRow struct {
	ID     string
	Name   string
	Amount string
	Width  int
	Share  string
	Color  string
}

type chartView struct {
	Rows  []chartRow
	Total string
	Pie   template.CSS
	Empty bool
}

// buildChart lays out bar widths relative to the largest category and a
// conic-gradient for the pie. Categories whose total is NaN get no bar or
// slice but are still listed.
func buildChart(items []core.CategoryAmount) chartView {
	view := chartView{Empty: len(items) == 0}
	var max, sum float64
	for _, it := range items {
		if core.IsFinite(it.Amount) && it.Amount > 0 {
			sum += it.Amount
			if it.Amount > max {
				max = it.Amount
			}
		}
	}
	view.Total = core.FormatAmount(core.SumCategories(items))

	var stops []string
	var start float64
	for i, it := range items {
		row := chartRow{
			ID:     elementID("chart", it.Name),
			Name:   it.Name,
			Amount: core.FormatAmount(it.Amount),
			Color:  chartColors[i%len(chartColors)],
			Share:  "-",
		}
		if core.IsFinite(it.Amount) && it.Amount > 0 && max > 0 {
			row.Width = barWidth(it.Amount, max)
			share := it.Share(sum) * 100
			row.Share = fmt.Sprintf("%.1f%%", share)
			end := start + share
			stops = append(stops, fmt.Sprintf("%s %.2f%% %.2f%%", row.Color, start, end))
			start = end
		}
		view.Rows = append(view.Rows, row)
	}
	if len(stops) > 0 {
		view.Pie = template.CSS("background: conic-gradient(" + strings.Join(stops, ", ") + ")")
	}
	return view
}

// barWidth returns a percentage, never below 2 so tiny values stay visible.
func barWidth(v, max float64) int {
	w := int(math.Round(v / max * 100))
	if w < 2 {
		w = 2
	}
	if w > 100 {
		w = 100
	}
	return w
}

type historyRow struct {
	Category    string
	Amount      string
	Description string
}

func buildHistory(expenses []core.Expense) []historyRow {
	rows := make([]historyRow, 0, len(expenses))
	for _, e := range expenses {
		row := historyRow{Category: e.Category, Amount: core.FormatAmount(e.Amount)}
		if e.Category == core.CategoryOther {
			row.Description = e.Description
		}
		rows = append(rows, row)
	}
	return rows
}

type budgetRow struct {
	ID      string
	Name    string
	Ceiling string
}

// buildBudgetRows lists saved budgets, falling back to the zero defaults.
func buildBudgetRows(b budget.Budgets) []budgetRow {
	if len(b) == 0 {
		b = budget.Defaults()
	}
	rows := make([]budgetRow, 0, len(b))
	for _, name := range b.Names() {
		rows = append(rows, budgetRow{
			ID:      elementID("budget", name),
			Name:    name,
			Ceiling: fmt.Sprintf("%.2f", b[name]),
		})
	}
	return rows
}

func alertMessage(e budget.AlertEvent) string {
	if e.Total >= e.Ceiling {
		return fmt.Sprintf("%s budget exceeded: %s spent of %s.", e.Category, core.FormatAmount(e.Total), core.FormatAmount(e.Ceiling))
	}
	return fmt.Sprintf("%s budget almost used: %s spent of %s.", e.Category, core.FormatAmount(e.Total), core.FormatAmount(e.Ceiling))
}
