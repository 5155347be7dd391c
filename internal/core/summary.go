package core

// CategoryAmount is an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount float64
}

// Share returns the fraction of total this category represents, or 0 when
// either side is not a usable number.
func (c CategoryAmount) Share(total float64) float64 {
	if !IsFinite(c.Amount) || !IsFinite(total) || total == 0 {
		return 0
	}
	return c.Amount / total
}

// SumCategories adds the finite category amounts.
func SumCategories(items []CategoryAmount) float64 {
	var total float64
	for _, it := range items {
		if IsFinite(it.Amount) {
			total += it.Amount
		}
	}
	return total
}
