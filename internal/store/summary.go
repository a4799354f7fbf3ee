package store

import "sort"

// CategorySummary is one row of a category rollup: everything spent in one
// category plus the number of contributing items or transactions.
type CategorySummary struct {
	Category   string  `json:"category"`
	TotalSpent float64 `json:"totalSpent"`
	Count      int     `json:"count"`
}

// DailySpend is one row of a time-bucketed rollup, keyed by ISO date string.
type DailySpend struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

// Rollups are always recomputed in-process from the full record set on each
// request: the vector database has no native aggregation, and keeping no
// cached aggregates means there is no invalidation to reason about.

// categoryAccumulator folds (category, amount) observations into per-category
// totals and counts. Categories never observed are simply absent.
type categoryAccumulator map[string]*CategorySummary

func newCategoryAccumulator() categoryAccumulator {
	return categoryAccumulator{}
}

func (acc categoryAccumulator) add(category string, amount float64) {
	entry, ok := acc[category]
	if !ok {
		entry = &CategorySummary{Category: category}
		acc[category] = entry
	}
	entry.TotalSpent += amount
	entry.Count++
}

// summaries returns the accumulated rows sorted descending by total spent.
func (acc categoryAccumulator) summaries() []CategorySummary {
	out := make([]CategorySummary, 0, len(acc))
	for _, entry := range acc {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].TotalSpent > out[j].TotalSpent
	})
	return out
}

// dailyTotals folds (date, amount) observations into per-date totals.
type dailyTotals map[string]float64

func (d dailyTotals) add(date string, amount float64) {
	d[date] += amount
}

// series returns the accumulated rows sorted ascending by date string;
// ISO dates make lexicographic order chronological.
func (d dailyTotals) series() []DailySpend {
	out := make([]DailySpend, 0, len(d))
	for date, total := range d {
		out = append(out, DailySpend{Date: date, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out
}
