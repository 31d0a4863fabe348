package trip

import (
	"sort"

	store "tripmate/store/store"
)

// CategoryShare is one row of the spending breakdown.
type CategoryShare struct {
	Category store.ExpenseCategory `json:"category"`
	Total    float64               `json:"total"`
	Percent  float64               `json:"percent"`
}

// PersonalExpenses filters the full list down to entries owned by userID.
func PersonalExpenses(expenses []store.Expense, userID int) []store.Expense {
	out := make([]store.Expense, 0, len(expenses))
	for _, e := range expenses {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out
}

// TotalAmount sums the amounts of the given expenses.
func TotalAmount(expenses []store.Expense) float64 {
	total := 0.0
	for _, e := range expenses {
		total += e.Amount
	}
	return total
}

// SortByDate orders expenses by date, newest first when newestFirst is set.
// The input slice is not modified.
func SortByDate(expenses []store.Expense, newestFirst bool) []store.Expense {
	sorted := make([]store.Expense, len(expenses))
	copy(sorted, expenses)
	sort.SliceStable(sorted, func(i, j int) bool {
		if newestFirst {
			return sorted[i].Date.After(sorted[j].Date)
		}
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

// CategoryBreakdown aggregates spending per category and returns the shares
// sorted by amount, largest first. Percentages are relative to the summed
// total; with a zero total the result is empty.
func CategoryBreakdown(expenses []store.Expense) []CategoryShare {
	totals := make(map[store.ExpenseCategory]float64)
	for _, e := range expenses {
		totals[e.Category] += e.Amount
	}

	grand := 0.0
	for _, v := range totals {
		grand += v
	}
	if grand == 0 {
		return nil
	}

	shares := make([]CategoryShare, 0, len(totals))
	for cat, total := range totals {
		shares = append(shares, CategoryShare{
			Category: cat,
			Total:    total,
			Percent:  total / grand * 100,
		})
	}
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Total > shares[j].Total
	})
	return shares
}
