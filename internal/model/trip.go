package model

import "time"

// Trip is a cluster of transactions believed to belong to one business trip.
// A trip always has at least one member transaction, and every transaction
// belongs to at most one trip.
type Trip struct {
	StartDate       time.Time
	EndDate         time.Time
	ID              int64
	PrimaryLocation string
	BusinessPurpose string
	Transactions    []CategorizedTransaction
	TotalAmount     float64
	Confidence      float64
	Ready           bool
}

// DurationDays returns the inclusive length of the trip in days.
func (t *Trip) DurationDays() int {
	return int(t.EndDate.Sub(t.StartDate).Hours()/24) + 1
}

// CategoryTotals returns the summed amount per member category.
func (t *Trip) CategoryTotals() map[Category]float64 {
	totals := make(map[Category]float64)
	for _, txn := range t.Transactions {
		totals[txn.Category] += txn.Amount
	}
	return totals
}

// HasCategory reports whether any member transaction carries the category.
func (t *Trip) HasCategory(c Category) bool {
	for _, txn := range t.Transactions {
		if txn.Category == c {
			return true
		}
	}
	return false
}

// HasUnknown reports whether any member transaction is uncategorized.
func (t *Trip) HasUnknown() bool {
	return t.HasCategory(CategoryUnknown)
}
