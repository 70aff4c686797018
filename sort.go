package tracker

import (
	"fmt"
	"sort"
	"strings"
)

// SortField identifies a transaction field records can be ordered by.
type SortField string

const (
	ByDate        SortField = "date"
	ByAmount      SortField = "amount"
	ByDescription SortField = "description"
	ByCategory    SortField = "category"
)

// ParseSortField parses a string into a SortField.
func ParseSortField(s string) (SortField, error) {
	switch SortField(s) {
	case ByDate, ByAmount, ByDescription, ByCategory:
		return SortField(s), nil
	default:
		return "", fmt.Errorf("unknown sort field: %q", s)
	}
}

// SortOrder is the active display order: a field and a direction.
type SortOrder struct {
	Field     SortField
	Ascending bool
}

// DefaultSort is the per-session default: newest first.
func DefaultSort() SortOrder { return SortOrder{Field: ByDate, Ascending: false} }

// sortTransactions orders txs in place. Amounts compare numerically, dates
// chronologically, text fields as lowercase text. The sort is stable, so ties
// keep their insertion order in both directions (which means a descending
// view is not the exact reverse of the ascending one when ties exist).
func sortTransactions(txs []Transaction, order SortOrder) {
	less := func(a, b Transaction) bool {
		switch order.Field {
		case ByAmount:
			return a.Amount.LessThan(b.Amount)
		case ByDescription:
			return strings.ToLower(a.Description) < strings.ToLower(b.Description)
		case ByCategory:
			return strings.ToLower(a.Category) < strings.ToLower(b.Category)
		default:
			return a.Date.Before(b.Date)
		}
	}
	sort.SliceStable(txs, func(i, j int) bool {
		if order.Ascending {
			return less(txs[i], txs[j])
		}
		return less(txs[j], txs[i])
	})
}
