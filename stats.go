package tracker

import (
	"sort"

	"github.com/etnz/tracker/date"
	"github.com/shopspring/decimal"
)

// CategoryBreakdown is the spend accumulated for one category, with its share
// of the overall total.
type CategoryBreakdown struct {
	Category string
	Amount   decimal.Decimal
	Share    Percent
}

// Statistics is the set of aggregates derived from the transaction
// collection. It is recomputed on every call, never cached.
type Statistics struct {
	Count       int
	Total       decimal.Decimal
	TopCategory string
	Last7Days   decimal.Decimal
	MonthToDate decimal.Decimal
	BudgetCap   decimal.Decimal // zero when no cap is set
	OverBudget  bool
	Categories  []CategoryBreakdown
}

// statisticsOn derives all aggregates for the given day, taken as "today".
//
// Tie-breaks are explicit rules here, not traversal accidents: the top
// category is the first-accumulated one among equals, and the breakdown keeps
// first-appearance order among equal amounts (stable sort).
func statisticsOn(txs []Transaction, budgetCap decimal.Decimal, on date.Date) Statistics {
	stats := Statistics{Count: len(txs), BudgetCap: budgetCap}

	week := date.Trailing(on, 7)
	month := date.NewRange(on.StartOfMonth(), on)

	totals := make(map[string]decimal.Decimal)
	var order []string // categories in first-appearance order
	for _, tx := range txs {
		stats.Total = stats.Total.Add(tx.Amount)
		if week.Contains(tx.Date) {
			stats.Last7Days = stats.Last7Days.Add(tx.Amount)
		}
		if month.Contains(tx.Date) {
			stats.MonthToDate = stats.MonthToDate.Add(tx.Amount)
		}
		if _, seen := totals[tx.Category]; !seen {
			order = append(order, tx.Category)
		}
		totals[tx.Category] = totals[tx.Category].Add(tx.Amount)
	}

	var top string
	var topAmount decimal.Decimal
	for _, category := range order {
		// strictly greater: on a tie the first-accumulated category stays.
		if amount := totals[category]; top == "" || amount.GreaterThan(topAmount) {
			top, topAmount = category, amount
		}
	}
	stats.TopCategory = top

	breakdown := make([]CategoryBreakdown, 0, len(order))
	for _, category := range order {
		amount := totals[category]
		var share Percent
		if stats.Total.IsPositive() {
			share = Percent(amount.Div(stats.Total).Mul(decimal.NewFromInt(100)).InexactFloat64())
		}
		breakdown = append(breakdown, CategoryBreakdown{Category: category, Amount: amount, Share: share})
	}
	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Amount.GreaterThan(breakdown[j].Amount)
	})
	stats.Categories = breakdown

	if budgetCap.IsPositive() && stats.MonthToDate.GreaterThan(budgetCap) {
		stats.OverBudget = true
	}
	return stats
}
