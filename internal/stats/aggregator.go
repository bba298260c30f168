// Package stats computes dashboard aggregates over a user's ledger: totals
// and trends over transactions, goal portfolio progress, and period-over-period
// insights. All computations are pure folds over data fetched through the
// ledger read ports; nothing here mutates stored state.
package stats

import (
	"context"
	"fmt"
	"sort"

	"campusbudget/internal/core"
	"campusbudget/internal/ledger"
)

// Aggregator folds a user's transactions into an AggregateWindow.
type Aggregator struct {
	txs ledger.TransactionReader
}

func NewAggregator(txs ledger.TransactionReader) *Aggregator {
	return &Aggregator{txs: txs}
}

// ComputeStats aggregates all of the user's transactions within the optional
// inclusive date range (zero bounds mean unbounded). Amounts are converted
// from cents to dollars per transaction and accumulated into one kind bucket
// each, a category breakdown, and month-keyed trends. An empty transaction
// set yields all-zero aggregates, not an error.
func (a *Aggregator) ComputeStats(ctx context.Context, userID string, from, to core.Date) (core.AggregateWindow, error) {
	txs, err := a.txs.ListTransactions(ctx, userID, from, to)
	if err != nil {
		return core.AggregateWindow{}, fmt.Errorf("list transactions: %w", err)
	}

	window := core.AggregateWindow{
		CategoryBreakdown: make(map[string]float64),
	}
	months := make(map[string]*core.MonthlyTrend)

	for _, tx := range txs {
		dollars := tx.Amount.Dollars()

		key := tx.Date.MonthKey()
		trend, ok := months[key]
		if !ok {
			trend = &core.MonthlyTrend{Month: key}
			months[key] = trend
		}

		// Kinds are mutually exclusive and exhaustive; anything else must
		// have been rejected at the boundary before reaching this fold.
		switch tx.Kind {
		case core.Income:
			window.TotalIncome += dollars
			trend.Income += dollars
		case core.Expense:
			window.TotalExpenses += dollars
			trend.Expenses += dollars
		case core.Savings:
			window.TotalSavings += dollars
			trend.Savings += dollars
		}

		window.CategoryBreakdown[tx.Category] += dollars
	}

	// Savings are money set aside, not spent: excluded from net balance.
	window.NetBalance = window.TotalIncome - window.TotalExpenses

	window.MonthlyTrends = make([]core.MonthlyTrend, 0, len(months))
	for _, trend := range months {
		window.MonthlyTrends = append(window.MonthlyTrends, *trend)
	}
	// Lexicographic sort is chronological for "YYYY-MM" keys.
	sort.Slice(window.MonthlyTrends, func(i, j int) bool {
		return window.MonthlyTrends[i].Month < window.MonthlyTrends[j].Month
	})

	return window, nil
}
