package stats

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"campusbudget/internal/core"
	"campusbudget/internal/memstore"
)

func seedTransactions(t *testing.T, s *memstore.Store, txs []core.Transaction) {
	t.Helper()
	for _, tx := range txs {
		if _, err := s.CreateTransaction(context.Background(), tx); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func TestComputeStatsPartitionsByKind(t *testing.T) {
	s := memstore.New()
	seedTransactions(t, s, []core.Transaction{
		{UserID: "u1", Kind: core.Income, Amount: core.Money{Cents: 10000}, Category: "Salary", Date: core.NewDate(2024, 1, 15)},
		{UserID: "u1", Kind: core.Expense, Amount: core.Money{Cents: 4000}, Category: "Food", Date: core.NewDate(2024, 1, 20)},
		{UserID: "u1", Kind: core.Income, Amount: core.Money{Cents: 5000}, Category: "Tutoring", Date: core.NewDate(2024, 2, 1)},
	})

	agg := NewAggregator(s)
	window, err := agg.ComputeStats(context.Background(), "u1", core.Date{}, core.Date{})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	if window.TotalIncome != 150.00 {
		t.Errorf("income = %v, want 150", window.TotalIncome)
	}
	if window.TotalExpenses != 40.00 {
		t.Errorf("expenses = %v, want 40", window.TotalExpenses)
	}
	if window.TotalSavings != 0 {
		t.Errorf("savings = %v, want 0", window.TotalSavings)
	}
	if window.NetBalance != 110.00 {
		t.Errorf("net = %v, want 110", window.NetBalance)
	}

	want := []core.MonthlyTrend{
		{Month: "2024-01", Income: 100, Expenses: 40},
		{Month: "2024-02", Income: 50},
	}
	if !reflect.DeepEqual(window.MonthlyTrends, want) {
		t.Errorf("trends = %+v, want %+v", window.MonthlyTrends, want)
	}

	wantCats := map[string]float64{"Salary": 100, "Food": 40, "Tutoring": 50}
	if !reflect.DeepEqual(window.CategoryBreakdown, wantCats) {
		t.Errorf("categories = %+v, want %+v", window.CategoryBreakdown, wantCats)
	}
}

func TestComputeStatsSavingsExcludedFromNet(t *testing.T) {
	s := memstore.New()
	seedTransactions(t, s, []core.Transaction{
		{UserID: "u1", Kind: core.Income, Amount: core.Money{Cents: 20000}, Category: "Salary", Date: core.NewDate(2024, 3, 1)},
		{UserID: "u1", Kind: core.Expense, Amount: core.Money{Cents: 5000}, Category: "Rent", Date: core.NewDate(2024, 3, 2)},
		{UserID: "u1", Kind: core.Savings, Amount: core.Money{Cents: 7500}, Category: "Emergency Fund", Date: core.NewDate(2024, 3, 3)},
	})

	agg := NewAggregator(s)
	window, err := agg.ComputeStats(context.Background(), "u1", core.Date{}, core.Date{})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if window.TotalSavings != 75.00 {
		t.Errorf("savings = %v, want 75", window.TotalSavings)
	}
	if window.NetBalance != 150.00 {
		t.Errorf("net = %v, want 150 (savings must not affect net balance)", window.NetBalance)
	}

	// The three buckets together account for every dollar, exactly once.
	sum := window.TotalIncome + window.TotalExpenses + window.TotalSavings
	if sum != 325.00 {
		t.Errorf("bucket sum = %v, want 325", sum)
	}
}

func TestComputeStatsEmptySet(t *testing.T) {
	agg := NewAggregator(memstore.New())
	window, err := agg.ComputeStats(context.Background(), "nobody", core.Date{}, core.Date{})
	if err != nil {
		t.Fatalf("empty set must not error: %v", err)
	}
	if window.TotalIncome != 0 || window.TotalExpenses != 0 || window.TotalSavings != 0 || window.NetBalance != 0 {
		t.Errorf("expected all-zero aggregates, got %+v", window)
	}
	if len(window.MonthlyTrends) != 0 || len(window.CategoryBreakdown) != 0 {
		t.Errorf("expected empty breakdowns, got %+v", window)
	}
}

func TestComputeStatsDateWindow(t *testing.T) {
	s := memstore.New()
	seedTransactions(t, s, []core.Transaction{
		{UserID: "u1", Kind: core.Expense, Amount: core.Money{Cents: 1000}, Category: "Food", Date: core.NewDate(2024, 1, 5)},
		{UserID: "u1", Kind: core.Expense, Amount: core.Money{Cents: 2000}, Category: "Food", Date: core.NewDate(2024, 2, 5)},
		{UserID: "u1", Kind: core.Expense, Amount: core.Money{Cents: 4000}, Category: "Food", Date: core.NewDate(2024, 3, 5)},
	})

	agg := NewAggregator(s)
	window, err := agg.ComputeStats(context.Background(), "u1", core.NewDate(2024, 2, 5), core.NewDate(2024, 3, 4))
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if window.TotalExpenses != 20.00 {
		t.Errorf("expenses = %v, want 20 (inclusive from, exclusive of later months)", window.TotalExpenses)
	}
}

func TestComputeStatsMonthlyTrendsSortedAndUnique(t *testing.T) {
	s := memstore.New()
	// Insert out of chronological order
	seedTransactions(t, s, []core.Transaction{
		{UserID: "u1", Kind: core.Income, Amount: core.Money{Cents: 100}, Category: "a", Date: core.NewDate(2024, 11, 1)},
		{UserID: "u1", Kind: core.Income, Amount: core.Money{Cents: 100}, Category: "a", Date: core.NewDate(2023, 12, 1)},
		{UserID: "u1", Kind: core.Income, Amount: core.Money{Cents: 100}, Category: "a", Date: core.NewDate(2024, 2, 1)},
		{UserID: "u1", Kind: core.Income, Amount: core.Money{Cents: 100}, Category: "a", Date: core.NewDate(2024, 2, 20)},
	})

	agg := NewAggregator(s)
	window, err := agg.ComputeStats(context.Background(), "u1", core.Date{}, core.Date{})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	months := make([]string, 0, len(window.MonthlyTrends))
	for _, tr := range window.MonthlyTrends {
		months = append(months, tr.Month)
	}
	want := []string{"2023-12", "2024-02", "2024-11"}
	if !reflect.DeepEqual(months, want) {
		t.Errorf("months = %v, want %v", months, want)
	}
}

func TestComputeStatsIdempotent(t *testing.T) {
	s := memstore.New()
	seedTransactions(t, s, []core.Transaction{
		{UserID: "u1", Kind: core.Income, Amount: core.Money{Cents: 12345}, Category: "Salary", Date: core.NewDate(2024, 5, 1)},
		{UserID: "u1", Kind: core.Expense, Amount: core.Money{Cents: 678}, Category: "Coffee", Date: core.NewDate(2024, 5, 2)},
	})

	agg := NewAggregator(s)
	first, err := agg.ComputeStats(context.Background(), "u1", core.Date{}, core.Date{})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	second, err := agg.ComputeStats(context.Background(), "u1", core.Date{}, core.Date{})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated computation differs:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

type failingReader struct{ err error }

func (f failingReader) ListTransactions(_ context.Context, _ string, _, _ core.Date) ([]core.Transaction, error) {
	return nil, f.err
}

func TestComputeStatsPropagatesStoreFailure(t *testing.T) {
	storeErr := errors.New("store unavailable")
	agg := NewAggregator(failingReader{err: storeErr})
	_, err := agg.ComputeStats(context.Background(), "u1", core.Date{}, core.Date{})
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}
