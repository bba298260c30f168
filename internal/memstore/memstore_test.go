package memstore

import (
	"context"
	"errors"
	"testing"

	"campusbudget/internal/core"
	"campusbudget/internal/ledger"
)

func TestTransactionCreateListDelete(t *testing.T) {
	s := New()
	ctx := context.Background()

	id, err := s.CreateTransaction(ctx, core.Transaction{
		UserID:   "u1",
		Kind:     core.Income,
		Amount:   core.Money{Cents: 10000},
		Category: "Salary",
		Date:     core.NewDate(2024, 1, 15),
	})
	if err != nil || id == "" {
		t.Fatalf("create: id=%q err=%v", id, err)
	}

	// Other user's listing must not see it
	txs, err := s.ListTransactions(ctx, "u2", core.Date{}, core.Date{})
	if err != nil || len(txs) != 0 {
		t.Fatalf("expected empty list for u2, got %d (err=%v)", len(txs), err)
	}

	txs, err = s.ListTransactions(ctx, "u1", core.Date{}, core.Date{})
	if err != nil || len(txs) != 1 {
		t.Fatalf("expected 1 transaction, got %d (err=%v)", len(txs), err)
	}

	if err := s.DeleteTransaction(ctx, "u1", id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.DeleteTransaction(ctx, "u1", id); !errors.Is(err, ledger.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListTransactionsDateBounds(t *testing.T) {
	s := New()
	ctx := context.Background()
	for _, d := range []core.Date{
		core.NewDate(2024, 1, 10),
		core.NewDate(2024, 1, 20),
		core.NewDate(2024, 2, 5),
	} {
		if _, err := s.CreateTransaction(ctx, core.Transaction{
			UserID: "u1", Kind: core.Expense, Amount: core.Money{Cents: 100},
			Category: "Food", Date: d,
		}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	cases := []struct {
		from, to core.Date
		want     int
	}{
		{core.Date{}, core.Date{}, 3},
		{core.NewDate(2024, 1, 15), core.Date{}, 2},
		{core.Date{}, core.NewDate(2024, 1, 15), 1},
		{core.NewDate(2024, 1, 10), core.NewDate(2024, 1, 20), 2}, // inclusive bounds
		{core.NewDate(2024, 3, 1), core.Date{}, 0},
	}
	for i, tc := range cases {
		txs, err := s.ListTransactions(ctx, "u1", tc.from, tc.to)
		if err != nil || len(txs) != tc.want {
			t.Fatalf("case %d: got %d, want %d (err=%v)", i, len(txs), tc.want, err)
		}
	}
}

func TestGoalLifecycle(t *testing.T) {
	s := New()
	ctx := context.Background()

	id, err := s.CreateGoal(ctx, core.Goal{
		UserID: "u1", Title: "Laptop",
		Target: core.Money{Cents: 50000},
		Status: core.Active,
	})
	if err != nil || id == "" {
		t.Fatalf("create: id=%q err=%v", id, err)
	}

	g, err := s.GetGoal(ctx, "u1", id)
	if err != nil || g.Title != "Laptop" {
		t.Fatalf("get: %+v err=%v", g, err)
	}
	if _, err := s.GetGoal(ctx, "u2", id); !errors.Is(err, ledger.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other user, got %v", err)
	}

	g.Saved = core.Money{Cents: 10000}
	if err := s.UpdateGoal(ctx, g); err != nil {
		t.Fatalf("update: %v", err)
	}
	g, _ = s.GetGoal(ctx, "u1", id)
	if g.Saved.Cents != 10000 {
		t.Fatalf("saved = %d, want 10000", g.Saved.Cents)
	}

	if err := s.DeleteGoal(ctx, "u1", id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	goals, _ := s.ListGoals(ctx, "u1")
	if len(goals) != 0 {
		t.Fatalf("expected no goals, got %d", len(goals))
	}
}

func TestCreateRejectsInvalid(t *testing.T) {
	s := New()
	ctx := context.Background()
	if _, err := s.CreateTransaction(ctx, core.Transaction{UserID: "u1"}); err == nil {
		t.Fatalf("expected validation error")
	}
	if _, err := s.CreateGoal(ctx, core.Goal{UserID: "u1"}); err == nil {
		t.Fatalf("expected validation error")
	}
}
