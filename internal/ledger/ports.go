package ledger

import (
	"context"

	"campusbudget/internal/core"
)

// Ports for outbound adapters. The stats components consume the readers only;
// nothing in this package holds process-wide state, so tests can supply
// deterministic fixtures and concurrent requests never interleave unsafely.
type (
	// TransactionReader lists one user's transactions. Zero-value bounds mean
	// "unbounded"; when set, both bounds are inclusive.
	TransactionReader interface {
		ListTransactions(ctx context.Context, userID string, from, to core.Date) ([]core.Transaction, error)
	}

	TransactionWriter interface {
		CreateTransaction(ctx context.Context, t core.Transaction) (id string, err error)
		DeleteTransaction(ctx context.Context, userID, id string) error
	}

	GoalReader interface {
		ListGoals(ctx context.Context, userID string) ([]core.Goal, error)
		GetGoal(ctx context.Context, userID, id string) (core.Goal, error)
	}

	GoalWriter interface {
		CreateGoal(ctx context.Context, g core.Goal) (id string, err error)
		UpdateGoal(ctx context.Context, g core.Goal) error
		DeleteGoal(ctx context.Context, userID, id string) error
	}

	// Store is the full read/write surface a backend must provide.
	Store interface {
		TransactionReader
		TransactionWriter
		GoalReader
		GoalWriter
	}
)
