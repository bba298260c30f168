package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"campusbudget/internal/core"
	"campusbudget/internal/ledger"
	"campusbudget/internal/log"

	_ "modernc.org/sqlite"
)

// Dates are stored as "YYYY-MM-DD" text so range filters and trend bucketing
// work with plain lexicographic comparison.
const dateLayout = "2006-01-02"

// SQLiteRepository implements ledger.Store on a local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Run migrations
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// CreateTransaction implements ledger.TransactionWriter
func (r *SQLiteRepository) CreateTransaction(ctx context.Context, t core.Transaction) (string, error) {
	if err := t.Validate(); err != nil {
		return "", fmt.Errorf("validate transaction: %w", err)
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (id, user_id, kind, amount_cents, category, occurred_on, note)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserID, string(t.Kind), t.Amount.Cents, t.Category,
		t.Date.Format(dateLayout), t.Note)
	if err != nil {
		return "", fmt.Errorf("insert transaction: %w", err)
	}

	fields := log.NewFields().
		WithComponent(log.ComponentStorage).
		WithOperation(log.OpCreate).
		WithUserID(t.UserID).
		WithTransaction(t.ID, string(t.Kind), t.Category, t.Amount.Cents)
	slog.InfoContext(ctx, "Transaction saved", fields.ToSlice()...)

	return t.ID, nil
}

// DeleteTransaction implements ledger.TransactionWriter
func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete transaction rows affected: %w", err)
	}
	if affected == 0 {
		return ledger.ErrNotFound
	}
	return nil
}

// ListTransactions implements ledger.TransactionReader. Zero-value bounds
// are unbounded; set bounds are inclusive.
func (r *SQLiteRepository) ListTransactions(ctx context.Context, userID string, from, to core.Date) ([]core.Transaction, error) {
	query := `SELECT id, user_id, kind, amount_cents, category, occurred_on, note
		FROM transactions WHERE user_id = ?`
	args := []any{userID}

	if !from.IsEmpty() {
		query += ` AND occurred_on >= ?`
		args = append(args, from.Format(dateLayout))
	}
	if !to.IsEmpty() {
		query += ` AND occurred_on <= ?`
		args = append(args, to.Format(dateLayout))
	}
	query += ` ORDER BY occurred_on, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var (
			t        core.Transaction
			kind     string
			occurred string
		)
		if err := rows.Scan(&t.ID, &t.UserID, &kind, &t.Amount.Cents, &t.Category, &occurred, &t.Note); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.Kind = core.TransactionKind(kind)
		date, err := time.Parse(dateLayout, occurred)
		if err != nil {
			return nil, fmt.Errorf("parse transaction date %q: %w", occurred, err)
		}
		t.Date = core.Date{Time: date}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

// CreateGoal implements ledger.GoalWriter
func (r *SQLiteRepository) CreateGoal(ctx context.Context, g core.Goal) (string, error) {
	if err := g.Validate(); err != nil {
		return "", fmt.Errorf("validate goal: %w", err)
	}
	if g.ID == "" {
		g.ID = uuid.NewString()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO goals (id, user_id, title, target_cents, saved_cents, deadline, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.UserID, g.Title, g.Target.Cents, g.Saved.Cents,
		deadlineParam(g.Deadline), string(g.Status))
	if err != nil {
		return "", fmt.Errorf("insert goal: %w", err)
	}

	fields := log.NewFields().
		WithComponent(log.ComponentStorage).
		WithOperation(log.OpCreate).
		WithUserID(g.UserID).
		WithGoal(g.ID, g.Target.Cents)
	slog.InfoContext(ctx, "Goal saved", fields.ToSlice()...)

	return g.ID, nil
}

// GetGoal implements ledger.GoalReader
func (r *SQLiteRepository) GetGoal(ctx context.Context, userID, id string) (core.Goal, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, title, target_cents, saved_cents, deadline, status
		 FROM goals WHERE id = ? AND user_id = ?`, id, userID)
	g, err := scanGoal(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Goal{}, ledger.ErrNotFound
	}
	if err != nil {
		return core.Goal{}, fmt.Errorf("get goal: %w", err)
	}
	return g, nil
}

// UpdateGoal implements ledger.GoalWriter
func (r *SQLiteRepository) UpdateGoal(ctx context.Context, g core.Goal) error {
	if err := g.Validate(); err != nil {
		return fmt.Errorf("validate goal: %w", err)
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE goals SET title = ?, target_cents = ?, saved_cents = ?, deadline = ?, status = ?
		 WHERE id = ? AND user_id = ?`,
		g.Title, g.Target.Cents, g.Saved.Cents, deadlineParam(g.Deadline),
		string(g.Status), g.ID, g.UserID)
	if err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update goal rows affected: %w", err)
	}
	if affected == 0 {
		return ledger.ErrNotFound
	}
	return nil
}

// DeleteGoal implements ledger.GoalWriter
func (r *SQLiteRepository) DeleteGoal(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM goals WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete goal rows affected: %w", err)
	}
	if affected == 0 {
		return ledger.ErrNotFound
	}
	return nil
}

// ListGoals implements ledger.GoalReader
func (r *SQLiteRepository) ListGoals(ctx context.Context, userID string) ([]core.Goal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, title, target_cents, saved_cents, deadline, status
		 FROM goals WHERE user_id = ? ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var out []core.Goal
	for rows.Next() {
		g, err := scanGoal(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate goals: %w", err)
	}
	return out, nil
}

func deadlineParam(d core.Date) any {
	if d.IsEmpty() {
		return nil
	}
	return d.Format(dateLayout)
}

func scanGoal(scan func(dest ...any) error) (core.Goal, error) {
	var (
		g        core.Goal
		status   string
		deadline sql.NullString
	)
	if err := scan(&g.ID, &g.UserID, &g.Title, &g.Target.Cents, &g.Saved.Cents, &deadline, &status); err != nil {
		return core.Goal{}, err
	}
	g.Status = core.GoalStatus(status)
	if deadline.Valid && deadline.String != "" {
		d, err := time.Parse(dateLayout, deadline.String)
		if err != nil {
			return core.Goal{}, fmt.Errorf("parse goal deadline %q: %w", deadline.String, err)
		}
		g.Deadline = core.Date{Time: d}
	}
	return g, nil
}
