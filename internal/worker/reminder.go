// Package worker implements the deadline reminder worker. It consumes ledger
// events from AMQP and periodically scans goal portfolios for deadlines
// coming up within the next 30 days.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"campusbudget/internal/amqp"
	"campusbudget/internal/core"
	"campusbudget/internal/ledger"
	"campusbudget/internal/log"
	"campusbudget/internal/stats"
)

// ReminderWorker tracks the users seen on the event stream and emits deadline
// reminders for their active goals.
type ReminderWorker struct {
	goals ledger.GoalReader

	mu    sync.Mutex
	users map[string]struct{}

	// now is swappable in tests
	now func() time.Time
}

func NewReminderWorker(goals ledger.GoalReader) *ReminderWorker {
	return &ReminderWorker{
		goals: goals,
		users: make(map[string]struct{}),
		now:   time.Now,
	}
}

// HandleLedgerEvent processes one event from the queue. Every event registers
// its user for periodic scans; goal events additionally trigger an immediate
// deadline check for that user.
func (w *ReminderWorker) HandleLedgerEvent(ctx context.Context, msg *amqp.LedgerEventMessage) error {
	if msg.UserID == "" {
		return fmt.Errorf("event without user id")
	}

	w.mu.Lock()
	w.users[msg.UserID] = struct{}{}
	w.mu.Unlock()

	switch msg.Kind {
	case amqp.EventGoalCreated, amqp.EventGoalDeleted, amqp.EventGoalContribution:
		if _, err := w.CheckUser(ctx, msg.UserID); err != nil {
			return fmt.Errorf("check user %s: %w", msg.UserID, err)
		}
	}

	return nil
}

// CheckUser scans one user's goals and logs a reminder for each active goal
// whose deadline falls within the next 30 days. Returns how many qualified.
func (w *ReminderWorker) CheckUser(ctx context.Context, userID string) (int, error) {
	goals, err := w.goals.ListGoals(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("list goals: %w", err)
	}

	now := w.now()
	count := stats.ApproachingDeadlines(goals, now)
	if count == 0 {
		return 0, nil
	}

	for _, g := range goals {
		if g.Status != core.Active || g.Deadline.IsEmpty() {
			continue
		}
		days := stats.DaysUntil(now, g.Deadline.Time)
		if days <= 0 || days > 30 {
			continue
		}
		slog.InfoContext(ctx, "Goal deadline approaching",
			log.FieldComponent, log.ComponentWorker,
			log.FieldUserID, userID,
			log.FieldGoalID, g.ID,
			"title", g.Title,
			"days_left", days,
			"progress", fmt.Sprintf("%.1f%%", g.Progress()))
	}

	return count, nil
}

// ScanAll checks every user seen so far. Used by the periodic ticker.
func (w *ReminderWorker) ScanAll(ctx context.Context) error {
	w.mu.Lock()
	users := make([]string, 0, len(w.users))
	for u := range w.users {
		users = append(users, u)
	}
	w.mu.Unlock()
	sort.Strings(users)

	var firstErr error
	for _, u := range users {
		if _, err := w.CheckUser(ctx, u); err != nil {
			slog.ErrorContext(ctx, "Deadline scan failed",
				log.FieldUserID, u,
				log.FieldError, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// RunPeriodic scans all tracked users on the given interval until the context
// is cancelled.
func (w *ReminderWorker) RunPeriodic(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.ScanAll(ctx); err != nil {
				slog.ErrorContext(ctx, "Periodic scan completed with errors", "error", err)
			}
		}
	}
}
