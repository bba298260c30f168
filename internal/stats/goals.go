package stats

import (
	"context"
	"fmt"
	"time"

	"campusbudget/internal/core"
	"campusbudget/internal/ledger"
)

// GoalCalculator folds a user's goals into portfolio-level statistics.
type GoalCalculator struct {
	goals ledger.GoalReader
}

func NewGoalCalculator(goals ledger.GoalReader) *GoalCalculator {
	return &GoalCalculator{goals: goals}
}

// ComputeGoalStats computes per-status counts, target/saved sums in dollars,
// and the mean per-goal percent-complete. A user with no goals gets an
// all-zero result, never a division by zero.
func (c *GoalCalculator) ComputeGoalStats(ctx context.Context, userID string) (core.GoalStats, error) {
	goals, err := c.goals.ListGoals(ctx, userID)
	if err != nil {
		return core.GoalStats{}, fmt.Errorf("list goals: %w", err)
	}

	stats := core.GoalStats{Total: len(goals)}
	var totalProgress float64

	for _, g := range goals {
		switch g.Status {
		case core.Active:
			stats.Active++
		case core.Completed:
			stats.Completed++
		case core.Paused:
			stats.Paused++
		case core.Cancelled:
			stats.Cancelled++
		}
		stats.TotalTarget += g.Target.Dollars()
		stats.TotalSaved += g.Saved.Dollars()
		totalProgress += g.Progress()
	}

	if len(goals) > 0 {
		stats.AverageProgress = totalProgress / float64(len(goals))
	}

	return stats, nil
}

// ApproachingDeadlines counts active goals whose deadline falls within
// (0, 30] days of now. Past deadlines and goals without one never count.
// Shared by the insight generator and the reminder worker.
func ApproachingDeadlines(goals []core.Goal, now time.Time) int {
	count := 0
	for _, g := range goals {
		if g.Status != core.Active || g.Deadline.IsEmpty() {
			continue
		}
		days := DaysUntil(now, g.Deadline.Time)
		if days > 0 && days <= 30 {
			count++
		}
	}
	return count
}

// DaysUntil returns the number of days from now to deadline, rounded up so a
// deadline later today still counts as one day away.
func DaysUntil(now, deadline time.Time) int {
	diff := deadline.Sub(now)
	days := int(diff.Hours() / 24)
	if diff > 0 && diff%(24*time.Hour) != 0 {
		days++
	}
	return days
}
