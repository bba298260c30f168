package stats

import (
	"context"
	"testing"
	"time"

	"campusbudget/internal/core"
	"campusbudget/internal/memstore"
)

func seedGoals(t *testing.T, s *memstore.Store, goals []core.Goal) {
	t.Helper()
	for _, g := range goals {
		if _, err := s.CreateGoal(context.Background(), g); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func TestComputeGoalStats(t *testing.T) {
	s := memstore.New()
	seedGoals(t, s, []core.Goal{
		{UserID: "u1", Title: "Laptop", Target: core.Money{Cents: 50000}, Saved: core.Money{Cents: 10000}, Status: core.Active},
		{UserID: "u1", Title: "Trip", Target: core.Money{Cents: 20000}, Saved: core.Money{Cents: 20000}, Status: core.Completed},
		{UserID: "u1", Title: "Books", Target: core.Money{Cents: 10000}, Saved: core.Money{Cents: 6000}, Status: core.Paused},
		{UserID: "u1", Title: "Old", Target: core.Money{Cents: 10000}, Status: core.Cancelled},
		{UserID: "u2", Title: "Not mine", Target: core.Money{Cents: 9999}, Status: core.Active},
	})

	calc := NewGoalCalculator(s)
	stats, err := calc.ComputeGoalStats(context.Background(), "u1")
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	if stats.Total != 4 {
		t.Errorf("total = %d, want 4", stats.Total)
	}
	if stats.Active != 1 || stats.Completed != 1 || stats.Paused != 1 || stats.Cancelled != 1 {
		t.Errorf("status counts = %+v", stats)
	}
	if stats.TotalTarget != 900.00 {
		t.Errorf("target sum = %v, want 900", stats.TotalTarget)
	}
	if stats.TotalSaved != 360.00 {
		t.Errorf("saved sum = %v, want 360", stats.TotalSaved)
	}
	// (20 + 100 + 60 + 0) / 4
	if stats.AverageProgress != 45.00 {
		t.Errorf("average progress = %v, want 45", stats.AverageProgress)
	}
}

func TestComputeGoalStatsNoGoals(t *testing.T) {
	calc := NewGoalCalculator(memstore.New())
	stats, err := calc.ComputeGoalStats(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if stats.Total != 0 || stats.AverageProgress != 0 {
		t.Errorf("expected zero stats, got %+v", stats)
	}
}

func TestApproachingDeadlines(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	deadline := func(days int) core.Date {
		return core.Date{Time: now.AddDate(0, 0, days)}
	}

	tests := []struct {
		name string
		goal core.Goal
		want int
	}{
		{
			name: "active goal 15 days out counts",
			goal: core.Goal{Status: core.Active, Deadline: deadline(15)},
			want: 1,
		},
		{
			name: "deadline exactly 30 days out counts",
			goal: core.Goal{Status: core.Active, Deadline: deadline(30)},
			want: 1,
		},
		{
			name: "31 days out does not count",
			goal: core.Goal{Status: core.Active, Deadline: deadline(31)},
			want: 0,
		},
		{
			name: "already past does not count",
			goal: core.Goal{Status: core.Active, Deadline: deadline(-1)},
			want: 0,
		},
		{
			name: "paused goal never counts",
			goal: core.Goal{Status: core.Paused, Deadline: deadline(10)},
			want: 0,
		},
		{
			name: "no deadline never counts",
			goal: core.Goal{Status: core.Active},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApproachingDeadlines([]core.Goal{tt.goal}, now)
			if got != tt.want {
				t.Errorf("ApproachingDeadlines() = %d, want %d", got, tt.want)
			}
		})
	}
}
