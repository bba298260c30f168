package stats

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"campusbudget/internal/core"
	"campusbudget/internal/ledger"
)

// Fixed advisory thresholds, in percent. Boundaries are exclusive: a change
// of exactly the threshold does not fire.
const (
	incomeGrowthThreshold   = 10
	incomeDecreaseThreshold = -10
	highSpendingThreshold   = 20
	greatSavingsThreshold   = -10
	savingsBoostThreshold   = 15
)

// InsightGenerator compares two rolling 30-day windows and emits advisory
// messages based on the fixed thresholds above.
type InsightGenerator struct {
	agg   *Aggregator
	goals ledger.GoalReader
}

func NewInsightGenerator(agg *Aggregator, goals ledger.GoalReader) *InsightGenerator {
	return &InsightGenerator{agg: agg, goals: goals}
}

// ComputeInsights builds the insight report for a user at the given time.
// The current window is the 30 days ending at now; the previous window is the
// 30 days immediately before that. Both windows are rolling, anchored to the
// call time rather than calendar months. The two fetches run concurrently and
// the comparison waits for both.
func (g *InsightGenerator) ComputeInsights(ctx context.Context, userID string, now time.Time) (core.InsightReport, error) {
	// Bounds are whole days: the clock is truncated to its calendar day so
	// every backend resolves boundary transactions the same way. The shared
	// day 30 days back belongs to both windows.
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	thirtyDaysAgo := core.Date{Time: day.AddDate(0, 0, -30)}
	sixtyDaysAgo := core.Date{Time: day.AddDate(0, 0, -60)}
	callTime := core.Date{Time: day}

	var current, previous core.AggregateWindow

	eg, gctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		current, err = g.agg.ComputeStats(gctx, userID, thirtyDaysAgo, callTime)
		return err
	})
	eg.Go(func() error {
		var err error
		previous, err = g.agg.ComputeStats(gctx, userID, sixtyDaysAgo, thirtyDaysAgo)
		return err
	})
	if err := eg.Wait(); err != nil {
		return core.InsightReport{}, fmt.Errorf("compute windows: %w", err)
	}

	report := core.InsightReport{
		CurrentPeriod:  current,
		PreviousPeriod: previous,
		Trends: core.TrendChanges{
			Income:   percentageChange(previous.TotalIncome, current.TotalIncome),
			Expenses: percentageChange(previous.TotalExpenses, current.TotalExpenses),
			Savings:  percentageChange(previous.TotalSavings, current.TotalSavings),
		},
	}

	// Within a metric only one branch fires; across metrics insights stack.
	// Emission order: income, expenses, savings, goal deadlines.
	if report.Trends.Income > incomeGrowthThreshold {
		report.Insights = append(report.Insights, core.Insight{
			Kind:    core.InsightPositive,
			Title:   "Income Growth",
			Message: fmt.Sprintf("Your income increased by %.1f%% this month!", report.Trends.Income),
			Icon:    "📈",
		})
	} else if report.Trends.Income < incomeDecreaseThreshold {
		report.Insights = append(report.Insights, core.Insight{
			Kind:    core.InsightWarning,
			Title:   "Income Decrease",
			Message: fmt.Sprintf("Your income decreased by %.1f%% this month.", math.Abs(report.Trends.Income)),
			Icon:    "📉",
		})
	}

	if report.Trends.Expenses > highSpendingThreshold {
		report.Insights = append(report.Insights, core.Insight{
			Kind:    core.InsightWarning,
			Title:   "High Spending",
			Message: fmt.Sprintf("Your expenses increased by %.1f%% this month. Consider reviewing your budget.", report.Trends.Expenses),
			Icon:    "⚠️",
		})
	} else if report.Trends.Expenses < greatSavingsThreshold {
		report.Insights = append(report.Insights, core.Insight{
			Kind:    core.InsightPositive,
			Title:   "Great Savings",
			Message: fmt.Sprintf("You reduced your expenses by %.1f%% this month!", math.Abs(report.Trends.Expenses)),
			Icon:    "💰",
		})
	}

	if report.Trends.Savings > savingsBoostThreshold {
		report.Insights = append(report.Insights, core.Insight{
			Kind:    core.InsightPositive,
			Title:   "Savings Boost",
			Message: fmt.Sprintf("Your savings increased by %.1f%% this month!", report.Trends.Savings),
			Icon:    "🎯",
		})
	}

	goals, err := g.goals.ListGoals(ctx, userID)
	if err != nil {
		return core.InsightReport{}, fmt.Errorf("list goals: %w", err)
	}
	if n := ApproachingDeadlines(goals, now); n > 0 {
		// One insight regardless of how many goals qualify.
		report.Insights = append(report.Insights, core.Insight{
			Kind:    core.InsightInfo,
			Title:   "Goal Deadline Approaching",
			Message: fmt.Sprintf("You have %d goal(s) with deadlines in the next 30 days.", n),
			Icon:    "⏰",
		})
	}

	return report, nil
}

// percentageChange avoids a divide-by-zero: going from nothing to something
// is reported as a full 100% increase rather than undefined.
func percentageChange(previous, current float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - previous) / previous * 100
}
