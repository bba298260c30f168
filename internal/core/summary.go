package core

const (
	InsightPositive InsightKind = "positive"
	InsightWarning  InsightKind = "warning"
	InsightInfo     InsightKind = "info"
)

type (
	InsightKind string

	// MonthlyTrend holds per-kind dollar totals for one "YYYY-MM" bucket.
	MonthlyTrend struct {
		Month    string  `json:"month"`
		Income   float64 `json:"income"`
		Expenses float64 `json:"expenses"`
		Savings  float64 `json:"savings"`
	}

	// AggregateWindow is the summary computed over a (possibly unbounded) set
	// of one user's transactions. All amounts are in dollars.
	AggregateWindow struct {
		TotalIncome       float64            `json:"totalIncome"`
		TotalExpenses     float64            `json:"totalExpenses"`
		TotalSavings      float64            `json:"totalSavings"`
		NetBalance        float64            `json:"netBalance"`
		CategoryBreakdown map[string]float64 `json:"categoryBreakdown"`
		MonthlyTrends     []MonthlyTrend     `json:"monthlyTrends"`
	}

	// GoalStats is the portfolio-level summary over one user's goals.
	GoalStats struct {
		Total           int     `json:"total"`
		Active          int     `json:"active"`
		Completed       int     `json:"completed"`
		Paused          int     `json:"paused"`
		Cancelled       int     `json:"cancelled"`
		TotalTarget     float64 `json:"totalTargetAmount"`
		TotalSaved      float64 `json:"totalSavedAmount"`
		AverageProgress float64 `json:"averageProgress"`
	}

	Insight struct {
		Kind    InsightKind `json:"type"`
		Title   string      `json:"title"`
		Message string      `json:"message"`
		Icon    string      `json:"icon"`
	}

	// TrendChanges holds the period-over-period percentage change per metric.
	TrendChanges struct {
		Income   float64 `json:"income"`
		Expenses float64 `json:"expenses"`
		Savings  float64 `json:"savings"`
	}

	// InsightReport combines the two compared windows, their percentage
	// changes, and the advisory messages that fired.
	InsightReport struct {
		CurrentPeriod  AggregateWindow `json:"currentPeriod"`
		PreviousPeriod AggregateWindow `json:"previousPeriod"`
		Trends         TrendChanges    `json:"trends"`
		Insights       []Insight       `json:"insights"`
	}
)
