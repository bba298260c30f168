package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionKind = "income"
	Expense TransactionKind = "expense"
	Savings TransactionKind = "savings"
)

const (
	Active    GoalStatus = "active"
	Completed GoalStatus = "completed"
	Paused    GoalStatus = "paused"
	Cancelled GoalStatus = "cancelled"
)

type (
	TransactionKind string

	GoalStatus string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	Transaction struct {
		ID       string
		UserID   string
		Kind     TransactionKind
		Amount   Money
		Category string
		Date     Date
		Note     string
	}

	Goal struct {
		ID       string
		UserID   string
		Title    string
		Target   Money
		Saved    Money
		Deadline Date // zero when the goal has no deadline
		Status   GoalStatus
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidKind   = errors.New("invalid transaction kind")
	ErrInvalidStatus = errors.New("invalid goal status")
	ErrEmptyUserID   = errors.New("empty user id")
	ErrEmptyCategory = errors.New("empty category")
	ErrEmptyTitle    = errors.New("empty title")
)

// NewDate creates a new Date from year, month, day (UTC, midnight).
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// IsEmpty returns true if the date is zero. Optional dates (range bounds,
// goal deadlines) use the zero value to mean "not set".
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

// MonthKey returns the "YYYY-MM" bucket key for trend aggregation.
func (d Date) MonthKey() string {
	return d.Format("2006-01")
}

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	return nil
}

func (k TransactionKind) Validate() error {
	switch k {
	case Income, Expense, Savings:
		return nil
	default:
		return ErrInvalidKind
	}
}

func (s GoalStatus) Validate() error {
	switch s {
	case Active, Completed, Paused, Cancelled:
		return nil
	default:
		return ErrInvalidStatus
	}
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.UserID) == "" {
		return ErrEmptyUserID
	}
	if err := t.Kind.Validate(); err != nil {
		return err
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if len(t.Category) > 100 {
		return errors.New("category too long (max 100 characters)")
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if len(t.Note) > 500 {
		return errors.New("note too long (max 500 characters)")
	}
	return nil
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.UserID) == "" {
		return ErrEmptyUserID
	}
	if len(strings.TrimSpace(g.Title)) == 0 {
		return ErrEmptyTitle
	}
	if len(g.Title) > 200 {
		return errors.New("title too long (max 200 characters)")
	}
	if err := g.Target.Validate(); err != nil {
		return err
	}
	if g.Saved.Cents < 0 {
		return ErrInvalidAmount
	}
	if err := g.Status.Validate(); err != nil {
		return err
	}
	return nil
}

// Progress returns percent-complete for the goal. A non-positive target has
// undefined progress, defined here as 0 rather than an error. Saved amounts
// above the target are allowed, so the result may exceed 100.
func (g Goal) Progress() float64 {
	if g.Target.Cents <= 0 {
		return 0
	}
	return float64(g.Saved.Cents) / float64(g.Target.Cents) * 100
}
