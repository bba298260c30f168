package log

import (
	"errors"
	"testing"
)

func TestLogFieldsBuilder(t *testing.T) {
	fields := NewFields().
		WithComponent(ComponentStorage).
		WithOperation(OpCreate).
		WithUserID("student-1").
		WithTransaction("tx-1", "expense", "food", 1250)

	want := map[string]any{
		FieldComponent:   ComponentStorage,
		FieldOperation:   OpCreate,
		FieldUserID:      "student-1",
		FieldTxID:        "tx-1",
		FieldKind:        "expense",
		FieldCategory:    "food",
		FieldAmountCents: int64(1250),
	}
	if len(fields) != len(want) {
		t.Fatalf("fields = %v, want %v", fields, want)
	}
	for k, v := range want {
		if fields[k] != v {
			t.Errorf("fields[%q] = %v, want %v", k, fields[k], v)
		}
	}

	slice := fields.ToSlice()
	if len(slice) != len(fields)*2 {
		t.Errorf("ToSlice() length = %d, want %d", len(slice), len(fields)*2)
	}
}

func TestLogFieldsWithGoal(t *testing.T) {
	fields := NewFields().WithGoal("goal-1", 50000)
	if fields[FieldGoalID] != "goal-1" {
		t.Errorf("goal id = %v, want goal-1", fields[FieldGoalID])
	}
	if fields[FieldTargetCents] != int64(50000) {
		t.Errorf("target = %v, want 50000", fields[FieldTargetCents])
	}
}

func TestLogFieldsWithError(t *testing.T) {
	if fields := NewFields().WithError(nil); len(fields) != 0 {
		t.Errorf("nil error should add nothing, got %v", fields)
	}
	fields := NewFields().WithError(errors.New("boom"))
	if fields[FieldError] != "boom" {
		t.Errorf("error field = %v, want boom", fields[FieldError])
	}
}
