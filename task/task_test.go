package task

import (
	"errors"
	"testing"
	"time"

	"github.com/amonks/duchess/timeparse"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func mustTodo(t *testing.T, description string, created time.Time) Task {
	t.Helper()
	item, err := NewTodo(description, created)
	if err != nil {
		t.Fatalf("NewTodo(%q): %v", description, err)
	}
	return item
}

func mustDeadline(t *testing.T, description string, due, created time.Time) Task {
	t.Helper()
	item, err := NewDeadline(description, due, created)
	if err != nil {
		t.Fatalf("NewDeadline(%q): %v", description, err)
	}
	return item
}

func mustEvent(t *testing.T, description, frame string, created time.Time) Task {
	t.Helper()
	item, err := NewEvent(description, frame, created)
	if err != nil {
		t.Fatalf("NewEvent(%q): %v", description, err)
	}
	return item
}

func mustRecurring(t *testing.T, description string, due time.Time, frequency Frequency, until, created time.Time) Task {
	t.Helper()
	item, err := NewRecurringDeadline(description, due, frequency, until, created)
	if err != nil {
		t.Fatalf("NewRecurringDeadline(%q): %v", description, err)
	}
	return item
}

func TestKind_IsValid(t *testing.T) {
	tests := []struct {
		kind  Kind
		valid bool
	}{
		{KindTodo, true},
		{KindEvent, true},
		{KindDeadline, true},
		{KindRecurringDeadline, true},
		{Kind("chore"), false},
		{Kind(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if got := tt.kind.IsValid(); got != tt.valid {
				t.Errorf("Kind(%q).IsValid() = %v, want %v", tt.kind, got, tt.valid)
			}
		})
	}
}

func TestParseFrequency(t *testing.T) {
	tests := []struct {
		input   string
		want    Frequency
		wantErr bool
	}{
		{input: "daily", want: FrequencyDaily},
		{input: "Weekly", want: FrequencyWeekly},
		{input: " month ", want: FrequencyMonthly},
		{input: "year", want: FrequencyYearly},
		{input: "fortnightly", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFrequency(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidFrequency) {
					t.Fatalf("expected ErrInvalidFrequency, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseFrequency(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewTodo_RejectsEmptyDescription(t *testing.T) {
	if _, err := NewTodo("   ", testNow); !errors.Is(err, ErrEmptyDescription) {
		t.Fatalf("expected ErrEmptyDescription, got %v", err)
	}
}

func TestNewRecurringDeadline_Validates(t *testing.T) {
	due := testNow.Add(24 * time.Hour)
	if _, err := NewRecurringDeadline("rent", due, Frequency("hourly"), time.Time{}, testNow); !errors.Is(err, ErrInvalidFrequency) {
		t.Fatalf("expected ErrInvalidFrequency, got %v", err)
	}
	if _, err := NewRecurringDeadline("rent", due, FrequencyMonthly, due.Add(-time.Hour), testNow); err == nil {
		t.Fatal("expected error for recurrence end before due")
	}
}

func TestComplete_SetsTimestamp(t *testing.T) {
	item := mustTodo(t, "buy milk", testNow)
	if item.IsCompleted() {
		t.Fatal("new task should not be completed")
	}
	if _, ok := item.CompletedAt(); ok {
		t.Fatal("new task should have no completion time")
	}

	completedAt := testNow.Add(time.Hour)
	item.Complete(completedAt)

	if !item.IsCompleted() {
		t.Fatal("expected task to be completed")
	}
	got, ok := item.CompletedAt()
	if !ok || !got.Equal(completedAt) {
		t.Errorf("CompletedAt() = %v, %v; want %v, true", got, ok, completedAt)
	}
}

func TestComplete_TracksOnTime(t *testing.T) {
	due := testNow.Add(2 * time.Hour)

	early := mustDeadline(t, "report", due, testNow)
	early.Complete(due)
	if !early.CompletedOnTime() {
		t.Error("completing exactly at the due time should count as on time")
	}

	late := mustDeadline(t, "report", due, testNow)
	late.Complete(due.Add(time.Minute))
	if late.CompletedOnTime() {
		t.Error("completing after the due time should count as late")
	}

	todo := mustTodo(t, "walk", testNow)
	todo.Complete(testNow)
	if todo.CompletedOnTime() {
		t.Error("todos never report on-time completion")
	}
}

func TestSnooze_Deadline(t *testing.T) {
	due := time.Date(2024, 5, 3, 18, 0, 0, 0, time.UTC)
	item := mustDeadline(t, "essay", due, testNow)
	before := item.Clone()

	if err := item.Snooze(timeparse.Duration{Count: 2, Unit: timeparse.UnitDay}); err != nil {
		t.Fatalf("Snooze: %v", err)
	}

	got, _ := item.Due()
	if want := due.AddDate(0, 0, 2); !got.Equal(want) {
		t.Errorf("Due() = %v, want %v", got, want)
	}
	if item.Description() != before.Description() || !item.CreatedAt().Equal(before.CreatedAt()) || item.IsCompleted() {
		t.Error("snooze should only change the due time")
	}
}

func TestSnooze_UnsupportedKinds(t *testing.T) {
	items := []Task{
		mustTodo(t, "walk", testNow),
		mustEvent(t, "party", "sat 8pm", testNow),
	}
	for _, item := range items {
		err := item.Snooze(timeparse.Duration{Count: 1, Unit: timeparse.UnitDay})
		if !errors.Is(err, ErrUnsupportedOperation) {
			t.Errorf("Snooze on %s: expected ErrUnsupportedOperation, got %v", item.Kind(), err)
		}
	}
}

func TestClone_IsIndependent(t *testing.T) {
	original := mustDeadline(t, "essay", testNow.Add(time.Hour), testNow)
	clone := original.Clone()

	if !Equal(original, clone) {
		t.Fatal("clone should equal original")
	}

	clone.Complete(testNow)
	if err := clone.Snooze(timeparse.Duration{Count: 1, Unit: timeparse.UnitWeek}); err != nil {
		t.Fatalf("Snooze: %v", err)
	}

	if original.IsCompleted() {
		t.Error("completing the clone changed the original")
	}
	if due, _ := original.Due(); !due.Equal(testNow.Add(time.Hour)) {
		t.Error("snoozing the clone changed the original")
	}
}

func TestNextDue(t *testing.T) {
	due := time.Date(2024, 5, 31, 9, 0, 0, 0, time.UTC)

	forever := mustRecurring(t, "rent", due, FrequencyMonthly, time.Time{}, testNow)
	next, ok := forever.NextDue()
	if !ok || !next.Equal(due.AddDate(0, 1, 0)) {
		t.Errorf("NextDue() = %v, %v", next, ok)
	}

	ending := mustRecurring(t, "standup", due, FrequencyWeekly, due.AddDate(0, 0, 3), testNow)
	if _, ok := ending.NextDue(); ok {
		t.Error("expected no next occurrence after the recurrence end")
	}

	plain := mustDeadline(t, "essay", due, testNow)
	if _, ok := plain.NextDue(); ok {
		t.Error("plain deadlines do not recur")
	}
}
