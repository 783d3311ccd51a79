package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/amonks/duchess/timeparse"
)

// Task is a single unit of work.
//
// All fields are values, so copying a Task copies everything it owns. The
// zero time.Time means "not set" for every timestamp.
type Task struct {
	kind        Kind
	description string
	createdAt   time.Time
	completedAt time.Time

	// deadline and recurring_deadline
	due             time.Time
	completedOnTime bool

	// event
	timeFrame string

	// recurring_deadline
	frequency   Frequency
	repeatUntil time.Time
}

// NewTodo creates a todo created at now.
func NewTodo(description string, now time.Time) (Task, error) {
	description = strings.TrimSpace(description)
	if err := ValidateDescription(description); err != nil {
		return Task{}, err
	}
	return Task{kind: KindTodo, description: description, createdAt: now}, nil
}

// NewEvent creates an event happening during timeFrame.
func NewEvent(description, timeFrame string, now time.Time) (Task, error) {
	description = strings.TrimSpace(description)
	if err := ValidateDescription(description); err != nil {
		return Task{}, err
	}
	timeFrame = strings.TrimSpace(timeFrame)
	if timeFrame == "" {
		return Task{}, fmt.Errorf("event time frame cannot be empty")
	}
	return Task{kind: KindEvent, description: description, timeFrame: timeFrame, createdAt: now}, nil
}

// NewDeadline creates a deadline due at due.
func NewDeadline(description string, due time.Time, now time.Time) (Task, error) {
	description = strings.TrimSpace(description)
	if err := ValidateDescription(description); err != nil {
		return Task{}, err
	}
	if due.IsZero() {
		return Task{}, fmt.Errorf("deadline due time cannot be empty")
	}
	return Task{kind: KindDeadline, description: description, due: due, createdAt: now}, nil
}

// NewRecurringDeadline creates a deadline that repeats at frequency.
// A zero repeatUntil means the deadline repeats forever.
func NewRecurringDeadline(description string, due time.Time, frequency Frequency, repeatUntil time.Time, now time.Time) (Task, error) {
	t, err := NewDeadline(description, due, now)
	if err != nil {
		return Task{}, err
	}
	if !frequency.IsValid() {
		return Task{}, invalidFrequencyError(string(frequency))
	}
	if !repeatUntil.IsZero() && repeatUntil.Before(due) {
		return Task{}, fmt.Errorf("recurrence end %s is before due time %s", repeatUntil.Format(time.RFC3339), due.Format(time.RFC3339))
	}
	t.kind = KindRecurringDeadline
	t.frequency = frequency
	t.repeatUntil = repeatUntil
	return t, nil
}

// Kind returns the variant tag.
func (t Task) Kind() Kind { return t.kind }

// Description returns the task description.
func (t Task) Description() string { return t.description }

// CreatedAt returns when the task was created.
func (t Task) CreatedAt() time.Time { return t.createdAt }

// IsCompleted reports whether the task has been completed.
func (t Task) IsCompleted() bool { return !t.completedAt.IsZero() }

// CompletedAt returns when the task was completed, if it was.
func (t Task) CompletedAt() (time.Time, bool) {
	return t.completedAt, !t.completedAt.IsZero()
}

// Due returns the due timestamp of deadline kinds.
func (t Task) Due() (time.Time, bool) {
	if !t.kind.HasDeadline() {
		return time.Time{}, false
	}
	return t.due, true
}

// CompletedOnTime reports whether a deadline was completed on or before its due time.
// It is false for incomplete tasks and for kinds without a deadline.
func (t Task) CompletedOnTime() bool {
	return t.kind.HasDeadline() && t.IsCompleted() && t.completedOnTime
}

// TimeFrame returns the time frame of an event.
func (t Task) TimeFrame() string { return t.timeFrame }

// Frequency returns the recurrence frequency of a recurring deadline.
func (t Task) Frequency() Frequency { return t.frequency }

// RepeatUntil returns the recurrence end of a recurring deadline, if set.
func (t Task) RepeatUntil() (time.Time, bool) {
	return t.repeatUntil, !t.repeatUntil.IsZero()
}

// NextDue returns the due time of the following occurrence of a recurring
// deadline. It returns false for other kinds and when the next occurrence
// falls after the recurrence end.
func (t Task) NextDue() (time.Time, bool) {
	if t.kind != KindRecurringDeadline {
		return time.Time{}, false
	}
	next := t.frequency.Next(t.due)
	if !t.repeatUntil.IsZero() && next.After(t.repeatUntil) {
		return time.Time{}, false
	}
	return next, true
}

// Complete marks the task completed at the given time.
// It does not guard against double completion; List.Complete does.
func (t *Task) Complete(at time.Time) {
	t.completedAt = at
	if t.kind.HasDeadline() {
		t.completedOnTime = !at.After(t.due)
	}
}

// Snooze pushes the due time of a deadline back by d.
func (t *Task) Snooze(d timeparse.Duration) error {
	if !t.kind.HasDeadline() {
		return fmt.Errorf("%w: cannot snooze %s", ErrUnsupportedOperation, t.kind)
	}
	t.due = d.AddTo(t.due)
	return nil
}

// Clone returns an independent copy of the task.
func (t Task) Clone() Task {
	return Task{
		kind:            t.kind,
		description:     t.description,
		createdAt:       t.createdAt,
		completedAt:     t.completedAt,
		due:             t.due,
		completedOnTime: t.completedOnTime,
		timeFrame:       t.timeFrame,
		frequency:       t.frequency,
		repeatUntil:     t.repeatUntil,
	}
}

// Equal reports whether two tasks have the same fields, comparing
// timestamps by instant rather than by representation.
func Equal(a, b Task) bool {
	return a.kind == b.kind &&
		a.description == b.description &&
		a.createdAt.Equal(b.createdAt) &&
		a.completedAt.Equal(b.completedAt) &&
		a.due.Equal(b.due) &&
		a.completedOnTime == b.completedOnTime &&
		a.timeFrame == b.timeFrame &&
		a.frequency == b.frequency &&
		a.repeatUntil.Equal(b.repeatUntil)
}

// EqualSlices reports whether two task sequences are equal element-wise.
func EqualSlices(a, b []Task) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func cloneTasks(tasks []Task) []Task {
	if len(tasks) == 0 {
		return nil
	}
	cloned := make([]Task, len(tasks))
	for i, t := range tasks {
		cloned[i] = t.Clone()
	}
	return cloned
}
