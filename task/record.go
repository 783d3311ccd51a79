package task

import (
	"fmt"
	"time"

	"github.com/amonks/duchess/internal/validation"
)

// Record is the persisted form of a Task.
type Record struct {
	Kind            Kind       `json:"kind" yaml:"kind"`
	Description     string     `json:"description" yaml:"description"`
	Completed       bool       `json:"completed" yaml:"completed"`
	CreatedAt       time.Time  `json:"created_at" yaml:"created_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
	Due             *time.Time `json:"due,omitempty" yaml:"due,omitempty"`
	CompletedOnTime bool       `json:"completed_on_time,omitempty" yaml:"completed_on_time,omitempty"`
	TimeFrame       string     `json:"time_frame,omitempty" yaml:"time_frame,omitempty"`
	Frequency       Frequency  `json:"frequency,omitempty" yaml:"frequency,omitempty"`
	RepeatUntil     *time.Time `json:"repeat_until,omitempty" yaml:"repeat_until,omitempty"`
}

// Record converts the task to its persisted form.
func (t Task) Record() Record {
	return Record{
		Kind:            t.kind,
		Description:     t.description,
		Completed:       t.IsCompleted(),
		CreatedAt:       t.createdAt,
		CompletedAt:     timePtr(t.completedAt),
		Due:             timePtr(t.due),
		CompletedOnTime: t.CompletedOnTime(),
		TimeFrame:       t.timeFrame,
		Frequency:       t.frequency,
		RepeatUntil:     timePtr(t.repeatUntil),
	}
}

// FromRecord rebuilds a task from its persisted form.
func FromRecord(r Record) (Task, error) {
	if !r.Kind.IsValid() {
		return Task{}, fmt.Errorf("%w: %w", ErrInvalidRecord, validation.FormatInvalidValueError(ErrInvalidKind, r.Kind, ValidKinds()))
	}
	if err := ValidateDescription(r.Description); err != nil {
		return Task{}, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	if r.CreatedAt.IsZero() {
		return Task{}, fmt.Errorf("%w: created_at is required", ErrInvalidRecord)
	}
	if r.Completed != (r.CompletedAt != nil) {
		return Task{}, fmt.Errorf("%w: completed must be set exactly when completed_at is", ErrInvalidRecord)
	}

	t := Task{
		kind:        r.Kind,
		description: r.Description,
		createdAt:   r.CreatedAt,
		completedAt: timeValue(r.CompletedAt),
	}

	switch r.Kind {
	case KindEvent:
		if r.TimeFrame == "" {
			return Task{}, fmt.Errorf("%w: event requires time_frame", ErrInvalidRecord)
		}
		t.timeFrame = r.TimeFrame
	case KindDeadline, KindRecurringDeadline:
		if r.Due == nil {
			return Task{}, fmt.Errorf("%w: %s requires due", ErrInvalidRecord, r.Kind)
		}
		t.due = *r.Due
		t.completedOnTime = r.Completed && r.CompletedOnTime
		if r.Kind == KindRecurringDeadline {
			if !r.Frequency.IsValid() {
				return Task{}, fmt.Errorf("%w: %w", ErrInvalidRecord, invalidFrequencyError(string(r.Frequency)))
			}
			t.frequency = r.Frequency
			t.repeatUntil = timeValue(r.RepeatUntil)
		}
	}

	return t, nil
}

// Records converts tasks to their persisted form.
func Records(tasks []Task) []Record {
	records := make([]Record, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, t.Record())
	}
	return records
}

// FromRecords rebuilds tasks from their persisted form.
func FromRecords(records []Record) ([]Task, error) {
	tasks := make([]Task, 0, len(records))
	for i, r := range records {
		t, err := FromRecord(r)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func timeValue(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
