// Package task implements the task model and the in-memory task collection.
//
// A Task is a tagged union over four kinds:
//   - todo: a description and nothing else
//   - event: a free-text time frame
//   - deadline: a due timestamp, with on-time tracking at completion
//   - recurring_deadline: a deadline that repeats at a Frequency, optionally
//     until an end timestamp
//
// A List holds the active tasks in display order together with an archive of
// completed tasks that have been moved out of view.
package task

import (
	"time"

	internalstrings "github.com/amonks/duchess/internal/strings"
)

// Kind is the variant tag of a task.
type Kind string

const (
	// KindTodo is a plain task.
	KindTodo Kind = "todo"

	// KindEvent is a task that happens during a free-text time frame.
	KindEvent Kind = "event"

	// KindDeadline is a task due by a timestamp.
	KindDeadline Kind = "deadline"

	// KindRecurringDeadline is a deadline that repeats.
	KindRecurringDeadline Kind = "recurring_deadline"
)

// ValidKinds returns all valid kinds.
func ValidKinds() []Kind {
	return []Kind{KindTodo, KindEvent, KindDeadline, KindRecurringDeadline}
}

// IsValid returns true if the kind is a known valid value.
func (k Kind) IsValid() bool {
	for _, valid := range ValidKinds() {
		if k == valid {
			return true
		}
	}
	return false
}

// HasDeadline returns true for kinds that carry a due timestamp.
func (k Kind) HasDeadline() bool {
	return k == KindDeadline || k == KindRecurringDeadline
}

// Tag returns the one-letter tag used in listings.
func (k Kind) Tag() string {
	switch k {
	case KindTodo:
		return "T"
	case KindEvent:
		return "E"
	case KindDeadline:
		return "D"
	case KindRecurringDeadline:
		return "R"
	default:
		return "?"
	}
}

// Frequency is how often a recurring deadline repeats.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// ValidFrequencies returns all valid frequencies.
func ValidFrequencies() []Frequency {
	return []Frequency{FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly}
}

// IsValid returns true if the frequency is a known valid value.
func (f Frequency) IsValid() bool {
	for _, valid := range ValidFrequencies() {
		if f == valid {
			return true
		}
	}
	return false
}

// ParseFrequency parses a frequency name case-insensitively.
// "day", "week", "month" and "year" are accepted as synonyms.
func ParseFrequency(value string) (Frequency, error) {
	normalized := internalstrings.NormalizeLowerTrimSpace(value)
	switch normalized {
	case "day":
		normalized = string(FrequencyDaily)
	case "week":
		normalized = string(FrequencyWeekly)
	case "month":
		normalized = string(FrequencyMonthly)
	case "year", "annually":
		normalized = string(FrequencyYearly)
	}
	frequency := Frequency(normalized)
	if !frequency.IsValid() {
		return "", invalidFrequencyError(value)
	}
	return frequency, nil
}

// Next advances t by one period.
func (f Frequency) Next(t time.Time) time.Time {
	switch f {
	case FrequencyDaily:
		return t.AddDate(0, 0, 1)
	case FrequencyWeekly:
		return t.AddDate(0, 0, 7)
	case FrequencyMonthly:
		return t.AddDate(0, 1, 0)
	case FrequencyYearly:
		return t.AddDate(1, 0, 0)
	default:
		return t
	}
}
