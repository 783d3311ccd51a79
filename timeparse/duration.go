// Package timeparse turns short natural-language time expressions into
// structured values: durations like "2 days" for snoozing, and dates like
// "2024-05-01 18:00" or "next friday" for deadlines.
package timeparse

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"

	internalstrings "github.com/amonks/duchess/internal/strings"
	"github.com/amonks/duchess/internal/validation"
)

var (
	// ErrInvalidDurationFormat is returned when a duration expression does not
	// match "<count> <unit>".
	ErrInvalidDurationFormat = errors.New("invalid duration format")

	// ErrInvalidDateFormat is returned when a date expression matches none of
	// the supported layouts or relative forms.
	ErrInvalidDateFormat = errors.New("invalid date format")
)

// Unit is the unit of a Duration.
type Unit string

const (
	UnitMinute Unit = "minute"
	UnitHour   Unit = "hour"
	UnitDay    Unit = "day"
	UnitWeek   Unit = "week"
	UnitMonth  Unit = "month"
	UnitYear   Unit = "year"
)

// ValidUnits returns all valid units, shortest first.
func ValidUnits() []Unit {
	return []Unit{UnitMinute, UnitHour, UnitDay, UnitWeek, UnitMonth, UnitYear}
}

// maxCalendarYears bounds calendar durations.
const maxCalendarYears = 10000

// MaxCount returns the largest count accepted for unit. Clock units are
// limited by time.Duration; calendar units by maxCalendarYears.
func MaxCount(unit Unit) int {
	switch unit {
	case UnitMinute:
		return int(math.MaxInt64 / int64(time.Minute))
	case UnitHour:
		return int(math.MaxInt64 / int64(time.Hour))
	case UnitDay:
		return maxCalendarYears * 366
	case UnitWeek:
		return maxCalendarYears * 53
	case UnitMonth:
		return maxCalendarYears * 12
	case UnitYear:
		return maxCalendarYears
	default:
		return 0
	}
}

// Duration is a count of calendar or clock units.
type Duration struct {
	Count int
	Unit  Unit
}

var durationPattern = regexp.MustCompile(`^(\d+)\s*(minutes?|hours?|days?|weeks?|months?|years?)$`)

// ParseDuration parses expressions like "1 week" or "3 days".
func ParseDuration(value string) (Duration, error) {
	normalized := internalstrings.NormalizeWhitespace(internalstrings.NormalizeLowerTrimSpace(value))
	matches := durationPattern.FindStringSubmatch(normalized)
	if len(matches) != 3 {
		return Duration{}, fmt.Errorf("%w: %q (units: %s)", ErrInvalidDurationFormat, value, validation.FormatValidValues(ValidUnits()))
	}

	unit := Unit(matches[2])
	if len(unit) > 0 && unit[len(unit)-1] == 's' {
		unit = unit[:len(unit)-1]
	}

	count, err := strconv.Atoi(matches[1])
	if err != nil || count <= 0 {
		return Duration{}, fmt.Errorf("%w: count must be a positive integer: %q", ErrInvalidDurationFormat, value)
	}
	if limit := MaxCount(unit); count > limit {
		return Duration{}, fmt.Errorf("%w: at most %d %ss: %q", ErrInvalidDurationFormat, limit, unit, value)
	}

	return Duration{Count: count, Unit: unit}, nil
}

// AddTo returns t advanced by the duration.
// Days and longer follow the calendar, so "1 month" from January 31 normalizes
// the way time.AddDate does.
func (d Duration) AddTo(t time.Time) time.Time {
	switch d.Unit {
	case UnitMinute:
		return t.Add(time.Duration(d.Count) * time.Minute)
	case UnitHour:
		return t.Add(time.Duration(d.Count) * time.Hour)
	case UnitDay:
		return t.AddDate(0, 0, d.Count)
	case UnitWeek:
		return t.AddDate(0, 0, 7*d.Count)
	case UnitMonth:
		return t.AddDate(0, d.Count, 0)
	case UnitYear:
		return t.AddDate(d.Count, 0, 0)
	default:
		return t
	}
}

// IsZero reports whether the duration is the zero value.
func (d Duration) IsZero() bool {
	return d.Count == 0 && d.Unit == ""
}

// String renders the duration back to text, e.g. "1 day" or "2 weeks".
func (d Duration) String() string {
	if d.Count == 1 {
		return fmt.Sprintf("%d %s", d.Count, d.Unit)
	}
	return fmt.Sprintf("%d %ss", d.Count, d.Unit)
}
