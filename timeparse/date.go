package timeparse

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	internalstrings "github.com/amonks/duchess/internal/strings"
)

// dateTimeLayouts carry a time of day; dateLayouts resolve to the end of the day.
var (
	dateTimeLayouts = []string{
		"2006-01-02 15:04",
		"2/1/2006 1504",
		"2/1/2006 15:04",
	}
	dateLayouts = []string{
		"2006-01-02",
		"2/1/2006",
	}
)

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

var inDurationPattern = regexp.MustCompile(`^in (.+)$`)

// Parser converts date expressions into absolute times in a fixed location.
type Parser struct {
	location *time.Location
}

// NewParser creates a parser for the given IANA timezone name.
// An empty name or "Local" uses the process's local zone.
func NewParser(timezone string) (*Parser, error) {
	timezone = strings.TrimSpace(timezone)
	if timezone == "" || timezone == "Local" {
		return &Parser{location: time.Local}, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Parser{location: loc}, nil
}

// NewParserInLocation creates a parser for an already-loaded location.
func NewParserInLocation(loc *time.Location) *Parser {
	if loc == nil {
		loc = time.Local
	}
	return &Parser{location: loc}
}

// Location returns the parser's timezone.
func (p *Parser) Location() *time.Location {
	return p.location
}

// ParseDate parses an absolute or relative date expression.
// baseTime anchors relative forms such as "tomorrow" or "in 3 days".
func (p *Parser) ParseDate(value string, baseTime time.Time) (time.Time, error) {
	normalized := internalstrings.NormalizeWhitespace(internalstrings.NormalizeLowerTrimSpace(value))
	if normalized == "" {
		return time.Time{}, fmt.Errorf("%w: empty date", ErrInvalidDateFormat)
	}

	for _, layout := range dateTimeLayouts {
		if parsed, err := time.ParseInLocation(layout, normalized, p.location); err == nil {
			return parsed, nil
		}
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.ParseInLocation(layout, normalized, p.location); err == nil {
			return p.endOfDay(parsed), nil
		}
	}

	switch normalized {
	case "today":
		return p.endOfDay(baseTime), nil
	case "tomorrow":
		return p.endOfDay(baseTime.AddDate(0, 0, 1)), nil
	}

	if matches := inDurationPattern.FindStringSubmatch(normalized); len(matches) == 2 {
		duration, err := ParseDuration(matches[1])
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, value)
		}
		return duration.AddTo(baseTime.In(p.location)), nil
	}

	if dayName, ok := strings.CutPrefix(normalized, "next "); ok {
		target, known := weekdays[dayName]
		if !known {
			return time.Time{}, fmt.Errorf("%w: unknown weekday %q", ErrInvalidDateFormat, dayName)
		}
		base := baseTime.In(p.location)
		daysUntil := int(target - base.Weekday())
		if daysUntil <= 0 {
			daysUntil += 7
		}
		return p.endOfDay(base.AddDate(0, 0, daysUntil)), nil
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, value)
}

// TryParse is ParseDate without the error, for best-effort uses such as
// ordering events by their free-text time frame.
func (p *Parser) TryParse(value string, baseTime time.Time) (time.Time, bool) {
	parsed, err := p.ParseDate(value, baseTime)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// endOfDay returns 23:59 on the given day in the parser's timezone.
func (p *Parser) endOfDay(t time.Time) time.Time {
	t = t.In(p.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 0, 0, p.location)
}
