package command

import (
	"errors"

	"github.com/amonks/duchess/timeparse"
)

var (
	// ErrUnrecognizedCommand is returned when the leading word matches no alias.
	ErrUnrecognizedCommand = errors.New("unrecognized command")

	// ErrMissingIndex is returned when a command needs an index and none was given.
	ErrMissingIndex = errors.New("missing task index")

	// ErrTooManyIndices is returned when more than one index token follows a command.
	ErrTooManyIndices = errors.New("too many task indices")

	// ErrInvalidIndexFormat is returned when the index token is not a base-10 integer.
	ErrInvalidIndexFormat = errors.New("task index must be a number")

	// ErrInvalidSnoozeDuration is returned when snooze has no /for clause.
	ErrInvalidSnoozeDuration = errors.New("snooze needs a /for <duration> clause")

	// ErrEmptySort is returned when sorting an empty list. It wraps task.ErrEmptyList.
	ErrEmptySort = errors.New("nothing to sort")

	// ErrPersistence is returned when a mutation succeeded but could not be saved.
	ErrPersistence = errors.New("changes could not be saved")

	// ErrMissingDescription is returned when a creation command has no description.
	ErrMissingDescription = errors.New("missing task description")

	// ErrMissingTimeFrame is returned when an event has no /at clause.
	ErrMissingTimeFrame = errors.New("event needs an /at <time frame> clause")

	// ErrMissingDueDate is returned when a deadline has no /by clause.
	ErrMissingDueDate = errors.New("deadline needs a /by <date> clause")

	// ErrInvalidArchiveOption is returned when archive is followed by an unknown word.
	ErrInvalidArchiveOption = errors.New("invalid archive option")
)

// IsInputError reports whether err was caused by malformed command input
// rather than the state of the list or the filesystem.
func IsInputError(err error) bool {
	for _, target := range []error{
		ErrUnrecognizedCommand,
		ErrMissingIndex,
		ErrTooManyIndices,
		ErrInvalidIndexFormat,
		ErrInvalidSnoozeDuration,
		ErrMissingDescription,
		ErrMissingTimeFrame,
		ErrMissingDueDate,
		ErrInvalidArchiveOption,
		timeparse.ErrInvalidDurationFormat,
		timeparse.ErrInvalidDateFormat,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
