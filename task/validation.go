package task

import (
	"errors"
	"fmt"

	"github.com/amonks/duchess/internal/validation"
)

var (
	// ErrEmptyDescription is returned when a task is created without a description.
	ErrEmptyDescription = errors.New("description cannot be empty")

	// ErrDescriptionTooLong is returned when a description exceeds MaxDescriptionLength.
	ErrDescriptionTooLong = errors.New("description exceeds maximum length")

	// ErrInvalidKind is returned when a task kind is unknown.
	ErrInvalidKind = errors.New("invalid task kind")

	// ErrInvalidFrequency is returned when a recurrence frequency is unknown.
	ErrInvalidFrequency = errors.New("invalid frequency")

	// ErrInvalidRecord is returned when a persisted record is missing fields
	// its kind requires or breaks the completion invariant.
	ErrInvalidRecord = errors.New("invalid task record")

	// ErrIndexOutOfBounds is returned when an index does not refer to a task.
	ErrIndexOutOfBounds = errors.New("index out of bounds")

	// ErrAlreadyCompleted is returned when completing a completed task.
	ErrAlreadyCompleted = errors.New("task already completed")

	// ErrEmptyList is returned when an operation needs at least one task.
	ErrEmptyList = errors.New("task list is empty")

	// ErrWrongTaskType is returned when the collection is asked to snooze a
	// task that has no deadline.
	ErrWrongTaskType = errors.New("task has no deadline")

	// ErrUnsupportedOperation is returned when a task is asked to do
	// something its kind does not support.
	ErrUnsupportedOperation = errors.New("operation not supported for task kind")
)

// MaxDescriptionLength is the maximum allowed length for a task description.
const MaxDescriptionLength = 500

// ValidateDescription checks if the description is valid.
func ValidateDescription(description string) error {
	if description == "" {
		return ErrEmptyDescription
	}
	if len(description) > MaxDescriptionLength {
		return fmt.Errorf("%w: %d > %d", ErrDescriptionTooLong, len(description), MaxDescriptionLength)
	}
	return nil
}

func invalidFrequencyError(value string) error {
	return validation.FormatInvalidValueError(ErrInvalidFrequency, value, frequencyNames())
}

func indexError(index, length int) error {
	if length == 0 {
		return fmt.Errorf("%w: %d (list is empty)", ErrIndexOutOfBounds, index+1)
	}
	return fmt.Errorf("%w: %d (expected 1-%d)", ErrIndexOutOfBounds, index+1, length)
}

func frequencyNames() []string {
	names := make([]string, 0, len(ValidFrequencies()))
	for _, frequency := range ValidFrequencies() {
		names = append(names, string(frequency))
	}
	return names
}
