package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	internalstrings "github.com/amonks/duchess/internal/strings"
	"github.com/amonks/duchess/internal/validation"
	"github.com/amonks/duchess/task"
	"github.com/amonks/duchess/timeparse"
)

const (
	markerAt    = "/at"
	markerBy    = "/by"
	markerEvery = "/every"
	markerUntil = "/until"
	markerFor   = "/for"
)

var archiveShowOptions = []string{"show", "view", "list"}

func (d *Dispatcher) addTodo(raw, args string) (Result, error) {
	if args == "" {
		return Result{}, ErrMissingDescription
	}
	created, err := task.NewTodo(args, d.now())
	if err != nil {
		return Result{}, err
	}
	return d.add(raw, created)
}

func (d *Dispatcher) addEvent(raw, args string) (Result, error) {
	description, frame, found := internalstrings.CutMarker(args, markerAt)
	if description == "" {
		return Result{}, ErrMissingDescription
	}
	if !found || frame == "" {
		return Result{}, ErrMissingTimeFrame
	}
	created, err := task.NewEvent(description, frame, d.now())
	if err != nil {
		return Result{}, err
	}
	return d.add(raw, created)
}

func (d *Dispatcher) addDeadline(raw, args string) (Result, error) {
	description, rest, found := internalstrings.CutMarker(args, markerBy)
	if description == "" {
		return Result{}, ErrMissingDescription
	}
	if !found || rest == "" {
		return Result{}, ErrMissingDueDate
	}

	now := d.now()
	dueText, recurrence, recurring := internalstrings.CutMarker(rest, markerEvery)
	due, err := d.parser.ParseDate(dueText, now)
	if err != nil {
		return Result{}, fmt.Errorf("due date: %w", err)
	}

	if !recurring {
		created, err := task.NewDeadline(description, due, now)
		if err != nil {
			return Result{}, err
		}
		return d.add(raw, created)
	}

	frequencyText, untilText, bounded := internalstrings.CutMarker(recurrence, markerUntil)
	frequency, err := task.ParseFrequency(frequencyText)
	if err != nil {
		return Result{}, err
	}
	var until time.Time
	if bounded {
		until, err = d.parser.ParseDate(untilText, now)
		if err != nil {
			return Result{}, fmt.Errorf("repeat end: %w", err)
		}
	}
	created, err := task.NewRecurringDeadline(description, due, frequency, until, now)
	if err != nil {
		return Result{}, err
	}
	return d.add(raw, created)
}

func (d *Dispatcher) add(raw string, created task.Task) (Result, error) {
	return d.mutate(raw, func() (Result, error) {
		d.list.Add(created)
		return Result{Task: &created, Count: d.list.Len()}, nil
	})
}

func (d *Dispatcher) showList(_, _ string) (Result, error) {
	return Result{Tasks: d.list.Tasks()}, nil
}

func (d *Dispatcher) done(raw, args string) (Result, error) {
	index, err := parseIndex(args)
	if err != nil {
		return Result{}, err
	}
	return d.mutate(raw, func() (Result, error) {
		completed, err := d.list.Complete(index)
		if err != nil {
			return Result{}, err
		}
		return Result{Task: &completed}, nil
	})
}

func (d *Dispatcher) find(_, args string) (Result, error) {
	return Result{Matches: d.list.Find(args)}, nil
}

func (d *Dispatcher) remove(raw, args string) (Result, error) {
	if internalstrings.NormalizeLowerTrimSpace(args) == "all" {
		return d.mutate(raw, func() (Result, error) {
			return Result{Count: d.list.RemoveAll(), All: true}, nil
		})
	}

	index, err := parseIndex(args)
	if err != nil {
		return Result{}, err
	}
	return d.mutate(raw, func() (Result, error) {
		removed, err := d.list.Remove(index)
		if err != nil {
			return Result{}, err
		}
		return Result{Task: &removed, Count: d.list.Len()}, nil
	})
}

// snooze checks the index, then the task kind, then the duration.
func (d *Dispatcher) snooze(raw, args string) (Result, error) {
	indexText, durationText, found := internalstrings.CutMarker(args, markerFor)
	index, err := parseIndex(indexText)
	if err != nil {
		return Result{}, err
	}
	target, err := d.list.Get(index)
	if err != nil {
		return Result{}, err
	}
	if !target.Kind().HasDeadline() {
		return Result{}, fmt.Errorf("%w: task %d is a %s", task.ErrWrongTaskType, index+1, target.Kind())
	}
	if !found || durationText == "" {
		return Result{}, ErrInvalidSnoozeDuration
	}
	duration, err := timeparse.ParseDuration(durationText)
	if err != nil {
		return Result{}, err
	}

	return d.mutate(raw, func() (Result, error) {
		snoozed, err := d.list.Snooze(index, duration)
		if err != nil {
			return Result{}, err
		}
		return Result{Task: &snoozed, Duration: duration}, nil
	})
}

func (d *Dispatcher) sort(raw, _ string) (Result, error) {
	return d.mutate(raw, func() (Result, error) {
		if err := d.list.Sort(); err != nil {
			if errors.Is(err, task.ErrEmptyList) {
				return Result{}, fmt.Errorf("%w: %w", ErrEmptySort, err)
			}
			return Result{}, err
		}
		return Result{Tasks: d.list.Tasks()}, nil
	})
}

func (d *Dispatcher) archive(raw, args string) (Result, error) {
	option := internalstrings.NormalizeLowerTrimSpace(args)
	if option == "" {
		return d.mutate(raw, func() (Result, error) {
			return Result{Count: d.list.Archive()}, nil
		})
	}
	if validation.OneOf(option, archiveShowOptions) {
		return Result{Tasks: d.list.Archived(), ShowArchive: true}, nil
	}
	return Result{}, validation.FormatInvalidValueError(ErrInvalidArchiveOption, args, archiveShowOptions)
}

// undo never pushes a snapshot of its own.
func (d *Dispatcher) undo(_, _ string) (Result, error) {
	snapshot, err := d.history.Undo()
	if err != nil {
		return Result{}, err
	}
	snapshot.Apply(d.list)
	return Result{Reverted: snapshot.Command}, d.persist()
}

func (d *Dispatcher) help(_, _ string) (Result, error) {
	return Result{Help: HelpMarkdown()}, nil
}

func (d *Dispatcher) statistics(_, _ string) (Result, error) {
	return Result{Stats: d.list.Stats(d.now())}, nil
}

func (d *Dispatcher) bye(_, _ string) (Result, error) {
	return Result{Exit: true}, nil
}

// parseIndex reads exactly one 1-based index token and returns it 0-based.
func parseIndex(args string) (int, error) {
	fields := strings.Fields(args)
	switch {
	case len(fields) == 0:
		return 0, ErrMissingIndex
	case len(fields) > 1:
		return 0, fmt.Errorf("%w: got %d", ErrTooManyIndices, len(fields))
	}
	value, err := strconv.Atoi(fields[0])
	if errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("%w: %s", task.ErrIndexOutOfBounds, fields[0])
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidIndexFormat, fields[0])
	}
	return value - 1, nil
}
