package task

import (
	"fmt"
	"slices"
	"strings"
	"time"

	internalstrings "github.com/amonks/duchess/internal/strings"
	"github.com/amonks/duchess/timeparse"
)

// ListOptions configures a List.
type ListOptions struct {
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	// Parser reads event time frames when sorting. Defaults to a parser in
	// the local timezone.
	Parser *timeparse.Parser
}

// List is an ordered collection of active tasks plus an archive.
//
// Indices passed to List methods are 0-based. A List is not safe for
// concurrent use.
type List struct {
	tasks   []Task
	archive []Task
	now     func() time.Time
	parser  *timeparse.Parser
}

// Match is a task returned by Find along with its 0-based position.
type Match struct {
	Task  Task
	Index int
}

// NewList creates a list holding copies of the given sequences.
func NewList(active, archive []Task, opts ListOptions) *List {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Parser == nil {
		opts.Parser = timeparse.NewParserInLocation(time.Local)
	}
	return &List{
		tasks:   cloneTasks(active),
		archive: cloneTasks(archive),
		now:     opts.Now,
		parser:  opts.Parser,
	}
}

// Len returns the number of active tasks.
func (l *List) Len() int { return len(l.tasks) }

// ArchiveLen returns the number of archived tasks.
func (l *List) ArchiveLen() int { return len(l.archive) }

// Tasks returns a copy of the active sequence.
func (l *List) Tasks() []Task { return cloneTasks(l.tasks) }

// Archived returns a copy of the archive sequence.
func (l *List) Archived() []Task { return cloneTasks(l.archive) }

// Restore replaces both sequences with copies of the given ones.
func (l *List) Restore(active, archive []Task) {
	l.tasks = cloneTasks(active)
	l.archive = cloneTasks(archive)
}

// Add appends a task to the active sequence.
func (l *List) Add(t Task) {
	l.tasks = append(l.tasks, t.Clone())
}

// Get returns the task at index.
func (l *List) Get(index int) (Task, error) {
	if err := l.checkIndex(index); err != nil {
		return Task{}, err
	}
	return l.tasks[index].Clone(), nil
}

// Remove deletes and returns the task at index.
func (l *List) Remove(index int) (Task, error) {
	if err := l.checkIndex(index); err != nil {
		return Task{}, err
	}
	removed := l.tasks[index]
	l.tasks = slices.Delete(l.tasks, index, index+1)
	return removed, nil
}

// RemoveAll clears the active sequence and returns how many tasks it held.
// The archive is untouched.
func (l *List) RemoveAll() int {
	count := len(l.tasks)
	l.tasks = nil
	return count
}

// Complete marks the task at index completed and returns it.
func (l *List) Complete(index int) (Task, error) {
	if err := l.checkIndex(index); err != nil {
		return Task{}, err
	}
	if l.tasks[index].IsCompleted() {
		return Task{}, fmt.Errorf("%w: %q", ErrAlreadyCompleted, l.tasks[index].description)
	}
	l.tasks[index].Complete(l.now())
	return l.tasks[index].Clone(), nil
}

// Snooze pushes back the due time of the deadline at index.
func (l *List) Snooze(index int, d timeparse.Duration) (Task, error) {
	if err := l.checkIndex(index); err != nil {
		return Task{}, err
	}
	target := &l.tasks[index]
	if !target.kind.HasDeadline() {
		return Task{}, fmt.Errorf("%w: task %d is a %s", ErrWrongTaskType, index+1, target.kind)
	}
	if err := target.Snooze(d); err != nil {
		return Task{}, err
	}
	return target.Clone(), nil
}

// Find returns the active tasks whose description contains query,
// case-insensitively, in list order. A blank query matches every task.
func (l *List) Find(query string) []Match {
	needle := internalstrings.NormalizeLowerTrimSpace(query)
	matches := []Match{}
	for i, t := range l.tasks {
		if needle == "" || strings.Contains(strings.ToLower(t.description), needle) {
			matches = append(matches, Match{Task: t.Clone(), Index: i})
		}
	}
	return matches
}

// Sort orders the active sequence: incomplete tasks first, then by each
// task's chronological key, keeping insertion order for ties.
func (l *List) Sort() error {
	if len(l.tasks) == 0 {
		return ErrEmptyList
	}

	type keyed struct {
		task Task
		key  time.Time
	}
	items := make([]keyed, len(l.tasks))
	for i, t := range l.tasks {
		items[i] = keyed{task: t, key: l.SortKey(t)}
	}

	slices.SortStableFunc(items, func(a, b keyed) int {
		if a.task.IsCompleted() != b.task.IsCompleted() {
			if a.task.IsCompleted() {
				return 1
			}
			return -1
		}
		return a.key.Compare(b.key)
	})

	for i, item := range items {
		l.tasks[i] = item.task
	}
	return nil
}

// SortKey returns the chronological key used by Sort.
// Events whose time frame is not a recognizable date sort by creation time.
func (l *List) SortKey(t Task) time.Time {
	switch t.kind {
	case KindDeadline, KindRecurringDeadline:
		return t.due
	case KindEvent:
		if parsed, ok := l.parser.TryParse(t.timeFrame, t.createdAt); ok {
			return parsed
		}
		return t.createdAt
	default:
		return t.createdAt
	}
}

// Archive moves every completed task to the archive, preserving relative
// order, and returns how many tasks moved.
func (l *List) Archive() int {
	var remaining []Task
	moved := 0
	for _, t := range l.tasks {
		if t.IsCompleted() {
			l.archive = append(l.archive, t)
			moved++
			continue
		}
		remaining = append(remaining, t)
	}
	l.tasks = remaining
	return moved
}

func (l *List) checkIndex(index int) error {
	if index < 0 || index >= len(l.tasks) {
		return indexError(index, len(l.tasks))
	}
	return nil
}
