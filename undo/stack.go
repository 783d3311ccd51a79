// Package undo keeps snapshots of a task list so mutating commands can be
// rolled back one step at a time.
package undo

import (
	"errors"

	"github.com/amonks/duchess/task"
)

// DefaultDepth is the number of snapshots kept when no depth is configured.
const DefaultDepth = 10

// ErrNothingToUndo is returned when the stack is empty.
var ErrNothingToUndo = errors.New("nothing to undo")

// Snapshot is the state of a list immediately before a command changed it.
type Snapshot struct {
	// Command is the raw input that triggered the snapshot.
	Command string

	Active  []task.Task
	Archive []task.Task
}

// Stack is a bounded stack of snapshots. When full, pushing evicts the oldest.
type Stack struct {
	depth     int
	snapshots []Snapshot
}

// New creates a stack that keeps at most depth snapshots.
// Depths below 1 are raised to 1.
func New(depth int) *Stack {
	if depth < 1 {
		depth = 1
	}
	return &Stack{depth: depth}
}

// SaveState pushes a deep copy of list's state keyed by command.
func (s *Stack) SaveState(command string, list *task.List) {
	snapshot := Snapshot{
		Command: command,
		Active:  list.Tasks(),
		Archive: list.Archived(),
	}
	if len(s.snapshots) >= s.depth {
		s.snapshots = append(s.snapshots[:0], s.snapshots[len(s.snapshots)-s.depth+1:]...)
	}
	s.snapshots = append(s.snapshots, snapshot)
}

// Undo pops the most recent snapshot.
func (s *Stack) Undo() (Snapshot, error) {
	if len(s.snapshots) == 0 {
		return Snapshot{}, ErrNothingToUndo
	}
	last := s.snapshots[len(s.snapshots)-1]
	s.snapshots = s.snapshots[:len(s.snapshots)-1]
	return last, nil
}

// Discard drops the most recent snapshot without returning it.
// It is a no-op on an empty stack.
func (s *Stack) Discard() {
	if len(s.snapshots) == 0 {
		return
	}
	s.snapshots = s.snapshots[:len(s.snapshots)-1]
}

// Peek returns the most recent snapshot without removing it.
func (s *Stack) Peek() (Snapshot, bool) {
	if len(s.snapshots) == 0 {
		return Snapshot{}, false
	}
	return s.snapshots[len(s.snapshots)-1], true
}

// Len returns the number of snapshots held.
func (s *Stack) Len() int { return len(s.snapshots) }

// Depth returns the maximum number of snapshots held.
func (s *Stack) Depth() int { return s.depth }

// Apply restores a snapshot onto list.
func (snapshot Snapshot) Apply(list *task.List) {
	list.Restore(snapshot.Active, snapshot.Archive)
}
