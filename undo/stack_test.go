package undo

import (
	"errors"
	"testing"
	"time"

	"github.com/amonks/duchess/task"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newList(t *testing.T, descriptions ...string) *task.List {
	t.Helper()
	var tasks []task.Task
	for _, description := range descriptions {
		item, err := task.NewTodo(description, testNow)
		if err != nil {
			t.Fatalf("NewTodo: %v", err)
		}
		tasks = append(tasks, item)
	}
	return task.NewList(tasks, nil, task.ListOptions{Now: func() time.Time { return testNow }})
}

func TestUndo_Empty(t *testing.T) {
	stack := New(DefaultDepth)
	if _, err := stack.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("expected ErrNothingToUndo, got %v", err)
	}
}

func TestUndo_RestoresPreMutationState(t *testing.T) {
	list := newList(t, "a", "b")
	if _, err := list.Complete(0); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	list.Archive()
	beforeActive, beforeArchive := list.Tasks(), list.Archived()

	stack := New(DefaultDepth)
	stack.SaveState("delete all", list)
	list.RemoveAll()

	snapshot, err := stack.Undo()
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if snapshot.Command != "delete all" {
		t.Errorf("Command = %q", snapshot.Command)
	}
	snapshot.Apply(list)

	if !task.EqualSlices(list.Tasks(), beforeActive) {
		t.Error("active sequence not restored")
	}
	if !task.EqualSlices(list.Archived(), beforeArchive) {
		t.Error("archive sequence not restored")
	}
	if stack.Len() != 0 {
		t.Errorf("Len() = %d after undo", stack.Len())
	}
}

func TestSaveState_IsDeepCopy(t *testing.T) {
	list := newList(t, "a")
	stack := New(DefaultDepth)
	stack.SaveState("done 1", list)

	if _, err := list.Complete(0); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	snapshot, _ := stack.Peek()
	if snapshot.Active[0].IsCompleted() {
		t.Error("mutating the list changed the snapshot")
	}
}

func TestStack_LIFO(t *testing.T) {
	list := newList(t)
	stack := New(DefaultDepth)
	for _, command := range []string{"todo a", "todo b", "todo c"} {
		stack.SaveState(command, list)
	}

	for _, want := range []string{"todo c", "todo b", "todo a"} {
		snapshot, err := stack.Undo()
		if err != nil {
			t.Fatalf("Undo: %v", err)
		}
		if snapshot.Command != want {
			t.Errorf("Command = %q, want %q", snapshot.Command, want)
		}
	}
}

func TestStack_EvictsOldest(t *testing.T) {
	list := newList(t)
	stack := New(2)
	for _, command := range []string{"one", "two", "three"} {
		stack.SaveState(command, list)
	}

	if stack.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", stack.Len())
	}
	first, _ := stack.Undo()
	second, _ := stack.Undo()
	if first.Command != "three" || second.Command != "two" {
		t.Errorf("got %q, %q; want three, two", first.Command, second.Command)
	}
	if _, err := stack.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("expected oldest snapshot to be evicted, got %v", err)
	}
}

func TestNew_MinimumDepth(t *testing.T) {
	stack := New(0)
	if stack.Depth() != 1 {
		t.Fatalf("Depth() = %d, want 1", stack.Depth())
	}
	list := newList(t)
	stack.SaveState("one", list)
	stack.SaveState("two", list)
	snapshot, err := stack.Undo()
	if err != nil || snapshot.Command != "two" {
		t.Errorf("Undo() = %q, %v", snapshot.Command, err)
	}
}

func TestDiscard(t *testing.T) {
	list := newList(t)
	stack := New(DefaultDepth)
	stack.Discard()

	stack.SaveState("keep", list)
	stack.SaveState("drop", list)
	stack.Discard()

	snapshot, ok := stack.Peek()
	if !ok || snapshot.Command != "keep" {
		t.Errorf("Peek() = %q, %v; want keep", snapshot.Command, ok)
	}
}
