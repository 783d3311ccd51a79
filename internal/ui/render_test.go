package ui

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/amonks/duchess/command"
	"github.com/amonks/duchess/task"
	"github.com/amonks/duchess/undo"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestRenderer() *Renderer {
	return NewRenderer(Options{Width: 200, Now: func() time.Time { return testNow }})
}

func TestRenderer_TaskLines(t *testing.T) {
	r := newTestRenderer()
	due := time.Date(2024, 5, 3, 17, 0, 0, 0, time.UTC)

	todo, _ := task.NewTodo("buy milk", testNow)
	event, _ := task.NewEvent("party", "sat 8pm", testNow)
	deadline, _ := task.NewDeadline("report", due, testNow)
	late, _ := task.NewDeadline("essay", testNow, testNow)
	late.Complete(testNow.Add(time.Hour))
	recurring, _ := task.NewRecurringDeadline("rent", due, task.FrequencyWeekly, time.Time{}, testNow)

	tests := []struct {
		name string
		task task.Task
		want string
	}{
		{name: "todo", task: todo, want: "[T][✘] buy milk"},
		{name: "event", task: event, want: "[E][✘] party (at: sat 8pm)"},
		{name: "deadline", task: deadline, want: "[D][✘] report (by: Fri 3 May 2024 17:00, in 2d)"},
		{name: "late", task: late, want: "[D][✓] essay (by: Wed 1 May 2024 12:00, done late)"},
		{name: "recurring", task: recurring, want: "[R][✘] rent (by: Fri 3 May 2024 17:00, in 2d, weekly, next Fri 10 May 2024 17:00)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Task(tt.task); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRenderer_Results(t *testing.T) {
	r := newTestRenderer()
	milk, _ := task.NewTodo("buy milk", testNow)
	dog, _ := task.NewTodo("walk dog", testNow)

	tests := []struct {
		name   string
		result command.Result
		want   string
	}{
		{
			name:   "add",
			result: command.Result{Kind: command.KindTodo, Task: &milk, Count: 1},
			want:   "Got it. I've added this task:\n  [T][✘] buy milk\nNow you have 1 task in the list.",
		},
		{
			name:   "list",
			result: command.Result{Kind: command.KindList, Tasks: []task.Task{milk, dog}},
			want:   "Here are the tasks in your list:\n1. [T][✘] buy milk\n2. [T][✘] walk dog",
		},
		{
			name:   "empty list",
			result: command.Result{Kind: command.KindList},
			want:   "Your list is empty.",
		},
		{
			name:   "find",
			result: command.Result{Kind: command.KindFind, Matches: []task.Match{{Task: dog, Index: 1}}},
			want:   "Here are the matching tasks in your list:\n2. [T][✘] walk dog",
		},
		{
			name:   "delete all",
			result: command.Result{Kind: command.KindDelete, All: true, Count: 3},
			want:   "Noted. I've removed all 3 tasks.",
		},
		{
			name:   "archive",
			result: command.Result{Kind: command.KindArchive, Count: 2},
			want:   "Archived 2 completed tasks.",
		},
		{
			name:   "archive show empty",
			result: command.Result{Kind: command.KindArchive, ShowArchive: true},
			want:   "Your archive is empty.",
		},
		{
			name:   "undo",
			result: command.Result{Kind: command.KindUndo, Reverted: "delete 1"},
			want:   `Undid "delete 1".`,
		},
		{
			name:   "bye",
			result: command.Result{Kind: command.KindBye, Exit: true},
			want:   "Bye. Hope to see you again soon!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Result(tt.result); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRenderer_Stats(t *testing.T) {
	r := newTestRenderer()
	got := r.Result(command.Result{Kind: command.KindStatistics, Stats: task.Stats{Active: 12, Completed: 3}})

	lines := strings.Split(got, "\n")
	if len(lines) != 8 {
		t.Fatalf("expected header plus 7 rows, got %d lines: %q", len(lines), got)
	}
	if !strings.HasPrefix(lines[1], "active") || !strings.HasSuffix(lines[1], "12") {
		t.Fatalf("unexpected active row %q", lines[1])
	}
}

func TestRenderer_WrapsLongLines(t *testing.T) {
	r := NewRenderer(Options{Width: 20})
	long, _ := task.NewTodo(strings.Repeat("word ", 10), testNow)

	got := r.Result(command.Result{Kind: command.KindDone, Task: &long})
	for _, line := range strings.Split(got, "\n") {
		if len(line) > 20 && strings.Contains(line, " ") {
			t.Fatalf("line %q exceeds width", line)
		}
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "nothing to undo", err: undo.ErrNothingToUndo, want: "There is nothing to undo."},
		{name: "empty sort", err: fmt.Errorf("%w: %w", command.ErrEmptySort, task.ErrEmptyList), want: "There is nothing to sort."},
		{name: "unrecognized", err: fmt.Errorf("%w: %q", command.ErrUnrecognizedCommand, "blah"), want: `Sorry, unrecognized command: "blah". Type help to see what I understand.`},
		{name: "input", err: command.ErrMissingIndex, want: "Sorry, missing task index. Type help for usage."},
		{name: "state", err: task.ErrAlreadyCompleted, want: "Sorry, task already completed."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorMessage(tt.err); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}

	persist := fmt.Errorf("%w: %w", command.ErrPersistence, errors.New("disk full"))
	if got := ErrorMessage(persist); !strings.Contains(got, "Run undo") || !strings.Contains(got, "disk full") {
		t.Fatalf("unexpected persistence message %q", got)
	}
}
