// Package ui renders command results and errors as terminal text.
package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/muesli/reflow/wordwrap"

	"github.com/amonks/duchess/command"
	"github.com/amonks/duchess/internal/markdown"
	"github.com/amonks/duchess/task"
	"github.com/amonks/duchess/undo"
)

// DefaultWidth is used when output is not a terminal and no width is configured.
const DefaultWidth = 80

// Options configures a Renderer.
type Options struct {
	// Width wraps output. Zero means DefaultWidth.
	Width int

	// Color enables lipgloss styling and colored markdown.
	Color bool

	// Now is used for relative due times. Defaults to time.Now.
	Now func() time.Time
}

// Renderer turns results into text.
type Renderer struct {
	width   int
	color   bool
	now     func() time.Time
	palette palette
}

// NewRenderer creates a renderer.
func NewRenderer(opts Options) *Renderer {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Renderer{
		width:   opts.Width,
		color:   opts.Color,
		now:     opts.Now,
		palette: newPalette(opts.Color),
	}
}

// Greeting is printed when an interactive session starts.
func (r *Renderer) Greeting() string {
	return "Hello! I'm Duchess.\nWhat can I do for you?"
}

// Result renders the outcome of a successful command.
func (r *Renderer) Result(result command.Result) string {
	switch result.Kind {
	case command.KindTodo, command.KindEvent, command.KindDeadline:
		return r.wrap(fmt.Sprintf("Got it. I've added this task:\n  %s\n%s", r.line(*result.Task), countLine(result.Count)))
	case command.KindList:
		return r.taskList("Here are the tasks in your list:", "Your list is empty.", result.Tasks)
	case command.KindDone:
		return r.wrap("Nice! I've marked this task as done:\n  " + r.line(*result.Task))
	case command.KindFind:
		return r.matches(result.Matches)
	case command.KindDelete:
		if result.All {
			return fmt.Sprintf("Noted. I've removed all %s.", plural(result.Count, "task"))
		}
		return r.wrap(fmt.Sprintf("Noted. I've removed this task:\n  %s\n%s", r.line(*result.Task), countLine(result.Count)))
	case command.KindSnooze:
		return r.wrap(fmt.Sprintf("Snoozed for %s:\n  %s", result.Duration, r.line(*result.Task)))
	case command.KindSort:
		return r.taskList("Sorted your list:", "Your list is empty.", result.Tasks)
	case command.KindArchive:
		if result.ShowArchive {
			return r.taskList("Here are your archived tasks:", "Your archive is empty.", result.Tasks)
		}
		if result.Count == 0 {
			return "There are no completed tasks to archive."
		}
		return fmt.Sprintf("Archived %s.", plural(result.Count, "completed task"))
	case command.KindUndo:
		return fmt.Sprintf("Undid %q.", result.Reverted)
	case command.KindHelp:
		return markdown.Render(r.width, r.color, result.Help)
	case command.KindStatistics:
		return r.stats(result.Stats)
	case command.KindBye:
		return "Bye. Hope to see you again soon!"
	default:
		return ""
	}
}

// Error renders a failed command.
func (r *Renderer) Error(err error) string {
	message := ErrorMessage(err)
	if errors.Is(err, command.ErrPersistence) {
		return r.wrap(r.palette.warning.Render(message))
	}
	return r.wrap(r.palette.failure.Render(message))
}

// Warning renders a non-fatal problem such as a failed load.
func (r *Renderer) Warning(message string) string {
	return r.wrap(r.palette.warning.Render(message))
}

// ErrorMessage returns user-facing text for err.
func ErrorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, command.ErrPersistence):
		return "Your change was applied but " + err.Error() + ". Run undo to revert it."
	case errors.Is(err, undo.ErrNothingToUndo):
		return "There is nothing to undo."
	case errors.Is(err, command.ErrEmptySort):
		return "There is nothing to sort."
	case errors.Is(err, command.ErrUnrecognizedCommand):
		return "Sorry, " + err.Error() + ". Type help to see what I understand."
	case command.IsInputError(err):
		return "Sorry, " + err.Error() + ". Type help for usage."
	default:
		return "Sorry, " + err.Error() + "."
	}
}

// Task renders one task without its position.
func (r *Renderer) Task(t task.Task) string {
	return r.line(t)
}

func (r *Renderer) line(t task.Task) string {
	status := r.palette.pending.Render(glyphPending)
	if t.IsCompleted() {
		status = r.palette.done.Render(glyphDone)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "[%s][%s] %s", r.palette.tag.Render(t.Kind().Tag()), status, t.Description())
	if detail := r.detail(t); detail != "" {
		b.WriteString(" ")
		b.WriteString(r.palette.muted.Render("(" + detail + ")"))
	}
	return b.String()
}

func (r *Renderer) detail(t task.Task) string {
	switch t.Kind() {
	case task.KindEvent:
		return "at: " + t.TimeFrame()
	case task.KindDeadline, task.KindRecurringDeadline:
		due, _ := t.Due()
		parts := []string{"by: " + FormatDate(due)}
		if t.IsCompleted() {
			if !t.CompletedOnTime() {
				parts = append(parts, r.palette.late.Render("done late"))
			}
		} else {
			parts = append(parts, FormatRelative(due, r.now()))
		}
		if t.Kind() == task.KindRecurringDeadline {
			recurrence := string(t.Frequency())
			if until, ok := t.RepeatUntil(); ok {
				recurrence += " until " + FormatDate(until)
			}
			if next, ok := t.NextDue(); ok {
				recurrence += ", next " + FormatDate(next)
			}
			parts = append(parts, recurrence)
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}

func (r *Renderer) taskList(heading, empty string, tasks []task.Task) string {
	if len(tasks) == 0 {
		return empty
	}
	lines := make([]string, 0, len(tasks)+1)
	lines = append(lines, heading)
	for i, t := range tasks {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, r.line(t)))
	}
	return r.wrap(strings.Join(lines, "\n"))
}

func (r *Renderer) matches(matches []task.Match) string {
	if len(matches) == 0 {
		return "No matching tasks."
	}
	lines := make([]string, 0, len(matches)+1)
	lines = append(lines, "Here are the matching tasks in your list:")
	for _, match := range matches {
		lines = append(lines, fmt.Sprintf("%d. %s", match.Index+1, r.line(match.Task)))
	}
	return r.wrap(strings.Join(lines, "\n"))
}

func (r *Renderer) stats(stats task.Stats) string {
	table := NewTableBuilder([]string{"TASKS", "COUNT"}, 7).AlignRight(1)
	table.AddRow("active", fmt.Sprint(stats.Active))
	table.AddRow("completed", fmt.Sprint(stats.Completed))
	table.AddRow("incomplete", fmt.Sprint(stats.Incomplete))
	table.AddRow("archived", fmt.Sprint(stats.Archived))
	table.AddRow("deadlines met", fmt.Sprint(stats.OnTime))
	table.AddRow("deadlines missed", fmt.Sprint(stats.Late))
	table.AddRow("completed this week", fmt.Sprint(stats.CompletedRecent))
	return strings.TrimRight(table.String(), "\n")
}

func (r *Renderer) wrap(value string) string {
	return wordwrap.String(value, r.width)
}

func countLine(count int) string {
	return fmt.Sprintf("Now you have %s in the list.", plural(count, "task"))
}

func plural(count int, noun string) string {
	if count == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", count, noun)
}
