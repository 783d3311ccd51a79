// Package command turns a line of user input into an operation on a task list.
//
// Resolution maps the leading word of the input to a Command through its
// aliases. The Dispatcher then validates the remaining arguments, snapshots
// the list before any mutation, applies the change and persists the result.
package command

import (
	"fmt"

	internalstrings "github.com/amonks/duchess/internal/strings"
)

// Kind identifies a command.
type Kind string

const (
	KindTodo       Kind = "todo"
	KindEvent      Kind = "event"
	KindDeadline   Kind = "deadline"
	KindList       Kind = "list"
	KindDone       Kind = "done"
	KindFind       Kind = "find"
	KindDelete     Kind = "delete"
	KindSnooze     Kind = "snooze"
	KindSort       Kind = "sort"
	KindHelp       Kind = "help"
	KindUndo       Kind = "undo"
	KindArchive    Kind = "archive"
	KindStatistics Kind = "statistics"
	KindBye        Kind = "bye"
)

// Command describes one entry of the command table.
type Command struct {
	Kind    Kind
	Aliases []string
	Usage   string
	Summary string

	// Mutating commands are snapshotted before they run and persisted after.
	// Archive is listed as mutating even though its show form is read-only.
	Mutating bool
}

var registry = []Command{
	{Kind: KindTodo, Aliases: []string{"todo", "t"}, Usage: "todo <description>", Summary: "Add a todo", Mutating: true},
	{Kind: KindEvent, Aliases: []string{"event", "e"}, Usage: "event <description> /at <time frame>", Summary: "Add an event", Mutating: true},
	{Kind: KindDeadline, Aliases: []string{"deadline", "dl"}, Usage: "deadline <description> /by <date> [/every <frequency> [/until <date>]]", Summary: "Add a deadline, optionally recurring", Mutating: true},
	{Kind: KindList, Aliases: []string{"list", "l", "li"}, Usage: "list", Summary: "Show active tasks"},
	{Kind: KindDone, Aliases: []string{"done", "d", "complete"}, Usage: "done <index>", Summary: "Mark a task completed", Mutating: true},
	{Kind: KindFind, Aliases: []string{"find", "f", "search"}, Usage: "find <query>", Summary: "Search task descriptions"},
	{Kind: KindDelete, Aliases: []string{"delete", "del"}, Usage: "delete <index|all>", Summary: "Delete one task or every active task", Mutating: true},
	{Kind: KindSnooze, Aliases: []string{"snooze"}, Usage: "snooze <index> /for <duration>", Summary: "Push back a deadline", Mutating: true},
	{Kind: KindSort, Aliases: []string{"sort", "s"}, Usage: "sort", Summary: "Sort incomplete tasks first, then by date", Mutating: true},
	{Kind: KindHelp, Aliases: []string{"help", "h"}, Usage: "help", Summary: "Show this help"},
	{Kind: KindUndo, Aliases: []string{"undo"}, Usage: "undo", Summary: "Revert the last change", Mutating: true},
	{Kind: KindArchive, Aliases: []string{"archive", "arc", "a"}, Usage: "archive [show]", Summary: "Archive completed tasks, or show the archive", Mutating: true},
	{Kind: KindStatistics, Aliases: []string{"statistics", "statistic", "stat", "stats"}, Usage: "statistics", Summary: "Show task statistics"},
	{Kind: KindBye, Aliases: []string{"bye", "exit", "quit"}, Usage: "bye", Summary: "Leave the session"},
}

var aliasIndex = buildAliasIndex(registry)

func buildAliasIndex(commands []Command) map[string]Command {
	index := make(map[string]Command)
	for _, cmd := range commands {
		for _, alias := range cmd.Aliases {
			if _, exists := index[alias]; exists {
				panic(fmt.Sprintf("command: alias %q registered twice", alias))
			}
			index[alias] = cmd
		}
	}
	return index
}

// Commands returns the command table in display order.
func Commands() []Command {
	commands := make([]Command, len(registry))
	copy(commands, registry)
	return commands
}

// Lookup returns the command registered for kind.
func Lookup(kind Kind) (Command, bool) {
	for _, cmd := range registry {
		if cmd.Kind == kind {
			return cmd, true
		}
	}
	return Command{}, false
}

// Resolve splits input at its first whitespace and matches the leading word
// against every alias, ignoring case. It returns the command and the
// trimmed remainder of the input.
func Resolve(input string) (Command, string, error) {
	head, rest := internalstrings.SplitFirstWord(input)
	token := internalstrings.NormalizeLowerTrimSpace(head)
	if cmd, ok := aliasIndex[token]; ok {
		return cmd, rest, nil
	}
	if token == "" {
		return Command{}, "", fmt.Errorf("%w: empty input", ErrUnrecognizedCommand)
	}
	return Command{}, "", fmt.Errorf("%w: %q", ErrUnrecognizedCommand, head)
}
