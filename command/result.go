package command

import (
	"github.com/amonks/duchess/task"
	"github.com/amonks/duchess/timeparse"
)

// Result is the structured outcome of a command. Which fields are set
// depends on Kind.
type Result struct {
	Kind Kind

	// Task is the task created, completed, deleted or snoozed.
	Task *task.Task

	// Tasks is the list shown by list, sort and archive show.
	Tasks []task.Task

	// Matches holds find results with their positions in the active list.
	Matches []task.Match

	// Count is the resulting list length after an add, the number of tasks
	// removed by delete all, or the number moved by archive.
	Count int

	// All is set when delete removed every active task.
	All bool

	// ShowArchive is set when archive only displayed the archive.
	ShowArchive bool

	Duration timeparse.Duration
	Stats    task.Stats

	// Reverted is the command text undone by undo.
	Reverted string

	// Help is the command table as markdown.
	Help string

	// Exit asks the session to stop.
	Exit bool
}
