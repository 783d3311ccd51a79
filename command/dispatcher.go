package command

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/amonks/duchess/task"
	"github.com/amonks/duchess/timeparse"
	"github.com/amonks/duchess/undo"
)

// Saver persists the full state of a list.
type Saver interface {
	Save(list *task.List) error
}

// Options configures a Dispatcher.
type Options struct {
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	// Parser reads /by and /until dates. Defaults to the local timezone.
	Parser *timeparse.Parser

	// Logger receives one entry per command. Defaults to a disabled logger.
	Logger *zerolog.Logger
}

// Dispatcher executes commands against one list and undo stack.
//
// A Dispatcher is not safe for concurrent use. Callers that share one
// across goroutines must hold a single lock around each Execute call.
type Dispatcher struct {
	list    *task.List
	history *undo.Stack
	saver   Saver
	now     func() time.Time
	parser  *timeparse.Parser
	logger  zerolog.Logger
}

type handlerFunc func(d *Dispatcher, raw, args string) (Result, error)

var handlers = map[Kind]handlerFunc{
	KindTodo:       (*Dispatcher).addTodo,
	KindEvent:      (*Dispatcher).addEvent,
	KindDeadline:   (*Dispatcher).addDeadline,
	KindList:       (*Dispatcher).showList,
	KindDone:       (*Dispatcher).done,
	KindFind:       (*Dispatcher).find,
	KindDelete:     (*Dispatcher).remove,
	KindSnooze:     (*Dispatcher).snooze,
	KindSort:       (*Dispatcher).sort,
	KindHelp:       (*Dispatcher).help,
	KindUndo:       (*Dispatcher).undo,
	KindArchive:    (*Dispatcher).archive,
	KindStatistics: (*Dispatcher).statistics,
	KindBye:        (*Dispatcher).bye,
}

// NewDispatcher creates a dispatcher. saver may be nil, in which case
// mutations are kept in memory only.
func NewDispatcher(list *task.List, history *undo.Stack, saver Saver, opts Options) *Dispatcher {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Parser == nil {
		opts.Parser = timeparse.NewParserInLocation(time.Local)
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Dispatcher{
		list:    list,
		history: history,
		saver:   saver,
		now:     opts.Now,
		parser:  opts.Parser,
		logger:  logger.With().Str("component", "dispatcher").Logger(),
	}
}

// List returns the list the dispatcher operates on.
func (d *Dispatcher) List() *task.List { return d.list }

// History returns the undo stack.
func (d *Dispatcher) History() *undo.Stack { return d.history }

// Execute resolves and runs one line of input.
//
// On error the list and undo stack are left as they were before the call,
// except for errors wrapping ErrPersistence: those are returned alongside
// a valid Result because the in-memory change was kept.
func (d *Dispatcher) Execute(input string) (Result, error) {
	raw := strings.TrimSpace(input)
	cmd, args, err := Resolve(raw)
	if err != nil {
		d.logger.Debug().Err(err).Msg("resolve failed")
		return Result{}, err
	}

	result, err := handlers[cmd.Kind](d, raw, args)
	result.Kind = cmd.Kind

	event := d.logger.Info()
	if err != nil {
		event = d.logger.Warn().Err(err)
	}
	event = event.Str("command", string(cmd.Kind)).
		Bool("mutating", cmd.Mutating).
		Int("active", d.list.Len()).
		Int("undo_depth", d.history.Len())
	if next, ok := d.history.Peek(); ok {
		event = event.Str("undo_next", next.Command)
	}
	event.Msg("command executed")

	return result, err
}

// mutate snapshots the list under raw, runs apply and persists on success.
// A failing apply discards the snapshot.
func (d *Dispatcher) mutate(raw string, apply func() (Result, error)) (Result, error) {
	d.history.SaveState(raw, d.list)
	result, err := apply()
	if err != nil {
		d.history.Discard()
		return Result{}, err
	}
	return result, d.persist()
}

func (d *Dispatcher) persist() error {
	if d.saver == nil {
		return nil
	}
	if err := d.saver.Save(d.list); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}
