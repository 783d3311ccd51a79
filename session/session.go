// Package session owns the task list for one run of duchess.
//
// A Session loads the snapshot file on start, executes one command line at
// a time through a command.Dispatcher and renders each outcome.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/amonks/duchess/command"
	"github.com/amonks/duchess/internal/ui"
	"github.com/amonks/duchess/storage"
	"github.com/amonks/duchess/task"
	"github.com/amonks/duchess/timeparse"
	"github.com/amonks/duchess/undo"
)

// DefaultPrompt is shown before each line in interactive sessions.
const DefaultPrompt = "> "

// Options configures a Session.
type Options struct {
	// DataPath is the snapshot file. Required.
	DataPath string

	// UndoDepth bounds the undo history. Zero means undo.DefaultDepth.
	UndoDepth int

	// Parser reads dates. Defaults to the local timezone.
	Parser *timeparse.Parser

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	// Renderer formats output. Defaults to an uncolored renderer.
	Renderer *ui.Renderer

	// Logger receives session and dispatcher events.
	Logger *zerolog.Logger
}

// Session is a loaded task list plus the machinery to run commands on it.
// It is not safe for concurrent use.
type Session struct {
	dispatcher *command.Dispatcher
	file       *storage.File
	renderer   *ui.Renderer
	logger     zerolog.Logger
	loadErr    error
	backupPath string
	id         string
}

// Response is the rendered outcome of one command line.
type Response struct {
	// Output is the rendered result. It is set for successful commands and
	// for mutations that were applied but not saved.
	Output string

	// Message is the rendered error, if any.
	Message string

	// Err is the underlying error.
	Err error

	// Exit is set when the command asked to end the session.
	Exit bool
}

// Open loads the snapshot file and prepares a session.
//
// A missing snapshot file starts an empty list silently. Any other load
// failure also starts an empty list, and is reported by LoadError.
func Open(opts Options) (*Session, error) {
	file, err := storage.Open(opts.DataPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Parser == nil {
		opts.Parser = timeparse.NewParserInLocation(time.Local)
	}
	if opts.Renderer == nil {
		opts.Renderer = ui.NewRenderer(ui.Options{Now: opts.Now})
	}
	if opts.UndoDepth == 0 {
		opts.UndoDepth = undo.DefaultDepth
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	// Every log line of one run carries the same session id.
	id := uuid.NewString()
	logger = logger.With().Str("session", id).Logger()

	var backupPath string
	active, archive, loadErr := file.Load()
	if loadErr != nil {
		active, archive = nil, nil
		if isMissingFile(loadErr) {
			logger.Debug().Str("path", file.Path()).Msg("no snapshot file, starting empty")
			loadErr = nil
		} else {
			logger.Warn().Err(loadErr).Str("path", file.Path()).Msg("load failed, starting empty")
			backupPath = backupUnreadable(file, loadErr, logger)
		}
	}

	list := task.NewList(active, archive, task.ListOptions{Now: opts.Now, Parser: opts.Parser})
	dispatcher := command.NewDispatcher(list, undo.New(opts.UndoDepth), file, command.Options{
		Now:    opts.Now,
		Parser: opts.Parser,
		Logger: &logger,
	})

	logger.Info().
		Str("path", file.Path()).
		Int("active", list.Len()).
		Int("archived", list.ArchiveLen()).
		Msg("session opened")

	return &Session{
		dispatcher: dispatcher,
		file:       file,
		renderer:   opts.Renderer,
		logger:     logger.With().Str("component", "session").Logger(),
		loadErr:    loadErr,
		backupPath: backupPath,
		id:         id,
	}, nil
}

// backupUnreadable copies a snapshot file that exists but failed to parse,
// so the first save of this session does not destroy it.
func backupUnreadable(file *storage.File, loadErr error, logger zerolog.Logger) string {
	if errors.Is(loadErr, os.ErrNotExist) || errors.Is(loadErr, storage.ErrLoadAndSave) {
		return ""
	}
	backup, err := file.Backup()
	if err != nil {
		logger.Warn().Err(err).Str("path", file.Path()).Msg("backup failed")
		return ""
	}
	logger.Info().Str("path", file.Path()).Str("backup", backup).Msg("kept a copy of the unreadable snapshot")
	return backup
}

// ID identifies this session in log output.
func (s *Session) ID() string { return s.id }

func isMissingFile(err error) bool {
	return errors.Is(err, os.ErrNotExist) && !errors.Is(err, storage.ErrLoadAndSave)
}

// LoadError returns the error from loading the snapshot file, or nil if it
// loaded or did not exist.
func (s *Session) LoadError() error { return s.loadErr }

// BackupPath returns where the unreadable snapshot file was copied, or ""
// if no copy was made.
func (s *Session) BackupPath() string { return s.backupPath }

// LoadWarning returns the rendered load warning, or "" if loading succeeded.
func (s *Session) LoadWarning() string {
	if s.loadErr == nil {
		return ""
	}
	text := "Could not load your saved tasks, starting with an empty list: " + s.loadErr.Error()
	if s.backupPath != "" {
		text += ". A copy of the old file was kept at " + s.backupPath
	}
	return s.renderer.Warning(text)
}

// List returns the session's task list.
func (s *Session) List() *task.List { return s.dispatcher.List() }

// Execute runs one command line.
func (s *Session) Execute(line string) Response {
	result, err := s.dispatcher.Execute(line)
	response := Response{Err: err, Exit: result.Exit}
	if err == nil || errors.Is(err, command.ErrPersistence) {
		response.Output = s.renderer.Result(result)
	}
	if err != nil {
		response.Message = s.renderer.Error(err)
	}
	return response
}

// RunOptions configures Run.
type RunOptions struct {
	// Prompt is written before each line. Empty disables the prompt.
	Prompt string
}

// Run reads command lines from in until bye, EOF or ctx is done, writing
// all output to out. Blank lines are skipped.
func (s *Session) Run(ctx context.Context, in io.Reader, out io.Writer, opts RunOptions) error {
	fmt.Fprintln(out, s.renderer.Greeting())
	if warning := s.LoadWarning(); warning != "" {
		fmt.Fprintln(out, warning)
	}

	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if opts.Prompt != "" {
			fmt.Fprint(out, opts.Prompt)
		}
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		response := s.Execute(line)
		if response.Output != "" {
			fmt.Fprintln(out, response.Output)
		}
		if response.Message != "" {
			fmt.Fprintln(out, response.Message)
		}
		if response.Exit {
			s.logger.Debug().Msg("session ended by command")
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	s.logger.Debug().Msg("session ended at end of input")
	return nil
}
