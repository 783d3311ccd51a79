// Package main implements the duchess CLI tool.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amonks/duchess/internal/config"
	"github.com/amonks/duchess/internal/logutils"
	"github.com/amonks/duchess/internal/paths"
	"github.com/amonks/duchess/internal/ui"
	"github.com/amonks/duchess/session"
	"github.com/amonks/duchess/timeparse"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr interface{ ExitCode() int }
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		fmt.Fprintln(os.Stderr, "duchess:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "duchess [command...]",
	Short: "Duchess - a text-command task manager",
	Long: `Duchess keeps a list of todos, events and deadlines.

Run without arguments to start an interactive session, or pass a single
command to run it and exit, for example:

  duchess todo buy milk
  duchess deadline report /by 2024-05-03 17:00
  duchess list

Flags must come before the command words.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

var (
	rootConfigPath string
	rootDataPath   string
	rootLogLevel   string
	rootLogFile    string
)

func init() {
	flags := rootCmd.Flags()
	flags.SetInterspersed(false)
	flags.StringVar(&rootConfigPath, "config", "", "Config file (default $"+config.EnvConfigPath+" or ~/.config/duchess/config.toml)")
	flags.StringVar(&rootDataPath, "data", "", "Task file; .json, .yaml or .yml (default ~/.local/share/duchess/tasks.json)")
	flags.StringVar(&rootLogLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
	flags.StringVar(&rootLogFile, "log-file", "", "Log file (default ~/.local/state/duchess/duchess.log)")
	setFlagAliases(flags, rootFlagAliases)
}

// exitError ends the process with a status code after output was already written.
type exitError struct {
	code int
}

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func (e exitError) ExitCode() int { return e.code }

// settings are the resolved flag and config values.
type settings struct {
	dataPath  string
	logLevel  string
	logFile   string
	timezone  string
	undoDepth int
	width     int
}

func resolveSettings(cfg *config.Config) (settings, error) {
	dataPath, err := paths.ResolveWithDefault(firstNonEmpty(rootDataPath, cfg.Storage.Path), paths.DefaultDataPath)
	if err != nil {
		return settings{}, err
	}
	logFile, err := paths.ResolveWithDefault(firstNonEmpty(rootLogFile, cfg.Log.File), paths.DefaultLogPath)
	if err != nil {
		return settings{}, err
	}
	return settings{
		dataPath:  dataPath,
		logLevel:  firstNonEmpty(rootLogLevel, cfg.Log.Level),
		logFile:   logFile,
		timezone:  cfg.Time.Timezone,
		undoDepth: cfg.Undo.Depth,
		width:     cfg.UI.Width,
	}, nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(rootConfigPath)
	if err != nil {
		return err
	}
	resolved, err := resolveSettings(cfg)
	if err != nil {
		return err
	}

	logger, closeLog, err := logutils.New(resolved.logLevel, resolved.logFile)
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	defer closeLog()

	parser, err := timeparse.NewParser(resolved.timezone)
	if err != nil {
		return err
	}

	width := resolved.width
	if width == 0 {
		width = ui.TerminalWidth(ui.DefaultWidth)
	}
	renderer := ui.NewRenderer(ui.Options{Width: width, Color: ui.ColorEnabled()})

	s, err := session.Open(session.Options{
		DataPath:  resolved.dataPath,
		UndoDepth: resolved.undoDepth,
		Parser:    parser,
		Renderer:  renderer,
		Logger:    &logger,
	})
	if err != nil {
		return err
	}

	if len(args) == 0 {
		prompt := ""
		if ui.IsTerminal(os.Stdin) {
			prompt = session.DefaultPrompt
		}
		return s.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), session.RunOptions{Prompt: prompt})
	}

	return runOnce(cmd, s, strings.Join(args, " "))
}

func runOnce(cmd *cobra.Command, s *session.Session, line string) error {
	stderr := cmd.ErrOrStderr()
	if warning := s.LoadWarning(); warning != "" {
		fmt.Fprintln(stderr, warning)
	}

	response := s.Execute(line)
	if response.Output != "" {
		fmt.Fprintln(cmd.OutOrStdout(), response.Output)
	}
	if response.Err != nil {
		fmt.Fprintln(stderr, response.Message)
		return exitError{code: 1}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}
