// Package cli holds pomoflow's cobra commands.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"pomoflow/internal/app"
	"pomoflow/internal/platform"
	"pomoflow/internal/storage"
)

// AppName names the config directory, the autostart entry and the instance
// lock.
const AppName = "pomoflow"

// Env is what every command needs: where records live and where to log.
type Env struct {
	Dir    string
	Logger *slog.Logger
}

// DesktopRunner starts the windowed application.
type DesktopRunner func(env Env) error

// ErrDesktopRunning is returned by commands that rewrite records while the
// desktop app holds them in memory.
var ErrDesktopRunning = errors.New("pomoflow is running; change this from its window or quit it first")

type rootOptions struct {
	configDir string
	logLevel  string
	logFile   io.Closer

	instanceRunning func() bool
}

// NewRootCommand creates the root command. Without a subcommand it runs
// runDesktop.
func NewRootCommand(runDesktop DesktopRunner) *cobra.Command {
	return newRootCommand(runDesktop, &rootOptions{
		instanceRunning: func() bool { return platform.InstanceRunning(AppName) },
	})
}

func newRootCommand(runDesktop DesktopRunner, options *rootOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           AppName,
		Short:         "Pomodoro timer with focus flow scoring",
		Long:          `pomoflow runs a pomodoro timer, credits finished work sessions to tasks and scores how well you keep the rhythm.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runDesktop == nil {
				return fmt.Errorf("desktop interface not available in this build")
			}
			env, err := options.env(cmd.ErrOrStderr(), false)
			if err != nil {
				return err
			}
			return runDesktop(env)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if options.logFile != nil {
				options.logFile.Close()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&options.configDir, "config-dir", "", "Directory for settings, tasks, statistics and the journal (default: user config dir)")
	rootCmd.PersistentFlags().StringVar(&options.logLevel, "log-level", "info", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(newTUICommand(options))
	rootCmd.AddCommand(newStatsCommand(options))
	rootCmd.AddCommand(newHistoryCommand(options))
	rootCmd.AddCommand(newSettingsCommand(options))

	return rootCmd
}

// Execute runs the root command.
func Execute(runDesktop DesktopRunner) {
	rootCmd := NewRootCommand(runDesktop)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// env resolves the record directory and builds the logger. With toFile set the
// log goes to <dir>/pomoflow.log so it cannot disturb a full-screen UI.
func (options *rootOptions) env(stderr io.Writer, toFile bool) (Env, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(options.logLevel)); err != nil {
		return Env{}, fmt.Errorf("invalid --log-level %q: %w", options.logLevel, err)
	}

	dir := options.configDir
	if dir == "" {
		resolved, err := storage.ResolveDir(platform.NewService(), AppName)
		if err != nil {
			return Env{}, err
		}
		dir = resolved
	}

	output := stderr
	if toFile {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Env{}, fmt.Errorf("create config directory: %w", err)
		}
		logFile, err := os.OpenFile(filepath.Join(dir, AppName+".log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return Env{}, fmt.Errorf("open log file: %w", err)
		}
		options.logFile = logFile
		output = logFile
	}

	logger := slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return Env{Dir: dir, Logger: logger}, nil
}

// openSession opens the records for a one-shot command.
func (options *rootOptions) openSession(cmd *cobra.Command) (*app.Session, error) {
	env, err := options.env(cmd.ErrOrStderr(), false)
	if err != nil {
		return nil, err
	}
	return app.Open(app.Options{Dir: env.Dir, Logger: env.Logger})
}

// ensureExclusive refuses to write records the running desktop app would
// overwrite with its own copy on its next change.
func (options *rootOptions) ensureExclusive() error {
	if options.instanceRunning != nil && options.instanceRunning() {
		return ErrDesktopRunning
	}
	return nil
}
