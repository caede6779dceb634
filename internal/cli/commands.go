package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"pomoflow/internal/app"
	"pomoflow/internal/core/model"
	"pomoflow/internal/core/settings"
	"pomoflow/internal/core/timer"
	"pomoflow/internal/notify/sound"
	"pomoflow/internal/platform"
	"pomoflow/internal/ui/terminal"
)

func newTUICommand(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the timer in the terminal",
		Long:  `Runs the timer, statistics and task credit in the terminal. Refuses to start while the desktop app is open; both would write the same records.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := options.ensureExclusive(); err != nil {
				return err
			}
			env, err := options.env(cmd.ErrOrStderr(), true)
			if err != nil {
				return err
			}

			var session *app.Session
			player := sound.New(func() bool { return session.Settings.Preferences().SoundEnabled }, 0, env.Logger)
			session, err = app.Open(app.Options{
				Dir:    env.Dir,
				Sink:   player,
				Idle:   platform.NewIdleProvider(),
				Logger: env.Logger,
			})
			if err != nil {
				return err
			}
			defer session.Close()

			return terminal.Run(session.Timer, session.Timer.Subscribe(16), terminal.Sources{
				Score:        session.Flow.FlowScore,
				SelectedTask: session.Tasks.Selected,
			})
		},
	}
}

func newStatsCommand(options *rootOptions) *cobra.Command {
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show focus statistics and the flow score",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := options.openSession(cmd)
			if err != nil {
				return err
			}
			defer session.Close()

			stats := session.Flow.Stats()
			score := session.Flow.FlowScore()
			out := cmd.OutOrStdout()
			writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintf(writer, "Completed sessions\t%d\n", stats.CompletedSessions)
			fmt.Fprintf(writer, "Interruptions\t%d\n", stats.Interruptions)
			fmt.Fprintf(writer, "Focus time\t%.1f min\n", stats.TotalFocusTime)
			fmt.Fprintf(writer, "Estimated time\t%.1f min\n", stats.EstimatedTime)
			fmt.Fprintf(writer, "Session completion\t%.0f%%\n", score.SessionCompletion)
			fmt.Fprintf(writer, "Break adherence\t%.0f%%\n", score.BreakAdherence)
			fmt.Fprintf(writer, "Task accuracy\t%.0f%%\n", score.TaskAccuracy)
			fmt.Fprintf(writer, "Flow score\t%d\n", score.OverallScore)
			if err := writer.Flush(); err != nil {
				return err
			}

			today, err := session.Summary(cmd.Context(), startOfDay(time.Now()))
			if err != nil {
				fmt.Fprintf(out, "\nToday: unavailable (%v)\n", err)
				return nil
			}
			fmt.Fprintf(out, "\nToday: %d completed, %d interrupted, %d skipped, %.1f min focused\n",
				today.Completed, today.Interrupted, today.Skipped, today.FocusMinutes)
			return nil
		},
	}

	statsCmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Zero every focus statistic",
		Long:  `Zeroes completed sessions, interruptions, focus time and estimated time. Refuses to run while the desktop app is open, since it would write its own statistics back.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := options.ensureExclusive(); err != nil {
				return err
			}
			session, err := options.openSession(cmd)
			if err != nil {
				return err
			}
			defer session.Close()

			session.Flow.ResetStats()
			fmt.Fprintln(cmd.OutOrStdout(), "Statistics reset")
			return nil
		},
	})

	return statsCmd
}

func newHistoryCommand(options *rootOptions) *cobra.Command {
	var limit int
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List recent completed, interrupted and skipped sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := options.openSession(cmd)
			if err != nil {
				return err
			}
			defer session.Close()

			entries, err := session.History(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("read history: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No sessions recorded yet")
				return nil
			}
			writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "WHEN\tEVENT\tMODE\tSESSION\tMINUTES\tTASK")
			for _, entry := range entries {
				fmt.Fprintf(writer, "%s\t%s\t%s\t%d\t%.1f\t%s\n",
					entry.At.Local().Format("2006-01-02 15:04"), entry.Kind, timer.ModeLabel(entry.Mode),
					entry.Session, entry.Minutes, taskTitle(session, entry.TaskID))
			}
			return writer.Flush()
		},
	}
	historyCmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of entries")
	return historyCmd
}

func newSettingsCommand(options *rootOptions) *cobra.Command {
	flagFields := map[string]settings.Field{
		"work":       settings.FieldWorkDuration,
		"break":      settings.FieldBreakDuration,
		"long-break": settings.FieldLongBreakDuration,
		"sessions":   settings.FieldSessionsBeforeLongBreak,
	}
	values := map[string]*string{}

	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change timer settings",
		Long: `Without flags, prints the current settings. Out-of-range or non-numeric values are coerced the same way the settings form does.
Changing settings is refused while the desktop app is open, since it would write its own settings back.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := settings.Patch{}
			for name, field := range flagFields {
				if cmd.Flags().Changed(name) {
					patch[field] = *values[name]
				}
			}
			if len(patch) > 0 {
				if err := options.ensureExclusive(); err != nil {
					return err
				}
			}

			session, err := options.openSession(cmd)
			if err != nil {
				return err
			}
			defer session.Close()

			current := session.Settings.Read()
			if len(patch) > 0 {
				current = session.Settings.Update(patch)
			}
			printSettings(cmd.OutOrStdout(), current)
			return nil
		},
	}

	usage := map[string]string{
		"work":       "Work session length in minutes (1-60)",
		"break":      "Break length in minutes (1-30)",
		"long-break": "Long break length in minutes (1-60)",
		"sessions":   "Work sessions before a long break (1-10)",
	}
	for _, name := range []string{"work", "break", "long-break", "sessions"} {
		values[name] = settingsCmd.Flags().String(name, "", usage[name])
	}
	return settingsCmd
}

func printSettings(out io.Writer, current model.TimerSettings) {
	fmt.Fprintf(out, "Work:                    %d min\n", current.WorkDuration)
	fmt.Fprintf(out, "Break:                   %d min\n", current.BreakDuration)
	fmt.Fprintf(out, "Long break:              %d min\n", current.LongBreakDuration)
	fmt.Fprintf(out, "Sessions per long break: %d\n", current.SessionsBeforeLongBreak)
}

func taskTitle(session *app.Session, id string) string {
	if id == "" {
		return "-"
	}
	task, err := session.Tasks.Get(id)
	if err != nil {
		return id
	}
	return task.Title
}

func startOfDay(now time.Time) time.Time {
	year, month, day := now.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, now.Location())
}
