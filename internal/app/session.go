// Package app wires pomoflow's components together: records on disk, the
// settings store, flow statistics, tasks, the timer and the session journal.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"pomoflow/internal/core/focusflow"
	"pomoflow/internal/core/model"
	"pomoflow/internal/core/settings"
	"pomoflow/internal/core/tasks"
	"pomoflow/internal/core/timer"
	"pomoflow/internal/notify"
	"pomoflow/internal/storage"
)

// ErrNoJournal is returned by history queries when the journal could not be
// opened.
var ErrNoJournal = errors.New("session journal unavailable")

// Options configures Open. Only Dir is required.
type Options struct {
	Dir       string
	Sink      notify.Sink
	Idle      timer.IdleChecker
	Autostart func(enabled bool) error
	Timer     timer.Config
	Logger    *slog.Logger
}

// Session is one running pomoflow instance.
type Session struct {
	Files    *storage.FileStore
	Settings *settings.Store
	Flow     *focusflow.Aggregator
	Tasks    *tasks.List
	Timer    *timer.Timer

	sink     notify.Sink
	journal  *storage.Journal
	recorder *journalRecorder
	logger   *slog.Logger

	closeOnce sync.Once
}

// Open loads the records under options.Dir and starts a stopped timer. Damaged
// records are logged and replaced by defaults; only a missing Dir is an error.
func Open(options Options) (*Session, error) {
	if options.Dir == "" {
		return nil, fmt.Errorf("open session: record directory is empty")
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	files := storage.NewFileStore(options.Dir)

	prefs, err := files.LoadSettings()
	if err != nil {
		logger.Warn("settings unreadable, using defaults", "error", err)
	}
	stats, err := files.LoadStats()
	if err != nil {
		logger.Warn("focus statistics unreadable, starting fresh", "error", err)
	}
	loadedTasks, err := files.LoadTasks()
	if err != nil {
		logger.Warn("task list unreadable, starting empty", "error", err)
	}

	session := &Session{
		Files:    files,
		Settings: settings.New(prefs, files, logger),
		Flow:     focusflow.New(stats, files, logger),
		Tasks:    tasks.NewList(loadedTasks, files, logger),
		sink:     notify.Safe(options.Sink, logger),
		logger:   logger,
	}
	prefs = session.Settings.Preferences()

	timerConfig := options.Timer
	if timerConfig.Logger == nil {
		timerConfig.Logger = logger
	}
	session.Timer = timer.New(prefs.Timer, timer.Collaborators{
		Stats:    session.Flow,
		Sink:     session.sink,
		Progress: tasks.NewBridge(session.Tasks, session.Tasks, logger),
	}, timerConfig)
	if options.Idle != nil {
		session.Timer.SetIdleChecker(options.Idle)
	}
	session.Timer.SetIdlePause(prefs.IdlePauseEnabled, minutes(prefs.IdlePauseAfter))

	journal, err := storage.OpenJournal(files.JournalPath())
	if err != nil {
		logger.Warn("session journal disabled", "error", err)
	} else {
		session.journal = journal
		session.recorder = startJournalRecorder(session.Timer.Subscribe(64), journal, session.Tasks, logger)
	}

	session.Settings.OnChange(session.settingsChanged(prefs, options.Autostart))
	return session, nil
}

func (session *Session) settingsChanged(initial model.Preferences, autostart func(bool) error) func(model.Preferences) {
	var mu sync.Mutex
	previous := initial
	return func(next model.Preferences) {
		mu.Lock()
		before := previous
		previous = next
		mu.Unlock()

		if next.Timer != before.Timer {
			session.Timer.UpdateSettings(next.Timer)
		}
		session.Timer.SetIdlePause(next.IdlePauseEnabled, minutes(next.IdlePauseAfter))
		if autostart != nil && next.AutoStart != before.AutoStart {
			if err := autostart(next.AutoStart); err != nil {
				session.logger.Warn("update autostart", "enabled", next.AutoStart, "error", err)
			}
		}
	}
}

// CreateTask adds a task and grows the estimated focus time by its estimate
// at the current work duration.
func (session *Session) CreateTask(draft tasks.Draft) (model.Task, error) {
	task, err := session.Tasks.Create(draft)
	if err != nil {
		return model.Task{}, err
	}
	workMinutes := session.Settings.Read().WorkDuration
	session.Flow.UpdateEstimatedTime(float64(task.EstimatedPomodoros * workMinutes))
	return task, nil
}

// RequestPermission asks the notification sink for consent.
func (session *Session) RequestPermission() error {
	return notify.RequestPermission(session.sink, session.logger)
}

// History returns up to limit journal entries, newest first.
func (session *Session) History(ctx context.Context, limit int) ([]storage.Entry, error) {
	if session.journal == nil {
		return nil, ErrNoJournal
	}
	return session.journal.Recent(ctx, limit)
}

// Summary aggregates journal entries since the given time.
func (session *Session) Summary(ctx context.Context, since time.Time) (storage.Summary, error) {
	if session.journal == nil {
		return storage.Summary{}, ErrNoJournal
	}
	return session.journal.Summary(ctx, since)
}

// Close stops the timer, flushes pending journal writes and closes the
// journal.
func (session *Session) Close() error {
	var err error
	session.closeOnce.Do(func() {
		session.Timer.Close()
		if session.recorder != nil {
			session.recorder.wait()
		}
		if session.journal != nil {
			err = session.journal.Close()
		}
	})
	return err
}

func minutes(value int) time.Duration {
	return time.Duration(value) * time.Minute
}
