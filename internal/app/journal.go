package app

import (
	"context"
	"log/slog"
	"time"

	"pomoflow/internal/core/model"
	"pomoflow/internal/core/timer"
	"pomoflow/internal/storage"
)

const journalWriteTimeout = 5 * time.Second

type entryAppender interface {
	Append(ctx context.Context, entry storage.Entry) (int64, error)
}

type selectedTask interface {
	SelectedTaskID() (string, bool)
}

// journalRecorder copies completion, interruption and skip events into the
// journal until the event channel closes.
type journalRecorder struct {
	done chan struct{}
}

func startJournalRecorder(events <-chan timer.Event, journal entryAppender, selection selectedTask, logger *slog.Logger) *journalRecorder {
	recorder := &journalRecorder{done: make(chan struct{})}
	go func() {
		defer close(recorder.done)
		for event := range events {
			entry, ok := journalEntry(event, selection)
			if !ok {
				continue
			}
			ctx, cancel := context.WithTimeout(context.Background(), journalWriteTimeout)
			if _, err := journal.Append(ctx, entry); err != nil {
				logger.Warn("journal session event", "kind", entry.Kind, "error", err)
			}
			cancel()
		}
	}()
	return recorder
}

func (recorder *journalRecorder) wait() {
	<-recorder.done
}

func journalEntry(event timer.Event, selection selectedTask) (storage.Entry, bool) {
	entry := storage.Entry{
		Mode:    event.Mode,
		Session: event.Session,
		Minutes: event.Minutes,
		At:      event.At,
	}
	switch event.Type {
	case timer.EventCompleted:
		entry.Kind = storage.EntryCompleted
	case timer.EventInterrupted:
		entry.Kind = storage.EntryInterrupted
	case timer.EventSkipped:
		entry.Kind = storage.EntrySkipped
	default:
		return storage.Entry{}, false
	}
	if event.Mode == model.ModeWork && selection != nil {
		if id, ok := selection.SelectedTaskID(); ok {
			entry.TaskID = id
		}
	}
	return entry, true
}
