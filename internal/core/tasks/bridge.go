package tasks

import (
	"log/slog"

	"pomoflow/internal/core/model"
)

// Selection reports the task the user is working on.
type Selection interface {
	SelectedTaskID() (string, bool)
}

// Incrementer advances a task by one finished pomodoro.
type Incrementer interface {
	IncrementCompleted(id string) (model.Task, error)
}

// Bridge credits finished work sessions to the selected task.
type Bridge struct {
	selection Selection
	tasks     Incrementer
	logger    *slog.Logger
}

// NewBridge creates a Bridge. A List satisfies both arguments.
func NewBridge(selection Selection, tasks Incrementer, logger *slog.Logger) *Bridge {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bridge{selection: selection, tasks: tasks, logger: logger}
}

// WorkCompleted increments the selected task, if any.
func (bridge *Bridge) WorkCompleted() {
	id, ok := bridge.selection.SelectedTaskID()
	if !ok {
		return
	}
	task, err := bridge.tasks.IncrementCompleted(id)
	if err != nil {
		bridge.logger.Warn("credit pomodoro to task", "task", id, "error", err)
		return
	}
	bridge.logger.Debug("credited pomodoro", "task", id,
		"completed", task.CompletedPomodoros, "estimated", task.EstimatedPomodoros)
}
