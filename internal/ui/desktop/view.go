// Package desktop is pomoflow's main fyne window: the countdown, the flow
// score and the task list.
package desktop

import (
	"fmt"
	"strconv"

	"pomoflow/internal/core/model"
	"pomoflow/internal/core/tasks"
	"pomoflow/internal/core/timer"
)

// Elapsed is the finished fraction of the current countdown, in [0, 1].
func Elapsed(state timer.State, settings model.TimerSettings) float64 {
	total := settings.DurationSeconds(state.Mode)
	if total <= 0 {
		return 0
	}
	fraction := 1 - float64(state.TimeRemaining)/float64(total)
	switch {
	case fraction < 0:
		return 0
	case fraction > 1:
		return 1
	}
	return fraction
}

// SessionLine describes where the user is in the long-break cycle.
func SessionLine(state timer.State, settings model.TimerSettings) string {
	position := (state.CurrentSession-1)%settings.SessionsBeforeLongBreak + 1
	if position < 1 {
		position = 1
	}
	return fmt.Sprintf("Session %d (%d of %d before long break)", state.CurrentSession, position, settings.SessionsBeforeLongBreak)
}

// TaskLine renders a task row.
func TaskLine(task model.Task) string {
	marker := "[ ]"
	if task.Status == model.TaskCompleted {
		marker = "[x]"
	}
	return fmt.Sprintf("%s %s  %d/%d", marker, task.Title, task.CompletedPomodoros, task.EstimatedPomodoros)
}

// TaskDraft builds a draft from form text. An unparsable estimate becomes 0 so
// validation rejects it.
func TaskDraft(title, estimate string) tasks.Draft {
	count, err := strconv.Atoi(estimate)
	if err != nil {
		count = 0
	}
	return tasks.Draft{Title: title, EstimatedPomodoros: count}
}

// ScoreLine renders the overall flow score.
func ScoreLine(score model.FlowScore) string {
	return fmt.Sprintf("Flow score: %d", score.OverallScore)
}

// EstimateOptions lists the allowed pomodoro estimates for a task.
func EstimateOptions() []string {
	options := make([]string, 0, tasks.MaxEstimate-tasks.MinEstimate+1)
	for estimate := tasks.MinEstimate; estimate <= tasks.MaxEstimate; estimate++ {
		options = append(options, strconv.Itoa(estimate))
	}
	return options
}
