package desktop

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pomoflow/internal/core/model"
	"pomoflow/internal/core/tasks"
	"pomoflow/internal/core/timer"
)

func TestElapsed(t *testing.T) {
	settings := model.DefaultTimerSettings()

	assert.Equal(t, 0.0, Elapsed(timer.State{Mode: model.ModeWork, TimeRemaining: 1500}, settings))
	assert.Equal(t, 0.5, Elapsed(timer.State{Mode: model.ModeBreak, TimeRemaining: 150}, settings))
	assert.Equal(t, 0.0, Elapsed(timer.State{Mode: model.ModeWork, TimeRemaining: 3000}, settings))
	assert.Equal(t, 1.0, Elapsed(timer.State{Mode: model.ModeWork, TimeRemaining: -5}, settings))
}

func TestSessionLine(t *testing.T) {
	settings := model.DefaultTimerSettings()

	assert.Equal(t, "Session 1 (1 of 4 before long break)", SessionLine(timer.State{CurrentSession: 1}, settings))
	assert.Equal(t, "Session 6 (2 of 4 before long break)", SessionLine(timer.State{CurrentSession: 6}, settings))
}

func TestTaskLine(t *testing.T) {
	task := model.Task{Title: "Review PR", EstimatedPomodoros: 3, CompletedPomodoros: 1, Status: model.TaskActive}
	assert.Equal(t, "[ ] Review PR  1/3", TaskLine(task))

	task.Status = model.TaskCompleted
	assert.Equal(t, "[x] Review PR  1/3", TaskLine(task))
}

func TestEstimateOptions(t *testing.T) {
	options := EstimateOptions()

	assert.Len(t, options, 20)
	assert.Equal(t, "1", options[0])
	assert.Equal(t, "20", options[19])
}

func TestTaskDraft(t *testing.T) {
	assert.Equal(t, tasks.Draft{Title: "Plan sprint", EstimatedPomodoros: 3}, TaskDraft("Plan sprint", "3"))
	assert.Equal(t, tasks.Draft{Title: "Plan sprint"}, TaskDraft("Plan sprint", ""))
}
