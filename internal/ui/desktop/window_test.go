package desktop

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomoflow/internal/app"
	"pomoflow/internal/core/tasks"
	"pomoflow/internal/core/timer"
)

type stillScheduler struct{}

func (stillScheduler) Every(time.Duration, func()) func() { return func() {} }

func newTestWindow(t *testing.T) (*Window, *app.Session) {
	t.Helper()
	fyneApp := test.NewApp()
	t.Cleanup(fyneApp.Quit)

	session, err := app.Open(app.Options{
		Dir:   t.TempDir(),
		Timer: timer.Config{Scheduler: stillScheduler{}},
	})
	require.NoError(t, err)
	t.Cleanup(func() { session.Close() })

	return New(fyneApp, session, func() {}, nil), session
}

func TestSaveTaskEditsSelectedTask(t *testing.T) {
	view, session := newTestWindow(t)
	task, err := session.CreateTask(tasks.Draft{Title: "Write docs", EstimatedPomodoros: 2})
	require.NoError(t, err)
	view.renderTasks()
	view.selectTask(0)
	estimated := session.Flow.Stats().EstimatedTime

	require.True(t, view.saveTask(task.ID, "  Write user guide ", "4"))

	edited, err := session.Tasks.Get(task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Write user guide", edited.Title)
	assert.Equal(t, 4, edited.EstimatedPomodoros)
	require.Len(t, view.taskRows, 1)
	assert.Equal(t, "[ ] Write user guide  0/4", TaskLine(view.taskRows[0]))
	assert.Equal(t, estimated, session.Flow.Stats().EstimatedTime)

	selected, ok := session.Tasks.Selected()
	require.True(t, ok)
	assert.Equal(t, task.ID, selected.ID)
}

func TestSaveTaskRejectsInvalidEdit(t *testing.T) {
	view, session := newTestWindow(t)
	task, err := session.CreateTask(tasks.Draft{Title: "Write docs", EstimatedPomodoros: 2})
	require.NoError(t, err)
	view.renderTasks()

	assert.False(t, view.saveTask(task.ID, "   ", "3"))
	assert.False(t, view.saveTask(task.ID, "Write docs", "25"))

	unchanged, err := session.Tasks.Get(task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Write docs", unchanged.Title)
	assert.Equal(t, 2, unchanged.EstimatedPomodoros)
}

func TestEditWithoutSelectionDoesNothing(t *testing.T) {
	view, session := newTestWindow(t)
	_, err := session.CreateTask(tasks.Draft{Title: "Write docs", EstimatedPomodoros: 2})
	require.NoError(t, err)
	view.renderTasks()

	view.editSelectedTask()

	assert.Len(t, view.window.Canvas().Overlays().List(), 0)
}
