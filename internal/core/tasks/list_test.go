package tasks

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomoflow/internal/core/model"
)

type memorySaver struct {
	saved [][]model.Task
	err   error
}

func (saver *memorySaver) SaveTasks(tasks []model.Task) error {
	saver.saved = append(saver.saved, tasks)
	return saver.err
}

func TestDraftValidate(t *testing.T) {
	assert.NoError(t, Draft{Title: "Write report", EstimatedPomodoros: 3}.Validate())
	assert.ErrorIs(t, Draft{Title: "   ", EstimatedPomodoros: 3}.Validate(), ErrEmptyTitle)
	assert.ErrorIs(t, Draft{Title: "x", EstimatedPomodoros: 0}.Validate(), ErrEstimateRange)
	assert.ErrorIs(t, Draft{Title: "x", EstimatedPomodoros: 21}.Validate(), ErrEstimateRange)
}

func TestCreateAndPersist(t *testing.T) {
	saver := &memorySaver{}
	list := NewList(nil, saver, nil)

	task, err := list.Create(Draft{Title: "  Review PR  ", EstimatedPomodoros: 2})

	require.NoError(t, err)
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "Review PR", task.Title)
	assert.Equal(t, model.TaskActive, task.Status)
	assert.Zero(t, task.CompletedPomodoros)
	require.Len(t, saver.saved, 1)
	assert.Equal(t, []model.Task{task}, saver.saved[0])
}

func TestCreateRejectsInvalidDraft(t *testing.T) {
	saver := &memorySaver{}
	list := NewList(nil, saver, nil)

	_, err := list.Create(Draft{Title: "", EstimatedPomodoros: 2})

	assert.ErrorIs(t, err, ErrEmptyTitle)
	assert.Empty(t, list.All())
	assert.Empty(t, saver.saved)
}

func TestUpdateTask(t *testing.T) {
	list := NewList(nil, nil, nil)
	task, err := list.Create(Draft{Title: "a", EstimatedPomodoros: 4})
	require.NoError(t, err)

	updated, err := list.Update(task.ID, Draft{Title: "b", EstimatedPomodoros: 6})

	require.NoError(t, err)
	assert.Equal(t, "b", updated.Title)
	assert.Equal(t, 6, updated.EstimatedPomodoros)

	_, err = list.Update("missing", Draft{Title: "b", EstimatedPomodoros: 6})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteClearsSelection(t *testing.T) {
	list := NewList(nil, nil, nil)
	task, err := list.Create(Draft{Title: "a", EstimatedPomodoros: 1})
	require.NoError(t, err)
	require.NoError(t, list.Select(task.ID))

	require.NoError(t, list.Delete(task.ID))

	_, ok := list.SelectedTaskID()
	assert.False(t, ok)
	assert.Empty(t, list.All())
	assert.ErrorIs(t, list.Delete(task.ID), ErrNotFound)
}

func TestToggleStatus(t *testing.T) {
	list := NewList(nil, nil, nil)
	task, err := list.Create(Draft{Title: "a", EstimatedPomodoros: 1})
	require.NoError(t, err)

	toggled, err := list.ToggleStatus(task.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TaskCompleted, toggled.Status)

	toggled, err = list.ToggleStatus(task.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TaskActive, toggled.Status)
}

func TestIncrementCompletedStopsAtEstimate(t *testing.T) {
	list := NewList(nil, nil, nil)
	task, err := list.Create(Draft{Title: "a", EstimatedPomodoros: 2})
	require.NoError(t, err)

	first, err := list.IncrementCompleted(task.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, first.CompletedPomodoros)
	assert.Equal(t, model.TaskActive, first.Status)

	second, err := list.IncrementCompleted(task.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, second.CompletedPomodoros)
	assert.Equal(t, model.TaskCompleted, second.Status)

	third, err := list.IncrementCompleted(task.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, third.CompletedPomodoros)
}

func TestSelectUnknownTask(t *testing.T) {
	list := NewList(nil, nil, nil)

	assert.ErrorIs(t, list.Select("nope"), ErrNotFound)
	assert.NoError(t, list.Select(""))
}

func TestNewListRepairsLoadedTasks(t *testing.T) {
	list := NewList([]model.Task{
		{ID: "", Title: "orphan"},
		{ID: "1", Title: "over", EstimatedPomodoros: 2, CompletedPomodoros: 5, Status: "weird"},
		{ID: "2", Title: "zero", EstimatedPomodoros: 0, CompletedPomodoros: -1, Status: model.TaskCompleted},
	}, nil, nil)

	all := list.All()
	require.Len(t, all, 2)
	assert.Equal(t, 2, all[0].CompletedPomodoros)
	assert.Equal(t, model.TaskActive, all[0].Status)
	assert.Equal(t, 1, all[1].EstimatedPomodoros)
	assert.Zero(t, all[1].CompletedPomodoros)
	assert.Equal(t, model.TaskCompleted, all[1].Status)
}

func TestPersistFailureKeepsState(t *testing.T) {
	list := NewList(nil, &memorySaver{err: errors.New("read-only")}, nil)

	task, err := list.Create(Draft{Title: "a", EstimatedPomodoros: 1})

	require.NoError(t, err)
	assert.Equal(t, []model.Task{task}, list.All())
}
