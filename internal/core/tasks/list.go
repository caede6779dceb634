// Package tasks keeps the user's task list and links finished work sessions
// to the selected task.
package tasks

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"pomoflow/internal/core/model"
)

const (
	MinEstimate = 1
	MaxEstimate = 20
)

var (
	ErrEmptyTitle    = errors.New("title is required")
	ErrEstimateRange = fmt.Errorf("estimated pomodoros must be between %d and %d", MinEstimate, MaxEstimate)
	ErrNotFound      = errors.New("task not found")
)

// Draft is the user-editable part of a task.
type Draft struct {
	Title              string
	EstimatedPomodoros int
}

// Validate checks a draft the way the task form does.
func (draft Draft) Validate() error {
	if strings.TrimSpace(draft.Title) == "" {
		return ErrEmptyTitle
	}
	if draft.EstimatedPomodoros < MinEstimate || draft.EstimatedPomodoros > MaxEstimate {
		return ErrEstimateRange
	}
	return nil
}

// Saver persists the whole task list.
type Saver interface {
	SaveTasks([]model.Task) error
}

// List is an ordered, persisted task list with an optional selection.
type List struct {
	mu         sync.Mutex
	tasks      []model.Task
	selectedID string
	saver      Saver
	logger     *slog.Logger
	now        func() time.Time
}

// NewList creates a list from loaded tasks. Entries without an ID are
// dropped; counters are repaired so they stay within the estimate.
func NewList(loaded []model.Task, saver Saver, logger *slog.Logger) *List {
	if logger == nil {
		logger = slog.Default()
	}
	tasks := make([]model.Task, 0, len(loaded))
	for _, task := range loaded {
		if task.ID == "" {
			continue
		}
		tasks = append(tasks, repair(task))
	}
	return &List{
		tasks:  tasks,
		saver:  saver,
		logger: logger,
		now:    time.Now,
	}
}

// All returns a copy of the tasks in creation order.
func (list *List) All() []model.Task {
	list.mu.Lock()
	defer list.mu.Unlock()
	return append([]model.Task(nil), list.tasks...)
}

// Get returns one task.
func (list *List) Get(id string) (model.Task, error) {
	list.mu.Lock()
	defer list.mu.Unlock()
	index := list.indexLocked(id)
	if index < 0 {
		return model.Task{}, fmt.Errorf("get task %s: %w", id, ErrNotFound)
	}
	return list.tasks[index], nil
}

// Create validates draft and appends a new active task.
func (list *List) Create(draft Draft) (model.Task, error) {
	if err := draft.Validate(); err != nil {
		return model.Task{}, err
	}
	task := model.Task{
		ID:                 uuid.NewString(),
		Title:              strings.TrimSpace(draft.Title),
		EstimatedPomodoros: draft.EstimatedPomodoros,
		Status:             model.TaskActive,
		CreatedAt:          list.now().UTC(),
	}

	list.mu.Lock()
	list.tasks = append(list.tasks, task)
	snapshot := list.snapshotLocked()
	list.mu.Unlock()

	list.persist(snapshot)
	return task, nil
}

// Update replaces title and estimate of an existing task.
func (list *List) Update(id string, draft Draft) (model.Task, error) {
	if err := draft.Validate(); err != nil {
		return model.Task{}, err
	}

	list.mu.Lock()
	index := list.indexLocked(id)
	if index < 0 {
		list.mu.Unlock()
		return model.Task{}, fmt.Errorf("update task %s: %w", id, ErrNotFound)
	}
	task := &list.tasks[index]
	task.Title = strings.TrimSpace(draft.Title)
	task.EstimatedPomodoros = draft.EstimatedPomodoros
	*task = repair(*task)
	updated := *task
	snapshot := list.snapshotLocked()
	list.mu.Unlock()

	list.persist(snapshot)
	return updated, nil
}

// Delete removes a task and clears the selection if it pointed at it.
func (list *List) Delete(id string) error {
	list.mu.Lock()
	index := list.indexLocked(id)
	if index < 0 {
		list.mu.Unlock()
		return fmt.Errorf("delete task %s: %w", id, ErrNotFound)
	}
	list.tasks = append(list.tasks[:index], list.tasks[index+1:]...)
	if list.selectedID == id {
		list.selectedID = ""
	}
	snapshot := list.snapshotLocked()
	list.mu.Unlock()

	list.persist(snapshot)
	return nil
}

// ToggleStatus flips a task between active and completed.
func (list *List) ToggleStatus(id string) (model.Task, error) {
	list.mu.Lock()
	index := list.indexLocked(id)
	if index < 0 {
		list.mu.Unlock()
		return model.Task{}, fmt.Errorf("toggle task %s: %w", id, ErrNotFound)
	}
	task := &list.tasks[index]
	if task.Status == model.TaskActive {
		task.Status = model.TaskCompleted
	} else {
		task.Status = model.TaskActive
	}
	updated := *task
	snapshot := list.snapshotLocked()
	list.mu.Unlock()

	list.persist(snapshot)
	return updated, nil
}

// IncrementCompleted adds one finished pomodoro to a task. It stops counting
// at the estimate; reaching it marks the task completed.
func (list *List) IncrementCompleted(id string) (model.Task, error) {
	list.mu.Lock()
	index := list.indexLocked(id)
	if index < 0 {
		list.mu.Unlock()
		return model.Task{}, fmt.Errorf("increment task %s: %w", id, ErrNotFound)
	}
	task := &list.tasks[index]
	if task.CompletedPomodoros >= task.EstimatedPomodoros {
		unchanged := *task
		list.mu.Unlock()
		return unchanged, nil
	}
	task.CompletedPomodoros++
	if task.CompletedPomodoros == task.EstimatedPomodoros {
		task.Status = model.TaskCompleted
	}
	updated := *task
	snapshot := list.snapshotLocked()
	list.mu.Unlock()

	list.persist(snapshot)
	return updated, nil
}

// Select marks id as the current task. An empty id clears the selection.
func (list *List) Select(id string) error {
	list.mu.Lock()
	defer list.mu.Unlock()
	if id != "" && list.indexLocked(id) < 0 {
		return fmt.Errorf("select task %s: %w", id, ErrNotFound)
	}
	list.selectedID = id
	return nil
}

// SelectedTaskID returns the current selection.
func (list *List) SelectedTaskID() (string, bool) {
	list.mu.Lock()
	defer list.mu.Unlock()
	return list.selectedID, list.selectedID != ""
}

// Selected returns the selected task.
func (list *List) Selected() (model.Task, bool) {
	list.mu.Lock()
	defer list.mu.Unlock()
	index := list.indexLocked(list.selectedID)
	if index < 0 {
		return model.Task{}, false
	}
	return list.tasks[index], true
}

func (list *List) indexLocked(id string) int {
	if id == "" {
		return -1
	}
	for index, task := range list.tasks {
		if task.ID == id {
			return index
		}
	}
	return -1
}

func (list *List) snapshotLocked() []model.Task {
	return append([]model.Task(nil), list.tasks...)
}

func (list *List) persist(snapshot []model.Task) {
	if list.saver == nil {
		return
	}
	if err := list.saver.SaveTasks(snapshot); err != nil {
		list.logger.Warn("persist tasks", "error", err)
	}
}

func repair(task model.Task) model.Task {
	if task.EstimatedPomodoros < MinEstimate {
		task.EstimatedPomodoros = MinEstimate
	}
	if task.CompletedPomodoros < 0 {
		task.CompletedPomodoros = 0
	}
	if task.CompletedPomodoros > task.EstimatedPomodoros {
		task.CompletedPomodoros = task.EstimatedPomodoros
	}
	if task.Status != model.TaskCompleted {
		task.Status = model.TaskActive
	}
	return task
}
