package storage

import (
	"time"

	"pomoflow/internal/core/model"
)

type yamlTask struct {
	ID                 string    `yaml:"id"`
	Title              string    `yaml:"title"`
	EstimatedPomodoros int       `yaml:"estimated_pomodoros"`
	CompletedPomodoros int       `yaml:"completed_pomodoros"`
	Status             string    `yaml:"status"`
	CreatedAt          time.Time `yaml:"created_at"`
}

type yamlTasks struct {
	Tasks []yamlTask `yaml:"tasks"`
}

// LoadTasks reads the task list. Malformed data yields an empty list and the
// parse error.
func (store *FileStore) LoadTasks() ([]model.Task, error) {
	var fileData yamlTasks
	if _, err := store.readRecord(tasksFileName, &fileData); err != nil {
		return nil, err
	}

	tasks := make([]model.Task, 0, len(fileData.Tasks))
	for _, entry := range fileData.Tasks {
		tasks = append(tasks, model.Task{
			ID:                 entry.ID,
			Title:              entry.Title,
			EstimatedPomodoros: entry.EstimatedPomodoros,
			CompletedPomodoros: entry.CompletedPomodoros,
			Status:             model.TaskStatus(entry.Status),
			CreatedAt:          entry.CreatedAt,
		})
	}
	return tasks, nil
}

// SaveTasks rewrites the task list record.
func (store *FileStore) SaveTasks(tasks []model.Task) error {
	fileData := yamlTasks{Tasks: make([]yamlTask, 0, len(tasks))}
	for _, task := range tasks {
		fileData.Tasks = append(fileData.Tasks, yamlTask{
			ID:                 task.ID,
			Title:              task.Title,
			EstimatedPomodoros: task.EstimatedPomodoros,
			CompletedPomodoros: task.CompletedPomodoros,
			Status:             string(task.Status),
			CreatedAt:          task.CreatedAt,
		})
	}
	return store.writeRecord(tasksFileName, fileData)
}
