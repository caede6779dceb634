package model

import "time"

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	TaskActive    TaskStatus = "active"
	TaskCompleted TaskStatus = "completed"
)

// Task is a unit of work estimated in pomodoros.
type Task struct {
	ID                 string
	Title              string
	EstimatedPomodoros int
	CompletedPomodoros int
	Status             TaskStatus
	CreatedAt          time.Time
}
