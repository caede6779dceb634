package timer

import (
	"time"

	"pomoflow/internal/core/model"
)

// EventType defines the type of Timer event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventTick        EventType = "tick"
	EventCompleted   EventType = "completed"
	EventInterrupted EventType = "interrupted"
	EventSkipped     EventType = "skipped"
	EventIdlePause   EventType = "idle_pause"
	EventIdleError   EventType = "idle_error"
)

// Event represents a Timer update for observers.
type Event struct {
	Type EventType
	// State is the timer state after the transition that produced the event.
	State State
	// Mode and Session describe the countdown the event is about, which for
	// completions and interruptions is the one just left.
	Mode    model.Mode
	Session int
	Minutes float64
	Message string
	At      time.Time
}
