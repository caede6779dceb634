package terminal

import (
	tea "github.com/charmbracelet/bubbletea"

	"pomoflow/internal/core/timer"
)

type (
	// eventMsg carries one timer event into the update loop.
	eventMsg timer.Event

	// eventsClosedMsg reports that the timer was closed.
	eventsClosedMsg struct{}
)

// waitForEvent blocks on the next timer event.
func waitForEvent(events <-chan timer.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg(event)
	}
}
