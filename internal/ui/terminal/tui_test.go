package terminal

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomoflow/internal/core/model"
	"pomoflow/internal/core/timer"
)

type fakeController struct {
	state   timer.State
	toggles int
	resets  int
	skips   int
}

func (fake *fakeController) State() timer.State            { return fake.state }
func (fake *fakeController) Settings() model.TimerSettings { return model.DefaultTimerSettings() }
func (fake *fakeController) Toggle() {
	fake.toggles++
	fake.state.IsActive = !fake.state.IsActive
}
func (fake *fakeController) Reset() { fake.resets++ }
func (fake *fakeController) Skip()  { fake.skips++ }

func newTestModel() (*fakeController, tuiModel, chan timer.Event) {
	controller := &fakeController{state: timer.InitialState(model.DefaultTimerSettings())}
	events := make(chan timer.Event, 1)
	return controller, newModel(controller, events, Sources{}), events
}

func runes(key string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func TestKeysDriveTimer(t *testing.T) {
	controller, m, _ := newTestModel()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = updated.(tuiModel)
	assert.Equal(t, 1, controller.toggles)
	assert.True(t, m.state.IsActive)

	updated, _ = m.Update(runes("r"))
	m = updated.(tuiModel)
	updated, _ = m.Update(runes("s"))
	m = updated.(tuiModel)
	assert.Equal(t, 1, controller.resets)
	assert.Equal(t, 1, controller.skips)
}

func TestQuitKey(t *testing.T) {
	_, m, _ := newTestModel()

	updated, cmd := m.Update(runes("q"))

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, updated.View())
}

func TestCompletedEventShowsMessage(t *testing.T) {
	_, m, events := newTestModel()
	next := timer.State{Mode: model.ModeBreak, TimeRemaining: 300, CurrentSession: 1}

	updated, cmd := m.Update(eventMsg(timer.Event{
		Type:    timer.EventCompleted,
		State:   next,
		Message: "Work session completed! Starting break session...",
	}))
	m = updated.(tuiModel)

	assert.Equal(t, next, m.state)
	view := m.View()
	assert.Contains(t, view, "Break")
	assert.Contains(t, view, "05:00")
	assert.Contains(t, view, "Work session completed! Starting break session...")

	require.NotNil(t, cmd)
	events <- timer.Event{Type: timer.EventTick, State: next}
	assert.Equal(t, eventMsg(timer.Event{Type: timer.EventTick, State: next}), cmd())
}

func TestClosedEventsQuit(t *testing.T) {
	_, m, events := newTestModel()
	close(events)

	msg := m.Init()()
	assert.Equal(t, eventsClosedMsg{}, msg)

	_, cmd := m.Update(msg)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestViewShowsSources(t *testing.T) {
	controller := &fakeController{state: timer.InitialState(model.DefaultTimerSettings())}
	m := newModel(controller, nil, Sources{
		Score: func() model.FlowScore { return model.FlowScore{SessionCompletion: 40, BreakAdherence: 90, TaskAccuracy: 50, OverallScore: 60} },
		SelectedTask: func() (model.Task, bool) {
			return model.Task{Title: "Write docs", EstimatedPomodoros: 2, CompletedPomodoros: 1}, true
		},
	})

	view := m.View()

	assert.Contains(t, view, "25:00")
	assert.Contains(t, view, "Task: Write docs (1/2)")
	assert.Contains(t, view, "Flow 60")
}

func TestElapsed(t *testing.T) {
	settings := model.DefaultTimerSettings()
	assert.Equal(t, 0.0, elapsed(timer.State{Mode: model.ModeWork, TimeRemaining: 1500}, settings))
	assert.Equal(t, 0.5, elapsed(timer.State{Mode: model.ModeWork, TimeRemaining: 750}, settings))
}
