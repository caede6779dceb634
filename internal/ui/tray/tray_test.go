package tray

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pomoflow/internal/core/model"
	"pomoflow/internal/core/timer"
)

func TestStatusLine(t *testing.T) {
	running := timer.State{Mode: model.ModeWork, TimeRemaining: 1499, IsActive: true, CurrentSession: 2}
	stopped := timer.State{Mode: model.ModeLongBreak, TimeRemaining: 900, CurrentSession: 4}

	assert.Equal(t, "Work #2  24:59", StatusLine(running))
	assert.Equal(t, "Long Break #4  15:00 (paused)", StatusLine(stopped))
}

func TestToggleLabel(t *testing.T) {
	assert.Equal(t, "Pause", ToggleLabel(timer.State{IsActive: true}))
	assert.Equal(t, "Start", ToggleLabel(timer.State{}))
}

func TestManagerWithoutTray(t *testing.T) {
	called := false
	manager := New(nil, Callbacks{OnToggle: func() { called = true }}, timer.State{Mode: model.ModeWork, TimeRemaining: 60, CurrentSession: 1})

	assert.Equal(t, "Start", manager.toggleItem.Label)
	manager.toggleItem.Action()
	assert.True(t, called)
	assert.NotPanics(t, manager.skipItem.Action)

	manager.Update(timer.State{Mode: model.ModeWork, TimeRemaining: 59, IsActive: true, CurrentSession: 1})
	assert.Equal(t, "Pause", manager.toggleItem.Label)
	assert.Equal(t, "Work #1  00:59", manager.statusItem.Label)
}
