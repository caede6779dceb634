package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomoflow/internal/core/model"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadSettingsMissingFileUsesDefaults(t *testing.T) {
	store := NewFileStore(t.TempDir())

	prefs, err := store.LoadSettings()

	require.NoError(t, err)
	assert.Equal(t, model.DefaultPreferences(), prefs)
}

func TestSettingsRoundTrip(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "nested"))
	prefs := model.DefaultPreferences()
	prefs.Timer.WorkDuration = 50
	prefs.Timer.SessionsBeforeLongBreak = 2
	prefs.IdlePauseEnabled = true
	prefs.SoundEnabled = false

	require.NoError(t, store.SaveSettings(prefs))
	loaded, err := store.LoadSettings()

	require.NoError(t, err)
	assert.Equal(t, prefs, loaded)
}

func TestLoadSettingsCoercesBadFields(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, settingsFileName, `
work_duration: "lots"
break_duration: 99
long_break_duration: -4
sessions_before_long_break: [1, 2]
`)

	prefs, err := NewFileStore(dir).LoadSettings()

	require.NoError(t, err)
	assert.Equal(t, model.TimerSettings{
		WorkDuration:            25,
		BreakDuration:           30,
		LongBreakDuration:       1,
		SessionsBeforeLongBreak: 4,
	}, prefs.Timer)
	assert.True(t, prefs.SoundEnabled)
}

func TestLoadSettingsCorruptFileFallsBack(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, settingsFileName, "work_duration: [unterminated")

	prefs, err := NewFileStore(dir).LoadSettings()

	assert.Error(t, err)
	assert.Equal(t, model.DefaultPreferences(), prefs)
}

func TestStatsRoundTripAndCorruption(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)
	stats := model.FlowStats{CompletedSessions: 3, Interruptions: 2, TotalFocusTime: 74.5, EstimatedTime: 100}

	require.NoError(t, store.SaveStats(stats))
	loaded, err := store.LoadStats()
	require.NoError(t, err)
	assert.Equal(t, stats, loaded)

	writeFile(t, dir, statsFileName, "completed_sessions: many")
	loaded, err = store.LoadStats()
	assert.Error(t, err)
	assert.Equal(t, model.FlowStats{}, loaded)
}

func TestTasksRoundTripAndCorruption(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)
	tasks := []model.Task{{
		ID:                 "a",
		Title:              "Write tests",
		EstimatedPomodoros: 3,
		CompletedPomodoros: 1,
		Status:             model.TaskActive,
		CreatedAt:          time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}}

	require.NoError(t, store.SaveTasks(tasks))
	loaded, err := store.LoadTasks()
	require.NoError(t, err)
	assert.Equal(t, tasks, loaded)

	writeFile(t, dir, tasksFileName, "tasks: {{{")
	loaded, err = store.LoadTasks()
	assert.Error(t, err)
	assert.Empty(t, loaded)
}

func TestLoadMissingRecords(t *testing.T) {
	store := NewFileStore(t.TempDir())

	stats, err := store.LoadStats()
	require.NoError(t, err)
	assert.Equal(t, model.FlowStats{}, stats)

	tasks, err := store.LoadTasks()
	require.NoError(t, err)
	assert.Empty(t, tasks)
}
