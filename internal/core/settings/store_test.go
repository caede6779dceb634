package settings

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomoflow/internal/core/model"
)

type memorySaver struct {
	saved []model.Preferences
	err   error
}

func (saver *memorySaver) SaveSettings(prefs model.Preferences) error {
	saver.saved = append(saver.saved, prefs)
	return saver.err
}

func TestParseOrDefault(t *testing.T) {
	cases := map[string]int{
		"30":        30,
		"  12 ":     12,
		"12min":     12,
		"7.9":       7,
		"-3":        -3,
		"+4":        4,
		"0":         25,
		"":          25,
		"abc":       25,
		"-":         25,
		"NaN":       25,
		"999999999": 999999999,
	}
	for input, want := range cases {
		assert.Equal(t, want, ParseOrDefault(input, 25), "input %q", input)
	}
}

func TestParseOrDefaultOverflowSaturates(t *testing.T) {
	assert.Greater(t, ParseOrDefault("99999999999999999999999", 1), 1000)
	assert.Less(t, ParseOrDefault("-99999999999999999999999", 1), -1000)
}

func TestUpdateAlwaysWithinBounds(t *testing.T) {
	inputs := []string{"-100", "-1", "0", "1", "5", "30", "60", "61", "1000", "x", "", "1e9", "99999999999999999999"}
	store := New(model.DefaultPreferences(), nil, nil)

	for _, input := range inputs {
		got := store.Update(Patch{
			FieldWorkDuration:            input,
			FieldBreakDuration:           input,
			FieldLongBreakDuration:       input,
			FieldSessionsBeforeLongBreak: input,
		})
		assert.GreaterOrEqual(t, got.WorkDuration, 1, input)
		assert.LessOrEqual(t, got.WorkDuration, 60, input)
		assert.GreaterOrEqual(t, got.BreakDuration, 1, input)
		assert.LessOrEqual(t, got.BreakDuration, 30, input)
		assert.GreaterOrEqual(t, got.LongBreakDuration, 1, input)
		assert.LessOrEqual(t, got.LongBreakDuration, 60, input)
		assert.GreaterOrEqual(t, got.SessionsBeforeLongBreak, 1, input)
		assert.LessOrEqual(t, got.SessionsBeforeLongBreak, 10, input)
	}
}

func TestUpdateCoercion(t *testing.T) {
	store := New(model.DefaultPreferences(), nil, nil)

	got := store.Update(Patch{
		FieldWorkDuration:            "90",
		FieldBreakDuration:           "-2",
		FieldLongBreakDuration:       "nope",
		FieldSessionsBeforeLongBreak: "0",
	})

	assert.Equal(t, model.TimerSettings{
		WorkDuration:            60,
		BreakDuration:           1,
		LongBreakDuration:       15,
		SessionsBeforeLongBreak: 4,
	}, got)
}

func TestUpdateKeepsUnspecifiedFields(t *testing.T) {
	prefs := model.DefaultPreferences()
	prefs.Timer.BreakDuration = 10
	store := New(prefs, nil, nil)

	got := store.Update(Patch{FieldWorkDuration: "50"})

	assert.Equal(t, 50, got.WorkDuration)
	assert.Equal(t, 10, got.BreakDuration)
	assert.Equal(t, 15, got.LongBreakDuration)
	assert.Equal(t, 4, got.SessionsBeforeLongBreak)
	assert.Equal(t, got, store.Read())
}

func TestUpdatePersistsAndNotifies(t *testing.T) {
	saver := &memorySaver{}
	store := New(model.DefaultPreferences(), saver, nil)
	var notified []model.Preferences
	store.OnChange(func(prefs model.Preferences) {
		notified = append(notified, prefs)
	})

	store.UpdatePreferences(Patch{FieldIdlePauseAfter: "500"}, func(prefs *model.Preferences) {
		prefs.IdlePauseEnabled = true
	})

	require.Len(t, saver.saved, 1)
	require.Len(t, notified, 1)
	assert.True(t, saver.saved[0].IdlePauseEnabled)
	assert.Equal(t, 60, saver.saved[0].IdlePauseAfter)
	assert.Equal(t, saver.saved[0], notified[0])
}

func TestListenersSeeSnapshotOfRegistrations(t *testing.T) {
	store := New(model.DefaultPreferences(), nil, nil)
	var first, late int
	store.OnChange(func(model.Preferences) {
		first++
		if first == 1 {
			store.OnChange(func(model.Preferences) { late++ })
		}
	})

	store.Update(Patch{FieldWorkDuration: "30"})
	assert.Equal(t, 1, first)
	assert.Zero(t, late)

	store.Update(Patch{FieldWorkDuration: "35"})
	assert.Equal(t, 2, first)
	assert.Equal(t, 1, late)
}

func TestUpdateSurvivesSaveFailure(t *testing.T) {
	saver := &memorySaver{err: errors.New("disk full")}
	store := New(model.DefaultPreferences(), saver, nil)

	got := store.Update(Patch{FieldWorkDuration: "40"})

	assert.Equal(t, 40, got.WorkDuration)
	assert.Equal(t, 40, store.Read().WorkDuration)
}

func TestNewNormalizesLoadedRecord(t *testing.T) {
	loaded := model.Preferences{
		Timer: model.TimerSettings{
			WorkDuration:            -5,
			BreakDuration:           0,
			LongBreakDuration:       600,
			SessionsBeforeLongBreak: 3,
		},
	}

	store := New(loaded, nil, nil)

	assert.Equal(t, model.TimerSettings{
		WorkDuration:            1,
		BreakDuration:           5,
		LongBreakDuration:       60,
		SessionsBeforeLongBreak: 3,
	}, store.Read())
	assert.Equal(t, 5, store.Preferences().IdlePauseAfter)
}
