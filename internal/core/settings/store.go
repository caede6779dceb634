// Package settings owns the user's timer configuration. Writes never fail on
// bad input: every value is parsed leniently and clamped into its bounds.
package settings

import (
	"log/slog"
	"math"
	"strconv"
	"strings"
	"sync"

	"pomoflow/internal/core/model"
)

// Field names a numeric setting that can be patched from raw input.
type Field string

const (
	FieldWorkDuration            Field = "work_duration"
	FieldBreakDuration           Field = "break_duration"
	FieldLongBreakDuration       Field = "long_break_duration"
	FieldSessionsBeforeLongBreak Field = "sessions_before_long_break"
	FieldIdlePauseAfter          Field = "idle_pause_after"
)

// Patch carries raw user input per field. Absent fields keep their value.
type Patch map[Field]string

// Saver persists the full preferences record.
type Saver interface {
	SaveSettings(model.Preferences) error
}

// Store is the settings record shared by the timer and the front-ends.
type Store struct {
	mu        sync.Mutex
	prefs     model.Preferences
	saver     Saver
	logger    *slog.Logger
	listeners []func(model.Preferences)
}

// New creates a Store seeded with loaded preferences. Loaded values are
// normalized, so a malformed record degrades to defaults field by field.
func New(loaded model.Preferences, saver Saver, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		prefs:  loaded.Normalize(),
		saver:  saver,
		logger: logger,
	}
}

// Read returns the current timer settings.
func (store *Store) Read() model.TimerSettings {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.prefs.Timer
}

// Preferences returns the full preferences record.
func (store *Store) Preferences() model.Preferences {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.prefs
}

// OnChange registers a listener invoked after every successful update.
func (store *Store) OnChange(listener func(model.Preferences)) {
	store.mu.Lock()
	store.listeners = append(store.listeners, listener)
	store.mu.Unlock()
}

// Update applies patch, persists the record and returns the new settings.
func (store *Store) Update(patch Patch) model.TimerSettings {
	return store.UpdatePreferences(patch, nil).Timer
}

// UpdatePreferences applies patch plus an optional edit of the boolean
// preferences, then persists and notifies listeners.
func (store *Store) UpdatePreferences(patch Patch, edit func(*model.Preferences)) model.Preferences {
	store.mu.Lock()
	next := store.prefs
	timer := &next.Timer
	applyField(patch, FieldWorkDuration, &timer.WorkDuration, model.WorkDurationBound)
	applyField(patch, FieldBreakDuration, &timer.BreakDuration, model.BreakDurationBound)
	applyField(patch, FieldLongBreakDuration, &timer.LongBreakDuration, model.LongBreakDurationBound)
	applyField(patch, FieldSessionsBeforeLongBreak, &timer.SessionsBeforeLongBreak, model.SessionsBeforeLongBreakBound)
	applyField(patch, FieldIdlePauseAfter, &next.IdlePauseAfter, model.IdlePauseAfterBound)
	if edit != nil {
		edit(&next)
	}
	next = next.Normalize()
	store.prefs = next
	listeners := append([]func(model.Preferences){}, store.listeners...)
	store.mu.Unlock()

	if store.saver != nil {
		if err := store.saver.SaveSettings(next); err != nil {
			store.logger.Warn("persist settings", "error", err)
		}
	}
	for _, listener := range listeners {
		listener(next)
	}
	return next
}

func applyField(patch Patch, field Field, target *int, bound model.Bound) {
	raw, ok := patch[field]
	if !ok {
		return
	}
	*target = bound.Clamp(ParseOrDefault(raw, bound.Default))
}

// ParseOrDefault reads a leading integer from raw, ignoring any trailing
// text ("12min" is 12, "7.9" is 7). Missing digits or a zero value yield def.
func ParseOrDefault(raw string, def int) int {
	text := strings.TrimSpace(raw)
	end := 0
	if end < len(text) && (text[end] == '+' || text[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(text) && text[end] >= '0' && text[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return def
	}

	value, err := strconv.Atoi(text[:end])
	if err != nil {
		if strings.HasPrefix(text, "-") {
			return math.MinInt
		}
		return math.MaxInt
	}
	if value == 0 {
		return def
	}
	return value
}
