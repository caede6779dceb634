package model

// Mode is the phase of the pomodoro cycle.
type Mode string

const (
	ModeWork      Mode = "work"
	ModeBreak     Mode = "break"
	ModeLongBreak Mode = "longBreak"
)

// Valid reports whether mode is one of the three cycle phases.
func (mode Mode) Valid() bool {
	switch mode {
	case ModeWork, ModeBreak, ModeLongBreak:
		return true
	}
	return false
}

// Bound is an inclusive integer range with a fallback value.
type Bound struct {
	Min     int
	Max     int
	Default int
}

// Clamp pins value into [Min, Max].
func (bound Bound) Clamp(value int) int {
	if value < bound.Min {
		return bound.Min
	}
	if value > bound.Max {
		return bound.Max
	}
	return value
}

var (
	WorkDurationBound            = Bound{Min: 1, Max: 60, Default: 25}
	BreakDurationBound           = Bound{Min: 1, Max: 30, Default: 5}
	LongBreakDurationBound       = Bound{Min: 1, Max: 60, Default: 15}
	SessionsBeforeLongBreakBound = Bound{Min: 1, Max: 10, Default: 4}
	IdlePauseAfterBound          = Bound{Min: 1, Max: 60, Default: 5}
)

// TimerSettings holds the configurable cycle. Durations are whole minutes.
type TimerSettings struct {
	WorkDuration            int
	BreakDuration           int
	LongBreakDuration       int
	SessionsBeforeLongBreak int
}

// DefaultTimerSettings returns the classic 25/5/15 x4 cycle.
func DefaultTimerSettings() TimerSettings {
	return TimerSettings{
		WorkDuration:            WorkDurationBound.Default,
		BreakDuration:           BreakDurationBound.Default,
		LongBreakDuration:       LongBreakDurationBound.Default,
		SessionsBeforeLongBreak: SessionsBeforeLongBreakBound.Default,
	}
}

// Normalize replaces zero values with defaults and clamps everything else.
func (settings TimerSettings) Normalize() TimerSettings {
	return TimerSettings{
		WorkDuration:            normalizeInt(settings.WorkDuration, WorkDurationBound),
		BreakDuration:           normalizeInt(settings.BreakDuration, BreakDurationBound),
		LongBreakDuration:       normalizeInt(settings.LongBreakDuration, LongBreakDurationBound),
		SessionsBeforeLongBreak: normalizeInt(settings.SessionsBeforeLongBreak, SessionsBeforeLongBreakBound),
	}
}

// DurationSeconds returns the full countdown length of mode.
func (settings TimerSettings) DurationSeconds(mode Mode) int {
	switch mode {
	case ModeBreak:
		return settings.BreakDuration * 60
	case ModeLongBreak:
		return settings.LongBreakDuration * 60
	default:
		return settings.WorkDuration * 60
	}
}

// Preferences are the application-level options stored next to TimerSettings.
type Preferences struct {
	Timer            TimerSettings
	AutoStart        bool
	IdlePauseEnabled bool
	IdlePauseAfter   int
	SoundEnabled     bool
}

// DefaultPreferences returns defaults for a first launch.
func DefaultPreferences() Preferences {
	return Preferences{
		Timer:            DefaultTimerSettings(),
		AutoStart:        false,
		IdlePauseEnabled: false,
		IdlePauseAfter:   IdlePauseAfterBound.Default,
		SoundEnabled:     true,
	}
}

// Normalize clamps every numeric preference.
func (prefs Preferences) Normalize() Preferences {
	prefs.Timer = prefs.Timer.Normalize()
	prefs.IdlePauseAfter = normalizeInt(prefs.IdlePauseAfter, IdlePauseAfterBound)
	return prefs
}

func normalizeInt(value int, bound Bound) int {
	if value == 0 {
		return bound.Default
	}
	return bound.Clamp(value)
}
