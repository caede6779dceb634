package preferences

import (
	"strconv"

	"pomoflow/internal/core/model"
	"pomoflow/internal/core/settings"
)

// Values is the raw form content. Numbers stay text until the settings store
// coerces them, so a half-typed field never rejects the whole form.
type Values struct {
	WorkDuration            string
	BreakDuration           string
	LongBreakDuration       string
	SessionsBeforeLongBreak string
	IdlePauseAfter          string

	AutoStart        bool
	IdlePauseEnabled bool
	SoundEnabled     bool
}

// FromPreferences fills the form from stored preferences.
func FromPreferences(prefs model.Preferences) Values {
	return Values{
		WorkDuration:            strconv.Itoa(prefs.Timer.WorkDuration),
		BreakDuration:           strconv.Itoa(prefs.Timer.BreakDuration),
		LongBreakDuration:       strconv.Itoa(prefs.Timer.LongBreakDuration),
		SessionsBeforeLongBreak: strconv.Itoa(prefs.Timer.SessionsBeforeLongBreak),
		IdlePauseAfter:          strconv.Itoa(prefs.IdlePauseAfter),
		AutoStart:               prefs.AutoStart,
		IdlePauseEnabled:        prefs.IdlePauseEnabled,
		SoundEnabled:            prefs.SoundEnabled,
	}
}

// Patch returns the numeric fields as a settings patch.
func (values Values) Patch() settings.Patch {
	return settings.Patch{
		settings.FieldWorkDuration:            values.WorkDuration,
		settings.FieldBreakDuration:           values.BreakDuration,
		settings.FieldLongBreakDuration:       values.LongBreakDuration,
		settings.FieldSessionsBeforeLongBreak: values.SessionsBeforeLongBreak,
		settings.FieldIdlePauseAfter:          values.IdlePauseAfter,
	}
}

// Apply copies the toggles onto prefs.
func (values Values) Apply(prefs *model.Preferences) {
	prefs.AutoStart = values.AutoStart
	prefs.IdlePauseEnabled = values.IdlePauseEnabled
	prefs.SoundEnabled = values.SoundEnabled
}

// Save writes values through store and returns what was kept.
func Save(store *settings.Store, values Values) model.Preferences {
	return store.UpdatePreferences(values.Patch(), values.Apply)
}
