package storage

import (
	"gopkg.in/yaml.v3"

	"pomoflow/internal/core/model"
	"pomoflow/internal/core/settings"
)

// lenientInt accepts any scalar. Text that is not a number decodes to 0, which
// normalization later replaces with the field default.
type lenientInt int

func (value *lenientInt) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		*value = 0
		return nil
	}
	*value = lenientInt(settings.ParseOrDefault(node.Value, 0))
	return nil
}

type yamlSettings struct {
	WorkDuration            lenientInt `yaml:"work_duration"`
	BreakDuration           lenientInt `yaml:"break_duration"`
	LongBreakDuration       lenientInt `yaml:"long_break_duration"`
	SessionsBeforeLongBreak lenientInt `yaml:"sessions_before_long_break"`
	AutoStart               bool       `yaml:"auto_start"`
	IdlePauseEnabled        bool       `yaml:"idle_pause_enabled"`
	IdlePauseAfterMinutes   lenientInt `yaml:"idle_pause_after_minutes"`
	SoundEnabled            *bool      `yaml:"sound_enabled"`
}

// LoadSettings reads preferences. A missing file yields defaults; a malformed
// one yields defaults plus the parse error so the caller can warn.
func (store *FileStore) LoadSettings() (model.Preferences, error) {
	prefs := model.DefaultPreferences()

	var fileData yamlSettings
	found, err := store.readRecord(settingsFileName, &fileData)
	if err != nil || !found {
		return prefs, err
	}

	applyYamlSettings(&prefs, fileData)
	return prefs.Normalize(), nil
}

// SaveSettings rewrites the preferences record.
func (store *FileStore) SaveSettings(prefs model.Preferences) error {
	soundEnabled := prefs.SoundEnabled
	fileData := yamlSettings{
		WorkDuration:            lenientInt(prefs.Timer.WorkDuration),
		BreakDuration:           lenientInt(prefs.Timer.BreakDuration),
		LongBreakDuration:       lenientInt(prefs.Timer.LongBreakDuration),
		SessionsBeforeLongBreak: lenientInt(prefs.Timer.SessionsBeforeLongBreak),
		AutoStart:               prefs.AutoStart,
		IdlePauseEnabled:        prefs.IdlePauseEnabled,
		IdlePauseAfterMinutes:   lenientInt(prefs.IdlePauseAfter),
		SoundEnabled:            &soundEnabled,
	}
	return store.writeRecord(settingsFileName, fileData)
}

func applyYamlSettings(prefs *model.Preferences, fileData yamlSettings) {
	prefs.Timer = model.TimerSettings{
		WorkDuration:            int(fileData.WorkDuration),
		BreakDuration:           int(fileData.BreakDuration),
		LongBreakDuration:       int(fileData.LongBreakDuration),
		SessionsBeforeLongBreak: int(fileData.SessionsBeforeLongBreak),
	}
	prefs.IdlePauseAfter = int(fileData.IdlePauseAfterMinutes)
	prefs.AutoStart = fileData.AutoStart
	prefs.IdlePauseEnabled = fileData.IdlePauseEnabled
	if fileData.SoundEnabled != nil {
		prefs.SoundEnabled = *fileData.SoundEnabled
	}
}
