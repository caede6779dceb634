package preferences

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"pomoflow/internal/core/model"
)

// Window handles the preferences UI.
type Window struct {
	window   fyne.Window
	onSave   func(Values) model.Preferences
	onCancel func()

	work      *widget.Entry
	shortRest *widget.Entry
	longRest  *widget.Entry
	sessions  *widget.Entry
	idleAfter *widget.Entry
	autoStart *widget.Check
	idleCheck *widget.Check
	sound     *widget.Check
}

// New creates a preferences window. onSave receives the raw form and returns
// the preferences actually stored, which are written back into the form.
func New(app fyne.App, prefs model.Preferences, onSave func(Values) model.Preferences) *Window {
	window := app.NewWindow("Pomoflow Settings")

	prefsWindow := &Window{
		window:    window,
		onSave:    onSave,
		work:      widget.NewEntry(),
		shortRest: widget.NewEntry(),
		longRest:  widget.NewEntry(),
		sessions:  widget.NewEntry(),
		idleAfter: widget.NewEntry(),
		autoStart: widget.NewCheck("Launch at login", nil),
		idleCheck: widget.NewCheck("Pause work when I am away", nil),
		sound:     widget.NewCheck("Play a sound when a session ends", nil),
	}
	prefsWindow.UpdatePreferences(prefs)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Timer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		row("Work duration", prefsWindow.work, "min"),
		row("Break duration", prefsWindow.shortRest, "min"),
		row("Long break duration", prefsWindow.longRest, "min"),
		row("Sessions before long break", prefsWindow.sessions, ""),
		widget.NewSeparator(),
		widget.NewLabelWithStyle("General", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefsWindow.idleCheck,
		row("Away after", prefsWindow.idleAfter, "min"),
		prefsWindow.sound,
		prefsWindow.autoStart,
	)

	saveButton := widget.NewButton("Save", prefsWindow.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		window.Hide()
		if prefsWindow.onCancel != nil {
			prefsWindow.onCancel()
		}
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(420, 460))
	window.SetCloseIntercept(window.Hide)
	return prefsWindow
}

// Show displays the preferences window.
func (prefsWindow *Window) Show() {
	prefsWindow.window.Show()
	prefsWindow.window.RequestFocus()
}

// SetOnCancel registers a callback for the cancel button.
func (prefsWindow *Window) SetOnCancel(onCancel func()) {
	prefsWindow.onCancel = onCancel
}

// UpdatePreferences replaces window values.
func (prefsWindow *Window) UpdatePreferences(prefs model.Preferences) {
	values := FromPreferences(prefs)
	prefsWindow.work.SetText(values.WorkDuration)
	prefsWindow.shortRest.SetText(values.BreakDuration)
	prefsWindow.longRest.SetText(values.LongBreakDuration)
	prefsWindow.sessions.SetText(values.SessionsBeforeLongBreak)
	prefsWindow.idleAfter.SetText(values.IdlePauseAfter)
	prefsWindow.autoStart.SetChecked(values.AutoStart)
	prefsWindow.idleCheck.SetChecked(values.IdlePauseEnabled)
	prefsWindow.sound.SetChecked(values.SoundEnabled)
}

func (prefsWindow *Window) values() Values {
	return Values{
		WorkDuration:            prefsWindow.work.Text,
		BreakDuration:           prefsWindow.shortRest.Text,
		LongBreakDuration:       prefsWindow.longRest.Text,
		SessionsBeforeLongBreak: prefsWindow.sessions.Text,
		IdlePauseAfter:          prefsWindow.idleAfter.Text,
		AutoStart:               prefsWindow.autoStart.Checked,
		IdlePauseEnabled:        prefsWindow.idleCheck.Checked,
		SoundEnabled:            prefsWindow.sound.Checked,
	}
}

func (prefsWindow *Window) handleSave() {
	if prefsWindow.onSave != nil {
		prefsWindow.UpdatePreferences(prefsWindow.onSave(prefsWindow.values()))
	}
	prefsWindow.window.Hide()
}

func row(label string, entry *widget.Entry, unit string) fyne.CanvasObject {
	return container.NewBorder(nil, nil, widget.NewLabel(label), widget.NewLabel(unit), entry)
}
