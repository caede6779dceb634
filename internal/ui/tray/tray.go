package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"pomoflow/internal/core/timer"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnToggle      func()
	OnSkip        func()
	OnReset       func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state. Its methods must run on the fyne thread.
type Manager struct {
	app        desktop.App
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	skipItem   *fyne.MenuItem
	resetItem  *fyne.MenuItem
	showItem   *fyne.MenuItem
	prefsItem  *fyne.MenuItem
	quitItem   *fyne.MenuItem
}

// New creates a tray manager with the provided callbacks and shows initial.
func New(app desktop.App, callbacks Callbacks, initial timer.State) *Manager {
	manager := &Manager{
		app:        app,
		statusItem: fyne.NewMenuItem("", nil),
		toggleItem: fyne.NewMenuItem("", safe(callbacks.OnToggle)),
		skipItem:   fyne.NewMenuItem("Skip", safe(callbacks.OnSkip)),
		resetItem:  fyne.NewMenuItem("Reset", safe(callbacks.OnReset)),
		showItem:   fyne.NewMenuItem("Open Pomoflow", safe(callbacks.OnShow)),
		prefsItem:  fyne.NewMenuItem("Preferences", safe(callbacks.OnPreferences)),
		quitItem:   fyne.NewMenuItem("Quit", safe(callbacks.OnQuit)),
	}
	manager.statusItem.Disabled = true
	manager.quitItem.IsQuit = true
	manager.Update(initial)
	return manager
}

// Update reflects state in the status line and the start/pause item.
func (manager *Manager) Update(state timer.State) {
	manager.statusItem.Label = StatusLine(state)
	manager.toggleItem.Label = ToggleLabel(state)
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu("Pomoflow",
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		manager.toggleItem,
		manager.skipItem,
		manager.resetItem,
		fyne.NewMenuItemSeparator(),
		manager.showItem,
		manager.prefsItem,
		manager.quitItem,
	))
}

// StatusLine is the one-line summary shown at the top of the tray menu.
func StatusLine(state timer.State) string {
	status := fmt.Sprintf("%s #%d  %s", timer.ModeLabel(state.Mode), state.CurrentSession, timer.FormatRemaining(state.TimeRemaining))
	if !state.IsActive {
		status += " (paused)"
	}
	return status
}

// ToggleLabel names the action the start/pause item performs.
func ToggleLabel(state timer.State) string {
	if state.IsActive {
		return "Pause"
	}
	return "Start"
}

func safe(callback func()) func() {
	return func() {
		if callback != nil {
			callback()
		}
	}
}
