package main

import (
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	fynedesktop "fyne.io/fyne/v2/driver/desktop"

	"pomoflow/internal/app"
	"pomoflow/internal/cli"
	"pomoflow/internal/core/model"
	"pomoflow/internal/core/timer"
	"pomoflow/internal/notify"
	"pomoflow/internal/notify/sound"
	"pomoflow/internal/platform"
	"pomoflow/internal/ui/desktop"
	"pomoflow/internal/ui/overlay"
	"pomoflow/internal/ui/preferences"
	"pomoflow/internal/ui/tray"
)

func main() {
	cli.Execute(runDesktop)
}

func runDesktop(env cli.Env) error {
	logger := env.Logger

	guard, err := platform.AcquireSingleInstance(cli.AppName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			logger.Info("pomoflow is already running, asking it to show itself")
			return platform.NotifyRunning(cli.AppName)
		}
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := fyneapp.NewWithID("app.pomoflow")
	service := platform.NewService()

	var session *app.Session
	player := sound.New(func() bool { return session.Settings.Preferences().SoundEnabled }, 0, logger)
	session, err = app.Open(app.Options{
		Dir:  env.Dir,
		Sink: notify.Multi{notify.Safe(notify.NewAlerts(fyneApp), logger), notify.Safe(player, logger)},
		Idle: platform.NewIdleProvider(),
		Autostart: func(enabled bool) error {
			return platform.SyncAutostart(service, cli.AppName, enabled)
		},
		Logger: logger,
	})
	if err != nil {
		return err
	}
	defer session.Close()

	if err := session.RequestPermission(); err != nil {
		logger.Warn("notifications disabled", "error", err)
	}

	prefsWindow := preferences.New(fyneApp, session.Settings.Preferences(), func(values preferences.Values) model.Preferences {
		return preferences.Save(session.Settings, values)
	})
	mainWindow := desktop.New(fyneApp, session, prefsWindow.Show, logger)

	if desktopApp, ok := fyneApp.(fynedesktop.App); ok {
		trayManager := tray.New(desktopApp, tray.Callbacks{
			OnShow:        mainWindow.Show,
			OnToggle:      session.Timer.Toggle,
			OnSkip:        session.Timer.Skip,
			OnReset:       session.Timer.Reset,
			OnPreferences: prefsWindow.Show,
			OnQuit:        fyneApp.Quit,
		}, session.Timer.State())
		mainWindow.OnStateChange(trayManager.Update)
		mainWindow.Fyne().SetCloseIntercept(mainWindow.Hide)
	} else {
		logger.Info("system tray unsupported on this platform")
		mainWindow.Fyne().SetMaster()
	}

	mainWindow.Watch(session.Timer.Subscribe(16))

	breakPrompt := overlay.New(fyneApp, overlay.DefaultConfig(), overlay.Callbacks{
		OnStart: session.Timer.Start,
		OnSkip:  session.Timer.Skip,
	})
	promptEvents := session.Timer.Subscribe(16)
	go func() {
		for event := range promptEvents {
			fyne.Do(func() { breakPrompt.Update(event.State, event.Message) })
		}
	}()
	guard.Serve(func() {
		fyne.Do(mainWindow.Show)
	})

	session.Settings.OnChange(func(prefs model.Preferences) {
		fyne.Do(func() { prefsWindow.UpdatePreferences(prefs) })
	})
	state := session.Timer.State()
	logger.Info("pomoflow started",
		"mode", state.Mode,
		"remaining", timer.FormatRemaining(state.TimeRemaining),
		"session", state.CurrentSession)

	mainWindow.Show()
	fyneApp.Run()
	return nil
}
