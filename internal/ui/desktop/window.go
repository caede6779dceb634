package desktop

import (
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"pomoflow/internal/app"
	"pomoflow/internal/core/model"
	"pomoflow/internal/core/timer"
)

// Window is the main pomoflow window.
type Window struct {
	window  fyne.Window
	session *app.Session
	logger  *slog.Logger

	modeLabel    *widget.Label
	countdown    *canvas.Text
	sessionLabel *widget.Label
	progress     *widget.ProgressBar
	toggle       *widget.Button
	message      *widget.Label

	completion *widget.ProgressBar
	adherence  *widget.ProgressBar
	accuracy   *widget.ProgressBar
	score      *widget.Label

	taskTitle    *widget.Entry
	taskEstimate *widget.Select
	taskList     *widget.List
	taskRows     []model.Task
	selectedRow  int

	onStateChange func(timer.State)
}

// New builds the window. Call Watch to keep it in sync with the timer.
func New(fyneApp fyne.App, session *app.Session, onPreferences func(), logger *slog.Logger) *Window {
	if logger == nil {
		logger = slog.Default()
	}
	view := &Window{
		window:       fyneApp.NewWindow("Pomoflow"),
		session:      session,
		logger:       logger,
		modeLabel:    widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		countdown:    canvas.NewText("", theme.Color(theme.ColorNameForeground)),
		sessionLabel: widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{}),
		progress:     widget.NewProgressBar(),
		message:      widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Italic: true}),
		completion:   widget.NewProgressBar(),
		adherence:    widget.NewProgressBar(),
		accuracy:     widget.NewProgressBar(),
		score:        widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		taskTitle:    widget.NewEntry(),
		taskEstimate: widget.NewSelect(EstimateOptions(), nil),
		selectedRow:  -1,
	}
	view.countdown.TextSize = 56
	view.countdown.Alignment = fyne.TextAlignCenter
	view.countdown.TextStyle = fyne.TextStyle{Monospace: true, Bold: true}
	view.progress.TextFormatter = func() string { return "" }
	view.taskTitle.SetPlaceHolder("What are you working on?")
	view.taskEstimate.SetSelected("1")

	view.toggle = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), session.Timer.Toggle)
	controls := container.NewHBox(
		layout.NewSpacer(),
		view.toggle,
		widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), session.Timer.Reset),
		widget.NewButtonWithIcon("Skip", theme.MediaSkipNextIcon(), session.Timer.Skip),
		widget.NewButtonWithIcon("", theme.SettingsIcon(), onPreferences),
		layout.NewSpacer(),
	)
	timerPanel := container.NewVBox(view.modeLabel, view.countdown, view.progress, view.sessionLabel, controls, view.message)

	resetStats := widget.NewButton("Reset statistics", func() {
		dialog.ShowConfirm("Reset statistics", "Clear every completed session and interruption?", func(confirmed bool) {
			if confirmed {
				session.Flow.ResetStats()
				view.renderFlow()
			}
		}, view.window)
	})
	flowPanel := widget.NewCard("Focus flow", "", container.NewVBox(
		view.score,
		widget.NewLabel("Session completion"), view.completion,
		widget.NewLabel("Break adherence"), view.adherence,
		widget.NewLabel("Task accuracy"), view.accuracy,
		resetStats,
	))

	view.taskList = widget.NewList(
		func() int { return len(view.taskRows) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, object fyne.CanvasObject) {
			if id < len(view.taskRows) {
				object.(*widget.Label).SetText(TaskLine(view.taskRows[id]))
			}
		},
	)
	view.taskList.OnSelected = view.selectTask
	view.taskList.OnUnselected = func(widget.ListItemID) {
		view.selectedRow = -1
		_ = session.Tasks.Select("")
	}
	addTask := widget.NewButtonWithIcon("Add", theme.ContentAddIcon(), view.addTask)
	view.taskTitle.OnSubmitted = func(string) { view.addTask() }
	taskActions := container.NewHBox(
		widget.NewButtonWithIcon("Edit", theme.DocumentCreateIcon(), view.editSelectedTask),
		widget.NewButtonWithIcon("Done", theme.ConfirmIcon(), view.toggleSelectedTask),
		widget.NewButtonWithIcon("Delete", theme.DeleteIcon(), view.deleteSelectedTask),
	)
	taskForm := container.NewBorder(nil, nil, nil, container.NewHBox(view.taskEstimate, addTask), view.taskTitle)
	taskPanel := widget.NewCard("Tasks", "The selected task gets credit for finished work sessions",
		container.NewBorder(taskForm, taskActions, nil, nil, view.taskList))

	left := container.NewVBox(timerPanel, flowPanel)
	view.window.SetContent(container.NewHSplit(left, taskPanel))
	view.window.Resize(fyne.NewSize(820, 560))

	view.renderState(session.Timer.State())
	view.renderFlow()
	view.renderTasks()
	return view
}

// Show displays and focuses the window.
func (view *Window) Show() {
	view.window.Show()
	view.window.RequestFocus()
}

// Hide hides the window without quitting.
func (view *Window) Hide() { view.window.Hide() }

// Fyne exposes the underlying window.
func (view *Window) Fyne() fyne.Window { return view.window }

// OnStateChange registers a callback run on the fyne thread after each
// rendered state.
func (view *Window) OnStateChange(callback func(timer.State)) {
	view.onStateChange = callback
}

// Watch renders timer events until the channel closes.
func (view *Window) Watch(events <-chan timer.Event) {
	go func() {
		for event := range events {
			fyne.Do(func() { view.handleEvent(event) })
		}
	}()
}

func (view *Window) handleEvent(event timer.Event) {
	switch event.Type {
	case timer.EventCompleted:
		view.message.SetText(event.Message)
		view.renderFlow()
		view.renderTasks()
	case timer.EventInterrupted:
		view.renderFlow()
	case timer.EventIdlePause:
		view.message.SetText("Paused while you were away")
	case timer.EventIdleError:
		view.logger.Debug("idle detection unavailable", "error", event.Message)
	case timer.EventStateChange:
		if event.State.IsActive {
			view.message.SetText("")
		}
	}
	view.renderState(event.State)
}

func (view *Window) renderState(state timer.State) {
	settings := view.session.Timer.Settings()
	view.modeLabel.SetText(timer.ModeLabel(state.Mode))
	view.countdown.Text = timer.FormatRemaining(state.TimeRemaining)
	view.countdown.Refresh()
	view.progress.SetValue(Elapsed(state, settings))
	view.sessionLabel.SetText(SessionLine(state, settings))
	if state.IsActive {
		view.toggle.SetText("Pause")
		view.toggle.SetIcon(theme.MediaPauseIcon())
	} else {
		view.toggle.SetText("Start")
		view.toggle.SetIcon(theme.MediaPlayIcon())
	}
	if view.onStateChange != nil {
		view.onStateChange(state)
	}
}

func (view *Window) renderFlow() {
	score := view.session.Flow.FlowScore()
	view.score.SetText(ScoreLine(score))
	view.completion.SetValue(score.SessionCompletion / 100)
	view.adherence.SetValue(score.BreakAdherence / 100)
	view.accuracy.SetValue(score.TaskAccuracy / 100)
}

func (view *Window) renderTasks() {
	view.taskRows = view.session.Tasks.All()
	view.taskList.Refresh()
}

func (view *Window) addTask() {
	_, err := view.session.CreateTask(TaskDraft(view.taskTitle.Text, view.taskEstimate.Selected))
	if err != nil {
		dialog.ShowError(err, view.window)
		return
	}
	view.taskTitle.SetText("")
	view.renderTasks()
	view.renderFlow()
}

func (view *Window) selectTask(id widget.ListItemID) {
	if id >= len(view.taskRows) {
		return
	}
	view.selectedRow = id
	if err := view.session.Tasks.Select(view.taskRows[id].ID); err != nil {
		view.logger.Warn("select task", "error", err)
	}
}

func (view *Window) selectedTask() (model.Task, bool) {
	if view.selectedRow < 0 || view.selectedRow >= len(view.taskRows) {
		return model.Task{}, false
	}
	return view.taskRows[view.selectedRow], true
}

// editSelectedTask opens a form prefilled with the selected task.
func (view *Window) editSelectedTask() {
	task, ok := view.selectedTask()
	if !ok {
		return
	}
	title := widget.NewEntry()
	title.SetText(task.Title)
	estimate := widget.NewSelect(EstimateOptions(), nil)
	estimate.SetSelected(strconv.Itoa(task.EstimatedPomodoros))
	items := []*widget.FormItem{
		widget.NewFormItem("Title", title),
		widget.NewFormItem("Pomodoros", estimate),
	}
	dialog.ShowForm("Edit task", "Save", "Cancel", items, func(confirmed bool) {
		if confirmed {
			view.saveTask(task.ID, title.Text, estimate.Selected)
		}
	}, view.window)
}

// saveTask applies an edit and reports validation errors in a dialog.
func (view *Window) saveTask(id, title, estimate string) bool {
	if _, err := view.session.Tasks.Update(id, TaskDraft(title, estimate)); err != nil {
		dialog.ShowError(err, view.window)
		return false
	}
	view.renderTasks()
	return true
}

func (view *Window) toggleSelectedTask() {
	task, ok := view.selectedTask()
	if !ok {
		return
	}
	if _, err := view.session.Tasks.ToggleStatus(task.ID); err != nil {
		dialog.ShowError(err, view.window)
	}
	view.renderTasks()
}

func (view *Window) deleteSelectedTask() {
	task, ok := view.selectedTask()
	if !ok {
		return
	}
	if err := view.session.Tasks.Delete(task.ID); err != nil {
		dialog.ShowError(err, view.window)
	}
	view.selectedRow = -1
	view.taskList.UnselectAll()
	view.renderTasks()
}
