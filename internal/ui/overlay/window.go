// Package overlay shows a small always-visible prompt while a break is due or
// running.
package overlay

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"pomoflow/internal/core/model"
	"pomoflow/internal/core/timer"
)

// Config defines overlay visuals.
type Config struct {
	Opacity uint8
}

// DefaultConfig is a mostly opaque dark panel.
func DefaultConfig() Config {
	return Config{Opacity: 217}
}

// Callbacks are the prompt buttons.
type Callbacks struct {
	OnStart func()
	OnSkip  func()
}

// Window manages the break prompt.
type Window struct {
	window        fyne.Window
	config        Config
	background    *canvas.Rectangle
	titleLabel    *canvas.Text
	subtitleLabel *canvas.Text
	messageLabel  *canvas.Text
	timerLabel    *canvas.Text
	startButton   *widget.Button
	visible       bool
}

const (
	overlayWidthFraction  = float32(0.22)
	overlayHeightFraction = float32(0.2)
	defaultScreenWidth    = float32(1920)
	defaultScreenHeight   = float32(1080)
)

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates the prompt, hidden.
func New(app fyne.App, config Config, callbacks Callbacks) *Window {
	window := app.NewWindow("Pomoflow Break")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	}
	window.SetPadded(false)

	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	overlay := &Window{
		window:        window,
		config:        config,
		background:    canvas.NewRectangle(color.NRGBA{R: 0, G: 0, B: 0, A: config.Opacity}),
		titleLabel:    canvas.NewText("", white),
		subtitleLabel: canvas.NewText("", white),
		messageLabel:  canvas.NewText("", white),
		timerLabel:    canvas.NewText("--:--", color.NRGBA{R: 232, G: 190, B: 66, A: 255}),
	}
	overlay.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	overlay.titleLabel.TextSize = 21
	overlay.subtitleLabel.TextSize = 14
	overlay.messageLabel.TextStyle = fyne.TextStyle{Italic: true}
	overlay.messageLabel.TextSize = 13
	overlay.timerLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	overlay.timerLabel.TextSize = 28

	overlay.startButton = widget.NewButton("Start break", callback(callbacks.OnStart))
	skipButton := widget.NewButton("Skip", callback(callbacks.OnSkip))
	buttons := container.NewHBox(layout.NewSpacer(), overlay.startButton, skipButton)

	text := container.New(&panelLayout{}, overlay.titleLabel, overlay.subtitleLabel, overlay.messageLabel, overlay.timerLabel)
	window.SetContent(container.NewStack(overlay.background, container.NewBorder(nil, buttons, nil, nil, text)))
	return overlay
}

// Update shows, refreshes or hides the prompt for state. message is kept
// until the next call that carries one.
func (overlay *Window) Update(state timer.State, message string) {
	if !Visible(state) {
		overlay.Hide()
		return
	}
	title, subtitle := Headline(state)
	overlay.titleLabel.Text = title
	overlay.subtitleLabel.Text = subtitle
	if message != "" {
		overlay.messageLabel.Text = message
	}
	overlay.timerLabel.Text = timer.FormatRemaining(state.TimeRemaining)
	if state.IsActive {
		overlay.startButton.Hide()
	} else {
		overlay.startButton.Show()
	}
	for _, label := range []*canvas.Text{overlay.titleLabel, overlay.subtitleLabel, overlay.messageLabel, overlay.timerLabel} {
		label.Refresh()
	}

	if overlay.visible {
		return
	}
	overlay.visible = true
	overlay.resizeToScreenFraction()
	overlay.window.Show()
	overlay.applyNativeOpacity(overlay.config.Opacity)
}

// Hide closes the prompt.
func (overlay *Window) Hide() {
	if !overlay.visible {
		return
	}
	overlay.visible = false
	overlay.messageLabel.Text = ""
	overlay.window.Hide()
}

// Visible reports whether the prompt belongs on screen for state.
func Visible(state timer.State) bool {
	return state.Mode != model.ModeWork
}

// Headline returns the prompt title and subtitle for a break state.
func Headline(state timer.State) (title, subtitle string) {
	if state.Mode == model.ModeLongBreak {
		title = "Long break"
	} else {
		title = "Break"
	}
	if state.IsActive {
		return title, "Step away from the screen"
	}
	return title, "Your break is ready"
}

func (overlay *Window) resizeToScreenFraction() {
	screenSize := fyne.NewSize(defaultScreenWidth, defaultScreenHeight)
	canvasSize := overlay.window.Canvas().Size()
	// Canvas size can be reused as a proxy for monitor size when it is clearly screen-like.
	if canvasSize.Width >= 1024 && canvasSize.Height >= 720 {
		screenSize = canvasSize
	}

	width := screenSize.Width * overlayWidthFraction
	height := screenSize.Height * overlayHeightFraction
	minSize := overlay.window.Content().MinSize()
	if width < minSize.Width {
		width = minSize.Width
	}
	if height < minSize.Height {
		height = minSize.Height
	}

	overlay.window.Resize(fyne.NewSize(width, height))
	overlay.window.CenterOnScreen()
}

func callback(action func()) func() {
	return func() {
		if action != nil {
			action()
		}
	}
}

// panelLayout stacks title, subtitle and message from the top and pins the
// countdown to the bottom.
type panelLayout struct{}

func (panel *panelLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 4 {
		return
	}
	pad := size.Height * 0.05
	availableWidth := size.Width - pad*2
	if availableWidth < 0 {
		availableWidth = 0
	}

	y := pad
	for _, object := range objects[:3] {
		objectSize := object.MinSize()
		object.Move(fyne.NewPos(pad, y))
		object.Resize(fyne.NewSize(availableWidth, objectSize.Height))
		y += objectSize.Height + 6
	}

	countdown := objects[3]
	countdownSize := countdown.MinSize()
	countdownY := size.Height - pad - countdownSize.Height
	if countdownY < y {
		countdownY = y
	}
	countdown.Move(fyne.NewPos(pad, countdownY))
	countdown.Resize(countdownSize)
}

func (panel *panelLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	var width, height float32
	for _, object := range objects {
		objectSize := object.MinSize()
		if objectSize.Width > width {
			width = objectSize.Width
		}
		height += objectSize.Height + 6
	}
	return fyne.NewSize(width+20, height+20)
}
