// Package terminal is the bubbletea front end for pomoflow.
package terminal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pomoflow/internal/core/model"
	"pomoflow/internal/core/timer"
)

// Controller is the slice of the timer the terminal UI drives.
type Controller interface {
	State() timer.State
	Settings() model.TimerSettings
	Toggle()
	Reset()
	Skip()
}

// Sources supplies the side panels. Either may be nil.
type Sources struct {
	Score        func() model.FlowScore
	SelectedTask func() (model.Task, bool)
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	clockStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 2)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	messageStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("86"))
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

const progressWidth = 40

type tuiModel struct {
	timer   Controller
	sources Sources
	events  <-chan timer.Event

	state    timer.State
	message  string
	bar      progress.Model
	quitting bool
}

func newModel(controller Controller, events <-chan timer.Event, sources Sources) tuiModel {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = progressWidth
	return tuiModel{
		timer:   controller,
		sources: sources,
		events:  events,
		state:   controller.State(),
		bar:     bar,
	}
}

func (m tuiModel) Init() tea.Cmd {
	return waitForEvent(m.events)
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		case " ", "enter":
			m.timer.Toggle()
		case "r":
			m.timer.Reset()
		case "s":
			m.timer.Skip()
		}
		m.state = m.timer.State()
		return m, nil

	case tea.WindowSizeMsg:
		width := msg.Width - 8
		if width > progressWidth {
			width = progressWidth
		}
		if width > 10 {
			m.bar.Width = width
		}
		return m, nil

	case eventMsg:
		event := timer.Event(msg)
		m.state = event.State
		switch event.Type {
		case timer.EventCompleted:
			m.message = event.Message
		case timer.EventIdlePause:
			m.message = "Paused while you were away"
		case timer.EventStateChange:
			if event.State.IsActive {
				m.message = ""
			}
		}
		return m, waitForEvent(m.events)

	case eventsClosedMsg:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m tuiModel) View() string {
	if m.quitting {
		return ""
	}
	settings := m.timer.Settings()

	var body strings.Builder
	body.WriteString(titleStyle.Render(timer.ModeLabel(m.state.Mode)))
	body.WriteString(mutedStyle.Render(fmt.Sprintf("  session %d", m.state.CurrentSession)))
	body.WriteString("\n\n")
	body.WriteString(clockStyle.Render(timer.FormatRemaining(m.state.TimeRemaining)))
	if !m.state.IsActive {
		body.WriteString(mutedStyle.Render("paused"))
	}
	body.WriteString("\n\n")
	body.WriteString(m.bar.ViewAs(elapsed(m.state, settings)))
	body.WriteString("\n")

	if m.sources.SelectedTask != nil {
		if task, ok := m.sources.SelectedTask(); ok {
			body.WriteString(fmt.Sprintf("\nTask: %s (%d/%d)", task.Title, task.CompletedPomodoros, task.EstimatedPomodoros))
		}
	}
	if m.sources.Score != nil {
		score := m.sources.Score()
		body.WriteString(fmt.Sprintf("\nFlow %d  completion %.0f%%  breaks %.0f%%  accuracy %.0f%%",
			score.OverallScore, score.SessionCompletion, score.BreakAdherence, score.TaskAccuracy))
	}
	if m.message != "" {
		body.WriteString("\n\n" + messageStyle.Render(m.message))
	}

	help := mutedStyle.Render("space start/pause  r reset  s skip  q quit")
	return boxStyle.Render(body.String()) + "\n" + help + "\n"
}

func elapsed(state timer.State, settings model.TimerSettings) float64 {
	total := settings.DurationSeconds(state.Mode)
	if total <= 0 {
		return 0
	}
	fraction := 1 - float64(state.TimeRemaining)/float64(total)
	if fraction < 0 {
		return 0
	}
	if fraction > 1 {
		return 1
	}
	return fraction
}

// Run shows the terminal UI until the user quits or events closes.
func Run(controller Controller, events <-chan timer.Event, sources Sources, options ...tea.ProgramOption) error {
	program := tea.NewProgram(newModel(controller, events, sources), options...)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}
