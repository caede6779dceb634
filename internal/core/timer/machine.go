package timer

import (
	"fmt"
	"strings"
	"time"

	"pomoflow/internal/core/model"
	"pomoflow/internal/notify"
)

// State is the observable countdown state.
type State struct {
	Mode           model.Mode
	TimeRemaining  int
	IsActive       bool
	CurrentSession int
	// StartedAt is the wall-clock moment of the last Start. It only feeds the
	// focus minutes credited at natural expiry.
	StartedAt time.Time
}

// InitialState is the state of a fresh timer.
func InitialState(settings model.TimerSettings) State {
	return State{
		Mode:           model.ModeWork,
		TimeRemaining:  settings.DurationSeconds(model.ModeWork),
		IsActive:       false,
		CurrentSession: 1,
	}
}

// Command is a single input to the state machine.
type Command int

const (
	CommandStart Command = iota
	CommandPause
	CommandReset
	CommandSkip
	CommandTick
	CommandUpdateSettings
)

func (command Command) String() string {
	switch command {
	case CommandStart:
		return "start"
	case CommandPause:
		return "pause"
	case CommandReset:
		return "reset"
	case CommandSkip:
		return "skip"
	case CommandTick:
		return "tick"
	case CommandUpdateSettings:
		return "update_settings"
	}
	return fmt.Sprintf("command(%d)", int(command))
}

// EffectKind classifies a side effect produced by Transition.
type EffectKind int

const (
	// EffectInterruption means a work countdown was ended early.
	EffectInterruption EffectKind = iota
	// EffectCompletion credits a naturally finished work countdown.
	EffectCompletion
	// EffectExpired is any natural expiry, work or break.
	EffectExpired
	// EffectSkipped is an explicit skip of any mode.
	EffectSkipped
)

// Effect is a side effect to be applied before the new state is committed.
type Effect struct {
	Kind     EffectKind
	Mode     model.Mode
	NextMode model.Mode
	Session  int
	Minutes  float64
	Signal   notify.Kind
}

// NextMode returns the mode that follows state.Mode.
func NextMode(state State, settings model.TimerSettings) model.Mode {
	if state.Mode != model.ModeWork {
		return model.ModeWork
	}
	sessions := settings.SessionsBeforeLongBreak
	if sessions <= 0 {
		sessions = model.SessionsBeforeLongBreakBound.Default
	}
	if state.CurrentSession%sessions == 0 {
		return model.ModeLongBreak
	}
	return model.ModeBreak
}

// Transition applies command to state and returns the next state together with
// the effects that must be dispatched before it becomes observable. settings
// are the ones in force after the command; for CommandUpdateSettings they are
// the new settings.
func Transition(state State, settings model.TimerSettings, command Command, now time.Time) (State, []Effect) {
	switch command {
	case CommandStart:
		if state.IsActive {
			return state, nil
		}
		state.IsActive = true
		state.StartedAt = now
		return state, nil

	case CommandPause:
		if !state.IsActive {
			return state, nil
		}
		var effects []Effect
		if state.Mode == model.ModeWork {
			effects = append(effects, interruption(state))
		}
		state.IsActive = false
		return state, effects

	case CommandReset:
		var effects []Effect
		if state.IsActive && state.Mode == model.ModeWork {
			effects = append(effects, interruption(state))
		}
		return InitialState(settings), effects

	case CommandSkip:
		next := advance(state, settings)
		var effects []Effect
		// Abandoning a work session counts whether or not it is running.
		if state.Mode == model.ModeWork {
			effects = append(effects, interruption(state))
		}
		effects = append(effects, Effect{
			Kind:     EffectSkipped,
			Mode:     state.Mode,
			NextMode: next.Mode,
			Session:  state.CurrentSession,
		})
		return next, effects

	case CommandTick:
		if !state.IsActive {
			return state, nil
		}
		if state.TimeRemaining > 1 {
			state.TimeRemaining--
			return state, nil
		}
		return expire(state, settings, now)

	case CommandUpdateSettings:
		state.TimeRemaining = settings.DurationSeconds(state.Mode)
		state.IsActive = false
		return state, nil
	}
	return state, nil
}

func expire(state State, settings model.TimerSettings, now time.Time) (State, []Effect) {
	next := advance(state, settings)
	expired := Effect{
		Kind:     EffectExpired,
		Mode:     state.Mode,
		NextMode: next.Mode,
		Session:  state.CurrentSession,
		Signal:   notify.BreakComplete,
	}

	var effects []Effect
	if state.Mode == model.ModeWork {
		minutes := elapsedMinutes(state, settings, now)
		effects = append(effects, Effect{
			Kind:     EffectCompletion,
			Mode:     state.Mode,
			NextMode: next.Mode,
			Session:  state.CurrentSession,
			Minutes:  minutes,
		})
		expired.Signal = notify.WorkComplete
		expired.Minutes = minutes
	}
	return next, append(effects, expired)
}

func advance(state State, settings model.TimerSettings) State {
	nextMode := NextMode(state, settings)
	nextSession := state.CurrentSession
	if nextMode == model.ModeWork {
		nextSession++
	}
	return State{
		Mode:           nextMode,
		TimeRemaining:  settings.DurationSeconds(nextMode),
		IsActive:       false,
		CurrentSession: nextSession,
	}
}

func interruption(state State) Effect {
	return Effect{
		Kind:    EffectInterruption,
		Mode:    state.Mode,
		Session: state.CurrentSession,
	}
}

func elapsedMinutes(state State, settings model.TimerSettings, now time.Time) float64 {
	if state.StartedAt.IsZero() {
		return float64(settings.WorkDuration)
	}
	elapsed := now.Sub(state.StartedAt).Minutes()
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// FormatRemaining renders seconds as MM:SS.
func FormatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// ModeLabel is the human name of mode.
func ModeLabel(mode model.Mode) string {
	switch mode {
	case model.ModeBreak:
		return "Break"
	case model.ModeLongBreak:
		return "Long Break"
	default:
		return "Work"
	}
}

func completionMessage(effect Effect) string {
	return fmt.Sprintf("%s session completed! Starting %s session...",
		ModeLabel(effect.Mode), strings.ToLower(ModeLabel(effect.NextMode)))
}
