package timer

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"pomoflow/internal/core/model"
	"pomoflow/internal/notify"
)

// ErrIdleUnsupported indicates idle detection is not available on this system.
var ErrIdleUnsupported = errors.New("idle detection unsupported")

// IdleChecker reports the duration of user inactivity.
type IdleChecker interface {
	IdleDuration() (time.Duration, error)
}

// StatsRecorder receives session accounting.
type StatsRecorder interface {
	RecordSessionCompletion(durationMinutes float64)
	RecordInterruption()
}

// ProgressTracker is told about every credited work session.
type ProgressTracker interface {
	WorkCompleted()
}

// Scheduler runs fn every interval until the returned stop func is called.
// stop must not wait for an in-flight fn.
type Scheduler interface {
	Every(interval time.Duration, fn func()) (stop func())
}

// Collaborators are the components the timer reports to. Any may be nil.
// They are called with the timer lock held and must not call back into it.
type Collaborators struct {
	Stats    StatsRecorder
	Sink     notify.Sink
	Progress ProgressTracker
}

// Config contains runtime options for Timer.
type Config struct {
	TickInterval      time.Duration
	IdleCheckInterval time.Duration
	Now               func() time.Time
	Scheduler         Scheduler
	Logger            *slog.Logger
}

// Timer drives the state machine from a single cancellable tick source.
type Timer struct {
	mu            sync.Mutex
	settings      model.TimerSettings
	state         State
	options       Config
	collaborators Collaborators
	logger        *slog.Logger

	stopTicking func()
	generation  uint64

	idleChecker   IdleChecker
	idleEnabled   bool
	idleAfter     time.Duration
	lastIdleCheck time.Time

	events []chan Event
	closed bool
}

// New creates a Timer in its initial state.
func New(settings model.TimerSettings, collaborators Collaborators, options Config) *Timer {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.IdleCheckInterval <= 0 {
		options.IdleCheckInterval = 5 * time.Second
	}
	if options.Now == nil {
		options.Now = time.Now
	}
	if options.Scheduler == nil {
		options.Scheduler = TickerScheduler{}
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	if collaborators.Sink == nil {
		collaborators.Sink = notify.Nop{}
	}

	settings = settings.Normalize()
	return &Timer{
		settings:      settings,
		state:         InitialState(settings),
		options:       options,
		collaborators: collaborators,
		logger:        options.Logger,
	}
}

// State returns a snapshot of the countdown.
func (timer *Timer) State() State {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.state
}

// Settings returns the settings in force.
func (timer *Timer) Settings() model.TimerSettings {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.settings
}

// Subscribe registers a new observer channel. Slow observers miss events.
func (timer *Timer) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	timer.mu.Lock()
	defer timer.mu.Unlock()
	if timer.closed {
		close(ch)
		return ch
	}
	timer.events = append(timer.events, ch)
	return ch
}

// SetIdleChecker injects an idle checker.
func (timer *Timer) SetIdleChecker(checker IdleChecker) {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	timer.idleChecker = checker
}

// SetIdlePause enables pausing an active work session after the given idle time.
func (timer *Timer) SetIdlePause(enabled bool, after time.Duration) {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	timer.idleEnabled = enabled && after > 0
	timer.idleAfter = after
	timer.lastIdleCheck = time.Time{}
}

// Start begins or resumes the countdown.
func (timer *Timer) Start() { timer.apply(CommandStart) }

// Pause stops the countdown, counting an interruption in work mode.
func (timer *Timer) Pause() { timer.apply(CommandPause) }

// Reset returns to the first work session.
func (timer *Timer) Reset() { timer.apply(CommandReset) }

// Skip jumps to the next mode without completion credit. Leaving a work
// session always records an interruption, even when it was already paused, so
// pausing and then skipping the same session counts twice.
func (timer *Timer) Skip() { timer.apply(CommandSkip) }

// Tick advances the countdown by one second. It is exported for external
// schedulers; the built-in tick source calls it internally.
func (timer *Timer) Tick() { timer.apply(CommandTick) }

// Toggle pauses an active timer and starts an inactive one.
func (timer *Timer) Toggle() {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	if timer.state.IsActive {
		timer.applyLocked(CommandPause)
		return
	}
	timer.applyLocked(CommandStart)
}

// UpdateSettings replaces the settings and restarts the current mode at its
// new full length, stopped.
func (timer *Timer) UpdateSettings(settings model.TimerSettings) {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	timer.settings = settings.Normalize()
	timer.applyLocked(CommandUpdateSettings)
}

// Close releases the tick source and closes observers. The timer must not be
// used afterwards.
func (timer *Timer) Close() {
	timer.mu.Lock()
	if timer.closed {
		timer.mu.Unlock()
		return
	}
	timer.closed = true
	timer.stopTickingLocked()
	timer.state.IsActive = false
	events := timer.events
	timer.events = nil
	timer.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (timer *Timer) apply(command Command) {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	timer.applyLocked(command)
}

func (timer *Timer) applyLocked(command Command) {
	if timer.closed {
		return
	}
	now := timer.options.Now()
	previous := timer.state
	next, effects := Transition(previous, timer.settings, command, now)

	for _, effect := range effects {
		timer.dispatchLocked(effect, next, now)
	}
	timer.state = next

	switch {
	case !previous.IsActive && next.IsActive:
		timer.startTickingLocked()
	case previous.IsActive && !next.IsActive:
		timer.stopTickingLocked()
	}

	if command == CommandTick && previous.Mode == next.Mode && previous.CurrentSession == next.CurrentSession && next.IsActive {
		timer.emitLocked(Event{Type: EventTick, State: next, Mode: next.Mode, Session: next.CurrentSession, At: now})
		return
	}
	if previous != next {
		timer.emitLocked(Event{Type: EventStateChange, State: next, Mode: next.Mode, Session: next.CurrentSession, At: now})
	}
}

func (timer *Timer) dispatchLocked(effect Effect, next State, now time.Time) {
	switch effect.Kind {
	case EffectInterruption:
		timer.logger.Debug("work session interrupted", "session", effect.Session)
		if timer.collaborators.Stats != nil {
			timer.collaborators.Stats.RecordInterruption()
		}
		timer.emitLocked(Event{Type: EventInterrupted, State: next, Mode: effect.Mode, Session: effect.Session, At: now})

	case EffectCompletion:
		timer.logger.Info("work session completed", "session", effect.Session, "minutes", effect.Minutes)
		if timer.collaborators.Stats != nil {
			timer.collaborators.Stats.RecordSessionCompletion(effect.Minutes)
		}
		if timer.collaborators.Progress != nil {
			timer.collaborators.Progress.WorkCompleted()
		}

	case EffectExpired:
		timer.collaborators.Sink.Notify(effect.Signal)
		timer.emitLocked(Event{
			Type:    EventCompleted,
			State:   next,
			Mode:    effect.Mode,
			Session: effect.Session,
			Minutes: effect.Minutes,
			Message: completionMessage(effect),
			At:      now,
		})

	case EffectSkipped:
		timer.logger.Debug("countdown skipped", "mode", effect.Mode, "next", effect.NextMode)
		timer.emitLocked(Event{Type: EventSkipped, State: next, Mode: effect.Mode, Session: effect.Session, At: now})
	}
}

func (timer *Timer) startTickingLocked() {
	timer.stopTickingLocked()
	timer.generation++
	generation := timer.generation
	timer.lastIdleCheck = time.Time{}
	timer.stopTicking = timer.options.Scheduler.Every(timer.options.TickInterval, func() {
		timer.tickFrom(generation)
	})
}

func (timer *Timer) stopTickingLocked() {
	if timer.stopTicking == nil {
		return
	}
	timer.stopTicking()
	timer.stopTicking = nil
	timer.generation++
}

// tickFrom drops ticks delivered by a tick source that has since been stopped.
func (timer *Timer) tickFrom(generation uint64) {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	if generation != timer.generation || !timer.state.IsActive {
		return
	}
	if timer.handleIdleCheckLocked() {
		return
	}
	timer.applyLocked(CommandTick)
}

// handleIdleCheckLocked pauses an active work session once the user has been
// idle long enough. It reports whether the timer was paused.
func (timer *Timer) handleIdleCheckLocked() bool {
	if !timer.idleEnabled || timer.idleChecker == nil || timer.state.Mode != model.ModeWork {
		return false
	}
	now := timer.options.Now()
	if !timer.lastIdleCheck.IsZero() && now.Sub(timer.lastIdleCheck) < timer.options.IdleCheckInterval {
		return false
	}
	timer.lastIdleCheck = now

	idleDuration, err := timer.idleChecker.IdleDuration()
	if err != nil {
		if errors.Is(err, ErrIdleUnsupported) {
			timer.idleEnabled = false
		}
		timer.logger.Warn("idle check", "error", err)
		timer.emitLocked(Event{
			Type:    EventIdleError,
			State:   timer.state,
			Mode:    timer.state.Mode,
			Session: timer.state.CurrentSession,
			Message: err.Error(),
			At:      now,
		})
		return false
	}
	if idleDuration < timer.idleAfter {
		return false
	}

	timer.logger.Info("pausing idle work session", "idle", idleDuration)
	timer.applyLocked(CommandPause)
	timer.emitLocked(Event{
		Type:    EventIdlePause,
		State:   timer.state,
		Mode:    timer.state.Mode,
		Session: timer.state.CurrentSession,
		Message: "paused after inactivity",
		At:      now,
	})
	return true
}

func (timer *Timer) emitLocked(event Event) {
	for _, ch := range timer.events {
		select {
		case ch <- event:
		default:
		}
	}
}

// TickerScheduler runs fn on a time.Ticker in its own goroutine.
type TickerScheduler struct{}

// Every starts the ticker loop.
func (TickerScheduler) Every(interval time.Duration, fn func()) func() {
	stopCh := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(stopCh) })
	}
}
