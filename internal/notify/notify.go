// Package notify delivers best-effort completion signals (alerts and sounds).
package notify

import (
	"log/slog"
	"sync"
)

// Kind identifies which countdown finished.
type Kind string

const (
	WorkComplete  Kind = "workComplete"
	BreakComplete Kind = "breakComplete"
)

// Sink receives completion signals. Implementations must not block for long.
type Sink interface {
	Notify(kind Kind)
}

// PermissionRequester is implemented by sinks that need user consent first.
type PermissionRequester interface {
	RequestPermission() error
}

// Nop drops every signal.
type Nop struct{}

// Notify does nothing.
func (Nop) Notify(Kind) {}

// Recorder keeps every signal in memory.
type Recorder struct {
	mu    sync.Mutex
	kinds []Kind
}

// Notify appends kind.
func (recorder *Recorder) Notify(kind Kind) {
	recorder.mu.Lock()
	recorder.kinds = append(recorder.kinds, kind)
	recorder.mu.Unlock()
}

// Kinds returns the recorded signals in order.
func (recorder *Recorder) Kinds() []Kind {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	return append([]Kind(nil), recorder.kinds...)
}

// Safe wraps a sink so that a panicking implementation never reaches the caller.
func Safe(sink Sink, logger *slog.Logger) Sink {
	if sink == nil {
		return Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return safeSink{sink: sink, logger: logger}
}

type safeSink struct {
	sink   Sink
	logger *slog.Logger
}

func (safe safeSink) Notify(kind Kind) {
	defer func() {
		if recovered := recover(); recovered != nil {
			safe.logger.Warn("notification failed", "kind", kind, "panic", recovered)
		}
	}()
	safe.sink.Notify(kind)
}

func (safe safeSink) RequestPermission() error {
	return RequestPermission(safe.sink, safe.logger)
}

// RequestPermission asks sink for consent when it supports it. Failures are
// logged and returned for display; they never disable the sink.
func RequestPermission(sink Sink, logger *slog.Logger) (err error) {
	requester, ok := sink.(PermissionRequester)
	if !ok {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	defer func() {
		if recovered := recover(); recovered != nil {
			logger.Warn("notification permission request panicked", "panic", recovered)
			err = nil
		}
	}()
	if err := requester.RequestPermission(); err != nil {
		logger.Warn("notification permission", "error", err)
		return err
	}
	return nil
}

// Multi fans a signal out to every sink in order.
type Multi []Sink

// Notify forwards kind to each sink.
func (multi Multi) Notify(kind Kind) {
	for _, sink := range multi {
		sink.Notify(kind)
	}
}

// RequestPermission asks every sink that needs consent. The first error wins.
func (multi Multi) RequestPermission() error {
	var firstErr error
	for _, sink := range multi {
		requester, ok := sink.(PermissionRequester)
		if !ok {
			continue
		}
		if err := requester.RequestPermission(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
