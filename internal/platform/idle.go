package platform

import (
	"time"

	"pomoflow/internal/core/timer"
)

// IdleProvider returns the duration since last user input. Platforms without an
// idle source return timer.ErrIdleUnsupported.
type IdleProvider interface {
	IdleDuration() (time.Duration, error)
}

var _ timer.IdleChecker = IdleProvider(nil)

// NewIdleProvider returns a platform-specific idle provider.
func NewIdleProvider() IdleProvider {
	return newIdleProvider()
}

// idleSince computes idle time from a 64-bit millisecond uptime and the 32-bit
// tick of the last input, which wraps every 49.7 days.
func idleSince(uptimeMillis uint64, lastInputTick uint32) time.Duration {
	elapsed := uint32(uptimeMillis) - lastInputTick
	return time.Duration(elapsed) * time.Millisecond
}
