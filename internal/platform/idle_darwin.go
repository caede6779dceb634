package platform

import (
	"fmt"
	"os/exec"
	"time"

	"pomoflow/internal/core/timer"
)

type idleProvider struct {
	ioregPath string
}

type unsupportedIdleProvider struct{}

func newIdleProvider() IdleProvider {
	path, err := exec.LookPath("ioreg")
	if err != nil {
		return unsupportedIdleProvider{}
	}
	return &idleProvider{ioregPath: path}
}

func (provider *idleProvider) IdleDuration() (time.Duration, error) {
	output, err := exec.Command(provider.ioregPath, "-c", "IOHIDSystem", "-d", "4").Output()
	if err != nil {
		return 0, fmt.Errorf("ioreg: %w", err)
	}
	return parseHIDIdleTime(output)
}

func (unsupportedIdleProvider) IdleDuration() (time.Duration, error) {
	return 0, timer.ErrIdleUnsupported
}
