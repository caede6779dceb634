package platform

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"pomoflow/internal/core/timer"
)

var errNoHIDIdleTime = fmt.Errorf("HIDIdleTime not found: %w", timer.ErrIdleUnsupported)

// parseIdleMillis reads xprintidle output: milliseconds since the last input.
func parseIdleMillis(output []byte) (time.Duration, error) {
	value := strings.TrimSpace(string(output))
	idleMillis, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse idle milliseconds: %w", err)
	}
	if idleMillis < 0 {
		idleMillis = 0
	}
	return time.Duration(idleMillis) * time.Millisecond, nil
}

// parseHIDIdleTime finds the first `"HIDIdleTime" = <ns>` line in ioreg output.
func parseHIDIdleTime(output []byte) (time.Duration, error) {
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, `"HIDIdleTime"`) {
			continue
		}
		_, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		nanos, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse HIDIdleTime: %w", err)
		}
		return time.Duration(nanos), nil
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}
	return 0, errNoHIDIdleTime
}
