package platform

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomoflow/internal/core/timer"
)

func TestSlugName(t *testing.T) {
	assert.Equal(t, "pomoflow", slugName(""))
	assert.Equal(t, "pomo-flow", slugName("  Pomo Flow "))
}

func TestPortFromNameIsStableAndInRange(t *testing.T) {
	port := portFromName("pomoflow")
	assert.Equal(t, port, portFromName("pomoflow"))
	assert.GreaterOrEqual(t, port, 20000)
	assert.LessOrEqual(t, port, 39999)
}

func TestSingleInstanceHandoff(t *testing.T) {
	appName := fmt.Sprintf("pomoflow-test-%d", time.Now().UnixNano())
	guard, err := AcquireSingleInstance(appName)
	if err != nil {
		t.Skipf("port for %s unavailable: %v", appName, err)
	}
	t.Cleanup(func() { guard.Release() })

	shown := make(chan struct{}, 1)
	guard.Serve(func() { shown <- struct{}{} })

	_, err = AcquireSingleInstance(appName)
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	require.NoError(t, NotifyRunning(appName))
	select {
	case <-shown:
	case <-time.After(2 * time.Second):
		t.Fatal("running instance was not asked to show")
	}

	require.NoError(t, guard.Release())
	require.NoError(t, guard.Release())
}

func TestReleaseNilGuard(t *testing.T) {
	var guard *InstanceGuard
	assert.NoError(t, guard.Release())
	assert.Empty(t, guard.Address())
}

func TestInstanceRunning(t *testing.T) {
	appName := fmt.Sprintf("pomoflow-lock-%d", time.Now().UnixNano())
	assert.False(t, InstanceRunning(appName))

	guard, err := AcquireSingleInstance(appName)
	if err != nil {
		t.Skipf("port for %s unavailable: %v", appName, err)
	}
	t.Cleanup(func() { guard.Release() })

	assert.True(t, InstanceRunning(appName))
	require.NoError(t, guard.Release())
	assert.False(t, InstanceRunning(appName))
}

func TestIdleSinceHandlesTickWrap(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, idleSince(10_000, 8_500))

	uptime := uint64(1)<<32 + 200
	assert.Equal(t, 500*time.Millisecond, idleSince(uptime, 0xFFFFFFFF-299))
}

func TestParseIdleMillis(t *testing.T) {
	idle, err := parseIdleMillis([]byte("4200\n"))
	require.NoError(t, err)
	assert.Equal(t, 4200*time.Millisecond, idle)

	idle, err = parseIdleMillis([]byte("-5"))
	require.NoError(t, err)
	assert.Zero(t, idle)

	_, err = parseIdleMillis([]byte("idle"))
	assert.Error(t, err)
}

func TestParseHIDIdleTime(t *testing.T) {
	output := []byte(`+-o IOHIDSystem  <class IOHIDSystem, id 0x100000123>
    {
      "HIDIdleTimeDelta" = 0
      "HIDIdleTime" = 3250000000
    }
`)
	idle, err := parseHIDIdleTime(output)
	require.NoError(t, err)
	assert.Equal(t, 3250*time.Millisecond, idle)

	_, err = parseHIDIdleTime([]byte("+-o IOHIDSystem\n"))
	assert.ErrorIs(t, err, timer.ErrIdleUnsupported)
}

func TestRegistryArgs(t *testing.T) {
	assert.Equal(t,
		[]string{"add", registryRunKey, "/v", "pomoflow", "/t", "REG_SZ", "/d", `"C:\Program Files\pomoflow.exe"`, "/f"},
		registryAddArgs("pomoflow", `"C:\Program Files\pomoflow.exe"`))
	assert.Equal(t, []string{"delete", registryRunKey, "/v", "pomoflow", "/f"}, registryDeleteArgs("pomoflow"))
}
