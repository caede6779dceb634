//go:build linux

package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutostartDesktopEntryLifecycle(t *testing.T) {
	configDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configDir)
	service := NewService()

	require.NoError(t, service.EnableAutostart("Pomo Flow", "/opt/pomo flow/pomoflow"))
	entryPath := filepath.Join(configDir, "autostart", "pomo-flow.desktop")
	content, err := os.ReadFile(entryPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), `Exec="/opt/pomo flow/pomoflow"`)
	assert.Contains(t, string(content), "Name=Pomo Flow")

	require.NoError(t, service.DisableAutostart("Pomo Flow"))
	_, err = os.Stat(entryPath)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, service.DisableAutostart("Pomo Flow"))
}

func TestEnableAutostartRejectsEmptyInput(t *testing.T) {
	service := NewService()
	assert.Error(t, service.EnableAutostart("", "/bin/true"))
	assert.Error(t, service.EnableAutostart("pomoflow", ""))
}
