// Package storage keeps pomoflow's three whole-record files (settings, tasks,
// focus statistics) and the session journal.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"pomoflow/internal/platform"
)

const (
	settingsFileName = "settings.yaml"
	tasksFileName    = "tasks.yaml"
	statsFileName    = "focus_stats.yaml"
	journalFileName  = "journal.db"
)

// FileStore reads and rewrites YAML records in a single directory. Every save
// replaces the whole file.
type FileStore struct {
	mu  sync.Mutex
	dir string
}

// NewFileStore returns a store rooted at dir. The directory is created lazily.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// ResolveDir returns <user config dir>/<appName>.
func ResolveDir(service platform.Service, appName string) (string, error) {
	configDir, err := service.GetConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName), nil
}

// Dir is the record directory.
func (store *FileStore) Dir() string {
	return store.dir
}

// JournalPath is where the session journal database lives.
func (store *FileStore) JournalPath() string {
	return filepath.Join(store.dir, journalFileName)
}

// readRecord decodes a YAML file into target. A missing file reports
// found=false with no error.
func (store *FileStore) readRecord(name string, target any) (found bool, err error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	rawData, err := os.ReadFile(filepath.Join(store.dir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(rawData, target); err != nil {
		return true, fmt.Errorf("parse %s: %w", name, err)
	}
	return true, nil
}

func (store *FileStore) writeRecord(name string, record any) error {
	serialized, err := yaml.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	if err := os.MkdirAll(store.dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	path := filepath.Join(store.dir, name)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}
