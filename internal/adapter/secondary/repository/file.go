package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"triggerzone/internal/adapter/wire"
	"triggerzone/internal/domain"
)

// FileScriptRepository implements domain.ScriptRepository using a JSON file.
// This is a secondary adapter.
type FileScriptRepository struct {
	path string
	mu   sync.Mutex
}

// NewFileScriptRepository creates a script repository backed by path.
func NewFileScriptRepository(path string) (*FileScriptRepository, error) {
	if path == "" {
		return nil, errors.New("path is required")
	}
	return &FileScriptRepository{path: path}, nil
}

// Path returns the backing file.
func (f *FileScriptRepository) Path() string {
	return f.path
}

// scriptFile represents the JSON structure on disk.
type scriptFile struct {
	Events []wire.Event `json:"events"`
}

// Load reads the script. A missing file is an empty script.
func (f *FileScriptRepository) Load() ([]domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read script: %w", err)
	}

	var script scriptFile
	if err := json.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("unmarshal script: %w", err)
	}

	events, err := wire.ToDomainEvents(script.Events)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", f.path, err)
	}
	return events, nil
}

// Save writes the script to disk atomically.
func (f *FileScriptRepository) Save(events []domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.MarshalIndent(scriptFile{Events: wire.FromEvents(events)}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal script: %w", err)
	}

	if dir := filepath.Dir(f.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create script dir: %w", err)
		}
	}

	// Atomic write
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write tmp: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("rename tmp: %w", err)
	}

	return nil
}
