package config

import (
	"os"
	"path/filepath"
)

// DefaultHistoryPath returns the readline history file used by the shell.
func DefaultHistoryPath() string {
	return filepath.Join(os.TempDir(), "triggerzone-shell.history")
}
