package config

import (
	"errors"
	"fmt"
	"time"
)

// MinTickInterval is the shortest real-time tick period accepted.
const MinTickInterval = 10 * time.Millisecond

var (
	ErrEmptyAddr           = errors.New("addr is required")
	ErrInvalidTickInterval = fmt.Errorf("tick interval must be 0 (disabled) or >= %s", MinTickInterval)
	ErrInvalidVerbosity    = errors.New("verbosity must be between 0 and 4")
)

// Validate rejects settings the drivers cannot run with.
func Validate(cfg Config) error {
	if cfg.Addr == "" {
		return ErrEmptyAddr
	}
	if cfg.TickInterval < 0 || (cfg.TickInterval > 0 && cfg.TickInterval < MinTickInterval) {
		return fmt.Errorf("%w (got %s)", ErrInvalidTickInterval, cfg.TickInterval)
	}
	if cfg.Verbosity < 0 || cfg.Verbosity > 4 {
		return fmt.Errorf("%w (got %d)", ErrInvalidVerbosity, cfg.Verbosity)
	}
	return nil
}
