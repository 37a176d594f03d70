package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the driver settings shared by the CLI, the shell and the HTTP server.
// Game state is never part of it; every run starts from the initial state.
type Config struct {
	Addr         string        `env:"TRIGGERZONE_ADDR" envDefault:"127.0.0.1:7070"`
	TickInterval time.Duration `env:"TRIGGERZONE_TICK_INTERVAL" envDefault:"100ms"`
	Prompt       string        `env:"TRIGGERZONE_PROMPT" envDefault:"zone> "`
	HistoryFile  string        `env:"TRIGGERZONE_HISTORY_FILE"`
	Verbosity    int           `env:"TRIGGERZONE_VERBOSITY" envDefault:"0"`
}

// Load reads the configuration from the environment, filling in defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.HistoryFile == "" {
		cfg.HistoryFile = DefaultHistoryPath()
	}
	return cfg, nil
}
