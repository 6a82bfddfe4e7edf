// Package config loads gather run configuration from YAML files.
package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config describes a gather run.
type Config struct {
	// Tasks is the fan-out size N.
	Tasks int `yaml:"tasks"`

	// MaxWorkers caps how many tasks run concurrently.
	// A value <= 0 means runtime.NumCPU().
	MaxWorkers int `yaml:"max_workers"`

	// EventBuffer sizes the stream observer channels.
	EventBuffer int `yaml:"event_buffer"`

	// LogLevel is one of debug, info, warn, error, fatal.
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Tasks:       10,
		MaxWorkers:  runtime.NumCPU(),
		EventBuffer: 64,
		LogLevel:    "info",
	}
}

// Load reads a YAML configuration file. Fields absent from the file
// keep their Default values.
//
// A missing or unreadable file yields an explicit error carrying the
// cause for the caller to inspect, never a crash.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field ranges.
func (c Config) Validate() error {
	if c.Tasks < 0 {
		return fmt.Errorf("tasks must be >= 0, got %d", c.Tasks)
	}
	if c.EventBuffer < 0 {
		return fmt.Errorf("event_buffer must be >= 0, got %d", c.EventBuffer)
	}
	return nil
}
