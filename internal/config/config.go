// Package config provides configuration loading for cJSONLogger.
//
// Configuration is loaded from a YAML file under a restricted
// directory, then overridden by environment variables, with sensible
// defaults filling in whatever neither source sets.
package config

import (
	"fmt"

	"github.com/tononidis/cJSONLogger/internal/severity"
)

// Config holds the complete cJSONLogger configuration.
type Config struct {
	Threshold   string            `koanf:"threshold"`
	PrimaryPath string            `koanf:"primary_path"`
	Rotation    RotationConfig    `koanf:"rotation"`
	Diagnostics DiagnosticsConfig `koanf:"diagnostics"`
}

// RotationConfig tunes the rotation controller. A zero count falls
// back to the package defaults, which match the fixed thresholds the
// logger has always used.
type RotationConfig struct {
	MaxRecords       int  `koanf:"max_records"`
	MaxRetainedFiles int  `koanf:"max_retained_files"`
	Compress         bool `koanf:"compress"`
}

// SamplingConfig tunes the diagnostics logger's zap sampling core.
type SamplingConfig struct {
	Enabled    bool     `koanf:"enabled"`
	Tick       Duration `koanf:"tick"`
	Initial    int      `koanf:"initial"`
	Thereafter int      `koanf:"thereafter"`
}

// DiagnosticsConfig configures the library's own internal zap logger,
// used for reporting I/O failures and lifecycle transitions — never
// for the user-facing JSON tree itself.
type DiagnosticsConfig struct {
	Level    string         `koanf:"level"`
	Format   string         `koanf:"format"`
	Sampling SamplingConfig `koanf:"sampling"`
}

// DefaultMaxRecords and DefaultMaxRetainedFiles reproduce the fixed
// rotation thresholds the logger has always used; they are the
// fallback when a loaded config leaves the corresponding field unset.
const (
	DefaultMaxRecords       = 500
	DefaultMaxRetainedFiles = 5
)

// Default returns a Config with the library's built-in defaults:
// INFO threshold, a "cjsonlogger.json" primary path in the current
// working directory, uncompressed rotation at the fixed thresholds,
// and an info-level JSON diagnostics logger with sampling enabled.
func Default() *Config {
	return &Config{
		Threshold:   "INFO",
		PrimaryPath: "cjsonlogger.json",
		Rotation: RotationConfig{
			MaxRecords:       DefaultMaxRecords,
			MaxRetainedFiles: DefaultMaxRetainedFiles,
			Compress:         false,
		},
		Diagnostics: DiagnosticsConfig{
			Level:  "info",
			Format: "json",
			Sampling: SamplingConfig{
				Enabled:    true,
				Tick:       Duration(1e9), // 1s
				Initial:    100,
				Thereafter: 10,
			},
		},
	}
}

// applyDefaults fills in zero-valued fields left unset by a partial
// load — config files and env overrides are expected to be sparse.
func (c *Config) applyDefaults() {
	d := Default()
	if c.Threshold == "" {
		c.Threshold = d.Threshold
	}
	if c.PrimaryPath == "" {
		c.PrimaryPath = d.PrimaryPath
	}
	if c.Rotation.MaxRecords == 0 {
		c.Rotation.MaxRecords = d.Rotation.MaxRecords
	}
	if c.Rotation.MaxRetainedFiles == 0 {
		c.Rotation.MaxRetainedFiles = d.Rotation.MaxRetainedFiles
	}
	if c.Diagnostics.Level == "" {
		c.Diagnostics.Level = d.Diagnostics.Level
	}
	if c.Diagnostics.Format == "" {
		c.Diagnostics.Format = d.Diagnostics.Format
	}
	if c.Diagnostics.Sampling.Tick == 0 {
		c.Diagnostics.Sampling.Tick = d.Diagnostics.Sampling.Tick
	}
	if c.Diagnostics.Sampling.Initial == 0 {
		c.Diagnostics.Sampling.Initial = d.Diagnostics.Sampling.Initial
	}
	if c.Diagnostics.Sampling.Thereafter == 0 {
		c.Diagnostics.Sampling.Thereafter = d.Diagnostics.Sampling.Thereafter
	}
}

// Validate checks that c describes a usable logger configuration.
//
// Returns an error if:
//   - Threshold does not name a CRITICAL..DEBUG severity
//   - PrimaryPath is empty
//   - A rotation count is negative
//   - Diagnostics.Format is neither "json" nor "console"
func (c *Config) Validate() error {
	if _, err := severity.ParseLevel(c.Threshold); err != nil {
		return fmt.Errorf("config: threshold: %w", err)
	}
	if c.PrimaryPath == "" {
		return fmt.Errorf("config: primary_path must not be empty")
	}
	if c.Rotation.MaxRecords < 0 {
		return fmt.Errorf("config: rotation.max_records must not be negative")
	}
	if c.Rotation.MaxRetainedFiles < 0 {
		return fmt.Errorf("config: rotation.max_retained_files must not be negative")
	}
	switch c.Diagnostics.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: diagnostics.format must be json or console, got %q", c.Diagnostics.Format)
	}
	return nil
}
