// Package config describes the service configuration for the arm viewer.
// The chain geometry and home pose are fixed constants of the arm model
// and are deliberately not configurable here.
package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// DefaultBroadcastInterval coalesces pose broadcasts to roughly one per
// rendered frame at 60Hz.
const DefaultBroadcastInterval = 16 * time.Millisecond

// Config holds the service settings.
type Config struct {
	Port                int    `json:"port"`
	Theme               string `json:"theme"`
	BroadcastIntervalMS int    `json:"broadcast_interval_ms"`
}

// Default returns the configuration used when no file or flags are given.
func Default() *Config {
	return &Config{
		Port:                8080,
		Theme:               "dark",
		BroadcastIntervalMS: int(DefaultBroadcastInterval / time.Millisecond),
	}
}

// Validate ensures all parts of the config are valid, combining every
// problem found into one error.
func (c *Config) Validate() error {
	var err error
	if c.Port <= 0 || c.Port > 65535 {
		err = multierr.Combine(err, errors.Errorf("port %d out of range", c.Port))
	}
	if _, themeErr := ThemePalette(c.Theme); themeErr != nil {
		err = multierr.Combine(err, themeErr)
	}
	if c.BroadcastIntervalMS < 0 {
		err = multierr.Combine(err, errors.Errorf("broadcast_interval_ms %d must not be negative", c.BroadcastIntervalMS))
	}
	return err
}

// BroadcastInterval returns the coalescing interval as a duration.
func (c *Config) BroadcastInterval() time.Duration {
	return time.Duration(c.BroadcastIntervalMS) * time.Millisecond
}

// Read loads and validates a config file.
func Read(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read config file %q", path)
	}
	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "cannot parse config file %q", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config file %q", path)
	}
	return cfg, nil
}
