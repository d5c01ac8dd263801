// Package config loads the briefdeck configuration file. All fields are
// optional; missing values fall back to defaults so the tool works with no
// config file at all.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultAPIURL is the backend address used when none is configured.
	DefaultAPIURL = "http://localhost:8000"
	// DefaultPollInterval is the delay between job status fetches.
	DefaultPollInterval = 2 * time.Second
	// DefaultHealthInterval is the delay between backend health probes,
	// deliberately much slower than job polling.
	DefaultHealthInterval = 30 * time.Second
)

// Config holds user-tunable settings.
type Config struct {
	APIURL                string `yaml:"api_url"`
	PollIntervalSeconds   int    `yaml:"poll_interval_seconds"`
	HealthIntervalSeconds int    `yaml:"health_interval_seconds"`
	FocusMode             string `yaml:"focus_mode"`
}

// PollInterval returns the configured poll interval, or the default.
func (c *Config) PollInterval() time.Duration {
	if c.PollIntervalSeconds <= 0 {
		return DefaultPollInterval
	}
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// HealthInterval returns the configured health probe interval, or the default.
func (c *Config) HealthInterval() time.Duration {
	if c.HealthIntervalSeconds <= 0 {
		return DefaultHealthInterval
	}
	return time.Duration(c.HealthIntervalSeconds) * time.Second
}

// DefaultPath returns the conventional config file location, or "" when the
// user config directory cannot be resolved.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "briefdeck", "config.yaml")
}

// Load reads the config file at path. A missing file is not an error: the
// zero config (all defaults) is returned. The BRIEFDECK_API_URL environment
// variable overrides api_url from any source.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fall through to defaults
		case err != nil:
			return nil, fmt.Errorf("reading config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	if env := os.Getenv("BRIEFDECK_API_URL"); env != "" {
		cfg.APIURL = env
	}
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	return cfg, nil
}
