package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"MarketDash/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Backend struct {
		BaseURL   string        `yaml:"base_url"`
		StreamURL string        `yaml:"stream_url"`
		Timeout   time.Duration `yaml:"timeout"`
		Timezone  string        `yaml:"timezone"`
	} `yaml:"backend"`
	Dashboard struct {
		DefaultRange   string        `yaml:"default_range"`
		PollInterval   time.Duration `yaml:"poll_interval"`
		ReconnectDelay time.Duration `yaml:"reconnect_delay"`
		MaxPoints      int           `yaml:"max_points"`
	} `yaml:"dashboard"`
	Log struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"log"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("MARKETDASH_BASE_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := os.Getenv("MARKETDASH_STREAM_URL"); v != "" {
		cfg.Backend.StreamURL = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("MARKETDASH_POLL_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("MARKETDASH_POLL_INTERVAL: %w", err)
		}
		cfg.Dashboard.PollInterval = d
	}
	if v := os.Getenv("MARKETDASH_SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("MARKETDASH_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	// Defaults
	if cfg.Backend.BaseURL == "" {
		cfg.Backend.BaseURL = "http://127.0.0.1:5000"
	}
	if cfg.Backend.StreamURL == "" {
		cfg.Backend.StreamURL = cfg.Backend.BaseURL
	}
	if cfg.Backend.Timeout == 0 {
		cfg.Backend.Timeout = 30 * time.Second
	}
	if cfg.Dashboard.DefaultRange == "" {
		cfg.Dashboard.DefaultRange = string(model.RangeMonth)
	}
	if cfg.Dashboard.PollInterval == 0 {
		cfg.Dashboard.PollInterval = 7 * time.Second
	}
	if cfg.Dashboard.ReconnectDelay == 0 {
		cfg.Dashboard.ReconnectDelay = 2 * time.Second
	}
	if cfg.Dashboard.MaxPoints == 0 {
		cfg.Dashboard.MaxPoints = 390
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.File == "" {
		cfg.Log.File = "logs/marketdash.log"
	}

	return cfg, nil
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url is required")
	}
	if c.Dashboard.PollInterval < time.Second {
		return fmt.Errorf("dashboard.poll_interval must be at least 1s")
	}
	if c.Dashboard.ReconnectDelay <= 0 {
		return fmt.Errorf("dashboard.reconnect_delay must be positive")
	}
	if c.Dashboard.MaxPoints <= 0 {
		return fmt.Errorf("dashboard.max_points must be positive")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("backend.timezone: %w", err)
	}
	return nil
}

// Location returns the zone backend timestamps are read in.
func (c *Config) Location() (*time.Location, error) {
	if c.Backend.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Backend.Timezone)
}

// Range returns the default time range.
func (c *Config) Range() model.TimeRange {
	return model.TimeRange(c.Dashboard.DefaultRange)
}
