package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"MarketDash/internal/model"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend.BaseURL != "http://127.0.0.1:5000" || cfg.Backend.StreamURL != cfg.Backend.BaseURL {
		t.Errorf("unexpected backend defaults %+v", cfg.Backend)
	}
	if cfg.Dashboard.PollInterval != 7*time.Second {
		t.Errorf("expected 7s poll, got %s", cfg.Dashboard.PollInterval)
	}
	if cfg.Dashboard.MaxPoints != 390 {
		t.Errorf("expected 390 points, got %d", cfg.Dashboard.MaxPoints)
	}
	if cfg.Range() != model.RangeMonth {
		t.Errorf("expected month, got %s", cfg.Range())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `
backend:
  base_url: http://backend:5000
  timezone: America/New_York
dashboard:
  poll_interval: 10s
  default_range: day
database:
  sqlite_path: data/journal.db
`)
	t.Setenv("MARKETDASH_STREAM_URL", "http://stream:5001")
	t.Setenv("MARKETDASH_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend.BaseURL != "http://backend:5000" || cfg.Backend.StreamURL != "http://stream:5001" {
		t.Errorf("unexpected backend %+v", cfg.Backend)
	}
	if cfg.Dashboard.PollInterval != 10*time.Second {
		t.Errorf("expected 10s, got %s", cfg.Dashboard.PollInterval)
	}
	if cfg.Range() != model.RangeDay || cfg.Log.Level != "debug" || cfg.Database.SQLitePath != "data/journal.db" {
		t.Errorf("unexpected config %+v", cfg)
	}
	loc, err := cfg.Location()
	if err != nil || loc.String() != "America/New_York" {
		t.Errorf("unexpected location %v %v", loc, err)
	}
}

func TestLoad_BadEnvDuration(t *testing.T) {
	t.Setenv("MARKETDASH_POLL_INTERVAL", "soon")
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error")
	}
}

func TestValidate(t *testing.T) {
	cfg, _ := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	cfg.Dashboard.PollInterval = 100 * time.Millisecond
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for sub-second poll")
	}

	cfg, _ = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	cfg.Backend.Timezone = "Mars/Olympus"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown timezone")
	}
}
