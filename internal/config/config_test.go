package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("CORI_API_BASE_URL", "http://api.internal:8000")
	t.Setenv("CORI_SESSION_SECRET", strings.Repeat("s", 32))
	t.Setenv("CORI_TRUSTED_PROXIES", "10.0.0.1")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want :8080", cfg.ListenAddr)
	}
	if cfg.API.Timeout != 15*time.Second {
		t.Errorf("API.Timeout = %v, want 15s", cfg.API.Timeout)
	}
	if cfg.Calendar.StartHour != 7 || cfg.Calendar.EndHour != 22 {
		t.Errorf("calendar hours = %d..%d, want 7..22", cfg.Calendar.StartHour, cfg.Calendar.EndHour)
	}
	if cfg.Calendar.HourHeight != 72 || cfg.Calendar.MinBlockHeight != 48 {
		t.Errorf("calendar sizing = %d/%d, want 72/48", cfg.Calendar.HourHeight, cfg.Calendar.MinBlockHeight)
	}
	if cfg.Calendar.WeekShowInstantEvents {
		t.Error("week view should omit instant events by default")
	}
}

func TestLoadRequiresAPIBaseURL(t *testing.T) {
	t.Setenv("CORI_API_BASE_URL", "")
	t.Setenv("CORI_SESSION_SECRET", strings.Repeat("s", 32))

	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail without CORI_API_BASE_URL")
	}
}

func TestLoadRejectsShortSessionSecret(t *testing.T) {
	t.Setenv("CORI_API_BASE_URL", "http://api.internal:8000")
	t.Setenv("CORI_SESSION_SECRET", "too-short")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should reject a session secret under 32 characters")
	}
}

func TestLoadRejectsInvertedHourRange(t *testing.T) {
	setRequired(t)
	t.Setenv("CORI_CALENDAR_START_HOUR", "22")
	t.Setenv("CORI_CALENDAR_END_HOUR", "7")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should reject start hour >= end hour")
	}
}

func TestLoadReadsYAMLFileWithEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cori.yaml")
	content := `
listen_addr: ":9090"
api:
  base_url: "http://from-yaml:8000"
  timeout: 5s
calendar:
  start_hour: 8
  end_hour: 20
  hour_height: 60
  min_block_height: 40
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	setRequired(t)
	t.Setenv("CORI_CONFIG_FILE", path)
	t.Setenv("CORI_API_BASE_URL", "http://from-env:8000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.ListenAddr != ":9090" {
		t.Errorf("ListenAddr = %q, want the YAML value :9090", cfg.ListenAddr)
	}
	if cfg.API.BaseURL != "http://from-env:8000" {
		t.Errorf("API.BaseURL = %q, environment must win over YAML", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 5*time.Second {
		t.Errorf("API.Timeout = %v, want the YAML 5s", cfg.API.Timeout)
	}
	if cfg.Calendar.HourHeight != 60 {
		t.Errorf("HourHeight = %d, want the YAML 60", cfg.Calendar.HourHeight)
	}
}
