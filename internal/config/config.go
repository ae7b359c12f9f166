package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ListenAddr string `yaml:"listen_addr"`
	BaseURL    string `yaml:"base_url"`

	API struct {
		BaseURL string        `yaml:"base_url"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"api"`

	Session struct {
		Secret string `yaml:"secret"`
	} `yaml:"session"`

	Calendar struct {
		StartHour             int  `yaml:"start_hour"`
		EndHour               int  `yaml:"end_hour"`
		HourHeight            int  `yaml:"hour_height"`
		MinBlockHeight        int  `yaml:"min_block_height"`
		WeekShowInstantEvents bool `yaml:"week_show_instant_events"`
	} `yaml:"calendar"`

	Probe struct {
		Schedule string `yaml:"schedule"`
	} `yaml:"probe"`

	PrometheusEnabled bool     `yaml:"prometheus_enabled"`
	TrustedProxies    []string `yaml:"trusted_proxies"`
}

// Load builds the configuration from an optional YAML file (CORI_CONFIG_FILE)
// overlaid with environment variables. Environment always wins.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CORI_CONFIG_FILE"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.ListenAddr = getenvDefault("CORI_LISTEN_ADDR", cfg.ListenAddr)
	cfg.BaseURL = getenvDefault("CORI_BASE_URL", cfg.BaseURL)
	cfg.API.BaseURL = getenvDefault("CORI_API_BASE_URL", cfg.API.BaseURL)
	if v := os.Getenv("CORI_API_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("CORI_API_TIMEOUT: %w", err)
		}
		cfg.API.Timeout = d
	}
	cfg.Session.Secret = getenvDefault("CORI_SESSION_SECRET", cfg.Session.Secret)
	cfg.Calendar.StartHour = getenvInt("CORI_CALENDAR_START_HOUR", cfg.Calendar.StartHour)
	cfg.Calendar.EndHour = getenvInt("CORI_CALENDAR_END_HOUR", cfg.Calendar.EndHour)
	cfg.Calendar.HourHeight = getenvInt("CORI_CALENDAR_HOUR_HEIGHT", cfg.Calendar.HourHeight)
	cfg.Calendar.MinBlockHeight = getenvInt("CORI_CALENDAR_MIN_BLOCK_HEIGHT", cfg.Calendar.MinBlockHeight)
	cfg.Calendar.WeekShowInstantEvents = getenvBool("CORI_WEEK_SHOW_INSTANT_EVENTS", cfg.Calendar.WeekShowInstantEvents)
	cfg.Probe.Schedule = getenvDefault("CORI_PROBE_SCHEDULE", cfg.Probe.Schedule)
	cfg.PrometheusEnabled = getenvBool("CORI_PROMETHEUS_ENDPOINT_ENABLED", cfg.PrometheusEnabled)
	if proxies := getenvList("CORI_TRUSTED_PROXIES"); proxies != nil {
		cfg.TrustedProxies = proxies
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if len(cfg.TrustedProxies) == 0 {
		fmt.Println("WARNING: No CORI_TRUSTED_PROXIES configured. Cori Web will trust all proxies - Not recommended for public environments.")
	}

	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{}
	cfg.ListenAddr = ":8080"
	cfg.BaseURL = "http://localhost:8080"
	cfg.API.Timeout = 15 * time.Second
	cfg.Calendar.StartHour = 7
	cfg.Calendar.EndHour = 22
	cfg.Calendar.HourHeight = 72
	cfg.Calendar.MinBlockHeight = 48
	cfg.Probe.Schedule = "*/1 * * * *"
	return cfg
}

func (c *Config) validate() error {
	if c.API.BaseURL == "" {
		return errors.New("CORI_API_BASE_URL is required")
	}
	if c.Session.Secret == "" {
		return errors.New("CORI_SESSION_SECRET is required")
	}
	if len(c.Session.Secret) < 32 {
		return fmt.Errorf("CORI_SESSION_SECRET must be at least 32 characters long (got %d)", len(c.Session.Secret))
	}
	if c.Calendar.StartHour < 0 || c.Calendar.EndHour > 23 || c.Calendar.StartHour >= c.Calendar.EndHour {
		return fmt.Errorf("calendar hour range %d..%d is invalid", c.Calendar.StartHour, c.Calendar.EndHour)
	}
	if c.Calendar.HourHeight <= 0 || c.Calendar.MinBlockHeight <= 0 {
		return errors.New("calendar hour height and min block height must be positive")
	}
	return nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(v) {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return def
}

func getenvList(key string) []string {
	if v := os.Getenv(key); v != "" {
		var result []string
		for _, item := range strings.Split(v, ",") {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return nil
}
