package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full client configuration surface.
type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	Cache   CacheConfig
	Labels  LabelConfig
	Locale  LocaleConfig
	Sheets  SheetsConfig
}

// ServerConfig holds HTTP server related options for the web client.
type ServerConfig struct {
	Port string
}

// BackendConfig describes how to reach the inventory backend.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

// CacheConfig controls the short-lived query cache.
type CacheConfig struct {
	TTL           time.Duration
	SweepSchedule string
}

// LabelConfig holds label printing defaults.
type LabelConfig struct {
	DefaultFormat string
}

// LocaleConfig holds the default UI locale.
type LocaleConfig struct {
	Default string
}

// SheetsConfig contains configuration for the optional Google Sheets report
// export. The export is disabled when SpreadsheetID is empty.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	SheetRange      string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are acceptable when configuration comes from the
		// environment directly.
		_ = godotenv.Load()
	}

	backendTimeout, err := durationWithDefault("BACKEND_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}

	cacheTTL, err := durationWithDefault("CACHE_TTL", 30*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Backend: BackendConfig{
			BaseURL: getenvWithDefault("BACKEND_URL", "http://localhost:8000"),
			Timeout: backendTimeout,
		},
		Cache: CacheConfig{
			TTL:           cacheTTL,
			SweepSchedule: getenvWithDefault("CACHE_SWEEP_SCHEDULE", "@every 1m"),
		},
		Labels: LabelConfig{
			DefaultFormat: getenvWithDefault("LABEL_FORMAT", "38x21"),
		},
		Locale: LocaleConfig{
			Default: getenvWithDefault("APP_LOCALE", "ru"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEETS_REPORT_ID"),
			SheetRange:      getenvWithDefault("GOOGLE_SHEETS_REPORT_RANGE", "Devices!A:I"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch {
	case c.Backend.BaseURL == "":
		return errors.New("BACKEND_URL must be provided")
	case !strings.HasPrefix(c.Backend.BaseURL, "http://") && !strings.HasPrefix(c.Backend.BaseURL, "https://"):
		return fmt.Errorf("BACKEND_URL must be an http(s) URL, got %q", c.Backend.BaseURL)
	}

	if c.Backend.Timeout <= 0 {
		return errors.New("BACKEND_TIMEOUT must be positive")
	}

	if c.Cache.TTL <= 0 {
		return errors.New("CACHE_TTL must be positive")
	}

	if c.Labels.DefaultFormat == "" {
		return errors.New("LABEL_FORMAT must not be empty")
	}

	if c.Locale.Default != "ru" && c.Locale.Default != "en" {
		return fmt.Errorf("APP_LOCALE must be ru or en, got %q", c.Locale.Default)
	}

	// A spreadsheet ID without credentials is a configuration mistake.
	if c.Sheets.SpreadsheetID != "" && c.Sheets.CredentialsPath == "" {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided when GOOGLE_SHEETS_REPORT_ID is set")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func durationWithDefault(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration in %s: %w", key, err)
	}
	return d, nil
}
