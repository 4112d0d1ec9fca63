package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultCalendarName = "XJTLU Timetable"
	DefaultTimezone     = "Asia/Shanghai"
	DefaultMaxWeek      = 16
	DefaultOutput       = "xjtlu_timetable.ics"
	DefaultPreviewCSV   = "parsed_timetable_preview.csv"

	week1Layout = "2006-01-02"
)

var (
	// ErrMissingWeek1 is returned when no week 1 Monday is configured.
	ErrMissingWeek1 = errors.New("week1 is required (YYYY-MM-DD)")
	// ErrInvalidWeek1 is returned when week1 is not a YYYY-MM-DD date.
	ErrInvalidWeek1 = errors.New("invalid week1 format, use YYYY-MM-DD")
)

// AppConfig holds all user-defined persistent settings
type AppConfig struct {
	Week1        string `yaml:"week1,omitempty"`
	CalendarName string `yaml:"calendar_name,omitempty"`
	Timezone     string `yaml:"tz,omitempty"`
	MaxWeek      int    `yaml:"max_week,omitempty"`
	Output       string `yaml:"output,omitempty"`
	PreviewCSV   string `yaml:"preview_csv,omitempty"`
	AccentColor  string `yaml:"accent_color,omitempty"`
}

// Default returns the configuration used when nothing has been saved.
func Default() *AppConfig {
	cfg := &AppConfig{}
	cfg.Normalize()
	return cfg
}

// Normalize fills zero values with defaults. Week1 has no default.
func (c *AppConfig) Normalize() {
	if c.CalendarName == "" {
		c.CalendarName = DefaultCalendarName
	}
	if c.Timezone == "" {
		c.Timezone = DefaultTimezone
	}
	if c.MaxWeek <= 0 {
		c.MaxWeek = DefaultMaxWeek
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.PreviewCSV == "" {
		c.PreviewCSV = DefaultPreviewCSV
	}
}

// Week1Date parses Week1 as the Monday of teaching week 1.
func (c *AppConfig) Week1Date() (time.Time, error) {
	return ParseWeek1(c.Week1)
}

// ParseWeek1 parses a YYYY-MM-DD date.
func ParseWeek1(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, ErrMissingWeek1
	}
	d, err := time.Parse(week1Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidWeek1, s)
	}
	return d, nil
}

// getConfigPath returns the absolute path to ~/.gridcal.yaml
func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".gridcal.yaml"), nil
}

// Load reads the application configuration from disk.
// Returns the defaults if the file does not exist.
func Load() (*AppConfig, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the application configuration back to disk.
func Save(cfg *AppConfig) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	if cfg.Week1 != "" {
		if _, err := ParseWeek1(cfg.Week1); err != nil {
			return err
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
