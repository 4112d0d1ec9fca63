package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestConfigLoadSave(t *testing.T) {
	// Use a temporary directory as the user's home directory
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir) // For Windows compatibility in tests

	// 1. Load with no existing file returns the defaults
	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error when loading missing config, got: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Fatalf("expected default config, got %+v", cfg)
	}
	if cfg.CalendarName != "XJTLU Timetable" || cfg.Timezone != "Asia/Shanghai" || cfg.MaxWeek != 16 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}

	// 2. Modify and save
	cfg.Week1 = "2024-02-26"
	cfg.CalendarName = "Spring 2024"
	cfg.MaxWeek = 14
	cfg.AccentColor = "205"

	if err := Save(cfg); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	configPath := filepath.Join(tempDir, ".gridcal.yaml")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Errorf("expected config file to be created at %s", configPath)
	}

	// 3. Load the saved file
	loadedCfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load existing config: %v", err)
	}
	if !reflect.DeepEqual(cfg, loadedCfg) {
		t.Errorf("loaded config does not match saved config.\nGot: %+v\nExpected: %+v", loadedCfg, cfg)
	}
}

func TestConfigPartialFileGetsDefaults(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir)

	configPath := filepath.Join(tempDir, ".gridcal.yaml")
	if err := os.WriteFile(configPath, []byte("week1: \"2025-09-15\"\ntz: Europe/London\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Timezone != "Europe/London" {
		t.Errorf("expected tz Europe/London, got %s", cfg.Timezone)
	}
	if cfg.MaxWeek != DefaultMaxWeek || cfg.Output != DefaultOutput {
		t.Errorf("expected defaults for unset fields, got %+v", cfg)
	}

	week1, err := cfg.Week1Date()
	if err != nil {
		t.Fatalf("unexpected week1 error: %v", err)
	}
	if !week1.Equal(time.Date(2025, time.September, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected week1 %v", week1)
	}
}

func TestConfigParseError(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir)

	// Write invalid YAML to the config file
	configPath := filepath.Join(tempDir, ".gridcal.yaml")
	if err := os.WriteFile(configPath, []byte("week1: [unclosed"), 0644); err != nil {
		t.Fatalf("failed to write invalid yaml: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Errorf("expected error when loading invalid yaml, got nil")
	}
}

func TestParseWeek1(t *testing.T) {
	if _, err := ParseWeek1(""); !errors.Is(err, ErrMissingWeek1) {
		t.Errorf("expected ErrMissingWeek1, got %v", err)
	}
	for _, bad := range []string{"2024/02/26", "26-02-2024", "2024-02-30", "monday"} {
		if _, err := ParseWeek1(bad); !errors.Is(err, ErrInvalidWeek1) {
			t.Errorf("ParseWeek1(%q): expected ErrInvalidWeek1, got %v", bad, err)
		}
	}

	d, err := ParseWeek1("2024-02-26")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Weekday() != time.Monday {
		t.Errorf("expected a Monday, got %s", d.Weekday())
	}
}

func TestSaveRejectsInvalidWeek1(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir)

	cfg := Default()
	cfg.Week1 = "next monday"
	if err := Save(cfg); !errors.Is(err, ErrInvalidWeek1) {
		t.Errorf("expected ErrInvalidWeek1, got %v", err)
	}
}
