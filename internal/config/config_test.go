package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config failed validation: %v", err)
	}

	if cfg.Process.Default != "Others" {
		t.Errorf("Process.Default = %q, want Others", cfg.Process.Default)
	}

	if len(cfg.Process.Mappings) != 4 {
		t.Errorf("expected 4 step mappings, got %d", len(cfg.Process.Mappings))
	}

	if cfg.Outliers.ZScoreThreshold != 3.0 {
		t.Errorf("ZScoreThreshold = %v, want 3.0", cfg.Outliers.ZScoreThreshold)
	}

	if cfg.Validation.AllowNegativeQuantities || cfg.Validation.AllowRejectedGreaterThanStart {
		t.Error("validation policy should default to strict")
	}
}

func TestLoadConfig_Overlay(t *testing.T) {
	content := `
storage:
  path: /tmp/test.db
outliers:
  enabled: false
process_steps:
  default: Uncategorized
  mappings:
    - prefix: ZZ-
      step: Packaging
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned unexpected error: %v", err)
	}

	if cfg.Storage.Path != "/tmp/test.db" {
		t.Errorf("Storage.Path = %q, want /tmp/test.db", cfg.Storage.Path)
	}

	if cfg.Outliers.Enabled {
		t.Error("outliers should be disabled by the overlay")
	}

	if cfg.Process.Default != "Uncategorized" {
		t.Errorf("Process.Default = %q, want Uncategorized", cfg.Process.Default)
	}

	if len(cfg.Process.Mappings) != 1 || cfg.Process.Mappings[0].Step != "Packaging" {
		t.Errorf("mappings not replaced by overlay: %+v", cfg.Process.Mappings)
	}

	// Fields the overlay does not mention keep their defaults.
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}

	if len(cfg.Extraction.SensorHeaders) == 0 {
		t.Error("extraction defaults should survive the overlay")
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "missing default step",
			mutate:  func(c *Config) { c.Process.Default = "" },
			wantErr: ErrNoDefaultStep,
		},
		{
			name:    "mapping without prefix",
			mutate:  func(c *Config) { c.Process.Mappings[0].Prefix = "" },
			wantErr: ErrMappingMissingKey,
		},
		{
			name:    "zero z-score threshold",
			mutate:  func(c *Config) { c.Outliers.ZScoreThreshold = 0 },
			wantErr: ErrInvalidZThreshold,
		},
		{
			name:    "no sensor headers",
			mutate:  func(c *Config) { c.Extraction.SensorHeaders = nil },
			wantErr: ErrNoSensorHeaders,
		},
		{
			name:    "no failure headers",
			mutate:  func(c *Config) { c.Extraction.FailureHeaders = nil },
			wantErr: ErrNoFailureHeaders,
		},
		{
			name:    "critical above warning",
			mutate:  func(c *Config) { c.Thresholds.YieldCritical = 99 },
			wantErr: ErrInvalidThresholds,
		},
		{
			name:    "zero top-N",
			mutate:  func(c *Config) { c.Report.TopAssignees = 0 },
			wantErr: ErrInvalidTopN,
		},
		{
			name:    "missing storage path",
			mutate:  func(c *Config) { c.Storage.Path = "" },
			wantErr: ErrMissingStoragePath,
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: ErrInvalidLogLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsExcludedFailureMode(t *testing.T) {
	cfg := Default()

	for _, mode := range []string{"Handover", "Pass", "Unknown", ""} {
		if !cfg.IsExcludedFailureMode(mode) {
			t.Errorf("IsExcludedFailureMode(%q) = false, want true", mode)
		}
	}

	if cfg.IsExcludedFailureMode("Cracked") {
		t.Error("IsExcludedFailureMode(Cracked) = true, want false")
	}
}
