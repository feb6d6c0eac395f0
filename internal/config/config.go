// Package config provides configuration management for the QA gate pipeline.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrNoDefaultStep      = errors.New("process_steps.default is required")
	ErrMappingMissingKey  = errors.New("process_steps.mappings entries need both prefix and step")
	ErrInvalidZThreshold  = errors.New("outliers.z_score_threshold must be positive")
	ErrNoSensorHeaders    = errors.New("extraction.sensor_headers must not be empty")
	ErrNoFailureHeaders   = errors.New("extraction.failure_headers must not be empty")
	ErrInvalidThresholds  = errors.New("thresholds.yield_critical cannot exceed thresholds.yield_warning")
	ErrInvalidTopN        = errors.New("report top-N values must be at least 1")
	ErrMissingStoragePath = errors.New("storage.path is required")
	ErrInvalidLogLevel    = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Config represents the complete pipeline configuration.
type Config struct {
	Storage    StorageConfig    `yaml:"storage"`
	Logging    LoggingConfig    `yaml:"logging"`
	Process    ProcessConfig    `yaml:"process_steps"`
	Validation ValidationPolicy `yaml:"validation"`
	Outliers   OutlierConfig    `yaml:"outliers"`
	Extraction ExtractionConfig `yaml:"extraction"`
	Exclusions []string         `yaml:"excluded_failure_modes"`
	Thresholds ThresholdConfig  `yaml:"thresholds"`
	Report     ReportConfig     `yaml:"report"`
}

// StorageConfig locates the local record store.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// StepMapping maps a lot-code prefix to a canonical process step name.
type StepMapping struct {
	Prefix string `yaml:"prefix"`
	Step   string `yaml:"step"`
}

// ProcessConfig holds the lot-code classification table. Mapping order is
// priority order when prefixes overlap.
type ProcessConfig struct {
	Default        string        `yaml:"default"`
	Mappings       []StepMapping `yaml:"mappings"`
	InVitroMarkers []string      `yaml:"in_vitro_markers"`
}

// ValidationPolicy controls how quantity columns are cleaned.
type ValidationPolicy struct {
	AllowNegativeQuantities       bool `yaml:"allow_negative_quantities"`
	AllowRejectedGreaterThanStart bool `yaml:"allow_rejected_greater_than_start"`
}

// OutlierConfig controls dataset-relative outlier flagging.
type OutlierConfig struct {
	Enabled         bool    `yaml:"enabled"`
	ZScoreThreshold float64 `yaml:"z_score_threshold"`
}

// ExtractionConfig holds the header synonym lists used to resolve failure
// table columns. Lists are in priority order.
type ExtractionConfig struct {
	SensorHeaders  []string `yaml:"sensor_headers"`
	FailureHeaders []string `yaml:"failure_headers"`
}

// ThresholdConfig defines yield alert levels in percent.
type ThresholdConfig struct {
	YieldWarning  float64 `yaml:"yield_warning"`
	YieldCritical float64 `yaml:"yield_critical"`
}

// ReportConfig limits how many items the rendered report shows per section.
type ReportConfig struct {
	TopFailureModes int `yaml:"top_failure_modes"`
	TopAssignees    int `yaml:"top_assignees"`
}

// Default returns the built-in configuration matching the historical
// deployment. LoadConfig overlays a YAML file on top of these values.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{Path: "data/qagate.db"},
		Logging: LoggingConfig{Level: "info"},
		Process: ProcessConfig{
			Default: "Others",
			Mappings: []StepMapping{
				{Prefix: "LN-C", Step: "Final Inspection"},
				{Prefix: "LN-R", Step: "Outer Layer"},
				{Prefix: "LN-Q", Step: "Dispensing"},
				{Prefix: "LN-P", Step: "Screen Printing"},
			},
			InVitroMarkers: []string{"In Vitro", "In-vitro"},
		},
		Validation: ValidationPolicy{
			AllowNegativeQuantities:       false,
			AllowRejectedGreaterThanStart: false,
		},
		Outliers: OutlierConfig{
			Enabled:         true,
			ZScoreThreshold: 3.0,
		},
		Extraction: ExtractionConfig{
			SensorHeaders:  []string{"sensor id", "sensor", "sheet id", "sensor_id"},
			FailureHeaders: []string{"failure mode", "failure modes", "allocation"},
		},
		Exclusions: []string{
			"Handover",
			"18.1 Trial",
			"Biodot",
			"Investor",
			"Dry Run",
			"Unknown",
			"Pass",
			" ",
			"",
		},
		Thresholds: ThresholdConfig{
			YieldWarning:  85.0,
			YieldCritical: 75.0,
		},
		Report: ReportConfig{
			TopFailureModes: 20,
			TopAssignees:    10,
		},
	}
}

// LoadConfig loads configuration from a YAML file, overlaying the defaults.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Process.Default == "" {
		return ErrNoDefaultStep
	}

	for i, m := range c.Process.Mappings {
		if m.Prefix == "" || m.Step == "" {
			return fmt.Errorf("%w: mappings[%d]", ErrMappingMissingKey, i)
		}
	}

	if c.Outliers.Enabled && c.Outliers.ZScoreThreshold <= 0 {
		return ErrInvalidZThreshold
	}

	if len(c.Extraction.SensorHeaders) == 0 {
		return ErrNoSensorHeaders
	}

	if len(c.Extraction.FailureHeaders) == 0 {
		return ErrNoFailureHeaders
	}

	if c.Thresholds.YieldCritical > c.Thresholds.YieldWarning {
		return ErrInvalidThresholds
	}

	if c.Report.TopFailureModes < 1 || c.Report.TopAssignees < 1 {
		return ErrInvalidTopN
	}

	if c.Storage.Path == "" {
		return ErrMissingStoragePath
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// IsExcludedFailureMode reports whether a failure mode label is on the
// exclusion list and should be dropped from failure analysis.
func (c *Config) IsExcludedFailureMode(mode string) bool {
	for _, excluded := range c.Exclusions {
		if mode == excluded {
			return true
		}
	}

	return false
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Mappings: %d, Outliers: %v, Store: %s}",
		len(c.Process.Mappings),
		c.Outliers.Enabled,
		c.Storage.Path,
	)
}
