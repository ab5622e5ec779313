package config

import (
	"os"
	"strconv"
	"strings"

	"langtrends/internal/errors"
)

// Defaults matching the published report workbook
const (
	DefaultReportFile    = "duolingo_language_report_2020_2025.xlsx"
	DefaultDataSheet     = "Data by country"
	DefaultOverviewSheet = "Overview"
	DefaultHeaderOffset  = 1
	DefaultOutputDir     = "out"
	DefaultTopN          = 5
)

// Config represents the complete application configuration
type Config struct {
	Source SourceConfig
	Output OutputConfig
	Export ExportConfig
	Log    LogConfig
}

// SourceConfig describes where the report workbook is and how it is laid out
type SourceConfig struct {
	File          string
	DataSheet     string
	OverviewSheet string
	// HeaderOffset is the number of banner rows above the header row of the data sheet.
	HeaderOffset int
}

// OutputConfig holds file output settings
type OutputConfig struct {
	Dir          string
	TopN         int
	RenderCharts bool
	ExportXLSX   bool
	Summary      bool
}

// ExportConfig holds the optional SQL export target
type ExportConfig struct {
	DBDriver string
	DBDSN    string
}

// Enabled reports whether a SQL export is configured
func (c ExportConfig) Enabled() bool {
	return c.DBDSN != ""
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Source: SourceConfig{
			File:          getEnvOrDefault("REPORT_FILE", DefaultReportFile),
			DataSheet:     getEnvOrDefault("DATA_SHEET", DefaultDataSheet),
			OverviewSheet: getEnvOrDefault("OVERVIEW_SHEET", DefaultOverviewSheet),
			HeaderOffset:  getEnvIntOrDefault("HEADER_OFFSET", DefaultHeaderOffset),
		},
		Output: OutputConfig{
			Dir:          getEnvOrDefault("OUTPUT_DIR", DefaultOutputDir),
			TopN:         getEnvIntOrDefault("TOP_N", DefaultTopN),
			RenderCharts: getEnvBoolOrDefault("RENDER_CHARTS", true),
			ExportXLSX:   getEnvBoolOrDefault("EXPORT_XLSX", true),
			Summary:      getEnvBoolOrDefault("WRITE_SUMMARY", true),
		},
		Export: ExportConfig{
			DBDriver: getEnvOrDefault("EXPORT_DB_DRIVER", "sqlite"),
			DBDSN:    os.Getenv("EXPORT_DB_DSN"),
		},
		Log: LogConfig{
			Level: getEnvOrDefault("LOG_LEVEL", "INFO"),
		},
	}

	if err := Validate(cfg); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

// Validate checks field values that would only fail later, mid-run
func Validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Source.File) == "" {
		return errors.ConfigInvalid("REPORT_FILE is required")
	}
	if cfg.Source.DataSheet == "" {
		return errors.ConfigInvalid("DATA_SHEET cannot be empty")
	}
	if cfg.Source.HeaderOffset < 0 {
		return errors.ConfigInvalid("HEADER_OFFSET cannot be negative")
	}
	if cfg.Output.Dir == "" {
		return errors.ConfigInvalid("OUTPUT_DIR cannot be empty")
	}
	if cfg.Output.TopN < 0 {
		return errors.ConfigInvalid("TOP_N cannot be negative")
	}
	if cfg.Export.Enabled() {
		switch cfg.Export.DBDriver {
		case "sqlite", "postgres":
		default:
			return errors.ConfigInvalid("EXPORT_DB_DRIVER must be sqlite or postgres, got " + cfg.Export.DBDriver)
		}
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
