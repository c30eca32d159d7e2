// Package config loads recordlib settings from environment variables,
// applying defaults and validating the result.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds all settings of the command line tool
type Config struct {
	Logging LoggingConfig
	Input   InputConfig
	Report  ReportConfig
}

// LoggingConfig controls the slog handlers
type LoggingConfig struct {
	// Level is one of debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`

	// AddSource adds file:line to every record
	AddSource bool `env:"LOG_ADD_SOURCE" default:"false"`

	// SeqURL enables shipping logs to a Seq server when set
	SeqURL string `env:"SEQ_URL"`

	// SeqFlushInterval is how often batched Seq events are sent
	SeqFlushInterval time.Duration `env:"SEQ_FLUSH_INTERVAL" default:"500ms"`
}

// InputConfig holds defaults for reading tables
type InputConfig struct {
	Sheet     int `env:"RECORDLIB_SHEET" default:"0"`
	HeaderRow int `env:"RECORDLIB_HEADER_ROW" default:"0"`
}

// ReportConfig holds defaults for printed output
type ReportConfig struct {
	// PreviewRows caps the rows printed by show; 0 prints all
	PreviewRows int `env:"RECORDLIB_PREVIEW_ROWS" default:"20"`

	// Format is the diff report format, text or json
	Format string `env:"RECORDLIB_REPORT_FORMAT" default:"text"`
}

// Validate checks every setting and reports all failures at once
func (c *Config) Validate() error {
	var errs []string

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}
	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}
	if c.Logging.SeqURL != "" && c.Logging.SeqFlushInterval <= 0 {
		errs = append(errs, "SEQ_FLUSH_INTERVAL must be positive when SEQ_URL is set")
	}

	if c.Input.Sheet < 0 {
		errs = append(errs, "RECORDLIB_SHEET must be non-negative")
	}
	if c.Input.HeaderRow < 0 {
		errs = append(errs, "RECORDLIB_HEADER_ROW must be non-negative")
	}

	if c.Report.PreviewRows < 0 {
		errs = append(errs, "RECORDLIB_PREVIEW_ROWS must be non-negative")
	}
	if !validFormats[strings.ToLower(c.Report.Format)] {
		errs = append(errs, fmt.Sprintf("RECORDLIB_REPORT_FORMAT (%q) must be one of: text, json", c.Report.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
