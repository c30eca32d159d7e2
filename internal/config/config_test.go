package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, 500*time.Millisecond, cfg.Logging.SeqFlushInterval)
	assert.Empty(t, cfg.Logging.SeqURL)
	assert.Equal(t, 0, cfg.Input.Sheet)
	assert.Equal(t, 20, cfg.Report.PreviewRows)
	assert.Equal(t, "text", cfg.Report.Format)
}

func TestLoad_OverrideDefaults(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_ADD_SOURCE", "true")
	t.Setenv("SEQ_URL", "http://localhost:5341")
	t.Setenv("SEQ_FLUSH_INTERVAL", "2s")
	t.Setenv("RECORDLIB_SHEET", "2")
	t.Setenv("RECORDLIB_HEADER_ROW", "3")
	t.Setenv("RECORDLIB_PREVIEW_ROWS", "0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.AddSource)
	assert.Equal(t, "http://localhost:5341", cfg.Logging.SeqURL)
	assert.Equal(t, 2*time.Second, cfg.Logging.SeqFlushInterval)
	assert.Equal(t, 2, cfg.Input.Sheet)
	assert.Equal(t, 3, cfg.Input.HeaderRow)
	assert.Equal(t, 0, cfg.Report.PreviewRows)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name, key, value, want string
	}{
		{"bad integer", "RECORDLIB_SHEET", "first", "invalid integer"},
		{"bad duration", "SEQ_FLUSH_INTERVAL", "soon", "invalid duration"},
		{"bad bool", "LOG_ADD_SOURCE", "maybe", "invalid boolean"},
		{"bad level", "LOG_LEVEL", "verbose", "LOG_LEVEL"},
		{"negative header", "RECORDLIB_HEADER_ROW", "-1", "RECORDLIB_HEADER_ROW must be non-negative"},
		{"bad report format", "RECORDLIB_REPORT_FORMAT", "xml", "RECORDLIB_REPORT_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := &Config{
		Logging: LoggingConfig{Level: "loud", Format: "xml"},
		Report:  ReportConfig{Format: "text", PreviewRows: -1},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")
	assert.Contains(t, err.Error(), "LOG_FORMAT")
	assert.Contains(t, err.Error(), "RECORDLIB_PREVIEW_ROWS")
}
