// Package validation parses date and time cells for Format coercions
package validation

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout is the canonical form of a coerced date
	DateLayout = "2006-01-02"
	// TimeLayout is the canonical form of a coerced time of day
	TimeLayout = "15:04:05"
)

var dateLayouts = []string{
	DateLayout,
	"2006/01/02",
	"2006.01.02",
	"20060102",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

var timeLayouts = []string{
	TimeLayout,
	"15:04",
}

// ParseDate parses a date in YYYY-MM-DD form. YYYY/MM/DD, YYYY.MM.DD,
// YYYYMMDD and timestamps are accepted too; a timestamp keeps its date part.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD (e.g., '2024-01-13')", value)
}

// ParseTime parses a time of day in HH:MM:SS or HH:MM form
func ParseTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q, expected HH:MM:SS or HH:MM (e.g., '14:30:00' or '14:30')", value)
}
