package aggregate

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// numericRegex validates that a string is a valid numeric format after cleanup.
// Matches integers, decimals, and scientific notation.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// Number converts a cell value to a decimal.
// Strings may carry currency symbols, thousands separators and the
// accounting negative format "(123.45)". isInt reports whether the source
// had no fractional part or exponent.
func Number(v interface{}) (d decimal.Decimal, isInt bool, ok bool) {
	switch val := v.(type) {
	case int:
		return decimal.NewFromInt(int64(val)), true, true
	case int32:
		return decimal.NewFromInt(int64(val)), true, true
	case int64:
		return decimal.NewFromInt(val), true, true
	case float32:
		return decimal.NewFromFloat32(val), false, true
	case float64:
		return decimal.NewFromFloat(val), false, true
	case decimal.Decimal:
		return val, val.Equal(val.Truncate(0)), true
	case string:
		return parseNumber(val)
	default:
		return decimal.Zero, false, false
	}
}

func parseNumber(s string) (decimal.Decimal, bool, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false, false
	}

	// Detect negative accounting format "(123.45)"
	isNegative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		isNegative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	// Remove common currency symbols and thousands separators
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "€", "") // Euro
	s = strings.ReplaceAll(s, "£", "") // Pound
	s = strings.ReplaceAll(s, "₩", "") // Won
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	if isNegative {
		s = "-" + s
	}

	if !numericRegex.MatchString(s) {
		return decimal.Zero, false, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false, false
	}
	return d, !strings.ContainsAny(s, ".eE"), true
}
