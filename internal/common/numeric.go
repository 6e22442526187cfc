package common

import (
	"math"
	"strconv"
	"strings"
)

// ParseAmount converts a decimal-as-string value into a float64. Unparseable
// input, NaN and infinities all collapse to 0 so that a malformed price or
// discount never poisons a computed total.
func ParseAmount(value string) float64 {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0
	}
	return Sanitize(parsed)
}

// Sanitize normalises NaN and infinite values to 0.
func Sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// AtoiDefault converts the provided string to an integer falling back to the default when parsing fails.
func AtoiDefault(value string, def int) int {
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}
