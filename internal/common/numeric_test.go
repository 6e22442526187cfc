package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"plain decimal", "1234.50", 1234.5},
		{"integer", "500", 500},
		{"whitespace", "  42.5  ", 42.5},
		{"negative", "-10", -10},
		{"empty", "", 0},
		{"garbage", "12,000.00", 0},
		{"words", "free", 0},
		{"nan literal", "NaN", 0},
		{"infinity literal", "Inf", 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ParseAmount(tc.input))
		})
	}
}

func TestSanitize(t *testing.T) {
	require.Equal(t, 0.0, Sanitize(math.NaN()))
	require.Equal(t, 0.0, Sanitize(math.Inf(1)))
	require.Equal(t, 0.0, Sanitize(math.Inf(-1)))
	require.Equal(t, 12.5, Sanitize(12.5))
}

func TestAtoiDefault(t *testing.T) {
	require.Equal(t, 7, AtoiDefault("7", 3))
	require.Equal(t, 3, AtoiDefault("", 3))
	require.Equal(t, 3, AtoiDefault("x", 3))
}
