package rentroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := map[string]int64{
		"2450":          245000,
		"2450.5":        245050,
		"$2,450.00":     245000,
		"2,450":         245000,
		"2.450,00":      245000,
		"2.450":         245000,
		"2450,75":       245075,
		"1.234.567,89":  123456789,
		"1,234,567.89":  123456789,
		"USD 3,100.00":  310000,
		"":              0,
		"  ":            0,
		"-150.00":       -15000,
	}

	for in, want := range tests {
		got, err := parseAmount(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := parseAmount("n/a")
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	want := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	for _, in := range []string{"2026-04-01", "04/01/2026", "4/1/2026", "04/01/26", "4/1/26"} {
		got, err := parseDate(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := parseDate("01.04.2026")
	assert.Error(t, err)
}
