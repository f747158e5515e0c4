package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoneyOrZero(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"plain integer", "1500", 1500},
		{"decimal", "1234.56", 1234.56},
		{"negative", "-50.25", -50.25},
		{"thousands separator", "1,23,456.78", 123456.78},
		{"currency symbol", "₹2500", 2500},
		{"quoted", `"1000"`, 1000},
		{"surrounding spaces", "  42  ", 42},
		{"unparseable text", "abc", 0},
		{"empty", "", 0},
		{"partial number", "12abc", 0},
		{"zero", "0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseMoneyOrZero(tt.input))
		})
	}
}

func TestParseCellDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"2024-01-15", "2024-01-15", true},
		{"2024-01-15 00:00:00", "2024-01-15", true},
		{"15-01-2024", "2024-01-15", true},
		{"15/01/2024", "2024-01-15", true},
		{"2024-01-15T00:00:00Z", "2024-01-15", true},
		{"not a date", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseCellDate(tt.input)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, got.Format("2006-01-02"))
			}
		})
	}
}

func TestParseCellDateTrimsWhitespace(t *testing.T) {
	got, ok := ParseCellDate("  2024-03-01  ")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestRoundFloat(t *testing.T) {
	assert.Equal(t, 1.23, RoundFloat(1.2345, 2))
	assert.Equal(t, 1.24, RoundFloat(1.235, 2))
	assert.Equal(t, -2.5, RoundFloat(-2.499, 1))
}
