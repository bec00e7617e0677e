package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseISODate(t *testing.T) {
	tests := []struct {
		name       string
		dateStr    string
		expectedOk bool
		expectedY  int
		expectedM  time.Month
		expectedD  int
	}{
		{"plain ISO date", "2024-01-05", true, 2024, time.January, 5},
		{"surrounding whitespace", "  2024-12-31 ", true, 2024, time.December, 31},
		{"impossible calendar date", "2024-02-31", false, 0, 0, 0},
		{"european format rejected", "05.01.2024", false, 0, 0, 0},
		{"date with time rejected", "2024-01-05 10:30:00", false, 0, 0, 0},
		{"empty string", "", false, 0, 0, 0},
		{"not a date", "yesterday", false, 0, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			date, err := ParseISODate(tc.dateStr)
			if tc.expectedOk {
				assert.NoError(t, err)
				assert.Equal(t, tc.expectedY, date.Year())
				assert.Equal(t, tc.expectedM, date.Month())
				assert.Equal(t, tc.expectedD, date.Day())
			} else {
				assert.Error(t, err)
			}
			assert.Equal(t, tc.expectedOk, IsISODate(tc.dateStr))
		})
	}
}
