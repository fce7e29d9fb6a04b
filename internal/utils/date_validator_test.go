package utils

import (
	"testing"
	"time"

	"gamestore/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateValidator_ValidateAndConvert(t *testing.T) {
	validator := NewDateValidator()

	testCases := []struct {
		input          string
		shouldBeValid  bool
		expectedFormat DateFormat
	}{
		{"2023-01-15", true, FormatISO8601Date},
		{"01/15/2023", true, FormatUSDate},
		{"15.01.2023", true, FormatDotDate},
		{"1673827200", true, FormatUnixTime},
		{"2023-01-15T10:30:00Z", true, FormatISO8601},
		{"January 15, 2023", true, FormatMonthDay},
		{"Jan 15, 2023", true, FormatShortMonth},
		{"2023-01", true, FormatYearMonth},
		{"invalid-date", false, ""},
		{"13/32/2023", false, ""},
		{"-5", false, ""},
		{"", false, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := validator.ValidateAndConvert(tc.input)

			assert.Equal(t, tc.shouldBeValid, result.IsValid)
			if tc.shouldBeValid {
				assert.Equal(t, tc.expectedFormat, result.DetectedFormat)
				assert.False(t, result.ParsedTime.IsZero())
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), parsed)

	_, err = ParseDate("yesterday")
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}
