package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateAndConvert(t *testing.T) {
	validator := NewDateValidator()

	tests := []struct {
		name           string
		input          string
		wantValid      bool
		wantFormat     DateFormat
		wantParsedTime time.Time
	}{
		{
			name:           "iso date",
			input:          "2024-01-01",
			wantValid:      true,
			wantFormat:     FormatISO8601Date,
			wantParsedTime: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:           "rfc3339",
			input:          "2024-06-15T10:30:00Z",
			wantValid:      true,
			wantFormat:     FormatISO8601,
			wantParsedTime: time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			name:           "us date",
			input:          "06/15/2024",
			wantValid:      true,
			wantFormat:     FormatUSDate,
			wantParsedTime: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:           "us date time",
			input:          "06/15/2024 10:30:00",
			wantValid:      true,
			wantFormat:     FormatUSDateTime,
			wantParsedTime: time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			name:           "unix seconds",
			input:          "1718447400",
			wantValid:      true,
			wantFormat:     FormatUnixTime,
			wantParsedTime: time.Unix(1718447400, 0).UTC(),
		},
		{
			name:      "empty",
			input:     "",
			wantValid: false,
		},
		{
			name:      "whitespace only",
			input:     "   ",
			wantValid: false,
		},
		{
			name:      "garbage",
			input:     "not a date",
			wantValid: false,
		},
		{
			name:      "negative unix time",
			input:     "-100",
			wantValid: false,
		},
		{
			name:      "unix time past 2100",
			input:     "5000000000",
			wantValid: false,
		},
		{
			name:      "impossible calendar date",
			input:     "2024-13-45",
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validator.ValidateAndConvert(tt.input)

			assert.Equal(t, tt.wantValid, result.IsValid)
			assert.Equal(t, tt.input, result.OriginalValue)
			if tt.wantValid {
				assert.Equal(t, tt.wantFormat, result.DetectedFormat)
				assert.True(t, tt.wantParsedTime.Equal(result.ParsedTime),
					"parsed %v, want %v", result.ParsedTime, tt.wantParsedTime)
			}
		})
	}
}

func TestValidateAndConvert_TrimsInput(t *testing.T) {
	validator := NewDateValidator()

	result := validator.ValidateAndConvert("  2024-01-01  ")
	assert.True(t, result.IsValid)
	assert.Equal(t, FormatISO8601Date, result.DetectedFormat)
}
