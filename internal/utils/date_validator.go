package utils

import (
	"strconv"
	"strings"
	"time"
)

type DateFormat string

const (
	FormatISO8601     DateFormat = "2006-01-02T15:04:05Z07:00"
	FormatISO8601Date DateFormat = "2006-01-02"
	FormatUSDate      DateFormat = "01/02/2006"
	FormatUSDateTime  DateFormat = "01/02/2006 15:04:05"
	FormatRFC3339     DateFormat = "2006-01-02T15:04:05Z"
	FormatUnixTime    DateFormat = "unix"
)

type DateValidator struct {
	supportedFormats []DateFormat
}

type ValidationResult struct {
	IsValid        bool
	DetectedFormat DateFormat
	ParsedTime     time.Time
	OriginalValue  string
}

// NewDateValidator accepts the date shapes the record forms have been
// observed to send: ISO dates, RFC3339 timestamps, US dates and unix
// seconds.
func NewDateValidator() *DateValidator {
	return &DateValidator{
		supportedFormats: []DateFormat{
			FormatISO8601Date,
			FormatISO8601,
			FormatRFC3339,
			FormatUSDate,
			FormatUSDateTime,
		},
	}
}

func (dv *DateValidator) ValidateAndConvert(input string) ValidationResult {
	result := ValidationResult{
		IsValid:       false,
		OriginalValue: input,
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return result
	}

	// Unix timestamp first (integer seconds, 1970-2100)
	if unixTime, err := strconv.ParseInt(input, 10, 64); err == nil {
		if unixTime > 0 && unixTime < 4102444800 {
			result.IsValid = true
			result.DetectedFormat = FormatUnixTime
			result.ParsedTime = time.Unix(unixTime, 0).UTC()
			return result
		}
		return result
	}

	for _, format := range dv.supportedFormats {
		if parsed, err := time.Parse(string(format), input); err == nil {
			result.IsValid = true
			result.DetectedFormat = format
			result.ParsedTime = parsed.UTC()
			return result
		}
	}

	return result
}
