package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gamestore/internal/models"
)

type DateFormat string

const (
	FormatISO8601     DateFormat = "2006-01-02T15:04:05Z07:00"
	FormatISO8601Date DateFormat = "2006-01-02"
	FormatUSDate      DateFormat = "01/02/2006"
	FormatDotDate     DateFormat = "02.01.2006"
	FormatUnixTime    DateFormat = "unix"
	FormatMonthDay    DateFormat = "January 2, 2006"
	FormatShortMonth  DateFormat = "Jan 2, 2006"
	FormatYearMonth   DateFormat = "2006-01"
)

var yearMonthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// DateValidator recognises the date spellings accepted by release-date search bounds.
type DateValidator struct {
	supportedFormats []DateFormat
}

type ValidationResult struct {
	IsValid        bool
	DetectedFormat DateFormat
	ParsedTime     time.Time
	OriginalValue  string
}

func NewDateValidator() *DateValidator {
	return &DateValidator{
		supportedFormats: []DateFormat{
			FormatISO8601,
			FormatISO8601Date,
			FormatUSDate,
			FormatDotDate,
			FormatMonthDay,
			FormatShortMonth,
			FormatYearMonth,
		},
	}
}

func (dv *DateValidator) ValidateAndConvert(input string) ValidationResult {
	result := ValidationResult{OriginalValue: input}

	input = strings.TrimSpace(input)
	if input == "" {
		return result
	}

	if unixTime, err := strconv.ParseInt(input, 10, 64); err == nil {
		if unixTime > 0 && unixTime < 4102444800 { // 1970-2100
			result.IsValid = true
			result.DetectedFormat = FormatUnixTime
			result.ParsedTime = time.Unix(unixTime, 0).UTC()
		}
		return result
	}

	for _, format := range dv.supportedFormats {
		parsedTime, err := time.Parse(string(format), input)
		if err != nil {
			continue
		}
		if format == FormatYearMonth && !yearMonthPattern.MatchString(input) {
			continue
		}

		result.IsValid = true
		result.DetectedFormat = format
		result.ParsedTime = parsedTime
		return result
	}

	return result
}

func (dv *DateValidator) GetSupportedFormats() []DateFormat {
	return dv.supportedFormats
}

// ParseDate parses a release-date bound in any supported format.
func ParseDate(input string) (time.Time, error) {
	result := NewDateValidator().ValidateAndConvert(input)
	if !result.IsValid {
		return time.Time{}, fmt.Errorf("%w: unrecognised date %q", models.ErrInvalidArgument, input)
	}
	return result.ParsedTime, nil
}
