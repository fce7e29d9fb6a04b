package utils

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"gamestore/internal/models"
)

// CleanUTF8 removes invalid UTF8 and NUL characters from a string.
// Returns the cleaned string and whether cleaning was needed.
func CleanUTF8(input string) (string, bool) {
	needsCleaning := strings.Contains(input, "\x00") || !utf8.ValidString(input)

	if !needsCleaning {
		return input, false
	}

	cleaned := strings.ToValidUTF8(input, "")
	cleaned = strings.ReplaceAll(cleaned, "\x00", "")

	return cleaned, true
}

// SplitFields splits a command line on whitespace. Double quotes group words, so
// `title="Game 1"` yields a single field title=Game 1.
func SplitFields(line string) ([]string, error) {
	fields := make([]string, 0)
	var current strings.Builder
	inQuotes := false
	hasField := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			hasField = true
		case unicode.IsSpace(r) && !inQuotes:
			if hasField {
				fields = append(fields, current.String())
				current.Reset()
				hasField = false
			}
		default:
			current.WriteRune(r)
			hasField = true
		}
	}

	if inQuotes {
		return nil, fmt.Errorf("%w: unterminated quote", models.ErrInvalidArgument)
	}
	if hasField {
		fields = append(fields, current.String())
	}
	return fields, nil
}
