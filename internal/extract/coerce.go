package extract

import (
	"math"
	"strconv"
	"strings"

	"github.com/Veraticus/work-order-flow/internal/model"
)

// hourSuffixes are the unit annotations written after hour counts on the form.
// Slash variants come first so the slash is removed with the word.
var hourSuffixes = []string{"/each", "each", "/man", "man"}

// CleanHours strips a trailing unit annotation ("10 each", "10 /man") from an
// hours value. Only known suffixes are removed.
func CleanHours(value string) string {
	value = strings.TrimSpace(value)
	for _, suffix := range hourSuffixes {
		if strings.HasSuffix(value, suffix) {
			return strings.TrimSpace(strings.TrimSuffix(value, suffix))
		}
	}
	return value
}

// ParseNumber coerces a quantity or hours value to a number. Blank,
// placeholder and non-numeric values yield nil.
func ParseNumber(value string) *float64 {
	value = strings.TrimSpace(value)
	if value == "" || value == model.Placeholder {
		return nil
	}

	n, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil
	}
	return &n
}

// ParseHours cleans unit suffixes from an hours value and coerces it.
func ParseHours(value string) *float64 {
	return ParseNumber(CleanHours(value))
}

// ParseYear coerces a year field. Two-digit years are taken as 20xx.
func ParseYear(value string) *int {
	value = strings.TrimSpace(value)
	if value == "" || value == model.Placeholder {
		return nil
	}

	year, err := strconv.Atoi(value)
	if err != nil || year < 0 {
		return nil
	}
	if year < 100 {
		year += 2000
	}
	return &year
}
