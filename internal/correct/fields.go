package correct

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Veraticus/work-order-flow/internal/model"
	"github.com/agnivade/levenshtein"
)

var months = []string{
	"JANUARY", "FEBRUARY", "MARCH", "APRIL", "MAY", "JUNE",
	"JULY", "AUGUST", "SEPTEMBER", "OCTOBER", "NOVEMBER", "DECEMBER",
}

var monthAbbreviations = map[string]string{
	"JAN": "JANUARY", "FEB": "FEBRUARY", "MAR": "MARCH", "APR": "APRIL",
	"JUN": "JUNE", "JUL": "JULY", "AUG": "AUGUST", "SEP": "SEPTEMBER",
	"SEPT": "SEPTEMBER", "OCT": "OCTOBER", "NOV": "NOVEMBER", "DEC": "DECEMBER",
}

var projectPhase = regexp.MustCompile(`(?i)\bproject\s*/\s*phase\b`)

// Builder returns the known builder closest to raw, or raw upper-cased with
// whitespace collapsed when no known builder is similar enough.
func (c *Corrector) Builder(raw string) string {
	if isBlank(raw) {
		return model.Placeholder
	}
	key := collapse(strings.ToUpper(raw))
	if name, ok := c.builders[key]; ok {
		return name
	}

	best, bestScore := "", 0.0
	for _, known := range c.builderNames {
		if score := similarity(key, known); score > bestScore {
			best, bestScore = known, score
		}
	}
	if best != "" && bestScore >= c.similarity {
		return c.builders[best]
	}
	return key
}

// similarity is 1 minus the edit distance relative to the longer string.
func similarity(a, b string) float64 {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}

// Project removes the form's "Project/Phase" caption and collapses
// whitespace. Phase markers such as "PH 2" are kept.
func Project(raw string) string {
	if isBlank(raw) {
		return model.Placeholder
	}
	cleaned := collapse(projectPhase.ReplaceAllString(raw, " "))
	if cleaned == "" {
		return model.Placeholder
	}
	return cleaned
}

// Month expands abbreviations and month numbers to the upper-case month
// name. Values that are not a month are upper-cased and kept.
func Month(raw string) string {
	if isBlank(raw) {
		return model.Placeholder
	}
	key := strings.TrimSuffix(collapse(strings.ToUpper(raw)), ".")
	if full, ok := monthAbbreviations[key]; ok {
		return full
	}
	if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(months) {
		return months[n-1]
	}
	return key
}
