package categorize

import (
	"regexp"
	"strings"

	"github.com/Veraticus/work-order-flow/internal/model"
)

// Values may start on the line after their marker, so leading whitespace
// includes newlines.
var (
	serviceLine  = regexp.MustCompile(`Service:\s*([^\n]*)`)
	locationLine = regexp.MustCompile(`Blocks/Lots/Units:\s*([^\n]*)`)
)

const (
	serviceMarker  = "Service:"
	locationMarker = "Blocks/Lots/Units:"
)

// blockBoundary separates service blocks. The split happens before the
// "Service:" marker so each block keeps its own marker.
const blockBoundary = "\n\nService:"

// ParseResponse extracts (label, locations) pairs from a categorization
// model's narrative output, in order of appearance.
//
// Blocks without a service line are skipped. A block without a locations
// line gets model.NotSpecified. Duplicates are kept; consolidation happens
// later.
func ParseResponse(text string) []model.CategoryPair {
	var pairs []model.CategoryPair
	for _, block := range splitBlocks(text) {
		m := serviceLine.FindStringSubmatch(block)
		if m == nil {
			continue
		}
		label := markerValue(m[1])
		if label == "" {
			continue
		}

		locations := model.NotSpecified
		if lm := locationLine.FindStringSubmatch(block); lm != nil {
			if v := markerValue(lm[1]); v != "" {
				locations = v
			}
		}
		pairs = append(pairs, model.CategoryPair{Label: label, Locations: locations})
	}
	return pairs
}

// markerValue trims a captured value. A value that is itself the next
// marker means the marker was empty.
func markerValue(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, serviceMarker) || strings.HasPrefix(s, locationMarker) {
		return ""
	}
	return s
}

func splitBlocks(text string) []string {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	var blocks []string
	for {
		i := strings.Index(text, blockBoundary)
		if i < 0 {
			break
		}
		blocks = append(blocks, text[:i])
		text = text[i+2:]
	}
	return append(blocks, text)
}
