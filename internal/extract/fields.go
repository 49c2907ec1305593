// Package extract turns the numbered-field text returned by the extraction
// model into work-order records.
//
// Parsing is best-effort and total: lines that do not look like numbered
// fields are skipped, and nothing in this package returns an error for
// malformed input.
package extract

import (
	"sort"
	"strconv"
	"strings"

	"github.com/Veraticus/work-order-flow/internal/model"
)

// FieldMap is a sparse, read-only mapping from field index to trimmed value.
// Indices that were not extracted are absent; there are no blank entries.
type FieldMap struct {
	values map[int]string
}

// NewFieldMap builds a FieldMap from an index→value map. Values are trimmed
// and blank values or non-positive indices are dropped.
func NewFieldMap(values map[int]string) FieldMap {
	fm := FieldMap{values: make(map[int]string, len(values))}
	for index, value := range values {
		fm.set(index, value)
	}
	return fm
}

// ParseFields parses text of the form "08. Service1: 325 DL", one field per
// line. Only the first colon separates label from value, so values may
// themselves contain colons. The label must start with an integer index,
// optionally followed by a period and a name; anything else is not a field
// line. When an index repeats, the last occurrence wins.
func ParseFields(text string) FieldMap {
	fm := FieldMap{values: make(map[int]string)}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		label, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}

		label = strings.TrimSpace(label)
		if before, _, hasPeriod := strings.Cut(label, "."); hasPeriod {
			label = strings.TrimSpace(before)
		}

		index, err := strconv.Atoi(label)
		if err != nil {
			// Prose inside a multi-line value, not a field.
			continue
		}

		fm.set(index, value)
	}

	return fm
}

func (f *FieldMap) set(index int, value string) {
	if index <= 0 {
		return
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	f.values[index] = value
}

// Get returns the value at index and whether it was extracted.
func (f FieldMap) Get(index int) (string, bool) {
	value, ok := f.values[index]
	return value, ok
}

// Value returns the value at index, or the placeholder when absent.
func (f FieldMap) Value(index int) string {
	if value, ok := f.values[index]; ok {
		return value
	}
	return model.Placeholder
}

// Present returns the value at index when it is extracted and is not the
// placeholder.
func (f FieldMap) Present(index int) (string, bool) {
	value, ok := f.values[index]
	if !ok || value == model.Placeholder {
		return "", false
	}
	return value, true
}

// Len returns the number of extracted fields.
func (f FieldMap) Len() int {
	return len(f.values)
}

// Indices returns the extracted indices in ascending order.
func (f FieldMap) Indices() []int {
	indices := make([]int, 0, len(f.values))
	for index := range f.values {
		indices = append(indices, index)
	}
	sort.Ints(indices)
	return indices
}
