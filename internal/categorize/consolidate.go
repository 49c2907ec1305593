package categorize

import (
	"strconv"
	"strings"

	"github.com/Veraticus/work-order-flow/internal/model"
)

// CategoryMap is an insertion-ordered label→locations mapping.
type CategoryMap struct {
	values map[string]string
	keys   []string
}

// NewCategoryMap returns an empty map.
func NewCategoryMap() *CategoryMap {
	return &CategoryMap{values: make(map[string]string)}
}

// Len returns the number of labels.
func (m *CategoryMap) Len() int { return len(m.keys) }

// Get returns the locations for label.
func (m *CategoryMap) Get(label string) (string, bool) {
	v, ok := m.values[label]
	return v, ok
}

// Labels returns labels in first-seen order.
func (m *CategoryMap) Labels() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Entries returns the pairs in first-seen order.
func (m *CategoryMap) Entries() []model.CategoryPair {
	out := make([]model.CategoryPair, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, model.CategoryPair{Label: k, Locations: m.values[k]})
	}
	return out
}

// Format renders the map as "Service:"/"Blocks/Lots/Units:" blocks separated
// by blank lines. An empty map renders as model.NoCategorization.
func (m *CategoryMap) Format() string {
	if len(m.keys) == 0 {
		return model.NoCategorization
	}
	var b strings.Builder
	for i, k := range m.keys {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString("Service: ")
		b.WriteString(k)
		b.WriteString("\nBlocks/Lots/Units: ")
		b.WriteString(m.values[k])
	}
	return b.String()
}

func (m *CategoryMap) set(label, locations string) {
	if _, ok := m.values[label]; !ok {
		m.keys = append(m.keys, label)
	}
	m.values[label] = locations
}

// Consolidate merges validated pairs by label. Repeated labels merge their
// locations; labels in the profile's never-consolidated family are kept apart
// under numbered keys instead.
func Consolidate(pairs []model.CategoryPair, p *Profile) *CategoryMap {
	m := NewCategoryMap()
	for _, pair := range pairs {
		existing, seen := m.values[pair.Label]
		switch {
		case !seen:
			m.set(pair.Label, pair.Locations)
		case p.NeverConsolidated(pair.Label):
			m.set(m.distinctKey(p.NeverConsolidatedPrefix()), pair.Locations)
		default:
			m.set(pair.Label, mergeLocations(existing, pair.Locations))
		}
	}
	return m
}

// distinctKey returns prefix followed by the smallest counter, starting at 1,
// that is not already a key.
func (m *CategoryMap) distinctKey(prefix string) string {
	for n := 1; ; n++ {
		key := prefix + strconv.Itoa(n)
		if _, taken := m.values[key]; !taken {
			return key
		}
	}
}

// mergeLocations combines two location strings. "Not specified" yields to
// anything concrete, and incoming text already contained in existing is not
// repeated.
func mergeLocations(existing, incoming string) string {
	switch {
	case incoming == model.NotSpecified:
		return existing
	case existing == model.NotSpecified:
		return incoming
	case strings.Contains(existing, incoming):
		return existing
	default:
		return existing + ", " + incoming
	}
}
