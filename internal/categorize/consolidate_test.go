package categorize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/work-order-flow/internal/model"
)

func pairs(kv ...string) []model.CategoryPair {
	out := make([]model.CategoryPair, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out = append(out, model.CategoryPair{Label: kv[i], Locations: kv[i+1]})
	}
	return out
}

func TestConsolidate(t *testing.T) {
	p := testProfile(t, nil)

	tests := []struct {
		name  string
		input []model.CategoryPair
		want  []model.CategoryPair
	}{
		{
			name:  "distinct locations append in order",
			input: pairs("Grade", "Lot 67", "Grade", "Lot 68"),
			want:  pairs("Grade", "Lot 67, Lot 68"),
		},
		{
			name:  "repeated location not duplicated",
			input: pairs("Grade", "Lot 67", "Grade", "Lot 67"),
			want:  pairs("Grade", "Lot 67"),
		},
		{
			name:  "substring treated as duplicate",
			input: pairs("Grade", "Lots 10-12", "Grade", "Lots 1"),
			want:  pairs("Grade", "Lots 10-12"),
		},
		{
			name:  "not specified replaced",
			input: pairs("Grade", model.NotSpecified, "Grade", "Lot 3"),
			want:  pairs("Grade", "Lot 3"),
		},
		{
			name:  "not specified ignored",
			input: pairs("Grade", "Lot 3", "Grade", model.NotSpecified),
			want:  pairs("Grade", "Lot 3"),
		},
		{
			name:  "first seen order kept",
			input: pairs("Road", "A", "Grade", "B", "Road", "C"),
			want:  pairs("Road", "A, C", "Grade", "B"),
		},
		{
			name: "never consolidated family",
			input: pairs(
				"Settlement Repairs", "Lot 1",
				"Settlement Repairs", "Lot 2",
				"Settlement Repairs", "Lot 1",
			),
			want: pairs(
				"Settlement Repairs", "Lot 1",
				"Settlement Repairs1", "Lot 2",
				"Settlement Repairs2", "Lot 1",
			),
		},
		{
			name:  "family member with suffix",
			input: pairs("Settlement Repairs (curb)", "Lot 5", "Settlement Repairs (curb)", "Lot 6"),
			want:  pairs("Settlement Repairs (curb)", "Lot 5", "Settlement Repairs1", "Lot 6"),
		},
		{
			name: "empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Consolidate(tt.input, p)
			assert.Equal(t, len(tt.want), m.Len())
			assert.Equal(t, tt.want, nilIfEmpty(m.Entries()))
		})
	}
}

func nilIfEmpty(in []model.CategoryPair) []model.CategoryPair {
	if len(in) == 0 {
		return nil
	}
	return in
}

func TestConsolidate_FamilyMergesWithoutPrefix(t *testing.T) {
	p := testProfile(t, func(c *ProfileConfig) { c.NeverConsolidatedPrefix = "" })

	m := Consolidate(pairs("Settlement Repairs", "Lot 1", "Settlement Repairs", "Lot 2"), p)

	got, ok := m.Get("Settlement Repairs")
	assert.True(t, ok)
	assert.Equal(t, "Lot 1, Lot 2", got)
	assert.Equal(t, []string{"Settlement Repairs"}, m.Labels())
}

func TestCategoryMap_Format(t *testing.T) {
	p := testProfile(t, nil)

	assert.Equal(t, model.NoCategorization, NewCategoryMap().Format())

	m := Consolidate(pairs("Grade", "Lot 1", "Road", model.NotSpecified), p)
	assert.Equal(t, "Service: Grade\nBlocks/Lots/Units: Lot 1\n\nService: Road\nBlocks/Lots/Units: Not specified", m.Format())
}

func TestCategoryMap_FormatRoundTrip(t *testing.T) {
	p := testProfile(t, nil)
	m := Consolidate(pairs("Grade", "Lot 1", "Settlement Repairs", "Lot 2", "Settlement Repairs", "Lot 3"), p)

	again := Consolidate(ParseResponse(m.Format()), p)
	assert.Equal(t, m.Entries(), again.Entries())
}
