package correct

import (
	"testing"

	"github.com/Veraticus/work-order-flow/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrector_Company(t *testing.T) {
	c := Default()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "ae3 upper", raw: "AE3 EXCAVATING", want: "AE3 Excavating"},
		{name: "ae3 misread as aes", raw: "AES EXCAVATING CORP", want: "AE3 Excavating"},
		{name: "ae3 lower", raw: "ae3", want: "AE3 Excavating"},
		{name: "ae3 prefix with suffix", raw: "AE3 Excavating Inc.", want: "AE3 Excavating"},
		{name: "aeon short", raw: "AEON", want: "Aeon Landscaping"},
		{name: "aeon lower", raw: "aeon landscaping", want: "Aeon Landscaping"},
		{name: "adeo", raw: "ADEO", want: "ADEO Contracting"},
		{name: "adeo misread", raw: "ado", want: "ADEO Contracting"},
		{name: "anthony full", raw: "ANTHONY'S EXCAVATING", want: "ANTHONY'S EXCAVATING & GRADING"},
		{name: "anthony short", raw: "anthony", want: "ANTHONY'S EXCAVATING & GRADING"},
		{name: "anthony without apostrophe", raw: "Anthonys Excavating", want: "ANTHONY'S EXCAVATING & GRADING"},
		{name: "extra spaces", raw: "  AE3   EXCAVATING ", want: "AE3 Excavating"},
		{name: "unknown", raw: "UNKNOWN COMPANY", want: model.Placeholder},
		{name: "placeholder", raw: "N/A", want: model.Placeholder},
		{name: "blank", raw: "", want: model.Placeholder},
		{name: "prefix needs whole word", raw: "AEONIC LTD", want: model.Placeholder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Company(tt.raw))
		})
	}
}

func TestCorrector_KeepUnknownCompanies(t *testing.T) {
	cfg := DefaultConfig()
	cfg.KeepUnknownCompanies = true
	c, err := New(cfg)
	require.NoError(t, err)

	assert.Equal(t, "Acme Paving", c.Company("Acme  Paving"))
	assert.Equal(t, model.Placeholder, c.Company("N/A"))
}

func TestCorrector_FirstRuleWins(t *testing.T) {
	c, err := New(Config{Companies: []CompanyRule{
		{Name: "First", Aliases: []string{"ACME"}},
		{Name: "Second", Aliases: []string{"acme"}},
	}})
	require.NoError(t, err)
	assert.Equal(t, "First", c.Company("Acme"))
}

func TestNew_InvalidRules(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "unnamed company", cfg: Config{Companies: []CompanyRule{{Aliases: []string{"X"}}}}},
		{name: "similarity above one", cfg: Config{BuilderSimilarity: 1.5}},
		{name: "negative similarity", cfg: Config{BuilderSimilarity: -0.1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			assert.ErrorIs(t, err, ErrInvalidRules)
		})
	}
}

func TestCorrector_Builder(t *testing.T) {
	c := Default()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "exact", raw: "BROOKFIELD HOMES", want: "BROOKFIELD HOMES"},
		{name: "lower case", raw: "brookfield homes", want: "BROOKFIELD HOMES"},
		{name: "typo", raw: "BROKFIELD HOMES", want: "BROOKFIELD HOMES"},
		{name: "extra spaces", raw: "BROOKFIELD   HOMES", want: "BROOKFIELD HOMES"},
		{name: "unknown builder kept", raw: "mattamy  homes", want: "MATTAMY HOMES"},
		{name: "placeholder", raw: "N/A", want: model.Placeholder},
		{name: "blank", raw: "  ", want: model.Placeholder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Builder(tt.raw))
		})
	}
}

func TestProject(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "double spaces", raw: "PINE  HURST", want: "PINE HURST"},
		{name: "caption removed", raw: "PINEHURST Project/Phase 2", want: "PINEHURST 2"},
		{name: "caption any case", raw: "project / phase PINEHURST", want: "PINEHURST"},
		{name: "phase marker kept", raw: "PINEHURST PH 2", want: "PINEHURST PH 2"},
		{name: "caption only", raw: "Project/Phase", want: model.Placeholder},
		{name: "placeholder", raw: "N/A", want: model.Placeholder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Project(tt.raw))
		})
	}
}

func TestMonth(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "JAN", want: "JANUARY"},
		{raw: "FEB", want: "FEBRUARY"},
		{raw: "SEPT", want: "SEPTEMBER"},
		{raw: "Sept.", want: "SEPTEMBER"},
		{raw: "DEC", want: "DECEMBER"},
		{raw: "JANUARY", want: "JANUARY"},
		{raw: "SEPTEMBER", want: "SEPTEMBER"},
		{raw: "jan", want: "JANUARY"},
		{raw: "Jan", want: "JANUARY"},
		{raw: "May", want: "MAY"},
		{raw: "5", want: "MAY"},
		{raw: "13", want: "13"},
		{raw: "", want: model.Placeholder},
		{raw: "N/A", want: model.Placeholder},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, Month(tt.raw))
		})
	}
}

func TestCorrector_Apply(t *testing.T) {
	year := 2018
	order := model.WorkOrder{
		Number:      "12345",
		BuilderName: "BROKFIELD HOMES",
		ProjectName: "PINEHURST Project/Phase  PH 3",
		Month:       "Sept",
		Year:        &year,
		CompanyName: "AES EXCAVATING CORP",
		Description: "Loading fill",
	}

	got := Default().Apply(order)

	assert.Equal(t, "AE3 Excavating", got.CompanyName)
	assert.Equal(t, "AES EXCAVATING CORP", got.CompanyRaw)
	assert.Equal(t, "BROOKFIELD HOMES", got.BuilderName)
	assert.Equal(t, "PINEHURST PH 3", got.ProjectName)
	assert.Equal(t, "SEPTEMBER", got.Month)
	assert.Equal(t, &year, got.Year)
	assert.Equal(t, "Loading fill", got.Description)
	assert.Equal(t, "AES EXCAVATING CORP", order.CompanyName, "input is not modified")

	again := Default().Apply(got)
	assert.Equal(t, got, again, "applying twice changes nothing")
}
