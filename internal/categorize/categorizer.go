package categorize

import (
	"fmt"
	"time"

	"github.com/Veraticus/work-order-flow/internal/model"
)

// Result is the outcome of categorizing one work order.
type Result struct {
	Map     *CategoryMap
	Profile string
	Caveats []model.Caveat
}

// Text returns the formatted categorization.
func (r Result) Text() string { return r.Map.Format() }

// Empty reports whether no category was produced.
func (r Result) Empty() bool { return r.Map.Len() == 0 }

// Categorization converts the result into its stored form.
func (r Result) Categorization(workOrderID string, at time.Time) model.Categorization {
	return model.Categorization{
		WorkOrderID:   workOrderID,
		Profile:       r.Profile,
		Text:          r.Text(),
		Entries:       r.Map.Entries(),
		Caveats:       r.Caveats,
		CategorizedAt: at,
	}
}

// Categorize parses a model response, validates each pair against p and
// consolidates the result.
func Categorize(response string, p *Profile) Result {
	pairs := ParseResponse(response)
	validated := make([]model.CategoryPair, 0, len(pairs))
	var caveats []model.Caveat
	for _, pair := range pairs {
		v := Validate(pair, p)
		validated = append(validated, v.Pair)
		caveats = append(caveats, v.Caveats...)
	}
	return Result{
		Map:     Consolidate(validated, p),
		Profile: p.Key(),
		Caveats: caveats,
	}
}

// Unrouted returns the result for a work order whose company has no profile.
func Unrouted(company string) Result {
	label := CatchAllLabel(DefaultCatchAll, fmt.Sprintf("No categorizer for %s", company))
	m := NewCategoryMap()
	m.set(label, model.NotSpecified)
	return Result{
		Map: m,
		Caveats: []model.Caveat{
			{Kind: model.CaveatUnrouted, Original: company, Label: label},
		},
	}
}
