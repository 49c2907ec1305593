package categorize

import (
	"fmt"

	"github.com/Veraticus/work-order-flow/internal/model"
)

// Validation is the outcome of validating one pair.
type Validation struct {
	Caveats []model.Caveat
	Pair    model.CategoryPair
}

// Validate applies the profile's substitution rules, then checks the label
// against the taxonomy and escape prefixes. Labels that pass neither check are
// rewritten to "<catch-all>(<raw label>)". Locations are never changed.
func Validate(pair model.CategoryPair, p *Profile) Validation {
	raw := pair.Label
	label := raw
	var caveats []model.Caveat

	if to, ok := p.Substitute(label); ok {
		caveats = append(caveats, model.Caveat{Kind: model.CaveatSubstituted, Original: label, Label: to})
		label = to
	}

	if !p.Accepts(label) {
		rewritten := CatchAllLabel(p.CatchAll(), raw)
		caveats = append(caveats, model.Caveat{Kind: model.CaveatCatchAll, Original: raw, Label: rewritten})
		label = rewritten
	}

	return Validation{
		Pair:    model.CategoryPair{Label: label, Locations: pair.Locations},
		Caveats: caveats,
	}
}

// CatchAllLabel formats a catch-all label that preserves the unrecognized text.
func CatchAllLabel(catchAll, original string) string {
	return fmt.Sprintf("%s(%s)", catchAll, original)
}
