package model

import "time"

// NotSpecified is the location value used when the model gave none.
const NotSpecified = "Not specified"

// NoCategorization is the rendered output of a categorization that produced
// no entries. It differs from the empty string, which means "not yet run".
const NoCategorization = "no categorization produced"

// CategoryPair is a category label together with its location references
// (blocks, lots or units).
type CategoryPair struct {
	Label     string
	Locations string
}

// CaveatKind describes how a label was changed during validation.
type CaveatKind string

// Caveat kind constants.
const (
	CaveatSubstituted CaveatKind = "SUBSTITUTED"
	CaveatCatchAll    CaveatKind = "CATCH_ALL"
	CaveatUnrouted    CaveatKind = "UNROUTED"
)

// Caveat records a label rewrite so callers can judge categorization quality.
type Caveat struct {
	Kind     CaveatKind
	Original string
	Label    string
}

// Categorization is the final categorization of one work order.
type Categorization struct {
	CategorizedAt time.Time
	WorkOrderID   string
	Profile       string
	Text          string
	Entries       []CategoryPair
	Caveats       []Caveat
}

// IsEmpty reports whether the categorization ran and found nothing.
func (c *Categorization) IsEmpty() bool {
	return len(c.Entries) == 0
}
