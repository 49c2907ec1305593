// Package categorize turns a categorization model's narrative output into a
// validated, consolidated category→locations mapping for one work order.
//
// Every function takes its Profile explicitly. Profiles are immutable after
// construction and safe to share between goroutines.
package categorize

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Profile configuration errors. These signal a programming or configuration
// mistake, never a problem with a document.
var (
	ErrInvalidProfile = errors.New("invalid profile")
	ErrUnknownProfile = errors.New("unknown profile")
)

// MatchingMode tells the model how loosely descriptions may be matched to
// categories.
type MatchingMode string

// Matching modes.
const (
	MatchingStrict   MatchingMode = "strict"
	MatchingSemantic MatchingMode = "semantic"
)

// Substitution rewrites a raw label before taxonomy validation.
type Substitution struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// ProfileConfig is the external configuration of one company profile.
type ProfileConfig struct {
	Key                     string         `yaml:"key"`
	Name                    string         `yaml:"name"`
	CatchAll                string         `yaml:"catch_all"`
	NeverConsolidatedPrefix string         `yaml:"never_consolidated_prefix"`
	Matching                MatchingMode   `yaml:"matching"`
	Prompt                  string         `yaml:"prompt"`
	PromptFile              string         `yaml:"prompt_file"`
	Companies               []string       `yaml:"companies"`
	Taxonomy                []string       `yaml:"taxonomy"`
	Substitutions           []Substitution `yaml:"substitutions"`
	EscapePrefixes          []string       `yaml:"escape_prefixes"`
}

// Profile is a validated, read-only company profile.
type Profile struct {
	members       map[string]struct{}
	substitutions map[string]string
	cfg           ProfileConfig
}

// NewProfile validates cfg and builds a Profile from a private copy of it.
func NewProfile(cfg ProfileConfig) (*Profile, error) {
	cfg.Key = strings.TrimSpace(cfg.Key)
	if cfg.Key == "" {
		return nil, fmt.Errorf("%w: key is required", ErrInvalidProfile)
	}
	if strings.TrimSpace(cfg.CatchAll) == "" {
		return nil, fmt.Errorf("%w: %s: catch-all label is required", ErrInvalidProfile, cfg.Key)
	}
	if len(cfg.Taxonomy) == 0 {
		return nil, fmt.Errorf("%w: %s: taxonomy is empty", ErrInvalidProfile, cfg.Key)
	}
	if cfg.Matching == "" {
		cfg.Matching = MatchingStrict
	}
	if cfg.Matching != MatchingStrict && cfg.Matching != MatchingSemantic {
		return nil, fmt.Errorf("%w: %s: unknown matching mode %q", ErrInvalidProfile, cfg.Key, cfg.Matching)
	}

	p := &Profile{
		members:       make(map[string]struct{}, len(cfg.Taxonomy)),
		substitutions: make(map[string]string, len(cfg.Substitutions)),
	}

	for _, label := range cfg.Taxonomy {
		if label == "" {
			return nil, fmt.Errorf("%w: %s: empty taxonomy label", ErrInvalidProfile, cfg.Key)
		}
		if _, dup := p.members[label]; dup {
			return nil, fmt.Errorf("%w: %s: duplicate taxonomy label %q", ErrInvalidProfile, cfg.Key, label)
		}
		p.members[label] = struct{}{}
	}

	for _, prefix := range cfg.EscapePrefixes {
		if prefix == "" {
			return nil, fmt.Errorf("%w: %s: empty escape prefix", ErrInvalidProfile, cfg.Key)
		}
	}

	for _, sub := range cfg.Substitutions {
		if sub.From == "" || sub.To == "" {
			return nil, fmt.Errorf("%w: %s: substitution needs both labels", ErrInvalidProfile, cfg.Key)
		}
		if _, dup := p.substitutions[sub.From]; dup {
			return nil, fmt.Errorf("%w: %s: duplicate substitution for %q", ErrInvalidProfile, cfg.Key, sub.From)
		}
		p.substitutions[sub.From] = sub.To
	}

	cfg.Companies = slices.Clone(cfg.Companies)
	cfg.Taxonomy = slices.Clone(cfg.Taxonomy)
	cfg.Substitutions = slices.Clone(cfg.Substitutions)
	cfg.EscapePrefixes = slices.Clone(cfg.EscapePrefixes)
	p.cfg = cfg

	for _, sub := range cfg.Substitutions {
		if !p.Accepts(sub.To) {
			return nil, fmt.Errorf("%w: %s: substitution target %q is not an accepted label", ErrInvalidProfile, cfg.Key, sub.To)
		}
	}

	return p, nil
}

// Key returns the profile's lookup key.
func (p *Profile) Key() string { return p.cfg.Key }

// Name returns the profile's display name.
func (p *Profile) Name() string {
	if p.cfg.Name == "" {
		return p.cfg.Key
	}
	return p.cfg.Name
}

// CatchAll returns the fallback label for unrecognized categories.
func (p *Profile) CatchAll() string { return p.cfg.CatchAll }

// Matching returns the profile's matching mode.
func (p *Profile) Matching() MatchingMode { return p.cfg.Matching }

// Prompt returns the profile's instruction prompt, if one was configured.
func (p *Profile) Prompt() string { return p.cfg.Prompt }

// Companies returns the company names routed to this profile.
func (p *Profile) Companies() []string { return slices.Clone(p.cfg.Companies) }

// Taxonomy returns the permitted labels in configured order.
func (p *Profile) Taxonomy() []string { return slices.Clone(p.cfg.Taxonomy) }

// EscapePrefixes returns the labels accepted regardless of taxonomy membership.
func (p *Profile) EscapePrefixes() []string { return slices.Clone(p.cfg.EscapePrefixes) }

// Substitutions returns the label rewrite rules in configured order.
func (p *Profile) Substitutions() []Substitution { return slices.Clone(p.cfg.Substitutions) }

// NeverConsolidatedPrefix returns the label prefix whose occurrences are kept
// as separate entries, or "" when the profile has none.
func (p *Profile) NeverConsolidatedPrefix() string { return p.cfg.NeverConsolidatedPrefix }

// Contains reports exact, case-sensitive taxonomy membership.
func (p *Profile) Contains(label string) bool {
	_, ok := p.members[label]
	return ok
}

// Substitute returns the replacement for label, if a rule names it.
func (p *Profile) Substitute(label string) (string, bool) {
	to, ok := p.substitutions[label]
	return to, ok
}

// IsEscaped reports whether label starts with one of the escape prefixes.
func (p *Profile) IsEscaped(label string) bool {
	for _, prefix := range p.cfg.EscapePrefixes {
		if strings.HasPrefix(label, prefix) {
			return true
		}
	}
	return false
}

// Accepts reports whether label passes validation unchanged.
func (p *Profile) Accepts(label string) bool {
	return p.Contains(label) || p.IsEscaped(label)
}

// NeverConsolidated reports whether label belongs to the family that is never
// merged during consolidation.
func (p *Profile) NeverConsolidated(label string) bool {
	prefix := p.cfg.NeverConsolidatedPrefix
	return prefix != "" && strings.HasPrefix(label, prefix)
}
