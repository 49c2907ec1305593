package categorize

import (
	"fmt"
	"strings"
)

// Registry maps profile keys and company names to profiles.
type Registry struct {
	byKey     map[string]*Profile
	byCompany map[string]*Profile
	order     []string
}

// NewRegistry builds a registry. Keys and company names must be unique
// across profiles.
func NewRegistry(profiles ...*Profile) (*Registry, error) {
	r := &Registry{
		byKey:     make(map[string]*Profile, len(profiles)),
		byCompany: make(map[string]*Profile),
	}
	for _, p := range profiles {
		if p == nil {
			return nil, fmt.Errorf("%w: nil profile", ErrInvalidProfile)
		}
		key := normalizeName(p.Key())
		if _, dup := r.byKey[key]; dup {
			return nil, fmt.Errorf("%w: duplicate profile key %q", ErrInvalidProfile, p.Key())
		}
		r.byKey[key] = p
		r.order = append(r.order, key)

		for _, company := range p.Companies() {
			name := normalizeName(company)
			if name == "" {
				continue
			}
			if other, dup := r.byCompany[name]; dup && other != p {
				return nil, fmt.Errorf("%w: company %q routed to both %s and %s",
					ErrInvalidProfile, company, other.Key(), p.Key())
			}
			r.byCompany[name] = p
		}
	}
	return r, nil
}

// Lookup returns the profile registered under key.
func (r *Registry) Lookup(key string) (*Profile, error) {
	p, ok := r.byKey[normalizeName(key)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProfile, key)
	}
	return p, nil
}

// Resolve returns the profile routed from a company name, matched
// case-insensitively with whitespace collapsed.
func (r *Registry) Resolve(company string) (*Profile, bool) {
	p, ok := r.byCompany[normalizeName(company)]
	return p, ok
}

// Profiles returns all profiles in registration order.
func (r *Registry) Profiles() []*Profile {
	out := make([]*Profile, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.byKey[key])
	}
	return out
}

func normalizeName(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
