// Package correct standardizes the header fields of extracted work orders
// before they are stored: company names are mapped to the names profiles
// route on, builder names are matched against known builders, project
// names are cleaned and month abbreviations are expanded.
//
// Like extract and categorize, the package is pure. Rules come in as a
// Config and nothing is read from the environment.
package correct

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/work-order-flow/internal/model"
)

// ErrInvalidRules is returned for a correction config that cannot be used.
var ErrInvalidRules = errors.New("invalid correction rules")

// DefaultBuilderSimilarity is the minimum similarity for a builder name to
// be corrected to a known builder.
const DefaultBuilderSimilarity = 0.85

// CompanyRule maps the spellings of one company to its standard name. A
// name matches an alias exactly, or starts with one of the prefixes as
// whole words. Matching ignores case, punctuation and repeated spaces.
type CompanyRule struct {
	Name     string   `yaml:"name"`
	Aliases  []string `yaml:"aliases"`
	Prefixes []string `yaml:"prefixes"`
}

// Config is the external configuration of a Corrector.
type Config struct {
	Companies []CompanyRule `yaml:"companies"`
	Builders  []string      `yaml:"builders"`
	// BuilderSimilarity is between 0 and 1; zero means the default.
	BuilderSimilarity float64 `yaml:"builder_similarity"`
	// KeepUnknownCompanies keeps unmatched company names instead of
	// replacing them with the placeholder.
	KeepUnknownCompanies bool `yaml:"keep_unknown_companies"`
}

type prefixRule struct {
	prefix string
	name   string
}

// Corrector applies a validated Config. It is safe for concurrent use.
type Corrector struct {
	companies    map[string]string
	prefixes     []prefixRule
	builders     map[string]string
	builderNames []string
	similarity   float64
	keepUnknown  bool
}

// New validates cfg and builds a Corrector. When two rules claim the same
// alias or prefix, the first one wins.
func New(cfg Config) (*Corrector, error) {
	similarity := cfg.BuilderSimilarity
	if similarity == 0 {
		similarity = DefaultBuilderSimilarity
	}
	if similarity < 0 || similarity > 1 {
		return nil, fmt.Errorf("%w: builder_similarity must be between 0 and 1", ErrInvalidRules)
	}

	c := &Corrector{
		companies:   make(map[string]string),
		builders:    make(map[string]string),
		similarity:  similarity,
		keepUnknown: cfg.KeepUnknownCompanies,
	}

	for _, rule := range cfg.Companies {
		name := strings.TrimSpace(rule.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: company rule without a name", ErrInvalidRules)
		}
		for _, alias := range append([]string{name}, rule.Aliases...) {
			if key := companyKey(alias); key != "" {
				if _, taken := c.companies[key]; !taken {
					c.companies[key] = name
				}
			}
		}
		for _, prefix := range rule.Prefixes {
			if key := companyKey(prefix); key != "" {
				c.prefixes = append(c.prefixes, prefixRule{prefix: key, name: name})
			}
		}
	}

	for _, builder := range cfg.Builders {
		key := collapse(strings.ToUpper(builder))
		if key == "" {
			continue
		}
		if _, taken := c.builders[key]; !taken {
			c.builders[key] = strings.TrimSpace(builder)
			c.builderNames = append(c.builderNames, key)
		}
	}

	return c, nil
}

// Apply returns order with its header fields corrected. The company name as
// read from the document is kept in CompanyRaw.
func (c *Corrector) Apply(order model.WorkOrder) model.WorkOrder {
	if order.CompanyRaw == "" {
		order.CompanyRaw = order.CompanyName
	}
	order.CompanyName = c.Company(order.CompanyRaw)
	order.BuilderName = c.Builder(order.BuilderName)
	order.ProjectName = Project(order.ProjectName)
	order.Month = Month(order.Month)
	return order
}

// Company returns the standard name for a company. Unknown companies become
// the placeholder unless the config keeps them.
func (c *Corrector) Company(raw string) string {
	key := companyKey(raw)
	if key == "" || key == model.Placeholder {
		return model.Placeholder
	}
	if name, ok := c.companies[key]; ok {
		return name
	}
	for _, p := range c.prefixes {
		if key == p.prefix || strings.HasPrefix(key, p.prefix+" ") {
			return p.name
		}
	}
	if c.keepUnknown {
		return collapse(raw)
	}
	return model.Placeholder
}

// companyKey upper-cases s, drops apostrophes and periods and collapses
// whitespace, so "Anthony's Excavating." and "ANTHONYS EXCAVATING" agree.
func companyKey(s string) string {
	s = strings.ToUpper(s)
	s = strings.NewReplacer("'", "", "’", "", ".", "", ",", " ").Replace(s)
	return collapse(s)
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func isBlank(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, model.Placeholder)
}
