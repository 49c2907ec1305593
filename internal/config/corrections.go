package config

import (
	"github.com/Veraticus/work-order-flow/internal/categorize"
	"github.com/Veraticus/work-order-flow/internal/correct"
	"github.com/spf13/viper"
)

// LoadCorrector builds the data corrector. Rules come from the corrections
// section of the profile file, or the built-in rules when there is none.
// Every profile in registry also gets a rule naming its first company, so a
// company a profile routes on is never corrected away.
func LoadCorrector(registry *categorize.Registry) (*correct.Corrector, error) {
	cfg := correct.DefaultConfig()

	if path := ExpandPath(viper.GetString("profiles.path")); path != "" {
		file, err := readProfileFile(path)
		if err != nil {
			return nil, err
		}
		if file.Corrections != nil {
			cfg = *file.Corrections
		}
	}

	if registry != nil {
		cfg.Companies = append(cfg.Companies, profileRules(registry)...)
	}
	return correct.New(cfg)
}

func profileRules(registry *categorize.Registry) []correct.CompanyRule {
	var rules []correct.CompanyRule
	for _, p := range registry.Profiles() {
		companies := p.Companies()
		if len(companies) == 0 {
			continue
		}
		rules = append(rules, correct.CompanyRule{Name: companies[0], Aliases: companies})
	}
	return rules
}
