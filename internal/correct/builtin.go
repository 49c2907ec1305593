package correct

// DefaultConfig returns the company and builder rules for the companies
// whose work orders are processed today.
func DefaultConfig() Config {
	return Config{
		Companies: []CompanyRule{
			{
				Name:     "AE3 Excavating",
				Aliases:  []string{"AE3", "AE3 EXCAVATING", "AES EXCAVATING", "AES EXCAVATING CORP"},
				Prefixes: []string{"AE3", "AES EXCAVATING"},
			},
			{
				Name:     "Aeon Landscaping",
				Aliases:  []string{"AEON", "AEON LANDSCAPING"},
				Prefixes: []string{"AEON"},
			},
			{
				Name:     "ADEO Contracting",
				Aliases:  []string{"ADEO", "ADO", "ADEO CONTRACTING"},
				Prefixes: []string{"ADEO"},
			},
			{
				Name:     "ANTHONY'S EXCAVATING & GRADING",
				Aliases:  []string{"ANTHONY", "ANTHONY'S", "ANTHONY'S EXCAVATING"},
				Prefixes: []string{"ANTHONY", "ANTHONY'S"},
			},
		},
		Builders: []string{"BROOKFIELD HOMES"},
	}
}

// Default returns a Corrector for DefaultConfig.
func Default() *Corrector {
	c, err := New(DefaultConfig())
	if err != nil {
		panic(err)
	}
	return c
}
