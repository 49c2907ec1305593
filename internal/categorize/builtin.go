package categorize

// DefaultCatchAll is the catch-all label used by the built-in profiles and
// for work orders whose company has no profile.
const DefaultCatchAll = "Miscellaneous"

// AeonConfig returns the built-in configuration for Aeon Landscaping.
func AeonConfig() ProfileConfig {
	return ProfileConfig{
		Key:                     "aeon",
		Name:                    "Aeon Landscaping",
		Companies:               []string{"Aeon Landscaping", "AEON"},
		CatchAll:                DefaultCatchAll,
		EscapePrefixes:          []string{"Settlement Repairs", DefaultCatchAll},
		NeverConsolidatedPrefix: "Settlement Repairs",
		Matching:                MatchingStrict,
		Taxonomy: []string{
			"Straw Installation", "Straw Removal",
			"Cleaning/loading sidewalk debris", "Hauling sidewalk debris", "Spreading Debris at Stockpile", "Cleaning/Loading Debris",
			"Excavate Infiltration", "Supply Material (Infiltration)", "Install Infiltration",
			"Backfill Infiltration", "Compaction infiltration", "Relevel After Infiltration Backfill",
			"Initial Install of Slabs and Steps (Rear)", "Temporary Installation of Slabs and Steps (Front)", "Relevel Slabs",
			"Initial install of window wells",
			"Grading Work", "Topping Up Under Structures", "Filter Cloth Installation",
			"Regrading washouts due to heavy rains", "Grade & Sod Contract Completions", "Extra Deep Sod (125 feet)", "Removing filter cloth from rear yard",
			"Loading & Hauling Topsoil/Fill Stockpile Within Site", "Spreading at Stockpile", "Leveling at Stockpile",
			"Loading & Hauling Topsoil/Fill from Lots to Stockpile", "Loading & Hauling Topsoil/Fill from Lot to Lot",
			"Spreading Topsoil on Lots", "Spreading Topsoil", "Loading & Hauling Topsoil/Fill from Stockpile to Lots",
			"Importing Topsoil/Fill From Offsite", "Topsoil Placement for In-Betweens", "Spreading/Topping Up In-Betweens",
			"Removing Rocks & Debris from Topsoil",
			"Sod Removal", "Settlement Repairs", "Curb settlement repairs", "Sod Material for Curb Repair",
			"Driveway Edge Settlement Repairs", "Sod Material for Driveway Edge",
			"Miscellaneous", "Bin Management", "Indoor Cleaning", "Garbage Collection", "Brick Management",
			"Concrete Work", "Equipment Supply", "Garage Filling & Leveling", "Labor Supply", "Road Maintenance",
			"Wall & Fence Installation", "Water Management", "Drainage System Installation", "Sod Installation",
		},
	}
}

// AE3Config returns the built-in configuration for AE3 Excavating.
func AE3Config() ProfileConfig {
	return ProfileConfig{
		Key:            "ae3",
		Name:           "AE3 Excavating",
		Companies:      []string{"AE3 Excavating", "AE3"},
		CatchAll:       DefaultCatchAll,
		EscapePrefixes: []string{DefaultCatchAll},
		Matching:       MatchingSemantic,
		Substitutions: []Substitution{
			{From: "Haul From Lots", To: "Haul To Stockpile"},
			{From: "Haul To Lots", To: "Haul From Stockpile"},
			{From: "Loading Fill To Stockpile", To: "Loading Fill From Lots"},
			{From: "Loading Fill From Stockpile", To: "Loading Fill To Lots"},
		},
		Taxonomy: []string{
			// Specific operations.
			"Ripping Basement", "Ripping Sewers", "Ripping Base", "Ripping Backfill",
			"Stockpile Sewer", "Stockpile Basement", "Backfill Basement", "Sewer Backfill",
			"Sewer Excavation", "Basement Excavation", "Double Cast Sewer", "Double Cast Basement",
			"Straw Installation", "Straw Removal", "Strip Topsoil prior to Excavation", "Driveway Cut",
			// Moderately specific.
			"Loading Fill From Lots", "Loading Fill To Lots", "Haul From Stockpile", "Haul To Stockpile",
			"Loading Excess Fill Offsite", "Hauling Excess Fill Offsite", "Spreading At Stockpile",
			"Rough Grade", "Low Lots", "Base Condition", "Concrete Work", "Mud",
			// General.
			"General Stockpile", "Grade", "Releveling", "Spreading/Top Up",
			"Cast/ Double Cast", "General Straw", "Road", "Tarp", "Flagman", "Snow", "Ramp",
			"Miscellaneous",
		},
	}
}

// BuiltinRegistry returns a registry holding the Aeon and AE3 profiles.
func BuiltinRegistry() *Registry {
	var profiles []*Profile
	for _, cfg := range []ProfileConfig{AeonConfig(), AE3Config()} {
		p, err := NewProfile(cfg)
		if err != nil {
			panic(err)
		}
		profiles = append(profiles, p)
	}
	r, err := NewRegistry(profiles...)
	if err != nil {
		panic(err)
	}
	return r
}
