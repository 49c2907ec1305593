package categorize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*ProfileConfig)
		contains []string
		missing  []string
	}{
		{
			name:     "default strict",
			contains: []string{"- Haul To Stockpile\n", "ONLY use the exact category names", "'Miscellaneous'"},
			missing:  []string{"semantic understanding"},
		},
		{
			name:     "semantic",
			mutate:   func(c *ProfileConfig) { c.Matching = MatchingSemantic },
			contains: []string{"semantic understanding"},
			missing:  []string{"ONLY use the exact"},
		},
		{
			name:     "custom prompt",
			mutate:   func(c *ProfileConfig) { c.Prompt = "  Custom instructions.\n" },
			contains: []string{"Custom instructions.\n\nRemember:"},
			missing:  []string{"Service categories:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildPrompt(testProfile(t, tt.mutate), "Haul fill to lot 4")

			assert.True(t, strings.HasSuffix(got, "\n\nInput: Haul fill to lot 4"))
			for _, s := range tt.contains {
				assert.Contains(t, got, s)
			}
			for _, s := range tt.missing {
				assert.NotContains(t, got, s)
			}
		})
	}
}
