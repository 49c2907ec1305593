package categorize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Resolve(t *testing.T) {
	r := BuiltinRegistry()

	tests := []struct {
		company string
		want    string
		found   bool
	}{
		{"Aeon Landscaping", "aeon", true},
		{"  aeon   landscaping ", "aeon", true},
		{"AE3 Excavating", "ae3", true},
		{"ae3", "ae3", true},
		{"Acme Paving", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.company, func(t *testing.T) {
			p, ok := r.Resolve(tt.company)
			require.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.want, p.Key())
			}
		})
	}
}

func TestRegistry_LookupUnknown(t *testing.T) {
	_, err := BuiltinRegistry().Lookup("nope")
	assert.ErrorIs(t, err, ErrUnknownProfile)
}

func TestRegistry_Conflicts(t *testing.T) {
	a := testProfile(t, func(c *ProfileConfig) { c.Key = "a"; c.Companies = []string{"Acme"} })
	b := testProfile(t, func(c *ProfileConfig) { c.Key = "b"; c.Companies = []string{"ACME"} })
	dupKey := testProfile(t, func(c *ProfileConfig) { c.Key = "A" })

	_, err := NewRegistry(a, b)
	assert.ErrorIs(t, err, ErrInvalidProfile)

	_, err = NewRegistry(a, dupKey)
	assert.ErrorIs(t, err, ErrInvalidProfile)

	_, err = NewRegistry(a, nil)
	assert.ErrorIs(t, err, ErrInvalidProfile)
}

func TestRegistry_ProfilesOrder(t *testing.T) {
	var keys []string
	for _, p := range BuiltinRegistry().Profiles() {
		keys = append(keys, p.Key())
	}
	assert.Equal(t, []string{"aeon", "ae3"}, keys)
}
