package teams

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalResolvesLegacyCodes(t *testing.T) {
	cases := map[string]Code{
		"CHH": "CHA",
		"GOS": "GSW",
		"PHL": "PHI",
		"SAN": "SAS",
		"UTH": "UTA",
		"bos": "BOS",
		" MIA ": "MIA",
	}
	for raw, want := range cases {
		assert.Equal(t, want, Canonical(raw), raw)
	}
}

func TestCodeValid(t *testing.T) {
	assert.True(t, Code("BOS").Valid())
	assert.False(t, Code("BO").Valid())
	assert.False(t, Code("bos").Valid())
	assert.False(t, Code("BOST").Valid())
}

func TestNameForUsesAlternateIdentityInsideDuration(t *testing.T) {
	team := Team{
		Code: "CHA",
		Name: "Charlotte Hornets",
		Logo: "hornet",
		AltIdentities: []AltIdentity{
			{Name: "Charlotte Bobcats", Logo: "bobcat", Duration: Duration{2004, 2014}},
		},
	}

	assert.Equal(t, "Charlotte Bobcats", team.NameFor(2004))
	assert.Equal(t, "Charlotte Bobcats", team.NameFor(2014))
	assert.Equal(t, "Charlotte Hornets", team.NameFor(2015))
	assert.Equal(t, "bobcat", team.LogoFor(2010))
	assert.Equal(t, "hornet", team.LogoFor(2023))
}

func TestSetHasCanonicalizes(t *testing.T) {
	set := NewSet("CHA", "UTA")

	assert.True(t, set.Has("CHH"))
	assert.True(t, set.Has("UTA"))
	assert.False(t, set.Has("BOS"))
	assert.Equal(t, []Code{"CHA", "UTA"}, set.Sorted())
}
