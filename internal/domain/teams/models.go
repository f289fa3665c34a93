package teams

import (
	"sort"
	"strings"
)

// Code is the three-letter franchise code used across the league's feeds.
type Code string

// CodeLength is the fixed length of every team code.
const CodeLength = 3

// Valid reports whether c has the expected shape.
func (c Code) Valid() bool {
	if len(c) != CodeLength {
		return false
	}
	for _, r := range c {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// Duration is an inclusive [from, through] range of season ids.
type Duration [2]int

// Includes reports whether seasonID falls inside the range.
func (d Duration) Includes(seasonID int) bool {
	return seasonID >= d[0] && seasonID <= d[1]
}

// AltIdentity is a former name/logo a franchise used for a span of seasons.
type AltIdentity struct {
	Name     string   `json:"name"`
	Logo     string   `json:"logo,omitempty"`
	Duration Duration `json:"duration"`
}

// Team is a franchise with its current identity and any former ones.
type Team struct {
	Code          Code          `json:"id"`
	Name          string        `json:"name"`
	Logo          string        `json:"logo,omitempty"`
	AltIdentities []AltIdentity `json:"alternativeNames,omitempty"`
}

func (t Team) identityFor(seasonID int) (AltIdentity, bool) {
	for _, alt := range t.AltIdentities {
		if alt.Duration.Includes(seasonID) {
			return alt, true
		}
	}
	return AltIdentity{}, false
}

// NameFor returns the display name the franchise used in seasonID.
func (t Team) NameFor(seasonID int) string {
	if alt, ok := t.identityFor(seasonID); ok && alt.Name != "" {
		return alt.Name
	}
	return t.Name
}

// LogoFor returns the logo the franchise used in seasonID.
func (t Team) LogoFor(seasonID int) string {
	if alt, ok := t.identityFor(seasonID); ok && alt.Logo != "" {
		return alt.Logo
	}
	return t.Logo
}

// legacyCodes maps codes found in older league feeds to the code the
// franchise is known by in this service.
var legacyCodes = map[Code]Code{
	"CHH": "CHA",
	"GOS": "GSW",
	"PHL": "PHI",
	"SAN": "SAS",
	"UTH": "UTA",
}

// Canonical normalizes a raw feed code, resolving legacy aliases.
func Canonical(raw string) Code {
	code := Code(strings.ToUpper(strings.TrimSpace(raw)))
	if resolved, ok := legacyCodes[code]; ok {
		return resolved
	}
	return code
}

// Set is a set of team codes, used for a season's candidates.
type Set map[Code]struct{}

// NewSet builds a Set from codes.
func NewSet(codes ...Code) Set {
	set := make(Set, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return set
}

// Has reports membership after canonicalizing code.
func (s Set) Has(code Code) bool {
	_, ok := s[Canonical(string(code))]
	return ok
}

// Sorted returns the members in lexicographic order.
func (s Set) Sorted() []Code {
	out := make([]Code, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
