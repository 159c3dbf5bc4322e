package captable

import "fmt"

// PreferenceType defines how a liquidation preference interacts with the
// pro-rata distribution.
type PreferenceType int

const (
	// Participating holders receive their preference and then share in the
	// remaining proceeds ("double dip").
	Participating PreferenceType = iota
	// NonParticipating holders receive their preference and are excluded
	// from the remaining pro-rata proceeds.
	NonParticipating
)

func (t PreferenceType) String() string {
	switch t {
	case Participating:
		return "participating"
	case NonParticipating:
		return "non-participating"
	default:
		return "unknown"
	}
}

// ParsePreferenceType parses a string into a PreferenceType.
func ParsePreferenceType(s string) (PreferenceType, error) {
	switch s {
	case "participating":
		return Participating, nil
	case "non-participating":
		return NonParticipating, nil
	default:
		return 0, fmt.Errorf("unknown preference type: %q", s)
	}
}

// LiquidationPreference is one preference rule. The list of rules, not the
// rounds, is the authoritative source of preference terms; one rule per
// round by convention.
type LiquidationPreference struct {
	Round     string         // id of the round the rule applies to
	Multiple  Quantity       // typically 1 to 3
	Type      PreferenceType
	Seniority int // positive, lower is paid first
}
