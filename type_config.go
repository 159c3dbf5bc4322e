package captable

import "fmt"

// Beneficiary selects the subset of shareholders eligible for the
// carve-out.
type Beneficiary int

const (
	// Everyone makes all shareholders eligible.
	Everyone Beneficiary = iota
	// FoundersOnly restricts the carve-out to founders.
	FoundersOnly
	// Team restricts the carve-out to founders and employees.
	Team
)

func (b Beneficiary) String() string {
	switch b {
	case Everyone:
		return "everyone"
	case FoundersOnly:
		return "founders"
	case Team:
		return "team"
	default:
		return "unknown"
	}
}

// ParseBeneficiary parses a string into a Beneficiary.
func ParseBeneficiary(s string) (Beneficiary, error) {
	switch s {
	case "everyone":
		return Everyone, nil
	case "founders", "founders-only":
		return FoundersOnly, nil
	case "team":
		return Team, nil
	default:
		return 0, fmt.Errorf("unknown beneficiary: %q", s)
	}
}

// PayoutStructure selects the preference stack algorithm.
type PayoutStructure int

const (
	// Standard pays preferences sequentially in seniority order.
	Standard PayoutStructure = iota
	// PariPassu pools preferences of equal seniority and pays them
	// proportionally to claim size.
	PariPassu
	// CommonOnly bypasses the preference stack; everything flows
	// through the pro-rata distribution.
	CommonOnly
)

func (p PayoutStructure) String() string {
	switch p {
	case Standard:
		return "standard"
	case PariPassu:
		return "pari-passu"
	case CommonOnly:
		return "common-only"
	default:
		return "unknown"
	}
}

// ParsePayoutStructure parses a string into a PayoutStructure.
func ParsePayoutStructure(s string) (PayoutStructure, error) {
	switch s {
	case "standard":
		return Standard, nil
	case "pari-passu", "paripassu":
		return PariPassu, nil
	case "common-only", "common":
		return CommonOnly, nil
	default:
		return 0, fmt.Errorf("unknown payout structure: %q", s)
	}
}

// Adjustments are the M&A deductions applied to the exit valuation before
// any distribution: escrow holdback, reps & warranties reserve, and the
// net working capital true-up.
type Adjustments struct {
	Escrow         Money
	Reps           Money
	WorkingCapital Money
}

// IsZero reports whether no adjustment is configured.
func (a Adjustments) IsZero() bool {
	return a.Escrow.IsZero() && a.Reps.IsZero() && a.WorkingCapital.IsZero()
}

// WaterfallConfig holds the distribution parameters that are not part of
// the cap table itself.
type WaterfallConfig struct {
	CarveOutPercent     Percent // 0 disables the carve-out phase
	CarveOutBeneficiary Beneficiary
	Structure           PayoutStructure
	Adjustments         Adjustments
}
