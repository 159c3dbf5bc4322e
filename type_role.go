package captable

import "fmt"

// Role classifies a shareholder for carve-out eligibility and for
// scenario grouping.
type Role int

const (
	Founder Role = iota
	Investor
	Employee
	Advisor
)

func (r Role) String() string {
	switch r {
	case Founder:
		return "founder"
	case Investor:
		return "investor"
	case Employee:
		return "employee"
	case Advisor:
		return "advisor"
	default:
		return "unknown"
	}
}

// ParseRole parses a string into a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case "founder":
		return Founder, nil
	case "investor":
		return Investor, nil
	case "employee":
		return Employee, nil
	case "advisor":
		return Advisor, nil
	default:
		return 0, fmt.Errorf("unknown role: %q", s)
	}
}
