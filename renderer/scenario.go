package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/captable"
)

// scenarioRoles is the column order of the sensitivity table.
var scenarioRoles = []captable.Role{captable.Founder, captable.Investor, captable.Employee, captable.Advisor}

// ScenarioMarkdown renders a sensitivity report: one row per exit
// valuation, aggregate payouts per role, and the change since the
// previous row.
func ScenarioMarkdown(ct *captable.CapTable, report *captable.ScenarioReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Exit Sensitivity for %s\n\n", ct.Company)
	fmt.Fprintf(&b, "Valuations from %s to %s\n\n", report.From, report.To)

	fmt.Fprint(&b, "| Valuation |")
	for _, role := range scenarioRoles {
		fmt.Fprintf(&b, " %s | Δ |", role)
	}
	fmt.Fprintln(&b)
	fmt.Fprint(&b, "|---:|")
	for range scenarioRoles {
		fmt.Fprint(&b, "---:|---:|")
	}
	fmt.Fprintln(&b)

	for i, point := range report.Points {
		delta := report.Delta(i)
		fmt.Fprintf(&b, "| %s |", point.Valuation)
		for _, role := range scenarioRoles {
			amount, ok := point.ByRole[role]
			if !ok {
				amount = captable.M(0, ct.Currency)
			}
			fmt.Fprintf(&b, " %s | %s |", amount, delta[role].SignedString())
		}
		fmt.Fprintln(&b)
	}

	return b.String()
}
