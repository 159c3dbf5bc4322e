// Package renderer turns captable reports into markdown.
package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/captable"
)

// WaterfallMarkdown renders the engine result: the step trace, the
// per-shareholder payout table, and any diagnostics.
func WaterfallMarkdown(ct *captable.CapTable, exit captable.Money, res *captable.WaterfallResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Exit Waterfall for %s\n\n", ct.Company)
	fmt.Fprintf(&b, "Exit valuation: %s\n\n", exit)

	fmt.Fprint(&b, "## Distribution Steps\n\n")
	fmt.Fprintln(&b, "| # | Step | Class | Amount | Remaining |")
	fmt.Fprintln(&b, "|---:|:---|:---|---:|---:|")
	for _, s := range res.Steps {
		if s.IsTotal {
			fmt.Fprintf(&b, "| %d | **%s** | %s | **%s** | **%s** |\n",
				s.Seq, s.Label, s.Class, s.Amount, s.Remaining)
			continue
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s |\n",
			s.Seq, s.Label, s.Class, s.Amount, s.Remaining)
	}

	fmt.Fprint(&b, "\n## Payouts\n\n")
	fmt.Fprintln(&b, "| Shareholder | Role | Carve-out | Preference | Participation | Strike cost | Total | Multiple |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|---:|---:|---:|")
	for _, p := range res.Payouts {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | **%s** | %s |\n",
			p.Name, p.Role, p.CarveOut, p.Preference, p.Participation, p.StrikeCost, p.Total, multiple(p))
	}

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprint(w, "\n## Diagnostics\n\n")
		for _, d := range res.Diagnostics {
			fmt.Fprintf(w, "- %s\n", d)
		}
		return len(res.Diagnostics) > 0
	})

	return b.String()
}

func multiple(p captable.WaterfallPayout) string {
	if p.Invested.IsPositive() {
		return p.Multiple.String() + "x"
	}
	return "-"
}
