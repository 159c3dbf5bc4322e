package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/captable"
)

// SummaryMarkdown renders the capitalization summary, one row per
// shareholder in cap-table order.
func SummaryMarkdown(ct *captable.CapTable, holdings map[string]*captable.Holding) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Capitalization Summary for %s\n\n", ct.Company)
	fmt.Fprintln(&b, "| Shareholder | Role | Shares | Options | Invested |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|")

	var shares, options captable.Quantity
	invested := captable.M(0, ct.Currency)
	for _, sh := range ct.Shareholders {
		h := holdings[sh.ID]
		if h == nil {
			continue
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			sh.Name, sh.Role, h.TotalShares, h.TotalOptions, h.TotalInvested)
		shares = shares.Add(h.TotalShares)
		options = options.Add(h.TotalOptions)
		invested = invested.Add(h.TotalInvested)
	}
	fmt.Fprintf(&b, "| **Total** | | **%s** | **%s** | **%s** |\n", shares, options, invested)

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprint(w, "\n## Rounds\n\n")
		fmt.Fprintln(w, "| Round | Class | Raised | Price/Share |")
		fmt.Fprintln(w, "|:---|:---|---:|---:|")
		n := 0
		for i := range ct.Rounds {
			r := &ct.Rounds[i]
			if r.Pool {
				continue
			}
			fmt.Fprintf(w, "| %s | %s | %s | %s |\n", r.Name, r.Class, r.Raised(), r.PricePerShare)
			n++
		}
		return n > 0
	})

	return b.String()
}
