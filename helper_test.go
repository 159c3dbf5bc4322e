package captable

import (
	"testing"

	"github.com/shopspring/decimal"
)

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// approx reports whether two amounts are equal within the floating
// point tolerance used by the conservation property.
func approx(a, b Money) bool {
	tol := decimal.NewFromFloat(1e-6)
	return a.value.Sub(b.value).Abs().LessThanOrEqual(tol)
}

// payoutOf finds a shareholder's payout in a result.
func payoutOf(t *testing.T, res *WaterfallResult, id string) WaterfallPayout {
	t.Helper()
	for _, p := range res.Payouts {
		if p.Shareholder == id {
			return p
		}
	}
	t.Fatalf("no payout for shareholder %q", id)
	return WaterfallPayout{}
}

// distributed sums the three payout components across all shareholders.
func distributed(res *WaterfallResult) Money {
	total := USD(0)
	for _, p := range res.Payouts {
		total = total.Add(p.CarveOut).Add(p.Preference).Add(p.Participation)
	}
	return total
}
