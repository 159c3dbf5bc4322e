package captable

// claim is one liquidation-preference claim resolved against the cap
// table: the rule, the round it applies to, and the round's total claim
// (sum of investments times the multiple).
type claim struct {
	pref  LiquidationPreference
	round *Round
	total Money
}

// payoutStrategy decides how much of each claim is paid out of the
// remaining proceeds. Claims are given sorted by ascending seniority,
// ties in original list order. The returned slice is aligned with the
// claims and never pays more than the remaining proceeds in total.
type payoutStrategy interface {
	resolve(claims []claim, remaining Money) []Money
}

// sequentialPayout pays claims one by one in seniority order, each up to
// what is left. Ties are broken by list order.
type sequentialPayout struct{}

func (sequentialPayout) resolve(claims []claim, remaining Money) []Money {
	paid := make([]Money, len(claims))
	for i, c := range claims {
		p := remaining.Min(c.total)
		paid[i] = p
		remaining = remaining.Sub(p)
	}
	return paid
}

// pariPassuPayout pools claims of equal seniority and scales them by the
// same ratio when the pooled claim exceeds what is left, so equal ranks
// get equal cents on the dollar.
type pariPassuPayout struct{}

func (pariPassuPayout) resolve(claims []claim, remaining Money) []Money {
	paid := make([]Money, len(claims))
	for start := 0; start < len(claims); {
		end := start + 1
		for end < len(claims) && claims[end].pref.Seniority == claims[start].pref.Seniority {
			end++
		}

		var pooled Money
		for i := start; i < end; i++ {
			pooled = pooled.Add(claims[i].total)
		}
		if pooled.IsPositive() {
			budget := remaining.Min(pooled)
			ratio := budget.DivPrice(pooled)
			for i := start; i < end; i++ {
				paid[i] = claims[i].total.Mul(ratio)
			}
			remaining = remaining.Sub(budget)
		}
		start = end
	}
	return paid
}

// prorate returns the part of amount a weight of w out of total is
// entitled to. A zero total entitles to nothing: this is the guard that
// keeps every phase free of divisions by zero.
func prorate(amount Money, w, total Quantity) Money {
	if total.IsZero() || w.IsZero() {
		return M(0, amount.Currency())
	}
	return amount.Mul(w).Div(total)
}
