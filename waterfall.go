package captable

import (
	"fmt"
	"maps"
	"slices"
)

// WaterfallStep is one line of the audit trace. Steps are append-only;
// their order is the authoritative distribution order.
type WaterfallStep struct {
	Seq           int
	Label         string
	Class         string // share class the step concerns, if any
	Amount        Money  // amount distributed (or deducted) in this step
	Remaining     Money  // balance after the step
	ByShareholder map[string]Money
	IsTotal       bool // marks subtotal rows
}

// WaterfallPayout is the aggregated result for one shareholder.
type WaterfallPayout struct {
	Shareholder   string
	Name          string
	Role          Role
	CarveOut      Money
	Preference    Money
	Participation Money
	StrikeCost    Money
	Total         Money    // carve-out + preference + participation - strike cost, floored at 0
	Invested      Money
	Multiple      Quantity // Total / Invested, 0 when nothing was invested
}

// WaterfallResult is the engine output: the ordered step trace, one
// payout per shareholder in cap-table order, and the diagnostics
// collected for inconsistencies that were skipped over.
type WaterfallResult struct {
	Steps       []WaterfallStep
	Payouts     []WaterfallPayout
	Diagnostics []string
}

// Waterfall distributes the exit proceeds among the shareholders: M&A
// adjustments first, then the carve-out, the liquidation-preference
// stack, and finally the pro-rata distribution of whatever remains.
//
// The computation is pure: it reads the cap table, holds no state across
// calls, and is safe to invoke concurrently. Inconsistent inputs (a
// preference pointing at an unknown round, a round with no invested
// capital) contribute nothing and are reported in the diagnostics; only
// the ValidateInputs failures return an error.
func (ct *CapTable) Waterfall(exit Money, prefs []LiquidationPreference, cfg WaterfallConfig) (*WaterfallResult, error) {
	if err := ValidateInputs(exit, prefs); err != nil {
		return nil, err
	}

	w := &waterfall{
		ct:        ct,
		holdings:  ct.Summarize(),
		prefs:     prefs,
		cfg:       cfg,
		remaining: M(0, ct.Currency).Add(exit),
		acc:       make(map[string]*payoutAcc, len(ct.Shareholders)),
		excluded:  make(map[string]bool),
	}
	for _, sh := range ct.Shareholders {
		w.acc[sh.ID] = &payoutAcc{
			carveOut:      M(0, ct.Currency),
			preference:    M(0, ct.Currency),
			participation: M(0, ct.Currency),
		}
	}

	w.adjust()
	w.carveOut()
	w.preferences()
	w.catchUp()
	return w.result(), nil
}

// payoutAcc accumulates the three payout components for one shareholder.
// All phases write here; only the final aggregation reads it.
type payoutAcc struct {
	carveOut      Money
	preference    Money
	participation Money
}

// waterfall is the shared mutable ledger of one engine run.
type waterfall struct {
	ct       *CapTable
	holdings map[string]*Holding
	prefs    []LiquidationPreference
	cfg      WaterfallConfig

	remaining Money
	seq       int
	steps     []WaterfallStep
	acc       map[string]*payoutAcc
	excluded  map[string]bool // share classes flagged non-participating
	diags     []string
}

// step appends a trace line recording the current remaining balance.
func (w *waterfall) step(label, class string, amount Money, by map[string]Money, isTotal bool) {
	w.seq++
	w.steps = append(w.steps, WaterfallStep{
		Seq:           w.seq,
		Label:         label,
		Class:         class,
		Amount:        amount,
		Remaining:     w.remaining,
		ByShareholder: by,
		IsTotal:       isTotal,
	})
}

// adjust deducts the M&A adjustments from the distributable amount, one
// step each so the trace explains the reduced balance.
func (w *waterfall) adjust() {
	deduct := func(label string, amount Money) {
		if !amount.IsPositive() {
			return
		}
		amount = amount.Min(w.remaining)
		w.remaining = w.remaining.Sub(amount)
		w.step(label, "", amount, nil, false)
	}
	deduct("Escrow holdback", w.cfg.Adjustments.Escrow)
	deduct("R&W reserve", w.cfg.Adjustments.Reps)
	deduct("Working capital true-up", w.cfg.Adjustments.WorkingCapital)
}

// eligible reports whether a role benefits from the carve-out.
func (w *waterfall) eligible(r Role) bool {
	switch w.cfg.CarveOutBeneficiary {
	case FoundersOnly:
		return r == Founder
	case Team:
		return r == Founder || r == Employee
	default:
		return true
	}
}

// carveOut reserves a percentage of the proceeds off the top and splits
// it pro-rata by shares+options among the eligible shareholders. The
// amount is deducted even when nobody is eligible to receive it.
func (w *waterfall) carveOut() {
	if w.cfg.CarveOutPercent <= 0 || !w.remaining.IsPositive() {
		return
	}
	start := w.remaining
	carve := w.cfg.CarveOutPercent.Of(start).Min(start)

	// weight per eligible shareholder: fully diluted shares + options
	weights := make(map[string]Quantity)
	var totalWeight Quantity
	for _, sh := range w.ct.Shareholders {
		if !w.eligible(sh.Role) {
			continue
		}
		h := w.holdings[sh.ID]
		q := h.TotalShares.Add(h.TotalOptions)
		if q.IsZero() {
			continue
		}
		weights[sh.ID] = q
		totalWeight = totalWeight.Add(q)
	}

	if totalWeight.IsZero() {
		// funds are deducted but stay unallocated
		w.remaining = start.Sub(carve)
		w.step(fmt.Sprintf("Carve-out %s for %s", w.cfg.CarveOutPercent, w.cfg.CarveOutBeneficiary), "", carve, nil, true)
		w.diags = append(w.diags, fmt.Sprintf("carve-out beneficiary %q holds no shares or options; %s unallocated", w.cfg.CarveOutBeneficiary, carve))
		return
	}

	// one step per share class touched by the eligible subset; options
	// are bucketed into the Ordinary class
	classes := make(map[string]struct{})
	for id := range weights {
		h := w.holdings[id]
		for class, q := range h.SharesByClass {
			if q.IsPositive() {
				classes[class] = struct{}{}
			}
		}
		if h.TotalOptions.IsPositive() {
			classes[OrdinaryClass] = struct{}{}
		}
	}

	for _, class := range displayClasses(classes) {
		by := make(map[string]Money)
		classAmount := M(0, w.ct.Currency)
		for _, sh := range w.ct.Shareholders {
			if _, ok := weights[sh.ID]; !ok {
				continue
			}
			h := w.holdings[sh.ID]
			q := h.shares(class)
			if class == OrdinaryClass {
				q = q.Add(h.TotalOptions)
			}
			amount := prorate(carve, q, totalWeight)
			if amount.IsZero() {
				continue
			}
			w.acc[sh.ID].carveOut = w.acc[sh.ID].carveOut.Add(amount)
			by[sh.ID] = amount
			classAmount = classAmount.Add(amount)
		}
		w.remaining = w.remaining.Sub(classAmount)
		w.step("Carve-out", class, classAmount, by, false)
	}

	// the class steps consume the carve amount up to division precision;
	// the subtotal row restates the exact balance
	w.remaining = start.Sub(carve)
	w.step(fmt.Sprintf("Carve-out %s for %s", w.cfg.CarveOutPercent, w.cfg.CarveOutBeneficiary), "", carve, nil, true)
}

// claims resolves the preference list against the cap table, sorted by
// ascending seniority. Dangling round references and zero-claim rounds
// are skipped with a diagnostic.
func (w *waterfall) claims() []claim {
	prefs := slices.Clone(w.prefs)
	slices.SortStableFunc(prefs, func(a, b LiquidationPreference) int { return a.Seniority - b.Seniority })

	var claims []claim
	for _, p := range prefs {
		r := w.ct.Round(p.Round)
		if r == nil {
			w.diags = append(w.diags, fmt.Sprintf("liquidation preference references unknown round %q; skipped", p.Round))
			continue
		}
		total := M(0, w.ct.Currency)
		for _, inv := range r.Investments {
			total = total.Add(inv.Amount.Mul(p.Multiple))
		}
		if total.IsZero() {
			w.diags = append(w.diags, fmt.Sprintf("round %q has no invested capital; preference skipped", p.Round))
			continue
		}
		claims = append(claims, claim{pref: p, round: r, total: total})
	}
	return claims
}

// preferences pays the liquidation-preference stack. Within a round the
// payout is always pro-rated by investment size; across rounds the
// configured strategy decides (sequential or pari-passu).
func (w *waterfall) preferences() {
	if w.cfg.Structure == CommonOnly || !w.remaining.IsPositive() {
		return
	}

	claims := w.claims()
	var strategy payoutStrategy = sequentialPayout{}
	if w.cfg.Structure == PariPassu {
		strategy = pariPassuPayout{}
	}
	paid := strategy.resolve(claims, w.remaining)

	for i, c := range claims {
		if c.pref.Type == NonParticipating {
			// made whole here, excluded from the pro-rata remainder
			w.excluded[c.round.Class] = true
		}
		if !paid[i].IsPositive() {
			continue
		}

		ratio := paid[i].DivPrice(c.total)
		by := make(map[string]Money)
		for _, inv := range c.round.Investments {
			share := inv.Amount.Mul(c.pref.Multiple).Mul(ratio)
			if share.IsZero() {
				continue
			}
			acc, ok := w.acc[inv.Shareholder]
			if !ok {
				w.diags = append(w.diags, fmt.Sprintf("round %q investment by unknown shareholder %q; skipped", c.round.ID, inv.Shareholder))
				continue
			}
			acc.preference = acc.preference.Add(share)
			by[inv.Shareholder] = by[inv.Shareholder].Add(share)
		}

		w.remaining = w.remaining.Sub(paid[i])
		w.step(fmt.Sprintf("%s liquidation preference (%sx)", c.round.Name, c.pref.Multiple), c.round.Class, paid[i], by, false)
		if c.pref.Type == Participating {
			// subtotal separating the preference from the later participation
			w.step(fmt.Sprintf("%s preference subtotal", c.round.Name), c.round.Class, paid[i], nil, true)
		}
	}
}

// catchUp distributes everything left pro-rata over the participating
// shares: every share whose class was not flagged non-participating,
// plus all options. This phase is terminal: it zeroes the balance, and
// when no participating share exists the residual is abandoned.
func (w *waterfall) catchUp() {
	if !w.remaining.IsPositive() {
		return
	}
	pool := w.remaining

	// total participating weight
	var total Quantity
	for _, sh := range w.ct.Shareholders {
		h := w.holdings[sh.ID]
		total = total.Add(h.TotalOptions)
		for class, n := range h.SharesByClass {
			if w.excluded[class] {
				continue
			}
			total = total.Add(n)
		}
	}
	if total.IsZero() {
		w.diags = append(w.diags, fmt.Sprintf("no participating shares; %s left undistributed", pool))
		return
	}

	classes := make(map[string]struct{})
	for _, h := range w.holdings {
		for class, q := range h.SharesByClass {
			if !w.excluded[class] && q.IsPositive() {
				classes[class] = struct{}{}
			}
		}
		if h.TotalOptions.IsPositive() {
			classes[OrdinaryClass] = struct{}{}
		}
	}

	for _, class := range displayClasses(classes) {
		by := make(map[string]Money)
		classAmount := M(0, w.ct.Currency)
		for _, sh := range w.ct.Shareholders {
			h := w.holdings[sh.ID]
			q := h.shares(class)
			if w.excluded[class] {
				q = Q(0)
			}
			if class == OrdinaryClass {
				q = q.Add(h.TotalOptions)
			}
			amount := prorate(pool, q, total)
			if amount.IsZero() {
				continue
			}
			w.acc[sh.ID].participation = w.acc[sh.ID].participation.Add(amount)
			by[sh.ID] = amount
			classAmount = classAmount.Add(amount)
		}
		w.remaining = w.remaining.Sub(classAmount)
		w.step("Pro-rata distribution", class, classAmount, by, false)
	}

	w.remaining = M(0, w.ct.Currency)
	w.step("Total pro-rata distribution", "", pool, nil, true)
}

// result aggregates the accumulators into per-shareholder payouts, in
// cap-table order. The option strike cost is netted against the gross
// payout and the result floored at zero: the model never checks whether
// options are in the money, it always deducts.
func (w *waterfall) result() *WaterfallResult {
	res := &WaterfallResult{Steps: w.steps, Diagnostics: w.diags}
	for _, sh := range w.ct.Shareholders {
		h := w.holdings[sh.ID]
		acc := w.acc[sh.ID]

		strike := M(0, w.ct.Currency)
		for pool := range w.ct.Pools() {
			n := h.OptionsByPool[pool.ID]
			if n.IsZero() || pool.Strike.IsZero() {
				continue
			}
			strike = strike.Add(pool.Strike.Mul(n))
		}

		total := acc.carveOut.Add(acc.preference).Add(acc.participation).Sub(strike)
		if total.IsNegative() {
			total = M(0, w.ct.Currency)
		}

		multiple := Q(0)
		if h.TotalInvested.IsPositive() {
			multiple = total.DivPrice(h.TotalInvested)
		}

		res.Payouts = append(res.Payouts, WaterfallPayout{
			Shareholder:   sh.ID,
			Name:          sh.Name,
			Role:          sh.Role,
			CarveOut:      acc.carveOut,
			Preference:    acc.preference,
			Participation: acc.participation,
			StrikeCost:    strike,
			Total:         total,
			Invested:      h.TotalInvested,
			Multiple:      multiple,
		})
	}
	return res
}

// displayClasses orders share classes for the trace: alphabetical with
// the Ordinary class forced last.
func displayClasses(set map[string]struct{}) []string {
	classes := slices.Sorted(maps.Keys(set))
	if i := slices.Index(classes, OrdinaryClass); i >= 0 {
		classes = append(slices.Delete(classes, i, i+1), OrdinaryClass)
	}
	return classes
}
