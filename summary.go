package captable

// Holding summarizes one shareholder's fully-diluted position: shares per
// class, options per grant pool, and total cash invested. It is the input
// the waterfall engine works from.
type Holding struct {
	Shareholder   string
	SharesByClass map[string]Quantity
	OptionsByPool map[string]Quantity
	TotalShares   Quantity
	TotalOptions  Quantity
	TotalInvested Money
}

// shares returns the shares held in a class, zero when none.
func (h *Holding) shares(class string) Quantity {
	return h.SharesByClass[class]
}

// Summarize computes the capitalization summary for every shareholder.
// Rounds flagged as pools feed the option counters; all other rounds feed
// the per-class share counters. Every invested amount, pool or not,
// counts toward TotalInvested.
func (ct *CapTable) Summarize() map[string]*Holding {
	holdings := make(map[string]*Holding, len(ct.Shareholders))
	for _, sh := range ct.Shareholders {
		holdings[sh.ID] = &Holding{
			Shareholder:   sh.ID,
			SharesByClass: make(map[string]Quantity),
			OptionsByPool: make(map[string]Quantity),
			TotalInvested: M(0, ct.Currency),
		}
	}

	for _, r := range ct.Rounds {
		for _, inv := range r.Investments {
			h, ok := holdings[inv.Shareholder]
			if !ok {
				// investment from an unlisted shareholder, ignore it
				continue
			}
			if r.Pool {
				h.OptionsByPool[r.ID] = h.OptionsByPool[r.ID].Add(inv.Shares)
				h.TotalOptions = h.TotalOptions.Add(inv.Shares)
			} else {
				h.SharesByClass[r.Class] = h.SharesByClass[r.Class].Add(inv.Shares)
				h.TotalShares = h.TotalShares.Add(inv.Shares)
			}
			h.TotalInvested = h.TotalInvested.Add(inv.Amount)
		}
	}
	return holdings
}
