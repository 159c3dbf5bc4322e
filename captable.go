package captable

import "iter"

// OrdinaryClass is the share class of common stock. Options are
// conventionally bucketed into it for display, and the class is always
// displayed last.
const OrdinaryClass = "Ordinary"

// CapTable is the aggregate root: the company's financing rounds, its
// shareholders, and its option pools (rounds flagged as pools). It is
// owned by the caller; the engine only reads it.
type CapTable struct {
	Company      string
	Currency     string
	Shareholders []Shareholder
	Rounds       []Round
}

// Shareholder identifies one holder of shares or options.
type Shareholder struct {
	ID   string
	Name string
	Role Role
}

// Round is one financing event, or an option-grant pool when Pool is set.
// Pool investments are option grants: Shares is the option count and
// Amount is usually zero. A pool with a zero Strike grants options with
// no exercise cost.
type Round struct {
	ID            string
	Name          string
	Class         string
	Pool          bool
	PreMoney      Money
	PricePerShare Money
	Strike        Money
	Investments   []Investment
}

// Investment is one shareholder's stake in a round.
type Investment struct {
	Shareholder string
	Amount      Money
	Shares      Quantity
}

// Raised returns the total cash invested in the round.
func (r *Round) Raised() Money {
	var total Money
	for _, inv := range r.Investments {
		total = total.Add(inv.Amount)
	}
	return total
}

// Round finds a round by id. Linear scan: cap tables have tens of rounds
// at most.
func (ct *CapTable) Round(id string) *Round {
	for i := range ct.Rounds {
		if ct.Rounds[i].ID == id {
			return &ct.Rounds[i]
		}
	}
	return nil
}

// Shareholder finds a shareholder by id.
func (ct *CapTable) Shareholder(id string) *Shareholder {
	for i := range ct.Shareholders {
		if ct.Shareholders[i].ID == id {
			return &ct.Shareholders[i]
		}
	}
	return nil
}

// Pools returns an iterator over the option-pool rounds.
func (ct *CapTable) Pools() iter.Seq[*Round] {
	return func(yield func(*Round) bool) {
		for i := range ct.Rounds {
			if ct.Rounds[i].Pool {
				if !yield(&ct.Rounds[i]) {
					return
				}
			}
		}
	}
}
