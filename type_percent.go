package captable

import "fmt"

type Percent float64

// Of returns the given fraction of a monetary amount.
func (p Percent) Of(m Money) Money {
	return m.Mul(Q(float64(p)).Div(Q(100)))
}

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}
