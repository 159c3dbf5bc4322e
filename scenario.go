package captable

import "fmt"

// ScenarioPoint is the outcome of one engine run in a sensitivity
// analysis: total payouts aggregated by shareholder role.
type ScenarioPoint struct {
	Valuation Money
	ByRole    map[Role]Money
}

// ScenarioReport is the outcome of a sensitivity run over a range of
// exit valuations.
type ScenarioReport struct {
	From, To Money
	Points   []ScenarioPoint
}

// Sensitivity runs the waterfall over evenly spaced exit valuations from
// 'from' to 'to' inclusive and aggregates the total payout per
// shareholder role at each point. Callers diff consecutive points to see
// where preference cliffs sit.
func (ct *CapTable) Sensitivity(prefs []LiquidationPreference, cfg WaterfallConfig, from, to Money, points int) (*ScenarioReport, error) {
	if points < 2 {
		return nil, fmt.Errorf("sensitivity needs at least 2 points, got %d", points)
	}
	if to.LessThan(from) {
		return nil, fmt.Errorf("valuation range is inverted: %s > %s", from, to)
	}

	report := &ScenarioReport{From: from, To: to}
	span := to.Sub(from).Div(Q(points - 1))
	for i := 0; i < points; i++ {
		valuation := from.Add(span.Mul(Q(i)))
		if i == points-1 {
			valuation = to // avoid accumulating division drift on the last point
		}
		res, err := ct.Waterfall(valuation, prefs, cfg)
		if err != nil {
			return nil, err
		}

		point := ScenarioPoint{Valuation: valuation, ByRole: make(map[Role]Money)}
		for _, p := range res.Payouts {
			group, ok := point.ByRole[p.Role]
			if !ok {
				group = M(0, ct.Currency)
			}
			point.ByRole[p.Role] = group.Add(p.Total)
		}
		report.Points = append(report.Points, point)
	}
	return report, nil
}

// Delta returns the change in each role's aggregate payout between point
// i-1 and point i.
func (r *ScenarioReport) Delta(i int) map[Role]Money {
	if i <= 0 || i >= len(r.Points) {
		return nil
	}
	prev, cur := r.Points[i-1].ByRole, r.Points[i].ByRole
	delta := make(map[Role]Money, len(cur))
	for role, amount := range cur {
		delta[role] = amount.Sub(prev[role])
	}
	return delta
}
