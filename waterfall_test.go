package captable

import (
	"strings"
	"testing"
)

// parityTable is the two-holder reference table: a founder with
// 9,000,000 ordinary shares and an investor who put 1,000,000 into
// Series A for 1,000,000 preferred shares convertible at parity.
func parityTable() *CapTable {
	return &CapTable{
		Company:  "Acme",
		Currency: "USD",
		Shareholders: []Shareholder{
			{ID: "alice", Name: "Alice", Role: Founder},
			{ID: "vc", Name: "Vreeland Capital", Role: Investor},
		},
		Rounds: []Round{
			{ID: "inc", Name: "Incorporation", Class: OrdinaryClass, Investments: []Investment{
				{Shareholder: "alice", Amount: USD(0), Shares: Q(9_000_000)},
			}},
			{ID: "series-a", Name: "Series A", Class: "Preferred A", Investments: []Investment{
				{Shareholder: "vc", Amount: USD(1_000_000), Shares: Q(1_000_000)},
			}},
		},
	}
}

func TestWaterfall_ConcreteScenario(t *testing.T) {
	// 1x non-participating preference at a 2,000,000 exit: the
	// preference binds, the investor takes 1,000,000 and is excluded
	// from the remainder, which goes entirely to the ordinary shares.
	ct := parityTable()
	prefs := []LiquidationPreference{
		{Round: "series-a", Multiple: Q(1), Type: NonParticipating, Seniority: 1},
	}

	res, err := ct.Waterfall(USD(2_000_000), prefs, WaterfallConfig{})
	if err != nil {
		t.Fatalf("Waterfall() failed: %v", err)
	}

	vc := payoutOf(t, res, "vc")
	if !approx(vc.Preference, USD(1_000_000)) {
		t.Errorf("investor preference = %s, want %s", vc.Preference, USD(1_000_000))
	}
	if !vc.Participation.IsZero() {
		t.Errorf("non-participating investor got participation %s", vc.Participation)
	}
	if !approx(vc.Total, USD(1_000_000)) {
		t.Errorf("investor total = %s, want %s", vc.Total, USD(1_000_000))
	}
	if !vc.Multiple.Equal(Q(1)) {
		t.Errorf("investor multiple = %s, want 1", vc.Multiple)
	}

	alice := payoutOf(t, res, "alice")
	if !approx(alice.Total, USD(1_000_000)) {
		t.Errorf("founder total = %s, want %s", alice.Total, USD(1_000_000))
	}
	if !alice.Multiple.IsZero() {
		t.Errorf("founder invested nothing, multiple = %s, want 0", alice.Multiple)
	}
}

func TestWaterfall_Conservation(t *testing.T) {
	ct := parityTable()
	// add an option pool so fully-diluted weights are exercised
	ct.Shareholders = append(ct.Shareholders, Shareholder{ID: "emp", Name: "Eve", Role: Employee})
	ct.Rounds = append(ct.Rounds, Round{ID: "esop", Name: "ESOP", Pool: true, Strike: USD(0.25), Investments: []Investment{
		{Shareholder: "emp", Amount: USD(0), Shares: Q(500_000)},
	}})

	prefs := []LiquidationPreference{
		{Round: "series-a", Multiple: Q(2), Type: Participating, Seniority: 1},
	}

	testCases := []struct {
		name string
		exit Money
		cfg  WaterfallConfig
	}{
		{"no config", USD(5_000_000), WaterfallConfig{}},
		{"carve-out for everyone", USD(5_000_000), WaterfallConfig{CarveOutPercent: 10, CarveOutBeneficiary: Everyone}},
		{"carve-out for the team", USD(5_000_000), WaterfallConfig{CarveOutPercent: 12.5, CarveOutBeneficiary: Team}},
		{"pari-passu", USD(1_000_000), WaterfallConfig{Structure: PariPassu}},
		{"common only", USD(3_000_000), WaterfallConfig{Structure: CommonOnly}},
		{"preference exceeds proceeds", USD(500_000), WaterfallConfig{}},
		{"zero exit", USD(0), WaterfallConfig{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := ct.Waterfall(tc.exit, prefs, tc.cfg)
			if err != nil {
				t.Fatalf("Waterfall() failed: %v", err)
			}
			if got := distributed(res); !approx(got, tc.exit) {
				t.Errorf("distributed %s of %s", got, tc.exit)
			}
		})
	}
}

func TestWaterfall_NonNegativity(t *testing.T) {
	// The strike cost always nets against the gross payout, in the
	// money or not, and the total floors at zero.
	ct := &CapTable{
		Company:  "Acme",
		Currency: "USD",
		Shareholders: []Shareholder{
			{ID: "alice", Name: "Alice", Role: Founder},
			{ID: "emp", Name: "Eve", Role: Employee},
		},
		Rounds: []Round{
			{ID: "inc", Name: "Incorporation", Class: OrdinaryClass, Investments: []Investment{
				{Shareholder: "alice", Amount: USD(0), Shares: Q(900_000)},
			}},
			{ID: "esop", Name: "ESOP", Pool: true, Strike: USD(10), Investments: []Investment{
				{Shareholder: "emp", Amount: USD(0), Shares: Q(100_000)},
			}},
		},
	}

	res, err := ct.Waterfall(USD(100_000), nil, WaterfallConfig{})
	if err != nil {
		t.Fatalf("Waterfall() failed: %v", err)
	}

	emp := payoutOf(t, res, "emp")
	if !approx(emp.Participation, USD(10_000)) {
		t.Errorf("employee participation = %s, want %s", emp.Participation, USD(10_000))
	}
	if !approx(emp.StrikeCost, USD(1_000_000)) {
		t.Errorf("employee strike cost = %s, want %s", emp.StrikeCost, USD(1_000_000))
	}
	if !emp.Total.IsZero() {
		t.Errorf("employee total = %s, want 0", emp.Total)
	}
	for _, p := range res.Payouts {
		if p.Total.IsNegative() {
			t.Errorf("shareholder %q has negative total %s", p.Shareholder, p.Total)
		}
	}
}

func TestWaterfall_PreferenceCap(t *testing.T) {
	// However large the exit, a round's aggregate preference never
	// exceeds invested × multiple.
	ct := parityTable()
	prefs := []LiquidationPreference{
		{Round: "series-a", Multiple: Q(2), Type: NonParticipating, Seniority: 1},
	}

	res, err := ct.Waterfall(USD(100_000_000), prefs, WaterfallConfig{})
	if err != nil {
		t.Fatalf("Waterfall() failed: %v", err)
	}

	vc := payoutOf(t, res, "vc")
	limit := USD(2_000_000) // 1,000,000 invested × 2x
	if vc.Preference.GreaterThan(limit) {
		t.Errorf("preference %s exceeds cap %s", vc.Preference, limit)
	}
	if !approx(vc.Preference, limit) {
		t.Errorf("preference = %s, want the full cap %s", vc.Preference, limit)
	}
}

// stackedTable returns two preferred rounds with 1,000,000 and
// 3,000,000 invested, plus an ordinary founder position.
func stackedTable() *CapTable {
	return &CapTable{
		Company:  "Acme",
		Currency: "USD",
		Shareholders: []Shareholder{
			{ID: "alice", Name: "Alice", Role: Founder},
			{ID: "vc1", Name: "First Fund", Role: Investor},
			{ID: "vc2", Name: "Second Fund", Role: Investor},
		},
		Rounds: []Round{
			{ID: "inc", Name: "Incorporation", Class: OrdinaryClass, Investments: []Investment{
				{Shareholder: "alice", Amount: USD(0), Shares: Q(6_000_000)},
			}},
			{ID: "series-a", Name: "Series A", Class: "Preferred A", Investments: []Investment{
				{Shareholder: "vc1", Amount: USD(1_000_000), Shares: Q(1_000_000)},
			}},
			{ID: "series-b", Name: "Series B", Class: "Preferred B", Investments: []Investment{
				{Shareholder: "vc2", Amount: USD(3_000_000), Shares: Q(1_500_000)},
			}},
		},
	}
}

func TestWaterfall_SeniorityOrdering(t *testing.T) {
	// Standard mode: with proceeds below the senior claim, the junior
	// preference receives nothing.
	ct := stackedTable()
	prefs := []LiquidationPreference{
		{Round: "series-b", Multiple: Q(1), Type: NonParticipating, Seniority: 2},
		{Round: "series-a", Multiple: Q(1), Type: NonParticipating, Seniority: 1},
	}

	res, err := ct.Waterfall(USD(800_000), prefs, WaterfallConfig{Structure: Standard})
	if err != nil {
		t.Fatalf("Waterfall() failed: %v", err)
	}

	if senior := payoutOf(t, res, "vc1"); !approx(senior.Preference, USD(800_000)) {
		t.Errorf("senior preference = %s, want %s", senior.Preference, USD(800_000))
	}
	if junior := payoutOf(t, res, "vc2"); !junior.Preference.IsZero() {
		t.Errorf("junior preference = %s, want 0", junior.Preference)
	}
}

func TestWaterfall_PariPassuEquality(t *testing.T) {
	// Equal seniority, claims of 1,000,000 and 3,000,000, proceeds of
	// 2,000,000: each round is paid in proportion to its claim.
	ct := stackedTable()
	prefs := []LiquidationPreference{
		{Round: "series-a", Multiple: Q(1), Type: NonParticipating, Seniority: 1},
		{Round: "series-b", Multiple: Q(1), Type: NonParticipating, Seniority: 1},
	}

	res, err := ct.Waterfall(USD(2_000_000), prefs, WaterfallConfig{Structure: PariPassu})
	if err != nil {
		t.Fatalf("Waterfall() failed: %v", err)
	}

	if a := payoutOf(t, res, "vc1"); !approx(a.Preference, USD(500_000)) {
		t.Errorf("series A paid %s, want %s", a.Preference, USD(500_000))
	}
	if b := payoutOf(t, res, "vc2"); !approx(b.Preference, USD(1_500_000)) {
		t.Errorf("series B paid %s, want %s", b.Preference, USD(1_500_000))
	}

	// same inputs in standard mode exhaust the fund in list order
	res, err = ct.Waterfall(USD(2_000_000), prefs, WaterfallConfig{Structure: Standard})
	if err != nil {
		t.Fatalf("Waterfall() failed: %v", err)
	}
	if a := payoutOf(t, res, "vc1"); !approx(a.Preference, USD(1_000_000)) {
		t.Errorf("standard mode series A paid %s, want %s", a.Preference, USD(1_000_000))
	}
	if b := payoutOf(t, res, "vc2"); !approx(b.Preference, USD(1_000_000)) {
		t.Errorf("standard mode series B paid %s, want %s", b.Preference, USD(1_000_000))
	}
}

func TestWaterfall_NoPreferenceProRata(t *testing.T) {
	ct := &CapTable{
		Company:  "Acme",
		Currency: "USD",
		Shareholders: []Shareholder{
			{ID: "alice", Name: "Alice", Role: Founder},
			{ID: "bob", Name: "Bob", Role: Founder},
		},
		Rounds: []Round{
			{ID: "inc", Name: "Incorporation", Class: OrdinaryClass, Investments: []Investment{
				{Shareholder: "alice", Amount: USD(0), Shares: Q(750_000)},
				{Shareholder: "bob", Amount: USD(0), Shares: Q(250_000)},
			}},
		},
	}

	res, err := ct.Waterfall(USD(1_000_000), nil, WaterfallConfig{})
	if err != nil {
		t.Fatalf("Waterfall() failed: %v", err)
	}

	if alice := payoutOf(t, res, "alice"); !approx(alice.Total, USD(750_000)) {
		t.Errorf("alice total = %s, want %s", alice.Total, USD(750_000))
	}
	if bob := payoutOf(t, res, "bob"); !approx(bob.Total, USD(250_000)) {
		t.Errorf("bob total = %s, want %s", bob.Total, USD(250_000))
	}
}

func TestWaterfall_ParticipatingDoubleDip(t *testing.T) {
	ct := parityTable()
	prefs := []LiquidationPreference{
		{Round: "series-a", Multiple: Q(1), Type: Participating, Seniority: 1},
	}

	res, err := ct.Waterfall(USD(2_000_000), prefs, WaterfallConfig{})
	if err != nil {
		t.Fatalf("Waterfall() failed: %v", err)
	}

	// preference of 1,000,000 then 10% of the remaining 1,000,000
	vc := payoutOf(t, res, "vc")
	if !approx(vc.Preference, USD(1_000_000)) {
		t.Errorf("preference = %s, want %s", vc.Preference, USD(1_000_000))
	}
	if !approx(vc.Participation, USD(100_000)) {
		t.Errorf("participation = %s, want %s", vc.Participation, USD(100_000))
	}

	// the trace separates the preference from the later participation
	found := false
	for _, s := range res.Steps {
		if s.IsTotal && strings.Contains(s.Label, "preference subtotal") {
			found = true
		}
	}
	if !found {
		t.Error("no preference subtotal step for the participating round")
	}
}

func TestWaterfall_CommonOnlyIgnoresPreferences(t *testing.T) {
	ct := parityTable()
	prefs := []LiquidationPreference{
		{Round: "series-a", Multiple: Q(3), Type: NonParticipating, Seniority: 1},
	}

	res, err := ct.Waterfall(USD(2_000_000), prefs, WaterfallConfig{Structure: CommonOnly})
	if err != nil {
		t.Fatalf("Waterfall() failed: %v", err)
	}

	vc := payoutOf(t, res, "vc")
	if !vc.Preference.IsZero() {
		t.Errorf("common-only paid a preference of %s", vc.Preference)
	}
	if !approx(vc.Participation, USD(200_000)) {
		t.Errorf("investor pro-rata = %s, want %s", vc.Participation, USD(200_000))
	}
}

func TestWaterfall_CarveOut(t *testing.T) {
	ct := parityTable()
	cfg := WaterfallConfig{CarveOutPercent: 10, CarveOutBeneficiary: Everyone}

	res, err := ct.Waterfall(USD(2_000_000), nil, cfg)
	if err != nil {
		t.Fatalf("Waterfall() failed: %v", err)
	}

	carved := USD(0)
	for _, p := range res.Payouts {
		carved = carved.Add(p.CarveOut)
	}
	if !approx(carved, USD(200_000)) {
		t.Errorf("carved %s, want %s", carved, USD(200_000))
	}
	// carve-out is pro-rata by fully diluted holdings: 90/10
	if alice := payoutOf(t, res, "alice"); !approx(alice.CarveOut, USD(180_000)) {
		t.Errorf("founder carve-out = %s, want %s", alice.CarveOut, USD(180_000))
	}
	if got := distributed(res); !approx(got, USD(2_000_000)) {
		t.Errorf("distributed %s of %s", got, USD(2_000_000))
	}
}

func TestWaterfall_CarveOutNoEligibleHolders(t *testing.T) {
	// the founder role holds nothing: the carve-out is deducted but
	// pays nobody
	ct := &CapTable{
		Company:  "Acme",
		Currency: "USD",
		Shareholders: []Shareholder{
			{ID: "alice", Name: "Alice", Role: Founder},
			{ID: "vc", Name: "Vreeland Capital", Role: Investor},
		},
		Rounds: []Round{
			{ID: "series-a", Name: "Series A", Class: "Preferred A", Investments: []Investment{
				{Shareholder: "vc", Amount: USD(1_000_000), Shares: Q(1_000_000)},
			}},
		},
	}
	cfg := WaterfallConfig{CarveOutPercent: 10, CarveOutBeneficiary: FoundersOnly}

	res, err := ct.Waterfall(USD(1_000_000), nil, cfg)
	if err != nil {
		t.Fatalf("Waterfall() failed: %v", err)
	}

	for _, p := range res.Payouts {
		if !p.CarveOut.IsZero() {
			t.Errorf("shareholder %q received carve-out %s", p.Shareholder, p.CarveOut)
		}
	}
	// the investor's pro-rata only covers the post-carve-out balance
	if vc := payoutOf(t, res, "vc"); !approx(vc.Total, USD(900_000)) {
		t.Errorf("investor total = %s, want %s", vc.Total, USD(900_000))
	}
	if len(res.Diagnostics) == 0 {
		t.Error("expected a diagnostic for the unallocated carve-out")
	}
}

func TestWaterfall_DanglingPreferenceSkipped(t *testing.T) {
	ct := parityTable()
	prefs := []LiquidationPreference{
		{Round: "ghost", Multiple: Q(1), Type: NonParticipating, Seniority: 1},
	}

	res, err := ct.Waterfall(USD(1_000_000), prefs, WaterfallConfig{})
	if err != nil {
		t.Fatalf("Waterfall() failed: %v", err)
	}

	for _, p := range res.Payouts {
		if !p.Preference.IsZero() {
			t.Errorf("shareholder %q has preference %s from a dangling rule", p.Shareholder, p.Preference)
		}
	}
	if len(res.Diagnostics) == 0 {
		t.Error("expected a diagnostic for the dangling round reference")
	}
	if got := distributed(res); !approx(got, USD(1_000_000)) {
		t.Errorf("distributed %s of %s", got, USD(1_000_000))
	}
}

func TestWaterfall_ZeroClaimRoundSkipped(t *testing.T) {
	// A preference on a round with no invested capital has a zero claim:
	// it pays nothing, and its share class keeps participating in the
	// pro-rata remainder.
	ct := parityTable()
	prefs := []LiquidationPreference{
		{Round: "inc", Multiple: Q(1), Type: NonParticipating, Seniority: 1},
	}

	res, err := ct.Waterfall(USD(1_000_000), prefs, WaterfallConfig{})
	if err != nil {
		t.Fatalf("Waterfall() failed: %v", err)
	}

	for _, p := range res.Payouts {
		if !p.Preference.IsZero() {
			t.Errorf("shareholder %q has preference %s from a zero-claim round", p.Shareholder, p.Preference)
		}
	}
	if len(res.Diagnostics) == 0 {
		t.Error("expected a diagnostic for the zero-claim round")
	}
	// the round's ordinary shares still take their pro-rata share
	if alice := payoutOf(t, res, "alice"); !approx(alice.Participation, USD(900_000)) {
		t.Errorf("founder participation = %s, want %s", alice.Participation, USD(900_000))
	}
	if got := distributed(res); !approx(got, USD(1_000_000)) {
		t.Errorf("distributed %s of %s", got, USD(1_000_000))
	}
}

func TestWaterfall_NoParticipatingSharesAbandonsResidual(t *testing.T) {
	// Every share class is excluded by a non-participating preference and
	// no options exist: whatever the preferences leave over is abandoned.
	ct := &CapTable{
		Company:  "Acme",
		Currency: "USD",
		Shareholders: []Shareholder{
			{ID: "vc", Name: "Vreeland Capital", Role: Investor},
		},
		Rounds: []Round{
			{ID: "series-a", Name: "Series A", Class: "Preferred A", Investments: []Investment{
				{Shareholder: "vc", Amount: USD(1_000_000), Shares: Q(1_000_000)},
			}},
		},
	}
	prefs := []LiquidationPreference{
		{Round: "series-a", Multiple: Q(1), Type: NonParticipating, Seniority: 1},
	}

	res, err := ct.Waterfall(USD(5_000_000), prefs, WaterfallConfig{})
	if err != nil {
		t.Fatalf("Waterfall() failed: %v", err)
	}

	vc := payoutOf(t, res, "vc")
	if !approx(vc.Preference, USD(1_000_000)) {
		t.Errorf("preference = %s, want %s", vc.Preference, USD(1_000_000))
	}
	if !vc.Participation.IsZero() {
		t.Errorf("participation = %s, want 0", vc.Participation)
	}
	if len(res.Diagnostics) == 0 {
		t.Error("expected a diagnostic for the undistributed residual")
	}
	// only the preference was paid out; the residual stays on the table
	if got := distributed(res); !approx(got, USD(1_000_000)) {
		t.Errorf("distributed %s, want %s", got, USD(1_000_000))
	}
	if last := res.Steps[len(res.Steps)-1]; !approx(last.Remaining, USD(4_000_000)) {
		t.Errorf("final remaining = %s, want %s", last.Remaining, USD(4_000_000))
	}
}

func TestWaterfall_Adjustments(t *testing.T) {
	ct := parityTable()
	cfg := WaterfallConfig{Adjustments: Adjustments{
		Escrow: USD(100_000),
		Reps:   USD(50_000),
	}}

	res, err := ct.Waterfall(USD(2_000_000), nil, cfg)
	if err != nil {
		t.Fatalf("Waterfall() failed: %v", err)
	}

	if got := distributed(res); !approx(got, USD(1_850_000)) {
		t.Errorf("distributed %s, want %s after adjustments", got, USD(1_850_000))
	}
	if s := res.Steps[0]; s.Label != "Escrow holdback" || !approx(s.Amount, USD(100_000)) {
		t.Errorf("first step = %q %s, want escrow holdback of %s", s.Label, s.Amount, USD(100_000))
	}
}

func TestWaterfall_StepTrace(t *testing.T) {
	ct := parityTable()
	prefs := []LiquidationPreference{
		{Round: "series-a", Multiple: Q(1), Type: NonParticipating, Seniority: 1},
	}

	res, err := ct.Waterfall(USD(2_000_000), prefs, WaterfallConfig{})
	if err != nil {
		t.Fatalf("Waterfall() failed: %v", err)
	}

	for i, s := range res.Steps {
		if s.Seq != i+1 {
			t.Errorf("step %d has sequence %d", i, s.Seq)
		}
	}
	last := res.Steps[len(res.Steps)-1]
	if !last.IsTotal {
		t.Error("trace does not end with a total step")
	}
	if !last.Remaining.IsZero() {
		t.Errorf("final remaining = %s, want 0", last.Remaining)
	}
}

func TestValidateInputs(t *testing.T) {
	testCases := []struct {
		name    string
		exit    Money
		prefs   []LiquidationPreference
		wantErr bool
	}{
		{"valid", USD(1), []LiquidationPreference{{Round: "a", Multiple: Q(1), Seniority: 1}}, false},
		{"negative exit", USD(-1), nil, true},
		{"negative multiple", USD(1), []LiquidationPreference{{Round: "a", Multiple: Q(-1), Seniority: 1}}, true},
		{"zero seniority", USD(1), []LiquidationPreference{{Round: "a", Multiple: Q(1), Seniority: 0}}, true},
		{"duplicate round", USD(1), []LiquidationPreference{
			{Round: "a", Multiple: Q(1), Seniority: 1},
			{Round: "a", Multiple: Q(2), Seniority: 2},
		}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateInputs(tc.exit, tc.prefs)
			if (err != nil) != tc.wantErr {
				t.Errorf("ValidateInputs() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
