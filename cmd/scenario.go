package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/captable"
	"github.com/etnz/captable/renderer"
	"github.com/google/subcommands"
)

// scenarioCmd holds the flags for the 'scenario' subcommand.
type scenarioCmd struct {
	from        string
	to          string
	points      int
	carve       float64
	beneficiary string
	structure   string
}

func (*scenarioCmd) Name() string     { return "scenario" }
func (*scenarioCmd) Synopsis() string { return "payout sensitivity over a range of exit valuations" }
func (*scenarioCmd) Usage() string {
	return `cap scenario -from <valuation> -to <valuation> [-points <n>] [-carve <pct>] [-beneficiary <who>] [-structure <mode>]

  Runs the waterfall over evenly spaced exit valuations and shows the
  aggregate payout per shareholder role at each point, with the change
  from the previous point.
`
}

func (c *scenarioCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "Lowest exit valuation (required)")
	f.StringVar(&c.to, "to", "", "Highest exit valuation (required)")
	f.IntVar(&c.points, "points", 11, "Number of valuations to evaluate")
	f.Float64Var(&c.carve, "carve", 0, "Carve-out percentage (0 disables)")
	f.StringVar(&c.beneficiary, "beneficiary", captable.Everyone.String(), "Carve-out beneficiary (everyone, founders, team)")
	f.StringVar(&c.structure, "structure", captable.Standard.String(), "Payout structure (standard, pari-passu, common-only)")
}

func (c *scenarioCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.from == "" || c.to == "" {
		fmt.Fprintln(os.Stderr, "-from and -to are required")
		return subcommands.ExitUsageError
	}

	ct, prefs, err := DecodeCapTable()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading cap table %q: %v\n", *capTableFile, err)
		return subcommands.ExitFailure
	}

	from, err := money(c.from, ct)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	to, err := money(c.to, ct)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	var cfg captable.WaterfallConfig
	if cfg.CarveOutBeneficiary, err = captable.ParseBeneficiary(c.beneficiary); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if cfg.Structure, err = captable.ParsePayoutStructure(c.structure); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	cfg.CarveOutPercent = captable.Percent(c.carve)

	report, err := ct.Sensitivity(prefs, cfg, from, to, c.points)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing sensitivity: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.ScenarioMarkdown(ct, report))
	return subcommands.ExitSuccess
}
