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

// waterfallCmd holds the flags for the 'waterfall' subcommand.
type waterfallCmd struct {
	exit        string
	carve       float64
	beneficiary string
	structure   string
	escrow      string
	reps        string
	nwc         string
}

func (*waterfallCmd) Name() string     { return "waterfall" }
func (*waterfallCmd) Synopsis() string { return "distribute exit proceeds among shareholders" }
func (*waterfallCmd) Usage() string {
	return `cap waterfall -e <valuation> [-carve <pct>] [-beneficiary <who>] [-structure <mode>] [-escrow <amt>] [-reps <amt>] [-nwc <amt>]

  Runs the exit waterfall: adjustments, carve-out, liquidation
  preferences, then pro-rata distribution. Prints the step trace and the
  per-shareholder payouts.
`
}

func (c *waterfallCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.exit, "e", "", "Exit valuation (required)")
	f.Float64Var(&c.carve, "carve", 0, "Carve-out percentage (0 disables)")
	f.StringVar(&c.beneficiary, "beneficiary", captable.Everyone.String(), "Carve-out beneficiary (everyone, founders, team)")
	f.StringVar(&c.structure, "structure", captable.Standard.String(), "Payout structure (standard, pari-passu, common-only)")
	f.StringVar(&c.escrow, "escrow", "", "Escrow holdback amount")
	f.StringVar(&c.reps, "reps", "", "Reps & warranties reserve amount")
	f.StringVar(&c.nwc, "nwc", "", "Net working capital true-up amount")
}

func (c *waterfallCmd) config(ct *captable.CapTable) (captable.WaterfallConfig, error) {
	var cfg captable.WaterfallConfig
	var err error
	if cfg.CarveOutBeneficiary, err = captable.ParseBeneficiary(c.beneficiary); err != nil {
		return cfg, err
	}
	if cfg.Structure, err = captable.ParsePayoutStructure(c.structure); err != nil {
		return cfg, err
	}
	cfg.CarveOutPercent = captable.Percent(c.carve)
	if cfg.Adjustments.Escrow, err = money(c.escrow, ct); err != nil {
		return cfg, err
	}
	if cfg.Adjustments.Reps, err = money(c.reps, ct); err != nil {
		return cfg, err
	}
	if cfg.Adjustments.WorkingCapital, err = money(c.nwc, ct); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *waterfallCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.exit == "" {
		fmt.Fprintln(os.Stderr, "-e <valuation> is required")
		return subcommands.ExitUsageError
	}

	ct, prefs, err := DecodeCapTable()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading cap table %q: %v\n", *capTableFile, err)
		return subcommands.ExitFailure
	}

	exit, err := money(c.exit, ct)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	cfg, err := c.config(ct)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	res, err := ct.Waterfall(exit, prefs, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing waterfall: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.WaterfallMarkdown(ct, exit, res))
	return subcommands.ExitSuccess
}
