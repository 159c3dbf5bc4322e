package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/captable"
	"github.com/google/subcommands"
)

// addPrefCmd holds the flags for the 'add-pref' subcommand.
type addPrefCmd struct {
	round     string
	multiple  float64
	typ       string
	seniority int
}

func (*addPrefCmd) Name() string     { return "add-pref" }
func (*addPrefCmd) Synopsis() string { return "add a liquidation preference rule" }
func (*addPrefCmd) Usage() string {
	return `cap add-pref -round <id> [-x <multiple>] [-type <type>] [-seniority <rank>]

  Adds a liquidation preference for a round and rewrites the cap-table
  file. Lower seniority ranks are paid first.
`
}

func (c *addPrefCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.round, "round", "", "Round id the preference applies to (required)")
	f.Float64Var(&c.multiple, "x", 1, "Preference multiple")
	f.StringVar(&c.typ, "type", captable.NonParticipating.String(), "Preference type (participating, non-participating)")
	f.IntVar(&c.seniority, "seniority", 1, "Seniority rank, lower is paid first")
}

func (c *addPrefCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.round == "" {
		fmt.Fprintln(os.Stderr, "-round is required")
		return subcommands.ExitUsageError
	}
	typ, err := captable.ParsePreferenceType(c.typ)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	ct, prefs, err := DecodeCapTable()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading cap table %q: %v\n", *capTableFile, err)
		return subcommands.ExitFailure
	}
	if ct.Round(c.round) == nil {
		fmt.Fprintf(os.Stderr, "Warning: round %q is not in the cap table; the preference will be ignored until it is\n", c.round)
	}

	pref := captable.LiquidationPreference{
		Round:     c.round,
		Multiple:  captable.Q(c.multiple),
		Type:      typ,
		Seniority: c.seniority,
	}
	prefs = append(prefs, pref)
	if err := captable.ValidateInputs(captable.M(0, ct.Currency), prefs); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	if err := EncodeCapTable(ct, prefs); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing cap table %q: %v\n", *capTableFile, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Added preference on round %q to %s\n", c.round, *capTableFile)
	return subcommands.ExitSuccess
}
