package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/captable"
	"github.com/google/subcommands"
)

// addRoundCmd holds the flags for the 'add-round' subcommand.
type addRoundCmd struct {
	id       string
	name     string
	class    string
	pool     bool
	strike   string
	preMoney string
	pps      string
}

func (*addRoundCmd) Name() string     { return "add-round" }
func (*addRoundCmd) Synopsis() string { return "add a financing round or option pool" }
func (*addRoundCmd) Usage() string {
	return `cap add-round -id <id> -name <name> [-class <class>] [-pool] [-strike <price>] [-pre <valuation>] [-pps <price>] <shareholder:shares[:amount]>...

  Adds a round with its investments and rewrites the cap-table file.
  With -pool the round is an option-grant pool: share counts are option
  counts and -strike sets the exercise price.

Usage Examples:
# A priced round with two investors.
$ cap add-round -id series-a -name "Series A" -class "Preferred A" -pre 8_000_000 -pps 2 vc1:1_000_000:2_000_000 vc2:500_000:1_000_000

# An employee option pool.
$ cap add-round -id esop -name "ESOP" -pool -strike 0.25 emp1:50_000
`
}

func (c *addRoundCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Unique round id (required)")
	f.StringVar(&c.name, "name", "", "Display name (required)")
	f.StringVar(&c.class, "class", captable.OrdinaryClass, "Share class label")
	f.BoolVar(&c.pool, "pool", false, "Round is an option-grant pool")
	f.StringVar(&c.strike, "strike", "", "Option strike price (pools only)")
	f.StringVar(&c.preMoney, "pre", "", "Pre-money valuation")
	f.StringVar(&c.pps, "pps", "", "Price per share")
}

func (c *addRoundCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" || c.name == "" {
		fmt.Fprintln(os.Stderr, "-id and -name are required")
		return subcommands.ExitUsageError
	}

	ct, prefs, err := DecodeCapTable()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading cap table %q: %v\n", *capTableFile, err)
		return subcommands.ExitFailure
	}
	if ct.Round(c.id) != nil {
		fmt.Fprintf(os.Stderr, "Round %q already exists\n", c.id)
		return subcommands.ExitFailure
	}

	round := captable.Round{ID: c.id, Name: c.name, Class: c.class, Pool: c.pool}
	if round.Strike, err = money(c.strike, ct); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if round.PreMoney, err = money(c.preMoney, ct); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if round.PricePerShare, err = money(c.pps, ct); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	for _, arg := range f.Args() {
		inv, err := parseInvestment(arg, ct)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		round.Investments = append(round.Investments, inv)
	}

	ct.Rounds = append(ct.Rounds, round)
	if err := EncodeCapTable(ct, prefs); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing cap table %q: %v\n", *capTableFile, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Added round %q to %s\n", c.id, *capTableFile)
	return subcommands.ExitSuccess
}
