package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/captable"
	"github.com/google/subcommands"
)

// addShareholderCmd holds the flags for the 'add-shareholder' subcommand.
type addShareholderCmd struct {
	id   string
	name string
	role string
}

func (*addShareholderCmd) Name() string     { return "add-shareholder" }
func (*addShareholderCmd) Synopsis() string { return "add a shareholder to the cap table" }
func (*addShareholderCmd) Usage() string {
	return `cap add-shareholder -id <id> -name <name> [-role <role>]

  Adds a shareholder and rewrites the cap-table file.
`
}

func (c *addShareholderCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Unique shareholder id (required)")
	f.StringVar(&c.name, "name", "", "Display name (required)")
	f.StringVar(&c.role, "role", captable.Investor.String(), "Role (founder, investor, employee, advisor)")
}

func (c *addShareholderCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" || c.name == "" {
		fmt.Fprintln(os.Stderr, "-id and -name are required")
		return subcommands.ExitUsageError
	}
	role, err := captable.ParseRole(c.role)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	ct, prefs, err := DecodeCapTable()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading cap table %q: %v\n", *capTableFile, err)
		return subcommands.ExitFailure
	}
	if ct.Shareholder(c.id) != nil {
		fmt.Fprintf(os.Stderr, "Shareholder %q already exists\n", c.id)
		return subcommands.ExitFailure
	}

	ct.Shareholders = append(ct.Shareholders, captable.Shareholder{ID: c.id, Name: c.name, Role: role})
	if err := EncodeCapTable(ct, prefs); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing cap table %q: %v\n", *capTableFile, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Added shareholder %q to %s\n", c.id, *capTableFile)
	return subcommands.ExitSuccess
}
