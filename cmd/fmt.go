package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the cap-table file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `cap fmt

  Reads the cap-table file and writes it back in canonical JSONL form:
  company first, then shareholders, rounds, and preferences sorted by
  seniority.
`
}

func (*fmtCmd) SetFlags(f *flag.FlagSet) {}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ct, prefs, err := DecodeCapTable()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading cap table %q: %v\n", *capTableFile, err)
		return subcommands.ExitFailure
	}

	if err := EncodeCapTable(ct, prefs); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing cap table %q: %v\n", *capTableFile, err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(os.Stderr, "Formatted %q.\n", *capTableFile)
	return subcommands.ExitSuccess
}
