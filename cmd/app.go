// Package cmd implements the CLI application to manage a cap table and
// run exit waterfalls.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/captable"
	"github.com/google/subcommands"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var capTableFile = flag.String("captable-file", "captable.jsonl", "Path to the cap-table file (JSONL format)")

// Commands is the list of all subcommands, in help display order.
// A main package registers them all and executes the user-selected one.
var Commands = []subcommands.Command{
	subcommands.HelpCommand(),
	subcommands.FlagsCommand(),
	subcommands.CommandsCommand(),
	&waterfallCmd{},
	&scenarioCmd{},
	&summaryCmd{},
	&fmtCmd{},
	&topicCmd{},
	&addShareholderCmd{},
	&addRoundCmd{},
	&addPrefCmd{},
}

// DecodeCapTable loads the cap table and preference list from the app
// cap-table file. A missing file yields an empty cap table.
func DecodeCapTable() (*captable.CapTable, []captable.LiquidationPreference, error) {
	f, err := os.Open(*capTableFile)
	if errors.Is(err, fs.ErrNotExist) {
		return &captable.CapTable{Currency: "USD"}, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return captable.DecodeCapTable(f)
}

// EncodeCapTable writes the cap table and preference list back to the
// app cap-table file, in canonical form.
func EncodeCapTable(ct *captable.CapTable, prefs []captable.LiquidationPreference) error {
	f, err := os.Create(*capTableFile)
	if err != nil {
		return err
	}
	defer f.Close()
	return captable.EncodeCapTable(f, ct, prefs)
}

// printMarkdown renders markdown to the terminal, falling back to the
// raw text when rendering fails.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// money parses a monetary command-line argument in the cap table currency.
func money(s string, ct *captable.CapTable) (captable.Money, error) {
	var zero captable.Money
	if s == "" {
		return captable.M(0, ct.Currency), nil
	}
	v, err := parseDecimal(s)
	if err != nil {
		return zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return captable.M(v, ct.Currency), nil
}
