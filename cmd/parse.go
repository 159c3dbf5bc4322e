package cmd

import (
	"fmt"
	"strings"

	"github.com/etnz/captable"
	"github.com/shopspring/decimal"
)

// parseDecimal parses a decimal number, accepting underscores as digit
// separators (1_000_000).
func parseDecimal(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(s, "_", ""))
}

// parseInvestment parses a "shareholder:shares[:amount]" argument into
// an Investment in the cap table currency.
func parseInvestment(arg string, ct *captable.CapTable) (captable.Investment, error) {
	var zero captable.Investment
	parts := strings.Split(arg, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return zero, fmt.Errorf("invalid investment %q, want shareholder:shares[:amount]", arg)
	}
	if ct.Shareholder(parts[0]) == nil {
		return zero, fmt.Errorf("unknown shareholder %q", parts[0])
	}
	shares, err := parseDecimal(parts[1])
	if err != nil {
		return zero, fmt.Errorf("invalid share count in %q: %w", arg, err)
	}
	inv := captable.Investment{
		Shareholder: parts[0],
		Shares:      captable.Q(shares),
		Amount:      captable.M(0, ct.Currency),
	}
	if len(parts) == 3 {
		amount, err := parseDecimal(parts[2])
		if err != nil {
			return zero, fmt.Errorf("invalid amount in %q: %w", arg, err)
		}
		inv.Amount = captable.M(amount, ct.Currency)
	}
	return inv, nil
}
