package captable

import (
	"errors"
	"fmt"
)

// ValidateInputs checks the waterfall inputs for the few conditions that
// are genuine defects rather than degradable inconsistencies: a negative
// exit valuation, a negative preference multiple, a non-positive
// seniority, or two preference rules for the same round. All failures
// are reported together.
func ValidateInputs(exit Money, prefs []LiquidationPreference) error {
	var errs []error
	if exit.IsNegative() {
		errs = append(errs, fmt.Errorf("exit valuation %s is negative", exit))
	}
	seen := make(map[string]bool)
	for _, p := range prefs {
		if p.Multiple.IsNegative() {
			errs = append(errs, fmt.Errorf("preference on round %q has negative multiple %s", p.Round, p.Multiple))
		}
		if p.Seniority <= 0 {
			errs = append(errs, fmt.Errorf("preference on round %q has non-positive seniority %d", p.Round, p.Seniority))
		}
		if seen[p.Round] {
			errs = append(errs, fmt.Errorf("round %q has more than one preference rule", p.Round))
		}
		seen[p.Round] = true
	}
	return errors.Join(errs...)
}
