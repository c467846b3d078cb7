/*
validate.go - Blocking structural validation

PURPOSE:
  The single source of blocking errors for the pricing core. The engine
  itself is total and never fails; callers run Validate before (or
  alongside) ComputeModel and decide whether to block a save or submit
  on IsValid.

RULES:
  - Client rate and sold days must be positive
  - Role weights must not be negative (zero is a legal weight)
  - At least one deliverable is required
  - Every deliverable needs a name, positive days, an owner and a role

ACCUMULATION:
  All violated rules are collected in one call. A single invocation
  surfaces every problem simultaneously; nothing short-circuits.

SEE ALSO:
  - warnings.go: Non-blocking advisories, evaluated separately
*/
package pricing

import (
	"fmt"
	"sort"
	"strings"
)

// Validate runs every structural check against the inputs and returns the
// accumulated list of human-readable errors. IsValid is true iff the list
// is empty.
func Validate(in Inputs) ValidationResult {
	var errs []string

	if !(in.ClientRate > 0) {
		errs = append(errs, "Client rate must be greater than zero")
	}
	if !(in.SoldDays > 0) {
		errs = append(errs, "Sold days must be greater than zero")
	}

	// Map iteration order is random; sort so repeated calls report
	// weight errors in a stable order.
	roles := make([]string, 0, len(in.RoleWeights))
	for role := range in.RoleWeights {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	for _, role := range roles {
		if in.RoleWeights[role] < 0 {
			errs = append(errs, fmt.Sprintf("%s weight cannot be negative", role))
		}
	}

	if len(in.Deliverables) == 0 {
		errs = append(errs, "At least one deliverable is required")
	}

	for i, d := range in.Deliverables {
		// The name check is positional (1-based); every later check
		// names the deliverable, even when the name is blank.
		if strings.TrimSpace(d.Name) == "" {
			errs = append(errs, fmt.Sprintf("Deliverable %d must have a name", i+1))
		}
		if !(d.Days > 0) {
			errs = append(errs, fmt.Sprintf("Deliverable %q must have days > 0", d.Name))
		}
		if strings.TrimSpace(d.Owner) == "" {
			errs = append(errs, fmt.Sprintf("Deliverable %q must have an owner assigned", d.Name))
		}
		if strings.TrimSpace(d.Role) == "" {
			errs = append(errs, fmt.Sprintf("Deliverable %q must have a role assigned", d.Name))
		}
	}

	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}
