/*
warnings.go - Non-blocking advisory checks

PURPOSE:
  Inspects the inputs and the computed model for conditions a reviewer
  should look at before sending a quote: lopsided party splits, unusual
  role weights, coarse work breakdowns, suspicious day rates, and an
  hours-vs-days mismatch. Warnings never affect IsValid or the model.

Every rule is independent and all of them are evaluated on every call.
*/
package pricing

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// DefaultRoleWeights is the reference table the deviation rule compares
// against. Injectable via WarningsAgainst so the rule can be tested
// independently of the current role-weight table.
var DefaultRoleWeights = map[string]float64{
	"Sales":              1.8,
	"Solution Architect": 1.4,
	"Project Management": 1.2,
	"Development":        1.0,
	"QA":                 0.8,
	"Junior":             0.6,
}

const (
	// dominantShareThreshold flags a party holding nearly the whole deal.
	dominantShareThreshold = 90

	// weightDeviationRatio is the relative deviation from the default
	// table that triggers a warning.
	weightDeviationRatio = 0.5

	highClientRate = 2000
	lowClientRate  = 300

	// hoursMismatchRatio is the tolerated relative gap between reported
	// total hours and sold days at eight hours per day.
	hoursMismatchRatio = 0.2
)

// Warnings evaluates every advisory rule against the inputs and the
// computed model, comparing role weights to DefaultRoleWeights.
func Warnings(in Inputs, m Model) []string {
	return WarningsAgainst(in, m, DefaultRoleWeights)
}

// WarningsAgainst is Warnings with an explicit default-weight table.
func WarningsAgainst(in Inputs, m Model, defaults map[string]float64) []string {
	var warns []string

	for _, p := range m.Parties {
		key := strings.ToLower(p.Owner)
		if key == "total" || key == "joint" {
			continue
		}
		if p.Percentage.GreaterThan(dec(dominantShareThreshold)) {
			warns = append(warns, fmt.Sprintf(
				"%s has %s%% of revenue - consider rebalancing the work allocation",
				displayName(key), p.Percentage.StringFixed(2)))
		}
	}

	// Only roles present in BOTH tables are checked.
	for _, role := range sortedRoles(in.RoleWeights) {
		def, ok := defaults[role]
		if !ok || def == 0 {
			continue
		}
		weight := in.RoleWeights[role]
		if math.Abs(weight-def)/def > weightDeviationRatio {
			warns = append(warns, fmt.Sprintf(
				"%s weight (%s) deviates significantly from default (%s)",
				role, formatNumber(weight), formatNumber(def)))
		}
	}

	if len(in.Deliverables) < 3 {
		warns = append(warns, "Consider breaking down work into more granular deliverables for better tracking")
	}

	if in.ClientRate > highClientRate {
		warns = append(warns, fmt.Sprintf(
			"Client rate (%s) is extremely high - please verify", formatNumber(in.ClientRate)))
	}
	if in.ClientRate < lowClientRate {
		warns = append(warns, fmt.Sprintf(
			"Client rate (%s) is very low - please verify", formatNumber(in.ClientRate)))
	}

	if in.TotalHours != nil && in.SoldDays > 0 {
		expected := in.SoldDays * 8
		if math.Abs(*in.TotalHours-expected) > hoursMismatchRatio*expected {
			warns = append(warns, fmt.Sprintf(
				"Total hours (%s) does not match sold days (%s days = %s hours)",
				formatNumber(*in.TotalHours), formatNumber(in.SoldDays), formatNumber(expected)))
		}
	}

	return warns
}

// displayName renders a lowercased party key for humans: the RPG initialism
// stays upper-cased, anything else gets a capital first letter.
func displayName(key string) string {
	if key == "rpg" {
		return PartyRPG
	}
	if key == "" {
		return key
	}
	return strings.ToUpper(key[:1]) + key[1:]
}

// formatNumber prints a float the way the form UI does: no exponent,
// no trailing zeros.
func formatNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func sortedRoles(weights map[string]float64) []string {
	roles := make([]string, 0, len(weights))
	for role := range weights {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles
}
