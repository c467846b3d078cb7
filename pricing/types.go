/*
Package pricing provides the revenue-allocation calculation engine.

PURPOSE:
  This package contains the domain types and algorithms for splitting a
  fixed pool of contracted professional-services revenue between business
  parties, driven by weighted "deliverable" line items. Given a day rate,
  a number of sold days, a set of deliverables and a role-weight table,
  the engine produces a fully derived pricing model: per-deliverable
  weighted prices, per-party totals, an account-manager uplift, and a
  normalization step that re-bases everything onto the contracted revenue.

KEY CONCEPTS IN THIS FILE (types.go):
  - Deliverable: A priced unit of contracted work (owner, role, days)
  - Inputs: The aggregate argument to the engine, JSON-shaped
  - PricedDeliverable: A deliverable augmented with derived price fields
  - PartyAllocation: Per-party totals, uplift, and normalized share
  - Model: The engine's full output, a pure value

DESIGN PRINCIPLES:
  1. Totality: ComputeModel never fails; bad data degrades to neutral
     defaults (missing role -> weight 1, non-finite days -> 0)
  2. Precision: Uses decimal.Decimal for all money and weight arithmetic
  3. Determinism: Parties and roles keep first-seen order so recomputing
     from identical inputs yields an identical model
  4. Purity: Inputs are treated as a read-only snapshot per invocation

USAGE:
  model := pricing.ComputeModel(pricing.Inputs{
      ClientRate:          1000,
      SoldDays:            50,
      AccountManagerParty: "RPG",
      RoleWeights:         map[string]float64{"Development": 1.0},
      Deliverables: []pricing.Deliverable{
          {ID: "d1", Name: "API build", Owner: "Proaptus", Role: "Development", Days: 10},
      },
  })

SEE ALSO:
  - engine.go: ComputeModel and the allocation algorithm
  - validate.go: Blocking structural validation
  - warnings.go: Non-blocking advisory checks
*/
package pricing

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CONSTANTS - Fixed business rules
// =============================================================================

// Canonical party names. Owners are free-form strings; these two get
// convenience aliases on the Model for the callers that render them.
const (
	PartyRPG      = "RPG"
	PartyProaptus = "Proaptus"
)

var (
	// upliftFactor is the flat premium applied to the account-manager
	// party's revenue before normalization. A fixed business rule, not
	// a configuration knob.
	upliftFactor = decimal.RequireFromString("1.1")

	// noUplift is the identity factor for every other party.
	noUplift = decimal.NewFromInt(1)

	// neutralWeight is substituted when a deliverable's role is absent
	// from the role-weight table. A weight of 0 that IS present in the
	// table is respected (it prices the deliverable at zero).
	neutralWeight = decimal.NewFromInt(1)
)

// =============================================================================
// INPUT TYPES - JSON-shaped, owned by the caller
// =============================================================================

// Deliverable is a unit of work to be priced. The engine never mutates
// deliverables; derived fields live on PricedDeliverable.
type Deliverable struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Owner              string  `json:"owner"`
	Role               string  `json:"role"`
	Days               float64 `json:"days"`
	AcceptanceCriteria string  `json:"acceptanceCriteria,omitempty"`
}

// Inputs is the aggregate argument to the engine.
//
// SoldDays drives TotalRevenue and is deliberately independent of the sum
// of deliverable days: deliverables apportion an already-fixed revenue
// pool, they do not compute it.
type Inputs struct {
	ClientRate          float64            `json:"clientRate"`
	SoldDays            float64            `json:"soldDays"`
	TotalHours          *float64           `json:"totalHours,omitempty"` // advisory only
	AccountManagerParty string             `json:"accountManagerParty"`
	RoleWeights         map[string]float64 `json:"roleWeights"`
	Deliverables        []Deliverable      `json:"deliverables"`
}

// =============================================================================
// DERIVED TYPES - Produced by ComputeModel
// =============================================================================

// PricedDeliverable is a deliverable augmented with its derived price.
// Revenue here is a weighted PRICE, not a final allocation; allocations
// come out of the per-party normalization step.
type PricedDeliverable struct {
	Deliverable
	RoleWeight    decimal.Decimal
	EffectiveRate decimal.Decimal // ClientRate x RoleWeight
	Revenue       decimal.Decimal // Days x EffectiveRate
}

// PartyAllocation aggregates one party's deliverables and carries its
// normalized share of the contracted revenue.
type PartyAllocation struct {
	Owner        string
	Days         decimal.Decimal
	Revenue      decimal.Decimal // summed pre-uplift weighted price
	Deliverables []PricedDeliverable

	UpliftFactor    decimal.Decimal // 1.1 for the account-manager party, else 1
	AdjustedRevenue decimal.Decimal // Revenue x UpliftFactor

	Percentage   decimal.Decimal // share of TotalAdjustedRevenue, 0-100
	Share        decimal.Decimal // alias of Percentage, kept for report callers
	FinalRevenue decimal.Decimal // Percentage/100 x TotalRevenue
}

// PartyChartPoint is a chart-ready projection of one party's slice.
type PartyChartPoint struct {
	Name       string
	Revenue    decimal.Decimal // final, normalized revenue
	Percentage decimal.Decimal
}

// RoleChartPoint aggregates days and weighted price per role,
// in first-seen role order.
type RoleChartPoint struct {
	Role    string
	Days    decimal.Decimal
	Revenue decimal.Decimal
}

// Model is the engine's full output. It is a pure value: recomputing from
// identical inputs yields an identical model.
type Model struct {
	ClientRate          decimal.Decimal
	SoldDays            decimal.Decimal
	TotalRevenue        decimal.Decimal // ClientRate x SoldDays, the fixed pool
	TotalDays           decimal.Decimal // sum of deliverable days
	AccountManagerParty string
	RoleWeights         map[string]float64

	Deliverables         []PricedDeliverable
	TotalWeightedRevenue decimal.Decimal // sum of deliverable prices
	TotalAdjustedRevenue decimal.Decimal // sum of uplift-adjusted party revenues

	// Parties in first-seen owner order. Iteration order is part of the
	// contract so chart and report rendering stay deterministic.
	Parties []PartyAllocation

	PartyChartData []PartyChartPoint
	RoleData       []RoleChartPoint

	// Convenience aliases for the two canonical parties; nil when the
	// party owns no deliverables.
	RPG      *PartyAllocation
	Proaptus *PartyAllocation
}

// Party returns the allocation for the given owner, matched
// case-insensitively, and whether it exists.
func (m *Model) Party(owner string) (*PartyAllocation, bool) {
	for i := range m.Parties {
		if strings.EqualFold(m.Parties[i].Owner, owner) {
			return &m.Parties[i], true
		}
	}
	return nil, false
}

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// ValidationResult carries the outcome of Validate. Errors are
// human-readable strings; the caller decides whether to block on IsValid.
type ValidationResult struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// =============================================================================
// HELPERS
// =============================================================================

// dec converts a caller-supplied float to a decimal, degrading NaN and
// infinities to zero. The engine is total: malformed numbers never panic.
func dec(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}
