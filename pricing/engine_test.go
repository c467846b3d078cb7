/*
engine_test.go - Executable specification for the allocation engine

ORGANIZATION:
  1. Fixed-pool and pricing arithmetic
  2. Uplift and normalization
  3. Edge cases (empty lists, zero rates, unknown roles, bad numbers)
  4. Determinism and purity guarantees

READING THESE TESTS:
  Each test has GIVEN/WHEN/THEN comments explaining the scenario and
  assertions with explanatory messages. They are intentionally verbose:
  they double as documentation of the allocation rules.
*/
package pricing_test

import (
	"math"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/proaptus/pricing-engine/pricing"
)

// =============================================================================
// TEST INFRASTRUCTURE
// =============================================================================

var epsilon = decimal.New(1, -9) // 1e-9, floating-point comparison slack

func deliverable(name, owner, role string, days float64) pricing.Deliverable {
	return pricing.Deliverable{
		ID:    "d-" + name,
		Name:  name,
		Owner: owner,
		Role:  role,
		Days:  days,
	}
}

func assertDecimal(t *testing.T, label string, got decimal.Decimal, want float64) {
	t.Helper()
	if !got.Sub(decimal.NewFromFloat(want)).Abs().LessThanOrEqual(epsilon) {
		t.Errorf("%s: expected %v, got %v", label, want, got)
	}
}

func sumFinalRevenue(m pricing.Model) decimal.Decimal {
	total := decimal.Zero
	for _, p := range m.Parties {
		total = total.Add(p.FinalRevenue)
	}
	return total
}

func sumPercentage(m pricing.Model) decimal.Decimal {
	total := decimal.Zero
	for _, p := range m.Parties {
		total = total.Add(p.Percentage)
	}
	return total
}

// =============================================================================
// 1. FIXED-POOL AND PRICING ARITHMETIC
// =============================================================================

func TestComputeModel_SinglePartyGetsWholePool(t *testing.T) {
	// GIVEN: rate 1000, 50 sold days, one Proaptus deliverable of 10 days
	//        at Development weight 1.5, account manager RPG
	// WHEN:  computing the model
	// THEN:  totalRevenue is the fixed pool (50000), the deliverable is
	//        priced at 15000, and the sole party is normalized to 100%

	m := pricing.ComputeModel(pricing.Inputs{
		ClientRate:          1000,
		SoldDays:            50,
		AccountManagerParty: "RPG",
		RoleWeights:         map[string]float64{"Development": 1.5},
		Deliverables: []pricing.Deliverable{
			deliverable("API build", "Proaptus", "Development", 10),
		},
	})

	assertDecimal(t, "totalRevenue", m.TotalRevenue, 50000)
	assertDecimal(t, "deliverable revenue", m.Deliverables[0].Revenue, 15000)
	assertDecimal(t, "effective rate", m.Deliverables[0].EffectiveRate, 1500)
	assertDecimal(t, "totalWeightedRevenue", m.TotalWeightedRevenue, 15000)

	if len(m.Parties) != 1 {
		t.Fatalf("expected 1 party, got %d", len(m.Parties))
	}
	p := m.Parties[0]
	if p.Owner != "Proaptus" {
		t.Errorf("expected owner Proaptus, got %s", p.Owner)
	}
	assertDecimal(t, "party revenue", p.Revenue, 15000)
	assertDecimal(t, "uplift factor", p.UpliftFactor, 1.0)
	assertDecimal(t, "percentage", p.Percentage, 100)
	assertDecimal(t, "finalRevenue", p.FinalRevenue, 50000)
}

func TestComputeModel_RevenueIsDaysTimesRateTimesWeight(t *testing.T) {
	// Invariant: revenue = days x clientRate x (roleWeights[role], 1.0 if absent)

	cases := []struct {
		name    string
		days    float64
		role    string
		weights map[string]float64
		want    float64
	}{
		{"weighted role", 4, "QA", map[string]float64{"QA": 0.8}, 3200},
		{"unknown role falls back to 1.0", 4, "Design", map[string]float64{"QA": 0.8}, 4000},
		{"zero weight is respected", 4, "QA", map[string]float64{"QA": 0}, 0},
		{"fractional days", 2.5, "Sales", map[string]float64{"Sales": 1.8}, 4500},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := pricing.ComputeModel(pricing.Inputs{
				ClientRate:  1000,
				SoldDays:    10,
				RoleWeights: tc.weights,
				Deliverables: []pricing.Deliverable{
					deliverable("work", "RPG", tc.role, tc.days),
				},
			})
			assertDecimal(t, "revenue", m.Deliverables[0].Revenue, tc.want)
		})
	}
}

func TestComputeModel_SoldDaysIndependentOfDeliverableDays(t *testing.T) {
	// GIVEN: 50 sold days but only 10 deliverable days
	// THEN:  totalRevenue comes from sold days, totalDays from deliverables;
	//        the two deliberately need not reconcile

	m := pricing.ComputeModel(pricing.Inputs{
		ClientRate:  1000,
		SoldDays:    50,
		RoleWeights: map[string]float64{},
		Deliverables: []pricing.Deliverable{
			deliverable("a", "RPG", "Development", 10),
		},
	})

	assertDecimal(t, "totalRevenue", m.TotalRevenue, 50000)
	assertDecimal(t, "totalDays", m.TotalDays, 10)
}

// =============================================================================
// 2. UPLIFT AND NORMALIZATION
// =============================================================================

func TestComputeModel_UpliftOnSolePartyStillNormalizesToPool(t *testing.T) {
	// GIVEN: the single party is also the account manager
	// THEN:  adjustedRevenue carries the 10% uplift, but finalRevenue is
	//        still the whole pool - normalization absorbs the uplift

	m := pricing.ComputeModel(pricing.Inputs{
		ClientRate:          1000,
		SoldDays:            50,
		AccountManagerParty: "Proaptus",
		RoleWeights:         map[string]float64{"Development": 1.5},
		Deliverables: []pricing.Deliverable{
			deliverable("API build", "Proaptus", "Development", 10),
		},
	})

	p := m.Parties[0]
	assertDecimal(t, "uplift factor", p.UpliftFactor, 1.1)
	assertDecimal(t, "adjustedRevenue", p.AdjustedRevenue, 16500)
	assertDecimal(t, "finalRevenue", p.FinalRevenue, 50000)
	assertDecimal(t, "percentage", p.Percentage, 100)
}

func TestComputeModel_TwoPartySplitSumsToPool(t *testing.T) {
	// GIVEN: RPG with 5 days at weight 1.0, Proaptus with 10 days at 1.5,
	//        RPG is account manager
	// THEN:  percentages sum to 100 and final revenues sum to the pool,
	//        with RPG's share lifted by the uplift

	m := pricing.ComputeModel(pricing.Inputs{
		ClientRate:          1000,
		SoldDays:            50,
		AccountManagerParty: "RPG",
		RoleWeights:         map[string]float64{"Development": 1.0, "Solution Architect": 1.5},
		Deliverables: []pricing.Deliverable{
			deliverable("discovery", "RPG", "Development", 5),
			deliverable("build", "Proaptus", "Solution Architect", 10),
		},
	})

	assertDecimal(t, "sum of percentages", sumPercentage(m), 100)
	assertDecimal(t, "sum of finalRevenue", sumFinalRevenue(m), 50000)

	rpg, ok := m.Party("RPG")
	if !ok {
		t.Fatal("RPG allocation missing")
	}
	// 5000 x 1.1 = 5500 of 20500 adjusted total
	assertDecimal(t, "RPG adjusted", rpg.AdjustedRevenue, 5500)
	assertDecimal(t, "RPG percentage", rpg.Percentage, 100*5500.0/20500.0)
	assertDecimal(t, "RPG finalRevenue", rpg.FinalRevenue, 50000*5500.0/20500.0)

	if m.RPG == nil || m.Proaptus == nil {
		t.Fatal("canonical party aliases should be set")
	}
	if m.RPG.Owner != "RPG" || m.Proaptus.Owner != "Proaptus" {
		t.Errorf("aliases point at wrong parties: %s / %s", m.RPG.Owner, m.Proaptus.Owner)
	}
}

func TestComputeModel_AccountManagerWithoutDeliverablesIsNoOp(t *testing.T) {
	// GIVEN: accountManagerParty names nobody who owns work
	// THEN:  no party is uplifted and no synthetic party appears

	m := pricing.ComputeModel(pricing.Inputs{
		ClientRate:          1000,
		SoldDays:            10,
		AccountManagerParty: "Acme",
		RoleWeights:         map[string]float64{},
		Deliverables: []pricing.Deliverable{
			deliverable("a", "RPG", "Development", 2),
			deliverable("b", "Proaptus", "Development", 3),
		},
	})

	if len(m.Parties) != 2 {
		t.Fatalf("expected 2 parties, got %d", len(m.Parties))
	}
	for _, p := range m.Parties {
		assertDecimal(t, p.Owner+" uplift", p.UpliftFactor, 1.0)
	}
}

func TestComputeModel_UpliftShrinksOtherPartiesShare(t *testing.T) {
	// GIVEN: two parties with identical weighted prices
	// WHEN:  one is the account manager
	// THEN:  it ends above 50% and the other below - the premium is funded
	//        by the normalization, not by growing the pool

	m := pricing.ComputeModel(pricing.Inputs{
		ClientRate:          500,
		SoldDays:            20,
		AccountManagerParty: "RPG",
		RoleWeights:         map[string]float64{},
		Deliverables: []pricing.Deliverable{
			deliverable("a", "RPG", "Development", 5),
			deliverable("b", "Proaptus", "Development", 5),
		},
	})

	// 2750 / 5250 and 2500 / 5250
	assertDecimal(t, "RPG percentage", m.RPG.Percentage, 100*2750.0/5250.0)
	assertDecimal(t, "Proaptus percentage", m.Proaptus.Percentage, 100*2500.0/5250.0)
	assertDecimal(t, "pool fully distributed", sumFinalRevenue(m), 10000)
}

// =============================================================================
// 3. EDGE CASES
// =============================================================================

func TestComputeModel_EmptyDeliverables(t *testing.T) {
	// Empty input never panics; totals are zero, no parties appear.

	m := pricing.ComputeModel(pricing.Inputs{
		ClientRate:  1000,
		SoldDays:    50,
		RoleWeights: map[string]float64{},
	})

	assertDecimal(t, "totalRevenue", m.TotalRevenue, 50000)
	assertDecimal(t, "totalDays", m.TotalDays, 0)
	if len(m.Parties) != 0 {
		t.Errorf("expected no parties, got %d", len(m.Parties))
	}
	if m.RPG != nil || m.Proaptus != nil {
		t.Error("aliases should be nil when the parties own nothing")
	}
}

func TestComputeModel_ZeroAdjustedTotalYieldsZeroShares(t *testing.T) {
	// GIVEN: all deliverable prices are zero (zero rate)
	// THEN:  percentages and final revenues are 0, never NaN

	m := pricing.ComputeModel(pricing.Inputs{
		ClientRate:  0,
		SoldDays:    50,
		RoleWeights: map[string]float64{},
		Deliverables: []pricing.Deliverable{
			deliverable("a", "RPG", "Development", 5),
			deliverable("b", "Proaptus", "Development", 5),
		},
	})

	assertDecimal(t, "totalRevenue", m.TotalRevenue, 0)
	for _, p := range m.Parties {
		assertDecimal(t, p.Owner+" percentage", p.Percentage, 0)
		assertDecimal(t, p.Owner+" finalRevenue", p.FinalRevenue, 0)
	}
}

func TestComputeModel_NonFiniteDaysTreatedAsZero(t *testing.T) {
	m := pricing.ComputeModel(pricing.Inputs{
		ClientRate:  1000,
		SoldDays:    10,
		RoleWeights: map[string]float64{},
		Deliverables: []pricing.Deliverable{
			deliverable("bad", "RPG", "Development", math.NaN()),
			deliverable("worse", "RPG", "Development", math.Inf(1)),
			deliverable("fine", "RPG", "Development", 3),
		},
	})

	assertDecimal(t, "totalDays", m.TotalDays, 3)
	assertDecimal(t, "bad revenue", m.Deliverables[0].Revenue, 0)
	assertDecimal(t, "worse revenue", m.Deliverables[1].Revenue, 0)
	assertDecimal(t, "fine revenue", m.Deliverables[2].Revenue, 3000)
}

// =============================================================================
// 4. DETERMINISM AND PURITY
// =============================================================================

func TestComputeModel_PartyAndRoleOrderIsFirstSeen(t *testing.T) {
	m := pricing.ComputeModel(pricing.Inputs{
		ClientRate:  1000,
		SoldDays:    20,
		RoleWeights: map[string]float64{},
		Deliverables: []pricing.Deliverable{
			deliverable("a", "Proaptus", "QA", 1),
			deliverable("b", "RPG", "Development", 2),
			deliverable("c", "Proaptus", "Development", 3),
		},
	})

	if m.Parties[0].Owner != "Proaptus" || m.Parties[1].Owner != "RPG" {
		t.Errorf("party order not first-seen: %s, %s", m.Parties[0].Owner, m.Parties[1].Owner)
	}
	if m.RoleData[0].Role != "QA" || m.RoleData[1].Role != "Development" {
		t.Errorf("role order not first-seen: %s, %s", m.RoleData[0].Role, m.RoleData[1].Role)
	}
	assertDecimal(t, "Development days", m.RoleData[1].Days, 5)

	if len(m.PartyChartData) != 2 {
		t.Fatalf("expected 2 chart points, got %d", len(m.PartyChartData))
	}
	if m.PartyChartData[0].Name != "Proaptus" {
		t.Errorf("chart order should follow party order, got %s", m.PartyChartData[0].Name)
	}
}

func TestComputeModel_Idempotent(t *testing.T) {
	in := pricing.Inputs{
		ClientRate:          1000,
		SoldDays:            50,
		AccountManagerParty: "RPG",
		RoleWeights:         map[string]float64{"Development": 1.0, "QA": 0.8},
		Deliverables: []pricing.Deliverable{
			deliverable("a", "RPG", "Development", 5),
			deliverable("b", "Proaptus", "QA", 10),
		},
	}

	first := pricing.ComputeModel(in)
	second := pricing.ComputeModel(in)

	if !reflect.DeepEqual(first, second) {
		t.Error("recomputing from identical inputs should yield an identical model")
	}
}

func TestComputeModel_DoesNotMutateInputs(t *testing.T) {
	deliverables := []pricing.Deliverable{
		deliverable("a", "RPG", "Development", 5),
	}
	weights := map[string]float64{"Development": 1.2}
	in := pricing.Inputs{
		ClientRate:   1000,
		SoldDays:     10,
		RoleWeights:  weights,
		Deliverables: deliverables,
	}

	snapshot := make([]pricing.Deliverable, len(deliverables))
	copy(snapshot, deliverables)

	m := pricing.ComputeModel(in)
	m.RoleWeights["Development"] = 99 // model copy, not the caller's table

	if !reflect.DeepEqual(deliverables, snapshot) {
		t.Error("input deliverables were mutated")
	}
	if weights["Development"] != 1.2 {
		t.Error("caller's role-weight table was mutated")
	}
}
