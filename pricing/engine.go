/*
engine.go - The revenue-allocation algorithm

PURPOSE:
  Converts Inputs into a fully derived Model. This is the only place the
  allocation math lives; validation and warnings are separate modules.

ALGORITHM:
  1. TotalRevenue = ClientRate x SoldDays. The fixed pool to divide; it is
     NOT derived from deliverable days.
  2. Price each deliverable: weight = RoleWeights[role] (1.0 when the role
     is absent), EffectiveRate = ClientRate x weight,
     Revenue = Days x EffectiveRate.
  3. Group deliverables by owner (first-seen order), summing days and
     weighted price per party.
  4. Apply the flat 10% uplift to the account-manager party's price.
  5. Normalize: each party's share of the uplift-adjusted total is re-based
     onto TotalRevenue, so the contracted pool is always fully distributed
     no matter how the weighted prices summed.

KEY INSIGHT:
  The per-deliverable Revenue values are prices, not allocations. The
  normalization in step 5 is what turns relative prices into an exact
  split of the real deal value.

FAILURE SEMANTICS:
  None. ComputeModel is total: empty deliverable lists, zero rates,
  unknown roles and non-finite days all degrade to neutral values.
  Input legality is Validate's job, not the engine's.

SEE ALSO:
  - types.go: Input and output structures
  - validate.go: Blocking checks run before or alongside the engine
*/
package pricing

import "github.com/shopspring/decimal"

var oneHundred = decimal.NewFromInt(100)

// ComputeModel derives the full pricing model from the given inputs.
// Deterministic, side-effect free, and never fails.
func ComputeModel(in Inputs) Model {
	clientRate := dec(in.ClientRate)
	soldDays := dec(in.SoldDays)

	m := Model{
		ClientRate:          clientRate,
		SoldDays:            soldDays,
		TotalRevenue:        clientRate.Mul(soldDays),
		AccountManagerParty: in.AccountManagerParty,
		RoleWeights:         copyWeights(in.RoleWeights),
	}

	// Price every deliverable. A role missing from the table gets the
	// neutral weight; a weight of 0 that is present is respected.
	m.Deliverables = make([]PricedDeliverable, 0, len(in.Deliverables))
	for _, d := range in.Deliverables {
		weight := neutralWeight
		if w, ok := in.RoleWeights[d.Role]; ok {
			weight = dec(w)
		}
		effectiveRate := clientRate.Mul(weight)
		days := dec(d.Days)
		revenue := days.Mul(effectiveRate)

		m.Deliverables = append(m.Deliverables, PricedDeliverable{
			Deliverable:   d,
			RoleWeight:    weight,
			EffectiveRate: effectiveRate,
			Revenue:       revenue,
		})
		m.TotalDays = m.TotalDays.Add(days)
		m.TotalWeightedRevenue = m.TotalWeightedRevenue.Add(revenue)
	}

	// Group by owner, preserving first-seen order.
	index := make(map[string]int)
	for _, pd := range m.Deliverables {
		i, ok := index[pd.Owner]
		if !ok {
			i = len(m.Parties)
			index[pd.Owner] = i
			m.Parties = append(m.Parties, PartyAllocation{Owner: pd.Owner})
		}
		p := &m.Parties[i]
		p.Days = p.Days.Add(dec(pd.Days))
		p.Revenue = p.Revenue.Add(pd.Revenue)
		p.Deliverables = append(p.Deliverables, pd)
	}

	// Uplift the account-manager party. The designated party need not own
	// any deliverables; then the step is a no-op.
	for i := range m.Parties {
		p := &m.Parties[i]
		p.UpliftFactor = noUplift
		if p.Owner == in.AccountManagerParty {
			p.UpliftFactor = upliftFactor
		}
		p.AdjustedRevenue = p.Revenue.Mul(p.UpliftFactor)
		m.TotalAdjustedRevenue = m.TotalAdjustedRevenue.Add(p.AdjustedRevenue)
	}

	// Normalize onto the contracted pool. When the adjusted total is zero
	// (no deliverables, or all prices zero) every share is zero, not NaN.
	for i := range m.Parties {
		p := &m.Parties[i]
		if m.TotalAdjustedRevenue.IsZero() {
			p.Percentage = decimal.Zero
			p.FinalRevenue = decimal.Zero
		} else {
			share := p.AdjustedRevenue.Div(m.TotalAdjustedRevenue)
			p.Percentage = share.Mul(oneHundred)
			p.FinalRevenue = share.Mul(m.TotalRevenue)
		}
		p.Share = p.Percentage
	}

	m.PartyChartData = partyChartData(m.Parties)
	m.RoleData = roleData(m.Deliverables)

	if p, ok := m.Party(PartyRPG); ok {
		m.RPG = p
	}
	if p, ok := m.Party(PartyProaptus); ok {
		m.Proaptus = p
	}

	return m
}

func copyWeights(weights map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(weights))
	for role, w := range weights {
		out[role] = w
	}
	return out
}

func partyChartData(parties []PartyAllocation) []PartyChartPoint {
	points := make([]PartyChartPoint, len(parties))
	for i, p := range parties {
		points[i] = PartyChartPoint{
			Name:       p.Owner,
			Revenue:    p.FinalRevenue,
			Percentage: p.Percentage,
		}
	}
	return points
}

// roleData aggregates days and weighted price per role, in first-seen
// role order across the deliverable list.
func roleData(deliverables []PricedDeliverable) []RoleChartPoint {
	index := make(map[string]int)
	var points []RoleChartPoint
	for _, pd := range deliverables {
		i, ok := index[pd.Role]
		if !ok {
			i = len(points)
			index[pd.Role] = i
			points = append(points, RoleChartPoint{Role: pd.Role})
		}
		points[i].Days = points[i].Days.Add(dec(pd.Days))
		points[i].Revenue = points[i].Revenue.Add(pd.Revenue)
	}
	return points
}
