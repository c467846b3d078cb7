/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. The engine's Model
  uses decimal.Decimal internally; DTOs flatten everything to float64 so
  the browser form consumes plain JSON numbers, and they pin the
  camelCase field names the frontend was built against.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

INPUTS:
  pricing.Inputs is already JSON-shaped (camelCase tags) and is accepted
  directly as a request body; only outputs need flattening here.

SEE ALSO:
  - handlers.go: Uses these types
  - pricing/types.go: The domain model these project
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/proaptus/pricing-engine/pricing"
	"github.com/proaptus/pricing-engine/store/sqlite"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// PricedDeliverableDTO is a deliverable with its derived price fields.
type PricedDeliverableDTO struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Owner              string  `json:"owner"`
	Role               string  `json:"role"`
	Days               float64 `json:"days"`
	AcceptanceCriteria string  `json:"acceptanceCriteria,omitempty"`
	RoleWeight         float64 `json:"roleWeight"`
	EffectiveRate      float64 `json:"effectiveRate"`
	Revenue            float64 `json:"revenue"`
}

// PartyAllocationDTO is one party's aggregate and normalized share.
type PartyAllocationDTO struct {
	Party           string                 `json:"party"`
	Days            float64                `json:"days"`
	Revenue         float64                `json:"revenue"`
	UpliftFactor    float64                `json:"upliftFactor"`
	AdjustedRevenue float64                `json:"adjustedRevenue"`
	Percentage      float64                `json:"percentage"`
	Share           float64                `json:"share"`
	FinalRevenue    float64                `json:"finalRevenue"`
	Deliverables    []PricedDeliverableDTO `json:"deliverables"`
}

// PartyChartPointDTO is a chart-ready party slice.
type PartyChartPointDTO struct {
	Name       string  `json:"name"`
	Revenue    float64 `json:"revenue"`
	Percentage float64 `json:"percentage"`
}

// RolePointDTO aggregates days and weighted price per role.
type RolePointDTO struct {
	Role    string  `json:"role"`
	Days    float64 `json:"days"`
	Revenue float64 `json:"revenue"`
}

// ModelDTO is the full computed pricing model.
type ModelDTO struct {
	ClientRate           float64                `json:"clientRate"`
	SoldDays             float64                `json:"soldDays"`
	TotalRevenue         float64                `json:"totalRevenue"`
	TotalDays            float64                `json:"totalDays"`
	AccountManagerParty  string                 `json:"accountManagerParty"`
	RoleWeights          map[string]float64     `json:"roleWeights"`
	Deliverables         []PricedDeliverableDTO `json:"deliverables"`
	TotalWeightedRevenue float64                `json:"totalWeightedRevenue"`
	TotalAdjustedRevenue float64                `json:"totalAdjustedRevenue"`
	PartyAllocations     []PartyAllocationDTO   `json:"partyAllocations"`
	PartyChartData       []PartyChartPointDTO   `json:"partyChartData"`
	RoleData             []RolePointDTO         `json:"roleData"`
	RPG                  *PartyAllocationDTO    `json:"rpg,omitempty"`
	Proaptus             *PartyAllocationDTO    `json:"proaptus,omitempty"`
}

// ComputeResponse bundles the model with validation and advisories so the
// form updates everything in one round trip.
type ComputeResponse struct {
	Model    ModelDTO `json:"model"`
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// ValidateResponse carries just the checks, no model.
type ValidateResponse struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// ProjectDTO is a persisted pricing project.
type ProjectDTO struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Config    pricing.Inputs `json:"config"`
	CreatedAt string         `json:"created_at,omitempty"`
	UpdatedAt string         `json:"updated_at,omitempty"`
}

// SaveProjectRequest creates or replaces a project.
type SaveProjectRequest struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Config pricing.Inputs `json:"config"`
}

// ScenarioDTO represents a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest selects a scenario to load.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func f64(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

func toPricedDeliverableDTO(pd pricing.PricedDeliverable) PricedDeliverableDTO {
	return PricedDeliverableDTO{
		ID:                 pd.ID,
		Name:               pd.Name,
		Owner:              pd.Owner,
		Role:               pd.Role,
		Days:               pd.Days,
		AcceptanceCriteria: pd.AcceptanceCriteria,
		RoleWeight:         f64(pd.RoleWeight),
		EffectiveRate:      f64(pd.EffectiveRate),
		Revenue:            f64(pd.Revenue),
	}
}

func toPricedDeliverableDTOs(pds []pricing.PricedDeliverable) []PricedDeliverableDTO {
	dtos := make([]PricedDeliverableDTO, len(pds))
	for i, pd := range pds {
		dtos[i] = toPricedDeliverableDTO(pd)
	}
	return dtos
}

func toPartyAllocationDTO(p pricing.PartyAllocation) PartyAllocationDTO {
	return PartyAllocationDTO{
		Party:           p.Owner,
		Days:            f64(p.Days),
		Revenue:         f64(p.Revenue),
		UpliftFactor:    f64(p.UpliftFactor),
		AdjustedRevenue: f64(p.AdjustedRevenue),
		Percentage:      f64(p.Percentage),
		Share:           f64(p.Share),
		FinalRevenue:    f64(p.FinalRevenue),
		Deliverables:    toPricedDeliverableDTOs(p.Deliverables),
	}
}

func toModelDTO(m pricing.Model) ModelDTO {
	dto := ModelDTO{
		ClientRate:           f64(m.ClientRate),
		SoldDays:             f64(m.SoldDays),
		TotalRevenue:         f64(m.TotalRevenue),
		TotalDays:            f64(m.TotalDays),
		AccountManagerParty:  m.AccountManagerParty,
		RoleWeights:          m.RoleWeights,
		Deliverables:         toPricedDeliverableDTOs(m.Deliverables),
		TotalWeightedRevenue: f64(m.TotalWeightedRevenue),
		TotalAdjustedRevenue: f64(m.TotalAdjustedRevenue),
		PartyAllocations:     make([]PartyAllocationDTO, len(m.Parties)),
		PartyChartData:       make([]PartyChartPointDTO, len(m.PartyChartData)),
		RoleData:             make([]RolePointDTO, len(m.RoleData)),
	}

	for i, p := range m.Parties {
		dto.PartyAllocations[i] = toPartyAllocationDTO(p)
	}
	for i, pt := range m.PartyChartData {
		dto.PartyChartData[i] = PartyChartPointDTO{
			Name:       pt.Name,
			Revenue:    f64(pt.Revenue),
			Percentage: f64(pt.Percentage),
		}
	}
	for i, rp := range m.RoleData {
		dto.RoleData[i] = RolePointDTO{
			Role:    rp.Role,
			Days:    f64(rp.Days),
			Revenue: f64(rp.Revenue),
		}
	}

	if m.RPG != nil {
		alias := toPartyAllocationDTO(*m.RPG)
		dto.RPG = &alias
	}
	if m.Proaptus != nil {
		alias := toPartyAllocationDTO(*m.Proaptus)
		dto.Proaptus = &alias
	}

	return dto
}

func toProjectDTO(p sqlite.Project) ProjectDTO {
	return ProjectDTO{
		ID:        p.ID,
		Name:      p.Name,
		Config:    p.Config,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
	}
}
