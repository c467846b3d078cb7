/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built pricing projects that populate the database with
	realistic data for demos. Each scenario is a complete engine input:
	rate, sold days, deliverables, role weights and the account manager.

AVAILABLE SCENARIOS:

	two-party-split:  Typical RPG/Proaptus engagement with mixed roles
	sole-delivery:    One party owns all deliverables
	am-premium:       Shows the account-manager uplift shifting the split
	coarse-breakdown: Deliberately triggers the advisory warnings

HOW SCENARIOS WORK:
 1. Reset database (clear all projects)
 2. Save the scenario's projects
 3. The form loads a project and recomputes as usual

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "two-party-split"}

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: Calculation and project handlers
  - pricing/: The engine the scenario configs feed
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/proaptus/pricing-engine/pricing"
	"github.com/proaptus/pricing-engine/store/sqlite"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "two-party-split",
		Name:        "Two-Party Split",
		Description: "Typical RPG/Proaptus engagement with mixed roles and an RPG account manager",
	},
	{
		ID:          "sole-delivery",
		Name:        "Sole Delivery",
		Description: "Proaptus owns every deliverable and takes the whole pool",
	},
	{
		ID:          "am-premium",
		Name:        "Account Manager Premium",
		Description: "Equal weighted prices; the 10% uplift decides the split",
	},
	{
		ID:          "coarse-breakdown",
		Name:        "Coarse Breakdown",
		Description: "High rate, two fat deliverables - triggers the advisory warnings",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	if h.currentScenario == "" {
		writeJSON(w, http.StatusOK, map[string]any{"scenario_id": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"scenario_id": h.currentScenario})
}

// LoadScenario resets the database and loads the requested scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()
	if err := h.Store.Reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}

	var err error
	switch req.ScenarioID {
	case "two-party-split":
		err = h.loadTwoPartySplitScenario(ctx)
	case "sole-delivery":
		err = h.loadSoleDeliveryScenario(ctx)
	case "am-premium":
		err = h.loadAMPremiumScenario(ctx)
	case "coarse-breakdown":
		err = h.loadCoarseBreakdownScenario(ctx)
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown scenario: %s", req.ScenarioID), nil)
		return
	}

	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load scenario", err)
		return
	}

	h.currentScenario = req.ScenarioID
	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "scenario_id": req.ScenarioID})
}

// ResetDatabase clears all projects.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.currentScenario = ""
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

func (h *Handler) loadTwoPartySplitScenario(ctx context.Context) error {
	return h.Store.SaveProject(ctx, sqlite.Project{
		ID:   "demo-two-party",
		Name: "Acme platform rollout",
		Config: pricing.Inputs{
			ClientRate:          1100,
			SoldDays:            60,
			AccountManagerParty: pricing.PartyRPG,
			RoleWeights: map[string]float64{
				"Sales":              1.8,
				"Solution Architect": 1.4,
				"Project Management": 1.2,
				"Development":        1.0,
				"QA":                 0.8,
			},
			Deliverables: []pricing.Deliverable{
				{ID: "d1", Name: "Discovery & scoping", Owner: pricing.PartyRPG, Role: "Solution Architect", Days: 6,
					AcceptanceCriteria: "Signed-off solution outline"},
				{ID: "d2", Name: "Delivery management", Owner: pricing.PartyRPG, Role: "Project Management", Days: 10},
				{ID: "d3", Name: "Core platform build", Owner: pricing.PartyProaptus, Role: "Development", Days: 28,
					AcceptanceCriteria: "All epics deployed to staging"},
				{ID: "d4", Name: "Integration testing", Owner: pricing.PartyProaptus, Role: "QA", Days: 8},
				{ID: "d5", Name: "Go-live support", Owner: pricing.PartyProaptus, Role: "Development", Days: 5},
			},
		},
	})
}

func (h *Handler) loadSoleDeliveryScenario(ctx context.Context) error {
	return h.Store.SaveProject(ctx, sqlite.Project{
		ID:   "demo-sole-delivery",
		Name: "Maintenance retainer",
		Config: pricing.Inputs{
			ClientRate:          950,
			SoldDays:            20,
			AccountManagerParty: pricing.PartyRPG,
			RoleWeights:         map[string]float64{"Development": 1.0, "QA": 0.8},
			Deliverables: []pricing.Deliverable{
				{ID: "d1", Name: "Bug fixing", Owner: pricing.PartyProaptus, Role: "Development", Days: 12},
				{ID: "d2", Name: "Regression runs", Owner: pricing.PartyProaptus, Role: "QA", Days: 5},
				{ID: "d3", Name: "Patch releases", Owner: pricing.PartyProaptus, Role: "Development", Days: 3},
			},
		},
	})
}

func (h *Handler) loadAMPremiumScenario(ctx context.Context) error {
	return h.Store.SaveProject(ctx, sqlite.Project{
		ID:   "demo-am-premium",
		Name: "Even split, AM premium",
		Config: pricing.Inputs{
			ClientRate:          1000,
			SoldDays:            30,
			AccountManagerParty: pricing.PartyProaptus,
			RoleWeights:         map[string]float64{"Development": 1.0},
			Deliverables: []pricing.Deliverable{
				{ID: "d1", Name: "Module A", Owner: pricing.PartyRPG, Role: "Development", Days: 15},
				{ID: "d2", Name: "Module B", Owner: pricing.PartyProaptus, Role: "Development", Days: 15},
			},
		},
	})
}

func (h *Handler) loadCoarseBreakdownScenario(ctx context.Context) error {
	hours := 500.0
	return h.Store.SaveProject(ctx, sqlite.Project{
		ID:   "demo-coarse",
		Name: "Everything in two lines",
		Config: pricing.Inputs{
			ClientRate:          2400,
			SoldDays:            40,
			TotalHours:          &hours,
			AccountManagerParty: pricing.PartyRPG,
			RoleWeights:         map[string]float64{"Sales": 0.7, "Development": 1.0},
			Deliverables: []pricing.Deliverable{
				{ID: "d1", Name: "The whole build", Owner: pricing.PartyProaptus, Role: "Development", Days: 38},
				{ID: "d2", Name: "Account handling", Owner: pricing.PartyRPG, Role: "Sales", Days: 2},
			},
		},
	})
}
