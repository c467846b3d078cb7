/*
handlers.go - HTTP API handlers for the pricing calculator

PURPOSE:
  Exposes the revenue-allocation engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to the pricing
  core and the project store.

ENDPOINTS:
  Calculation:
    POST   /api/compute                 Inputs -> full model + checks
    POST   /api/validate                Inputs -> errors + warnings only

  Projects:
    GET    /api/projects                List saved projects
    POST   /api/projects                Create/replace a project
    GET    /api/projects/{id}           Get a project
    PUT    /api/projects/{id}           Update a project
    DELETE /api/projects/{id}           Delete a project
    GET    /api/projects/{id}/model     Compute from the stored config

  Scenarios:
    GET    /api/scenarios               List demo scenarios
    POST   /api/scenarios/load          Load a demo scenario

REQUEST FLOW:
  1. Parse HTTP request
  2. Run Validate (blocking checks never stop computation - the engine
     is total; the caller decides what to do with isValid)
  3. ComputeModel, then Warnings over inputs + model
  4. Serialize response

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Malformed request body or missing fields
  - 404: Project not found
  - 500: Store failures
  Domain validation failures are NOT HTTP errors: they come back as the
  errors list of a 200 response, exactly as the form expects.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/proaptus/pricing-engine/pricing"
	"github.com/proaptus/pricing-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store *sqlite.Store

	// Track currently loaded scenario
	currentScenario string
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{Store: store}
}

// =============================================================================
// CALCULATION HANDLERS
// =============================================================================

// Compute runs the full pipeline: validate, compute, warn.
// POST /api/compute
func (h *Handler) Compute(w http.ResponseWriter, r *http.Request) {
	var in pricing.Inputs
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	writeJSON(w, http.StatusOK, computeResponse(in))
}

// Validate runs only the blocking checks and advisories.
// POST /api/validate
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	var in pricing.Inputs
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result := pricing.Validate(in)
	warns := pricing.Warnings(in, pricing.ComputeModel(in))

	writeJSON(w, http.StatusOK, ValidateResponse{
		IsValid:  result.IsValid,
		Errors:   emptyIfNil(result.Errors),
		Warnings: emptyIfNil(warns),
	})
}

func computeResponse(in pricing.Inputs) ComputeResponse {
	result := pricing.Validate(in)
	model := pricing.ComputeModel(in)
	warns := pricing.Warnings(in, model)

	return ComputeResponse{
		Model:    toModelDTO(model),
		IsValid:  result.IsValid,
		Errors:   emptyIfNil(result.Errors),
		Warnings: emptyIfNil(warns),
	}
}

// =============================================================================
// PROJECT HANDLERS
// =============================================================================

// ListProjects returns all saved projects.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Store.ListProjects(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list projects", err)
		return
	}

	dtos := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		dtos[i] = toProjectDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetProject returns a single project.
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.Store.GetProject(r.Context(), id)
	if errors.Is(err, sqlite.ErrProjectNotFound) {
		writeError(w, http.StatusNotFound, "Project not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get project", err)
		return
	}

	writeJSON(w, http.StatusOK, toProjectDTO(*p))
}

// CreateProject creates or replaces a project.
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req SaveProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if strings.TrimSpace(req.ID) == "" || strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "Project id and name are required", nil)
		return
	}

	if err := h.Store.SaveProject(r.Context(), sqlite.Project{
		ID:     req.ID,
		Name:   req.Name,
		Config: req.Config,
	}); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save project", err)
		return
	}

	p, err := h.Store.GetProject(r.Context(), req.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reload project", err)
		return
	}
	writeJSON(w, http.StatusCreated, toProjectDTO(*p))
}

// UpdateProject replaces an existing project's name and config.
func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := h.Store.GetProject(r.Context(), id); errors.Is(err, sqlite.ErrProjectNotFound) {
		writeError(w, http.StatusNotFound, "Project not found", nil)
		return
	} else if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get project", err)
		return
	}

	var req SaveProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "Project name is required", nil)
		return
	}

	if err := h.Store.SaveProject(r.Context(), sqlite.Project{
		ID:     id,
		Name:   req.Name,
		Config: req.Config,
	}); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save project", err)
		return
	}

	p, err := h.Store.GetProject(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reload project", err)
		return
	}
	writeJSON(w, http.StatusOK, toProjectDTO(*p))
}

// DeleteProject removes a project.
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.Store.DeleteProject(r.Context(), id)
	if errors.Is(err, sqlite.ErrProjectNotFound) {
		writeError(w, http.StatusNotFound, "Project not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete project", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetProjectModel computes the full model from a stored project config.
// GET /api/projects/{id}/model
func (h *Handler) GetProjectModel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.Store.GetProject(r.Context(), id)
	if errors.Is(err, sqlite.ErrProjectNotFound) {
		writeError(w, http.StatusNotFound, "Project not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get project", err)
		return
	}

	writeJSON(w, http.StatusOK, computeResponse(p.Config))
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// emptyIfNil keeps JSON arrays as [] rather than null; the form iterates
// them unconditionally.
func emptyIfNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
