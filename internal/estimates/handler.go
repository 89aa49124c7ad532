package estimates

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/takeoff/pkg/auth"
	"github.com/JaimeStill/takeoff/pkg/handlers"
	"github.com/JaimeStill/takeoff/pkg/pagination"
	"github.com/JaimeStill/takeoff/pkg/routes"
)

// Handler provides HTTP endpoints for estimate operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// SearchRequest combines pagination and filter criteria for the search endpoint.
type SearchRequest struct {
	pagination.PageRequest
	Filters
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "estimates"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for estimate endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/estimates",
		Tags:        []string{"Estimates"},
		Description: "Material lists and their resolved procurement quantities",
		Schemas:     schemas,
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: spec.List},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find, OpenAPI: spec.Find},
			{Method: "POST", Pattern: "", Handler: h.Create, OpenAPI: spec.Create},
			{Method: "POST", Pattern: "/import", Handler: h.Import, OpenAPI: spec.Import},
			{Method: "POST", Pattern: "/search", Handler: h.Search, OpenAPI: spec.Search},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete, OpenAPI: spec.Delete},
			{Method: "POST", Pattern: "/{id}/resolve", Handler: h.Resolve, OpenAPI: spec.Resolve},
			{Method: "POST", Pattern: "/project/{projectId}/resolve", Handler: h.ResolveProject, OpenAPI: spec.ResolveProject},
			{Method: "PUT", Pattern: "/{id}/materials/{materialId}/override", Handler: h.SetOverride, OpenAPI: spec.SetOverride},
			{Method: "DELETE", Pattern: "/{id}/materials/{materialId}/override", Handler: h.ClearOverride, OpenAPI: spec.ClearOverride},
		},
	}
}

// List returns a paginated list of estimates with optional query parameter filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a single estimate with its materials.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	est, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, est)
}

// Create stores a manually entered estimate.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var cmd CreateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: %v", ErrInvalidEstimate, err))
		return
	}

	est, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, est)
}

// Import stores an estimate from raw upstream takeoff content.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	var cmd ImportCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: %v", ErrInvalidEstimate, err))
		return
	}

	est, err := h.sys.Import(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, est)
}

// Search accepts a JSON body with pagination and filter criteria and returns matching estimates.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	req.PageRequest.Normalize(h.pagination)

	result, err := h.sys.List(r.Context(), req.PageRequest, req.Filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete removes an estimate and its materials.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Resolve resolves one estimate and returns it with per-material results.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	est, err := h.sys.Resolve(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, est)
}

// ResolveProject resolves every estimate of a project.
func (h *Handler) ResolveProject(w http.ResponseWriter, r *http.Request) {
	projectID, ok := h.pathID(w, r, "projectId")
	if !ok {
		return
	}

	summaries, err := h.sys.ResolveProject(r.Context(), projectID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, summaries)
}

// SetOverride attaches a manual override to a material. The override is
// attributed to the authenticated subject unless resolved_by is given.
func (h *Handler) SetOverride(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	materialID, ok := h.pathID(w, r, "materialId")
	if !ok {
		return
	}

	var cmd OverrideCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: %v", ErrInvalidOverride, err))
		return
	}

	override, err := cmd.Override(auth.Subject(r.Context()), time.Now())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	est, err := h.sys.SetOverride(r.Context(), id, materialID, override)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, est)
}

// ClearOverride removes a material's manual override.
func (h *Handler) ClearOverride(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	materialID, ok := h.pathID(w, r, "materialId")
	if !ok {
		return
	}

	est, err := h.sys.ClearOverride(r.Context(), id, materialID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, est)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest,
			fmt.Errorf("%w: invalid %s %q", ErrInvalidEstimate, name, r.PathValue(name)))
		return uuid.Nil, false
	}
	return id, true
}
