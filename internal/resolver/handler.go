package resolver

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/JaimeStill/takeoff/pkg/handlers"
	"github.com/JaimeStill/takeoff/pkg/routes"
)

// Handler exposes the resolver engine over HTTP.
type Handler struct {
	resolver     *Resolver
	gate         Gate
	defaultWaste float64
	logger       *slog.Logger
}

// BatchRequest is the body of the batch endpoint. WastePercent falls back
// to the handler default when nil.
type BatchRequest struct {
	Materials    []Material `json:"materials"`
	BaseArea     float64    `json:"base_area"`
	WastePercent *float64   `json:"waste_percent,omitempty"`
}

// Classification reports how a material name is classified and which
// registry entry, if any, it resolves against.
type Classification struct {
	Name        string         `json:"name"`
	Category    Category       `json:"category"`
	CoverageKey string         `json:"coverage_key,omitempty"`
	Coverage    *CoverageEntry `json:"coverage,omitempty"`
}

// NewHandler creates a Handler.
func NewHandler(resolver *Resolver, gate Gate, defaultWaste float64, logger *slog.Logger) *Handler {
	return &Handler{
		resolver:     resolver,
		gate:         gate,
		defaultWaste: defaultWaste,
		logger:       logger.With("handler", "quantities"),
	}
}

// Routes returns the route group for resolver endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/quantities",
		Tags:        []string{"Quantities"},
		Description: "Stateless quantity resolution against the coverage registry",
		Schemas:     schemas,
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/resolve", Handler: h.Resolve, OpenAPI: spec.Resolve},
			{Method: "POST", Pattern: "/batch", Handler: h.Batch, OpenAPI: spec.Batch},
			{Method: "GET", Pattern: "/classify", Handler: h.Classify, OpenAPI: spec.Classify},
			{Method: "GET", Pattern: "/categories", Handler: h.Categories, OpenAPI: spec.Categories},
			{Method: "GET", Pattern: "/coverage", Handler: h.Coverage, OpenAPI: spec.Coverage},
			{Method: "GET", Pattern: "/version", Handler: h.Version, OpenAPI: spec.Version},
		},
	}
}

// Resolve resolves a single Input. Resolution failures are returned with
// status 200 and Success false; only malformed requests are errors.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: %v", ErrInvalidInput, err))
		return
	}

	if err := in.Validate(); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, h.resolver.Resolve(in))
}

// Batch resolves a material list against a shared base area.
func (h *Handler) Batch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: %v", ErrInvalidInput, err))
		return
	}

	waste := h.defaultWaste
	if req.WastePercent != nil {
		waste = *req.WastePercent
	}

	if err := nonNegative("base_area", &req.BaseArea); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	if err := nonNegative("waste_percent", &waste); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	for i, m := range req.Materials {
		if err := m.Validate(req.BaseArea, waste); err != nil {
			handlers.RespondError(w, h.logger, MapHTTPStatus(err), fmt.Errorf("material %d: %w", i, err))
			return
		}
	}

	handlers.RespondJSON(w, http.StatusOK, h.resolver.ResolveBatch(req.Materials, req.BaseArea, waste))
}

// Classify reports the category and coverage entry for the name query parameter.
func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: name is required", ErrInvalidInput))
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Describe(name))
}

// Categories lists every material category.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, Categories())
}

// Coverage lists the coverage registry sorted by key.
func (h *Handler) Coverage(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, CoverageTable())
}

// Version reports the quantity logic version for the created_at query
// parameter (RFC 3339 or YYYY-MM-DD) and an optional explicit version.
func (h *Handler) Version(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	createdAt, err := ParseDate(q.Get("created_at"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var explicit *int
	if v := q.Get("version"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || (n != VersionLegacy && n != VersionResolver) {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: version must be 1 or 2", ErrInvalidInput))
			return
		}
		explicit = &n
	}

	handlers.RespondJSON(w, http.StatusOK, h.gate.Describe(createdAt, explicit))
}

// Describe classifies name and looks up its coverage entry.
func Describe(name string) Classification {
	c := Classification{Name: name, Category: Classify(name)}
	if key, ok := CoverageKey(c.Category, name); ok {
		c.CoverageKey = key
		if entry, found := LookupCoverage(key); found {
			c.Coverage = &entry
		}
	}
	return c
}
