package estimates

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/takeoff/internal/projects"
)

// Domain errors for estimate operations.
var (
	ErrNotFound         = errors.New("estimate not found")
	ErrDuplicate        = errors.New("estimate already exists")
	ErrMaterialNotFound = errors.New("material not found")
	ErrInvalidEstimate  = errors.New("invalid estimate")
	ErrInvalidOverride  = errors.New("invalid manual override")
	ErrInvalidTakeoff   = errors.New("invalid takeoff content")
	ErrLegacyProject    = errors.New("project uses legacy quantity logic")
)

// MapHTTPStatus maps estimate domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrMaterialNotFound),
		errors.Is(err, projects.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate),
		errors.Is(err, ErrLegacyProject):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidEstimate),
		errors.Is(err, ErrInvalidOverride):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidTakeoff):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
