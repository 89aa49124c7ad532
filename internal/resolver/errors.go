package resolver

import (
	"errors"
	"fmt"
	"net/http"
)

// Resolution failures. Both are terminal and ask for human input.
var (
	ErrUnknownMaterialType     = errors.New("unknown material type")
	ErrCoverageRateUnavailable = errors.New("coverage rate unavailable")
)

// Request errors.
var (
	ErrInvalidCategory = errors.New("invalid material category")
	ErrInvalidInput    = errors.New("invalid resolver input")
)

// ErrorCode identifies the failure kind carried by an Output.
type ErrorCode string

const (
	CodeUnknownMaterialType     ErrorCode = "unknown_material_type"
	CodeCoverageRateUnavailable ErrorCode = "coverage_rate_unavailable"
)

func (c ErrorCode) wrap(msg string) error {
	var base error
	switch c {
	case CodeUnknownMaterialType:
		base = ErrUnknownMaterialType
	case CodeCoverageRateUnavailable:
		base = ErrCoverageRateUnavailable
	default:
		return errors.New(msg)
	}
	if msg == "" {
		return base
	}
	return fmt.Errorf("%w: %s", base, msg)
}

// MapHTTPStatus maps resolver request errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrInvalidCategory) || errors.Is(err, ErrInvalidInput) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrUnknownMaterialType) || errors.Is(err, ErrCoverageRateUnavailable) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
