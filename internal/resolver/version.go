package resolver

import (
	"fmt"
	"time"
)

// Quantity logic versions. Projects on VersionLegacy keep their frozen
// calculation path and are never routed through the Resolver.
const (
	VersionLegacy   = 1
	VersionResolver = 2
)

// DefaultCutoff is the rollout date of the resolver. Projects created
// before it are legacy.
var DefaultCutoff = time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)

// Gate decides which quantity logic a project uses.
type Gate struct {
	cutoff time.Time
}

// NewGate creates a Gate. A zero cutoff uses DefaultCutoff.
func NewGate(cutoff time.Time) Gate {
	if cutoff.IsZero() {
		cutoff = DefaultCutoff
	}
	return Gate{cutoff: cutoff}
}

// Cutoff returns the boundary the gate compares against.
func (g Gate) Cutoff() time.Time {
	if g.cutoff.IsZero() {
		return DefaultCutoff
	}
	return g.cutoff
}

// Version returns VersionLegacy for projects created before the cutoff
// and VersionResolver otherwise.
func (g Gate) Version(createdAt time.Time) int {
	if createdAt.Before(g.Cutoff()) {
		return VersionLegacy
	}
	return VersionResolver
}

// ShouldResolve reports whether a project uses the Resolver. An explicit
// version recorded on the project wins over its creation date.
func (g Gate) ShouldResolve(createdAt time.Time, explicit *int) bool {
	if explicit != nil {
		return *explicit == VersionResolver
	}
	return g.Version(createdAt) == VersionResolver
}

// VersionInfo reports the quantity logic a project uses.
type VersionInfo struct {
	Version      int       `json:"version"`
	UsesResolver bool      `json:"uses_resolver"`
	Cutoff       time.Time `json:"cutoff"`
}

// Describe returns the VersionInfo for a project creation date and
// optional explicit version.
func (g Gate) Describe(createdAt time.Time, explicit *int) VersionInfo {
	version := g.Version(createdAt)
	if explicit != nil {
		version = *explicit
	}
	return VersionInfo{
		Version:      version,
		UsesResolver: g.ShouldResolve(createdAt, explicit),
		Cutoff:       g.Cutoff(),
	}
}

// ParseDate accepts RFC 3339 timestamps or YYYY-MM-DD dates (UTC midnight).
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: invalid date %q", ErrInvalidInput, s)
}
