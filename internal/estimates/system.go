package estimates

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/takeoff/internal/resolver"
	"github.com/JaimeStill/takeoff/pkg/pagination"
)

// System defines the public contract for estimate domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Estimate], error)

	Find(ctx context.Context, id uuid.UUID) (*Estimate, error)
	Create(ctx context.Context, cmd CreateCommand) (*Estimate, error)
	Import(ctx context.Context, cmd ImportCommand) (*Estimate, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Resolve runs the estimate's materials through the resolver and stores
	// each result. Returns ErrLegacyProject when the owning project is on
	// legacy quantity logic.
	Resolve(ctx context.Context, id uuid.UUID) (*Estimate, error)

	// ResolveProject resolves every estimate of a project concurrently.
	ResolveProject(ctx context.Context, projectID uuid.UUID) ([]ResolveSummary, error)

	SetOverride(ctx context.Context, id, materialID uuid.UUID, override resolver.ManualOverride) (*Estimate, error)
	ClearOverride(ctx context.Context, id, materialID uuid.UUID) (*Estimate, error)
}
