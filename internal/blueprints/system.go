package blueprints

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/takeoff/pkg/pagination"
	"github.com/JaimeStill/takeoff/pkg/storage"
)

// System defines the public contract for blueprint domain operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Blueprint], error)

	Find(ctx context.Context, id uuid.UUID) (*Blueprint, error)
	Create(ctx context.Context, cmd CreateCommand) (*Blueprint, error)

	// Download returns the blueprint with an open stream of its file.
	// The caller must close the stream body.
	Download(ctx context.Context, id uuid.UUID) (*Blueprint, *storage.BlobResult, error)

	Delete(ctx context.Context, id uuid.UUID) error
}
