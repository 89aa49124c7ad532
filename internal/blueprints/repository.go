package blueprints

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/JaimeStill/takeoff/internal/projects"
	"github.com/JaimeStill/takeoff/pkg/pagination"
	"github.com/JaimeStill/takeoff/pkg/query"
	"github.com/JaimeStill/takeoff/pkg/repository"
	"github.com/JaimeStill/takeoff/pkg/storage"
)

type repo struct {
	db         *sql.DB
	storage    storage.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a blueprint repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		storage:    store,
		logger:     logger.With("system", "blueprints"),
		pagination: pagination,
	}
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxUploadSize)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Blueprint], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Filename", "Notes")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count blueprints: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanBlueprint)
	if err != nil {
		return nil, fmt.Errorf("query blueprints: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Blueprint, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	b, err := repository.QueryOne(ctx, r.db, q, args, scanBlueprint)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &b, nil
}

// Create uploads the file before inserting its row. A failed insert
// removes the uploaded blob.
func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Blueprint, error) {
	kind, ok := KindOf(cmd.ContentType)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, cmd.ContentType)
	}
	if len(cmd.Data) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrInvalidFile)
	}

	id := uuid.New()
	key := storageKey(id, sanitizeFilename(cmd.Filename))

	if err := r.storage.Upload(ctx, key, bytes.NewReader(cmd.Data), cmd.ContentType); err != nil {
		return nil, fmt.Errorf("upload blueprint blob: %w", err)
	}

	q := `
		INSERT INTO blueprints(id, project_id, filename, content_type, kind, size_bytes, page_count, storage_key, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + returning

	args := []any{
		id,
		cmd.ProjectID,
		cmd.Filename,
		cmd.ContentType,
		string(kind),
		int64(len(cmd.Data)),
		cmd.PageCount,
		key,
		cmd.Notes,
	}

	b, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Blueprint, error) {
		return repository.QueryOne(ctx, tx, q, args, scanBlueprint)
	})

	if err != nil {
		if delErr := r.storage.Delete(ctx, key); delErr != nil {
			r.logger.Warn("compensating blob delete failed", "key", key, "error", delErr)
		}
		if repository.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: %s", projects.ErrNotFound, cmd.ProjectID)
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("blueprint uploaded",
		"id", b.ID,
		"project_id", b.ProjectID,
		"kind", b.Kind,
		"size", b.Size,
	)
	return &b, nil
}

func (r *repo) Download(ctx context.Context, id uuid.UUID) (*Blueprint, *storage.BlobResult, error) {
	b, err := r.Find(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	blob, err := r.storage.Download(ctx, b.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: blob %s is missing", ErrNotFound, b.StorageKey)
		}
		return nil, nil, fmt.Errorf("download blueprint %s: %w", id, err)
	}

	return b, blob, nil
}

// Delete removes the row first; a failed blob delete afterwards is logged,
// not returned.
func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	b, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM blueprints WHERE id = $1",
			id,
		)
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if delErr := r.storage.Delete(ctx, b.StorageKey); delErr != nil {
		r.logger.Warn("blob delete failed after row delete",
			"key", b.StorageKey,
			"error", delErr,
		)
	}

	r.logger.Info("blueprint deleted", "id", id)
	return nil
}

func storageKey(id uuid.UUID, filename string) string {
	return fmt.Sprintf("blueprints/%s/%s", id, filename)
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	if name == "." || name == "/" || name == "" {
		name = "upload"
	}
	return url.PathEscape(name)
}
