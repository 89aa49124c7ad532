package estimates

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/takeoff/internal/projects"
	"github.com/JaimeStill/takeoff/internal/resolver"
	"github.com/JaimeStill/takeoff/pkg/pagination"
	"github.com/JaimeStill/takeoff/pkg/query"
	"github.com/JaimeStill/takeoff/pkg/repository"
)

type repo struct {
	db           *sql.DB
	resolver     *resolver.Resolver
	projects     projects.System
	defaultWaste float64
	concurrency  int
	logger       *slog.Logger
	pagination   pagination.Config
}

// New creates an estimate repository implementing the System interface.
// Concurrency bounds how many estimates ResolveProject resolves at once.
func New(
	db *sql.DB,
	res *resolver.Resolver,
	projects projects.System,
	defaultWaste float64,
	concurrency int,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	if concurrency < 1 {
		concurrency = 1
	}
	return &repo{
		db:           db,
		resolver:     res,
		projects:     projects,
		defaultWaste: defaultWaste,
		concurrency:  concurrency,
		logger:       logger.With("system", "estimates"),
		pagination:   pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Estimate], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Label")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count estimates: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanEstimate)
	if err != nil {
		return nil, fmt.Errorf("query estimates: %w", err)
	}

	if err := r.attachMaterials(ctx, r.db, items); err != nil {
		return nil, err
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Estimate, error) {
	return r.find(ctx, r.db, id)
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Estimate, error) {
	if err := cmd.validate(r.defaultWaste); err != nil {
		return nil, err
	}
	return r.insert(ctx, cmd, SourceManual)
}

func (r *repo) Import(ctx context.Context, cmd ImportCommand) (*Estimate, error) {
	takeoff, err := ParseTakeoff(cmd.Content)
	if err != nil {
		return nil, err
	}

	create := CreateCommand{
		ProjectID:    cmd.ProjectID,
		Label:        cmd.Label,
		BaseArea:     takeoff.ConfirmedArea,
		WastePercent: cmd.WastePercent,
		Materials:    takeoff.Materials,
	}
	if err := create.validate(r.defaultWaste); err != nil {
		return nil, err
	}

	return r.insert(ctx, create, SourceAI)
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM estimates WHERE id = $1",
			id,
		)
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("estimate deleted", "id", id)
	return nil
}

func (r *repo) Resolve(ctx context.Context, id uuid.UUID) (*Estimate, error) {
	est, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.requireResolver(ctx, est.ProjectID); err != nil {
		return nil, err
	}

	return r.resolve(ctx, est)
}

func (r *repo) ResolveProject(ctx context.Context, projectID uuid.UUID) ([]ResolveSummary, error) {
	if err := r.requireResolver(ctx, projectID); err != nil {
		return nil, err
	}

	ids, err := repository.QueryMany(ctx, r.db,
		"SELECT id FROM estimates WHERE project_id = $1 ORDER BY created_at",
		[]any{projectID},
		func(s repository.Scanner) (uuid.UUID, error) {
			var id uuid.UUID
			err := s.Scan(&id)
			return id, err
		},
	)
	if err != nil {
		return nil, fmt.Errorf("query project estimates: %w", err)
	}

	summaries := make([]ResolveSummary, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, id := range ids {
		g.Go(func() error {
			est, err := r.Find(gctx, id)
			if err != nil {
				return fmt.Errorf("estimate %s: %w", id, err)
			}

			resolved, err := r.resolve(gctx, est)
			if err != nil {
				return fmt.Errorf("estimate %s: %w", id, err)
			}

			summaries[i] = summarize(resolved)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	r.logger.Info("project estimates resolved",
		"project_id", projectID,
		"estimates", len(ids),
	)
	return summaries, nil
}

func (r *repo) SetOverride(
	ctx context.Context,
	id, materialID uuid.UUID,
	override resolver.ManualOverride,
) (*Estimate, error) {
	value, err := jsonb(&override)
	if err != nil {
		return nil, fmt.Errorf("marshal manual_override: %w", err)
	}

	est, err := r.updateOverride(ctx, id, materialID, value)
	if err != nil {
		return nil, err
	}

	r.logger.Info("manual override set",
		"id", id,
		"material_id", materialID,
		"quantity", override.Quantity,
		"unit", override.Unit,
		"resolved_by", override.ResolvedBy,
	)
	return est, nil
}

func (r *repo) ClearOverride(ctx context.Context, id, materialID uuid.UUID) (*Estimate, error) {
	est, err := r.updateOverride(ctx, id, materialID, nil)
	if err != nil {
		return nil, err
	}

	r.logger.Info("manual override cleared", "id", id, "material_id", materialID)
	return est, nil
}

func (r *repo) updateOverride(ctx context.Context, id, materialID uuid.UUID, value any) (*Estimate, error) {
	return repository.WithTx(ctx, r.db, func(tx *sql.Tx) (*Estimate, error) {
		err := repository.ExecExpectOne(
			ctx, tx,
			"UPDATE estimate_materials SET manual_override = $1 WHERE id = $2 AND estimate_id = $3",
			value, materialID, id,
		)
		if err != nil {
			if _, findErr := r.find(ctx, tx, id); findErr != nil {
				return nil, findErr
			}
			return nil, repository.MapError(err, ErrMaterialNotFound, ErrDuplicate)
		}
		return r.find(ctx, tx, id)
	})
}

func (r *repo) requireResolver(ctx context.Context, projectID uuid.UUID) error {
	info, err := r.projects.QuantityLogic(ctx, projectID)
	if err != nil {
		return err
	}
	if !info.UsesResolver {
		return fmt.Errorf("%w: project %s is on version %d", ErrLegacyProject, projectID, info.Version)
	}
	return nil
}

func (r *repo) resolve(ctx context.Context, est *Estimate) (*Estimate, error) {
	materials := est.Resolvables()
	outputs := r.resolver.ResolveEach(materials, est.BaseArea, est.WastePercent)
	batch := resolver.Partition(materials, outputs)

	resolved, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (*Estimate, error) {
		for i, m := range est.Materials {
			value, err := jsonb(&outputs[i])
			if err != nil {
				return nil, fmt.Errorf("marshal result: %w", err)
			}
			if err := repository.ExecExpectOne(
				ctx, tx,
				"UPDATE estimate_materials SET result = $1 WHERE id = $2",
				value, m.ID,
			); err != nil {
				return nil, fmt.Errorf("store result for material %s: %w", m.ID, err)
			}
		}

		if err := repository.ExecExpectOne(
			ctx, tx,
			"UPDATE estimates SET summary = $1, resolved_at = now() WHERE id = $2",
			batch.Summary, est.ID,
		); err != nil {
			return nil, err
		}

		return r.find(ctx, tx, est.ID)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("estimate resolved",
		"id", est.ID,
		"resolved", len(batch.Resolved),
		"failed", len(batch.Failed),
	)
	return resolved, nil
}

func (r *repo) insert(ctx context.Context, cmd CreateCommand, source Source) (*Estimate, error) {
	now := time.Now().UTC()

	insertQ := `
		INSERT INTO estimates(project_id, label, source, base_area, waste_percent)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + returning

	est, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (*Estimate, error) {
		e, err := repository.QueryOne(ctx, tx, insertQ,
			[]any{cmd.ProjectID, cmd.Label, string(source), cmd.BaseArea, *cmd.WastePercent},
			scanEstimate,
		)
		if err != nil {
			return nil, err
		}

		for i, m := range cmd.Materials {
			if m.ManualOverride != nil && m.ManualOverride.Timestamp.IsZero() {
				m.ManualOverride.Timestamp = now
			}
			override, err := jsonb(m.ManualOverride)
			if err != nil {
				return nil, fmt.Errorf("marshal manual_override: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				INSERT INTO estimate_materials(
					estimate_id, position, name, material_type, base_quantity, unit,
					coverage_rate, container_unit, thickness_inches, manual_override
				)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
				e.ID, i, m.Name, string(m.MaterialType), m.BaseQuantity, m.Unit,
				m.CoverageRate, m.ContainerUnit, m.ThicknessInches, override,
			); err != nil {
				return nil, fmt.Errorf("insert material %d: %w", i, err)
			}
		}

		return r.find(ctx, tx, e.ID)
	})

	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: %s", projects.ErrNotFound, cmd.ProjectID)
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("estimate created",
		"id", est.ID,
		"project_id", est.ProjectID,
		"source", est.Source,
		"materials", len(est.Materials),
	)
	return est, nil
}

func (r *repo) find(ctx context.Context, q repository.Querier, id uuid.UUID) (*Estimate, error) {
	sqlQ, args := query.NewBuilder(projection).BuildSingle("ID", id)

	e, err := repository.QueryOne(ctx, q, sqlQ, args, scanEstimate)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	items := []Estimate{e}
	if err := r.attachMaterials(ctx, q, items); err != nil {
		return nil, err
	}
	return &items[0], nil
}

func (r *repo) attachMaterials(ctx context.Context, q repository.Querier, items []Estimate) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]string, len(items))
	index := make(map[uuid.UUID]int, len(items))
	for i, e := range items {
		ids[i] = e.ID.String()
		index[e.ID] = i
	}

	rows, err := q.QueryContext(ctx, `
		SELECT estimate_id, `+materialColumns+`
		FROM estimate_materials
		WHERE estimate_id = ANY($1::uuid[])
		ORDER BY estimate_id, position`,
		ids,
	)
	if err != nil {
		return fmt.Errorf("query materials: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var estimateID uuid.UUID
		m, err := scanMaterial(prefixed{rows, &estimateID})
		if err != nil {
			return fmt.Errorf("scan material: %w", err)
		}
		if i, ok := index[estimateID]; ok {
			items[i].Materials = append(items[i].Materials, m)
		}
	}

	return rows.Err()
}

// prefixed scans a leading column before handing the rest to a scan func.
type prefixed struct {
	s     repository.Scanner
	first any
}

func (p prefixed) Scan(dest ...any) error {
	return p.s.Scan(append([]any{p.first}, dest...)...)
}

func summarize(e *Estimate) ResolveSummary {
	s := ResolveSummary{EstimateID: e.ID, Label: e.Label}
	for _, m := range e.Materials {
		if m.Result != nil && m.Result.Success {
			s.Resolved++
		} else {
			s.Failed++
		}
	}
	if e.Summary != nil {
		s.Summary = *e.Summary
	}
	return s
}
