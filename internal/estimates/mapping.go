package estimates

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/JaimeStill/takeoff/internal/resolver"
	"github.com/JaimeStill/takeoff/pkg/query"
	"github.com/JaimeStill/takeoff/pkg/repository"
)

const returning = `id, project_id, label, source, base_area, waste_percent,
		summary, resolved_at, created_at`

const materialColumns = `id, position, name, material_type, base_quantity, unit,
		coverage_rate, container_unit, thickness_inches, manual_override, result`

var projection = query.
	NewProjectionMap("public", "estimates", "e").
	Project("id", "ID").
	Project("project_id", "ProjectID").
	Project("label", "Label").
	Project("source", "Source").
	Project("base_area", "BaseArea").
	Project("waste_percent", "WastePercent").
	Project("summary", "Summary").
	Project("resolved_at", "ResolvedAt").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for estimate queries.
// Nil fields are ignored.
type Filters struct {
	ProjectID *uuid.UUID `json:"project_id,omitempty"`
	Label     *string    `json:"label,omitempty"`
	Source    *Source    `json:"source,omitempty"`
	Resolved  *bool      `json:"resolved,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	var source *string
	if f.Source != nil {
		s := string(*f.Source)
		source = &s
	}

	return b.
		WhereEquals("ProjectID", f.ProjectID).
		WhereContains("Label", f.Label).
		WhereEquals("Source", source).
		WherePresent("ResolvedAt", f.Resolved)
}

// FiltersFromQuery extracts filter values from URL query parameters.
// Unparseable values are ignored.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if p := values.Get("project_id"); p != "" {
		if id, err := uuid.Parse(p); err == nil {
			f.ProjectID = &id
		}
	}

	if l := values.Get("label"); l != "" {
		f.Label = &l
	}

	if s := values.Get("source"); s != "" {
		src := Source(s)
		f.Source = &src
	}

	if r := values.Get("resolved"); r != "" {
		if b, err := strconv.ParseBool(r); err == nil {
			f.Resolved = &b
		}
	}

	return f
}

func scanEstimate(s repository.Scanner) (Estimate, error) {
	var e Estimate
	var source string

	err := s.Scan(
		&e.ID,
		&e.ProjectID,
		&e.Label,
		&source,
		&e.BaseArea,
		&e.WastePercent,
		&e.Summary,
		&e.ResolvedAt,
		&e.CreatedAt,
	)

	e.Source = Source(source)
	e.Materials = []Material{}
	return e, err
}

func scanMaterial(s repository.Scanner) (Material, error) {
	var m Material
	var materialType string
	var overrideRaw, resultRaw []byte

	err := s.Scan(
		&m.ID,
		&m.Position,
		&m.Name,
		&materialType,
		&m.BaseQuantity,
		&m.Unit,
		&m.CoverageRate,
		&m.ContainerUnit,
		&m.ThicknessInches,
		&overrideRaw,
		&resultRaw,
	)

	if err != nil {
		return m, err
	}

	m.MaterialType = resolver.Category(materialType)

	if len(overrideRaw) > 0 {
		m.ManualOverride = &resolver.ManualOverride{}
		if err := json.Unmarshal(overrideRaw, m.ManualOverride); err != nil {
			return m, fmt.Errorf("unmarshal manual_override: %w", err)
		}
	}

	if len(resultRaw) > 0 {
		m.Result = &resolver.Output{}
		if err := json.Unmarshal(resultRaw, m.Result); err != nil {
			return m, fmt.Errorf("unmarshal result: %w", err)
		}
	}

	return m, nil
}

// jsonb encodes v for a jsonb column, passing nil through as NULL.
func jsonb[T any](v *T) (any, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return data, nil
}
