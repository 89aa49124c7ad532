package projects

import (
	"net/url"
	"strconv"
	"time"

	"github.com/JaimeStill/takeoff/pkg/query"
	"github.com/JaimeStill/takeoff/pkg/repository"
)

const returning = "id, name, description, quantity_logic_version, created_at, updated_at"

var projection = query.
	NewProjectionMap("public", "projects", "p").
	Project("id", "ID").
	Project("name", "Name").
	Project("description", "Description").
	Project("quantity_logic_version", "QuantityLogicVersion").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for project queries.
// Nil fields are ignored.
type Filters struct {
	Name                 *string    `json:"name,omitempty"`
	QuantityLogicVersion *int       `json:"quantity_logic_version,omitempty"`
	CreatedAfter         *time.Time `json:"created_after,omitempty"`
	CreatedBefore        *time.Time `json:"created_before,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereContains("Name", f.Name).
		WhereEquals("QuantityLogicVersion", f.QuantityLogicVersion).
		WhereAfter("CreatedAt", f.CreatedAfter).
		WhereBefore("CreatedAt", f.CreatedBefore)
}

// FiltersFromQuery extracts filter values from URL query parameters.
// Unparseable values are ignored.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if n := values.Get("name"); n != "" {
		f.Name = &n
	}

	if v := values.Get("quantity_logic_version"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.QuantityLogicVersion = &n
		}
	}

	if v := values.Get("created_after"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			f.CreatedAfter = &t
		}
	}

	if v := values.Get("created_before"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			f.CreatedBefore = &t
		}
	}

	return f
}

func scanProject(s repository.Scanner) (Project, error) {
	var p Project
	err := s.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.QuantityLogicVersion,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}
