package blueprints

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/JaimeStill/takeoff/pkg/formatting"
	"github.com/JaimeStill/takeoff/pkg/query"
	"github.com/JaimeStill/takeoff/pkg/repository"
)

const returning = `id, project_id, filename, content_type, kind, size_bytes,
		page_count, storage_key, notes, uploaded_at`

var projection = query.
	NewProjectionMap("public", "blueprints", "b").
	Project("id", "ID").
	Project("project_id", "ProjectID").
	Project("filename", "Filename").
	Project("content_type", "ContentType").
	Project("kind", "Kind").
	Project("size_bytes", "SizeBytes").
	Project("page_count", "PageCount").
	Project("storage_key", "StorageKey").
	Project("notes", "Notes").
	Project("uploaded_at", "UploadedAt")

var defaultSort = query.SortField{
	Field:      "UploadedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for blueprint queries.
// Filename uses case-insensitive contains matching.
type Filters struct {
	ProjectID *uuid.UUID `json:"project_id,omitempty"`
	Kind      *Kind      `json:"kind,omitempty"`
	Filename  *string    `json:"filename,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	var kind *string
	if f.Kind != nil {
		k := string(*f.Kind)
		kind = &k
	}

	return b.
		WhereEquals("ProjectID", f.ProjectID).
		WhereEquals("Kind", kind).
		WhereContains("Filename", f.Filename)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if p := values.Get("project_id"); p != "" {
		if id, err := uuid.Parse(p); err == nil {
			f.ProjectID = &id
		}
	}

	if k := values.Get("kind"); k != "" {
		kind := Kind(k)
		f.Kind = &kind
	}

	if n := values.Get("filename"); n != "" {
		f.Filename = &n
	}

	return f
}

func scanBlueprint(s repository.Scanner) (Blueprint, error) {
	var b Blueprint
	var kind string

	err := s.Scan(
		&b.ID,
		&b.ProjectID,
		&b.Filename,
		&b.ContentType,
		&kind,
		&b.SizeBytes,
		&b.PageCount,
		&b.StorageKey,
		&b.Notes,
		&b.UploadedAt,
	)

	b.Kind = Kind(kind)
	b.Size = formatting.FormatBytes(b.SizeBytes, 1)
	return b, err
}
