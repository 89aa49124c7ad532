package query_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/JaimeStill/takeoff/pkg/query"
)

func projectProjection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "projects", "p").
		Project("id", "ID").
		Project("name", "Name").
		Project("created_at", "CreatedAt")
}

func estimateProjection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "estimates", "e").
		Join("JOIN public.projects p ON p.id = e.project_id").
		Project("id", "ID").
		ProjectFrom("p", "name", "ProjectName")
}

func ptr[T any](v T) *T { return &v }

func TestProjectionMap(t *testing.T) {
	p := projectProjection()

	if got := p.Table(); got != "public.projects p" {
		t.Errorf("Table() = %q", got)
	}
	if got := p.From(); got != "public.projects p" {
		t.Errorf("From() = %q", got)
	}
	if got := p.Alias(); got != "p" {
		t.Errorf("Alias() = %q", got)
	}
	if got := p.Columns(); got != "p.id, p.name, p.created_at" {
		t.Errorf("Columns() = %q", got)
	}
	if got := p.Column("Name"); got != "p.name" {
		t.Errorf("Column(Name) = %q", got)
	}
	if got := p.Column("unmapped"); got != "unmapped" {
		t.Errorf("Column(unmapped) = %q", got)
	}
}

func TestProjectionMapJoin(t *testing.T) {
	p := estimateProjection()

	want := "public.estimates e JOIN public.projects p ON p.id = e.project_id"
	if got := p.From(); got != want {
		t.Errorf("From() = %q, want %q", got, want)
	}
	if got := p.Columns(); got != "e.id, p.name" {
		t.Errorf("Columns() = %q", got)
	}

	list := p.ColumnList()
	list[0] = "mutated"
	if p.ColumnList()[0] != "e.id" {
		t.Error("ColumnList must return a copy")
	}
}

func TestParseSortFields(t *testing.T) {
	tests := []struct {
		input string
		want  []query.SortField
	}{
		{"", nil},
		{"Name", []query.SortField{{Field: "Name"}}},
		{"-CreatedAt,Name", []query.SortField{{Field: "CreatedAt", Descending: true}, {Field: "Name"}}},
		{" Name , ,-ID ", []query.SortField{{Field: "Name"}, {Field: "ID", Descending: true}}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := query.ParseSortFields(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseSortFields(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBuilder(t *testing.T) {
	defaultSort := query.SortField{Field: "CreatedAt", Descending: true}
	cutoff := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		build    func(b *query.Builder) (string, []any)
		wantSQL  string
		wantArgs int
	}{
		{
			name:    "build",
			build:   func(b *query.Builder) (string, []any) { return b.Build() },
			wantSQL: "SELECT p.id, p.name, p.created_at FROM public.projects p ORDER BY p.created_at DESC",
		},
		{
			name:    "count",
			build:   func(b *query.Builder) (string, []any) { return b.BuildCount() },
			wantSQL: "SELECT COUNT(*) FROM public.projects p",
		},
		{
			name:    "page",
			build:   func(b *query.Builder) (string, []any) { return b.BuildPage(2, 10) },
			wantSQL: "SELECT p.id, p.name, p.created_at FROM public.projects p ORDER BY p.created_at DESC LIMIT 10 OFFSET 10",
		},
		{
			name:     "single",
			build:    func(b *query.Builder) (string, []any) { return b.BuildSingle("ID", "abc") },
			wantSQL:  "SELECT p.id, p.name, p.created_at FROM public.projects p WHERE p.id = $1",
			wantArgs: 1,
		},
		{
			name: "equals and contains",
			build: func(b *query.Builder) (string, []any) {
				return b.WhereEquals("ID", "abc").WhereContains("Name", ptr("kitchen")).BuildCount()
			},
			wantSQL:  "SELECT COUNT(*) FROM public.projects p WHERE p.id = $1 AND p.name ILIKE $2",
			wantArgs: 2,
		},
		{
			name: "nil conditions skipped",
			build: func(b *query.Builder) (string, []any) {
				var id *string
				return b.WhereEquals("ID", id).WhereContains("Name", ptr("")).WhereAfter("CreatedAt", (*time.Time)(nil)).BuildCount()
			},
			wantSQL: "SELECT COUNT(*) FROM public.projects p",
		},
		{
			name: "date range",
			build: func(b *query.Builder) (string, []any) {
				return b.WhereAfter("CreatedAt", &cutoff).WhereBefore("CreatedAt", cutoff.AddDate(0, 1, 0)).BuildCount()
			},
			wantSQL:  "SELECT COUNT(*) FROM public.projects p WHERE p.created_at >= $1 AND p.created_at < $2",
			wantArgs: 2,
		},
		{
			name: "in",
			build: func(b *query.Builder) (string, []any) {
				return b.WhereIn("ID", []any{"a", "b", "c"}).BuildCount()
			},
			wantSQL:  "SELECT COUNT(*) FROM public.projects p WHERE p.id IN ($1, $2, $3)",
			wantArgs: 3,
		},
		{
			name: "nullable",
			build: func(b *query.Builder) (string, []any) {
				return b.WhereNullable("Name", nil).BuildCount()
			},
			wantSQL: "SELECT COUNT(*) FROM public.projects p WHERE p.name IS NULL",
		},
		{
			name: "present",
			build: func(b *query.Builder) (string, []any) {
				return b.WherePresent("Name", ptr(true)).WherePresent("ID", ptr(false)).WherePresent("CreatedAt", nil).BuildCount()
			},
			wantSQL: "SELECT COUNT(*) FROM public.projects p WHERE p.name IS NOT NULL AND p.id IS NULL",
		},
		{
			name: "search",
			build: func(b *query.Builder) (string, []any) {
				return b.WhereSearch(ptr("deck"), "Name", "ID").BuildCount()
			},
			wantSQL:  "SELECT COUNT(*) FROM public.projects p WHERE (p.name ILIKE $1 OR p.id ILIKE $2)",
			wantArgs: 2,
		},
		{
			name: "explicit order overrides default",
			build: func(b *query.Builder) (string, []any) {
				return b.OrderByFields(query.ParseSortFields("Name,-ID")).Build()
			},
			wantSQL: "SELECT p.id, p.name, p.created_at FROM public.projects p ORDER BY p.name ASC, p.id DESC",
		},
		{
			name: "column names sort like view names",
			build: func(b *query.Builder) (string, []any) {
				return b.OrderByFields(query.ParseSortFields("-created_at")).Build()
			},
			wantSQL: "SELECT p.id, p.name, p.created_at FROM public.projects p ORDER BY p.created_at DESC",
		},
		{
			name: "unmapped sort fields dropped",
			build: func(b *query.Builder) (string, []any) {
				return b.OrderByFields(query.ParseSortFields("name;DROP TABLE projects,Name")).Build()
			},
			wantSQL: "SELECT p.id, p.name, p.created_at FROM public.projects p ORDER BY p.name ASC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := query.NewBuilder(projectProjection(), defaultSort)
			sql, args := tt.build(b)
			if sql != tt.wantSQL {
				t.Errorf("sql = %q\nwant  %q", sql, tt.wantSQL)
			}
			if len(args) != tt.wantArgs {
				t.Errorf("args = %d, want %d", len(args), tt.wantArgs)
			}
		})
	}
}

func TestBuilderJoinedFrom(t *testing.T) {
	sql, _ := query.NewBuilder(estimateProjection()).BuildSingle("ID", "x")
	want := "SELECT e.id, p.name FROM public.estimates e JOIN public.projects p ON p.id = e.project_id WHERE e.id = $1"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
}
