package projects

import "github.com/JaimeStill/takeoff/pkg/openapi"

var spec = struct {
	List          *openapi.Operation
	Find          *openapi.Operation
	QuantityLogic *openapi.Operation
	Create        *openapi.Operation
	Update        *openapi.Operation
	Delete        *openapi.Operation
	Search        *openapi.Operation
}{
	List: &openapi.Operation{
		Summary: "List projects",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number", false),
			openapi.QueryParam("page_size", "integer", "Results per page", false),
			openapi.QueryParam("search", "string", "Search name and description", false),
			openapi.QueryParam("sort", "string", "Sort fields, e.g. -CreatedAt", false),
			openapi.QueryParam("name", "string", "Name contains", false),
			openapi.QueryParam("quantity_logic_version", "integer", "Explicit quantity logic version", false),
			openapi.QueryParam("created_after", "string", "RFC 3339 lower bound", false),
			openapi.QueryParam("created_before", "string", "RFC 3339 upper bound", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Page of projects", "ProjectPage"),
		},
	},
	Find: &openapi.Operation{
		Summary:    "Find a project",
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Project ID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Project", "Project"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	QuantityLogic: &openapi.Operation{
		Summary:     "Quantity logic version",
		Description: "Reports whether the project's estimates are resolved by the quantity resolver or frozen on legacy logic.",
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Project ID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Version info", "VersionInfo"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Create a project",
		RequestBody: openapi.RequestBodyJSON("ProjectCommand", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Created project", "Project"),
			400: openapi.ResponseRef("BadRequest"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Update: &openapi.Operation{
		Summary:     "Update a project",
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Project ID")},
		RequestBody: openapi.RequestBodyJSON("ProjectCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Updated project", "Project"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Delete: &openapi.Operation{
		Summary:    "Delete a project and its estimates",
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Project ID")},
		Responses: map[int]*openapi.Response{
			204: {Description: "Deleted"},
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Search: &openapi.Operation{
		Summary:     "Search projects",
		RequestBody: openapi.RequestBodyJSON("ProjectSearch", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Page of projects", "ProjectPage"),
		},
	},
}

var schemas = map[string]*openapi.Schema{
	"Project": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":                     {Type: "string", Format: "uuid"},
			"name":                   {Type: "string"},
			"description":            {Type: "string"},
			"quantity_logic_version": {Type: "integer", Enum: []any{1, 2}},
			"created_at":             {Type: "string", Format: "date-time"},
			"updated_at":             {Type: "string", Format: "date-time"},
		},
	},
	"ProjectCommand": {
		Type:     "object",
		Required: []string{"name"},
		Properties: map[string]*openapi.Schema{
			"name":                   {Type: "string"},
			"description":            {Type: "string"},
			"quantity_logic_version": {Type: "integer", Enum: []any{1, 2}},
		},
	},
	"ProjectSearch": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"page":                   {Type: "integer"},
			"page_size":              {Type: "integer"},
			"search":                 {Type: "string"},
			"sort":                   {Type: "string"},
			"name":                   {Type: "string"},
			"quantity_logic_version": {Type: "integer"},
			"created_after":          {Type: "string", Format: "date-time"},
			"created_before":         {Type: "string", Format: "date-time"},
		},
	},
	"ProjectPage": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"data":        {Type: "array", Items: openapi.SchemaRef("Project")},
			"total":       {Type: "integer"},
			"page":        {Type: "integer"},
			"page_size":   {Type: "integer"},
			"total_pages": {Type: "integer"},
			"has_next":    {Type: "boolean"},
		},
	},
}
