package blueprints

import "github.com/JaimeStill/takeoff/pkg/openapi"

var blueprintID = openapi.PathParam("id", "Blueprint ID")

var spec = struct {
	List     *openapi.Operation
	Find     *openapi.Operation
	Download *openapi.Operation
	Upload   *openapi.Operation
	Search   *openapi.Operation
	Delete   *openapi.Operation
}{
	List: &openapi.Operation{
		Summary: "List blueprints",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number", false),
			openapi.QueryParam("page_size", "integer", "Results per page", false),
			openapi.QueryParam("search", "string", "Search filenames and notes", false),
			openapi.QueryParam("sort", "string", "Sort fields, e.g. -UploadedAt", false),
			openapi.QueryParam("project_id", "string", "Owning project", false),
			openapi.QueryParam("kind", "string", "photo or blueprint", false),
			openapi.QueryParam("filename", "string", "Filename contains", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Page of blueprints", "BlueprintPage"),
		},
	},
	Find: &openapi.Operation{
		Summary:    "Find a blueprint",
		Parameters: []*openapi.Parameter{blueprintID},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Blueprint", "Blueprint"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Download: &openapi.Operation{
		Summary:    "Download a blueprint file",
		Parameters: []*openapi.Parameter{blueprintID},
		Responses: map[int]*openapi.Response{
			200: {Description: "File stream with its stored content type"},
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Upload: &openapi.Operation{
		Summary:     "Upload a photo or blueprint",
		Description: "Multipart form with project_id, optional notes, and file. PDFs are stored as blueprints with their page count; images are stored as photos.",
		RequestBody: &openapi.RequestBody{
			Required: true,
			Content: map[string]*openapi.MediaType{
				"multipart/form-data": {
					Schema: &openapi.Schema{
						Type:     "object",
						Required: []string{"project_id", "file"},
						Properties: map[string]*openapi.Schema{
							"project_id": {Type: "string", Format: "uuid"},
							"notes":      {Type: "string"},
							"file":       {Type: "string", Format: "binary"},
						},
					},
				},
			},
		},
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Uploaded blueprint", "Blueprint"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			413: {Description: "File exceeds the upload limit"},
			415: {Description: "Only PDFs and images are accepted"},
		},
	},
	Search: &openapi.Operation{
		Summary:     "Search blueprints",
		RequestBody: openapi.RequestBodyJSON("BlueprintSearch", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Page of blueprints", "BlueprintPage"),
		},
	},
	Delete: &openapi.Operation{
		Summary:    "Delete a blueprint and its file",
		Parameters: []*openapi.Parameter{blueprintID},
		Responses: map[int]*openapi.Response{
			204: {Description: "Deleted"},
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

var schemas = map[string]*openapi.Schema{
	"Blueprint": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":           {Type: "string", Format: "uuid"},
			"project_id":   {Type: "string", Format: "uuid"},
			"filename":     {Type: "string"},
			"content_type": {Type: "string"},
			"kind":         {Type: "string", Enum: []any{"photo", "blueprint"}},
			"size_bytes":   {Type: "integer"},
			"size":         {Type: "string", Example: "2.4 MB"},
			"page_count":   {Type: "integer"},
			"storage_key":  {Type: "string"},
			"notes":        {Type: "string"},
			"uploaded_at":  {Type: "string", Format: "date-time"},
		},
	},
	"BlueprintSearch": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"page":       {Type: "integer"},
			"page_size":  {Type: "integer"},
			"search":     {Type: "string"},
			"sort":       {Type: "string"},
			"project_id": {Type: "string", Format: "uuid"},
			"kind":       {Type: "string", Enum: []any{"photo", "blueprint"}},
			"filename":   {Type: "string"},
		},
	},
	"BlueprintPage": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"data":        {Type: "array", Items: openapi.SchemaRef("Blueprint")},
			"total":       {Type: "integer"},
			"page":        {Type: "integer"},
			"page_size":   {Type: "integer"},
			"total_pages": {Type: "integer"},
			"has_next":    {Type: "boolean"},
		},
	},
}
