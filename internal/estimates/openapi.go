package estimates

import "github.com/JaimeStill/takeoff/pkg/openapi"

var estimateID = openapi.PathParam("id", "Estimate ID")

var materialID = openapi.PathParam("materialId", "Material ID")

var spec = struct {
	List           *openapi.Operation
	Find           *openapi.Operation
	Create         *openapi.Operation
	Import         *openapi.Operation
	Search         *openapi.Operation
	Delete         *openapi.Operation
	Resolve        *openapi.Operation
	ResolveProject *openapi.Operation
	SetOverride    *openapi.Operation
	ClearOverride  *openapi.Operation
}{
	List: &openapi.Operation{
		Summary: "List estimates",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number", false),
			openapi.QueryParam("page_size", "integer", "Results per page", false),
			openapi.QueryParam("search", "string", "Search labels", false),
			openapi.QueryParam("sort", "string", "Sort fields, e.g. -CreatedAt", false),
			openapi.QueryParam("project_id", "string", "Owning project", false),
			openapi.QueryParam("label", "string", "Label contains", false),
			openapi.QueryParam("source", "string", "manual or ai", false),
			openapi.QueryParam("resolved", "boolean", "Only resolved (true) or unresolved (false) estimates", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Page of estimates", "EstimatePage"),
		},
	},
	Find: &openapi.Operation{
		Summary:    "Find an estimate",
		Parameters: []*openapi.Parameter{estimateID},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Estimate with materials", "Estimate"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Create a manual estimate",
		RequestBody: openapi.RequestBodyJSON("EstimateCommand", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Created estimate", "Estimate"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Import: &openapi.Operation{
		Summary:     "Import an AI takeoff",
		Description: "Parses raw model output holding confirmed_area and a materials list of name, quantity_or_area, and unit. The JSON may sit inside a markdown code fence.",
		RequestBody: openapi.RequestBodyJSON("ImportCommand", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Created estimate", "Estimate"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			422: openapi.ResponseRef("UnprocessableEntity"),
		},
	},
	Search: &openapi.Operation{
		Summary:     "Search estimates",
		RequestBody: openapi.RequestBodyJSON("EstimateSearch", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Page of estimates", "EstimatePage"),
		},
	},
	Delete: &openapi.Operation{
		Summary:    "Delete an estimate",
		Parameters: []*openapi.Parameter{estimateID},
		Responses: map[int]*openapi.Response{
			204: {Description: "Deleted"},
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Resolve: &openapi.Operation{
		Summary:     "Resolve an estimate",
		Description: "Resolves every material and stores each result. Projects on legacy quantity logic are rejected with 409.",
		Parameters:  []*openapi.Parameter{estimateID},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Resolved estimate", "Estimate"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	ResolveProject: &openapi.Operation{
		Summary:    "Resolve all estimates of a project",
		Parameters: []*openapi.Parameter{openapi.PathParam("projectId", "Project ID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseArray("Per-estimate summaries", "ResolveSummary"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	SetOverride: &openapi.Operation{
		Summary:     "Set a manual override",
		Parameters:  []*openapi.Parameter{estimateID, materialID},
		RequestBody: openapi.RequestBodyJSON("OverrideCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Updated estimate", "Estimate"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	ClearOverride: &openapi.Operation{
		Summary:    "Clear a manual override",
		Parameters: []*openapi.Parameter{estimateID, materialID},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Updated estimate", "Estimate"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

var schemas = map[string]*openapi.Schema{
	"Estimate": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":            {Type: "string", Format: "uuid"},
			"project_id":    {Type: "string", Format: "uuid"},
			"label":         {Type: "string"},
			"source":        {Type: "string", Enum: []any{"manual", "ai"}},
			"base_area":     {Type: "number"},
			"waste_percent": {Type: "number"},
			"summary":       {Type: "string"},
			"resolved_at":   {Type: "string", Format: "date-time"},
			"created_at":    {Type: "string", Format: "date-time"},
			"materials":     {Type: "array", Items: openapi.SchemaRef("EstimateMaterial")},
		},
	},
	"EstimateMaterial": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":               {Type: "string", Format: "uuid"},
			"position":         {Type: "integer"},
			"name":             {Type: "string"},
			"material_type":    {Type: "string"},
			"base_quantity":    {Type: "number"},
			"unit":             {Type: "string"},
			"coverage_rate":    {Type: "number"},
			"container_unit":   {Type: "string"},
			"thickness_inches": {Type: "number"},
			"manual_override":  openapi.SchemaRef("ManualOverride"),
			"result":           openapi.SchemaRef("ResolverOutput"),
		},
	},
	"EstimateCommand": {
		Type:     "object",
		Required: []string{"project_id", "label", "base_area"},
		Properties: map[string]*openapi.Schema{
			"project_id":    {Type: "string", Format: "uuid"},
			"label":         {Type: "string"},
			"base_area":     {Type: "number"},
			"waste_percent": {Type: "number"},
			"materials":     {Type: "array", Items: openapi.SchemaRef("ResolverMaterial")},
		},
	},
	"ImportCommand": {
		Type:     "object",
		Required: []string{"project_id", "label", "content"},
		Properties: map[string]*openapi.Schema{
			"project_id":    {Type: "string", Format: "uuid"},
			"label":         {Type: "string"},
			"waste_percent": {Type: "number"},
			"content":       {Type: "string", Description: "Raw model output"},
		},
	},
	"OverrideCommand": {
		Type:     "object",
		Required: []string{"quantity", "unit", "reason"},
		Properties: map[string]*openapi.Schema{
			"quantity":    {Type: "number"},
			"unit":        {Type: "string"},
			"reason":      {Type: "string"},
			"resolved_by": {Type: "string", Description: "Defaults to the authenticated subject"},
		},
	},
	"ResolveSummary": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"estimate_id": {Type: "string", Format: "uuid"},
			"label":       {Type: "string"},
			"resolved":    {Type: "integer"},
			"failed":      {Type: "integer"},
			"summary":     {Type: "string"},
		},
	},
	"EstimateSearch": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"page":       {Type: "integer"},
			"page_size":  {Type: "integer"},
			"search":     {Type: "string"},
			"sort":       {Type: "string"},
			"project_id": {Type: "string", Format: "uuid"},
			"label":      {Type: "string"},
			"source":     {Type: "string", Enum: []any{"manual", "ai"}},
			"resolved":   {Type: "boolean"},
		},
	},
	"EstimatePage": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"data":        {Type: "array", Items: openapi.SchemaRef("Estimate")},
			"total":       {Type: "integer"},
			"page":        {Type: "integer"},
			"page_size":   {Type: "integer"},
			"total_pages": {Type: "integer"},
			"has_next":    {Type: "boolean"},
		},
	},
}
