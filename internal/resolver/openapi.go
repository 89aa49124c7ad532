package resolver

import "github.com/JaimeStill/takeoff/pkg/openapi"

var spec = struct {
	Resolve    *openapi.Operation
	Batch      *openapi.Operation
	Classify   *openapi.Operation
	Categories *openapi.Operation
	Coverage   *openapi.Operation
	Version    *openapi.Operation
}{
	Resolve: &openapi.Operation{
		Summary:     "Resolve one measurement",
		Description: "Resolution failures are returned with status 200 and success false. Only malformed or negative inputs are rejected.",
		RequestBody: openapi.RequestBodyJSON("ResolverInput", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Resolution result", "ResolverOutput"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Batch: &openapi.Operation{
		Summary:     "Resolve a material list",
		Description: "Materials without a base_quantity use base_area. Materials with an active manual override pass through unchanged. A negative measurement or a non-positive override quantity on any material rejects the whole request.",
		RequestBody: openapi.RequestBodyJSON("BatchRequest", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Resolved and failed partitions", "BatchResult"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Classify: &openapi.Operation{
		Summary: "Classify a material name",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("name", "string", "Material name", true),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Classification", "Classification"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Categories: &openapi.Operation{
		Summary: "List material categories",
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Categories",
				Content: map[string]*openapi.MediaType{
					"application/json": {Schema: &openapi.Schema{Type: "array", Items: &openapi.Schema{Type: "string"}}},
				},
			},
		},
	},
	Coverage: &openapi.Operation{
		Summary: "List the coverage rate registry",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseArray("Registry entries sorted by key", "KeyedCoverage"),
		},
	},
	Version: &openapi.Operation{
		Summary: "Quantity logic version for a creation date",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("created_at", "string", "RFC 3339 timestamp or YYYY-MM-DD date", true),
			openapi.QueryParam("version", "integer", "Explicit version (1 or 2)", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Version info", "VersionInfo"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
}

var schemas = map[string]*openapi.Schema{
	"ResolverInput": {
		Type:     "object",
		Required: []string{"input_unit", "input_value"},
		Properties: map[string]*openapi.Schema{
			"material_name":    {Type: "string"},
			"material_type":    {Type: "string"},
			"input_unit":       {Type: "string", Example: UnitSquareFeet},
			"input_value":      {Type: "number"},
			"coverage_rate":    {Type: "number"},
			"container_unit":   {Type: "string"},
			"waste_percent":    {Type: "number", Default: DefaultWastePercent},
			"thickness_inches": {Type: "number", Default: 4},
		},
	},
	"ResolverOutput": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"success":           {Type: "boolean"},
			"resolved_quantity": {Type: "number"},
			"resolved_unit":     {Type: "string"},
			"gross_quantity":    {Type: "number"},
			"resolution_method": {Type: "string"},
			"confidence":        {Type: "string", Enum: []any{"high", "medium", "low", "failed"}},
			"error_code":        {Type: "string"},
			"error_message":     {Type: "string"},
			"calculation_trace": {Type: "string"},
		},
	},
	"ManualOverride": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"override":    {Type: "boolean"},
			"quantity":    {Type: "number"},
			"unit":        {Type: "string"},
			"reason":      {Type: "string"},
			"resolved_by": {Type: "string"},
			"timestamp":   {Type: "string", Format: "date-time"},
		},
	},
	"ResolverMaterial": {
		Type:     "object",
		Required: []string{"name"},
		Properties: map[string]*openapi.Schema{
			"name":             {Type: "string"},
			"material_type":    {Type: "string"},
			"base_quantity":    {Type: "number"},
			"unit":             {Type: "string"},
			"coverage_rate":    {Type: "number"},
			"container_unit":   {Type: "string"},
			"thickness_inches": {Type: "number"},
			"manual_override":  openapi.SchemaRef("ManualOverride"),
		},
	},
	"BatchRequest": {
		Type:     "object",
		Required: []string{"materials"},
		Properties: map[string]*openapi.Schema{
			"materials":     {Type: "array", Items: openapi.SchemaRef("ResolverMaterial")},
			"base_area":     {Type: "number"},
			"waste_percent": {Type: "number"},
		},
	},
	"BatchResult": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"resolved": {Type: "array", Items: openapi.SchemaRef("ResolverMaterial")},
			"failed":   {Type: "array", Items: openapi.SchemaRef("ResolverMaterial")},
			"summary":  {Type: "string"},
		},
	},
	"Classification": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"name":         {Type: "string"},
			"category":     {Type: "string"},
			"coverage_key": {Type: "string"},
			"coverage":     openapi.SchemaRef("CoverageEntry"),
		},
	},
	"CoverageEntry": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"rate":        {Type: "number"},
			"input_unit":  {Type: "string"},
			"output_unit": {Type: "string"},
		},
	},
	"KeyedCoverage": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"key":         {Type: "string"},
			"rate":        {Type: "number"},
			"input_unit":  {Type: "string"},
			"output_unit": {Type: "string"},
		},
	},
	"VersionInfo": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"version":       {Type: "integer", Enum: []any{VersionLegacy, VersionResolver}},
			"uses_resolver": {Type: "boolean"},
			"cutoff":        {Type: "string", Format: "date-time"},
		},
	},
}
