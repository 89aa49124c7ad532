package api

import (
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"strconv"

	"github.com/JaimeStill/takeoff/pkg/handlers"
	"github.com/JaimeStill/takeoff/pkg/openapi"
	"github.com/JaimeStill/takeoff/pkg/routes"
	"github.com/JaimeStill/takeoff/pkg/storage"
)

// storageHandler browses the blob container directly. Uploads go through
// the blueprints domain so every blob has a database record.
type storageHandler struct {
	store       storage.System
	logger      *slog.Logger
	maxListSize int32
}

func newStorageHandler(store storage.System, logger *slog.Logger, maxListSize int32) *storageHandler {
	return &storageHandler{
		store:       store,
		logger:      logger.With("handler", "storage"),
		maxListSize: maxListSize,
	}
}

var blobKey = &openapi.Parameter{
	Name:        "key",
	In:          "path",
	Required:    true,
	Description: "Blob key, e.g. blueprints/{id}/plan.pdf",
	Schema:      &openapi.Schema{Type: "string"},
}

var storageSpec = struct {
	List     *openapi.Operation
	Find     *openapi.Operation
	Download *openapi.Operation
}{
	List: &openapi.Operation{
		Summary: "List stored blobs",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("prefix", "string", "Key prefix", false),
			openapi.QueryParam("marker", "string", "Continuation marker from a previous page", false),
			openapi.QueryParam("max_results", "integer", "Page size, capped by storage.max_list_size", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Page of blobs", "BlobList"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Find: &openapi.Operation{
		Summary:    "Find blob metadata",
		Parameters: []*openapi.Parameter{blobKey},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Blob metadata", "BlobMeta"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Download: &openapi.Operation{
		Summary:    "Download a blob",
		Parameters: []*openapi.Parameter{blobKey},
		Responses: map[int]*openapi.Response{
			200: {Description: "Blob stream with its stored content type"},
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

var storageSchemas = map[string]*openapi.Schema{
	"BlobMeta": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"key":            {Type: "string"},
			"content_type":   {Type: "string"},
			"content_length": {Type: "integer"},
			"last_modified":  {Type: "string", Format: "date-time"},
		},
	},
	"BlobList": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"blobs":       {Type: "array", Items: openapi.SchemaRef("BlobMeta")},
			"next_marker": {Type: "string"},
		},
	},
}

func (h *storageHandler) routes() routes.Group {
	return routes.Group{
		Prefix:      "/storage",
		Tags:        []string{"Storage"},
		Description: "Read-only access to the blob container",
		Schemas:     storageSchemas,
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.list, OpenAPI: storageSpec.List},
			{Method: "GET", Pattern: "/download/{key...}", Handler: h.download, OpenAPI: storageSpec.Download},
			{Method: "GET", Pattern: "/{key...}", Handler: h.find, OpenAPI: storageSpec.Find},
		},
	}
}

func (h *storageHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	maxResults, err := storage.ParseMaxResults(q.Get("max_results"), h.maxListSize)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.store.List(r.Context(), q.Get("prefix"), q.Get("marker"), maxResults)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *storageHandler) find(w http.ResponseWriter, r *http.Request) {
	meta, err := h.store.Find(r.Context(), r.PathValue("key"))
	if err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, meta)
}

func (h *storageHandler) download(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	result, err := h.store.Download(r.Context(), key)
	if err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}
	defer result.Body.Close()

	contentType := result.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": path.Base(key),
	}))
	if result.ContentLength > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(result.ContentLength, 10))
	}

	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, result.Body); err != nil {
		h.logger.Warn("blob stream interrupted", "key", key, "error", err)
	}
}
