// Package blueprints stores the site photos and blueprint files that feed
// the upstream takeoff step. Files live in blob storage; the database holds
// their metadata and owning project.
package blueprints

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind separates site photos from drawing sets.
type Kind string

const (
	KindPhoto     Kind = "photo"
	KindBlueprint Kind = "blueprint"
)

// KindOf maps a content type to a Kind. PDFs are blueprints, images are
// photos. Anything else is unsupported.
func KindOf(contentType string) (Kind, bool) {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}

	switch {
	case ct == "application/pdf":
		return KindBlueprint, true
	case strings.HasPrefix(ct, "image/"):
		return KindPhoto, true
	default:
		return "", false
	}
}

// Blueprint is an uploaded file attached to a project.
type Blueprint struct {
	ID          uuid.UUID `json:"id"`
	ProjectID   uuid.UUID `json:"project_id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Kind        Kind      `json:"kind"`
	SizeBytes   int64     `json:"size_bytes"`
	Size        string    `json:"size"`
	PageCount   *int      `json:"page_count"`
	StorageKey  string    `json:"storage_key"`
	Notes       *string   `json:"notes"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// CreateCommand carries an uploaded file. PageCount is set for PDFs when
// it could be read.
type CreateCommand struct {
	ProjectID   uuid.UUID
	Data        []byte
	Filename    string
	ContentType string
	Notes       *string
	PageCount   *int
}
