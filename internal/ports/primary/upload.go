package primary

import (
	"context"

	"github.com/example/armazem/internal/core/form"
	"github.com/example/armazem/internal/core/upload"
)

// UploadService defines the primary port for the file upload widget.
type UploadService interface {
	// Upload validates the file at req.Path locally and sends it.
	Upload(ctx context.Context, req UploadRequest) (*UploadResult, error)

	// UploadInto uploads path and stores the returned URL into field of f.
	// f is left untouched when the upload fails.
	UploadInto(ctx context.Context, f form.Form, field, path string) (*UploadResult, error)

	// Remove clears the URL held by field of f. Nothing is deleted server-side.
	Remove(f form.Form, field string) error

	// History lists recent uploads, newest first.
	History(ctx context.Context, limit int) ([]*UploadResult, error)
}

// UploadRequest contains parameters for uploading a file.
type UploadRequest struct {
	Kind        upload.Kind
	Path        string
	ContentType string // optional; sniffed from content when empty
}

// UploadResult describes an accepted upload.
type UploadResult struct {
	Kind      upload.Kind
	FileName  string
	Size      int64
	MIME      string
	URL       string
	CreatedAt string
}
