package secondary

import (
	"context"
	"io"
)

// Backend defines the secondary port for the warehouse REST API.
// Paths are relative to the API prefix ("/equipamentos", "/auth/login").
// out may be nil when the response body is not needed.
type Backend interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Patch(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error

	// Upload sends file as the multipart field "file".
	Upload(ctx context.Context, path string, file UploadFile, out any) error

	// Download copies a binary response body into w and returns its
	// Content-Type header.
	Download(ctx context.Context, path string, w io.Writer) (contentType string, err error)

	// Origin is the backend origin ("https://host:port"), used to resolve
	// root-relative URLs returned by the API.
	Origin() string
}

// UploadFile is a local file handed to Backend.Upload.
type UploadFile struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// TokenSource supplies the bearer token attached to every request.
// An empty token means the request is sent unauthenticated.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}
