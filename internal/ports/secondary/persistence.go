// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import "context"

// SettingsRepository defines the secondary port for durable client state
// (session token, current user, theme).
type SettingsRepository interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes the given keys. Absent keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}

// UploadLogRepository defines the secondary port for the local upload history.
type UploadLogRepository interface {
	// Create records a completed upload and fills in ID and CreatedAt.
	Create(ctx context.Context, record *UploadRecord) error

	// List retrieves uploads, newest first.
	List(ctx context.Context, filters UploadFilters) ([]*UploadRecord, error)
}

// UploadRecord represents an upload as stored in persistence.
type UploadRecord struct {
	ID        int64
	Kind      string // image or document
	FileName  string
	Size      int64
	URL       string
	CreatedAt string
}

// UploadFilters contains filter options for querying uploads.
type UploadFilters struct {
	Kind  string
	Limit int
}
