package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/armazem/internal/ports/secondary"
)

// UploadLogRepository implements secondary.UploadLogRepository with SQLite.
type UploadLogRepository struct {
	db *sql.DB
}

// NewUploadLogRepository creates a new SQLite upload log repository.
func NewUploadLogRepository(db *sql.DB) *UploadLogRepository {
	return &UploadLogRepository{db: db}
}

var _ secondary.UploadLogRepository = (*UploadLogRepository)(nil)

// Create records a completed upload.
func (r *UploadLogRepository) Create(ctx context.Context, record *secondary.UploadRecord) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO uploads (kind, file_name, size, url) VALUES (?, ?, ?, ?)",
		record.Kind, record.FileName, record.Size, record.URL,
	)
	if err != nil {
		return fmt.Errorf("failed to record upload: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get upload id: %w", err)
	}
	record.ID = id

	var createdAt time.Time
	err = r.db.QueryRowContext(ctx, "SELECT created_at FROM uploads WHERE id = ?", id).Scan(&createdAt)
	if err != nil {
		return fmt.Errorf("failed to read upload: %w", err)
	}
	record.CreatedAt = createdAt.Format(time.RFC3339)

	return nil
}

// List retrieves uploads, newest first.
func (r *UploadLogRepository) List(ctx context.Context, filters secondary.UploadFilters) ([]*secondary.UploadRecord, error) {
	query := "SELECT id, kind, file_name, size, url, created_at FROM uploads WHERE 1=1"
	args := []any{}

	if filters.Kind != "" {
		query += " AND kind = ?"
		args = append(args, filters.Kind)
	}

	query += " ORDER BY created_at DESC, id DESC"

	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list uploads: %w", err)
	}
	defer rows.Close()

	var records []*secondary.UploadRecord
	for rows.Next() {
		var (
			record    secondary.UploadRecord
			createdAt time.Time
		)
		if err := rows.Scan(&record.ID, &record.Kind, &record.FileName, &record.Size, &record.URL, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan upload: %w", err)
		}
		record.CreatedAt = createdAt.Format(time.RFC3339)
		records = append(records, &record)
	}

	return records, rows.Err()
}
