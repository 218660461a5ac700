package db

import "database/sql"

// SchemaSQL is the complete schema of the local store.
// This schema reflects the current state after all migrations.
//
// The store only holds client-side state: the backend remains the single
// source of truth for every warehouse record. Keep this in sync with
// migrations; tests load it through GetSchemaSQL().
const SchemaSQL = `
-- Settings (durable client state: session token, current user, theme)
CREATE TABLE IF NOT EXISTS settings (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Recent uploads (URLs handed out by the backend upload endpoints)
CREATE TABLE IF NOT EXISTS uploads (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	kind TEXT NOT NULL CHECK(kind IN ('image', 'document')),
	file_name TEXT NOT NULL,
	size INTEGER NOT NULL,
	url TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// InitSchema creates the schema_version table and applies pending migrations.
func InitSchema(conn *sql.DB) error {
	return RunMigrations(conn)
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
