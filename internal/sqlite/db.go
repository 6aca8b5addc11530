package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema. Idempotent; safe to run at every start.
func (db *DB) RunMigrations() error {
	migration := `
-- Submitted production records. The data column keeps the full submission
-- payload; the *_ms columns are the derived metrics analytics reads.
CREATE TABLE IF NOT EXISTS registros (
    id TEXT PRIMARY KEY,
    panel TEXT NOT NULL,
    unit TEXT NOT NULL,
    lote TEXT,
    lot_id TEXT,
    shift_date TIMESTAMP,
    duration_ms INTEGER,
    dead_ms INTEGER,
    overall_ms INTEGER,
    data TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_registros_panel ON registros(panel);
CREATE INDEX IF NOT EXISTS idx_registros_lot ON registros(lot_id);
CREATE INDEX IF NOT EXISTS idx_registros_shift_date ON registros(shift_date);
CREATE INDEX IF NOT EXISTS idx_registros_created_at ON registros(created_at);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
