package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLDB is the database interface used by all stores.
// Both *sql.DB and *TimedDB satisfy this interface.
type SQLDB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// Compile-time check that *sql.DB satisfies SQLDB.
var _ SQLDB = (*sql.DB)(nil)

// schemaVersion is bumped whenever migrations below change.
const schemaVersion = 1

// LatestSchemaVersion returns the schema version the binary was built for.
func LatestSchemaVersion() int {
	return schemaVersion
}

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Create tables
	schema := `
	CREATE TABLE IF NOT EXISTS registration (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		std_id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		nickname TEXT NOT NULL DEFAULT '',
		faculty TEXT NOT NULL DEFAULT '',
		diereq TEXT NOT NULL DEFAULT '',
		ph TEXT NOT NULL DEFAULT '',
		foodalg TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL,
		grp INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_registration_email
		ON registration(email);
	CREATE INDEX IF NOT EXISTS idx_registration_email_fold
		ON registration(LOWER(email));

	CREATE TABLE IF NOT EXISTS report (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		std_id TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		report_type TEXT NOT NULL,
		report_message TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		resolution_notes TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_report_status_created
		ON report(status, created_at DESC);

	CREATE TABLE IF NOT EXISTS account (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL,
		created_at TEXT NOT NULL,
		failed_logins INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY
	);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// SchemaVersion returns the highest applied migration version.
func SchemaVersion(db *sql.DB) (int, error) {
	current := 0
	row := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version")
	if err := row.Scan(&current); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return current, nil
}

// MigrateDB brings the schema of an existing database up to the current
// version. Versioned migrations run inside a transaction; the base schema
// is applied first so a fresh database ends up identical to a migrated one.
// PRE: db is a valid database connection
// POST: schema_version contains schemaVersion
func MigrateDB(db *sql.DB) error {
	if err := InitDB(db); err != nil {
		return err
	}

	current := 0
	row := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version")
	if err := row.Scan(&current); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for v := current + 1; v <= schemaVersion; v++ {
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", v, err)
		}
		if err := applyMigration(tx, v); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", v, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", v); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", v, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", v, err)
		}
	}
	return nil
}

// applyMigration runs the statements for one schema version.
func applyMigration(tx *sql.Tx, version int) error {
	switch version {
	case 1:
		// Base schema, created by InitDB. Nothing further.
		return nil
	default:
		return fmt.Errorf("unknown schema version %d", version)
	}
}
