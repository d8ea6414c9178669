package account

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"raknong/internal/adapters/storage"
	domain "raknong/internal/domain/account"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByEmail retrieves an Account by email.
// PRE: email is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, role, created_at, failed_logins
		 FROM account WHERE email = ?`, email)

	var entity domain.Account
	var createdAt string
	err := row.Scan(
		&entity.ID,
		&entity.Email,
		&entity.PasswordHash,
		&entity.Role,
		&createdAt,
		&entity.FailedLogins,
	)
	if err == sql.ErrNoRows {
		return domain.Account{}, fmt.Errorf("account not found: %w", err)
	}
	if err != nil {
		return domain.Account{}, fmt.Errorf("account get: %w", err)
	}
	entity.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	return entity, nil
}

// Save inserts or updates an Account.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Account) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO account (id, email, password_hash, role, created_at, failed_logins)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   email=excluded.email, password_hash=excluded.password_hash,
		   role=excluded.role, failed_logins=excluded.failed_logins`,
		entity.ID, entity.Email, entity.PasswordHash, entity.Role,
		entity.CreatedAt.UTC().Format(timeLayout), entity.FailedLogins)
	if err != nil {
		return fmt.Errorf("account save: %w", err)
	}
	return nil
}

// Count returns the number of accounts.
// POST: returns row count of the account table
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM account`)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("account count: %w", err)
	}
	return n, nil
}
