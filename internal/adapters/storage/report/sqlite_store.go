package report

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"raknong/internal/adapters/storage"
	domain "raknong/internal/domain/report"
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

const reportColumns = `id, std_id, email, report_type, report_message, status,
		resolution_notes, created_at, updated_at`

// Save inserts a new report row and returns it with the auto-assigned id.
// PRE: value has been validated; Status and CreatedAt are already set by the caller
// POST: row inserted, returned Report carries the assigned id
func (s *SQLiteStore) Save(ctx context.Context, value domain.Report) (domain.Report, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO report (std_id, email, report_type, report_message, status,
		   resolution_notes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		value.StudentID, value.Email, value.Type, value.Message, value.Status,
		value.ResolutionNotes,
		value.CreatedAt.UTC().Format(timeLayout),
		value.UpdatedAt.UTC().Format(timeLayout))
	if err != nil {
		return domain.Report{}, fmt.Errorf("report save: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return domain.Report{}, fmt.Errorf("report save: %w", err)
	}
	value.ID = id
	return value, nil
}

// GetByID retrieves a report by its id.
// PRE: id > 0
// POST: Returns the entity or domain.ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (domain.Report, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+reportColumns+` FROM report WHERE id = ?`, id)

	entity, err := scanReport(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Report{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Report{}, fmt.Errorf("report get: %w", err)
	}
	return entity, nil
}

// List returns reports matching the filter, newest-first by creation time.
// PRE: filter has valid parameters
// POST: Returns matching reports ordered by created_at DESC
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM report WHERE 1=1`
	args := []any{}

	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, filter.Status)
	}
	query += ` ORDER BY created_at DESC, id DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("report list: %w", err)
	}
	defer rows.Close()

	var reports []domain.Report
	for rows.Next() {
		entity, err := scanReport(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("report list scan: %w", err)
		}
		reports = append(reports, entity)
	}
	return reports, rows.Err()
}

// SetStatus overwrites status, resolution notes and the update timestamp.
// The current status is deliberately not checked; the admin UI hides the
// controls once a report leaves pending.
// PRE: id > 0, status is a valid status value
// POST: row updated or domain.ErrNotFound when no row matched
func (s *SQLiteStore) SetStatus(ctx context.Context, id int64, status, notes string, at time.Time) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE report SET status = ?, resolution_notes = ?, updated_at = ? WHERE id = ?`,
		status, notes, at.UTC().Format(timeLayout), id)
	if err != nil {
		return fmt.Errorf("report set status: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("report set status: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// scanReport scans one row into a domain Report using the given scan func.
func scanReport(scan func(dest ...any) error) (domain.Report, error) {
	var entity domain.Report
	var createdAt, updatedAt string
	err := scan(
		&entity.ID,
		&entity.StudentID,
		&entity.Email,
		&entity.Type,
		&entity.Message,
		&entity.Status,
		&entity.ResolutionNotes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.Report{}, err
	}
	entity.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	entity.UpdatedAt, _ = time.Parse(timeLayout, updatedAt)
	return entity, nil
}
