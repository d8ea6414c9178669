package registration

import (
	"context"
	"database/sql"
	"fmt"

	"raknong/internal/adapters/storage"
	domain "raknong/internal/domain/registration"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// registrationColumns never includes the internal row id: it must not
// leak into the domain struct handed to callers.
const registrationColumns = `std_id, name, nickname, faculty, diereq, ph, foodalg, email, grp`

// GetByStudentID retrieves a Registration by its student id.
// PRE: stdID is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByStudentID(ctx context.Context, stdID string) (domain.Registration, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+registrationColumns+` FROM registration WHERE std_id = ?`, stdID)
	return scanRegistration(row)
}

// GetByEmail retrieves a Registration by exact, case-sensitive email match.
// PRE: email is non-empty
// POST: Returns the entity or an error if zero or multiple rows match
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (domain.Registration, error) {
	// Email is not unique at the storage layer. A lookup that matches
	// more than one row is treated the same as a miss.
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+registrationColumns+` FROM registration WHERE email = ? LIMIT 2`, email)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("registration get by email: %w", err)
	}
	defer rows.Close()

	var found []domain.Registration
	for rows.Next() {
		var entity domain.Registration
		if err := rows.Scan(
			&entity.StudentID,
			&entity.Name,
			&entity.Nickname,
			&entity.Faculty,
			&entity.DietaryReq,
			&entity.Medical,
			&entity.FoodAllergy,
			&entity.Email,
			&entity.Group,
		); err != nil {
			return domain.Registration{}, fmt.Errorf("registration scan: %w", err)
		}
		found = append(found, entity)
	}
	if err := rows.Err(); err != nil {
		return domain.Registration{}, fmt.Errorf("registration get by email: %w", err)
	}
	if len(found) != 1 {
		return domain.Registration{}, sql.ErrNoRows
	}
	return found[0], nil
}

// UpdateByStudentID applies a partial update keyed by exact student id.
// PRE: stdID is non-empty
// POST: set fields of p are written verbatim; returns the updated row
func (s *SQLiteStore) UpdateByStudentID(ctx context.Context, stdID string, p domain.Partial) (domain.Registration, error) {
	if err := s.applyPartial(ctx, `std_id = ?`, stdID, p); err != nil {
		return domain.Registration{}, err
	}
	return s.GetByStudentID(ctx, stdID)
}

// UpdateByEmail applies a partial update keyed by case-insensitive email.
// The key is trimmed and lowercased before matching.
// PRE: email is non-empty
// POST: set fields of p are written verbatim; returns the updated row
func (s *SQLiteStore) UpdateByEmail(ctx context.Context, email string, p domain.Partial) (domain.Registration, error) {
	key := domain.NormalizeEmailKey(email)
	if err := s.applyPartial(ctx, `LOWER(email) = ?`, key, p); err != nil {
		return domain.Registration{}, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+registrationColumns+` FROM registration WHERE LOWER(email) = ?`, key)
	return scanRegistration(row)
}

// applyPartial builds and runs a column-level UPDATE for the set fields.
// Field values are written verbatim, with no validation.
func (s *SQLiteStore) applyPartial(ctx context.Context, where, key string, p domain.Partial) error {
	sets := []string{}
	args := []any{}

	appendSet := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if p.Name != nil {
		appendSet("name", *p.Name)
	}
	if p.Nickname != nil {
		appendSet("nickname", *p.Nickname)
	}
	if p.Faculty != nil {
		appendSet("faculty", *p.Faculty)
	}
	if p.DietaryReq != nil {
		appendSet("diereq", *p.DietaryReq)
	}
	if p.Medical != nil {
		appendSet("ph", *p.Medical)
	}
	if p.FoodAllergy != nil {
		appendSet("foodalg", *p.FoodAllergy)
	}
	if p.Email != nil {
		appendSet("email", *p.Email)
	}
	if p.Group != nil {
		appendSet("grp", *p.Group)
	}
	if len(sets) == 0 {
		// Nothing to write; the subsequent re-select still verifies the key.
		return nil
	}

	query := "UPDATE registration SET "
	for i, set := range sets {
		if i > 0 {
			query += ", "
		}
		query += set
	}
	query += " WHERE " + where
	args = append(args, key)

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("registration update: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("registration update: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Save inserts or replaces a Registration row, keyed by student id.
// Used by the bulk importer and tests; participant edits go through the
// Update methods instead.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Registration) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO registration (std_id, name, nickname, faculty, diereq, ph, foodalg, email, grp)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(std_id) DO UPDATE SET
		   name=excluded.name, nickname=excluded.nickname, faculty=excluded.faculty,
		   diereq=excluded.diereq, ph=excluded.ph, foodalg=excluded.foodalg,
		   email=excluded.email, grp=excluded.grp`,
		entity.StudentID, entity.Name, entity.Nickname, entity.Faculty,
		entity.DietaryReq, entity.Medical, entity.FoodAllergy, entity.Email, entity.Group)
	if err != nil {
		return fmt.Errorf("registration save: %w", err)
	}
	return nil
}

// scanRegistration scans one row into a domain Registration.
func scanRegistration(row *sql.Row) (domain.Registration, error) {
	var entity domain.Registration
	err := row.Scan(
		&entity.StudentID,
		&entity.Name,
		&entity.Nickname,
		&entity.Faculty,
		&entity.DietaryReq,
		&entity.Medical,
		&entity.FoodAllergy,
		&entity.Email,
		&entity.Group,
	)
	if err == sql.ErrNoRows {
		return domain.Registration{}, err
	}
	if err != nil {
		return domain.Registration{}, fmt.Errorf("registration scan: %w", err)
	}
	return entity, nil
}
