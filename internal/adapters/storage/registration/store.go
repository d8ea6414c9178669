package registration

import (
	"context"

	domain "raknong/internal/domain/registration"
)

// Store persists Registration state.
//
// Two update key strategies exist and both are supported: exact match on
// student id, and case-insensitive match on a trimmed, lowercased email.
type Store interface {
	GetByStudentID(ctx context.Context, stdID string) (domain.Registration, error)
	GetByEmail(ctx context.Context, email string) (domain.Registration, error)
	UpdateByStudentID(ctx context.Context, stdID string, p domain.Partial) (domain.Registration, error)
	UpdateByEmail(ctx context.Context, email string, p domain.Partial) (domain.Registration, error)
	Save(ctx context.Context, value domain.Registration) error
}
