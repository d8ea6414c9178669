package orchestrators

import (
	"context"
	"log/slog"

	registrationStore "raknong/internal/adapters/storage/registration"
	domain "raknong/internal/domain/registration"
)

// Lookup key kinds. The not-found page customizes its message by kind.
const (
	LookupByEmail     = "email"
	LookupByStudentID = "stdId"
)

// LookupRegistrationInput carries input for the lookup orchestrator.
// Exactly one of Email or StudentID is used: StudentID wins when both are
// present (an explicit stdId query parameter overrides a route email).
type LookupRegistrationInput struct {
	Email     string
	StudentID string
}

// LookupRegistrationDeps holds dependencies for LookupRegistration.
type LookupRegistrationDeps struct {
	RegistrationStore registrationStore.Store
}

// LookupRegistrationResult carries the found record and the key kind used.
type LookupRegistrationResult struct {
	Registration domain.Registration
	KeyKind      string
}

// ExecuteLookupRegistration finds the registration row for a lookup key.
// Zero rows, multiple rows and query failures are indistinguishable to the
// caller: all collapse to domain.ErrNotFound. A single round-trip, no retries.
// PRE: at least one of Email/StudentID is non-empty
// POST: returns the record, or domain.ErrNotFound with the key kind used
func ExecuteLookupRegistration(ctx context.Context, input LookupRegistrationInput, deps LookupRegistrationDeps) (LookupRegistrationResult, error) {
	kind := LookupByEmail
	if input.StudentID != "" {
		kind = LookupByStudentID
	}

	var (
		reg domain.Registration
		err error
	)
	switch kind {
	case LookupByStudentID:
		reg, err = deps.RegistrationStore.GetByStudentID(ctx, input.StudentID)
	default:
		reg, err = deps.RegistrationStore.GetByEmail(ctx, input.Email)
	}
	if err != nil {
		slog.Info("lookup_miss", "kind", kind, "error", err.Error())
		return LookupRegistrationResult{KeyKind: kind}, domain.ErrNotFound
	}

	return LookupRegistrationResult{Registration: reg, KeyKind: kind}, nil
}
