package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	registrationStore "raknong/internal/adapters/storage/registration"
	domain "raknong/internal/domain/registration"
)

// UpdateRegistrationInput carries input for the update orchestrator.
// StudentID keys an exact match; Email keys a case-insensitive match on the
// trimmed, lowercased address. StudentID wins when both are set, mirroring
// the lookup precedence.
type UpdateRegistrationInput struct {
	StudentID string
	Email     string
	Fields    domain.Partial
}

// UpdateRegistrationDeps holds dependencies for UpdateRegistration.
type UpdateRegistrationDeps struct {
	RegistrationStore registrationStore.Store
}

// ErrNoUpdateKey is returned when neither key is provided.
var ErrNoUpdateKey = errors.New("update requires a student id or email key")

// ExecuteUpdateRegistration applies a partial field set to one row.
// Fields present in the partial are written verbatim; no field validation
// is performed. Applying the same partial twice yields the same final state.
// PRE: one of StudentID/Email is non-empty
// POST: returns the updated row, or the storage failure
func ExecuteUpdateRegistration(ctx context.Context, input UpdateRegistrationInput, deps UpdateRegistrationDeps) (domain.Registration, error) {
	if input.StudentID == "" && input.Email == "" {
		return domain.Registration{}, ErrNoUpdateKey
	}

	var (
		updated domain.Registration
		err     error
	)
	if input.StudentID != "" {
		updated, err = deps.RegistrationStore.UpdateByStudentID(ctx, input.StudentID, input.Fields)
	} else {
		updated, err = deps.RegistrationStore.UpdateByEmail(ctx, input.Email, input.Fields)
	}
	if err != nil {
		slog.Error("registration_update_failed", "error", err.Error())
		return domain.Registration{}, err
	}

	slog.Info("registration_updated", "std_id", updated.StudentID, "group", updated.Group)
	return updated, nil
}
