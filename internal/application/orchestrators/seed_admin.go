package orchestrators

import (
	"context"
	"log/slog"
	"time"

	accountStore "raknong/internal/adapters/storage/account"
	"raknong/internal/domain/account"

	"github.com/google/uuid"
)

// SeedAdminDeps holds dependencies for SeedAdmin.
type SeedAdminDeps struct {
	AccountStore accountStore.Store
}

// ExecuteSeedAdmin creates the admin account on first startup.
// Idempotent: if any account already exists, nothing is written.
// PRE: email and password come from configuration, never hardcoded
// POST: exactly one admin account exists after a fresh startup
func ExecuteSeedAdmin(ctx context.Context, deps SeedAdminDeps, adminEmail, password string) error {
	count, err := deps.AccountStore.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil // Accounts already exist, skip seeding
	}

	acct := account.Account{
		ID:        uuid.New().String(),
		Email:     adminEmail,
		Role:      account.RoleAdmin,
		CreatedAt: time.Now().UTC(),
	}
	if err := acct.SetPassword(password); err != nil {
		return err
	}
	if err := acct.Validate(); err != nil {
		return err
	}
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return err
	}

	slog.Info("auth_event", "event", "admin_seeded", "email", adminEmail)
	return nil
}
