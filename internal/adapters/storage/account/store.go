package account

import (
	"context"

	domain "raknong/internal/domain/account"
)

// Store persists Account state.
type Store interface {
	GetByEmail(ctx context.Context, email string) (domain.Account, error)
	Save(ctx context.Context, value domain.Account) error
	Count(ctx context.Context) (int, error)
}
