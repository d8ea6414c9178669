package report

import (
	"context"
	"time"

	domain "raknong/internal/domain/report"
)

// Store persists Report state.
type Store interface {
	// Save inserts a new report and returns it with the assigned id.
	Save(ctx context.Context, value domain.Report) (domain.Report, error)
	GetByID(ctx context.Context, id int64) (domain.Report, error)
	// List returns reports newest-first by creation time.
	List(ctx context.Context, filter ListFilter) ([]domain.Report, error)
	// SetStatus unconditionally overwrites status, resolution notes and
	// the update timestamp. It does not check the current status.
	SetStatus(ctx context.Context, id int64, status, notes string, at time.Time) error
}

// ListFilter carries filtering parameters for List operations.
// An empty Status means all statuses.
type ListFilter struct {
	Status string
	Limit  int
	Offset int
}
