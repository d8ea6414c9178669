package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	reportStore "raknong/internal/adapters/storage/report"
	domain "raknong/internal/domain/report"
)

// SubmitReportCommand holds the input for a problem-report submission.
// There is deliberately no Status field: whatever status a client attempts
// to supply, a new report always starts pending.
type SubmitReportCommand struct {
	StudentID string
	Email     string
	Type      string // uid, email, name
	Message   string
}

// SubmitReportDeps are the external dependencies for this orchestrator.
type SubmitReportDeps struct {
	ReportStore reportStore.Store
}

// SubmitReportResult holds the outcome of a successful submission.
type SubmitReportResult struct {
	ReportID int64
}

// ExecuteSubmitReport validates and persists a new problem report.
// PRE: cmd.Message is non-empty, cmd.Type is a known category
// POST: row inserted with status pending and server-side timestamps
func ExecuteSubmitReport(ctx context.Context, cmd SubmitReportCommand, deps SubmitReportDeps) (SubmitReportResult, error) {
	now := time.Now().UTC()
	rep := domain.Report{
		StudentID: cmd.StudentID,
		Email:     cmd.Email,
		Type:      cmd.Type,
		Message:   cmd.Message,
		Status:    domain.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := rep.Validate(); err != nil {
		return SubmitReportResult{}, fmt.Errorf("validation: %w", err)
	}

	saved, err := deps.ReportStore.Save(ctx, rep)
	if err != nil {
		slog.Error("report_save_failed", "error", err.Error())
		return SubmitReportResult{}, fmt.Errorf("failed to save report: %w", err)
	}

	slog.Info("report_submitted", "report_id", saved.ID, "type", saved.Type)
	return SubmitReportResult{ReportID: saved.ID}, nil
}
