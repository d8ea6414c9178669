package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"raknong/internal/adapters/email"
	reportStore "raknong/internal/adapters/storage/report"
	domain "raknong/internal/domain/report"
)

// ResolveReportCommand holds the input for a status transition.
type ResolveReportCommand struct {
	ReportID int64
	Status   string // resolved or rejected
	Notes    string
}

// ResolveReportDeps are the external dependencies for this orchestrator.
// EmailSender may be nil; notification is then skipped entirely.
type ResolveReportDeps struct {
	ReportStore reportStore.Store
	EmailSender email.Sender
	EmailFrom   string
}

// ExecuteResolveReport overwrites a report's status, notes and update time.
// It does not check the current status: re-resolving an already-resolved
// report is possible through this call; only the UI hides the controls.
// A notification email to the reporter is best-effort and never fails the
// transition.
// PRE: cmd.Status is resolved or rejected
// POST: row updated; reporter notified when an email is on file
func ExecuteResolveReport(ctx context.Context, cmd ResolveReportCommand, deps ResolveReportDeps) error {
	if cmd.Status != domain.StatusResolved && cmd.Status != domain.StatusRejected {
		return fmt.Errorf("status must be %q or %q", domain.StatusResolved, domain.StatusRejected)
	}

	rep, err := deps.ReportStore.GetByID(ctx, cmd.ReportID)
	if err != nil {
		return err
	}

	if err := deps.ReportStore.SetStatus(ctx, cmd.ReportID, cmd.Status, cmd.Notes, time.Now().UTC()); err != nil {
		slog.Error("report_status_update_failed", "report_id", cmd.ReportID, "error", err.Error())
		return err
	}

	slog.Info("report_status_updated", "report_id", cmd.ReportID, "status", cmd.Status)

	if deps.EmailSender != nil && rep.Email != "" {
		notifyReporter(ctx, deps, rep, cmd)
	}
	return nil
}

// notifyReporter sends the status notification. Failures are logged only.
func notifyReporter(ctx context.Context, deps ResolveReportDeps, rep domain.Report, cmd ResolveReportCommand) {
	subject := fmt.Sprintf("Your Raknong report #%d was %s", rep.ID, cmd.Status)
	body := fmt.Sprintf(
		"<p>Your report about a %s has been %s.</p><p>%s</p>",
		domain.TypeLabel(rep.Type), cmd.Status, cmd.Notes)

	_, err := deps.EmailSender.Send(ctx, email.SendRequest{
		To:      []string{rep.Email},
		From:    deps.EmailFrom,
		Subject: subject,
		HTML:    body,
	})
	if err != nil {
		slog.Error("report_notify_failed", "report_id", rep.ID, "error", err.Error())
	}
}
