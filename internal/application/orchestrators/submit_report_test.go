package orchestrators

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "raknong/internal/domain/report"
)

// TestSubmitReport_ForcesPending verifies every new report starts pending
// with server-side timestamps.
func TestSubmitReport_ForcesPending(t *testing.T) {
	store := newMockReportStore()
	deps := SubmitReportDeps{ReportStore: store}
	before := time.Now().UTC()

	result, err := ExecuteSubmitReport(context.Background(), SubmitReportCommand{
		StudentID: "6512345678",
		Email:     "somchai@example.com",
		Type:      domain.TypeEmail,
		Message:   "email is misspelled",
	}, deps)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.ReportID == 0 {
		t.Error("ReportID not assigned")
	}

	saved := store.reports[result.ReportID]
	if saved.Status != domain.StatusPending {
		t.Errorf("Status = %q, want pending", saved.Status)
	}
	if saved.CreatedAt.Before(before) || saved.UpdatedAt.Before(before) {
		t.Errorf("timestamps not server-side: %+v", saved)
	}
	if !saved.CreatedAt.Equal(saved.UpdatedAt) {
		t.Error("CreatedAt and UpdatedAt should match on insert")
	}
}

// TestSubmitReport_EmptyMessage verifies validation runs before the save.
func TestSubmitReport_EmptyMessage(t *testing.T) {
	store := newMockReportStore()
	deps := SubmitReportDeps{ReportStore: store}

	_, err := ExecuteSubmitReport(context.Background(), SubmitReportCommand{
		Type:    domain.TypeName,
		Message: "   ",
	}, deps)
	if !errors.Is(err, domain.ErrEmptyMessage) {
		t.Errorf("err = %v, want ErrEmptyMessage", err)
	}
	if len(store.reports) != 0 {
		t.Error("invalid report was saved")
	}
}

// TestSubmitReport_InvalidType verifies unknown categories are rejected.
func TestSubmitReport_InvalidType(t *testing.T) {
	deps := SubmitReportDeps{ReportStore: newMockReportStore()}
	_, err := ExecuteSubmitReport(context.Background(), SubmitReportCommand{
		Type:    "phone",
		Message: "my phone is wrong",
	}, deps)
	if !errors.Is(err, domain.ErrInvalidType) {
		t.Errorf("err = %v, want ErrInvalidType", err)
	}
}

// TestSubmitReport_OptionalIdentity verifies reports without student id or
// email are accepted; both fields are optional context.
func TestSubmitReport_OptionalIdentity(t *testing.T) {
	store := newMockReportStore()
	deps := SubmitReportDeps{ReportStore: store}

	result, err := ExecuteSubmitReport(context.Background(), SubmitReportCommand{
		Type:    domain.TypeStudentID,
		Message: "cannot find my id at all",
	}, deps)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	saved := store.reports[result.ReportID]
	if saved.StudentID != "" || saved.Email != "" {
		t.Errorf("identity fields should stay empty: %+v", saved)
	}
}

// TestSubmitReport_SaveFailure verifies store errors are wrapped and surfaced.
func TestSubmitReport_SaveFailure(t *testing.T) {
	store := newMockReportStore()
	store.saveErr = errors.New("disk full")
	deps := SubmitReportDeps{ReportStore: store}

	_, err := ExecuteSubmitReport(context.Background(), SubmitReportCommand{
		Type:    domain.TypeEmail,
		Message: "x",
	}, deps)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, store.saveErr) {
		t.Errorf("err = %v, want wrapped disk full", err)
	}
}
