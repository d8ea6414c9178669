package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/csrf"

	"raknong/internal/application/orchestrators"
	"raknong/internal/application/projections"
	reportDomain "raknong/internal/domain/report"
)

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// submitReportRequest is the JSON body posted by the report modal.
// No status field is accepted: new reports always start pending.
type submitReportRequest struct {
	StudentID string `json:"stdId"`
	Email     string `json:"email"`
	Type      string `json:"type"`
	Message   string `json:"message"`
}

// handleSubmitReport handles POST /api/reports.
// Accepts JSON from the report modal on the public pages; no authentication
// is required, submitting a report is open to every participant.
// PRE: body carries type and a non-empty message
// POST: row inserted with status pending; returns 201 with the new id
func handleSubmitReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req submitReportRequest
	if err := strictDecode(r, &req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	cmd := orchestrators.SubmitReportCommand{
		StudentID: strings.TrimSpace(req.StudentID),
		Email:     strings.TrimSpace(req.Email),
		Type:      strings.TrimSpace(req.Type),
		Message:   strings.TrimSpace(req.Message),
	}
	deps := orchestrators.SubmitReportDeps{ReportStore: stores.ReportStore}

	result, err := orchestrators.ExecuteSubmitReport(r.Context(), cmd, deps)
	if err != nil {
		if errors.Is(err, reportDomain.ErrEmptyMessage) || errors.Is(err, reportDomain.ErrInvalidType) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		internalError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{
		"id":     result.ReportID,
		"status": reportDomain.StatusPending,
	})
}

// handleAdminHome handles GET /admin — a convenience redirect to the reports page.
func handleAdminHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/admin/reports", http.StatusSeeOther)
}

// handleAdminReports handles GET /admin/reports?status=pending|resolved|rejected|all.
// The list defaults to pending, newest first.
func handleAdminReports(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	query := projections.GetReportsQuery{Status: r.URL.Query().Get("status")}
	deps := projections.GetReportsDeps{ReportStore: stores.ReportStore}

	result, err := projections.QueryGetReports(r.Context(), query, deps)
	if err != nil {
		internalError(w, err)
		return
	}

	renderTemplate(w, r, "admin_reports.html", map[string]any{
		"Reports": result.Reports,
		"Status":  result.Status,
	})
}

// handleAdminReportDetail handles GET /admin/reports/{id}.
func handleAdminReportDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	rep, err := stores.ReportStore.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, reportDomain.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		internalError(w, err)
		return
	}

	renderTemplate(w, r, "admin_report_detail.html", map[string]any{
		"Report":    rep,
		"IsPending": rep.IsPending(),
		"CSRFToken": csrf.Token(r),
	})
}

// handleAdminReportStatus handles POST /admin/reports/{id}/status.
// Form fields: status (resolved or rejected) and optional notes.
// The transition notifies the reporter by email when an address is on file.
func handleAdminReportStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	cmd := orchestrators.ResolveReportCommand{
		ReportID: id,
		Status:   r.FormValue("status"),
		Notes:    strings.TrimSpace(r.FormValue("notes")),
	}
	deps := orchestrators.ResolveReportDeps{
		ReportStore: stores.ReportStore,
		EmailSender: emailSender,
		EmailFrom:   emailFromAddress,
	}

	if err := orchestrators.ExecuteResolveReport(r.Context(), cmd, deps); err != nil {
		if errors.Is(err, reportDomain.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	http.Redirect(w, r, "/admin/reports/"+strconv.FormatInt(id, 10), http.StatusSeeOther)
}
