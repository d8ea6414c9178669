package web

import (
	"net/http"

	"raknong/internal/adapters/http/middleware"
)

// registerRoutes attaches all application handlers to the mux.
// Handlers enforce methods themselves; admin pages additionally pass
// through middleware.RequireAdmin.
func registerRoutes(mux *http.ServeMux) {
	// Public pages
	mux.HandleFunc("/{$}", handleHome)
	mux.HandleFunc("/search", handleSearch)
	mux.HandleFunc("/edit/email/{email}", handleEditByEmail)
	mux.HandleFunc("/edit/id/{stdId}", handleEditByStudentID)
	mux.HandleFunc("/no-user-found", handleNoUserFound)
	mux.HandleFunc("/ticket/{group}", handleTicket)

	// Problem report API (JSON, called from the report modal)
	mux.HandleFunc("/api/reports", handleSubmitReport)

	// Admin gate
	mux.HandleFunc("/admin/login", handleAdminLogin)
	mux.HandleFunc("/admin/logout", handleAdminLogout)
	mux.Handle("/admin", middleware.RequireAdmin(http.HandlerFunc(handleAdminHome)))
	mux.Handle("/admin/reports", middleware.RequireAdmin(http.HandlerFunc(handleAdminReports)))
	mux.Handle("/admin/reports/{id}", middleware.RequireAdmin(http.HandlerFunc(handleAdminReportDetail)))
	mux.Handle("/admin/reports/{id}/status", middleware.RequireAdmin(http.HandlerFunc(handleAdminReportStatus)))
}
