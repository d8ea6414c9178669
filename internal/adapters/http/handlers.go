package web

import (
	"bytes"
	"database/sql"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"raknong/internal/adapters/http/middleware"
	"raknong/internal/application/orchestrators"
	"raknong/internal/domain/faculty"
	registrationDomain "raknong/internal/domain/registration"
	reportDomain "raknong/internal/domain/report"
)

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

const templatesDir = "internal/adapters/http/templates"

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	email := ""
	if ok {
		email = sess.Email
	}
	isAdmin := middleware.IsAdmin(r.Context())

	funcMap := template.FuncMap{
		"currentEmail": func() string { return email },
		"isAdmin":      func() bool { return isAdmin },
		"csrfToken":    func() string { return csrf.Token(r) },
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
		"facultyOptions": faculty.Options,
		"facultyLabel": func(code string) string {
			label, _ := faculty.Label(code)
			return label
		},
		"reportTypeLabel": func(t string) string {
			return reportDomain.TypeLabel(t)
		},
		"fmtTime": func(t time.Time) string {
			return t.Local().Format("2 Jan 2006 15:04")
		},
	}

	layoutPath := filepath.Join(templatesDir, "layout.html")
	pagePath := filepath.Join(templatesDir, templateName)
	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFiles(layoutPath, pagePath)
	if err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		http.Error(w, "Render error: "+err.Error(), http.StatusInternalServerError)
		return
	}
}

// handleHome handles GET / — the search landing page.
func handleHome(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	renderTemplate(w, r, "home.html", map[string]any{
		"CSRFToken": csrf.Token(r),
	})
}

// handleSearch handles GET /search?type=email|stdId&value=...
// It resolves the lookup server-side and redirects: hit goes to the matching
// edit page, miss goes to /no-user-found carrying the key kind.
func handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	kind := r.URL.Query().Get("type")
	value := strings.TrimSpace(r.URL.Query().Get("value"))
	if value == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	input := orchestrators.LookupRegistrationInput{}
	switch kind {
	case orchestrators.LookupByStudentID:
		input.StudentID = value
	default:
		kind = orchestrators.LookupByEmail
		input.Email = value
	}

	_, err := orchestrators.ExecuteLookupRegistration(r.Context(), input,
		orchestrators.LookupRegistrationDeps{RegistrationStore: stores.RegistrationStore})
	if err != nil {
		http.Redirect(w, r, "/no-user-found?type="+url.QueryEscape(kind), http.StatusSeeOther)
		return
	}

	if kind == orchestrators.LookupByStudentID {
		http.Redirect(w, r, "/edit/id/"+url.PathEscape(value), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/edit/email/"+url.PathEscape(value), http.StatusSeeOther)
}

// handleNoUserFound handles GET /no-user-found?type=email|stdId.
func handleNoUserFound(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	renderTemplate(w, r, "no_user_found.html", map[string]any{
		"Type":  r.URL.Query().Get("type"),
		"Error": registrationDomain.ErrNotFound.Error(),
	})
}

// handleEditByEmail handles GET and POST for /edit/email/{email}.
// An explicit ?stdId= query parameter overrides the email key for both the
// lookup and the save, so a shared link can be corrected without re-searching.
func handleEditByEmail(w http.ResponseWriter, r *http.Request) {
	emailKey := r.PathValue("email")
	stdIDOverride := strings.TrimSpace(r.URL.Query().Get("stdId"))

	input := orchestrators.LookupRegistrationInput{Email: emailKey, StudentID: stdIDOverride}

	switch r.Method {
	case "GET":
		renderEditPage(w, r, input)
	case "POST":
		saveEditForm(w, r, orchestrators.UpdateRegistrationInput{
			Email:     emailKey,
			StudentID: stdIDOverride,
		})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleEditByStudentID handles GET and POST for /edit/id/{stdId}.
func handleEditByStudentID(w http.ResponseWriter, r *http.Request) {
	stdID := r.PathValue("stdId")

	switch r.Method {
	case "GET":
		renderEditPage(w, r, orchestrators.LookupRegistrationInput{StudentID: stdID})
	case "POST":
		saveEditForm(w, r, orchestrators.UpdateRegistrationInput{StudentID: stdID})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// renderEditPage looks up the registration and renders the edit form.
// A miss redirects to the not-found page carrying the key kind used.
func renderEditPage(w http.ResponseWriter, r *http.Request, input orchestrators.LookupRegistrationInput) {
	result, err := orchestrators.ExecuteLookupRegistration(r.Context(), input,
		orchestrators.LookupRegistrationDeps{RegistrationStore: stores.RegistrationStore})
	if err != nil {
		http.Redirect(w, r, "/no-user-found?type="+url.QueryEscape(result.KeyKind), http.StatusSeeOther)
		return
	}

	reg := result.Registration
	renderTemplate(w, r, "edit.html", map[string]any{
		"Registration": reg,
		"FacultyCode":  faculty.Code(reg.Faculty),
		"ActionURL":    r.URL.RequestURI(),
		"CSRFToken":    csrf.Token(r),
	})
}

// saveEditForm applies the editable fields from the form and redirects to the
// ticket page for the row's group.
// Student id, name, nickname and email are shown read-only on the form and
// never written here. A failed write keeps the participant on the edit form
// with the storage message inline; only a vanished row leaves the flow.
func saveEditForm(w http.ResponseWriter, r *http.Request, input orchestrators.UpdateRegistrationInput) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	dietaryReq := strings.TrimSpace(r.FormValue("diereq"))
	medical := strings.TrimSpace(r.FormValue("ph"))
	foodAllergy := strings.TrimSpace(r.FormValue("foodalg"))

	input.Fields = registrationDomain.Partial{
		DietaryReq:  &dietaryReq,
		Medical:     &medical,
		FoodAllergy: &foodAllergy,
	}
	// An empty faculty select means "no choice made": the column stays
	// untouched, so rows imported with a code missing from the current
	// table keep their value.
	if code := strings.TrimSpace(r.FormValue("faculty")); code != "" {
		facultyValue := faculty.Compose(code)
		input.Fields.Faculty = &facultyValue
	}

	kind := orchestrators.LookupByEmail
	if input.StudentID != "" {
		kind = orchestrators.LookupByStudentID
	}

	updated, err := orchestrators.ExecuteUpdateRegistration(r.Context(), input,
		orchestrators.UpdateRegistrationDeps{RegistrationStore: stores.RegistrationStore})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Redirect(w, r, "/no-user-found?type="+url.QueryEscape(kind), http.StatusSeeOther)
			return
		}
		renderEditError(w, r, input, err)
		return
	}

	http.Redirect(w, r, "/ticket/"+strconv.Itoa(updated.Group), http.StatusSeeOther)
}

// renderEditError re-renders the edit form with the submitted field values and
// the storage error message inline. When even the re-read fails the flow falls
// back to the not-found page.
func renderEditError(w http.ResponseWriter, r *http.Request, input orchestrators.UpdateRegistrationInput, saveErr error) {
	result, err := orchestrators.ExecuteLookupRegistration(r.Context(),
		orchestrators.LookupRegistrationInput{Email: input.Email, StudentID: input.StudentID},
		orchestrators.LookupRegistrationDeps{RegistrationStore: stores.RegistrationStore})
	if err != nil {
		http.Redirect(w, r, "/no-user-found?type="+url.QueryEscape(result.KeyKind), http.StatusSeeOther)
		return
	}

	reg := result.Registration
	input.Fields.Apply(&reg)
	renderTemplate(w, r, "edit.html", map[string]any{
		"Registration": reg,
		"FacultyCode":  faculty.Code(reg.Faculty),
		"ActionURL":    r.URL.RequestURI(),
		"CSRFToken":    csrf.Token(r),
		"Error":        saveErr.Error(),
	})
}

// handleTicket handles GET /ticket/{group} — the per-group ticket image page.
func handleTicket(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	group, err := strconv.Atoi(r.PathValue("group"))
	if err != nil || group <= 0 {
		http.NotFound(w, r)
		return
	}

	renderTemplate(w, r, "ticket.html", map[string]any{
		"Group":     group,
		"ImagePath": "/tickets/" + strconv.Itoa(group) + ".png",
	})
}
