package report

import (
	"errors"
	"strings"
	"time"
)

// Status constants. Status only ever moves pending -> resolved|rejected;
// the store does not enforce this, the admin UI does.
const (
	StatusPending  = "pending"
	StatusResolved = "resolved"
	StatusRejected = "rejected"
)

// Category constants for what the participant says is wrong.
const (
	TypeStudentID = "uid"
	TypeEmail     = "email"
	TypeName      = "name"
)

// ValidStatuses contains all valid status values.
var ValidStatuses = []string{StatusPending, StatusResolved, StatusRejected}

// Domain errors
var (
	ErrEmptyMessage = errors.New("report message cannot be empty")
	ErrInvalidType  = errors.New("report type must be one of: uid, email, name")
	ErrNotFound     = errors.New("report not found")
)

// Report holds one problem report submitted by a participant.
type Report struct {
	ID              int64 // auto-increment, assigned by the store
	StudentID       string
	Email           string
	Type            string // uid, email, name
	Message         string
	Status          string // pending, resolved, rejected
	ResolutionNotes string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate checks if the Report has valid data.
// PRE: Report struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (r *Report) Validate() error {
	if strings.TrimSpace(r.Message) == "" {
		return ErrEmptyMessage
	}
	if r.Type != TypeStudentID && r.Type != TypeEmail && r.Type != TypeName {
		return ErrInvalidType
	}
	return nil
}

// IsPending returns true while the report awaits an administrator.
// INVARIANT: Status field is not mutated
func (r *Report) IsPending() bool {
	return r.Status == StatusPending
}

// IsValidStatus reports whether s is a known status value.
func IsValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// TypeLabel returns the human-readable label for a report category.
func TypeLabel(t string) string {
	switch t {
	case TypeStudentID:
		return "Student ID issue"
	case TypeEmail:
		return "Email issue"
	case TypeName:
		return "Name issue"
	default:
		return t
	}
}
