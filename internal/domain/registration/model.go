package registration

import (
	"errors"
	"strings"
)

// Domain errors
var (
	// ErrNotFound covers every lookup miss: zero rows, duplicate rows, and
	// query failures all collapse into this one signal. Callers are never
	// told which case occurred.
	ErrNotFound = errors.New("No user found or error fetching data.")
)

// Registration holds one participant's row as exposed to the rest of the
// system. The storage-internal numeric row id deliberately has no field
// here, so it can never leak out of the storage layer.
type Registration struct {
	StudentID   string // std_id, unique; never altered after import
	Name        string
	Nickname    string
	Faculty     string // composite "CODE : label", see domain/faculty
	DietaryReq  string // diereq
	Medical     string // ph
	FoodAllergy string // foodalg
	Email       string // alternate lookup key, not unique at the store
	Group       int    // grp, addresses the ticket asset {Group}.png
}

// Validate checks if the Registration has valid data.
// PRE: Registration struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: StudentID must not be empty, Email must contain '@'
func (r *Registration) Validate() error {
	if strings.TrimSpace(r.StudentID) == "" {
		return errors.New("student id cannot be empty")
	}
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name cannot be empty")
	}
	if !strings.Contains(r.Email, "@") {
		return errors.New("email must be valid")
	}
	return nil
}

// Partial is the field set a participant may write back. A nil pointer means
// "leave the column untouched"; a non-nil pointer is written verbatim, with
// no validation of the value. StudentID is intentionally absent: once
// assigned it is never altered by this system.
type Partial struct {
	Name        *string
	Nickname    *string
	Faculty     *string
	DietaryReq  *string
	Medical     *string
	FoodAllergy *string
	Email       *string
	Group       *int
}

// IsEmpty reports whether the partial carries no changes.
func (p Partial) IsEmpty() bool {
	return p.Name == nil && p.Nickname == nil && p.Faculty == nil &&
		p.DietaryReq == nil && p.Medical == nil && p.FoodAllergy == nil &&
		p.Email == nil && p.Group == nil
}

// Apply copies the set fields of the partial onto a registration.
// POST: unset fields of p leave r unchanged
func (p Partial) Apply(r *Registration) {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Nickname != nil {
		r.Nickname = *p.Nickname
	}
	if p.Faculty != nil {
		r.Faculty = *p.Faculty
	}
	if p.DietaryReq != nil {
		r.DietaryReq = *p.DietaryReq
	}
	if p.Medical != nil {
		r.Medical = *p.Medical
	}
	if p.FoodAllergy != nil {
		r.FoodAllergy = *p.FoodAllergy
	}
	if p.Email != nil {
		r.Email = *p.Email
	}
	if p.Group != nil {
		r.Group = *p.Group
	}
}

// NormalizeEmailKey canonicalizes an email used as an update key: the
// email-keyed update path matches case-insensitively on the trimmed,
// lowercased address.
func NormalizeEmailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
