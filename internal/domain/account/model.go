package account

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role constants. The site has exactly one privileged role; participants
// never hold accounts — they are looked up by email or student id.
const (
	RoleAdmin = "admin"
)

// Domain errors
var (
	ErrEmptyEmail       = errors.New("email cannot be empty")
	ErrInvalidEmail     = errors.New("email must contain '@'")
	ErrEmptyPassword    = errors.New("password cannot be empty")
	ErrPasswordTooShort = errors.New("password must be at least 12 characters")
	ErrWrongPassword    = errors.New("incorrect password")
)

// Account holds state for an administrator account.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	FailedLogins int
}

// Validate checks if the Account has valid data.
// PRE: Account struct is populated
// POST: Returns nil if valid, error otherwise
func (a *Account) Validate() error {
	if strings.TrimSpace(a.Email) == "" {
		return ErrEmptyEmail
	}
	if !strings.Contains(a.Email, "@") {
		return ErrInvalidEmail
	}
	if a.Role != RoleAdmin {
		return errors.New("role must be 'admin'")
	}
	return nil
}

// SetPassword hashes and stores a password using bcrypt with cost 12.
// PRE: password is at least 12 characters
// POST: PasswordHash is set; the plaintext is never stored
func (a *Account) SetPassword(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	if len(password) < 12 {
		return ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return err
	}
	a.PasswordHash = string(hash)
	return nil
}

// CheckPassword compares a candidate password against the stored hash.
// POST: returns ErrWrongPassword on mismatch
func (a *Account) CheckPassword(password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return ErrWrongPassword
	}
	return nil
}

// RecordFailedLogin increments the failed-login counter.
// POST: FailedLogins is incremented by one
func (a *Account) RecordFailedLogin() {
	a.FailedLogins++
}

// ResetFailedLogins clears the failed-login counter.
// POST: FailedLogins is zero
func (a *Account) ResetFailedLogins() {
	a.FailedLogins = 0
}
