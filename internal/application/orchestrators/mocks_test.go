package orchestrators

import (
	"context"
	"database/sql"
	"sync/atomic"
	"time"

	"raknong/internal/adapters/email"
	reportStorePkg "raknong/internal/adapters/storage/report"
	accountDomain "raknong/internal/domain/account"
	registrationDomain "raknong/internal/domain/registration"
	reportDomain "raknong/internal/domain/report"
)

func str(s string) *string { return &s }

// --- Mock registration store ---

type mockRegistrationStore struct {
	byStudentID map[string]registrationDomain.Registration
	getErr      error
	updateErr   error
	saveErr     error
	saved       []registrationDomain.Registration
}

func newMockRegistrationStore(regs ...registrationDomain.Registration) *mockRegistrationStore {
	m := &mockRegistrationStore{byStudentID: make(map[string]registrationDomain.Registration)}
	for _, r := range regs {
		m.byStudentID[r.StudentID] = r
	}
	return m
}

// GetByStudentID implements the registration store interface for testing.
// PRE: stdID is non-empty
// POST: Returns the entity or sql.ErrNoRows
func (m *mockRegistrationStore) GetByStudentID(_ context.Context, stdID string) (registrationDomain.Registration, error) {
	if m.getErr != nil {
		return registrationDomain.Registration{}, m.getErr
	}
	if r, ok := m.byStudentID[stdID]; ok {
		return r, nil
	}
	return registrationDomain.Registration{}, sql.ErrNoRows
}

// GetByEmail implements the registration store interface for testing.
// Mirrors the real store: zero or multiple matches behave like a miss.
func (m *mockRegistrationStore) GetByEmail(_ context.Context, emailAddr string) (registrationDomain.Registration, error) {
	if m.getErr != nil {
		return registrationDomain.Registration{}, m.getErr
	}
	var found []registrationDomain.Registration
	for _, r := range m.byStudentID {
		if r.Email == emailAddr {
			found = append(found, r)
		}
	}
	if len(found) != 1 {
		return registrationDomain.Registration{}, sql.ErrNoRows
	}
	return found[0], nil
}

// UpdateByStudentID implements the registration store interface for testing.
func (m *mockRegistrationStore) UpdateByStudentID(_ context.Context, stdID string, p registrationDomain.Partial) (registrationDomain.Registration, error) {
	if m.updateErr != nil {
		return registrationDomain.Registration{}, m.updateErr
	}
	r, ok := m.byStudentID[stdID]
	if !ok {
		return registrationDomain.Registration{}, sql.ErrNoRows
	}
	p.Apply(&r)
	m.byStudentID[stdID] = r
	return r, nil
}

// UpdateByEmail implements the registration store interface for testing.
// The key folds case like the real store.
func (m *mockRegistrationStore) UpdateByEmail(_ context.Context, emailAddr string, p registrationDomain.Partial) (registrationDomain.Registration, error) {
	if m.updateErr != nil {
		return registrationDomain.Registration{}, m.updateErr
	}
	key := registrationDomain.NormalizeEmailKey(emailAddr)
	for id, r := range m.byStudentID {
		if registrationDomain.NormalizeEmailKey(r.Email) == key {
			p.Apply(&r)
			m.byStudentID[id] = r
			return r, nil
		}
	}
	return registrationDomain.Registration{}, sql.ErrNoRows
}

// Save implements the registration store interface for testing.
func (m *mockRegistrationStore) Save(_ context.Context, r registrationDomain.Registration) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.byStudentID[r.StudentID] = r
	m.saved = append(m.saved, r)
	return nil
}

// --- Mock report store ---

type mockReportStore struct {
	reports map[int64]reportDomain.Report
	nextID  int64
	saveErr error
}

func newMockReportStore() *mockReportStore {
	return &mockReportStore{reports: make(map[int64]reportDomain.Report)}
}

// Save implements the report store interface for testing.
func (m *mockReportStore) Save(_ context.Context, r reportDomain.Report) (reportDomain.Report, error) {
	if m.saveErr != nil {
		return reportDomain.Report{}, m.saveErr
	}
	r.ID = atomic.AddInt64(&m.nextID, 1)
	m.reports[r.ID] = r
	return r, nil
}

// GetByID implements the report store interface for testing.
func (m *mockReportStore) GetByID(_ context.Context, id int64) (reportDomain.Report, error) {
	if r, ok := m.reports[id]; ok {
		return r, nil
	}
	return reportDomain.Report{}, reportDomain.ErrNotFound
}

// List implements the report store interface for testing.
// Newest-first ordering by CreatedAt, matching the SQLite store.
func (m *mockReportStore) List(_ context.Context, filter reportStorePkg.ListFilter) ([]reportDomain.Report, error) {
	var out []reportDomain.Report
	for _, r := range m.reports {
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		out = append(out, r)
	}
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].CreatedAt.After(out[i].CreatedAt) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

// SetStatus implements the report store interface for testing.
func (m *mockReportStore) SetStatus(_ context.Context, id int64, status, notes string, at time.Time) error {
	r, ok := m.reports[id]
	if !ok {
		return reportDomain.ErrNotFound
	}
	r.Status = status
	r.ResolutionNotes = notes
	r.UpdatedAt = at
	m.reports[id] = r
	return nil
}

// --- Mock account store ---

type mockAccountStore struct {
	accounts map[string]accountDomain.Account
	count    int
}

func newMockAccountStore(accts ...accountDomain.Account) *mockAccountStore {
	m := &mockAccountStore{accounts: make(map[string]accountDomain.Account)}
	for _, a := range accts {
		m.accounts[a.Email] = a
	}
	m.count = len(accts)
	return m
}

// GetByEmail implements the account store interface for testing.
func (m *mockAccountStore) GetByEmail(_ context.Context, emailAddr string) (accountDomain.Account, error) {
	if a, ok := m.accounts[emailAddr]; ok {
		return a, nil
	}
	return accountDomain.Account{}, sql.ErrNoRows
}

// Save implements the account store interface for testing.
func (m *mockAccountStore) Save(_ context.Context, a accountDomain.Account) error {
	if _, exists := m.accounts[a.Email]; !exists {
		m.count++
	}
	m.accounts[a.Email] = a
	return nil
}

// Count implements the account store interface for testing.
func (m *mockAccountStore) Count(_ context.Context) (int, error) {
	return m.count, nil
}

// --- Mock email sender ---

type mockEmailSender struct {
	sent    []email.SendRequest
	sendErr error
}

// Send implements email.Sender for testing.
func (m *mockEmailSender) Send(_ context.Context, req email.SendRequest) (email.SendResult, error) {
	if m.sendErr != nil {
		return email.SendResult{}, m.sendErr
	}
	m.sent = append(m.sent, req)
	return email.SendResult{MessageID: "msg-1", SentAt: time.Now()}, nil
}
