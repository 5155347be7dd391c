package session

import (
	"sync"

	"budgetplanner/internal/budget"
	"budgetplanner/internal/ingest"
	"budgetplanner/internal/ledger"
)

// Session is the explicit context passed to everything that needs to know
// who is acting. Ledger, budgets and pending import live only in memory.
type Session struct {
	ID       string
	Identity Identity
	Ledger   *ledger.Ledger

	mu      sync.Mutex
	budgets budget.Budgets
	pending *ingest.Statement
}

func newSession(id string, identity Identity) *Session {
	return &Session{
		ID:       id,
		Identity: identity,
		Ledger:   ledger.New(),
		budgets:  budget.Budgets{},
	}
}

// Recipient is the address budget alerts are sent to.
func (s *Session) Recipient() string {
	return s.Identity.Email
}

// Budgets returns a copy of the saved budgets.
func (s *Session) Budgets() budget.Budgets {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.budgets.Clone()
}

// SetBudgets replaces the budgets wholesale.
func (s *Session) SetBudgets(b budget.Budgets) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.budgets = b.Clone()
}

// SetPendingImport stores a parsed statement awaiting confirmation,
// replacing any earlier one.
func (s *Session) SetPendingImport(st ingest.Statement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = &st
}

// PendingImport returns the statement awaiting confirmation, if any.
func (s *Session) PendingImport() (ingest.Statement, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return ingest.Statement{}, false
	}
	return *s.pending, true
}

// ClearPendingImport drops the statement awaiting confirmation, if any.
func (s *Session) ClearPendingImport() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
}

// TakePendingImport returns and clears the pending statement.
func (s *Session) TakePendingImport() (ingest.Statement, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return ingest.Statement{}, false
	}
	st := *s.pending
	s.pending = nil
	return st, true
}

func (s *Session) clear() {
	s.mu.Lock()
	s.budgets = budget.Budgets{}
	s.pending = nil
	s.mu.Unlock()
	s.Ledger.Reset()
}
