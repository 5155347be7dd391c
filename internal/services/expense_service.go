package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"budgetplanner/internal/budget"
	"budgetplanner/internal/categorize"
	"budgetplanner/internal/core"
	"budgetplanner/internal/ingest"
	"budgetplanner/internal/log"
	"budgetplanner/internal/notify"
	"budgetplanner/internal/session"
)

var (
	ErrNoPendingImport = errors.New("no statement awaiting confirmation")
	ErrMissingAmount   = errors.New("amount is required")
	ErrMissingCategory = errors.New("category is required")
)

// ExpenseService appends expenses to a session ledger and runs the budget
// monitor on every manual addition.
type ExpenseService struct {
	monitor    *budget.Monitor
	dispatcher notify.Dispatcher
	ingestor   *ingest.Ingestor
	logger     *log.StructuredLogger
}

// AddResult describes the outcome of a manual addition.
type AddResult struct {
	Expense core.Expense
	Total   float64
	Alert   *budget.AlertEvent
}

// BudgetHint suggests a known category for a typed budget name.
type BudgetHint struct {
	Name       string
	Suggestion string
}

// NewExpenseService creates a service. A nil dispatcher discards alerts.
func NewExpenseService(monitor *budget.Monitor, dispatcher notify.Dispatcher, ingestor *ingest.Ingestor, logger *log.StructuredLogger) *ExpenseService {
	if monitor == nil {
		monitor = budget.NewMonitor(budget.DefaultThreshold)
	}
	if ingestor == nil {
		ingestor = ingest.NewIngestor(nil)
	}
	if logger == nil {
		logger = log.NewStructuredLogger(log.New(log.DefaultConfig()))
	}
	return &ExpenseService{
		monitor:    monitor,
		dispatcher: dispatcher,
		ingestor:   ingestor,
		logger:     logger,
	}
}

// NewManualExpense builds an expense from form values. The amount must be a
// plain number; category and description are kept as typed, and the
// description only for the Other category.
func NewManualExpense(amount, category, description string) (core.Expense, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return core.Expense{}, ErrMissingAmount
	}
	if strings.TrimSpace(category) == "" {
		return core.Expense{}, ErrMissingCategory
	}
	e := core.Expense{
		Amount:   core.ParseStrictAmount(amount),
		Category: category,
	}
	if category == core.CategoryOther {
		e.Description = description
	}
	return e, e.Validate()
}

// AddExpense appends e to the session ledger, then evaluates the budget for
// its category. Delivery of an alert never fails the addition.
func (s *ExpenseService) AddExpense(ctx context.Context, sess *session.Session, e core.Expense) (AddResult, error) {
	if err := e.Validate(); err != nil {
		return AddResult{}, fmt.Errorf("add expense: %w", err)
	}

	total := sess.Ledger.Append(e)
	s.logger.LogExpenseAdded(ctx, e.Description, e.Amount, e.Category, total)

	result := AddResult{Expense: e, Total: total}
	event, fire := s.monitor.Evaluate(sess.Recipient(), e.Category, total, sess.Budgets())
	if !fire {
		return result, nil
	}
	s.logger.LogBudgetAlert(ctx, event.Recipient, event.Category, event.Total, event.Ceiling)
	if s.dispatcher != nil {
		s.dispatcher.Dispatch(ctx, event)
	}
	result.Alert = &event
	return result, nil
}

// PrepareImport parses an uploaded statement and keeps it on the session
// until it is confirmed. Any earlier pending statement is discarded first,
// even when the new file is rejected. The ledger is not touched.
func (s *ExpenseService) PrepareImport(ctx context.Context, sess *session.Session, filename, contentType string, r io.Reader) (ingest.Statement, error) {
	sess.ClearPendingImport()
	st, err := s.ingestor.Parse(filename, contentType, r)
	if err != nil {
		s.logger.LogError(ctx, "Statement rejected", err, log.ComponentIngest, log.OpParse,
			log.NewFields().WithStatement(filename, "", 0, 0))
		return ingest.Statement{}, fmt.Errorf("import %s: %w", filename, err)
	}
	s.logger.LogStatementParsed(ctx, st.Filename, string(st.Format), len(st.Expenses), st.Invalid)
	sess.SetPendingImport(st)
	return st, nil
}

// ConfirmImport appends the pending statement in one step. Imported rows do
// not trigger budget alerts.
func (s *ExpenseService) ConfirmImport(ctx context.Context, sess *session.Session) (int, error) {
	st, ok := sess.TakePendingImport()
	if !ok {
		return 0, ErrNoPendingImport
	}
	sess.Ledger.AppendAll(st.Expenses)
	s.logger.LogStatementImported(ctx, st.Filename, string(st.Format), len(st.Expenses), st.Invalid)
	return len(st.Expenses), nil
}

// SaveBudgets replaces the session budgets wholesale. Names close to a known
// category come back as hints; they are saved as typed.
func (s *ExpenseService) SaveBudgets(ctx context.Context, sess *session.Session, b budget.Budgets) ([]BudgetHint, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	sess.SetBudgets(b)

	var hints []BudgetHint
	for _, name := range b.Names() {
		if suggestion, ok := categorize.Suggest(name, core.KnownCategories); ok {
			hints = append(hints, BudgetHint{Name: name, Suggestion: suggestion})
		}
	}
	s.logger.LogBudgetsSaved(ctx, len(b), len(hints))
	return hints, nil
}

// Summary aggregates the session ledger by category.
func (s *ExpenseService) Summary(sess *session.Session) []core.CategoryAmount {
	return sess.Ledger.ByCategory()
}

// Threshold reports the monitor's remaining-fraction threshold.
func (s *ExpenseService) Threshold() float64 {
	return s.monitor.Threshold()
}
