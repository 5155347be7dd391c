package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"budgetplanner/internal/budget"
	"budgetplanner/internal/session"
)

type budgetsData struct {
	Rows  []budgetRow
	Hints []string
	Saved bool
}

// handleBudgets renders the budget form on GET and replaces the session's
// budgets on POST.
func (s *Server) handleBudgets(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	switch r.Method {
	case http.MethodGet:
		s.render(w, r, "budgets.html", budgetsData{Rows: buildBudgetRows(sess.Budgets())})
	case http.MethodPost:
		s.saveBudgets(w, r, sess)
	default:
		MethodNotAllowedError("GET, POST").Write(w)
	}
}

func (s *Server) saveBudgets(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}
	b, err := ParseBudgetForm(r.Form)
	if err != nil {
		UnprocessableEntityError("Every budget amount needs a category name.").Write(w)
		return
	}

	hints, err := s.expenses.SaveBudgets(r.Context(), sess, b)
	if err != nil {
		UnprocessableEntityError(budgetErrorMessage(err)).Write(w)
		return
	}

	data := budgetsData{Rows: buildBudgetRows(sess.Budgets()), Saved: true}
	for _, h := range hints {
		data.Hints = append(data.Hints, fmt.Sprintf("Did you mean %q instead of %q?", h.Suggestion, h.Name))
	}
	NewHTMXResponse().TriggerBudgetsSaved().TriggerSuccessNotification("Budgets saved.").WriteHeaders(w)
	s.render(w, r, "budgets.html", data)
}

func budgetErrorMessage(err error) string {
	var msgs []string
	if errors.Is(err, budget.ErrNegativeCeiling) {
		msgs = append(msgs, "Budget amounts cannot be negative.")
	}
	if errors.Is(err, budget.ErrInvalidCeiling) {
		msgs = append(msgs, "Budget amounts must be numbers.")
	}
	if errors.Is(err, budget.ErrEmptyName) {
		msgs = append(msgs, "Budget categories need a name.")
	}
	if len(msgs) == 0 {
		return "Invalid budgets."
	}
	return strings.Join(msgs, " ")
}
