package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"budgetplanner/internal/core"
	"budgetplanner/internal/log"
	"budgetplanner/internal/services"
	"budgetplanner/internal/session"
)

// handleAddExpense appends a manual entry. A budget alert is surfaced as a
// warning notification; delivery by email happens in the background.
func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	form := ParseExpenseForm(r.Form)
	e, err := services.NewManualExpense(form.Amount, form.Category, form.Description)
	if err != nil {
		UnprocessableEntityError(expenseErrorMessage(err)).Write(w)
		return
	}

	result, err := s.expenses.AddExpense(r.Context(), sess, e)
	if err != nil {
		UnprocessableEntityError(expenseErrorMessage(err)).Write(w)
		return
	}

	msg := fmt.Sprintf("Added %s to %s.", core.FormatAmount(e.Amount), e.Category)
	resp := SuccessResponse(msg).
		TriggerFormReset().
		TriggerExpensesChanged(sess.Ledger.Len())
	if result.Alert != nil {
		resp.TriggerWarningNotification(alertMessage(*result.Alert))
	} else {
		resp.TriggerSuccessNotification(msg)
	}
	resp.Write(w)
}

func expenseErrorMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrMissingAmount):
		return "Please enter an amount."
	case errors.Is(err, services.ErrMissingCategory), errors.Is(err, core.ErrEmptyCategory):
		return "Please choose a category."
	case errors.Is(err, core.ErrInvalidAmount):
		return "Amount must be a number."
	case errors.Is(err, core.ErrDescriptionTooLong):
		return "Description is too long (max 200 characters)."
	default:
		return "Invalid expense."
	}
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	if resp := RequireMethod(r, http.MethodGet); resp != nil {
		resp.Write(w)
		return
	}
	s.render(w, r, "history.html", buildHistory(sess.Ledger.All()))
}

func (s *Server) handleCharts(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	if resp := RequireMethod(r, http.MethodGet); resp != nil {
		resp.Write(w)
		return
	}
	s.render(w, r, "charts.html", buildChart(s.expenses.Summary(sess)))
}

// categoryJSON carries a null amount for categories whose total is NaN,
// since JSON has no NaN.
type categoryJSON struct {
	Category string   `json:"category"`
	Amount   *float64 `json:"amount"`
	Display  string   `json:"display"`
}

func (s *Server) handleChartsAPI(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	if resp := RequireMethod(r, http.MethodGet); resp != nil {
		resp.Write(w)
		return
	}
	items := s.expenses.Summary(sess)
	out := make([]categoryJSON, 0, len(items))
	for _, it := range items {
		c := categoryJSON{Category: it.Name, Display: core.FormatAmount(it.Amount)}
		if core.IsFinite(it.Amount) {
			amount := it.Amount
			c.Amount = &amount
		}
		out = append(out, c)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{"categories": out}); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to encode chart data", log.FieldError, err)
	}
}
