package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"budgetplanner/internal/auth"
	"budgetplanner/internal/core"
	"budgetplanner/internal/log"
	"budgetplanner/internal/session"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.started).Round(time.Second).String(),
	})
}

// handleReady checks templates and every configured dependency.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status, code := "ready", http.StatusOK
	checks := map[string]string{"templates": "ok"}
	if s.templates == nil {
		checks["templates"] = "failed: templates not loaded"
		status, code = "not_ready", http.StatusServiceUnavailable
	}
	for name, check := range s.checks {
		if err := check(ctx); err != nil {
			checks[name] = "failed: " + err.Error()
			status, code = "not_ready", http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":          status,
		"timestamp":       time.Now().Format(time.RFC3339),
		"checks":          checks,
		"active_sessions": s.sessions.Active(),
		"rate_limited":    s.limiter.ActiveClients(),
	})
}

type dashboardData struct {
	Email      string
	Categories []string
	Budgets    budgetsData
	History    []historyRow
	Chart      chartView
	Threshold  int
}

// handleIndex shows the dashboard for a live session, otherwise the login
// page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodGet); resp != nil {
		resp.Write(w)
		return
	}
	sess, err := s.currentSession(r)
	if err != nil {
		s.render(w, r, "login.html", struct{ Signup bool }{Signup: r.URL.Query().Has("signup")})
		return
	}
	s.render(w, r, "dashboard.html", dashboardData{
		Email:      sess.Recipient(),
		Categories: core.EntryCategories,
		Budgets:    budgetsData{Rows: buildBudgetRows(sess.Budgets())},
		History:    buildHistory(sess.Ledger.All()),
		Chart:      buildChart(s.expenses.Summary(sess)),
		Threshold:  int(s.expenses.Threshold()*100 + 0.5),
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	s.authenticate(w, r, log.OpLogin, s.auth.Login)
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	s.authenticate(w, r, log.OpSignup, s.auth.Signup)
}

// authenticate forwards credentials and starts a session on success. Signup
// logs the new user straight in.
func (s *Server) authenticate(w http.ResponseWriter, r *http.Request, op string,
	call func(ctx context.Context, username, password string) (auth.Identity, error)) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		BadRequestError("Invalid request format").Write(w)
		return
	}
	username, password := p.Get("username"), p.Raw("password")
	if username == "" || password == "" {
		UnprocessableEntityError("Username and password are required.").Write(w)
		return
	}

	ctx := r.Context()
	identity, err := call(ctx, username, password)
	if err != nil {
		var authErr *auth.Error
		if errors.As(err, &authErr) {
			log.FromContext(ctx).WarnContext(ctx, "Authentication rejected",
				log.FieldComponent, log.ComponentAuth,
				log.FieldOperation, op,
				log.FieldStatusCode, authErr.StatusCode)
			UnauthorizedError(authErr.Message()).Write(w)
			return
		}
		s.structured.LogError(ctx, "Authentication backend failed", err, log.ComponentAuth, op, nil)
		InternalServerError(auth.UserMessage(err)).Write(w)
		return
	}

	email := identity.Username
	if email == "" {
		email = username
	}
	expiresAt, _ := auth.TokenExpiry(identity.Token)
	sess, err := s.sessions.Start(ctx, email, identity.Token, expiresAt)
	if err != nil {
		s.structured.LogError(ctx, "Failed to start session", err, log.ComponentSession, op, nil)
		InternalServerError(auth.SomethingWrong).Write(w)
		return
	}
	setSessionCookie(w, r, sess)
	log.FromContext(ctx).InfoContext(ctx, "User authenticated",
		log.FieldComponent, log.ComponentAuth,
		log.FieldOperation, op,
		log.FieldSessionID, sess.ID)
	redirectHome(w, r)
}

// handleLogout clears the stored identity and the session's working state.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		if err := s.sessions.End(r.Context(), c.Value); err != nil && !errors.Is(err, session.ErrNotFound) {
			s.structured.LogError(r.Context(), "Failed to end session", err, log.ComponentSession, log.OpLogout, nil)
		}
	}
	clearSessionCookie(w, r)
	redirectHome(w, r)
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("HX-Request") == "true" {
		NewHTMXResponse().Redirect("/").Write(w)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
