package http

import (
	"errors"
	"net/http"
	"time"

	"budgetplanner/internal/log"
	"budgetplanner/internal/session"
)

const sessionCookie = "budgetplanner_session"

// currentSession resolves the cookie to a live session.
func (s *Server) currentSession(r *http.Request) (*session.Session, error) {
	c, err := r.Cookie(sessionCookie)
	if err != nil || c.Value == "" {
		return nil, session.ErrNotFound
	}
	return s.sessions.Get(r.Context(), c.Value)
}

// requireSession answers 401 with an HX-Redirect to the login page when the
// request carries no live session.
func (s *Server) requireSession(next func(http.ResponseWriter, *http.Request, *session.Session)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.currentSession(r)
		if err != nil {
			if !errors.Is(err, session.ErrNotFound) {
				s.structured.LogError(r.Context(), "Session lookup failed", err, log.ComponentSession, "lookup", nil)
			}
			clearSessionCookie(w, r)
			UnauthorizedError("Please log in.").Redirect("/").Write(w)
			return
		}
		ctx := log.WithLogger(r.Context(), log.FromContext(r.Context()).With(log.FieldSessionID, sess.ID))
		next(w, r.WithContext(ctx), sess)
	}
}

func setSessionCookie(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sess.ID,
		Path:     "/",
		Expires:  sess.Identity.ExpiresAt,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}
