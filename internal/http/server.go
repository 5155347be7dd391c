package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"budgetplanner/internal/auth"
	"budgetplanner/internal/core"
	"budgetplanner/internal/log"
	"budgetplanner/internal/middleware/ratelimit"
	"budgetplanner/internal/middleware/security"
	"budgetplanner/internal/middleware/trace"
	"budgetplanner/internal/services"
	"budgetplanner/internal/session"
	appweb "budgetplanner/web"
)

// DefaultMaxUploadBytes bounds statement uploads when none is configured.
const DefaultMaxUploadBytes = 10 << 20

// Authenticator forwards credentials to the authentication backend.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (auth.Identity, error)
	Signup(ctx context.Context, username, password string) (auth.Identity, error)
}

// ReadyCheck reports whether a dependency can serve requests.
type ReadyCheck func(ctx context.Context) error

// Dependencies are the collaborators a Server needs. Logger, Sessions,
// Auth and Expenses are required.
type Dependencies struct {
	Logger         *log.Logger
	Sessions       *session.Manager
	Auth           Authenticator
	Expenses       *services.ExpenseService
	ReadyChecks    map[string]ReadyCheck
	MaxUploadBytes int64
	RateLimit      ratelimit.Config
}

type Server struct {
	http.Server
	templates  *template.Template
	logger     *log.Logger
	structured *log.StructuredLogger
	sessions   *session.Manager
	auth       Authenticator
	expenses   *services.ExpenseService
	checks     map[string]ReadyCheck
	maxUpload  int64
	limiter    *ratelimit.Limiter
	detector   *security.Detector
	tracer     *trace.Middleware
	started    time.Time
}

var templateFuncs = template.FuncMap{
	"money":     core.FormatAmount,
	"elementID": elementID,
}

// NewServer parses the embedded templates and wires routes and middleware.
// A template parse failure is logged; pages then answer 500 and /readyz
// reports not ready.
func NewServer(addr string, deps Dependencies) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	logger = logger.WithComponent(log.ComponentHTTP)
	if deps.MaxUploadBytes <= 0 {
		deps.MaxUploadBytes = DefaultMaxUploadBytes
	}

	s := &Server{
		logger:     logger,
		structured: log.NewStructuredLogger(logger),
		sessions:   deps.Sessions,
		auth:       deps.Auth,
		expenses:   deps.Expenses,
		checks:     deps.ReadyChecks,
		maxUpload:  deps.MaxUploadBytes,
		limiter:    ratelimit.NewLimiter(deps.RateLimit),
		detector:   security.NewDetector(),
		started:    time.Now(),
	}
	s.tracer = trace.NewMiddleware(s.detector.ExtractClientIP)

	t, err := template.New("").Funcs(templateFuncs).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		logger.Warn("Failed parsing templates", log.FieldError, err)
	} else {
		s.templates = t
	}

	mux := http.NewServeMux()
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("GET /static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		logger.Warn("Failed to mount embedded static FS", log.FieldError, err)
	}

	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.HandleFunc("/{$}", s.handleIndex)
	mux.HandleFunc("/login", s.handleLogin)
	mux.HandleFunc("/signup", s.handleSignup)
	mux.HandleFunc("/logout", s.handleLogout)
	mux.HandleFunc("/budgets", s.requireSession(s.handleBudgets))
	mux.HandleFunc("/expenses", s.requireSession(s.handleAddExpense))
	mux.HandleFunc("/history", s.requireSession(s.handleHistory))
	mux.HandleFunc("/charts", s.requireSession(s.handleCharts))
	mux.HandleFunc("/api/charts/categories", s.requireSession(s.handleChartsAPI))
	mux.HandleFunc("/statements/upload", s.requireSession(s.handleUploadStatement))
	mux.HandleFunc("/statements/confirm", s.requireSession(s.handleConfirmStatement))

	var handler http.Handler = mux
	handler = s.limiter.Middleware(s.detector.ExtractClientIP, s.onRateLimit)(handler)
	handler = s.detector.Middleware(handler)
	handler = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(handler)
	handler = s.tracer.Middleware(handler)
	handler = log.Middleware(logger)(handler)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// RateLimiter exposes the POST limiter so its idle clients can be swept.
func (s *Server) RateLimiter() *ratelimit.Limiter {
	return s.limiter
}

// Run serves until ctx is cancelled, then shuts down within timeout.
func (s *Server) Run(ctx context.Context, timeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", "addr", s.Addr)
		if err := s.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	s.logger.Info("Shutting down HTTP server", log.FieldOperation, log.OpShutdown)
	return s.Shutdown(shutdownCtx)
}

func (s *Server) onRateLimit(w http.ResponseWriter, r *http.Request) {
	log.FromContext(r.Context()).WarnContext(r.Context(), "Rate limit exceeded",
		log.FieldComponent, log.ComponentRateLimit,
		log.FieldClientIP, s.detector.ExtractClientIP(r),
		log.FieldPath, r.URL.Path)
	ErrorResponse(http.StatusTooManyRequests, "Too many requests. Please try again later.").Write(w)
}

// render executes a named template into w with status 200, or answers 500.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	if s.templates == nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Templates not loaded", log.FieldPath, r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.structured.LogError(r.Context(), "Template execution failed", err, log.ComponentTemplate, log.OpRender,
			log.LogFields{"template": name})
	}
}
