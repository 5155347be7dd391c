package log

import (
	"context"
	"log/slog"
	"net/http"
)

type ContextKey string

const LoggerContextKey ContextKey = "logger"

// Middleware stores logger in every request context.
func Middleware(logger *Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithLogger(r.Context(), logger)))
		})
	}
}

// WithLogger returns a context carrying logger.
func WithLogger(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, LoggerContextKey, logger)
}

// FromContext returns the request logger, or one over slog.Default.
func FromContext(ctx context.Context) *Logger {
	if logger, ok := ctx.Value(LoggerContextKey).(*Logger); ok {
		return logger
	}
	return &Logger{Logger: slog.Default(), component: "unknown"}
}

// RequestIDMiddleware enriches the context logger with the request id.
func RequestIDMiddleware(extractRequestID func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := FromContext(r.Context()).With(FieldRequestID, extractRequestID(r))
			next.ServeHTTP(w, r.WithContext(WithLogger(r.Context(), logger)))
		})
	}
}

// StructuredLogger emits the application's recurring log events.
type StructuredLogger struct {
	logger *Logger
}

func NewStructuredLogger(logger *Logger) *StructuredLogger {
	return &StructuredLogger{logger: logger}
}

// LogHTTPEnd logs a finished request at a level matching its status.
func (sl *StructuredLogger) LogHTTPEnd(ctx context.Context, r *http.Request, statusCode int, durationMs int64, clientIP string) {
	level := slog.LevelInfo
	if statusCode >= 500 {
		level = slog.LevelError
	} else if statusCode >= 400 {
		level = slog.LevelWarn
	}
	fields := NewFields().
		WithHTTPRequest(r.Method, r.URL.Path, r.URL.RawQuery, r.Header.Get("User-Agent")).
		WithHTTPResponse(statusCode, durationMs).
		WithClientIP(clientIP).
		WithComponent(ComponentHTTP)
	sl.logger.Logger.Log(ctx, level, "HTTP request completed", fields.ToSlice()...)
}

func (sl *StructuredLogger) LogExpenseAdded(ctx context.Context, desc string, amount float64, category string, total float64) {
	fields := NewFields().
		WithExpense(desc, amount, category).
		WithOperation(OpAppend).
		WithComponent(ComponentExpense)
	fields[FieldTotal] = total
	sl.logger.Logger.InfoContext(ctx, "Expense added", fields.ToSlice()...)
}

func (sl *StructuredLogger) LogBudgetAlert(ctx context.Context, recipient, category string, total, ceiling float64) {
	fields := NewFields().
		WithAlert(recipient, category, total, ceiling).
		WithOperation(OpAlert).
		WithComponent(ComponentBudget)
	sl.logger.Logger.WarnContext(ctx, "Budget threshold reached", fields.ToSlice()...)
}

func (sl *StructuredLogger) LogStatementParsed(ctx context.Context, filename, format string, rows, nanRows int) {
	fields := NewFields().
		WithStatement(filename, format, rows, nanRows).
		WithOperation(OpParse).
		WithComponent(ComponentIngest)
	level := slog.LevelInfo
	if nanRows > 0 {
		level = slog.LevelWarn
	}
	sl.logger.Logger.Log(ctx, level, "Statement parsed", fields.ToSlice()...)
}

func (sl *StructuredLogger) LogStatementImported(ctx context.Context, filename, format string, rows, nanRows int) {
	fields := NewFields().
		WithStatement(filename, format, rows, nanRows).
		WithOperation(OpImport).
		WithComponent(ComponentIngest)
	sl.logger.Logger.InfoContext(ctx, "Statement imported", fields.ToSlice()...)
}

func (sl *StructuredLogger) LogBudgetsSaved(ctx context.Context, count, hints int) {
	fields := NewFields().
		WithOperation(OpBudgets).
		WithComponent(ComponentBudget)
	fields[FieldCount] = count
	fields[FieldHints] = hints
	sl.logger.Logger.InfoContext(ctx, "Budgets saved", fields.ToSlice()...)
}

// LogError logs err with its component and operation.
func (sl *StructuredLogger) LogError(ctx context.Context, msg string, err error, component, operation string, fields LogFields) {
	if fields == nil {
		fields = NewFields()
	}
	fields.WithError(err).WithOperation(operation).WithComponent(component)
	sl.logger.Logger.ErrorContext(ctx, msg, fields.ToSlice()...)
}
