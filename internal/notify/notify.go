// Package notify delivers budget alerts. Delivery is best-effort: failures
// are logged and never reach the code that raised the alert.
package notify

import (
	"context"
	"fmt"

	"budgetplanner/internal/budget"
	"budgetplanner/internal/core"
	"budgetplanner/internal/log"
)

// Sender performs one delivery attempt.
type Sender interface {
	Send(ctx context.Context, event budget.AlertEvent) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, event budget.AlertEvent) error

func (f SenderFunc) Send(ctx context.Context, event budget.AlertEvent) error {
	return f(ctx, event)
}

// Dispatcher hands an alert off without blocking the caller.
type Dispatcher interface {
	Dispatch(ctx context.Context, event budget.AlertEvent)
}

// LogSender writes alerts to the log instead of sending them anywhere.
type LogSender struct {
	logger *log.Logger
}

func NewLogSender(logger *log.Logger) *LogSender {
	return &LogSender{logger: logger.WithComponent(log.ComponentNotify)}
}

func (s *LogSender) Send(ctx context.Context, event budget.AlertEvent) error {
	s.logger.InfoContext(ctx, "Budget alert", log.NewFields().
		WithAlert(event.Recipient, event.Category, event.Total, event.Ceiling).ToSlice()...)
	return nil
}

// Params returns the template parameters shared by every email sender.
func Params(event budget.AlertEvent) map[string]string {
	return map[string]string{
		"user_email": event.Recipient,
		"category":   event.Category,
		"amount":     formatNumber(event.Total),
		"budget":     formatNumber(event.Ceiling),
	}
}

// Subject is the email subject line for event.
func Subject(event budget.AlertEvent) string {
	return fmt.Sprintf("Budget alert: %s", event.Category)
}

// Body is the plain-text email body for event.
func Body(event budget.AlertEvent) string {
	return fmt.Sprintf("You have spent %s of your %s budget for %s.\n",
		core.FormatAmount(event.Total), core.FormatAmount(event.Ceiling), event.Category)
}

func formatNumber(f float64) string {
	return fmt.Sprintf("%g", f)
}
