// Package worker holds the background jobs: delivering queued budget
// alerts and pruning expired session identities.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"budgetplanner/internal/amqp"
	"budgetplanner/internal/notify"
)

// AlertWorker delivers budget alert messages consumed from the queue.
type AlertWorker struct {
	sender notify.Sender
}

func NewAlertWorker(sender notify.Sender) *AlertWorker {
	return &AlertWorker{sender: sender}
}

// HandleAlertMessage sends one alert. An error makes the consumer drop the
// message; there is no retry.
func (w *AlertWorker) HandleAlertMessage(ctx context.Context, msg *amqp.BudgetAlertMessage) error {
	if strings.TrimSpace(msg.Recipient) == "" {
		return errors.New("alert has no recipient")
	}

	slog.InfoContext(ctx, "Processing budget alert",
		"category", msg.Category,
		"total", msg.Total,
		"ceiling", msg.Ceiling,
		"queued_at", msg.Timestamp)

	if err := w.sender.Send(ctx, msg.Event()); err != nil {
		return fmt.Errorf("send alert for %s: %w", msg.Category, err)
	}
	return nil
}
