package notify

import (
	"context"
	"sync"
	"time"

	"budgetplanner/internal/budget"
	"budgetplanner/internal/log"
)

// DefaultSendTimeout bounds a single delivery attempt.
const DefaultSendTimeout = 10 * time.Second

// AsyncDispatcher queues alerts on a bounded channel and delivers them from
// a single goroutine. A full queue drops the alert.
type AsyncDispatcher struct {
	sender  Sender
	queue   chan budget.AlertEvent
	timeout time.Duration
	logger  *log.Logger

	mu      sync.RWMutex
	stopped bool
}

func NewAsyncDispatcher(sender Sender, size int, logger *log.Logger) *AsyncDispatcher {
	if size < 1 {
		size = 1
	}
	return &AsyncDispatcher{
		sender:  sender,
		queue:   make(chan budget.AlertEvent, size),
		timeout: DefaultSendTimeout,
		logger:  logger.WithComponent(log.ComponentNotify),
	}
}

// Dispatch enqueues event. It never blocks.
func (d *AsyncDispatcher) Dispatch(ctx context.Context, event budget.AlertEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		d.logger.WarnContext(ctx, "Alert dropped, dispatcher stopped", log.FieldCategory, event.Category)
		return
	}
	select {
	case d.queue <- event:
	default:
		d.logger.WarnContext(ctx, "Alert dropped, queue full", log.FieldCategory, event.Category)
	}
}

// Run delivers queued alerts until ctx is cancelled, then drains what is
// already queued before returning.
func (d *AsyncDispatcher) Run(ctx context.Context) error {
	for {
		select {
		case event := <-d.queue:
			d.deliver(event)
		case <-ctx.Done():
			d.mu.Lock()
			d.stopped = true
			d.mu.Unlock()
			for {
				select {
				case event := <-d.queue:
					d.deliver(event)
				default:
					return nil
				}
			}
		}
	}
}

func (d *AsyncDispatcher) deliver(event budget.AlertEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	fields := log.NewFields().WithAlert(event.Recipient, event.Category, event.Total, event.Ceiling)
	if err := d.sender.Send(ctx, event); err != nil {
		d.logger.ErrorContext(ctx, "Failed to send budget alert", fields.WithError(err).ToSlice()...)
		return
	}
	d.logger.InfoContext(ctx, "Budget alert sent", fields.ToSlice()...)
}
