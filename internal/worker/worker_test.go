package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgetplanner/internal/amqp"
	"budgetplanner/internal/budget"
	"budgetplanner/internal/notify"
)

func TestHandleAlertMessage(t *testing.T) {
	var got budget.AlertEvent
	w := NewAlertWorker(notify.SenderFunc(func(_ context.Context, e budget.AlertEvent) error {
		got = e
		return nil
	}))

	msg := &amqp.BudgetAlertMessage{Recipient: "a@b.c", Category: "Bills", Total: 95, Ceiling: 100, Timestamp: time.Now()}
	require.NoError(t, w.HandleAlertMessage(context.Background(), msg))
	assert.Equal(t, budget.AlertEvent{Recipient: "a@b.c", Category: "Bills", Total: 95, Ceiling: 100}, got)
}

func TestHandleAlertMessageErrors(t *testing.T) {
	failing := NewAlertWorker(notify.SenderFunc(func(context.Context, budget.AlertEvent) error {
		return errors.New("quota exceeded")
	}))
	err := failing.HandleAlertMessage(context.Background(), &amqp.BudgetAlertMessage{Recipient: "a@b.c", Category: "Bills"})
	assert.ErrorContains(t, err, "quota exceeded")

	err = failing.HandleAlertMessage(context.Background(), &amqp.BudgetAlertMessage{Recipient: " ", Category: "Bills"})
	assert.ErrorContains(t, err, "no recipient")
}

type countingDeleter struct {
	calls atomic.Int32
	err   error
}

func (c *countingDeleter) DeleteExpired(context.Context) (int64, error) {
	c.calls.Add(1)
	return 2, c.err
}

func TestSessionJanitor(t *testing.T) {
	d := &countingDeleter{}
	j := NewSessionJanitor(d, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- j.Run(ctx) }()

	require.Eventually(t, func() bool { return d.calls.Load() >= 2 }, time.Second, time.Millisecond)
	cancel()
	assert.NoError(t, <-done)
}

func TestSessionJanitorSurvivesErrors(t *testing.T) {
	d := &countingDeleter{err: errors.New("locked")}
	j := NewSessionJanitor(d, 0)
	assert.Equal(t, time.Hour, j.interval)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, j.Run(ctx))
	assert.Equal(t, int32(1), d.calls.Load())
}
