package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgetplanner/internal/config"
	"budgetplanner/internal/notify"
	"budgetplanner/internal/notify/emailjs"
)

func TestNewSender(t *testing.T) {
	logger := SetupLogger("error", "test")
	ctx := context.Background()

	s, err := NewSender(ctx, &config.Config{Notifier: config.NotifierLog}, logger)
	require.NoError(t, err)
	assert.IsType(t, &notify.LogSender{}, s)

	s, err = NewSender(ctx, &config.Config{Notifier: config.NotifierEmailJS, EmailJSServiceID: "svc"}, logger)
	require.NoError(t, err)
	assert.IsType(t, &emailjs.Sender{}, s)

	_, err = NewSender(ctx, &config.Config{Notifier: config.NotifierGmail, GmailCredentialsFile: "/nonexistent.json"}, logger)
	assert.Error(t, err)

	_, err = NewSender(ctx, &config.Config{Notifier: "pigeon"}, logger)
	assert.Error(t, err)
}

func TestSignalContextCancel(t *testing.T) {
	ctx, cancel := SignalContext(SetupLogger("error", "test"))
	cancel()
	<-ctx.Done()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}
