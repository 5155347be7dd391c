// Package cli holds the bootstrapping shared by cmd/budgetplanner and
// cmd/alert-worker.
package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"budgetplanner/internal/config"
	"budgetplanner/internal/log"
	"budgetplanner/internal/notify"
	"budgetplanner/internal/notify/emailjs"
	"budgetplanner/internal/notify/gmail"
)

// SetupLogger builds the process logger at level and installs it as the
// slog default.
func SetupLogger(level, component string) *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Level = log.ParseLevel(level)
	cfg.Component = component
	logger := log.New(cfg)
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads .env for local development. A missing file is fine.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig exits the process when the environment is invalid.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", log.FieldError, err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// SignalContext is cancelled on SIGINT or SIGTERM.
func SignalContext(logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}

// NewSender builds the alert sender selected by NOTIFIER.
func NewSender(ctx context.Context, cfg *config.Config, logger *log.Logger) (notify.Sender, error) {
	switch cfg.Notifier {
	case config.NotifierEmailJS:
		return emailjs.New(emailjs.Config{
			APIURL:     cfg.EmailJSAPIURL,
			ServiceID:  cfg.EmailJSServiceID,
			TemplateID: cfg.EmailJSTemplateID,
			PublicKey:  cfg.EmailJSPublicKey,
			PrivateKey: cfg.EmailJSPrivateKey,
		}, &http.Client{Timeout: 10 * time.Second}), nil
	case config.NotifierGmail:
		s, err := gmail.New(ctx, gmail.Config{
			CredentialsFile: cfg.GmailCredentialsFile,
			TokenFile:       cfg.GmailTokenFile,
			From:            cfg.GmailSender,
		})
		if err != nil {
			return nil, fmt.Errorf("gmail sender: %w", err)
		}
		return s, nil
	case config.NotifierLog, "":
		return notify.NewLogSender(logger.WithComponent(log.ComponentNotify)), nil
	default:
		return nil, fmt.Errorf("unknown notifier %q", cfg.Notifier)
	}
}
