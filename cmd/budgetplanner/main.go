package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"budgetplanner/internal/amqp"
	"budgetplanner/internal/auth"
	"budgetplanner/internal/backend"
	"budgetplanner/internal/budget"
	"budgetplanner/internal/cache"
	"budgetplanner/internal/categorize"
	"budgetplanner/internal/cli"
	"budgetplanner/internal/config"
	apphttp "budgetplanner/internal/http"
	"budgetplanner/internal/ingest"
	"budgetplanner/internal/log"
	"budgetplanner/internal/notify"
	"budgetplanner/internal/services"
	"budgetplanner/internal/session"
	"budgetplanner/internal/worker"
)

const (
	shutdownTimeout   = 30 * time.Second
	cacheSweepEvery   = 10 * time.Minute
	limiterSweepEvery = 5 * time.Minute
	janitorEvery      = time.Hour
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"), log.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, cancel := cli.SignalContext(logger)
	defer cancel()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Budget planner stopped with error", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}

func run(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	caches := cache.NewManager(logger.WithComponent(log.ComponentBackend).Logger)

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return err
	}
	store, err := backend.NewFactory(logger.WithComponent(log.ComponentBackend).Logger, caches).CreateBackend(ctx, backendCfg)
	if err != nil {
		return err
	}
	if store.Cleanup != nil {
		defer func() {
			if err := store.Cleanup(); err != nil {
				logger.Error("Session store cleanup failed", log.FieldError, err)
			}
		}()
	}
	checks := map[string]apphttp.ReadyCheck{"session_store": store.Ready}

	// Alerts go to the queue when AMQP is configured, otherwise straight to
	// the sender. Either way Dispatch never blocks the request.
	var sender notify.Sender
	if cfg.UsesAMQP() {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			return fmt.Errorf("connect to AMQP: %w", err)
		}
		defer client.Close()
		checks["amqp"] = client.Ping
		sender = client
		logger.Info("Budget alerts will be queued", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		sender, err = cli.NewSender(ctx, cfg, logger)
		if err != nil {
			return err
		}
		logger.Info("Budget alerts will be sent in-process", log.FieldNotifier, cfg.Notifier)
	}
	dispatcher := notify.NewAsyncDispatcher(sender, cfg.AlertQueueSize, logger.WithComponent(log.ComponentNotify))

	expenses := services.NewExpenseService(
		budget.NewMonitor(cfg.AlertThreshold),
		dispatcher,
		ingest.NewIngestor(categorize.New()),
		log.NewStructuredLogger(logger.WithComponent(log.ComponentExpense)),
	)

	srv := apphttp.NewServer(":"+cfg.Port, apphttp.Dependencies{
		Logger:         logger,
		Sessions:       session.NewManager(store.Store, cfg.SessionTTL),
		Auth:           auth.NewClient(cfg.AuthAPIURL, cfg.AuthTimeout),
		Expenses:       expenses,
		ReadyChecks:    checks,
		MaxUploadBytes: cfg.MaxUploadBytes,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(gctx, shutdownTimeout) })
	g.Go(func() error { return dispatcher.Run(gctx) })
	g.Go(func() error { return caches.Run(gctx, cacheSweepEvery) })
	g.Go(func() error { return srv.RateLimiter().Run(gctx, limiterSweepEvery) })
	if store.Pruner != nil {
		janitor := worker.NewSessionJanitor(store.Pruner, janitorEvery)
		g.Go(func() error { return janitor.Run(gctx) })
	}

	logger.Info("Starting budget planner",
		"port", cfg.Port,
		"session_backend", cfg.SessionBackend,
		"alert_threshold", cfg.AlertThreshold)
	return g.Wait()
}
