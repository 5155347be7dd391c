package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"budgetplanner/internal/amqp"
	"budgetplanner/internal/cli"
	"budgetplanner/internal/config"
	"budgetplanner/internal/log"
	"budgetplanner/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"), log.ComponentWorker)
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, cancel := cli.SignalContext(logger)
	defer cancel()

	logger.Info("Starting alert worker", log.FieldNotifier, cfg.Notifier, "queue", cfg.AMQPQueue)
	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Alert worker stopped with error", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Worker shutdown complete")
}

func run(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	if !cfg.UsesAMQP() {
		return errors.New("AMQP_URL is required for the alert worker")
	}

	sender, err := cli.NewSender(ctx, cfg, logger)
	if err != nil {
		return err
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		return fmt.Errorf("connect to AMQP: %w", err)
	}
	defer client.Close()

	alerts := worker.NewAlertWorker(sender)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := client.ConsumeBudgetAlerts(gctx, alerts.HandleAlertMessage)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	return g.Wait()
}
