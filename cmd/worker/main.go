package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cmlabs-hris/hrms-backend-go/internal/config"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/messaging/kafka"
	"github.com/cmlabs-hris/hrms-backend-go/internal/repository/postgresql"
	outboxService "github.com/cmlabs-hris/hrms-backend-go/internal/service/outbox"
)

func main() {
	if err := run(); err != nil {
		slog.Error("worker stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	publisher := kafka.NewPublisher(kafka.NewWriter(cfg.Kafka.Brokers), cfg.Kafka.TopicPrefix)
	defer func() {
		if err := publisher.Close(); err != nil {
			slog.Error("close kafka writer", "error", err)
		}
	}()

	relay := outboxService.NewRelay(
		postgresql.NewTxManager(db),
		postgresql.NewOutboxRepository(db),
		publisher,
		cfg.Outbox.BatchSize,
	)

	scheduler := cron.NewScheduler()
	relay.RegisterJobs(scheduler, cfg.Outbox.PollInterval)
	scheduler.Start(ctx)

	slog.Info("worker started", "brokers", cfg.Kafka.Brokers, "poll_interval", cfg.Outbox.PollInterval)
	<-ctx.Done()
	scheduler.Stop()
	return nil
}
