package app

import (
	"context"
	"fmt"
	"time"

	"leavehub/internal/messaging/kafka"
	"leavehub/internal/messaging/kafka/producer"
	"leavehub/internal/notify"
	"leavehub/internal/request"
	"leavehub/internal/shared/apperror"
	"leavehub/internal/shared/connection"

	"go.uber.org/zap"
)

const outboxPollInterval = 3 * time.Second

// RunWorker hosts the background halves of the system: the outbox drainer
// that publishes lifecycle events to kafka, and the daily reminder sweep.
func RunWorker(ctx context.Context, logger *zap.Logger) error {
	apperror.Init()
	cfg := LoadConfig()

	db, sqlDB, _, err := BuildStores(cfg)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	writer, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, connectRetries)
	if err != nil {
		return fmt.Errorf("connect kafka: %w", err)
	}
	defer writer.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)
	requestRepo := request.NewRepository(db)
	sweeper := notify.NewSweeper(requestRepo, outboxRepo, logger)

	go sweeper.Run(ctx)
	producer.ProcessOutboxEvents(ctx, outboxRepo, writer, logger, outboxPollInterval)
	return nil
}
