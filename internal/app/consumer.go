package app

import (
	"context"

	"leavehub/internal/chat"
	"leavehub/internal/events"
	"leavehub/internal/messaging/kafka/consumer"
	"leavehub/internal/shared/apperror"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer reads the lifecycle topic and delivers notifications. The
// notifier is the log implementation until a chat bridge is configured.
func RunConsumer(ctx context.Context, logger *zap.Logger) error {
	apperror.Init()
	cfg := LoadConfig()

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: []string{cfg.KafkaBroker},
		GroupID: "leavehub-notifications",
		Topic:   events.LeaveRequestTopic,
	})
	defer reader.Close()

	notifier := chat.NewLogNotifier(logger)
	return consumer.ConsumeLeaveLifecycle(ctx, reader, notifier, logger)
}
