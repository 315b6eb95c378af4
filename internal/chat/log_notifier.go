package chat

import (
	"context"

	"go.uber.org/zap"
)

// LogNotifier writes deliveries to the log instead of a chat platform.
// It stands in wherever no bridge is configured.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger ...*zap.Logger) *LogNotifier {
	l := zap.L().Named("chat.notifier")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("chat.notifier")
	}
	return &LogNotifier{logger: l}
}

func (n *LogNotifier) Notify(_ context.Context, userID, message string) error {
	n.logger.Info("notification",
		zap.String("user_id", userID),
		zap.String("message", message),
	)
	return nil
}
