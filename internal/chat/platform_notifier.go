package chat

import (
	"context"

	"go.uber.org/zap"

	"leavehub/internal/shared/apperror"
	"leavehub/internal/user"
)

// Sender pushes text to a chat-platform user addressed by the platform's own
// external id.
type Sender interface {
	Send(ctx context.Context, externalID, text string) error
}

// PlatformNotifier adapts a Sender to the Notifier contract by resolving the
// internal user id to the platform identity through the user directory.
// A recipient that no longer exists is logged and dropped rather than
// retried.
type PlatformNotifier struct {
	users  user.Service
	sender Sender
	logger *zap.Logger
}

func NewPlatformNotifier(users user.Service, sender Sender, logger ...*zap.Logger) *PlatformNotifier {
	l := zap.L().Named("chat.notifier")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("chat.notifier")
	}
	return &PlatformNotifier{users: users, sender: sender, logger: l}
}

func (n *PlatformNotifier) Notify(ctx context.Context, userID, message string) error {
	u, err := n.users.GetByID(ctx, userID)
	if err != nil {
		if apperror.CodeOf(err) == apperror.CodeNotFound {
			n.logger.Warn("notification recipient no longer exists",
				zap.String("user_id", userID),
			)
			return nil
		}
		return err
	}
	return n.sender.Send(ctx, u.ExternalID, message)
}
