package chat

import "context"

// Notifier delivers one-way messages to a user addressed by internal user id,
// the same id requests and events carry. Implementations talking to a chat
// platform resolve it to the platform identity first; see PlatformNotifier.
//
//go:generate mockgen -source=notifier.go -destination=mock/notifier_mock.go -package=mock
type Notifier interface {
	Notify(ctx context.Context, userID, message string) error
}
