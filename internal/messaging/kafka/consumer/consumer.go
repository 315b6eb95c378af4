package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"leavehub/internal/chat"
	"leavehub/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeLeaveLifecycle drains the lifecycle topic and fans each event out
// to the notifier. Messages are committed only after delivery so a crashed
// consumer replays rather than drops; the notifier must tolerate duplicates.
func ConsumeLeaveLifecycle(ctx context.Context, reader *kafkago.Reader, notifier chat.Notifier, logger *zap.Logger) error {
	log := logger.Named("consumer.lifecycle")
	log.Info("lifecycle consumer started", zap.String("topic", events.LeaveRequestTopic))

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				log.Info("lifecycle consumer stopped")
				return nil
			}
			log.Error("fetch message failed", zap.Error(err))
			return err
		}

		var event events.LeaveRequestEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Warn("skipping malformed event",
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			if err := reader.CommitMessages(ctx, msg); err != nil {
				log.Error("commit failed", zap.Error(err))
			}
			continue
		}

		if err := dispatch(ctx, notifier, event); err != nil {
			log.Error("notification delivery failed",
				zap.String("event_type", event.EventType),
				zap.String("request_id", event.RequestID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit failed", zap.Error(err))
		}
	}
}

func dispatch(ctx context.Context, notifier chat.Notifier, event events.LeaveRequestEvent) error {
	switch event.EventType {
	case events.TypeRequestSubmitted:
		if event.ApproverID == "" {
			return nil
		}
		return notifier.Notify(ctx, event.ApproverID,
			fmt.Sprintf("New leave request %s: %s/%s, %s to %s (%d days). Reply 'pto approve %s' or 'pto deny %s'.",
				event.RequestID, event.Category, event.Type, event.StartDate, event.EndDate, event.DaysCount,
				event.RequestID, event.RequestID))

	case events.TypeRequestApproved:
		return notifier.Notify(ctx, event.UserID,
			fmt.Sprintf("Your leave request %s (%s to %s) was approved.", event.RequestID, event.StartDate, event.EndDate))

	case events.TypeRequestDenied:
		return notifier.Notify(ctx, event.UserID,
			fmt.Sprintf("Your leave request %s (%s to %s) was denied.", event.RequestID, event.StartDate, event.EndDate))

	case events.TypeRequestCancelled:
		// the owner cancelling their own request needs no echo
		if event.ActorID == event.UserID {
			if event.ApproverID == "" {
				return nil
			}
			return notifier.Notify(ctx, event.ApproverID,
				fmt.Sprintf("Leave request %s (%s to %s) was cancelled by the requester.", event.RequestID, event.StartDate, event.EndDate))
		}
		return notifier.Notify(ctx, event.UserID,
			fmt.Sprintf("Your leave request %s (%s to %s) was cancelled.", event.RequestID, event.StartDate, event.EndDate))

	case events.TypeReminderDue:
		if event.Status == "PENDING" {
			if event.ApproverID == "" {
				return nil
			}
			return notifier.Notify(ctx, event.ApproverID,
				fmt.Sprintf("Reminder: leave request %s starting %s is still waiting on your decision.", event.RequestID, event.StartDate))
		}
		return notifier.Notify(ctx, event.UserID,
			fmt.Sprintf("Reminder: your leave starts %s.", event.StartDate))
	}

	// unknown event types flow through silently; newer producers may emit
	// types this consumer predates
	return nil
}
