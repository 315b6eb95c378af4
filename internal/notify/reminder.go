package notify

import (
	"context"
	"encoding/json"
	"time"

	"leavehub/internal/events"
	"leavehub/internal/messaging/kafka"
	"leavehub/internal/request"
	"leavehub/internal/shared/workweek"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const checkInterval = 1 * time.Hour

// Sweeper emits reminder events for leave starting on the current day:
// approved requests remind the requester, still-pending ones nudge the
// approver. One sweep per calendar day, no matter how often the worker
// restarts within it.
type Sweeper struct {
	repo    request.Repository
	outbox  kafka.OutboxRepository
	logger  *zap.Logger
	lastDay string
}

func NewSweeper(repo request.Repository, outbox kafka.OutboxRepository, logger ...*zap.Logger) *Sweeper {
	l := zap.L().Named("notify.sweeper")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notify.sweeper")
	}
	return &Sweeper{repo: repo, outbox: outbox, logger: l}
}

func (s *Sweeper) Run(ctx context.Context) {
	s.logger.Info("reminder sweeper started")

	ticker := time.NewTicker(checkInterval)
	defer ticker.Stop()

	s.tick(ctx, time.Now().UTC())
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("reminder sweeper stopped")
			return
		case now := <-ticker.C:
			s.tick(ctx, now.UTC())
		}
	}
}

func (s *Sweeper) tick(ctx context.Context, now time.Time) {
	day := now.Format(workweek.DateLayout)
	if day == s.lastDay {
		return
	}
	if err := s.Sweep(ctx, now); err != nil {
		s.logger.Error("reminder sweep failed", zap.Error(err))
		return
	}
	s.lastDay = day
}

// Sweep enqueues reminder events for every request starting on the given
// day. Failures leave lastDay untouched so the next tick retries.
func (s *Sweeper) Sweep(ctx context.Context, now time.Time) error {
	day, err := time.Parse(workweek.DateLayout, now.Format(workweek.DateLayout))
	if err != nil {
		return err
	}

	count := 0
	for _, status := range []string{request.StatusApproved, request.StatusPending} {
		due, err := s.repo.FindByStartDate(ctx, day, status)
		if err != nil {
			return err
		}
		for _, l := range due {
			if err := s.enqueueReminder(ctx, l); err != nil {
				return err
			}
			count++
		}
	}

	s.logger.Info("reminder sweep completed",
		zap.String("day", day.Format(workweek.DateLayout)),
		zap.Int("reminders", count),
	)
	return nil
}

func (s *Sweeper) enqueueReminder(ctx context.Context, l request.LeaveRequest) error {
	ev := events.LeaveRequestEvent{
		EventType:  events.TypeReminderDue,
		RequestID:  l.ID.String(),
		UserID:     l.UserID.String(),
		Category:   l.Category,
		Type:       l.Type,
		StartDate:  l.StartDate.Format(workweek.DateLayout),
		EndDate:    l.EndDate.Format(workweek.DateLayout),
		DaysCount:  l.DaysCount,
		Status:     l.Status,
		OccurredAt: time.Now().UTC(),
	}
	if l.ApproverID != nil {
		ev.ApproverID = l.ApproverID.String()
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	return s.outbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		AggregateType: "leave_request",
		AggregateID:   l.ID.String(),
		EventType:     events.TypeReminderDue,
		Topic:         events.LeaveRequestTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}
