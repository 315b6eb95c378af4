package request

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"leavehub/internal/events"
	"leavehub/internal/messaging/kafka"
	"leavehub/internal/policy"
	requesterrors "leavehub/internal/request/errors"
	"leavehub/internal/shared/apperror"
	"leavehub/internal/shared/contextutil"
	"leavehub/internal/shared/workweek"
	"leavehub/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=request_service.go -destination=mock/request_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, actorID string, req SubmitRequest) (RequestResponse, error)
	Approve(ctx context.Context, actorID, id string) (RequestResponse, error)
	Deny(ctx context.Context, actorID, id string) (RequestResponse, error)
	Cancel(ctx context.Context, actorID, id string) (RequestResponse, error)
	AdminCancel(ctx context.Context, actorID, id string) (RequestResponse, error)
	GetByID(ctx context.Context, actorID, id string, canReadAll bool) (RequestResponse, error)
	List(ctx context.Context, actorID string, canReadAll bool, statusFilter string) ([]RequestResponse, error)
	PendingApprovals(ctx context.Context, actorID string) ([]RequestResponse, error)
	Balance(ctx context.Context, actorID string) ([]BalanceResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	users    user.Repository
	policies policy.Service
	outbox   kafka.OutboxRepository
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, users user.Repository, policies policy.Service, logger ...*zap.Logger) Service {
	l := zap.L().Named("request.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("request.service")
	}
	return &service{db: db, repo: repo, users: users, policies: policies, logger: l}
}

// NewServiceWithOutbox additionally records a lifecycle event in the outbox
// table inside the same transaction as every state change.
func NewServiceWithOutbox(db *sql.DB, repo Repository, users user.Repository, policies policy.Service, outbox kafka.OutboxRepository, logger ...*zap.Logger) Service {
	s := NewService(db, repo, users, policies, logger...).(*service)
	s.outbox = outbox
	return s
}

// Submit validates a new leave request against the policy store, the
// requester's balance, eligibility, and the calendar, in that order. All
// checks run before the single insert; a failed check leaves no record.
func (s *service) Submit(ctx context.Context, actorID string, req SubmitRequest) (RequestResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("submit leave request",
		zap.String("actor_id", actorID),
		zap.String("category", req.Category),
		zap.String("type", req.Type),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return RequestResponse{}, requesterrors.ErrInvalidActorID
	}

	actor, err := s.users.FindByID(ctx, actorUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RequestResponse{}, requesterrors.ErrNotAuthorized
		}
		return RequestResponse{}, apperror.Store(err)
	}

	pol, err := s.policies.Get(ctx, req.Category, req.Type)
	if err != nil {
		if apperror.CodeOf(err) == apperror.CodeNotFound {
			return RequestResponse{}, requesterrors.ErrInvalidType
		}
		return RequestResponse{}, err
	}

	days, err := workweek.Count(req.StartDate, req.EndDate)
	if err != nil || days <= 0 {
		return RequestResponse{}, requesterrors.ErrInvalidDateRange
	}
	startDate, _ := time.Parse(workweek.DateLayout, req.StartDate)
	endDate, _ := time.Parse(workweek.DateLayout, req.EndDate)

	if err := policy.CheckEligibility(pol, *actor); err != nil {
		log.Warn("submit rejected: ineligible",
			zap.String("actor_id", actorID),
			zap.String("rule", pol.EligibilityRule),
		)
		return RequestResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("submit begin tx failed", zap.Error(err))
		return RequestResponse{}, apperror.Store(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// Unlimited types skip the allowance check entirely.
	if !pol.IsUnlimited && pol.CountsAgainstBalance {
		used, err := qtx.SumApprovedDays(ctx, actorUUID, req.Category, req.Type)
		if err != nil {
			return RequestResponse{}, apperror.Store(err)
		}
		allowance := 0
		if pol.AnnualAllowanceDays != nil {
			allowance = *pol.AnnualAllowanceDays
		}
		remaining := allowance - used
		if remaining < 0 {
			remaining = 0
		}
		if days > remaining {
			log.Warn("submit rejected: balance exceeded",
				zap.String("actor_id", actorID),
				zap.Int("requested", days),
				zap.Int("remaining", remaining),
			)
			return RequestResponse{}, requesterrors.BalanceExceeded(days, remaining, allowance, used)
		}
	}

	conflicts, err := qtx.FindOverlapping(ctx, actorUUID, startDate, endDate, ActiveStatuses)
	if err != nil {
		return RequestResponse{}, apperror.Store(err)
	}
	if len(conflicts) > 0 {
		summaries := make([]requesterrors.ConflictSummary, len(conflicts))
		for i, c := range conflicts {
			summaries[i] = requesterrors.ConflictSummary{
				ID:        c.ID.String(),
				StartDate: c.StartDate.Format(workweek.DateLayout),
				EndDate:   c.EndDate.Format(workweek.DateLayout),
				Status:    c.Status,
			}
		}
		log.Warn("submit rejected: overlap",
			zap.String("actor_id", actorID),
			zap.Int("conflicts", len(conflicts)),
		)
		return RequestResponse{}, requesterrors.OverlapConflict(summaries)
	}

	l := &LeaveRequest{
		ID:         uuid.New(),
		UserID:     actorUUID,
		Category:   req.Category,
		Type:       req.Type,
		StartDate:  startDate,
		EndDate:    endDate,
		DaysCount:  days,
		Reason:     req.Reason,
		Status:     StatusPending,
		ApproverID: actor.ManagerID,
	}

	if err := qtx.Create(ctx, l); err != nil {
		log.Error("submit persist failed", zap.Error(err))
		return RequestResponse{}, apperror.Store(err)
	}

	if err := s.enqueueEvent(ctx, tx, events.TypeRequestSubmitted, actorID, l); err != nil {
		log.Error("submit enqueue event failed", zap.Error(err))
		return RequestResponse{}, apperror.Store(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("submit commit failed", zap.Error(err))
		return RequestResponse{}, apperror.Store(err)
	}

	log.Info("leave request submitted",
		zap.String("request_id", l.ID.String()),
		zap.String("user_id", actorID),
		zap.Int("days_count", days),
	)
	return mapToResponse(*l), nil
}

func (s *service) Approve(ctx context.Context, actorID, id string) (RequestResponse, error) {
	return s.decide(ctx, actorID, id, StatusApproved, events.TypeRequestApproved)
}

func (s *service) Deny(ctx context.Context, actorID, id string) (RequestResponse, error) {
	return s.decide(ctx, actorID, id, StatusDenied, events.TypeRequestDenied)
}

// decide performs the pending -> approved/denied transition. Only the
// assigned approver or an admin may decide; a request without an approver
// can only be decided by an admin.
func (s *service) decide(ctx context.Context, actorID, id, targetStatus, eventType string) (RequestResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return RequestResponse{}, requesterrors.ErrInvalidActorID
	}
	requestUUID, err := uuid.Parse(id)
	if err != nil {
		return RequestResponse{}, requesterrors.ErrInvalidRequestID
	}

	actor, err := s.users.FindByID(ctx, actorUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RequestResponse{}, requesterrors.ErrNotAuthorized
		}
		return RequestResponse{}, apperror.Store(err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("decide begin tx failed", zap.Error(err))
		return RequestResponse{}, apperror.Store(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, requestUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RequestResponse{}, requesterrors.ErrRequestNotFound
		}
		return RequestResponse{}, apperror.Store(err)
	}

	if l.Status != StatusPending {
		log.Warn("decide rejected: not pending",
			zap.String("request_id", id),
			zap.String("status", l.Status),
		)
		return RequestResponse{}, requesterrors.ErrNotPending
	}

	if !actor.IsAdmin {
		if l.ApproverID == nil {
			return RequestResponse{}, requesterrors.ErrNoApproverAssigned
		}
		if *l.ApproverID != actorUUID {
			log.Warn("decide rejected: not authorized",
				zap.String("request_id", id),
				zap.String("actor_id", actorID),
			)
			return RequestResponse{}, requesterrors.ErrNotAuthorized
		}
	}

	now := time.Now().UTC()
	l.Status = targetStatus
	l.DecidedBy = &actorUUID
	l.DecidedAt = &now

	if err := qtx.Update(ctx, l); err != nil {
		log.Error("decide persist failed", zap.String("request_id", id), zap.Error(err))
		return RequestResponse{}, apperror.Store(err)
	}
	if err := s.enqueueEvent(ctx, tx, eventType, actorID, l); err != nil {
		log.Error("decide enqueue event failed", zap.Error(err))
		return RequestResponse{}, apperror.Store(err)
	}
	if err := tx.Commit(); err != nil {
		log.Error("decide commit failed", zap.String("request_id", id), zap.Error(err))
		return RequestResponse{}, apperror.Store(err)
	}

	log.Info("leave request decided",
		zap.String("request_id", id),
		zap.String("status", targetStatus),
		zap.String("decided_by", actorID),
	)
	return mapToResponse(*l), nil
}

// Cancel is the owner's operation. Admins are deliberately rejected here;
// privileged cancellation goes through AdminCancel.
func (s *service) Cancel(ctx context.Context, actorID, id string) (RequestResponse, error) {
	return s.cancel(ctx, actorID, id, false)
}

func (s *service) AdminCancel(ctx context.Context, actorID, id string) (RequestResponse, error) {
	return s.cancel(ctx, actorID, id, true)
}

func (s *service) cancel(ctx context.Context, actorID, id string, privileged bool) (RequestResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return RequestResponse{}, requesterrors.ErrInvalidActorID
	}
	requestUUID, err := uuid.Parse(id)
	if err != nil {
		return RequestResponse{}, requesterrors.ErrInvalidRequestID
	}

	if privileged {
		actor, err := s.users.FindByID(ctx, actorUUID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return RequestResponse{}, requesterrors.ErrNotAuthorized
			}
			return RequestResponse{}, apperror.Store(err)
		}
		if !actor.IsAdmin {
			return RequestResponse{}, requesterrors.ErrNotAuthorized
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("cancel begin tx failed", zap.Error(err))
		return RequestResponse{}, apperror.Store(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, requestUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RequestResponse{}, requesterrors.ErrRequestNotFound
		}
		return RequestResponse{}, apperror.Store(err)
	}

	if !privileged && l.UserID != actorUUID {
		log.Warn("cancel rejected: not owner",
			zap.String("request_id", id),
			zap.String("actor_id", actorID),
		)
		return RequestResponse{}, requesterrors.ErrNotAuthorized
	}

	if l.Status != StatusPending && l.Status != StatusApproved {
		log.Warn("cancel rejected: terminal state",
			zap.String("request_id", id),
			zap.String("status", l.Status),
		)
		return RequestResponse{}, requesterrors.ErrInvalidState
	}

	now := time.Now().UTC()
	l.Status = StatusCancelled
	l.DecidedBy = &actorUUID
	l.DecidedAt = &now

	if err := qtx.Update(ctx, l); err != nil {
		log.Error("cancel persist failed", zap.String("request_id", id), zap.Error(err))
		return RequestResponse{}, apperror.Store(err)
	}
	if err := s.enqueueEvent(ctx, tx, events.TypeRequestCancelled, actorID, l); err != nil {
		log.Error("cancel enqueue event failed", zap.Error(err))
		return RequestResponse{}, apperror.Store(err)
	}
	if err := tx.Commit(); err != nil {
		log.Error("cancel commit failed", zap.String("request_id", id), zap.Error(err))
		return RequestResponse{}, apperror.Store(err)
	}

	log.Info("leave request cancelled",
		zap.String("request_id", id),
		zap.String("cancelled_by", actorID),
		zap.Bool("privileged", privileged),
	)
	return mapToResponse(*l), nil
}

func (s *service) GetByID(ctx context.Context, actorID, id string, canReadAll bool) (RequestResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return RequestResponse{}, requesterrors.ErrInvalidActorID
	}
	requestUUID, err := uuid.Parse(id)
	if err != nil {
		return RequestResponse{}, requesterrors.ErrInvalidRequestID
	}

	l, err := s.repo.FindByID(ctx, requestUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RequestResponse{}, requesterrors.ErrRequestNotFound
		}
		return RequestResponse{}, apperror.Store(err)
	}

	isOwner := l.UserID == actorUUID
	isApprover := l.ApproverID != nil && *l.ApproverID == actorUUID
	if !isOwner && !isApprover && !canReadAll {
		return RequestResponse{}, requesterrors.ErrNotAuthorized
	}

	return mapToResponse(*l), nil
}

// List returns the caller's own requests. Admin callers (canReadAll) see
// every pending request in the system.
func (s *service) List(ctx context.Context, actorID string, canReadAll bool, statusFilter string) ([]RequestResponse, error) {
	if canReadAll {
		status := statusFilter
		if status == "" {
			status = StatusPending
		}
		requests, err := s.repo.FindByStatus(ctx, status)
		if err != nil {
			return nil, apperror.Store(err)
		}
		return mapToListResponse(requests), nil
	}

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return nil, requesterrors.ErrInvalidActorID
	}

	var statuses []string
	if statusFilter != "" {
		statuses = []string{statusFilter}
	}
	requests, err := s.repo.FindByUser(ctx, actorUUID, statuses)
	if err != nil {
		return nil, apperror.Store(err)
	}
	return mapToListResponse(requests), nil
}

func (s *service) PendingApprovals(ctx context.Context, actorID string) ([]RequestResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return nil, requesterrors.ErrInvalidActorID
	}

	requests, err := s.repo.FindByApprover(ctx, actorUUID, StatusPending)
	if err != nil {
		return nil, apperror.Store(err)
	}
	return mapToListResponse(requests), nil
}

// Balance reports, per leave type, the approved usage and what is left.
func (s *service) Balance(ctx context.Context, actorID string) ([]BalanceResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return nil, requesterrors.ErrInvalidActorID
	}

	policies, err := s.policies.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]BalanceResponse, 0, len(policies))
	for _, p := range policies {
		used, err := s.repo.SumApprovedDays(ctx, actorUUID, p.Category, p.Name)
		if err != nil {
			return nil, apperror.Store(err)
		}

		entry := BalanceResponse{
			Category:      p.Category,
			Type:          p.Name,
			Unlimited:     p.IsUnlimited,
			AllowanceDays: p.AnnualAllowanceDays,
			UsedDays:      used,
		}
		entry.RemainingDays = Remaining(policy.LeaveTypePolicy{
			AnnualAllowanceDays:  p.AnnualAllowanceDays,
			IsUnlimited:          p.IsUnlimited,
			CountsAgainstBalance: p.CountsAgainstBalance,
		}, used)
		resp = append(resp, entry)
	}
	return resp, nil
}

// enqueueEvent records a lifecycle event in the outbox within the caller's
// transaction. A service built without an outbox skips this silently.
func (s *service) enqueueEvent(ctx context.Context, tx *sql.Tx, eventType, actorID string, l *LeaveRequest) error {
	if s.outbox == nil {
		return nil
	}

	ev := events.LeaveRequestEvent{
		EventType:  eventType,
		RequestID:  l.ID.String(),
		UserID:     l.UserID.String(),
		ActorID:    actorID,
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

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_request",
		AggregateID:   l.ID.String(),
		EventType:     eventType,
		Topic:         events.LeaveRequestTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func mapToResponse(l LeaveRequest) RequestResponse {
	resp := RequestResponse{
		ID:        l.ID.String(),
		UserID:    l.UserID.String(),
		Category:  l.Category,
		Type:      l.Type,
		StartDate: l.StartDate.Format(workweek.DateLayout),
		EndDate:   l.EndDate.Format(workweek.DateLayout),
		DaysCount: l.DaysCount,
		Reason:    l.Reason,
		Status:    l.Status,
		CreatedAt: l.CreatedAt.Format(time.RFC3339),
	}
	if l.ApproverID != nil {
		v := l.ApproverID.String()
		resp.ApproverID = &v
	}
	if l.DecidedBy != nil {
		v := l.DecidedBy.String()
		resp.DecidedBy = &v
	}
	if l.DecidedAt != nil {
		v := l.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	return resp
}

func mapToListResponse(requests []LeaveRequest) []RequestResponse {
	resp := make([]RequestResponse, len(requests))
	for i, l := range requests {
		resp[i] = mapToResponse(l)
	}
	return resp
}
