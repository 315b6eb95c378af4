package user

import (
	"context"
	"errors"
	"time"

	"leavehub/internal/rbac"
	"leavehub/internal/shared/apperror"
	usererrors "leavehub/internal/user/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	provisionMaxAttempts = 3
	provisionBackoff     = 200 * time.Millisecond
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	GetOrProvision(ctx context.Context, externalID, displayName string) (UserResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	GetByExternalID(ctx context.Context, externalID string) (UserResponse, error)
	GetAll(ctx context.Context) ([]UserResponse, error)
	GetReports(ctx context.Context, managerID string) ([]UserResponse, error)
	Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error)
	ResolveRole(ctx context.Context, id string) (string, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, logger: l}
}

// GetOrProvision resolves a chat-platform user, creating the record on first
// contact. Transient store errors on this path are retried a bounded number
// of times before surfacing; a concurrent provision losing the unique-index
// race falls back to re-reading the winner's row.
func (s *service) GetOrProvision(ctx context.Context, externalID, displayName string) (UserResponse, error) {
	if externalID == "" {
		return UserResponse{}, usererrors.ErrExternalIDRequired
	}

	var lastErr error
	for attempt := 1; attempt <= provisionMaxAttempts; attempt++ {
		u, err := s.repo.FindByExternalID(ctx, externalID)
		if err == nil {
			return mapToResponse(*u), nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			lastErr = err
			s.logger.Warn("provision lookup failed",
				zap.String("external_id", externalID),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			time.Sleep(provisionBackoff * time.Duration(attempt))
			continue
		}

		created := &User{
			ID:          uuid.New(),
			ExternalID:  externalID,
			DisplayName: displayName,
		}
		err = s.repo.Create(ctx, created)
		if err == nil {
			s.logger.Info("user auto-provisioned",
				zap.String("user_id", created.ID.String()),
				zap.String("external_id", externalID),
			)
			return mapToResponse(*created), nil
		}
		if isUniqueViolation(err) {
			// Another request provisioned the same external id first;
			// the winner's row should show up on the next lookup
			lastErr = err
			continue
		}

		lastErr = err
		s.logger.Warn("provision insert failed",
			zap.String("external_id", externalID),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		time.Sleep(provisionBackoff * time.Duration(attempt))
	}

	s.logger.Error("provision exhausted retries",
		zap.String("external_id", externalID),
		zap.Error(lastErr),
	)
	return UserResponse{}, storeError(lastErr)
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
		return UserResponse{}, storeError(err)
	}
	return mapToResponse(*u), nil
}

func (s *service) GetByExternalID(ctx context.Context, externalID string) (UserResponse, error) {
	u, err := s.repo.FindByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
		return UserResponse{}, storeError(err)
	}
	return mapToResponse(*u), nil
}

func (s *service) GetAll(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, storeError(err)
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}
	return resp, nil
}

func (s *service) GetReports(ctx context.Context, managerID string) ([]UserResponse, error) {
	mid, err := uuid.Parse(managerID)
	if err != nil {
		return nil, usererrors.ErrInvalidManagerID
	}

	users, err := s.repo.FindByManager(ctx, mid)
	if err != nil {
		return nil, storeError(err)
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}
	return resp, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
		return UserResponse{}, storeError(err)
	}

	if req.DisplayName != nil {
		u.DisplayName = *req.DisplayName
	}
	if req.ManagerID != nil {
		if *req.ManagerID == "" {
			u.ManagerID = nil
			u.Manager = nil
		} else {
			mid, err := uuid.Parse(*req.ManagerID)
			if err != nil {
				return UserResponse{}, usererrors.ErrInvalidManagerID
			}
			if mid == uid {
				return UserResponse{}, usererrors.ErrSelfManager
			}
			manager, err := s.repo.FindByID(ctx, mid)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return UserResponse{}, usererrors.ErrManagerNotFound
				}
				return UserResponse{}, storeError(err)
			}
			u.ManagerID = &mid
			u.Manager = manager
		}
	}
	if req.IsAdmin != nil {
		u.IsAdmin = *req.IsAdmin
	}
	if req.IsStudent != nil {
		u.IsStudent = *req.IsStudent
	}
	if req.Country != nil {
		u.Country = req.Country
	}

	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.Error("update user persist failed",
			zap.String("user_id", id),
			zap.Error(err),
		)
		return UserResponse{}, storeError(err)
	}

	s.logger.Info("user updated", zap.String("user_id", id))
	return mapToResponse(*u), nil
}

// ResolveRole derives the RBAC role from the user record.
func (s *service) ResolveRole(ctx context.Context, id string) (string, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return "", usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", usererrors.ErrUserNotFound
		}
		return "", storeError(err)
	}
	if u.IsAdmin {
		return rbac.RoleAdmin, nil
	}

	hasReports, err := s.repo.HasReports(ctx, uid)
	if err != nil {
		return "", storeError(err)
	}
	if hasReports {
		return rbac.RoleManager, nil
	}
	return rbac.RoleEmployee, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func storeError(err error) error {
	if err == nil {
		return nil
	}
	return apperror.Store(err)
}

func mapToResponse(u User) UserResponse {
	resp := UserResponse{
		ID:          u.ID.String(),
		ExternalID:  u.ExternalID,
		DisplayName: u.DisplayName,
		IsAdmin:     u.IsAdmin,
		IsStudent:   u.IsStudent,
		Country:     u.Country,
		CreatedAt:   u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if u.ManagerID != nil {
		v := u.ManagerID.String()
		resp.ManagerID = &v
	}
	if u.Manager != nil {
		resp.ManagerName = u.Manager.DisplayName
	}
	return resp
}
