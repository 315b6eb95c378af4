package policy

import (
	"context"
	"errors"

	policyerrors "leavehub/internal/policy/errors"
	"leavehub/internal/shared/apperror"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

//go:generate mockgen -source=policy_service.go -destination=mock/policy_service_mock.go -package=mock
type Service interface {
	Get(ctx context.Context, category, name string) (LeaveTypePolicy, error)
	List(ctx context.Context) ([]PolicyResponse, error)
	Patch(ctx context.Context, category, name string, req UpdatePolicyRequest) (PolicyResponse, error)
}

type service struct {
	repo   Repository
	group  singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("policy.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("policy.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Get(ctx context.Context, category, name string) (LeaveTypePolicy, error) {
	p, err := s.repo.FindByCategoryAndName(ctx, category, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveTypePolicy{}, policyerrors.ErrPolicyNotFound
		}
		return LeaveTypePolicy{}, apperror.Store(err)
	}
	return *p, nil
}

// List coalesces concurrent reads; the policy table is small, static
// reference data hit by every balance render.
func (s *service) List(ctx context.Context) ([]PolicyResponse, error) {
	v, err, _ := s.group.Do("policies", func() (any, error) {
		return s.repo.FindAll(ctx)
	})
	if err != nil {
		return nil, apperror.Store(err)
	}

	policies := v.([]LeaveTypePolicy)
	resp := make([]PolicyResponse, len(policies))
	for i, p := range policies {
		resp[i] = mapToResponse(p)
	}
	return resp, nil
}

func (s *service) Patch(ctx context.Context, category, name string, req UpdatePolicyRequest) (PolicyResponse, error) {
	p, err := s.repo.FindByCategoryAndName(ctx, category, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PolicyResponse{}, policyerrors.ErrPolicyNotFound
		}
		return PolicyResponse{}, apperror.Store(err)
	}

	if req.AnnualAllowanceDays != nil {
		p.AnnualAllowanceDays = req.AnnualAllowanceDays
	}
	if req.IsUnlimited != nil {
		p.IsUnlimited = *req.IsUnlimited
	}
	if req.CountsAgainstBalance != nil {
		p.CountsAgainstBalance = *req.CountsAgainstBalance
	}
	if req.EligibilityRule != nil {
		if !KnownEligibilityRule(*req.EligibilityRule) {
			return PolicyResponse{}, policyerrors.ErrUnknownEligibilityRule
		}
		p.EligibilityRule = *req.EligibilityRule
	}
	if req.CarryoverAllowed != nil {
		p.CarryoverAllowed = *req.CarryoverAllowed
	}

	if !p.IsUnlimited && p.AnnualAllowanceDays == nil {
		return PolicyResponse{}, policyerrors.ErrAllowanceRequired
	}

	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error("patch policy persist failed",
			zap.String("category", category),
			zap.String("name", name),
			zap.Error(err),
		)
		return PolicyResponse{}, apperror.Store(err)
	}

	s.logger.Info("policy updated",
		zap.String("category", category),
		zap.String("name", name),
	)
	return mapToResponse(*p), nil
}

func mapToResponse(p LeaveTypePolicy) PolicyResponse {
	return PolicyResponse{
		ID:                   p.ID.String(),
		Category:             p.Category,
		Name:                 p.Name,
		AnnualAllowanceDays:  p.AnnualAllowanceDays,
		IsUnlimited:          p.IsUnlimited,
		CountsAgainstBalance: p.CountsAgainstBalance,
		EligibilityRule:      p.EligibilityRule,
		CarryoverAllowed:     p.CarryoverAllowed,
	}
}
