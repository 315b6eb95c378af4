package policy

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=policy_repo.go -destination=mock/policy_repo_mock.go -package=mock
type Repository interface {
	FindByCategoryAndName(ctx context.Context, category, name string) (*LeaveTypePolicy, error)
	FindAll(ctx context.Context) ([]LeaveTypePolicy, error)
	Update(ctx context.Context, p *LeaveTypePolicy) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByCategoryAndName(ctx context.Context, category, name string) (*LeaveTypePolicy, error) {
	var p LeaveTypePolicy
	err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Where("name = ?", name).
		First(&p).Error
	return &p, err
}

func (r *repository) FindAll(ctx context.Context) ([]LeaveTypePolicy, error) {
	var policies []LeaveTypePolicy
	err := r.db.WithContext(ctx).
		Order("category ASC, name ASC").
		Find(&policies).Error
	return policies, err
}

func (r *repository) Update(ctx context.Context, p *LeaveTypePolicy) error {
	return r.db.WithContext(ctx).Save(p).Error
}
