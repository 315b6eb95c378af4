package auth

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_repo.go -destination=mock/auth_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, c *Credential) error
	FindByEmail(ctx context.Context, email string) (*Credential, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Credential, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *Credential) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Credential, error) {
	var c Credential
	err := r.db.WithContext(ctx).
		Preload("User").
		First(&c, "email = ?", email).Error
	return &c, err
}

func (r *repository) FindByUserID(ctx context.Context, userID uuid.UUID) (*Credential, error) {
	var c Credential
	err := r.db.WithContext(ctx).First(&c, "user_id = ?", userID).Error
	return &c, err
}
