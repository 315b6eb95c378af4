package auth

import (
	"time"

	"github.com/google/uuid"

	"leavehub/internal/user"
)

// Credential stores the local login for a user. Chat-provisioned users have
// no credential until they register through the web surface.
type Credential struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID       uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	User         user.User `gorm:"foreignKey:UserID"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Credential) TableName() string {
	return "credentials"
}
