package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ExternalID  string     `gorm:"type:varchar(64);uniqueIndex;not null"`
	DisplayName string     `gorm:"type:varchar(255);not null"`
	ManagerID   *uuid.UUID `gorm:"type:uuid;index:idx_users_manager"`
	Manager     *User      `gorm:"foreignKey:ManagerID"`
	IsAdmin     bool       `gorm:"not null;default:false"`
	IsStudent   bool       `gorm:"not null;default:false"`
	Country     *string    `gorm:"type:varchar(64)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
