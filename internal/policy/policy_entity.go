package policy

import (
	"time"

	"github.com/google/uuid"
)

// LeaveTypePolicy is static reference data keyed by (category, name).
type LeaveTypePolicy struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Category string    `gorm:"type:varchar(30);not null;uniqueIndex:idx_policies_category_name"`
	Name     string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_policies_category_name"`

	AnnualAllowanceDays  *int   `gorm:"type:int"`
	IsUnlimited          bool   `gorm:"not null;default:false"`
	CountsAgainstBalance bool   `gorm:"not null;default:true"`
	EligibilityRule      string `gorm:"type:varchar(30);not null;default:'NONE'"`
	CarryoverAllowed     bool   `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
