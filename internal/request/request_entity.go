package request

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusDenied    = "DENIED"
	StatusCancelled = "CANCELLED"
)

// LeaveRequest rows are never deleted; cancellation is a status, not removal.
// DaysCount is computed once at creation and never changes.
type LeaveRequest struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index:idx_requests_user_dates"`

	Category  string    `gorm:"type:varchar(30);not null"`
	Type      string    `gorm:"type:varchar(50);not null"`
	StartDate time.Time `gorm:"type:date;not null;index:idx_requests_user_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_requests_user_dates"`
	DaysCount int       `gorm:"type:int;not null"`
	Reason    string    `gorm:"type:text"`

	Status     string     `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_requests_status"`
	ApproverID *uuid.UUID `gorm:"type:uuid;index:idx_requests_approver"`
	DecidedBy  *uuid.UUID `gorm:"type:uuid"`
	DecidedAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ActiveStatuses are the states that block an overlapping submission and
// count as "open" for a user's calendar.
var ActiveStatuses = []string{StatusPending, StatusApproved}
