package events

import "time"

const LeaveRequestTopic = "pto.request.lifecycle.v1"

const (
	TypeRequestSubmitted = "request_submitted"
	TypeRequestApproved  = "request_approved"
	TypeRequestDenied    = "request_denied"
	TypeRequestCancelled = "request_cancelled"
	TypeReminderDue      = "reminder_due"
)

type LeaveRequestEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id"`
	UserID     string    `json:"user_id"`
	ApproverID string    `json:"approver_id,omitempty"`
	ActorID    string    `json:"actor_id,omitempty"`
	Category   string    `json:"category"`
	Type       string    `json:"type"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	DaysCount  int       `json:"days_count"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}
