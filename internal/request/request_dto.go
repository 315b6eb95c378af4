package request

type SubmitRequest struct {
	Category  string `json:"category" binding:"required"`
	Type      string `json:"type" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason"`
}

type RequestResponse struct {
	ID         string  `json:"id"`
	UserID     string  `json:"user_id"`
	Category   string  `json:"category"`
	Type       string  `json:"type"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	DaysCount  int     `json:"days_count"`
	Reason     string  `json:"reason,omitempty"`
	Status     string  `json:"status"`
	ApproverID *string `json:"approver_id,omitempty"`
	DecidedBy  *string `json:"decided_by,omitempty"`
	DecidedAt  *string `json:"decided_at,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

type BalanceResponse struct {
	Category      string `json:"category"`
	Type          string `json:"type"`
	Unlimited     bool   `json:"unlimited"`
	AllowanceDays *int   `json:"allowance_days,omitempty"`
	UsedDays      int    `json:"used_days"`
	RemainingDays *int   `json:"remaining_days,omitempty"`
}
