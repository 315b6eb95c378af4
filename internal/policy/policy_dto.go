package policy

type UpdatePolicyRequest struct {
	AnnualAllowanceDays  *int    `json:"annual_allowance_days"`
	IsUnlimited          *bool   `json:"is_unlimited"`
	CountsAgainstBalance *bool   `json:"counts_against_balance"`
	EligibilityRule      *string `json:"eligibility_rule"`
	CarryoverAllowed     *bool   `json:"carryover_allowed"`
}

type PolicyResponse struct {
	ID                   string `json:"id"`
	Category             string `json:"category"`
	Name                 string `json:"name"`
	AnnualAllowanceDays  *int   `json:"annual_allowance_days,omitempty"`
	IsUnlimited          bool   `json:"is_unlimited"`
	CountsAgainstBalance bool   `json:"counts_against_balance"`
	EligibilityRule      string `json:"eligibility_rule"`
	CarryoverAllowed     bool   `json:"carryover_allowed"`
}
