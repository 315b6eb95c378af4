package request

import "leavehub/internal/policy"

// Remaining computes the days left for one leave type. Unlimited types have
// no bound, reported as nil. A type that is capped but does not count
// against balance shows the full allowance no matter the usage.
func Remaining(p policy.LeaveTypePolicy, used int) *int {
	if p.IsUnlimited {
		return nil
	}

	allowance := 0
	if p.AnnualAllowanceDays != nil {
		allowance = *p.AnnualAllowanceDays
	}

	if !p.CountsAgainstBalance {
		return &allowance
	}

	remaining := allowance - used
	if remaining < 0 {
		remaining = 0
	}
	return &remaining
}
