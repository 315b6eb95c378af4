package policy

import (
	policyerrors "leavehub/internal/policy/errors"
	"leavehub/internal/user"
)

const (
	RuleNone         = "NONE"
	RuleStudentsOnly = "STUDENTS_ONLY"
)

// Predicate reports whether the user may take the leave type; ok == false
// comes with a human-readable reason for the requester.
type Predicate func(u user.User) (ok bool, reason string)

// eligibilityRules is an open registry: adding a rule is a new entry here
// plus its enum value, with no call-site changes.
var eligibilityRules = map[string]Predicate{
	RuleNone: func(user.User) (bool, string) {
		return true, ""
	},
	RuleStudentsOnly: func(u user.User) (bool, string) {
		if !u.IsStudent {
			return false, "this leave type is reserved for students"
		}
		return true, ""
	},
}

// RegisterEligibilityRule adds or replaces a predicate. Exposed for future
// rules; the built-in set covers NONE and STUDENTS_ONLY.
func RegisterEligibilityRule(rule string, pred Predicate) {
	eligibilityRules[rule] = pred
}

// KnownEligibilityRule reports whether the enum value has a predicate.
func KnownEligibilityRule(rule string) bool {
	_, ok := eligibilityRules[rule]
	return ok
}

// CheckEligibility evaluates the policy's rule against the user record.
func CheckEligibility(p LeaveTypePolicy, u user.User) error {
	pred, ok := eligibilityRules[p.EligibilityRule]
	if !ok {
		return policyerrors.ErrUnknownEligibilityRule
	}
	if allowed, reason := pred(u); !allowed {
		return policyerrors.Ineligible(reason)
	}
	return nil
}
