package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInvalidState = "INVALID_STATE"

	// PTO policy violations (4xx)
	CodeInvalidType        = "INVALID_TYPE"
	CodeInvalidDateRange   = "INVALID_DATE_RANGE"
	CodeIneligible         = "INELIGIBLE"
	CodeBalanceExceeded    = "BALANCE_EXCEEDED"
	CodeOverlapConflict    = "OVERLAP_CONFLICT"
	CodeNotPending         = "NOT_PENDING"
	CodeNotAuthorized      = "NOT_AUTHORIZED"
	CodeNoApproverAssigned = "NO_APPROVER_ASSIGNED"

	// Server errors (5xx)
	CodeStoreError         = "STORE_ERROR"
	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
