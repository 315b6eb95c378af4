package requesterrors

import (
	"net/http"

	"leavehub/internal/shared/apperror"
)

var (
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidRequestID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid request id",
		http.StatusBadRequest,
	)
	ErrInvalidType = apperror.New(
		apperror.CodeInvalidType,
		"unknown leave category/type combination",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidDateRange,
		"date range is invalid or contains no business days",
		http.StatusBadRequest,
	)
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrNotPending = apperror.New(
		apperror.CodeNotPending,
		"leave request has already been decided",
		http.StatusConflict,
	)
	ErrNotAuthorized = apperror.New(
		apperror.CodeNotAuthorized,
		"you are not allowed to act on this leave request",
		http.StatusForbidden,
	)
	ErrNoApproverAssigned = apperror.New(
		apperror.CodeNoApproverAssigned,
		"no approver is assigned to this leave request",
		http.StatusForbidden,
	)
	ErrInvalidState = apperror.New(
		apperror.CodeInvalidState,
		"leave request cannot be cancelled in its current state",
		http.StatusConflict,
	)

	errBalanceExceeded = apperror.New(
		apperror.CodeBalanceExceeded,
		"requested days exceed the remaining balance",
		http.StatusUnprocessableEntity,
	)
	errOverlapConflict = apperror.New(
		apperror.CodeOverlapConflict,
		"an overlapping leave request already exists",
		http.StatusConflict,
	)
)

type BalanceExceededDetails struct {
	RequestedDays int `json:"requested_days"`
	RemainingDays int `json:"remaining_days"`
	AllowanceDays int `json:"allowance_days"`
	UsedDays      int `json:"used_days"`
}

type ConflictSummary struct {
	ID        string `json:"id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
}

type OverlapConflictDetails struct {
	Conflicts []ConflictSummary `json:"conflicts"`
}

// BalanceExceeded carries the numbers the caller needs to render the refusal.
func BalanceExceeded(requested, remaining, allowance, used int) *apperror.AppError {
	return errBalanceExceeded.WithDetails(BalanceExceededDetails{
		RequestedDays: requested,
		RemainingDays: remaining,
		AllowanceDays: allowance,
		UsedDays:      used,
	})
}

// OverlapConflict carries a summary of the requests blocking the submission.
func OverlapConflict(conflicts []ConflictSummary) *apperror.AppError {
	return errOverlapConflict.WithDetails(OverlapConflictDetails{Conflicts: conflicts})
}
