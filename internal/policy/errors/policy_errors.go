package policyerrors

import (
	"fmt"
	"net/http"

	"leavehub/internal/shared/apperror"
)

var (
	ErrPolicyNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave type policy not found",
		http.StatusNotFound,
	)
	ErrUnknownEligibilityRule = apperror.New(
		apperror.CodeInvalidInput,
		"unknown eligibility rule",
		http.StatusBadRequest,
	)
	ErrAllowanceRequired = apperror.New(
		apperror.CodeInvalidInput,
		"annual_allowance_days is required unless the type is unlimited",
		http.StatusBadRequest,
	)
)

// Ineligible carries the human-readable reason the predicate produced.
func Ineligible(reason string) *apperror.AppError {
	return apperror.New(
		apperror.CodeIneligible,
		fmt.Sprintf("not eligible for this leave type: %s", reason),
		http.StatusForbidden,
	)
}
