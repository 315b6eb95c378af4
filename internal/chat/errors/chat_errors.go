package chaterrors

import (
	"net/http"

	"leavehub/internal/shared/apperror"
)

var (
	ErrUnknownCommand = apperror.New(
		apperror.CodeInvalidInput,
		"unknown command",
		http.StatusBadRequest,
	)
	ErrBadArguments = apperror.New(
		apperror.CodeInvalidInput,
		"command arguments are malformed",
		http.StatusBadRequest,
	)
	ErrBadWebhookSecret = apperror.New(
		apperror.CodeUnauthorized,
		"webhook secret mismatch",
		http.StatusUnauthorized,
	)
)
