package payouterrors

import (
	"go-payops/internal/shared/apperror"
	"net/http"
)

var (
	ErrPayoutNotFound = apperror.New(
		apperror.CodeNotFound,
		"Payout not found",
		http.StatusNotFound,
	)

	ErrPayoutNotPending = apperror.New(
		apperror.CodeInvalidState,
		"Payout has already been settled",
		http.StatusConflict,
	)
)
