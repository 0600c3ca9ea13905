package raterrors

import (
	"go-payops/internal/shared/apperror"
	"net/http"
)

var (
	// ErrNoRateOnFile is an expected outcome for employees with no rate
	// history yet, not an infrastructure failure. Callers branch on it.
	ErrNoRateOnFile = apperror.New(
		apperror.CodeNotFound,
		"No rate on file for this employee",
		http.StatusNotFound,
	)

	ErrNonPositiveRate = apperror.New(
		apperror.CodeInvalidInput,
		"Hourly rate must be greater than zero",
		http.StatusBadRequest,
	)

	ErrRateEffectiveDateAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"A rate for this employee and effective date already exists",
		http.StatusConflict,
	)

	ErrEmployeeNotInOrganization = apperror.New(
		apperror.CodeInvalidInput,
		"Employee does not belong to this organization",
		http.StatusBadRequest,
	)
)
