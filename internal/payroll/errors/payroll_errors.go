package payrollerrors

import (
	"go-payops/internal/shared/apperror"
	"net/http"
)

var (
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"period_start must be before or equal period_end",
		http.StatusBadRequest,
	)

	ErrRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"Payroll record not found",
		http.StatusNotFound,
	)

	ErrNotDraft = apperror.New(
		apperror.CodeInvalidState,
		"Only draft payroll records can be approved",
		http.StatusConflict,
	)

	ErrRecordLocked = apperror.New(
		apperror.CodeInvalidState,
		"Payroll record is locked and can no longer change",
		http.StatusConflict,
	)

	ErrTaskAlreadyProcessed = apperror.New(
		apperror.CodeConflict,
		"One or more tasks were already consumed by another payroll record",
		http.StatusConflict,
	)
)
