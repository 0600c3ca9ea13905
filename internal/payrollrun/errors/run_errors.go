package runerrors

import (
	"go-payops/internal/shared/apperror"
	"net/http"
)

var ErrRunNotFound = apperror.New(
	apperror.CodeNotFound,
	"Payroll run not found",
	http.StatusNotFound,
)
