package payrollerrors

import (
	"net/http"

	"swiftpay/internal/shared/apperror"
)

var (
	ErrPayrollRunNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll run not found",
		http.StatusNotFound,
	)
	ErrLineItemNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll line item not found",
		http.StatusNotFound,
	)
	ErrInvalidRunID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payroll run id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"period start must be before or equal period end",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payroll status",
		http.StatusBadRequest,
	)
	ErrTransitionNotAllowed = apperror.New(
		apperror.CodeInvalidState,
		"status transition not allowed",
		http.StatusConflict,
	)
	ErrRunNotDeletable = apperror.New(
		apperror.CodeInvalidState,
		"only draft payroll runs can be deleted",
		http.StatusConflict,
	)
)
