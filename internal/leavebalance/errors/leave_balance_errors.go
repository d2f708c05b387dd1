package leavebalanceerrors

import (
	"net/http"

	"go-leave/internal/shared/apperror"
)

var (
	ErrInvalidLeaveType = apperror.New(
		apperror.CodeValidation,
		"type must be one of PAID, SICK, RTT, UNPAID, MARRIAGE, PATERNITY, MATERNITY",
		http.StatusBadRequest,
	)
	ErrZeroChange = apperror.New(
		apperror.CodeValidation,
		"change must not be zero",
		http.StatusBadRequest,
	)
	ErrInvalidChangeStep = apperror.New(
		apperror.CodeValidation,
		"change must be a multiple of 0.5",
		http.StatusBadRequest,
	)
	ErrChangeOutOfRange = apperror.New(
		apperror.CodeValidation,
		"change exceeds the allowed range",
		http.StatusBadRequest,
	)
	ErrReasonRequired = apperror.New(
		apperror.CodeValidation,
		"reason is required",
		http.StatusBadRequest,
	)
	ErrInvalidHistoryType = apperror.New(
		apperror.CodeInternalError,
		"unknown balance history type",
		http.StatusInternalServerError,
	)
	ErrNoAnnualAllotment = apperror.New(
		apperror.CodeValidation,
		"company has no annual leave allotment configured",
		http.StatusBadRequest,
	)
	ErrNoMemberships = apperror.New(
		apperror.CodeNotFound,
		"company has no memberships to allocate leave to",
		http.StatusNotFound,
	)
)
