package leaveerrors

import (
	"net/http"

	"go-leave/internal/shared/apperror"
)

var (
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeValidation,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeValidation,
		"startDate must be before or equal to endDate",
		http.StatusBadRequest,
	)
	ErrLeaveTooLong = apperror.New(
		apperror.CodeValidation,
		"a leave cannot span more than 365 days",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveType = apperror.New(
		apperror.CodeValidation,
		"type must be one of PAID, SICK, RTT, UNPAID, MARRIAGE, PATERNITY, MATERNITY",
		http.StatusBadRequest,
	)
	ErrInvalidHalfDayPeriod = apperror.New(
		apperror.CodeValidation,
		"halfDayPeriod must be MORNING or AFTERNOON",
		http.StatusBadRequest,
	)
	ErrHalfDaySpansDays = apperror.New(
		apperror.CodeValidation,
		"a half-day leave must start and end on the same day",
		http.StatusBadRequest,
	)
	ErrInvalidReviewStatus = apperror.New(
		apperror.CodeValidation,
		"status must be APPROVED or REJECTED",
		http.StatusBadRequest,
	)
	ErrInvalidStatusFilter = apperror.New(
		apperror.CodeValidation,
		"status filter must be PENDING, APPROVED or REJECTED",
		http.StatusBadRequest,
	)
	ErrMissingRequiredFields = apperror.New(
		apperror.CodeValidation,
		"at least one field must be provided",
		http.StatusBadRequest,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave not found",
		http.StatusNotFound,
	)
	ErrLeaveOverlap = apperror.New(
		apperror.CodeConflict,
		"leave overlaps an existing request",
		http.StatusConflict,
	)
	ErrLeaveNotPending = apperror.New(
		apperror.CodeConflict,
		"only pending leaves can be changed",
		http.StatusConflict,
	)
)
