package membershiperrors

import (
	"net/http"

	"go-leave/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeValidation,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeUnauthorized,
		"invalid authenticated user",
		http.StatusUnauthorized,
	)
	ErrNotCompanyMember = apperror.New(
		apperror.CodeForbidden,
		"you are not a member of this company",
		http.StatusForbidden,
	)
	ErrInsufficientRole = apperror.New(
		apperror.CodeForbidden,
		"your role does not allow this action",
		http.StatusForbidden,
	)
	ErrNotMembershipOwner = apperror.New(
		apperror.CodeForbidden,
		"this membership belongs to another user",
		http.StatusForbidden,
	)
	ErrMembershipNotFound = apperror.New(
		apperror.CodeNotFound,
		"membership not found",
		http.StatusNotFound,
	)
	ErrInvalidRole = apperror.New(
		apperror.CodeValidation,
		"role must be EMPLOYEE or MANAGER",
		http.StatusBadRequest,
	)
	ErrLastManager = apperror.New(
		apperror.CodeConflict,
		"a company must keep at least one manager",
		http.StatusConflict,
	)
)
