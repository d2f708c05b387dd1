package companyerrors

import (
	"net/http"

	"go-leave/internal/shared/apperror"
)

var (
	ErrCompanyNotFound = apperror.New(
		apperror.CodeNotFound,
		"Company not found",
		http.StatusNotFound,
	)

	ErrMissingRequiredFields = apperror.New(
		apperror.CodeValidation,
		"At least one field must be provided",
		http.StatusBadRequest,
	)
)
