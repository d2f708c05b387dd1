package apperror

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// formatFieldName turns "start_date" or "startDate" into "Start Date".
func formatFieldName(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r == '_' {
			b.WriteRune(' ')
			continue
		}
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}

	caser := cases.Title(language.English)
	return caser.String(strings.ToLower(b.String()))
}

// FieldViolation is one entry of a validation error's details.
type FieldViolation struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// MapValidationError converts a binding/validator failure into a
// VALIDATION_ERROR naming the first offending field. When more than one
// field failed, all of them are listed in the details.
func MapValidationError(err error) *AppError {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		e := errs[0]

		// e.Field() already returns the json name, see Init.
		humanReadableField := formatFieldName(e.Field())

		var appErr *AppError
		switch e.Tag() {
		case "required":
			appErr = RequiredField(humanReadableField)
		default:
			appErr = InvalidField(humanReadableField)
		}

		if len(errs) > 1 {
			violations := make([]FieldViolation, 0, len(errs))
			for _, fe := range errs {
				violations = append(violations, FieldViolation{Field: fe.Field(), Rule: fe.Tag()})
			}
			appErr = appErr.WithDetails(violations)
		}
		return appErr
	}

	return New(
		CodeValidation,
		"Invalid input",
		http.StatusBadRequest,
	)
}
