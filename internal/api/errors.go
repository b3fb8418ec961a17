package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/shop-api/internal/api/shared"
	"github.com/phrazzld/shop-api/internal/domain"
	"github.com/phrazzld/shop-api/internal/redact"
	"github.com/phrazzld/shop-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type.
func MapErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Conflict errors
	case store.IsDuplicateError(err):
		return http.StatusConflict

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the client-facing message for err. Client
// errors describe what was wrong with the request; server errors carry the
// redacted underlying message behind defaultMsg.
func GetSafeErrorMessage(err error, defaultMsg string) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var vErrs validator.ValidationErrors
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErrs):
		return SanitizeValidationError(err)
	case errors.As(err, &vErr):
		return vErr.Error()
	case errors.Is(err, ErrMalformedBody):
		return "Invalid request format"

	case errors.Is(err, store.ErrProductNameExists):
		return "Product with this name already exists"
	case store.IsDuplicateError(err):
		return "Resource already exists"

	case errors.Is(err, store.ErrProductNotFound):
		return "Product not found"
	case errors.Is(err, store.ErrOrderNotFound):
		return "Order not found"
	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"
	case errors.Is(err, store.ErrTodoNotFound):
		return "Todo not found"
	case store.IsNotFoundError(err):
		return "Resource not found"

	case errors.Is(err, domain.ErrValidation), errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"
	}

	if defaultMsg == "" {
		defaultMsg = "An unexpected error occurred"
	}
	return fmt.Sprintf("%s: %s", defaultMsg, redact.Error(err))
}

// HandleAPIError maps err to a status code and message and writes the error
// envelope, logging the full (redacted) error.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	status := MapErrorToStatusCode(err)
	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err, defaultMsg), err)
}

// SanitizeValidationError turns validator errors into a short message that
// names the offending fields.
func SanitizeValidationError(err error) string {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) || len(vErrs) == 0 {
		return "Validation error"
	}

	parts := make([]string, 0, len(vErrs))
	for _, fe := range vErrs {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field(), getValidationTagMessage(fe.Tag(), fe.Param())))
	}
	return "Invalid " + strings.Join(parts, ", ")
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag, param string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "must be one of " + param
	default:
		return "validation failed"
	}
}
