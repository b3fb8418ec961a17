package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/shop-api/internal/api/shared"
	"github.com/phrazzld/shop-api/internal/domain"
	"github.com/phrazzld/shop-api/internal/platform/logger"
)

// ErrMalformedBody is returned when a request body is not valid JSON for the
// expected shape.
var ErrMalformedBody = fmt.Errorf("%w: malformed request body", domain.ErrValidation)

// decodeAndValidate decodes the JSON body into v and runs struct validation.
// Both failures wrap domain.ErrValidation so they map to 400.
func decodeAndValidate(r *http.Request, v interface{}) error {
	if err := shared.DecodeJSON(r, v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	if err := shared.ValidateRequest(v); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	return nil
}

// getPathRowID extracts an integer row ID from the URL path parameters.
//
// Returns:
//   - (id, nil): The parsed ID if valid
//   - (0, error): A validation error if the parameter is missing or not an integer
func getPathRowID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}
	return domain.ParseRowID(pathParam)
}

// getPathProductID extracts a ProductID from the URL path parameters.
func getPathProductID(r *http.Request, paramName string) (domain.ProductID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return "", domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}
	return domain.ParseProductID(pathParam)
}

// getQueryProductID parses an optional ProductID query parameter. A missing
// or blank parameter yields nil.
func getQueryProductID(r *http.Request, name string) (*domain.ProductID, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	id, err := domain.ParseProductID(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// getQueryBool parses an optional true/false query parameter.
func getQueryBool(r *http.Request, name string) (*bool, error) {
	switch r.URL.Query().Get(name) {
	case "":
		return nil, nil
	case "true":
		v := true
		return &v, nil
	case "false":
		v := false
		return &v, nil
	default:
		return nil, domain.NewValidationError(name, "must be true or false", nil)
	}
}

// handlePathRowID extracts an integer ID from the path and writes a 400
// response when it is missing or malformed.
func handlePathRowID(w http.ResponseWriter, r *http.Request, paramName string, log *slog.Logger) (int64, bool) {
	if log == nil {
		log = logger.FromContextOrDefault(r.Context(), slog.Default())
	}
	id, err := getPathRowID(r, paramName)
	if err != nil {
		log.Debug("invalid path parameter",
			slog.String("param_name", paramName),
			slog.String("value", chi.URLParam(r, paramName)))
		HandleAPIError(w, r, err, "")
		return 0, false
	}
	return id, true
}

// handlePathProductID is the ProductID counterpart of handlePathRowID.
func handlePathProductID(w http.ResponseWriter, r *http.Request, paramName string, log *slog.Logger) (domain.ProductID, bool) {
	if log == nil {
		log = logger.FromContextOrDefault(r.Context(), slog.Default())
	}
	id, err := getPathProductID(r, paramName)
	if err != nil {
		log.Debug("invalid product id",
			slog.String("param_name", paramName),
			slog.String("value", chi.URLParam(r, paramName)))
		HandleAPIError(w, r, err, "")
		return "", false
	}
	return id, true
}
