package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrValidation is returned when product input is rejected.
	ErrValidation = errors.New("validation failed")
	// ErrProductNotFound is returned when no product has the requested id.
	ErrProductNotFound = errors.New("product not found")
	// ErrStorageUnavailable is returned when the backing store cannot serve a statement.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrExportFailure is returned when an export cannot be encoded or written.
	ErrExportFailure = errors.New("export failed")
	// ErrExportDisabled is returned when the spreadsheet exporter is switched off.
	ErrExportDisabled = errors.New("spreadsheet export disabled")
	// ErrNothingToExport is returned when the product list to export is empty.
	ErrNothingToExport = errors.New("no products to export")
	// ErrInvalidCredentials is returned when username or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrInvalidRefreshToken is returned when a refresh token is invalid or expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
// Wrapped errors keep their full message so the caller sees the detail.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_FAILED")
	case errors.Is(err, ErrProductNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "PRODUCT_NOT_FOUND")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrInvalidRefreshToken):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidRefreshToken.Error(), "INVALID_REFRESH_TOKEN")
	case errors.Is(err, ErrNothingToExport):
		return NewHTTPError(http.StatusUnprocessableEntity, err.Error(), "NOTHING_TO_EXPORT")
	case errors.Is(err, ErrExportDisabled):
		return NewHTTPError(http.StatusNotImplemented, err.Error(), "EXPORT_DISABLED")
	case errors.Is(err, ErrExportFailure):
		return NewHTTPError(http.StatusInternalServerError, err.Error(), "EXPORT_FAILED")
	case errors.Is(err, ErrStorageUnavailable):
		return NewHTTPError(http.StatusServiceUnavailable, "storage unavailable", "STORAGE_UNAVAILABLE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
