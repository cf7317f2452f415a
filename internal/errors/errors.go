package errors

import (
	"errors"
	"net/http"
	"strings"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrValidation is returned when required fields are missing.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidCredentials is returned when sign-in fails.
	ErrInvalidCredentials = errors.New("Invalid login credentials")
	// ErrUnauthenticated is returned when no valid session is present.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrUnknownBucket is returned when an upload targets a bucket that does not exist.
	ErrUnknownBucket = errors.New("unknown storage bucket")
	// ErrNotImage is returned when an uploaded file is not an image.
	ErrNotImage = errors.New("file is not an image")
	// ErrUploadTooLarge is returned when an uploaded file exceeds the size limit.
	ErrUploadTooLarge = errors.New("file is too large")
	// ErrNegativePrice is returned when a product price is below zero.
	ErrNegativePrice = errors.New("price must not be negative")
)

// ValidationError lists the required fields that were left empty.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// Is lets errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Required returns a ValidationError naming every field in names whose value is blank,
// or nil when all are present.
func Required(names []string, values map[string]string) error {
	var missing []string
	for _, name := range names {
		if strings.TrimSpace(values[name]) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &ValidationError{Fields: missing}
}

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
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_FAILED")
	case errors.Is(err, ErrNegativePrice):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_PRICE")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHENTICATED")
	case errors.Is(err, ErrUnknownBucket):
		return NewHTTPError(http.StatusNotFound, err.Error(), "UNKNOWN_BUCKET")
	case errors.Is(err, ErrNotImage):
		return NewHTTPError(http.StatusUnsupportedMediaType, err.Error(), "NOT_AN_IMAGE")
	case errors.Is(err, ErrUploadTooLarge):
		return NewHTTPError(http.StatusRequestEntityTooLarge, err.Error(), "UPLOAD_TOO_LARGE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
