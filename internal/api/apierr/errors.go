package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/mcoot/roguebingo/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeRunNotFound    = "RUN_NOT_FOUND"
	CodeRunOver        = "RUN_OVER"
	CodeUnknownPerk    = "UNKNOWN_PERK"
	CodePerkNotOffered = "PERK_NOT_OFFERED"
	CodeNoPerkOffer    = "NO_PERK_OFFER"
	CodeNotFound       = "NOT_FOUND"
	CodeInternalError  = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status an error maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrRunNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRunNotFound, "Run not found"}}
	case errors.Is(err, model.ErrRunOver):
		return &httpError{http.StatusConflict, APIError{CodeRunOver, "Run is already over"}}
	case errors.Is(err, model.ErrUnknownPerk):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownPerk, "Unknown perk"}}
	case errors.Is(err, model.ErrPerkNotOffered):
		return &httpError{http.StatusConflict, APIError{CodePerkNotOffered, "Perk is not in the current offer"}}
	case errors.Is(err, model.ErrNoPerkOffer):
		return &httpError{http.StatusConflict, APIError{CodeNoPerkOffer, "No perk choice is pending"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewNotFoundError creates a not found error for unmatched routes
func NewNotFoundError() error {
	return &httpError{http.StatusNotFound, APIError{CodeNotFound, "Not found"}}
}

// NewUnsupportedMediaTypeError rejects non-JSON request bodies
func NewUnsupportedMediaTypeError() error {
	return &httpError{http.StatusUnsupportedMediaType, APIError{CodeInvalidRequest, "Content-Type must be application/json"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}

// NewInternalErrorf creates an internal server error with a custom message
func NewInternalErrorf(format string, args ...any) error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, fmt.Sprintf(format, args...)}}
}
