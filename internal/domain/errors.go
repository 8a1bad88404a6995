package domain

import (
	"errors"
	"fmt"
)

// Domain errors.
var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmptyTitle         = errors.New("title cannot be empty")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidPriority    = errors.New("invalid priority")
	ErrNoFieldsToUpdate   = errors.New("no fields to update")
	ErrMissingCredentials = errors.New("email and password are required")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrNoRefreshToken     = errors.New("no refresh token")
	ErrMalformedToken     = errors.New("malformed token")
)

// APIError is the normalized shape of any error returned by the API layer.
// StatusCode 0 means the request never reached the server.
type APIError struct {
	Details    any    `json:"details,omitempty"`
	Message    string `json:"message"`
	StatusCode int    `json:"status"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// IsNetworkError returns true if the request never reached the server.
func (e *APIError) IsNetworkError() bool {
	return e.StatusCode == 0
}

// IsNotFound returns true for a 404 response.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == 404
}

// IsUnauthorized returns true for a 401 response.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == 401
}

// AsAPIError extracts an APIError from an error chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
