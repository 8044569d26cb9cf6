package transport

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrCodeUnknown is the code applied to API errors that carry no explicit
// code of their own.
const ErrCodeUnknown = "UNKNOWN_ERROR"

// APIError is the normalized shape of every failure reported by the API,
// whether it arrived as a non-2xx status or as an error field riding a 2xx
// response. Callers can match on it without knowing transport internals.
type APIError struct {
	// Message is the human-readable error description.
	Message string `json:"message"`

	// Code is a machine-readable error code; ErrCodeUnknown when the server
	// did not provide one.
	Code string `json:"code"`

	// Status is the HTTP status of the response that produced the error.
	Status int `json:"status"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("atrium api: %s (code=%s, status=%d)", e.Message, e.Code, e.Status)
}

// IsNotFound reports whether err is an APIError with HTTP 404. Path lookups
// use it to translate absence into a nil result.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}
