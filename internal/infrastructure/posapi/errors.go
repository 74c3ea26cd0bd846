package posapi

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrInvalidResponse is returned when a successful response carries a body
// that cannot be read as the POS API envelope.
var ErrInvalidResponse = errors.New("posapi: invalid response")

// Error is a non-2xx answer from the POS API.
type Error struct {
	StatusCode int
	Message    string
	Method     string
	Path       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("posapi: %s %s: %d %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// Status returns the upstream HTTP status code.
func (e *Error) Status() int { return e.StatusCode }

// UpstreamMessage returns the message from the upstream envelope, if any.
func (e *Error) UpstreamMessage() string { return e.Message }

// IsUnauthorized reports whether err is an upstream 401.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}
