package apperror

import (
	"errors"
	"net/http"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrNotFound            = &AppError{Code: http.StatusNotFound, Message: "Resource not found"}
	ErrUnauthorized        = &AppError{Code: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrForbidden           = &AppError{Code: http.StatusForbidden, Message: "Forbidden"}
	ErrBadRequest          = &AppError{Code: http.StatusBadRequest, Message: "Bad request"}
	ErrInternalServer      = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}
	ErrConflict            = &AppError{Code: http.StatusConflict, Message: "Resource already exists"}
	ErrInvalidCredentials  = &AppError{Code: http.StatusUnauthorized, Message: "Invalid username or password"}
	ErrInvalidToken        = &AppError{Code: http.StatusUnauthorized, Message: "Invalid token"}
	ErrSessionExpired      = &AppError{Code: http.StatusUnauthorized, Message: "Session expired"}
	ErrUpstreamUnavailable = &AppError{Code: http.StatusBadGateway, Message: "POS server is unavailable"}
)

// UpstreamStatus is implemented by errors carrying the status code returned by the POS API.
type UpstreamStatus interface {
	error
	Status() int
	UpstreamMessage() string
}

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " not found",
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// FromUpstream maps a POS API failure onto an AppError.
// Errors that are already AppErrors pass through; transport failures become 502.
func FromUpstream(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var upstream UpstreamStatus
	if !errors.As(err, &upstream) {
		return ErrUpstreamUnavailable
	}

	msg := upstream.UpstreamMessage()
	switch status := upstream.Status(); {
	case status == http.StatusUnauthorized:
		return ErrSessionExpired
	case status == http.StatusForbidden:
		return withMessage(ErrForbidden, msg)
	case status == http.StatusNotFound:
		return withMessage(ErrNotFound, msg)
	case status == http.StatusConflict:
		return withMessage(ErrConflict, msg)
	case status >= 400 && status < 500:
		return withMessage(&AppError{Code: status, Message: "Request rejected by POS server"}, msg)
	default:
		return ErrUpstreamUnavailable
	}
}

func withMessage(base *AppError, msg string) *AppError {
	if msg == "" {
		return base
	}
	return &AppError{Code: base.Code, Message: msg}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	var upstream UpstreamStatus
	if errors.As(err, &upstream) {
		return FromUpstream(err)
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
