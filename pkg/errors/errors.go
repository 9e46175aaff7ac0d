package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeConfig indicates missing or malformed startup configuration
	ErrorTypeConfig ErrorType = "CONFIG"
	// ErrorTypeUpstream indicates the media-request service answered with a failure
	ErrorTypeUpstream ErrorType = "UPSTREAM"
	// ErrorTypeInternal indicates a local failure building a call
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error returns the error message
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new application error
func New(errorType ErrorType, message string) error {
	return &AppError{
		Type:    errorType,
		Message: message,
	}
}

// Wrap wraps an error with an application error
func Wrap(errorType ErrorType, message string, err error) error {
	return &AppError{
		Type:    errorType,
		Message: message,
		Err:     err,
	}
}

// Config creates a configuration error
func Config(message string) error {
	return New(ErrorTypeConfig, message)
}

// Upstream wraps a failed upstream call
func Upstream(message string, err error) error {
	return Wrap(ErrorTypeUpstream, message, err)
}

// IsConfig checks if an error is a configuration error
func IsConfig(err error) bool {
	return is(err, ErrorTypeConfig)
}

// IsUpstream checks if an error is an upstream error
func IsUpstream(err error) bool {
	return is(err, ErrorTypeUpstream)
}

// Message returns the innermost human readable message of err, dropping
// the type prefixes added by AppError. Used for one-line user replies.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Err != nil {
			return Message(appErr.Err)
		}
		return appErr.Message
	}
	return err.Error()
}

func is(err error, t ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == t
	}
	return false
}
