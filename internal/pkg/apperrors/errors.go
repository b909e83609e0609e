// Package apperrors defines the sentinel errors shared across services and
// the error-handling middleware.
package apperrors

import (
	"errors"
	"fmt"
)

// Resource errors
var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrPaperNotFound    = errors.New("paper not found")
)

// Validation errors
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Upload errors
var (
	ErrFileMissing     = errors.New("no file uploaded")
	ErrFileTooLarge    = errors.New("file exceeds the maximum upload size")
	ErrUnsupportedType = errors.New("only PDF files are accepted")
	ErrBadPaperName    = errors.New("filename does not follow the paper naming convention")
)

// External collaborators
var (
	ErrMailDeliveryFailed = errors.New("mail delivery failed")
)

// CustomError wraps a sentinel error with a human-readable message.
type CustomError struct {
	Err     error
	Message string
}

func (e *CustomError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
	}
	return e.Err.Error()
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a validation failure with a message.
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}

// NewBadRequestError creates a bad request error with a message.
func NewBadRequestError(message string) error {
	return &CustomError{Err: ErrBadRequest, Message: message}
}
