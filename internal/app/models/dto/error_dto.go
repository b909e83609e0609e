package dto

import "time"

// ErrorCode represents standardized error codes
type ErrorCode string

// Standard error codes for the application
const (
	// Resource errors
	ErrorCodeResourceNotFound ErrorCode = "RES_001"

	// Validation errors
	ErrorCodeValidationFailed ErrorCode = "VAL_001"
	ErrorCodeInvalidRequest   ErrorCode = "VAL_002"

	// Upload errors
	ErrorCodeFileMissing     ErrorCode = "UPL_001"
	ErrorCodeFileTooLarge    ErrorCode = "UPL_002"
	ErrorCodeUnsupportedType ErrorCode = "UPL_003"
	ErrorCodeBadPaperName    ErrorCode = "UPL_004"

	// Server errors
	ErrorCodeInternalServer       ErrorCode = "SRV_001"
	ErrorCodeExternalServiceError ErrorCode = "SRV_002"
)

// ErrorDetail represents detailed error information
type ErrorDetail struct {
	Code    ErrorCode   `json:"code" example:"VAL_001"`
	Message string      `json:"message" example:"Validation failed"`
	Field   string      `json:"field,omitempty" example:"email"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Success   bool          `json:"success" example:"false"`
	Errors    []ErrorDetail `json:"errors"`
	Timestamp time.Time     `json:"timestamp" example:"2026-08-28T12:01:05.123Z"`
}

// NewErrorDetail creates a new error detail
func NewErrorDetail(code ErrorCode, message string) ErrorDetail {
	return ErrorDetail{Code: code, Message: message}
}

// WithField adds a field name to the error detail
func (e ErrorDetail) WithField(field string) ErrorDetail {
	e.Field = field
	return e
}

// WithDetails adds additional details to the error
func (e ErrorDetail) WithDetails(details interface{}) ErrorDetail {
	e.Details = details
	return e
}

// NewErrorResponse creates a standard error response
func NewErrorResponse(errs ...ErrorDetail) *ErrorResponse {
	return &ErrorResponse{
		Success:   false,
		Errors:    errs,
		Timestamp: time.Now(),
	}
}
