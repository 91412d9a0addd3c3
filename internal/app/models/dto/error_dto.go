package dto

import (
	"github.com/go-playground/validator/v10"
)

// ErrorCode is a stable machine-readable error code carried in the envelope
type ErrorCode string

// Standard error codes for the application
const (
	// Authentication errors
	ErrorCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrorCodeUnauthorized       ErrorCode = "UNAUTHORIZED"

	// Authorization errors
	ErrorCodeForbidden ErrorCode = "FORBIDDEN"

	// Resource errors
	ErrorCodeNotFound ErrorCode = "NOT_FOUND"
	ErrorCodeConflict ErrorCode = "CONFLICT"

	// Validation errors
	ErrorCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrorCodeBadRequest       ErrorCode = "BAD_REQUEST"

	// Domain-specific errors
	ErrorCodeEmailExists      ErrorCode = "EMAIL_EXISTS"
	ErrorCodeOwnerCannotLeave ErrorCode = "OWNER_CANNOT_LEAVE"
	ErrorCodeAlreadyMember    ErrorCode = "ALREADY_MEMBER"
	ErrorCodeNotMember        ErrorCode = "NOT_MEMBER"
	ErrorCodeMissionFull      ErrorCode = "MISSION_FULL"
	ErrorCodeMissionClosed    ErrorCode = "MISSION_CLOSED"
	ErrorCodeAlreadyJoined    ErrorCode = "ALREADY_JOINED"

	// Server errors
	ErrorCodeInternalServer  ErrorCode = "INTERNAL"
	ErrorCodeExternalService ErrorCode = "EXTERNAL_SERVICE"
)

// ErrorDetail is the error half of the response envelope
type ErrorDetail struct {
	Code    ErrorCode   `json:"code" example:"NOT_FOUND"`
	Message string      `json:"message" example:"guild not found"`
	Field   string      `json:"field,omitempty" example:"title"`
	Details interface{} `json:"details,omitempty"`
}

// NewErrorDetail creates a new error detail
func NewErrorDetail(code ErrorCode, message string) *ErrorDetail {
	return &ErrorDetail{
		Code:    code,
		Message: message,
	}
}

// WithField adds a field name to the error detail
func (e *ErrorDetail) WithField(field string) *ErrorDetail {
	e.Field = field
	return e
}

// WithDetails adds additional details to the error
func (e *ErrorDetail) WithDetails(details interface{}) *ErrorDetail {
	e.Details = details
	return e
}

// HandleValidationError converts a validator.v10 error into an ErrorDetail
// with per-field messages.
func HandleValidationError(err error) *ErrorDetail {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return NewErrorDetail(ErrorCodeValidationFailed, err.Error())
	}

	fields := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		fields[e.Field()] = formatValidationError(e)
	}

	return NewErrorDetail(ErrorCodeValidationFailed, "Validation failed").WithDetails(fields)
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "latitude":
		return e.Field() + " must be a valid latitude"
	case "longitude":
		return e.Field() + " must be a valid longitude"
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
