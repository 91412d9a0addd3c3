package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found")
	ErrUnauthorized       = errors.New("authentication required")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Guild errors
var (
	ErrGuildNotFound         = errors.New("guild not found")
	ErrNotGuildMember        = errors.New("not a guild member")
	ErrAlreadyMember         = errors.New("membership already exists")
	ErrMembershipNotFound    = errors.New("membership not found")
	ErrOwnerCannotLeave      = errors.New("guild owner cannot leave")
	ErrMembershipNotApproved = errors.New("membership not approved")
)

// Record errors
var (
	ErrRecordNotFound  = errors.New("record not found")
	ErrCommentNotFound = errors.New("comment not found")
)

// Mission errors
var (
	ErrMissionNotFound = errors.New("mission not found")
	ErrMissionFull     = errors.New("mission participant limit reached")
	ErrAlreadyJoined   = errors.New("already joined mission")
	ErrMissionClosed   = errors.New("mission window is closed")
)

// Taste/location errors
var (
	ErrTasteRecordNotFound  = errors.New("taste record not found")
	ErrStayNotFound         = errors.New("stay not found")
	ErrNotificationNotFound = errors.New("notification not found")
)

// External service errors
var (
	ErrExternalService = errors.New("external service error")
)

// CustomError wraps a sentinel with extra context for the HTTP layer.
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with an underlying sentinel
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithCode adds a stable error code carried through to the response envelope
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// NewResourceNotFoundError creates a not-found error with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}

// NewConflictError creates a conflict error with a message
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewForbiddenError creates a permission-denied error with a message
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}

// NewBadRequestError creates a bad-request error with a message
func NewBadRequestError(message string) error {
	return &CustomError{Err: ErrBadRequest, Message: message}
}
