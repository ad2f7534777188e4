package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Catalog errors
var (
	ErrCourseNotFound     = errors.New("course not found")
	ErrOfferingNotFound   = errors.New("course offering not found")
	ErrCourseAlreadyAdded = errors.New("offering already on course list")
)

// Comparison errors
var (
	ErrInvalidPair           = errors.New("comparison requires two distinct offerings")
	ErrInvalidWinner         = errors.New("winner must be one of the compared offerings")
	ErrInvalidCategory       = errors.New("unknown comparison category")
	ErrDuplicateComparison   = errors.New("comparison already recorded for this pair and category")
	ErrNothingToUndo         = errors.New("no comparison to undo")
	ErrInsufficientOfferings = errors.New("at least two offerings are required to compare")
)

// CustomError attaches request-specific context to a sentinel. errors.Is
// keeps matching the wrapped sentinel; the API error handler surfaces the
// message as response detail.
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}
