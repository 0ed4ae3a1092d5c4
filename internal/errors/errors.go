// Package errors defines the application error taxonomy shared by services, repositories
// and the CLI. Every failure a caller can act on is an *AppError carrying an ErrorCode.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeInvalidCredentials: the identity gateway rejected the email/secret pair.
	ErrCodeInvalidCredentials ErrorCode = "invalid_credentials"
	// ErrCodeUserNotFound: a verified identity has no application profile.
	ErrCodeUserNotFound ErrorCode = "user_not_found"
	// ErrCodeNotAuthorized: the caller lacks the role required for an operation.
	ErrCodeNotAuthorized ErrorCode = "not_authorized"
	// ErrCodeRegistrationIncomplete: the identity exists at the gateway but its profile insert failed.
	ErrCodeRegistrationIncomplete ErrorCode = "registration_incomplete"
	ErrCodeNotFound               ErrorCode = "not_found"
	ErrCodeConflict               ErrorCode = "conflict"
	ErrCodeValidation             ErrorCode = "validation"
	ErrCodeForeignKey             ErrorCode = "foreign_key"
	// ErrCodeInternal: gateway or storage infrastructure failure.
	ErrCodeInternal ErrorCode = "internal"
	ErrCodeTimeout  ErrorCode = "timeout"
	ErrCodeCanceled ErrorCode = "canceled"
)

// IsAuthFailure reports whether the code describes who the caller is or what they may do.
func (c ErrorCode) IsAuthFailure() bool {
	switch c {
	case ErrCodeInvalidCredentials, ErrCodeUserNotFound, ErrCodeNotAuthorized:
		return true
	}
	return false
}

// IsRequestError reports whether the code points at the request contents rather than
// at the caller or the infrastructure.
func (c ErrorCode) IsRequestError() bool {
	switch c {
	case ErrCodeValidation, ErrCodeConflict, ErrCodeNotFound, ErrCodeForeignKey:
		return true
	}
	return false
}

// AppError is a structured application error. Field names the offending input when
// one is known.
type AppError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Field   string
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Cause }

// Is matches another *AppError by code, so errors.Is(err, &AppError{Code: ErrCodeConflict})
// works through wrapping.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code && t.Message == "" && t.Field == ""
}

// New creates an AppError with no cause.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap wraps err with a code and message. A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// InvalidCredentials wraps the gateway's rejection.
func InvalidCredentials(cause error) *AppError {
	return &AppError{Code: ErrCodeInvalidCredentials, Message: "The supplied credentials are invalid.", Cause: cause}
}

// UserNotFound wraps the failed profile lookup for an authenticated identity.
func UserNotFound(cause error) *AppError {
	return &AppError{Code: ErrCodeUserNotFound, Message: "User profile not found.", Cause: cause}
}

// NotAuthorized creates a NotAuthorized error with an operation-specific message.
func NotAuthorized(message string) *AppError {
	if message == "" {
		message = "User is not authorized to perform this operation."
	}
	return New(ErrCodeNotAuthorized, message)
}

// RegistrationIncomplete reports that identityID exists at the gateway without a profile.
func RegistrationIncomplete(identityID string, cause error) *AppError {
	return &AppError{
		Code:    ErrCodeRegistrationIncomplete,
		Message: fmt.Sprintf("Identity %s was created but its profile could not be stored.", identityID),
		Cause:   cause,
	}
}

func NotFound(message string) *AppError   { return New(ErrCodeNotFound, message) }
func Conflict(message string) *AppError   { return New(ErrCodeConflict, message) }
func Validation(message string) *AppError { return New(ErrCodeValidation, message) }
func ForeignKey(message string) *AppError { return New(ErrCodeForeignKey, message) }
func Internal(message string) *AppError   { return New(ErrCodeInternal, message) }

// ValidationField creates a Validation error for a specific field.
func ValidationField(field, message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message, Field: field}
}

// GetCode returns the code of the first AppError in err's chain, or "".
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetField returns the Field of the first AppError in err's chain, or "".
func GetField(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}

func IsInvalidCredentials(err error) bool     { return GetCode(err) == ErrCodeInvalidCredentials }
func IsUserNotFound(err error) bool           { return GetCode(err) == ErrCodeUserNotFound }
func IsNotAuthorized(err error) bool          { return GetCode(err) == ErrCodeNotAuthorized }
func IsRegistrationIncomplete(err error) bool { return GetCode(err) == ErrCodeRegistrationIncomplete }
func IsNotFound(err error) bool               { return GetCode(err) == ErrCodeNotFound }
func IsConflict(err error) bool               { return GetCode(err) == ErrCodeConflict }
func IsValidation(err error) bool             { return GetCode(err) == ErrCodeValidation }
func IsForeignKey(err error) bool             { return GetCode(err) == ErrCodeForeignKey }
func IsInternal(err error) bool               { return GetCode(err) == ErrCodeInternal }
func IsTimeout(err error) bool                { return GetCode(err) == ErrCodeTimeout }
func IsCanceled(err error) bool               { return GetCode(err) == ErrCodeCanceled }
