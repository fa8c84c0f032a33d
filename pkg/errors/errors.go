package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Relocation policy errors
	ErrInvalidRelocation ErrorCode = "INVALID_RELOCATION"

	// Relocation run errors
	ErrRootInvalid    ErrorCode = "ROOT_INVALID"
	ErrClassRewrite   ErrorCode = "CLASS_REWRITE"
	ErrMalformedClass ErrorCode = "MALFORMED_CLASS"
	ErrManifestParse  ErrorCode = "MANIFEST_PARSE"

	// FileSystem errors
	ErrFileRead   ErrorCode = "FILE_READ"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrFileRename ErrorCode = "FILE_RENAME"
	ErrFileRemove ErrorCode = "FILE_REMOVE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
	ErrDirRead    ErrorCode = "DIR_READ"
)

// RelocError represents a structured error with code and details
type RelocError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *RelocError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *RelocError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *RelocError) Is(target error) bool {
	var targetErr *RelocError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new RelocError with the given code and message
func New(code ErrorCode, message string) *RelocError {
	return &RelocError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new RelocError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *RelocError {
	return &RelocError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a RelocError
func Wrap(err error, code ErrorCode, message string) *RelocError {
	if err == nil {
		return nil
	}
	return &RelocError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *RelocError {
	if err == nil {
		return nil
	}
	return &RelocError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *RelocError) WithDetail(key string, value interface{}) *RelocError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *RelocError) WithDetails(details map[string]interface{}) *RelocError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var relocErr *RelocError
	if errors.As(err, &relocErr) {
		return relocErr.Code == code
	}
	return false
}

// GetErrorCode returns the outermost error code, or ErrUnknown if err is not a RelocError
func GetErrorCode(err error) ErrorCode {
	var relocErr *RelocError
	if errors.As(err, &relocErr) {
		return relocErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a RelocError
func GetErrorDetails(err error) map[string]interface{} {
	var relocErr *RelocError
	if errors.As(err, &relocErr) {
		return relocErr.Details
	}
	return nil
}
