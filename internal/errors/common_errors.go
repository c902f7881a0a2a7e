package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeParsing    ErrorType = "PARSING"
	ErrTypeTransform  ErrorType = "TRANSFORM"
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeStorage    ErrorType = "STORAGE"
	ErrTypeConfig     ErrorType = "CONFIG"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewParsingError reports input that does not match the fixed sheet layout.
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewTransformError reports a structural fault found while reshaping a loaded table.
func NewTransformError(message string, cause error) *AppError {
	return NewAppError(ErrTypeTransform, message, cause)
}

// NewAppValidationError creates a validation error for AppError type
func NewAppValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// TypeOf returns the type of the first AppError in err's chain, or "".
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

// IsParseError reports whether err is (or wraps) a parsing error
func IsParseError(err error) bool {
	return TypeOf(err) == ErrTypeParsing
}

// IsTransformError reports whether err is (or wraps) a transform error
func IsTransformError(err error) bool {
	return TypeOf(err) == ErrTypeTransform
}

// IsValidationError reports whether err is (or wraps) a validation error
func IsValidationError(err error) bool {
	return TypeOf(err) == ErrTypeValidation
}

// UserMessage renders err for display without the internal type tag or the
// wrapping added by intermediate layers.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return err.Error()
	}
	if appErr.Cause != nil {
		return fmt.Sprintf("%s: %v", appErr.Message, appErr.Cause)
	}
	return appErr.Message
}
