package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Error kinds. Match with errors.Is.
var (
	ErrCapability        = errors.New("capability error")
	ErrNotFound          = errors.New("not found")
	ErrSourceUnavailable = errors.New("source unavailable")
	ErrValidation        = errors.New("validation error")
	ErrConflict          = errors.New("conflict")
)

type ErrorCode string

const (
	CodeCapability        ErrorCode = "CAPABILITY_ERROR"
	CodeNotFound          ErrorCode = "NOT_FOUND"
	CodeSourceUnavailable ErrorCode = "SOURCE_UNAVAILABLE"
	CodeValidation        ErrorCode = "VALIDATION_ERROR"
	CodeConflict          ErrorCode = "CONFLICT"
	CodeInternal          ErrorCode = "INTERNAL_ERROR"
)

// AppError is a typed failure surfaced to callers.
type AppError struct {
	Kind    error
	Code    ErrorCode
	Message string
	Details any
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func (e *AppError) WithDetails(details any) *AppError {
	e.Details = details
	return e
}

// HTTPStatus maps the error kind to a response status.
func (e *AppError) HTTPStatus() int {
	switch e.Kind {
	case ErrCapability, ErrConflict:
		return http.StatusConflict
	case ErrNotFound:
		return http.StatusNotFound
	case ErrSourceUnavailable:
		return http.StatusServiceUnavailable
	case ErrValidation:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func Capability(format string, args ...any) *AppError {
	return &AppError{Kind: ErrCapability, Code: CodeCapability, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *AppError {
	return &AppError{Kind: ErrNotFound, Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func SourceUnavailable(source string, err error) *AppError {
	return &AppError{
		Kind:    ErrSourceUnavailable,
		Code:    CodeSourceUnavailable,
		Message: fmt.Sprintf("review source %s is unavailable", source),
		Details: map[string]any{"source": source, "retryable": true},
		Err:     err,
	}
}

// Validation wraps a validation failure; err may carry per-field details.
func Validation(message string, err error) *AppError {
	return &AppError{Kind: ErrValidation, Code: CodeValidation, Message: message, Err: err}
}

// FromValidation converts the result of an ozzo Validate call. Field errors
// are exposed as details; nil stays nil.
func FromValidation(err error) error {
	if err == nil {
		return nil
	}
	appErr := Validation("invalid input", err)
	var fields validation.Errors
	if errors.As(err, &fields) {
		appErr.Details = fields
	}
	return appErr
}

func Conflict(format string, args ...any) *AppError {
	return &AppError{Kind: ErrConflict, Code: CodeConflict, Message: fmt.Sprintf(format, args...)}
}

// As extracts an *AppError from err.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
