package errors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
)

// ErrorType represents different types of errors
type ErrorType string

const (
	ErrorTypeValidation        ErrorType = "validation"
	ErrorTypeDatabase          ErrorType = "database"
	ErrorTypeExternal          ErrorType = "external_api"
	ErrorTypeInternal          ErrorType = "internal"
	ErrorTypeNotFound          ErrorType = "not_found"
	ErrorTypeUnrecognizedInput ErrorType = "unrecognized_input"
	ErrorTypePartialData       ErrorType = "partial_data"
	ErrorTypeMalformedInput    ErrorType = "malformed_input"
)

// AppError represents an application error with additional context
type AppError struct {
	Type     ErrorType
	Message  string
	Code     string
	Internal error
	Context  map[string]interface{}
	Source   string
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Type, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the internal error
func (e *AppError) Unwrap() error {
	return e.Internal
}

// Is matches on type and code so predefined errors work with errors.Is
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return e.Type == t.Type && e.Code == t.Code
	}
	return false
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// LogFields returns structured logging fields
func (e *AppError) LogFields() []interface{} {
	fields := []interface{}{
		"error_type", e.Type,
		"error_code", e.Code,
		"error_message", e.Message,
		"source", e.Source,
	}

	if e.Internal != nil {
		fields = append(fields, "internal_error", e.Internal.Error())
	}

	for k, v := range e.Context {
		fields = append(fields, k, v)
	}

	return fields
}

// New creates a new AppError
func New(errorType ErrorType, code, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Code:    code,
		Message: message,
		Source:  caller(),
		Context: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error into AppError
func Wrap(err error, errorType ErrorType, code, message string) *AppError {
	return &AppError{
		Type:     errorType,
		Code:     code,
		Message:  message,
		Internal: err,
		Source:   caller(),
		Context:  make(map[string]interface{}),
	}
}

func caller() string {
	_, file, line, _ := runtime.Caller(2)
	return fmt.Sprintf("%s:%d", file, line)
}

// TypeOf returns the ErrorType of err, or "" when err is not an AppError
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

// Handler provides error handling strategies
type Handler struct {
	logger *slog.Logger
}

// NewHandler creates a new error handler
func NewHandler(logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger}
}

// Handle logs an error at a severity that depends on its type
func (h *Handler) Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		h.handleAppError(ctx, appErr)
	} else {
		h.logger.ErrorContext(ctx, "Unhandled error", "error", err.Error())
	}
}

func (h *Handler) handleAppError(ctx context.Context, err *AppError) {
	switch err.Type {
	case ErrorTypeUnrecognizedInput, ErrorTypeMalformedInput:
		h.logger.DebugContext(ctx, "Input degraded to default", err.LogFields()...)
	case ErrorTypeValidation, ErrorTypeNotFound:
		h.logger.WarnContext(ctx, "Validation error", err.LogFields()...)
	case ErrorTypePartialData:
		h.logger.WarnContext(ctx, "Partial data unavailable", err.LogFields()...)
	case ErrorTypeDatabase, ErrorTypeExternal, ErrorTypeInternal:
		h.logger.ErrorContext(ctx, "Critical error", err.LogFields()...)
	default:
		h.logger.ErrorContext(ctx, "Unknown error type", err.LogFields()...)
	}
}

// LogAndReturn logs an error and returns it
func (h *Handler) LogAndReturn(ctx context.Context, err error) error {
	h.Handle(ctx, err)
	return err
}

// Predefined errors
var (
	ErrInvalidInput   = New(ErrorTypeValidation, "INVALID_INPUT", "Invalid input provided")
	ErrInvalidRange   = New(ErrorTypeValidation, "INVALID_RANGE", "Start date is after end date")
	ErrUserNotFound   = New(ErrorTypeNotFound, "USER_NOT_FOUND", "User not found")
	ErrDatabaseError  = New(ErrorTypeDatabase, "DB_ERROR", "Database operation failed")
	ErrInternalServer = New(ErrorTypeInternal, "INTERNAL", "Internal server error")
)

func NewValidationError(message string) *AppError {
	return New(ErrorTypeValidation, "VALIDATION", message)
}

func NewDatabaseError(err error) *AppError {
	return Wrap(err, ErrorTypeDatabase, "DB_ERROR", "Database operation failed")
}

func NewExternalAPIError(err error, api string) *AppError {
	return Wrap(err, ErrorTypeExternal, "EXTERNAL_API", fmt.Sprintf("%s API error", api)).
		WithContext("api", api)
}

// NewUnrecognizedInputError reports a name that matched no lookup table entry
func NewUnrecognizedInputError(kind, value string) *AppError {
	return New(ErrorTypeUnrecognizedInput, "UNRECOGNIZED_INPUT", fmt.Sprintf("unrecognized %s", kind)).
		WithContext("kind", kind).
		WithContext("value", value)
}

// NewPartialDataError reports a secondary signal that could not be loaded
func NewPartialDataError(err error, signal string) *AppError {
	return Wrap(err, ErrorTypePartialData, "PARTIAL_DATA", fmt.Sprintf("%s data unavailable", signal)).
		WithContext("signal", signal)
}

// NewMalformedInputError reports a raw numeric field that was coerced to a default
func NewMalformedInputError(field, raw string, fallback interface{}) *AppError {
	return New(ErrorTypeMalformedInput, "MALFORMED_INPUT", fmt.Sprintf("malformed %s", field)).
		WithContext("field", field).
		WithContext("raw", raw).
		WithContext("fallback", fallback)
}

func NewInternalError(err error) *AppError {
	return Wrap(err, ErrorTypeInternal, "INTERNAL", "Internal server error")
}
