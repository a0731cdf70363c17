package shared

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a domain error so callers can react without parsing messages
type ErrorKind string

const (
	KindValidation ErrorKind = "VALIDATION"
	KindNotFound   ErrorKind = "NOT_FOUND"
	KindConflict   ErrorKind = "CONFLICT"
	KindInternal   ErrorKind = "INTERNAL"
)

// DomainError represents a domain-level error
type DomainError struct {
	Kind    ErrorKind      `json:"kind"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches another DomainError with the same code, so sentinel errors work with errors.Is
func (e *DomainError) Is(target error) bool {
	var other *DomainError
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// WithDetail returns a copy of the error carrying an extra detail entry
func (e *DomainError) WithDetail(key string, value any) *DomainError {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	return &DomainError{Kind: e.Kind, Code: e.Code, Message: e.Message, Details: details}
}

// NewDomainError creates a new domain error of the given kind
func NewDomainError(kind ErrorKind, code, message string) *DomainError {
	return &DomainError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a validation error
func NewValidationError(code, format string, args ...any) *DomainError {
	return NewDomainError(KindValidation, code, fmt.Sprintf(format, args...))
}

// NewNotFoundError creates a not-found error for the named resource
func NewNotFoundError(resource string, id any) *DomainError {
	return NewDomainError(KindNotFound, "NOT_FOUND", fmt.Sprintf("%s %v not found", resource, id)).
		WithDetail("resource", resource)
}

// NewConflictError creates a conflict error
func NewConflictError(code, format string, args ...any) *DomainError {
	return NewDomainError(KindConflict, code, fmt.Sprintf(format, args...))
}

// KindOf returns the kind of err, or KindInternal when err is not a DomainError
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// IsValidation reports whether err is a validation error
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// IsNotFound reports whether err is a not-found error
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsConflict reports whether err is a conflict error
func IsConflict(err error) bool { return KindOf(err) == KindConflict }

// Common domain errors
var (
	ErrNotFound               = NewDomainError(KindNotFound, "NOT_FOUND", "Resource not found")
	ErrInvalidInput           = NewDomainError(KindValidation, "INVALID_INPUT", "Invalid input provided")
	ErrInvalidAmount          = NewDomainError(KindValidation, "INVALID_AMOUNT", "Amount must be positive")
	ErrInsufficientStock      = NewDomainError(KindValidation, "INSUFFICIENT_STOCK", "Insufficient stock available")
	ErrInvalidStateTransition = NewDomainError(KindConflict, "INVALID_STATE_TRANSITION", "Operation not allowed in current state")
	ErrAlreadyExists          = NewDomainError(KindConflict, "ALREADY_EXISTS", "Resource already exists")
	ErrConcurrencyConflict    = NewDomainError(KindConflict, "CONCURRENCY_CONFLICT", "Resource was modified by another process")
)
