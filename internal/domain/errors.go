package domain

import (
	"errors"
	"fmt"
)

// ErrorType classifies pipeline failures
type ErrorType string

const (
	ErrorTypeNotFound           ErrorType = "not_found"
	ErrorTypeNotLegalDocument   ErrorType = "not_legal_document"
	ErrorTypeNoClausesFound     ErrorType = "no_clauses_found"
	ErrorTypeExternalCapability ErrorType = "external_capability"

	// Outside the pipeline: start-up and request validation.
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeValidation ErrorType = "validation"
)

// DomainError represents a domain-specific error with context
type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewError creates a new domain error
func NewError(errType ErrorType, message string, err error) *DomainError {
	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
	}
}

// KindOf returns the type of the first DomainError in err's chain, or "" if there is none.
func KindOf(err error) ErrorType {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Type
	}
	return ""
}

// IsKind reports whether err carries a DomainError of the given type.
func IsKind(err error, kind ErrorType) bool {
	return err != nil && KindOf(err) == kind
}

// Common error constructors
func NotFoundError(message string, err error) *DomainError {
	return NewError(ErrorTypeNotFound, message, err)
}

func NotLegalDocumentError(message string) *DomainError {
	return NewError(ErrorTypeNotLegalDocument, message, nil)
}

func NoClausesFoundError(message string) *DomainError {
	return NewError(ErrorTypeNoClausesFound, message, nil)
}

func CapabilityError(message string, err error) *DomainError {
	return NewError(ErrorTypeExternalCapability, message, err)
}

func ConfigError(message string, err error) *DomainError {
	return NewError(ErrorTypeConfig, message, err)
}

func ValidationError(message string, err error) *DomainError {
	return NewError(ErrorTypeValidation, message, err)
}

// AsCapabilityError lifts a plain backend error into ErrorTypeExternalCapability.
// Errors that already carry a domain type are returned unchanged.
func AsCapabilityError(message string, err error) error {
	if err == nil {
		return nil
	}
	if KindOf(err) != "" {
		return err
	}
	return CapabilityError(message, err)
}
