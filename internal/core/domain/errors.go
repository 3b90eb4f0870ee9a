// internal/core/domain/errors.go
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the failure kinds callers branch on.
var (
	ErrNotFound           = errors.New("not found")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrDuplicate          = errors.New("duplicate value")
	ErrValidation         = errors.New("validation failed")
	ErrTransactionAborted = errors.New("transaction aborted")
)

// NotFoundError reports a missing entity.
// Key replaces ID for entities addressed by a string.
type NotFoundError struct {
	Entity string
	ID     int64
	Key    string
}

func (e *NotFoundError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s %s not found", e.Entity, e.Key)
	}
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ProductNotFound is returned when an invoice line references an unknown product.
func ProductNotFound(productID int64) error {
	return &NotFoundError{Entity: EntityProduct, ID: productID}
}

// InsufficientStockError carries the offending product and both quantities.
type InsufficientStockError struct {
	ProductID int64
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: available %d, requested %d",
		e.ProductID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// DuplicateError reports a unique constraint collision.
type DuplicateError struct {
	Entity string
	Field  string
}

func (e *DuplicateError) Error() string {
	switch e.Field {
	case "phone_no":
		return fmt.Sprintf("%s phone no has already exists", capitalize(e.Entity))
	case "":
		return fmt.Sprintf("%s already exists", e.Entity)
	default:
		return fmt.Sprintf("%s %s has already exists", capitalize(e.Entity), e.Field)
	}
}

func (e *DuplicateError) Is(target error) bool { return target == ErrDuplicate }

// FieldError is a single rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects field errors for one request.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// Add appends a field error.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// OrNil returns nil when no field errors were collected.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// TransactionAbortedError wraps a database-level failure that rolled back a unit of work.
type TransactionAbortedError struct {
	Op  string
	Err error
}

func (e *TransactionAbortedError) Error() string {
	return fmt.Sprintf("%s aborted: %v", e.Op, e.Err)
}

func (e *TransactionAbortedError) Unwrap() error { return e.Err }

func (e *TransactionAbortedError) Is(target error) bool { return target == ErrTransactionAborted }

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
