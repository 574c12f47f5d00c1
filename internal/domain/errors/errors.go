package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrAlreadyExists     = errors.New("already exists")
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation failed")
	ErrEmptyOrder        = errors.New("order must contain at least one drink")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrKeyReused         = errors.New("idempotency key was already used for a different order")
)

// DrinkNotFoundError reports a drink id missing from the catalog.
type DrinkNotFoundError struct {
	DrinkID string
}

func (e *DrinkNotFoundError) Error() string {
	return fmt.Sprintf("Drink %s not found", e.DrinkID)
}

func (e *DrinkNotFoundError) Unwrap() error { return ErrNotFound }

// SizeNotFoundError reports a size the drink is not offered in.
type SizeNotFoundError struct {
	DrinkID string
	Size    string
}

func (e *SizeNotFoundError) Error() string {
	return fmt.Sprintf("Drink size %s of drink %s not found", e.Size, e.DrinkID)
}

func (e *SizeNotFoundError) Unwrap() error { return ErrNotFound }

// OrderNotFoundError reports an unknown order id.
type OrderNotFoundError struct {
	OrderID string
}

func (e *OrderNotFoundError) Error() string {
	return fmt.Sprintf("Order %s not found", e.OrderID)
}

func (e *OrderNotFoundError) Unwrap() error { return ErrNotFound }

// FieldError describes a single invalid request field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError groups field level problems of a request.
type ValidationError struct {
	Fields []FieldError
	cause  error
}

// NewValidationError builds a validation error for one field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// WithCause attaches a more specific sentinel, e.g. ErrInvalidStatus.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Add appends another field problem.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() []error {
	if e.cause != nil {
		return []error{ErrValidation, e.cause}
	}
	return []error{ErrValidation}
}

// TransitionError is returned when the order state machine forbids a change.
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot change order status from %s to %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }
