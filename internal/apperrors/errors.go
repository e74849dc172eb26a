// Package apperrors defines the error taxonomy shared by the stores, the
// services and the HTTP handlers.
package apperrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned when an entity with the requested id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials is returned when an email/password pair does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError carries field-level messages for a rejected write.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError returns a ValidationError with a single message.
func NewValidationError(field, message string) *ValidationError {
	v := &ValidationError{}
	v.Add(field, message)
	return v
}

// Add appends a message for field.
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// Empty reports whether no message has been recorded.
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// UniquenessError reports a write rejected by a unique constraint.
type UniquenessError struct {
	Field string
	Value string
	Err   error
}

func (e *UniquenessError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s already exists", e.Field)
	}
	return fmt.Sprintf("%s %q already exists", e.Field, e.Value)
}

func (e *UniquenessError) Unwrap() error {
	return e.Err
}

// NotFound wraps ErrNotFound with the entity name and id.
func NotFound(entity string, id uint) error {
	return fmt.Errorf("%s with ID %d: %w", entity, id, ErrNotFound)
}

// IsNotFound reports whether err is, or wraps, ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// AsValidation extracts a ValidationError from err. A UniquenessError is
// reported as a validation failure on its field.
func AsValidation(err error) (*ValidationError, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v, true
	}
	var u *UniquenessError
	if errors.As(err, &u) {
		return NewValidationError(u.Field, u.Error()), true
	}
	return nil, false
}
