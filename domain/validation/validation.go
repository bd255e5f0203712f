// Package validation holds the error kind returned when an entity is built
// from incomplete input.
package validation

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid matches every *Error with errors.Is.
var ErrInvalid = errors.New("validation failed")

// Error reports a field that was absent, blank or out of its allowed values.
// An empty Reason means the field was required.
type Error struct {
	Entity string
	Field  string
	Reason string
}

func (e *Error) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s %s %s", e.Entity, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s %s cannot be empty", e.Entity, e.Field)
}

// Is reports whether target is ErrInvalid.
func (e *Error) Is(target error) bool {
	return target == ErrInvalid
}

// Required fails when value is empty after trimming whitespace.
func Required(entity, field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &Error{Entity: entity, Field: field}
	}
	return nil
}
