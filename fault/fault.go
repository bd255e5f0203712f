// Package fault carries domain failures across request-reply boundaries.
//
// Services reply with a Fault instead of returning an error so the caller can
// rebuild the typed error on its side of the bus.
package fault

import (
	"errors"

	"github.com/kuba-04/task-manager-rest-demo/domain/validation"
)

// Fault codes.
const (
	CodeValidation   = "validation_error"
	CodeTaskNotFound = "task_not_found"
	CodeUserNotFound = "user_not_found"
)

// Fault describes a domain failure in a service reply.
type Fault struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
	Entity  string `json:"entity,omitempty"`
	Field   string `json:"field,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// Error returns the message of the original error.
func (f *Fault) Error() string {
	return f.Message
}

// FromValidation converts a validation error. It returns nil for any other error.
func FromValidation(err error) *Fault {
	var ve *validation.Error
	if !errors.As(err, &ve) {
		return nil
	}
	return &Fault{
		Code:    CodeValidation,
		Message: ve.Error(),
		Entity:  ve.Entity,
		Field:   ve.Field,
		Reason:  ve.Reason,
	}
}

// ValidationError rebuilds the validation error described by f.
func (f *Fault) ValidationError() error {
	return &validation.Error{Entity: f.Entity, Field: f.Field, Reason: f.Reason}
}
