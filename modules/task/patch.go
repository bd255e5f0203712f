package task

import (
	"time"

	"github.com/kuba-04/task-manager-rest-demo/domain/user"
)

// Field is one attribute of a Patch: either left unchanged or set to a value.
// Setting a pointer field to nil clears it.
type Field[T any] struct {
	value T
	set   bool
}

// Unchanged leaves the attribute as it is.
func Unchanged[T any]() Field[T] {
	return Field[T]{}
}

// SetTo replaces the attribute with v.
func SetTo[T any](v T) Field[T] {
	return Field[T]{value: v, set: true}
}

// Get returns the value and whether the field is set.
func (f Field[T]) Get() (T, bool) {
	return f.value, f.set
}

// IsSet reports whether the field replaces the attribute.
func (f Field[T]) IsSet() bool {
	return f.set
}

// Patch is a partial edit of a task. The zero value changes nothing.
type Patch struct {
	Title       Field[string]
	Description Field[*string]
	Deadline    Field[*time.Time]
	// Users are assigned in addition to the current assignees.
	Users []user.ID
}

// ChangedFields names the attributes the patch touches, in application order.
func (p Patch) ChangedFields() []string {
	var fields []string
	if p.Title.IsSet() {
		fields = append(fields, "title")
	}
	if p.Description.IsSet() {
		fields = append(fields, "description")
	}
	if p.Deadline.IsSet() {
		fields = append(fields, "deadline")
	}
	if len(p.Users) > 0 {
		fields = append(fields, "users")
	}
	return fields
}
