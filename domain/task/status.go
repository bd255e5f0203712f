package task

import (
	"fmt"

	"github.com/kuba-04/task-manager-rest-demo/domain/validation"
)

// Status is the lifecycle state of a task. Any transition between statuses
// is allowed.
type Status string

const (
	StatusNew       Status = "New"
	StatusActive    Status = "Active"
	StatusCompleted Status = "Completed"
)

// ParseStatus accepts the exact status names. Anything else is a validation
// error on the task status field.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusNew, StatusActive, StatusCompleted:
		return st, nil
	default:
		return "", &validation.Error{Entity: "task", Field: "status", Reason: fmt.Sprintf("%q is not a known status", s)}
	}
}
