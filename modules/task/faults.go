package task

import (
	"errors"

	domain "github.com/kuba-04/task-manager-rest-demo/domain/task"
	"github.com/kuba-04/task-manager-rest-demo/domain/user"
	"github.com/kuba-04/task-manager-rest-demo/fault"
)

// toFault converts a domain failure into a Fault. Any other error is returned
// unchanged as the second result.
func toFault(err error) (*fault.Fault, error) {
	var taskErr *TaskNotFoundError
	if errors.As(err, &taskErr) {
		return &fault.Fault{Code: fault.CodeTaskNotFound, Message: taskErr.Error(), ID: taskErr.ID.String()}, nil
	}
	var userErr *UserNotFoundError
	if errors.As(err, &userErr) {
		return &fault.Fault{Code: fault.CodeUserNotFound, Message: userErr.Error(), ID: userErr.ID.String()}, nil
	}
	if f := fault.FromValidation(err); f != nil {
		return f, nil
	}
	return nil, err
}

// faultError rebuilds the typed error described by f.
func faultError(f *fault.Fault) error {
	switch f.Code {
	case fault.CodeTaskNotFound:
		if id, err := domain.ParseID(f.ID); err == nil {
			return &TaskNotFoundError{ID: id}
		}
	case fault.CodeUserNotFound:
		if id, err := user.ParseID(f.ID); err == nil {
			return &UserNotFoundError{ID: id}
		}
	case fault.CodeValidation:
		return f.ValidationError()
	}
	return f
}
