package task

import (
	"errors"
	"fmt"

	domain "github.com/kuba-04/task-manager-rest-demo/domain/task"
	"github.com/kuba-04/task-manager-rest-demo/domain/user"
)

// Sentinel errors matched by the typed not-found errors.
var (
	ErrTaskNotFound = errors.New("task not found")
	ErrUserNotFound = errors.New("user not found")
)

// TaskNotFoundError reports an operation on a task that does not exist.
type TaskNotFoundError struct {
	ID domain.ID
}

func (e *TaskNotFoundError) Error() string {
	return fmt.Sprintf("task %s not found", e.ID)
}

// Is reports whether target is ErrTaskNotFound.
func (e *TaskNotFoundError) Is(target error) bool {
	return target == ErrTaskNotFound
}

// UserNotFoundError reports a reference to a user that does not exist.
type UserNotFoundError struct {
	ID user.ID
}

func (e *UserNotFoundError) Error() string {
	return fmt.Sprintf("user %s not found", e.ID)
}

// Is reports whether target is ErrUserNotFound.
func (e *UserNotFoundError) Is(target error) bool {
	return target == ErrUserNotFound
}
