package task

import (
	"errors"
	"fmt"
	"testing"

	domain "github.com/kuba-04/task-manager-rest-demo/domain/task"
	"github.com/kuba-04/task-manager-rest-demo/domain/user"
	"github.com/kuba-04/task-manager-rest-demo/domain/validation"
	"github.com/kuba-04/task-manager-rest-demo/fault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFaults_RoundTrip(t *testing.T) {
	taskID, userID := domain.NewID(), user.NewID()

	tests := []struct {
		name   string
		err    error
		code   string
		target error
	}{
		{name: "task not found", err: &TaskNotFoundError{ID: taskID}, code: fault.CodeTaskNotFound, target: ErrTaskNotFound},
		{name: "user not found", err: fmt.Errorf("assign: %w", &UserNotFoundError{ID: userID}), code: fault.CodeUserNotFound, target: ErrUserNotFound},
		{name: "validation", err: &validation.Error{Entity: "task", Field: "title"}, code: fault.CodeValidation, target: validation.ErrInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, rest := toFault(tt.err)
			require.NoError(t, rest)
			require.NotNil(t, f)
			assert.Equal(t, tt.code, f.Code)

			rebuilt := faultError(f)
			assert.ErrorIs(t, rebuilt, tt.target)
		})
	}
}

func TestFaults_RebuildKeepsIDs(t *testing.T) {
	taskID := domain.NewID()

	f, _ := toFault(&TaskNotFoundError{ID: taskID})
	var notFound *TaskNotFoundError
	require.ErrorAs(t, faultError(f), &notFound)

	assert.Equal(t, taskID, notFound.ID)
}

func TestFaults_OtherErrorsPassThrough(t *testing.T) {
	boom := errors.New("boom")

	f, err := toFault(boom)

	assert.Nil(t, f)
	assert.Equal(t, boom, err)
}

func TestFaults_UnknownCode(t *testing.T) {
	f := &fault.Fault{Code: "teapot", Message: "short and stout"}

	err := faultError(f)

	assert.EqualError(t, err, "short and stout")
}
