package task

import (
	"encoding/json"
	"testing"

	domain "github.com/kuba-04/task-manager-rest-demo/domain/task"
	"github.com/kuba-04/task-manager-rest-demo/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatch_ChangedFields(t *testing.T) {
	tests := []struct {
		name  string
		patch Patch
		want  []string
	}{
		{name: "empty", patch: Patch{}, want: nil},
		{name: "title", patch: Patch{Title: SetTo("x")}, want: []string{"title"}},
		{name: "cleared description", patch: Patch{Description: SetTo[*string](nil)}, want: []string{"description"}},
		{
			name: "everything",
			patch: Patch{
				Title:       SetTo("x"),
				Description: SetTo(ptr("d")),
				Deadline:    SetTo(ptr(date(1))),
				Users:       []user.ID{user.NewID()},
			},
			want: []string{"title", "description", "deadline", "users"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.patch.ChangedFields())
		})
	}
}

func TestField_Unchanged(t *testing.T) {
	f := Unchanged[string]()

	v, ok := f.Get()

	assert.False(t, ok)
	assert.Empty(t, v)
}

// A cleared field must stay distinguishable from an untouched one after
// crossing the bus.
func TestEditTaskRequest_PreservesClearedFields(t *testing.T) {
	taskID := domain.NewID()
	p := Patch{
		Title:       Unchanged[string](),
		Description: SetTo[*string](nil),
		Deadline:    SetTo(ptr(date(3))),
	}

	data, err := json.Marshal(newEditTaskRequest(taskID, p))
	require.NoError(t, err)
	var decoded EditTaskRequest
	require.NoError(t, json.Unmarshal(data, &decoded))
	got := decoded.patch()

	assert.Equal(t, taskID, decoded.TaskID)
	assert.False(t, got.Title.IsSet())
	description, set := got.Description.Get()
	assert.True(t, set)
	assert.Nil(t, description)
	deadline, set := got.Deadline.Get()
	assert.True(t, set)
	require.NotNil(t, deadline)
	assert.True(t, date(3).Equal(*deadline))
	assert.Equal(t, []string{"description", "deadline"}, got.ChangedFields())
}
