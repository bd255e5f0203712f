// Package task holds the Task entity and its status.
package task

import (
	"slices"
	"time"

	"github.com/kuba-04/task-manager-rest-demo/domain/user"
	"github.com/kuba-04/task-manager-rest-demo/domain/validation"
)

// Task is a unit of trackable work. Fields change only through the named
// methods; persistence is the caller's job.
type Task struct {
	id            ID
	title         string
	description   *string
	deadline      *time.Time
	status        Status
	assignedUsers []user.ID
}

// New validates the input and builds a task in StatusNew. Duplicates in
// assigned are kept as given.
func New(id ID, title string, description *string, deadline *time.Time, assigned []user.ID) (*Task, error) {
	if id.IsZero() {
		return nil, &validation.Error{Entity: "task", Field: "id"}
	}
	if err := validation.Required("task", "title", title); err != nil {
		return nil, err
	}
	return Restore(id, title, description, deadline, StatusNew, assigned), nil
}

// Restore rebuilds a task from stored state without validation.
func Restore(id ID, title string, description *string, deadline *time.Time, status Status, assigned []user.ID) *Task {
	return &Task{
		id:            id,
		title:         title,
		description:   cloneString(description),
		deadline:      cloneTime(deadline),
		status:        status,
		assignedUsers: slices.Clone(assigned),
	}
}

// AssignUser adds userID unless it is already assigned. Re-assigning is not an error.
func (t *Task) AssignUser(userID user.ID) {
	if slices.Contains(t.assignedUsers, userID) {
		return
	}
	t.assignedUsers = append(t.assignedUsers, userID)
}

// UnassignUser removes userID and reports whether it was assigned.
func (t *Task) UnassignUser(userID user.ID) bool {
	i := slices.Index(t.assignedUsers, userID)
	if i < 0 {
		return false
	}
	t.assignedUsers = slices.Delete(t.assignedUsers, i, i+1)
	return true
}

func (t *Task) ChangeStatus(status Status) {
	t.status = status
}

// ChangeTitle does not re-check blankness; only New does.
func (t *Task) ChangeTitle(title string) {
	t.title = title
}

func (t *Task) ChangeDescription(description *string) {
	t.description = cloneString(description)
}

func (t *Task) ChangeDeadline(deadline *time.Time) {
	t.deadline = cloneTime(deadline)
}

func (t *Task) ID() ID         { return t.id }
func (t *Task) Title() string  { return t.title }
func (t *Task) Status() Status { return t.status }

// IsAssigned reports whether userID is in the assigned set.
func (t *Task) IsAssigned(userID user.ID) bool {
	return slices.Contains(t.assignedUsers, userID)
}

// Description returns nil when the task has no description.
func (t *Task) Description() *string { return cloneString(t.description) }

// Deadline returns nil when the task has no deadline.
func (t *Task) Deadline() *time.Time { return cloneTime(t.deadline) }

// AssignedUsers returns a copy in assignment order.
func (t *Task) AssignedUsers() []user.ID {
	return slices.Clone(t.assignedUsers)
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneTime(ts *time.Time) *time.Time {
	if ts == nil {
		return nil
	}
	v := *ts
	return &v
}
