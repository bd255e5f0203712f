// Package events defines the typed events exchanged between modules.
package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// TaskCreatedEvent is emitted when a new task is created.
type TaskCreatedEvent struct {
	TaskID        string     `json:"task_id"`
	Title         string     `json:"title"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	AssignedUsers []string   `json:"assigned_users"`
	CreatedAt     time.Time  `json:"created_at"`
}

// TaskCreatedV1 is the typed event definition for task creation.
// Subject: events.task.v1.task-created
var TaskCreatedV1 = helper.EventDefinition[TaskCreatedEvent](
	"task", "TaskCreated", "v1",
)

// TaskStatusChangedEvent is emitted when a task moves to another status.
type TaskStatusChangedEvent struct {
	TaskID    string    `json:"task_id"`
	Status    string    `json:"status"`
	ChangedAt time.Time `json:"changed_at"`
}

// TaskStatusChangedV1 is the typed event definition for status changes.
// Subject: events.task.v1.task-status-changed
var TaskStatusChangedV1 = helper.EventDefinition[TaskStatusChangedEvent](
	"task", "TaskStatusChanged", "v1",
)

// TaskUsersAssignedEvent is emitted when users are assigned to a task.
type TaskUsersAssignedEvent struct {
	TaskID     string    `json:"task_id"`
	UserIDs    []string  `json:"user_ids"`
	AssignedAt time.Time `json:"assigned_at"`
}

// TaskUsersAssignedV1 is the typed event definition for user assignment.
// Subject: events.task.v1.task-users-assigned
var TaskUsersAssignedV1 = helper.EventDefinition[TaskUsersAssignedEvent](
	"task", "TaskUsersAssigned", "v1",
)

// TaskEditedEvent is emitted after a partial edit. Fields lists the
// attributes the edit touched.
type TaskEditedEvent struct {
	TaskID   string    `json:"task_id"`
	Fields   []string  `json:"fields"`
	EditedAt time.Time `json:"edited_at"`
}

// TaskEditedV1 is the typed event definition for task edits.
// Subject: events.task.v1.task-edited
var TaskEditedV1 = helper.EventDefinition[TaskEditedEvent](
	"task", "TaskEdited", "v1",
)

// TaskDeletedEvent is emitted when a task is deleted.
type TaskDeletedEvent struct {
	TaskID    string    `json:"task_id"`
	DeletedAt time.Time `json:"deleted_at"`
}

// TaskDeletedV1 is the typed event definition for task deletion.
// Subject: events.task.v1.task-deleted
var TaskDeletedV1 = helper.EventDefinition[TaskDeletedEvent](
	"task", "TaskDeleted", "v1",
)
