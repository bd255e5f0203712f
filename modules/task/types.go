package task

import (
	"context"
	"time"

	"github.com/kuba-04/task-manager-rest-demo/domain/page"
	domain "github.com/kuba-04/task-manager-rest-demo/domain/task"
	"github.com/kuba-04/task-manager-rest-demo/domain/user"
	"github.com/kuba-04/task-manager-rest-demo/fault"
)

// TaskInfo represents task information.
type TaskInfo struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   *string    `json:"description,omitempty"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	Status        string     `json:"status"`
	AssignedUsers []string   `json:"assigned_users"`
}

// CreateTaskRequest is the request for creating a task.
type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Users       []user.ID  `json:"users,omitempty"`
}

// CreateTaskResponse carries the created task or the fault that prevented it.
type CreateTaskResponse struct {
	Task  *TaskInfo    `json:"task,omitempty"`
	Fault *fault.Fault `json:"fault,omitempty"`
}

// GetTaskRequest is the request for getting a task.
type GetTaskRequest struct {
	TaskID domain.ID `json:"task_id"`
}

// GetTaskResponse is the response for getting a task.
type GetTaskResponse struct {
	Task  *TaskInfo `json:"task,omitempty"`
	Found bool      `json:"found"`
}

// ChangeTaskStatusRequest is the request for changing a task status.
type ChangeTaskStatusRequest struct {
	TaskID domain.ID     `json:"task_id"`
	Status domain.Status `json:"status"`
}

// AssignUsersRequest is the request for assigning users to a task.
type AssignUsersRequest struct {
	TaskID  domain.ID `json:"task_id"`
	UserIDs []user.ID `json:"user_ids"`
}

// EditTaskRequest is the wire form of a Patch. A field is applied only when
// its Set flag is true.
type EditTaskRequest struct {
	TaskID         domain.ID  `json:"task_id"`
	SetTitle       bool       `json:"set_title,omitempty"`
	Title          string     `json:"title,omitempty"`
	SetDescription bool       `json:"set_description,omitempty"`
	Description    *string    `json:"description,omitempty"`
	SetDeadline    bool       `json:"set_deadline,omitempty"`
	Deadline       *time.Time `json:"deadline,omitempty"`
	Users          []user.ID  `json:"users,omitempty"`
}

// CommandResponse is the reply of the task commands; Fault is nil on success.
type CommandResponse struct {
	Fault *fault.Fault `json:"fault,omitempty"`
}

// DeleteTaskRequest is the request for deleting a task.
type DeleteTaskRequest struct {
	TaskID domain.ID `json:"task_id"`
}

// FindTasksRequest filters and pages tasks. Empty fields do not constrain.
type FindTasksRequest struct {
	Title          string         `json:"title,omitempty"`
	Description    string         `json:"description,omitempty"`
	Status         *domain.Status `json:"status,omitempty"`
	DeadlineFrom   *time.Time     `json:"deadline_from,omitempty"`
	DeadlineTo     *time.Time     `json:"deadline_to,omitempty"`
	AssignedUserID *user.ID       `json:"assigned_user_id,omitempty"`
	Page           int            `json:"page"`
	Size           int            `json:"size"`
}

// FindTasksResponse is one page of tasks, or the fault that rejected the search.
type FindTasksResponse struct {
	Tasks page.Page[TaskInfo] `json:"tasks"`
	Fault *fault.Fault        `json:"fault,omitempty"`
}

// TaskPort defines the task operations available to driving adapters.
type TaskPort interface {
	CreateTask(ctx context.Context, req *CreateTaskRequest) (*TaskInfo, error)
	GetTask(ctx context.Context, taskID domain.ID) (*TaskInfo, bool, error)
	ChangeTaskStatus(ctx context.Context, taskID domain.ID, status domain.Status) error
	AssignUsers(ctx context.Context, taskID domain.ID, userIDs []user.ID) error
	EditTask(ctx context.Context, taskID domain.ID, p Patch) error
	DeleteTask(ctx context.Context, taskID domain.ID) error
	FindTasks(ctx context.Context, req *FindTasksRequest) (page.Page[TaskInfo], error)
}

func newEditTaskRequest(taskID domain.ID, p Patch) EditTaskRequest {
	req := EditTaskRequest{TaskID: taskID, Users: p.Users}
	req.Title, req.SetTitle = p.Title.Get()
	req.Description, req.SetDescription = p.Description.Get()
	req.Deadline, req.SetDeadline = p.Deadline.Get()
	return req
}

func (r EditTaskRequest) patch() Patch {
	p := Patch{Users: r.Users}
	if r.SetTitle {
		p.Title = SetTo(r.Title)
	}
	if r.SetDescription {
		p.Description = SetTo(r.Description)
	}
	if r.SetDeadline {
		p.Deadline = SetTo(r.Deadline)
	}
	return p
}

func toTaskInfo(t *domain.Task) TaskInfo {
	assigned := t.AssignedUsers()
	users := make([]string, 0, len(assigned))
	for _, id := range assigned {
		users = append(users, id.String())
	}
	return TaskInfo{
		ID:            t.ID().String(),
		Title:         t.Title(),
		Description:   t.Description(),
		Deadline:      t.Deadline(),
		Status:        string(t.Status()),
		AssignedUsers: users,
	}
}
