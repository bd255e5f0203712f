package task

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/kuba-04/task-manager-rest-demo/domain/page"
	domain "github.com/kuba-04/task-manager-rest-demo/domain/task"
	"github.com/kuba-04/task-manager-rest-demo/domain/user"
)

// taskAdapter implements TaskPort over the task module's services. Faults in
// replies come back as *TaskNotFoundError, *UserNotFoundError or
// *validation.Error.
type taskAdapter struct {
	container mono.ServiceContainer
}

// NewTaskAdapter creates a new adapter for task services.
// container is the ServiceContainer of the task module received via SetDependencyServiceContainer.
func NewTaskAdapter(container mono.ServiceContainer) TaskPort {
	if container == nil {
		panic("task adapter requires non-nil ServiceContainer")
	}
	return &taskAdapter{container: container}
}

// CreateTask creates a task via the create-task service.
func (a *taskAdapter) CreateTask(ctx context.Context, req *CreateTaskRequest) (*TaskInfo, error) {
	var resp CreateTaskResponse
	if err := callService(ctx, a.container, "create-task", req, &resp); err != nil {
		return nil, err
	}
	if resp.Fault != nil {
		return nil, faultError(resp.Fault)
	}
	return resp.Task, nil
}

// GetTask retrieves a task via the get-task service.
func (a *taskAdapter) GetTask(ctx context.Context, taskID domain.ID) (*TaskInfo, bool, error) {
	req := GetTaskRequest{TaskID: taskID}
	var resp GetTaskResponse
	if err := callService(ctx, a.container, "get-task", &req, &resp); err != nil {
		return nil, false, err
	}
	return resp.Task, resp.Found, nil
}

// ChangeTaskStatus changes a task status via the change-task-status service.
func (a *taskAdapter) ChangeTaskStatus(ctx context.Context, taskID domain.ID, status domain.Status) error {
	req := ChangeTaskStatusRequest{TaskID: taskID, Status: status}
	return command(ctx, a.container, "change-task-status", &req)
}

// AssignUsers assigns users via the assign-users service.
func (a *taskAdapter) AssignUsers(ctx context.Context, taskID domain.ID, userIDs []user.ID) error {
	req := AssignUsersRequest{TaskID: taskID, UserIDs: userIDs}
	return command(ctx, a.container, "assign-users", &req)
}

// EditTask applies p via the edit-task service.
func (a *taskAdapter) EditTask(ctx context.Context, taskID domain.ID, p Patch) error {
	req := newEditTaskRequest(taskID, p)
	return command(ctx, a.container, "edit-task", &req)
}

// DeleteTask deletes a task via the delete-task service.
func (a *taskAdapter) DeleteTask(ctx context.Context, taskID domain.ID) error {
	req := DeleteTaskRequest{TaskID: taskID}
	return command(ctx, a.container, "delete-task", &req)
}

// FindTasks searches tasks via the find-tasks service.
func (a *taskAdapter) FindTasks(ctx context.Context, req *FindTasksRequest) (page.Page[TaskInfo], error) {
	var resp FindTasksResponse
	if err := callService(ctx, a.container, "find-tasks", req, &resp); err != nil {
		return page.Page[TaskInfo]{}, err
	}
	if resp.Fault != nil {
		return page.Page[TaskInfo]{}, faultError(resp.Fault)
	}
	return resp.Tasks, nil
}

// command calls a task command service and turns a fault into an error.
func command[Req any](ctx context.Context, container mono.ServiceContainer, service string, req *Req) error {
	var resp CommandResponse
	if err := callService(ctx, container, service, req, &resp); err != nil {
		return err
	}
	if resp.Fault != nil {
		return faultError(resp.Fault)
	}
	return nil
}

func callService[Req, Resp any](ctx context.Context, container mono.ServiceContainer, service string, req *Req, resp *Resp) error {
	if err := helper.CallRequestReplyService(
		ctx,
		container,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		resp,
	); err != nil {
		return fmt.Errorf("%s service call failed: %w", service, err)
	}
	return nil
}
