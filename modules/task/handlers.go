package task

import (
	"context"
	"time"

	"github.com/go-monolith/mono"
	"github.com/kuba-04/task-manager-rest-demo/domain/page"
	domain "github.com/kuba-04/task-manager-rest-demo/domain/task"
	"github.com/kuba-04/task-manager-rest-demo/events"
)

// createTask handles the create-task service request.
func (m *TaskModule) createTask(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (CreateTaskResponse, error) {
	t, err := domain.New(domain.NewID(), req.Title, req.Description, req.Deadline, req.Users)
	if err == nil {
		err = m.service.AddTask(ctx, t)
	}
	if err != nil {
		f, err := toFault(err)
		return CreateTaskResponse{Fault: f}, err
	}

	info := toTaskInfo(t)
	event := events.TaskCreatedEvent{
		TaskID:        info.ID,
		Title:         info.Title,
		Deadline:      info.Deadline,
		AssignedUsers: info.AssignedUsers,
		CreatedAt:     time.Now(),
	}
	m.publish("TaskCreated", info.ID, func(bus mono.EventBus) error {
		return events.TaskCreatedV1.Publish(bus, event, nil)
	})

	return CreateTaskResponse{Task: &info}, nil
}

// getTask handles the get-task service request.
func (m *TaskModule) getTask(ctx context.Context, req GetTaskRequest, _ *mono.Msg) (GetTaskResponse, error) {
	t, found, err := m.service.FindTaskByID(ctx, req.TaskID)
	if err != nil {
		return GetTaskResponse{}, err
	}
	if !found {
		return GetTaskResponse{Found: false}, nil
	}

	info := toTaskInfo(t)
	return GetTaskResponse{Task: &info, Found: true}, nil
}

// changeTaskStatus handles the change-task-status service request.
func (m *TaskModule) changeTaskStatus(ctx context.Context, req ChangeTaskStatusRequest, _ *mono.Msg) (CommandResponse, error) {
	status, err := domain.ParseStatus(string(req.Status))
	if err != nil {
		f, err := toFault(err)
		return CommandResponse{Fault: f}, err
	}

	if err := m.service.ChangeStatus(ctx, req.TaskID, status); err != nil {
		f, err := toFault(err)
		return CommandResponse{Fault: f}, err
	}

	event := events.TaskStatusChangedEvent{
		TaskID:    req.TaskID.String(),
		Status:    string(status),
		ChangedAt: time.Now(),
	}
	m.publish("TaskStatusChanged", req.TaskID.String(), func(bus mono.EventBus) error {
		return events.TaskStatusChangedV1.Publish(bus, event, nil)
	})

	return CommandResponse{}, nil
}

// assignUsers handles the assign-users service request.
func (m *TaskModule) assignUsers(ctx context.Context, req AssignUsersRequest, _ *mono.Msg) (CommandResponse, error) {
	if err := m.service.AssignUsers(ctx, req.TaskID, req.UserIDs); err != nil {
		f, err := toFault(err)
		return CommandResponse{Fault: f}, err
	}

	userIDs := make([]string, 0, len(req.UserIDs))
	for _, id := range req.UserIDs {
		userIDs = append(userIDs, id.String())
	}
	event := events.TaskUsersAssignedEvent{
		TaskID:     req.TaskID.String(),
		UserIDs:    userIDs,
		AssignedAt: time.Now(),
	}
	m.publish("TaskUsersAssigned", req.TaskID.String(), func(bus mono.EventBus) error {
		return events.TaskUsersAssignedV1.Publish(bus, event, nil)
	})

	return CommandResponse{}, nil
}

// editTask handles the edit-task service request.
func (m *TaskModule) editTask(ctx context.Context, req EditTaskRequest, _ *mono.Msg) (CommandResponse, error) {
	p := req.patch()
	if err := m.service.EditTask(ctx, req.TaskID, p); err != nil {
		f, err := toFault(err)
		return CommandResponse{Fault: f}, err
	}

	event := events.TaskEditedEvent{
		TaskID:   req.TaskID.String(),
		Fields:   p.ChangedFields(),
		EditedAt: time.Now(),
	}
	m.publish("TaskEdited", req.TaskID.String(), func(bus mono.EventBus) error {
		return events.TaskEditedV1.Publish(bus, event, nil)
	})

	return CommandResponse{}, nil
}

// deleteTask handles the delete-task service request.
func (m *TaskModule) deleteTask(ctx context.Context, req DeleteTaskRequest, _ *mono.Msg) (CommandResponse, error) {
	if err := m.service.DeleteTask(ctx, req.TaskID); err != nil {
		return CommandResponse{}, err
	}

	event := events.TaskDeletedEvent{
		TaskID:    req.TaskID.String(),
		DeletedAt: time.Now(),
	}
	m.publish("TaskDeleted", req.TaskID.String(), func(bus mono.EventBus) error {
		return events.TaskDeletedV1.Publish(bus, event, nil)
	})

	return CommandResponse{}, nil
}

// findTasks handles the find-tasks service request.
func (m *TaskModule) findTasks(ctx context.Context, req FindTasksRequest, _ *mono.Msg) (FindTasksResponse, error) {
	params := SearchParams{
		Title:        req.Title,
		Description:  req.Description,
		Status:       req.Status,
		DeadlineFrom: req.DeadlineFrom,
		DeadlineTo:   req.DeadlineTo,
		AssignedUser: req.AssignedUserID,
	}
	if params.Status != nil {
		status, err := domain.ParseStatus(string(*params.Status))
		if err != nil {
			f, err := toFault(err)
			return FindTasksResponse{Fault: f}, err
		}
		params.Status = &status
	}

	pageReq := page.Request{Index: req.Page, Size: req.Size}.Normalize(m.cfg.DefaultPageSize, m.cfg.MaxPageSize)
	result, err := m.service.FindTasks(ctx, params, pageReq)
	if err != nil {
		return FindTasksResponse{}, err
	}

	return FindTasksResponse{
		Tasks: page.Map(result, toTaskInfo),
	}, nil
}
