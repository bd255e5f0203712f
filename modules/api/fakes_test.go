package api

import (
	"context"
	"errors"
	"sync"

	"github.com/kuba-04/task-manager-rest-demo/domain/page"
	domaintask "github.com/kuba-04/task-manager-rest-demo/domain/task"
	domainuser "github.com/kuba-04/task-manager-rest-demo/domain/user"
	"github.com/kuba-04/task-manager-rest-demo/domain/validation"
	"github.com/kuba-04/task-manager-rest-demo/modules/task"
	"github.com/kuba-04/task-manager-rest-demo/modules/user"
)

var errBoom = errors.New("boom")

// fakeUsers is a UserPort over a map.
type fakeUsers struct {
	mu       sync.Mutex
	users    map[domainuser.ID]user.UserInfo
	lastFind *user.FindUsersRequest
	deleted  []domainuser.ID
	err      error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: make(map[domainuser.ID]user.UserInfo)}
}

func (f *fakeUsers) add(first, last, email string) user.UserInfo {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := domainuser.NewID()
	info := user.UserInfo{ID: id.String(), FirstName: first, LastName: last, Email: email}
	f.users[id] = info
	return info
}

func (f *fakeUsers) CreateUser(_ context.Context, req *user.CreateUserRequest) (*user.UserInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	if err := validation.Required("user", "email", req.Email); err != nil {
		return nil, err
	}
	info := f.add(req.FirstName, req.LastName, req.Email)
	return &info, nil
}

func (f *fakeUsers) GetUser(_ context.Context, id domainuser.ID) (*user.UserInfo, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, false, f.err
	}
	info, ok := f.users[id]
	if !ok {
		return nil, false, nil
	}
	return &info, true, nil
}

func (f *fakeUsers) DeleteUser(_ context.Context, id domainuser.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.deleted = append(f.deleted, id)
	delete(f.users, id)
	return f.err
}

func (f *fakeUsers) FindUsers(_ context.Context, req *user.FindUsersRequest) (page.Page[user.UserInfo], error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastFind = req
	items := make([]user.UserInfo, 0, len(f.users))
	for _, info := range f.users {
		items = append(items, info)
	}
	return page.New(items, int64(len(items)), page.Request{Index: req.Page, Size: req.Size}), f.err
}

func (f *fakeUsers) ExistsByID(_ context.Context, id domainuser.ID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.users[id]
	return ok, f.err
}

// fakeTasks is a TaskPort that records the last call and returns err.
type fakeTasks struct {
	mu       sync.Mutex
	tasks    map[domaintask.ID]task.TaskInfo
	lastCall string
	lastID   domaintask.ID
	status   domaintask.Status
	userIDs  []domainuser.ID
	patch    task.Patch
	created  *task.CreateTaskRequest
	lastFind *task.FindTasksRequest
	err      error
}

func newFakeTasks() *fakeTasks {
	return &fakeTasks{tasks: make(map[domaintask.ID]task.TaskInfo)}
}

func (f *fakeTasks) record(call string, id domaintask.ID) {
	f.lastCall = call
	f.lastID = id
}

func (f *fakeTasks) CreateTask(_ context.Context, req *task.CreateTaskRequest) (*task.TaskInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.created = req
	if f.err != nil {
		return nil, f.err
	}
	id := domaintask.NewID()
	users := make([]string, 0, len(req.Users))
	for _, u := range req.Users {
		users = append(users, u.String())
	}
	info := task.TaskInfo{
		ID:            id.String(),
		Title:         req.Title,
		Description:   req.Description,
		Deadline:      req.Deadline,
		Status:        string(domaintask.StatusNew),
		AssignedUsers: users,
	}
	f.tasks[id] = info
	return &info, nil
}

func (f *fakeTasks) GetTask(_ context.Context, id domaintask.ID) (*task.TaskInfo, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.record("get", id)
	if f.err != nil {
		return nil, false, f.err
	}
	info, ok := f.tasks[id]
	if !ok {
		return nil, false, nil
	}
	return &info, true, nil
}

func (f *fakeTasks) ChangeTaskStatus(_ context.Context, id domaintask.ID, status domaintask.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.record("status", id)
	f.status = status
	return f.err
}

func (f *fakeTasks) AssignUsers(_ context.Context, id domaintask.ID, userIDs []domainuser.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.record("assign", id)
	f.userIDs = userIDs
	return f.err
}

func (f *fakeTasks) EditTask(_ context.Context, id domaintask.ID, p task.Patch) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.record("edit", id)
	f.patch = p
	return f.err
}

func (f *fakeTasks) DeleteTask(_ context.Context, id domaintask.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.record("delete", id)
	return f.err
}

func (f *fakeTasks) FindTasks(_ context.Context, req *task.FindTasksRequest) (page.Page[task.TaskInfo], error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastFind = req
	if f.err != nil {
		return page.Page[task.TaskInfo]{}, f.err
	}
	items := make([]task.TaskInfo, 0, len(f.tasks))
	for _, info := range f.tasks {
		items = append(items, info)
	}
	return page.New(items, int64(len(items)), page.Request{Index: req.Page, Size: req.Size}), nil
}
