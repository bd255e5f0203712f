// Package task is the task module: the task service, its storage and the
// mono module exposing it to the rest of the application.
package task

import (
	"context"
	"fmt"
	"time"

	"github.com/kuba-04/task-manager-rest-demo/domain/page"
	domain "github.com/kuba-04/task-manager-rest-demo/domain/task"
	"github.com/kuba-04/task-manager-rest-demo/domain/user"
)

// Store is the storage collaborator of the task service.
type Store interface {
	Save(ctx context.Context, t *domain.Task) error
	FindByID(ctx context.Context, id domain.ID) (*domain.Task, bool, error)
	DeleteByID(ctx context.Context, id domain.ID) error
	FindBySearchParams(ctx context.Context, params SearchParams, req page.Request) (page.Page[*domain.Task], error)
}

// UserChecker answers whether a user exists.
type UserChecker interface {
	ExistsByID(ctx context.Context, id user.ID) (bool, error)
}

// SearchParams filters tasks. Nil and empty fields do not constrain the
// result; set fields are combined with AND.
type SearchParams struct {
	ID           *domain.ID
	Title        string // case-insensitive substring
	Description  string // case-insensitive substring
	Status       *domain.Status
	DeadlineFrom *time.Time // inclusive
	DeadlineTo   *time.Time // inclusive
	AssignedUser *user.ID
}

// Service orchestrates task changes and keeps every referenced user existing
// at the time of the change.
type Service struct {
	store Store
	users UserChecker
}

// NewService creates a task service.
func NewService(store Store, users UserChecker) *Service {
	return &Service{store: store, users: users}
}

// AddTask saves t after checking its assigned users exist.
func (s *Service) AddTask(ctx context.Context, t *domain.Task) error {
	if err := s.checkUsers(ctx, t.AssignedUsers()); err != nil {
		return err
	}
	return s.save(ctx, t)
}

// FindTaskByID returns the task and whether it exists.
func (s *Service) FindTaskByID(ctx context.Context, id domain.ID) (*domain.Task, bool, error) {
	t, found, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, false, fmt.Errorf("failed to find task: %w", err)
	}
	return t, found, nil
}

// ChangeStatus moves the task to status. Any transition is allowed.
func (s *Service) ChangeStatus(ctx context.Context, id domain.ID, status domain.Status) error {
	t, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	t.ChangeStatus(status)
	return s.save(ctx, t)
}

// AssignUsers adds userIDs to the task in order. Nothing is assigned unless
// all of them exist.
func (s *Service) AssignUsers(ctx context.Context, id domain.ID, userIDs []user.ID) error {
	t, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.checkUsers(ctx, userIDs); err != nil {
		return err
	}
	for _, userID := range userIDs {
		t.AssignUser(userID)
	}
	return s.save(ctx, t)
}

// EditTask applies the set fields of p in the order title, description,
// deadline, then assigns p.Users. The task is saved once, after every check
// has passed.
func (s *Service) EditTask(ctx context.Context, id domain.ID, p Patch) error {
	t, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if title, ok := p.Title.Get(); ok {
		t.ChangeTitle(title)
	}
	if description, ok := p.Description.Get(); ok {
		t.ChangeDescription(description)
	}
	if deadline, ok := p.Deadline.Get(); ok {
		t.ChangeDeadline(deadline)
	}
	if err := s.checkUsers(ctx, p.Users); err != nil {
		return err
	}
	for _, userID := range p.Users {
		t.AssignUser(userID)
	}
	return s.save(ctx, t)
}

// DeleteTask removes the task. Deleting a missing task is not an error.
func (s *Service) DeleteTask(ctx context.Context, id domain.ID) error {
	if err := s.store.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// FindTasks returns one page of tasks matching params.
func (s *Service) FindTasks(ctx context.Context, params SearchParams, req page.Request) (page.Page[*domain.Task], error) {
	result, err := s.store.FindBySearchParams(ctx, params, req)
	if err != nil {
		return page.Page[*domain.Task]{}, fmt.Errorf("failed to search tasks: %w", err)
	}
	return result, nil
}

// UnassignUser removes every occurrence of userID from the tasks assigned to
// it and returns the number of distinct tasks changed.
func (s *Service) UnassignUser(ctx context.Context, userID user.ID) (int, error) {
	params := SearchParams{AssignedUser: &userID}
	req := page.Request{Index: 0, Size: unassignBatchSize}

	changed := 0
	for {
		// Unassigned tasks drop out of the filter, so the first page is
		// always the next batch.
		result, err := s.FindTasks(ctx, params, req)
		if err != nil {
			return changed, err
		}
		if len(result.Items) == 0 {
			return changed, nil
		}
		for _, t := range result.Items {
			removed := false
			for t.UnassignUser(userID) {
				removed = true
			}
			if !removed {
				return changed, fmt.Errorf("task %s matched assigned user %s but does not reference it", t.ID(), userID)
			}
			if err := s.save(ctx, t); err != nil {
				return changed, err
			}
			changed++
		}
	}
}

const unassignBatchSize = 100

func (s *Service) load(ctx context.Context, id domain.ID) (*domain.Task, error) {
	t, found, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load task: %w", err)
	}
	if !found {
		return nil, &TaskNotFoundError{ID: id}
	}
	return t, nil
}

func (s *Service) save(ctx context.Context, t *domain.Task) error {
	if err := s.store.Save(ctx, t); err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}
	return nil
}

// checkUsers fails on the first user that does not exist.
func (s *Service) checkUsers(ctx context.Context, userIDs []user.ID) error {
	for _, userID := range userIDs {
		exists, err := s.users.ExistsByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to check user %s: %w", userID, err)
		}
		if !exists {
			return &UserNotFoundError{ID: userID}
		}
	}
	return nil
}
