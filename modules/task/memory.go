package task

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/kuba-04/task-manager-rest-demo/domain/page"
	domain "github.com/kuba-04/task-manager-rest-demo/domain/task"
)

// MemoryStore provides in-memory task storage. Tasks are copied on the way in
// and out so callers never share state with the store.
type MemoryStore struct {
	tasks map[domain.ID]*domain.Task
	order []domain.ID
	mu    sync.RWMutex
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tasks: make(map[domain.ID]*domain.Task),
	}
}

// Save stores a copy of t, replacing any task with the same id.
func (s *MemoryStore) Save(_ context.Context, t *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.tasks[t.ID()]; !found {
		s.order = append(s.order, t.ID())
	}
	s.tasks[t.ID()] = clone(t)
	return nil
}

// FindByID finds a task by id.
func (s *MemoryStore) FindByID(_ context.Context, id domain.ID) (*domain.Task, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, found := s.tasks[id]
	if !found {
		return nil, false, nil
	}
	return clone(t), true, nil
}

// DeleteByID deletes a task by id. Missing tasks are ignored.
func (s *MemoryStore) DeleteByID(_ context.Context, id domain.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.tasks[id]; !found {
		return nil
	}
	delete(s.tasks, id)
	s.order = slices.DeleteFunc(s.order, func(o domain.ID) bool { return o == id })
	return nil
}

// FindBySearchParams filters tasks in insertion order and returns one page.
func (s *MemoryStore) FindBySearchParams(_ context.Context, params SearchParams, req page.Request) (page.Page[*domain.Task], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*domain.Task
	for _, id := range s.order {
		if t := s.tasks[id]; matches(t, params) {
			matched = append(matched, t)
		}
	}

	window := page.Window(matched, req)
	items := make([]*domain.Task, 0, len(window))
	for _, t := range window {
		items = append(items, clone(t))
	}
	return page.New(items, int64(len(matched)), req), nil
}

func matches(t *domain.Task, p SearchParams) bool {
	if p.ID != nil && t.ID() != *p.ID {
		return false
	}
	if !containsFold(t.Title(), p.Title) {
		return false
	}
	if p.Description != "" {
		d := t.Description()
		if d == nil || !containsFold(*d, p.Description) {
			return false
		}
	}
	if p.Status != nil && t.Status() != *p.Status {
		return false
	}
	if p.DeadlineFrom != nil || p.DeadlineTo != nil {
		d := t.Deadline()
		if d == nil {
			return false
		}
		if p.DeadlineFrom != nil && d.Before(*p.DeadlineFrom) {
			return false
		}
		if p.DeadlineTo != nil && d.After(*p.DeadlineTo) {
			return false
		}
	}
	if p.AssignedUser != nil && !t.IsAssigned(*p.AssignedUser) {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return substr == "" || strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func clone(t *domain.Task) *domain.Task {
	return domain.Restore(t.ID(), t.Title(), t.Description(), t.Deadline(), t.Status(), t.AssignedUsers())
}
