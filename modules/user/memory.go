package user

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/kuba-04/task-manager-rest-demo/domain/page"
	domain "github.com/kuba-04/task-manager-rest-demo/domain/user"
)

// MemoryStore provides in-memory user storage. Search results follow the
// order in which users were first saved.
type MemoryStore struct {
	users map[domain.ID]*domain.User
	order []domain.ID
	mu    sync.RWMutex
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[domain.ID]*domain.User),
	}
}

// Save stores u, replacing any user with the same id.
func (s *MemoryStore) Save(_ context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.users[u.ID()]; !found {
		s.order = append(s.order, u.ID())
	}
	s.users[u.ID()] = u
	return nil
}

// FindByID finds a user by id.
func (s *MemoryStore) FindByID(_ context.Context, id domain.ID) (*domain.User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, found := s.users[id]
	return u, found, nil
}

// DeleteByID deletes a user by id. Missing users are ignored.
func (s *MemoryStore) DeleteByID(_ context.Context, id domain.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.users[id]; !found {
		return nil
	}
	delete(s.users, id)
	s.order = slices.DeleteFunc(s.order, func(o domain.ID) bool { return o == id })
	return nil
}

// ExistsByID checks if a user exists.
func (s *MemoryStore) ExistsByID(_ context.Context, id domain.ID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, found := s.users[id]
	return found, nil
}

// FindBySearchParams filters users in insertion order and returns one page.
func (s *MemoryStore) FindBySearchParams(_ context.Context, params SearchParams, req page.Request) (page.Page[*domain.User], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*domain.User
	for _, id := range s.order {
		if u := s.users[id]; matches(u, params) {
			matched = append(matched, u)
		}
	}
	return page.New(page.Window(matched, req), int64(len(matched)), req), nil
}

func matches(u *domain.User, p SearchParams) bool {
	if p.ID != nil && u.ID() != *p.ID {
		return false
	}
	return containsFold(u.FirstName(), p.FirstName) &&
		containsFold(u.LastName(), p.LastName) &&
		containsFold(u.Email(), p.Email)
}

func containsFold(s, substr string) bool {
	return substr == "" || strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
