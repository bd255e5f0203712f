package task

import (
	"context"
	"slices"
	"sync"
	"testing"
	"time"

	domain "github.com/kuba-04/task-manager-rest-demo/domain/task"
	"github.com/kuba-04/task-manager-rest-demo/domain/user"
	"github.com/stretchr/testify/require"
)

// recordingStore is a MemoryStore that counts saves.
type recordingStore struct {
	*MemoryStore
	mu    sync.Mutex
	saves int
}

func newRecordingStore() *recordingStore {
	return &recordingStore{MemoryStore: NewMemoryStore()}
}

func (s *recordingStore) Save(ctx context.Context, t *domain.Task) error {
	s.mu.Lock()
	s.saves++
	s.mu.Unlock()
	return s.MemoryStore.Save(ctx, t)
}

func (s *recordingStore) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// userSet is a UserChecker over a fixed set of ids that records every check.
type userSet struct {
	mu      sync.Mutex
	ids     map[user.ID]bool
	checked []user.ID
}

func newUserSet(ids ...user.ID) *userSet {
	s := &userSet{ids: make(map[user.ID]bool)}
	for _, id := range ids {
		s.ids[id] = true
	}
	return s
}

func (s *userSet) ExistsByID(_ context.Context, id user.ID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.checked = append(s.checked, id)
	return s.ids[id], nil
}

func (s *userSet) checks() []user.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.checked)
}

func newTask(t *testing.T, title string, assigned ...user.ID) *domain.Task {
	t.Helper()

	task, err := domain.New(domain.NewID(), title, nil, nil, assigned)
	require.NoError(t, err)
	return task
}

func ptr[T any](v T) *T {
	return &v
}

func date(day int) time.Time {
	return time.Date(2025, time.March, day, 12, 0, 0, 0, time.UTC)
}
