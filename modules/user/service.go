package user

import (
	"context"
	"fmt"

	"github.com/kuba-04/task-manager-rest-demo/domain/page"
	domain "github.com/kuba-04/task-manager-rest-demo/domain/user"
)

// Store is the storage collaborator of the user service.
type Store interface {
	Save(ctx context.Context, u *domain.User) error
	FindByID(ctx context.Context, id domain.ID) (*domain.User, bool, error)
	DeleteByID(ctx context.Context, id domain.ID) error
	ExistsByID(ctx context.Context, id domain.ID) (bool, error)
	FindBySearchParams(ctx context.Context, params SearchParams, req page.Request) (page.Page[*domain.User], error)
}

// SearchParams filters users. Zero-valued fields do not constrain the result;
// string fields match case-insensitive substrings.
type SearchParams struct {
	ID        *domain.ID
	FirstName string
	LastName  string
	Email     string
}

// Service manages users. It has no cross-entity concerns.
type Service struct {
	store Store
}

// NewService creates a user service backed by store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// AddUser persists u unconditionally.
func (s *Service) AddUser(ctx context.Context, u *domain.User) error {
	if err := s.store.Save(ctx, u); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// DeleteUser removes the user if present. Tasks referencing the user are not
// touched here.
func (s *Service) DeleteUser(ctx context.Context, id domain.ID) error {
	if err := s.store.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// FindUserByID returns the user and whether it exists.
func (s *Service) FindUserByID(ctx context.Context, id domain.ID) (*domain.User, bool, error) {
	u, found, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, false, fmt.Errorf("failed to find user: %w", err)
	}
	return u, found, nil
}

// Exists reports whether a user with id is stored.
func (s *Service) Exists(ctx context.Context, id domain.ID) (bool, error) {
	exists, err := s.store.ExistsByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to check user: %w", err)
	}
	return exists, nil
}

// FindUsers returns one page of users matching params.
func (s *Service) FindUsers(ctx context.Context, params SearchParams, req page.Request) (page.Page[*domain.User], error) {
	result, err := s.store.FindBySearchParams(ctx, params, req)
	if err != nil {
		return page.Page[*domain.User]{}, fmt.Errorf("failed to search users: %w", err)
	}
	return result, nil
}
