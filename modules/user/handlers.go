package user

import (
	"context"
	"log"
	"time"

	"github.com/go-monolith/mono"
	"github.com/kuba-04/task-manager-rest-demo/domain/page"
	domain "github.com/kuba-04/task-manager-rest-demo/domain/user"
	"github.com/kuba-04/task-manager-rest-demo/events"
	"github.com/kuba-04/task-manager-rest-demo/fault"
)

// createUser handles the create-user service request.
func (m *UserModule) createUser(ctx context.Context, req CreateUserRequest, _ *mono.Msg) (CreateUserResponse, error) {
	u, err := domain.New(domain.NewID(), req.FirstName, req.LastName, req.Email)
	if err != nil {
		if f := fault.FromValidation(err); f != nil {
			return CreateUserResponse{Fault: f}, nil
		}
		return CreateUserResponse{}, err
	}

	if err := m.service.AddUser(ctx, u); err != nil {
		return CreateUserResponse{}, err
	}

	if m.eventBus != nil {
		event := events.UserCreatedEvent{
			UserID:    u.ID().String(),
			FirstName: u.FirstName(),
			LastName:  u.LastName(),
			Email:     u.Email(),
			CreatedAt: time.Now(),
		}
		if err := events.UserCreatedV1.Publish(m.eventBus, event, nil); err != nil {
			log.Printf("[user] Warning: failed to publish UserCreated event for user %s: %v", u.ID(), err)
		}
	}

	info := toUserInfo(u)
	return CreateUserResponse{User: &info}, nil
}

// getUser handles the get-user service request.
func (m *UserModule) getUser(ctx context.Context, req GetUserRequest, _ *mono.Msg) (GetUserResponse, error) {
	u, found, err := m.service.FindUserByID(ctx, req.UserID)
	if err != nil {
		return GetUserResponse{}, err
	}
	if !found {
		return GetUserResponse{Found: false}, nil
	}

	info := toUserInfo(u)
	return GetUserResponse{User: &info, Found: true}, nil
}

// deleteUser handles the delete-user service request. UserDeleted is only
// published when a stored user was removed.
func (m *UserModule) deleteUser(ctx context.Context, req DeleteUserRequest, _ *mono.Msg) (DeleteUserResponse, error) {
	id := req.UserID
	existed, err := m.service.Exists(ctx, id)
	if err != nil {
		return DeleteUserResponse{}, err
	}
	if err := m.service.DeleteUser(ctx, id); err != nil {
		return DeleteUserResponse{}, err
	}

	if existed && m.eventBus != nil {
		event := events.UserDeletedEvent{
			UserID:    id.String(),
			DeletedAt: time.Now(),
		}
		if err := events.UserDeletedV1.Publish(m.eventBus, event, nil); err != nil {
			log.Printf("[user] Warning: failed to publish UserDeleted event for user %s: %v", id, err)
		}
	}

	return DeleteUserResponse{Deleted: existed}, nil
}

// findUsers handles the find-users service request.
func (m *UserModule) findUsers(ctx context.Context, req FindUsersRequest, _ *mono.Msg) (FindUsersResponse, error) {
	params := SearchParams{
		ID:        req.ID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}

	pageReq := page.Request{Index: req.Page, Size: req.Size}.Normalize(m.cfg.DefaultPageSize, m.cfg.MaxPageSize)
	result, err := m.service.FindUsers(ctx, params, pageReq)
	if err != nil {
		return FindUsersResponse{}, err
	}

	return FindUsersResponse{
		Users: page.Map(result, toUserInfo),
	}, nil
}

// validateUser handles the validate-user service request.
func (m *UserModule) validateUser(ctx context.Context, req ValidateUserRequest, _ *mono.Msg) (ValidateUserResponse, error) {
	exists, err := m.service.Exists(ctx, req.UserID)
	if err != nil {
		return ValidateUserResponse{}, err
	}
	return ValidateUserResponse{Valid: exists}, nil
}
