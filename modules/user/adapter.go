package user

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/kuba-04/task-manager-rest-demo/domain/page"
	domain "github.com/kuba-04/task-manager-rest-demo/domain/user"
	"github.com/kuba-04/task-manager-rest-demo/fault"
)

// userAdapter implements UserPort over the user module's services.
type userAdapter struct {
	container mono.ServiceContainer
}

// NewUserAdapter creates a new adapter for user services.
// container is the ServiceContainer of the user module received via SetDependencyServiceContainer.
func NewUserAdapter(container mono.ServiceContainer) UserPort {
	if container == nil {
		panic("user adapter requires non-nil ServiceContainer")
	}
	return &userAdapter{container: container}
}

// CreateUser creates a user via the create-user service. Validation failures
// are returned as *validation.Error.
func (a *userAdapter) CreateUser(ctx context.Context, req *CreateUserRequest) (*UserInfo, error) {
	var resp CreateUserResponse
	if err := callService(ctx, a.container, "create-user", req, &resp); err != nil {
		return nil, err
	}
	if resp.Fault != nil {
		return nil, faultError(resp.Fault)
	}
	return resp.User, nil
}

// GetUser retrieves a user via the get-user service.
func (a *userAdapter) GetUser(ctx context.Context, userID domain.ID) (*UserInfo, bool, error) {
	req := GetUserRequest{UserID: userID}
	var resp GetUserResponse
	if err := callService(ctx, a.container, "get-user", &req, &resp); err != nil {
		return nil, false, err
	}
	return resp.User, resp.Found, nil
}

// DeleteUser deletes a user via the delete-user service.
func (a *userAdapter) DeleteUser(ctx context.Context, userID domain.ID) error {
	req := DeleteUserRequest{UserID: userID}
	var resp DeleteUserResponse
	return callService(ctx, a.container, "delete-user", &req, &resp)
}

// FindUsers searches users via the find-users service.
func (a *userAdapter) FindUsers(ctx context.Context, req *FindUsersRequest) (page.Page[UserInfo], error) {
	var resp FindUsersResponse
	if err := callService(ctx, a.container, "find-users", req, &resp); err != nil {
		return page.Page[UserInfo]{}, err
	}
	return resp.Users, nil
}

// ExistsByID checks a user via the validate-user service.
func (a *userAdapter) ExistsByID(ctx context.Context, userID domain.ID) (bool, error) {
	req := ValidateUserRequest{UserID: userID}
	var resp ValidateUserResponse
	if err := callService(ctx, a.container, "validate-user", &req, &resp); err != nil {
		return false, err
	}
	return resp.Valid, nil
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

func faultError(f *fault.Fault) error {
	if f.Code == fault.CodeValidation {
		return f.ValidationError()
	}
	return f
}
