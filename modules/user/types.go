package user

import (
	"context"

	"github.com/kuba-04/task-manager-rest-demo/domain/page"
	domain "github.com/kuba-04/task-manager-rest-demo/domain/user"
	"github.com/kuba-04/task-manager-rest-demo/fault"
)

// UserInfo represents user information.
type UserInfo struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// CreateUserRequest is the request for creating a user.
type CreateUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// CreateUserResponse carries the created user or the validation fault.
type CreateUserResponse struct {
	User  *UserInfo    `json:"user,omitempty"`
	Fault *fault.Fault `json:"fault,omitempty"`
}

// GetUserRequest is the request for getting a user.
type GetUserRequest struct {
	UserID domain.ID `json:"user_id"`
}

// GetUserResponse is the response for getting a user.
type GetUserResponse struct {
	User  *UserInfo `json:"user,omitempty"`
	Found bool      `json:"found"`
}

// DeleteUserRequest is the request for deleting a user.
type DeleteUserRequest struct {
	UserID domain.ID `json:"user_id"`
}

// DeleteUserResponse reports whether a stored user was removed.
type DeleteUserResponse struct {
	Deleted bool `json:"deleted"`
}

// FindUsersRequest filters and pages users. Empty fields do not constrain.
type FindUsersRequest struct {
	ID        *domain.ID `json:"id,omitempty"`
	FirstName string     `json:"first_name,omitempty"`
	LastName  string     `json:"last_name,omitempty"`
	Email     string     `json:"email,omitempty"`
	Page      int        `json:"page"`
	Size      int        `json:"size"`
}

// FindUsersResponse is one page of users.
type FindUsersResponse struct {
	Users page.Page[UserInfo] `json:"users"`
}

// ValidateUserRequest is the request for validating a user.
type ValidateUserRequest struct {
	UserID domain.ID `json:"user_id"`
}

// ValidateUserResponse is the response for validating a user.
type ValidateUserResponse struct {
	Valid bool `json:"valid"`
}

// UserPort defines the user operations available to other modules.
type UserPort interface {
	CreateUser(ctx context.Context, req *CreateUserRequest) (*UserInfo, error)
	GetUser(ctx context.Context, userID domain.ID) (*UserInfo, bool, error)
	DeleteUser(ctx context.Context, userID domain.ID) error
	FindUsers(ctx context.Context, req *FindUsersRequest) (page.Page[UserInfo], error)
	ExistsByID(ctx context.Context, userID domain.ID) (bool, error)
}

func toUserInfo(u *domain.User) UserInfo {
	return UserInfo{
		ID:        u.ID().String(),
		FirstName: u.FirstName(),
		LastName:  u.LastName(),
		Email:     u.Email(),
	}
}
