package api

import "time"

// CreateUserRequest is the HTTP request for creating a user.
type CreateUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// UserResponse is the HTTP response for a single user.
type UserResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// CreateTaskRequest is the HTTP request for creating a task.
type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Deadline    *time.Time `json:"deadline"`
	Users       []string   `json:"users"`
}

// EditTaskRequest is the HTTP request for editing a task. Null or missing
// fields are left unchanged; users are added to the current assignees.
type EditTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Deadline    *time.Time `json:"deadline"`
	Users       []string   `json:"users"`
}

// ChangeStatusRequest is the HTTP request for changing a task status.
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// AssignUsersRequest is the HTTP request for assigning users to a task.
type AssignUsersRequest struct {
	UserIDs []string `json:"userIds"`
}

// TaskResponse is the HTTP response for a single task.
type TaskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Deadline    *time.Time `json:"deadline"`
	TaskStatus  string     `json:"taskStatus"`
	Users       []string   `json:"users"`
}

// HealthResponse is the HTTP response for health check.
type HealthResponse struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorResponse is the HTTP response for errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
