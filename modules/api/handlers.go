package api

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/kuba-04/task-manager-rest-demo/domain/page"
	domaintask "github.com/kuba-04/task-manager-rest-demo/domain/task"
	domainuser "github.com/kuba-04/task-manager-rest-demo/domain/user"
	"github.com/kuba-04/task-manager-rest-demo/domain/validation"
	"github.com/kuba-04/task-manager-rest-demo/fault"
	"github.com/kuba-04/task-manager-rest-demo/modules/task"
	"github.com/kuba-04/task-manager-rest-demo/modules/user"
)

// setupRoutes configures all HTTP routes.
func (m *APIModule) setupRoutes(app *fiber.App) {
	app.Get("/health", m.healthHandler)

	api := app.Group("/api")

	users := api.Group("/users")
	users.Post("/", m.createUser)
	users.Get("/", m.findUsers)
	users.Get("/:id", m.getUser)
	users.Delete("/:id", m.deleteUser)

	tasks := api.Group("/tasks")
	tasks.Post("/", m.createTask)
	tasks.Get("/", m.findTasks)
	tasks.Get("/:id", m.getTask)
	tasks.Put("/:id", m.editTask)
	tasks.Delete("/:id", m.deleteTask)
	tasks.Patch("/:id/status", m.changeTaskStatus)
	tasks.Patch("/:id/assign", m.assignUsers)
}

// healthHandler handles GET /health.
func (m *APIModule) healthHandler(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status: "healthy",
		Details: map[string]any{
			"module": "api",
			"port":   m.cfg.Port,
		},
	})
}

// createUser handles POST /api/users.
func (m *APIModule) createUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidRequest(c)
	}

	created, err := m.userAdapter.CreateUser(c.Context(), &user.CreateUserRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		return writeError(c, err)
	}

	c.Location("/api/users/" + created.ID)
	return c.Status(fiber.StatusCreated).JSON(toUserResponse(*created))
}

// getUser handles GET /api/users/:id.
func (m *APIModule) getUser(c *fiber.Ctx) error {
	id, err := domainuser.ParseID(c.Params("id"))
	if err != nil {
		return invalidID(c, err)
	}

	found, ok, err := m.userAdapter.GetUser(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   fault.CodeUserNotFound,
			Message: "user " + id.String() + " not found",
		})
	}

	return c.JSON(toUserResponse(*found))
}

// findUsers handles GET /api/users.
func (m *APIModule) findUsers(c *fiber.Ctx) error {
	req := user.FindUsersRequest{
		FirstName: c.Query("firstName"),
		LastName:  c.Query("lastName"),
		Email:     c.Query("email"),
		Page:      c.QueryInt("page"),
		Size:      c.QueryInt("size"),
	}
	if raw := c.Query("id"); raw != "" {
		id, err := domainuser.ParseID(raw)
		if err != nil {
			return invalidID(c, err)
		}
		req.ID = &id
	}

	result, err := m.userAdapter.FindUsers(c.Context(), &req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(page.Map(result, toUserResponse))
}

// deleteUser handles DELETE /api/users/:id.
func (m *APIModule) deleteUser(c *fiber.Ctx) error {
	id, err := domainuser.ParseID(c.Params("id"))
	if err != nil {
		return invalidID(c, err)
	}

	if err := m.userAdapter.DeleteUser(c.Context(), id); err != nil {
		return writeError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// createTask handles POST /api/tasks.
func (m *APIModule) createTask(c *fiber.Ctx) error {
	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidRequest(c)
	}
	userIDs, err := parseUserIDs(req.Users)
	if err != nil {
		return invalidID(c, err)
	}

	created, err := m.taskAdapter.CreateTask(c.Context(), &task.CreateTaskRequest{
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
		Users:       userIDs,
	})
	if err != nil {
		return writeError(c, err)
	}

	c.Location("/api/tasks/" + created.ID)
	return c.Status(fiber.StatusCreated).JSON(toTaskResponse(*created))
}

// getTask handles GET /api/tasks/:id.
func (m *APIModule) getTask(c *fiber.Ctx) error {
	id, err := domaintask.ParseID(c.Params("id"))
	if err != nil {
		return invalidID(c, err)
	}

	found, ok, err := m.taskAdapter.GetTask(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	if !ok {
		return writeError(c, &task.TaskNotFoundError{ID: id})
	}

	return c.JSON(toTaskResponse(*found))
}

// findTasks handles GET /api/tasks.
func (m *APIModule) findTasks(c *fiber.Ctx) error {
	req := task.FindTasksRequest{
		Title:       c.Query("title"),
		Description: c.Query("description"),
		Page:        c.QueryInt("page"),
		Size:        c.QueryInt("size"),
	}
	if raw := c.Query("taskStatus"); raw != "" {
		status, err := domaintask.ParseStatus(raw)
		if err != nil {
			return invalidStatus(c, err)
		}
		req.Status = &status
	}
	var err error
	if req.DeadlineFrom, err = parseTimeQuery(c, "deadlineFrom"); err != nil {
		return invalidRequest(c)
	}
	if req.DeadlineTo, err = parseTimeQuery(c, "deadlineTo"); err != nil {
		return invalidRequest(c)
	}
	if raw := c.Query("assignedUserId"); raw != "" {
		id, err := domainuser.ParseID(raw)
		if err != nil {
			return invalidID(c, err)
		}
		req.AssignedUserID = &id
	}

	result, err := m.taskAdapter.FindTasks(c.Context(), &req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(page.Map(result, toTaskResponse))
}

// changeTaskStatus handles PATCH /api/tasks/:id/status.
func (m *APIModule) changeTaskStatus(c *fiber.Ctx) error {
	id, err := domaintask.ParseID(c.Params("id"))
	if err != nil {
		return invalidID(c, err)
	}
	var req ChangeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidRequest(c)
	}
	status, err := domaintask.ParseStatus(req.Status)
	if err != nil {
		return invalidStatus(c, err)
	}

	if err := m.taskAdapter.ChangeTaskStatus(c.Context(), id, status); err != nil {
		return writeError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// assignUsers handles PATCH /api/tasks/:id/assign.
func (m *APIModule) assignUsers(c *fiber.Ctx) error {
	id, err := domaintask.ParseID(c.Params("id"))
	if err != nil {
		return invalidID(c, err)
	}
	var req AssignUsersRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidRequest(c)
	}
	userIDs, err := parseUserIDs(req.UserIDs)
	if err != nil {
		return invalidID(c, err)
	}

	if err := m.taskAdapter.AssignUsers(c.Context(), id, userIDs); err != nil {
		return writeError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// editTask handles PUT /api/tasks/:id.
func (m *APIModule) editTask(c *fiber.Ctx) error {
	id, err := domaintask.ParseID(c.Params("id"))
	if err != nil {
		return invalidID(c, err)
	}
	var req EditTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidRequest(c)
	}
	userIDs, err := parseUserIDs(req.Users)
	if err != nil {
		return invalidID(c, err)
	}

	p := task.Patch{Users: userIDs}
	if req.Title != nil {
		p.Title = task.SetTo(*req.Title)
	}
	if req.Description != nil {
		p.Description = task.SetTo(req.Description)
	}
	if req.Deadline != nil {
		p.Deadline = task.SetTo(req.Deadline)
	}

	if err := m.taskAdapter.EditTask(c.Context(), id, p); err != nil {
		return writeError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// deleteTask handles DELETE /api/tasks/:id.
func (m *APIModule) deleteTask(c *fiber.Ctx) error {
	id, err := domaintask.ParseID(c.Params("id"))
	if err != nil {
		return invalidID(c, err)
	}

	if err := m.taskAdapter.DeleteTask(c.Context(), id); err != nil {
		return writeError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// writeError maps a port error to an HTTP status.
func writeError(c *fiber.Ctx, err error) error {
	status, code := fiber.StatusInternalServerError, "internal_error"
	switch {
	case errors.Is(err, validation.ErrInvalid):
		status, code = fiber.StatusBadRequest, fault.CodeValidation
	case errors.Is(err, task.ErrTaskNotFound):
		status, code = fiber.StatusNotFound, fault.CodeTaskNotFound
	case errors.Is(err, task.ErrUserNotFound):
		status, code = fiber.StatusNotFound, fault.CodeUserNotFound
	default:
		log.Printf("[api] %s %s failed: %v", c.Method(), c.Path(), err)
		return c.Status(status).JSON(ErrorResponse{
			Error:   code,
			Message: "Internal Server Error",
		})
	}

	return c.Status(status).JSON(ErrorResponse{
		Error:   code,
		Message: err.Error(),
	})
}

func invalidRequest(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "invalid_request",
		Message: "Invalid request body",
	})
}

func invalidID(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "invalid_id",
		Message: err.Error(),
	})
}

func invalidStatus(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "invalid_status",
		Message: err.Error(),
	})
}

func parseUserIDs(raw []string) ([]domainuser.ID, error) {
	ids := make([]domainuser.ID, 0, len(raw))
	for _, s := range raw {
		id, err := domainuser.ParseID(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// parseTimeQuery reads an RFC 3339 timestamp or a plain date (UTC midnight).
func parseTimeQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		if t, err = time.Parse(time.DateOnly, raw); err != nil {
			return nil, err
		}
	}
	return &t, nil
}

func toUserResponse(u user.UserInfo) UserResponse {
	return UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}

func toTaskResponse(t task.TaskInfo) TaskResponse {
	users := t.AssignedUsers
	if users == nil {
		users = []string{}
	}
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Deadline:    t.Deadline,
		TaskStatus:  t.Status,
		Users:       users,
	}
}
