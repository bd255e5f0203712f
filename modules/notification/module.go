// Package notification records an activity log of task and user events.
package notification

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/kuba-04/task-manager-rest-demo/events"
)

// NotificationLog represents a logged notification.
type NotificationLog struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Channel   string    `json:"channel"`
	Timestamp time.Time `json:"timestamp"`
}

// DefaultCapacity is the number of entries NewModule keeps.
const DefaultCapacity = 1000

// NotificationModule handles notifications as a driven adapter.
// It subscribes to domain events using the EventConsumerModule interface.
// The log is a ring buffer: once full, each new entry replaces the oldest.
type NotificationModule struct {
	notifications []NotificationLog
	next          int
	full          bool
	dropped       int
	mu            sync.RWMutex
}

var (
	_ mono.Module                = (*NotificationModule)(nil)
	_ mono.EventConsumerModule   = (*NotificationModule)(nil)
	_ mono.HealthCheckableModule = (*NotificationModule)(nil)
)

func NewModule() *NotificationModule {
	return NewModuleWithCapacity(DefaultCapacity)
}

// NewModuleWithCapacity keeps at most capacity entries. Non-positive values
// fall back to DefaultCapacity.
func NewModuleWithCapacity(capacity int) *NotificationModule {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &NotificationModule{
		notifications: make([]NotificationLog, capacity),
	}
}

func (m *NotificationModule) Name() string {
	return "notification"
}

func (m *NotificationModule) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCreatedV1, m.handleTaskCreated, m); err != nil {
		return fmt.Errorf("failed to register TaskCreated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskStatusChangedV1, m.handleTaskStatusChanged, m); err != nil {
		return fmt.Errorf("failed to register TaskStatusChanged consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskUsersAssignedV1, m.handleTaskUsersAssigned, m); err != nil {
		return fmt.Errorf("failed to register TaskUsersAssigned consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskEditedV1, m.handleTaskEdited, m); err != nil {
		return fmt.Errorf("failed to register TaskEdited consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskDeletedV1, m.handleTaskDeleted, m); err != nil {
		return fmt.Errorf("failed to register TaskDeleted consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.UserCreatedV1, m.handleUserCreated, m); err != nil {
		return fmt.Errorf("failed to register UserCreated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.UserDeletedV1, m.handleUserDeleted, m); err != nil {
		return fmt.Errorf("failed to register UserDeleted consumer: %w", err)
	}

	log.Printf("[notification] Registered event consumers: TaskCreated, TaskStatusChanged, TaskUsersAssigned, TaskEdited, TaskDeleted, UserCreated, UserDeleted")
	return nil
}

func (m *NotificationModule) handleTaskCreated(_ context.Context, event events.TaskCreatedEvent, _ *mono.Msg) error {
	log.Printf("[notification] Task created: %s - %s", event.TaskID, event.Title)
	message := fmt.Sprintf("New task '%s' created", event.Title)
	if len(event.AssignedUsers) > 0 {
		message += " for " + strings.Join(event.AssignedUsers, ", ")
	}
	m.logNotification(event.TaskID, "task_created", message)
	return nil
}

func (m *NotificationModule) handleTaskStatusChanged(_ context.Context, event events.TaskStatusChangedEvent, _ *mono.Msg) error {
	log.Printf("[notification] Task status changed: %s -> %s", event.TaskID, event.Status)
	m.logNotification(event.TaskID, "task_status_changed", fmt.Sprintf("Task %s is now %s", event.TaskID, event.Status))
	return nil
}

func (m *NotificationModule) handleTaskUsersAssigned(_ context.Context, event events.TaskUsersAssignedEvent, _ *mono.Msg) error {
	log.Printf("[notification] Users assigned to task %s: %v", event.TaskID, event.UserIDs)
	m.logNotification(event.TaskID, "task_users_assigned",
		fmt.Sprintf("Task %s assigned to %s", event.TaskID, strings.Join(event.UserIDs, ", ")))
	return nil
}

func (m *NotificationModule) handleTaskEdited(_ context.Context, event events.TaskEditedEvent, _ *mono.Msg) error {
	log.Printf("[notification] Task edited: %s %v", event.TaskID, event.Fields)
	message := fmt.Sprintf("Task %s edited", event.TaskID)
	if len(event.Fields) > 0 {
		message += ": " + strings.Join(event.Fields, ", ")
	}
	m.logNotification(event.TaskID, "task_edited", message)
	return nil
}

func (m *NotificationModule) handleTaskDeleted(_ context.Context, event events.TaskDeletedEvent, _ *mono.Msg) error {
	log.Printf("[notification] Task deleted: %s", event.TaskID)
	m.logNotification(event.TaskID, "task_deleted", fmt.Sprintf("Task %s deleted", event.TaskID))
	return nil
}

func (m *NotificationModule) handleUserCreated(_ context.Context, event events.UserCreatedEvent, _ *mono.Msg) error {
	log.Printf("[notification] User created: %s - %s", event.UserID, event.Email)
	m.logNotification(event.UserID, "user_created",
		fmt.Sprintf("Welcome %s %s <%s>", event.FirstName, event.LastName, event.Email))
	return nil
}

func (m *NotificationModule) handleUserDeleted(_ context.Context, event events.UserDeletedEvent, _ *mono.Msg) error {
	log.Printf("[notification] User deleted: %s", event.UserID)
	m.logNotification(event.UserID, "user_deleted", fmt.Sprintf("User %s deleted", event.UserID))
	return nil
}

func (m *NotificationModule) logNotification(id, notificationType, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.full {
		m.dropped++
	}
	m.notifications[m.next] = NotificationLog{
		ID:        id,
		Type:      notificationType,
		Message:   message,
		Channel:   "event",
		Timestamp: time.Now(),
	}
	m.next = (m.next + 1) % len(m.notifications)
	if m.next == 0 {
		m.full = true
	}
}

// GetNotifications returns a copy of the retained entries, oldest first.
func (m *NotificationModule) GetNotifications() []NotificationLog {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.full {
		return append([]NotificationLog(nil), m.notifications[:m.next]...)
	}
	result := make([]NotificationLog, 0, len(m.notifications))
	result = append(result, m.notifications[m.next:]...)
	return append(result, m.notifications[:m.next]...)
}

func (m *NotificationModule) size() int {
	if m.full {
		return len(m.notifications)
	}
	return m.next
}

func (m *NotificationModule) Start(_ context.Context) error {
	log.Println("[notification] Module started - listening for task and user events")
	return nil
}

func (m *NotificationModule) Stop(_ context.Context) error {
	log.Println("[notification] Module stopped")
	return nil
}

func (m *NotificationModule) Health(_ context.Context) mono.HealthStatus {
	m.mu.RLock()
	count, dropped := m.size(), m.dropped
	m.mu.RUnlock()

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{"notifications": count, "dropped": dropped},
	}
}
