package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeEmployeeCreated = "employee.created"
)

// EmployeeCreatedEvent is published after a new employee record is persisted.
// The email module subscribes to it and enqueues the welcome mail.
type EmployeeCreatedEvent struct {
	BaseEvent
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
}

func NewEmployeeCreatedEvent(employeeID, name, email string) *EmployeeCreatedEvent {
	return &EmployeeCreatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeEmployeeCreated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"employee_id": employeeID,
				"name":        name,
				"email":       email,
			},
		},
		EmployeeID: employeeID,
		Name:       name,
		Email:      email,
	}
}
