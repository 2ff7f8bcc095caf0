package workspace

import (
	"github.com/simpleaccounting/backend/internal/domain/shared"
)

// UserRegisteredEvent is raised when a new user account is created
type UserRegisteredEvent struct {
	shared.BaseDomainEvent
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// EventType returns the event type name
func (e *UserRegisteredEvent) EventType() string {
	return "UserRegistered"
}

// NewUserRegisteredEvent creates a new UserRegisteredEvent
func NewUserRegisteredEvent(user *User) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("UserRegistered", "User", user.ID, user.ID),
		Email:           user.Email,
		DisplayName:     user.DisplayName,
	}
}
