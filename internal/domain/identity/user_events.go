package identity

import (
	"github.com/google/uuid"
	"github.com/tradegate/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeUser = "User"
)

// Event type constants
const (
	EventTypeUserRegistered = "UserRegistered"
)

// UserRegisteredEvent is raised when a new account is registered
type UserRegisteredEvent struct {
	shared.BaseDomainEvent
	UserID      uuid.UUID `json:"user_id"`
	Email       string    `json:"email"`
	Role        Role      `json:"role"`
	CompanyName string    `json:"company_name"`
	Country     string    `json:"country"`
}

// NewUserRegisteredEvent creates a new UserRegisteredEvent
func NewUserRegisteredEvent(u *User) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserRegistered, AggregateTypeUser, u.ID),
		UserID:          u.ID,
		Email:           u.Email,
		Role:            u.Role,
		CompanyName:     u.CompanyName,
		Country:         u.Country,
	}
}

// EventType returns the event type name
func (e *UserRegisteredEvent) EventType() string {
	return EventTypeUserRegistered
}
