package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/accumanage/portal/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSessionEstablished EventType = "session_established"
	EventSessionTerminated  EventType = "session_terminated"
	EventLoginFailed        EventType = "login_failed"
	EventUserRegistered     EventType = "user_registered"
	EventUserRoleChanged    EventType = "user_role_changed"
	EventUserDeleted        EventType = "user_deleted"
)

// Actor identifies who caused an event. UserID is empty for anonymous callers.
type Actor struct {
	UserID string      `json:"user_id,omitempty"`
	Role   domain.Role `json:"role,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// New stamps an event with an ID and the current time.
func New(eventType EventType, actor Actor, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// SessionPayload describes a session change.
type SessionPayload struct {
	Scope domain.SessionScope `json:"scope"`
}

// LoginFailedPayload describes a rejected login.
type LoginFailedPayload struct {
	Email  string              `json:"email"`
	Scope  domain.SessionScope `json:"scope"`
	Reason string              `json:"reason"`
}

// UserRoleChangedPayload payload.
type UserRoleChangedPayload struct {
	UserID  string      `json:"user_id"`
	OldRole domain.Role `json:"old_role"`
	NewRole domain.Role `json:"new_role"`
}

// UserPayload references an affected account.
type UserPayload struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
}
