package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered     EventType = "user_registered"
	EventCategoryCreated    EventType = "category_created"
	EventCategoryDeleted    EventType = "category_deleted"
	EventFakeUsersGenerated EventType = "fake_users_generated"
)

// Event represents a domain event emitted by services.
type Event struct {
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// CategoryCreatedPayload payload.
type CategoryCreatedPayload struct {
	CategoryID int64    `json:"category_id"`
	Name       string   `json:"name"`
	Tags       []string `json:"tags"`
}

// CategoryDeletedPayload payload.
type CategoryDeletedPayload struct {
	CategoryID int64 `json:"category_id"`
}

// FakeUsersGeneratedPayload payload.
type FakeUsersGeneratedPayload struct {
	City  string `json:"city"`
	Count int    `json:"count"`
}
