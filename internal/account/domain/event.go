package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventType names a committed lifecycle transition.
type EventType string

const (
	EventSignedUp        EventType = "account.signed_up"
	EventActivated       EventType = "account.activated"
	EventPasswordReset   EventType = "account.password_reset"
	EventPasswordChanged EventType = "account.password_changed"
	EventDetailsUpdated  EventType = "account.details_updated"
)

// Event is handed to the post-commit hooks and persisted by the event recorder.
type Event struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	Type      EventType
	Metadata  map[string]any
	CreatedAt time.Time
}

// NewEvent builds an event for account with a fresh id and the current time.
func NewEvent(eventType EventType, accountID uuid.UUID, metadata map[string]any) Event {
	return Event{
		ID:        uuid.Must(uuid.NewV7()),
		AccountID: accountID,
		Type:      eventType,
		Metadata:  metadata,
		CreatedAt: time.Now().UTC(),
	}
}
