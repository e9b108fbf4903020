// Package queue defines the change events published to the message broker
// and the publisher/consumer that move them.
package queue

import (
	"time"

	"github.com/google/uuid"
)

// Actions carried by an Event.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Event is published after a committed change to an inventory record.  It
// carries enough for downstream consumers to log or index the change
// without querying the primary database.  Data holds the read shape of
// the record after the change and is empty for deletions.
type Event struct {
	ID         string `json:"id"`
	Entity     string `json:"entity"`
	Action     string `json:"action"`
	EntityID   int64  `json:"entity_id"`
	OccurredAt string `json:"occurred_at"`
	Data       any    `json:"data,omitempty"`
}

// NewEvent stamps a new event with a random id and the current UTC time.
func NewEvent(entity, action string, entityID int64, data any) Event {
	return Event{
		ID:         uuid.NewString(),
		Entity:     entity,
		Action:     action,
		EntityID:   entityID,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
		Data:       data,
	}
}
