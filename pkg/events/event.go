package events

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	NoteCreated    = "note.created"
	NoteUpdated    = "note.updated"
	NoteDeleted    = "note.deleted"
	UserRegistered = "user.registered"
	UserPromoted   = "user.promoted"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the dotted event name, e.g. "note.created".
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NoteEvent carries the note id and its owner. Note content is never included.
func NoteEvent(eventType, noteId, userId string, isPublic bool, at time.Time) BaseEvent {
	return BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"note_id":   noteId,
			"user_id":   userId,
			"is_public": isPublic,
		},
		OccurredAt: at.UTC(),
	}
}

func UserEvent(eventType, userId string, isAnonymous bool, at time.Time) BaseEvent {
	return BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"user_id":      userId,
			"is_anonymous": isAnonymous,
		},
		OccurredAt: at.UTC(),
	}
}

type envelope struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// Marshal encodes an event as {"type", "data", "occurred_at"} JSON.
func Marshal(e Event) ([]byte, error) {
	return json.Marshal(envelope{
		Type:       e.EventType(),
		Data:       e.Payload(),
		OccurredAt: e.Timestamp(),
	})
}

func Unmarshal(data []byte) (BaseEvent, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return BaseEvent{}, fmt.Errorf("decode event: %w", err)
	}
	if env.Type == "" {
		return BaseEvent{}, fmt.Errorf("decode event: missing type")
	}
	return BaseEvent{Type: env.Type, Data: env.Data, OccurredAt: env.OccurredAt}, nil
}
