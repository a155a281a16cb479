package events

import (
	"time"

	"github.com/google/uuid"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "CHAT_MESSAGE_APPENDED").
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

// Chat lifecycle event codes.
const (
	TypeSessionCreated  = "CHAT_SESSION_CREATED"
	TypeSessionCleared  = "CHAT_SESSION_CLEARED"
	TypeSessionDeleted  = "CHAT_SESSION_DELETED"
	TypeSessionsSwept   = "CHAT_SESSIONS_SWEPT"
	TypeModeChanged     = "CHAT_MODE_CHANGED"
	TypeMessageAppended = "CHAT_MESSAGE_APPENDED"
)

func NewSessionCreated(sessionId uuid.UUID, mode string) Event {
	return BaseEvent{
		Type: TypeSessionCreated,
		Data: map[string]interface{}{
			"session_id": sessionId.String(),
			"mode":       mode,
		},
		OccurredAt: time.Now(),
	}
}

func NewSessionCleared(sessionId uuid.UUID) Event {
	return BaseEvent{
		Type: TypeSessionCleared,
		Data: map[string]interface{}{
			"session_id": sessionId.String(),
		},
		OccurredAt: time.Now(),
	}
}

func NewSessionDeleted(sessionId uuid.UUID) Event {
	return BaseEvent{
		Type: TypeSessionDeleted,
		Data: map[string]interface{}{
			"session_id": sessionId.String(),
		},
		OccurredAt: time.Now(),
	}
}

func NewSessionsSwept(removed int) Event {
	return BaseEvent{
		Type: TypeSessionsSwept,
		Data: map[string]interface{}{
			"removed": removed,
		},
		OccurredAt: time.Now(),
	}
}

func NewModeChanged(sessionId uuid.UUID, fromMode, toMode string) Event {
	return BaseEvent{
		Type: TypeModeChanged,
		Data: map[string]interface{}{
			"session_id": sessionId.String(),
			"from_mode":  fromMode,
			"to_mode":    toMode,
		},
		OccurredAt: time.Now(),
	}
}

func NewMessageAppended(sessionId uuid.UUID, role string, isVoice bool) Event {
	return BaseEvent{
		Type: TypeMessageAppended,
		Data: map[string]interface{}{
			"session_id": sessionId.String(),
			"role":       role,
			"is_voice":   isVoice,
		},
		OccurredAt: time.Now(),
	}
}
