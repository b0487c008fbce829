package events

import "time"

// Event codes published on the bus. The NATS subject is "events.<code>".
const (
	TypeUserRegistered  = "USER_REGISTERED"
	TypeUserLogin       = "USER_LOGIN"
	TypeUserDeleted     = "USER_DELETED"
	TypePasswordChanged = "PASSWORD_CHANGED"
	TypeCreditsGranted  = "CREDITS_GRANTED"
	TypeSystemBroadcast = "SYSTEM_BROADCAST"
)

// Event is the contract for all system events.
type Event interface {
	// EventType returns the event code, e.g. "CREDITS_GRANTED".
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
