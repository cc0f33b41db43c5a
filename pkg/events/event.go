package events

import (
	"time"

	"github.com/google/uuid"
)

// SubjectPrefix namespaces every audit event on the bus.
const SubjectPrefix = "licensewatch.admin."

// Event defines the contract for all audit events.
type Event interface {
	// EventId is unique per event and doubles as the bus deduplication key.
	EventId() string

	// EventType returns the unique code for this event (e.g., "FEATURE_SAVED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Id         string
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

// NewEvent stamps a fresh id and the current time.
func NewEvent(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		Id:         uuid.NewString(),
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now().UTC(),
	}
}

func (e BaseEvent) EventId() string {
	return e.Id
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

// Subject maps an event type onto its bus subject / topic.
func Subject(eventType string) string {
	return SubjectPrefix + eventType
}

// Envelope is the wire form shared by every transport.
type Envelope struct {
	Id         string                 `json:"id"`
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

func ToEnvelope(e Event) Envelope {
	return Envelope{
		Id:         e.EventId(),
		Type:       e.EventType(),
		Data:       e.Payload(),
		OccurredAt: e.Timestamp(),
	}
}
