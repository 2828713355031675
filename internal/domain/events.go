package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType enumerates all domain event types.
type EventType string

const (
	EventRegistrationStarted   EventType = "talent.registration.started"
	EventPositionsSelected     EventType = "talent.registration.positions_selected"
	EventRegistrationCompleted EventType = "talent.registration.completed"
	EventUserCreated           EventType = "talent.user.created"
)

// AggregateType enumerates the aggregate root types for outbox events.
type AggregateType string

const (
	AggregateRegistration AggregateType = "registration"
	AggregateUser         AggregateType = "user"
)

// OutboxDraft is an event row pending publication.
type OutboxDraft struct {
	EventID       uuid.UUID       `json:"event_id"`
	AggregateType AggregateType   `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	EventType     EventType       `json:"event_type"`
	PartitionKey  string          `json:"partition_key"`
	Payload       json.RawMessage `json:"payload"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

// NewOutboxDraft builds an outbox row for a registration-keyed event. The
// registration id doubles as the partition key so per-record ordering holds.
func NewOutboxDraft(agg AggregateType, eventType EventType, registrationID uuid.UUID, payload json.RawMessage) OutboxDraft {
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: agg,
		AggregateID:   registrationID.String(),
		EventType:     eventType,
		PartitionKey:  registrationID.String(),
		Payload:       payload,
		OccurredAt:    time.Now().UTC(),
	}
}
