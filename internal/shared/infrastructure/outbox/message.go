// Package outbox implements the transactional outbox: domain events are
// stored in the same transaction as the state change that raised them, and
// a background processor relays them to the message broker.
package outbox

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/codestrike/internal/shared/domain"
)

// Message is a domain event staged for publishing.
type Message struct {
	ID               int64
	EventID          uuid.UUID
	AggregateType    string
	AggregateID      uuid.UUID
	EventType        string
	RoutingKey       string
	Payload          json.RawMessage
	Metadata         json.RawMessage
	CreatedAt        time.Time
	PublishedAt      *time.Time
	NextRetryAt      *time.Time
	RetryCount       int
	LastError        *string
	DeadLetteredAt   *time.Time
	DeadLetterReason *string
}

// NewMessage stages a domain event. The event's exported fields become
// the payload; tracing metadata is serialized alongside.
func NewMessage(event domain.DomainEvent) (*Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	metadata, err := json.Marshal(event.Metadata())
	if err != nil {
		return nil, err
	}

	return &Message{
		EventID:       event.EventID(),
		AggregateType: event.AggregateType(),
		AggregateID:   event.AggregateID(),
		EventType:     event.RoutingKey(),
		RoutingKey:    event.RoutingKey(),
		Payload:       payload,
		Metadata:      metadata,
		CreatedAt:     event.OccurredAt(),
	}, nil
}

// FromEvents stages a batch of domain events.
func FromEvents(events []domain.DomainEvent) ([]*Message, error) {
	msgs := make([]*Message, 0, len(events))
	for _, event := range events {
		msg, err := NewMessage(event)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

// IsPublished reports whether the message was already relayed.
func (m *Message) IsPublished() bool {
	return m.PublishedAt != nil
}
