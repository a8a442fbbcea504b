package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OutboxStatus represents the status of an outbox entry
type OutboxStatus string

const (
	OutboxStatusPending OutboxStatus = "PENDING"
	OutboxStatusSent    OutboxStatus = "SENT"
)

// OutboxEntry is a serialized domain event waiting to be relayed.
// Entries are written in the same transaction as the state change that raised them.
type OutboxEntry struct {
	ID            uuid.UUID
	EventID       uuid.UUID
	EventType     string
	AggregateID   int64
	AggregateType string
	Payload       []byte
	Status        OutboxStatus
	CreatedAt     time.Time
}

// NewOutboxEntry creates a new outbox entry for a domain event
func NewOutboxEntry(event DomainEvent, payload []byte) *OutboxEntry {
	return &OutboxEntry{
		ID:            uuid.New(),
		EventID:       event.EventID(),
		EventType:     event.EventType(),
		AggregateID:   event.AggregateID(),
		AggregateType: event.AggregateType(),
		Payload:       payload,
		Status:        OutboxStatusPending,
		CreatedAt:     time.Now(),
	}
}

// OutboxRepository persists domain events alongside aggregate changes
type OutboxRepository interface {
	// Append serializes and stores the events
	Append(ctx context.Context, events ...DomainEvent) error
	// FindPending returns the oldest pending entries up to limit
	FindPending(ctx context.Context, limit int) ([]*OutboxEntry, error)
}
