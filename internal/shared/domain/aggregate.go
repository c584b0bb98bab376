package domain

import "github.com/google/uuid"

// AggregateRoot is the consistency boundary of an aggregate. It records
// domain events raised by state changes until they are drained into the
// transactional outbox.
type AggregateRoot interface {
	Entity
	DomainEvents() []DomainEvent
	ClearDomainEvents()
	Version() int
}

// BaseAggregateRoot provides event recording and optimistic-concurrency
// versioning for aggregates.
type BaseAggregateRoot struct {
	BaseEntity
	events  []DomainEvent
	version int
}

// NewBaseAggregateRoot creates an aggregate root with a fresh identity.
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: NewBaseEntity()}
}

// NewBaseAggregateRootWithID creates an aggregate root with a caller-chosen ID.
func NewBaseAggregateRootWithID(id uuid.UUID) BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: NewBaseEntityWithID(id)}
}

// RehydrateBaseAggregateRoot restores an aggregate from persisted state.
// The rehydrated aggregate starts with no pending events.
func RehydrateBaseAggregateRoot(entity BaseEntity, version int) BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: entity, version: version}
}

// DomainEvents returns the events recorded since the last clear.
func (a *BaseAggregateRoot) DomainEvents() []DomainEvent {
	return a.events
}

// ClearDomainEvents drops all recorded events.
func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.events = nil
}

// Record appends a domain event to the pending set.
func (a *BaseAggregateRoot) Record(event DomainEvent) {
	a.events = append(a.events, event)
}

// Version returns the persisted version for optimistic concurrency.
func (a *BaseAggregateRoot) Version() int {
	return a.version
}

// IncrementVersion bumps the version after a successful save.
func (a *BaseAggregateRoot) IncrementVersion() {
	a.version++
}
