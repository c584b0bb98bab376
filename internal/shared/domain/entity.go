package domain

import (
	"time"

	"github.com/google/uuid"
)

// Entity is a domain object with a stable identity.
type Entity interface {
	ID() uuid.UUID
	CreatedAt() time.Time
	UpdatedAt() time.Time
}

// BaseEntity carries the identity and lifecycle timestamps shared by all entities.
type BaseEntity struct {
	id        uuid.UUID
	createdAt time.Time
	updatedAt time.Time
}

// NewBaseEntity creates an entity with a fresh ID and current timestamps.
func NewBaseEntity() BaseEntity {
	now := time.Now().UTC()
	return BaseEntity{id: uuid.New(), createdAt: now, updatedAt: now}
}

// NewBaseEntityWithID creates an entity with a caller-chosen ID.
func NewBaseEntityWithID(id uuid.UUID) BaseEntity {
	now := time.Now().UTC()
	return BaseEntity{id: id, createdAt: now, updatedAt: now}
}

// RehydrateBaseEntity restores an entity from persisted state.
func RehydrateBaseEntity(id uuid.UUID, createdAt, updatedAt time.Time) BaseEntity {
	return BaseEntity{id: id, createdAt: createdAt, updatedAt: updatedAt}
}

func (e BaseEntity) ID() uuid.UUID        { return e.id }
func (e BaseEntity) CreatedAt() time.Time { return e.createdAt }
func (e BaseEntity) UpdatedAt() time.Time { return e.updatedAt }

// Touch bumps the updatedAt timestamp.
func (e *BaseEntity) Touch() {
	e.updatedAt = time.Now().UTC()
}
