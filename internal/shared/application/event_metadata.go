package application

import (
	"github.com/google/uuid"

	"github.com/felixgeelhaar/codestrike/internal/shared/domain"
)

type metadataSetter interface {
	SetMetadata(metadata domain.EventMetadata)
}

// NewEventMetadata creates command-scoped tracing metadata.
func NewEventMetadata(userID uuid.UUID) domain.EventMetadata {
	return domain.EventMetadata{
		CorrelationID: uuid.New(),
		CausationID:   uuid.New(),
		UserID:        userID,
	}
}

// ApplyEventMetadata stamps metadata onto every event that accepts it.
func ApplyEventMetadata(events []domain.DomainEvent, metadata domain.EventMetadata) {
	for _, event := range events {
		if setter, ok := event.(metadataSetter); ok {
			setter.SetMetadata(metadata)
		}
	}
}
