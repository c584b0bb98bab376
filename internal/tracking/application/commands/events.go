package commands

import (
	"context"

	"github.com/google/uuid"

	sharedApplication "github.com/felixgeelhaar/codestrike/internal/shared/application"
	"github.com/felixgeelhaar/codestrike/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/codestrike/internal/tracking/domain"
)

// stageEvents drains the tracker's pending events into the outbox within
// the caller's transaction.
func stageEvents(ctx context.Context, repo outbox.Repository, userID uuid.UUID, tracker *domain.Tracker) error {
	events := tracker.DomainEvents()
	if len(events) == 0 {
		return nil
	}

	sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(userID))
	msgs, err := outbox.FromEvents(events)
	if err != nil {
		return err
	}
	if err := repo.SaveBatch(ctx, msgs); err != nil {
		return err
	}
	tracker.ClearDomainEvents()
	return nil
}
