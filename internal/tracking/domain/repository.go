package domain

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists trackers together with their daily logs.
type Repository interface {
	// FindByUserID loads a user's tracker, or nil when none exists yet.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Tracker, error)

	// Save writes the tracker state and its full log set.
	Save(ctx context.Context, tracker *Tracker) error

	// DeleteByUserID removes the tracker and all of its logs.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
