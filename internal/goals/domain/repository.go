package domain

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists goals.
type Repository interface {
	// FindByID loads one goal, or nil when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*Goal, error)

	// ListByUserID returns the user's goals in creation order.
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*Goal, error)

	// Save inserts or updates a goal.
	Save(ctx context.Context, goal *Goal) error

	// DeleteByUserID removes all of a user's goals.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
