package outbox

import (
	"context"
	"time"
)

// Repository persists outbox messages.
type Repository interface {
	// SaveBatch stores messages inside the caller's transaction.
	SaveBatch(ctx context.Context, msgs []*Message) error

	// GetUnpublished returns messages awaiting delivery, oldest first.
	// Messages scheduled for a future retry are excluded.
	GetUnpublished(ctx context.Context, limit int) ([]*Message, error)

	// MarkPublished records a successful delivery.
	MarkPublished(ctx context.Context, id int64) error

	// MarkFailed records a delivery failure and schedules the next attempt.
	MarkFailed(ctx context.Context, id int64, errMsg string, nextRetryAt time.Time) error

	// MarkDead parks a message that exhausted its retries.
	MarkDead(ctx context.Context, id int64, reason string) error

	// DeleteOld prunes published messages older than the retention window.
	DeleteOld(ctx context.Context, olderThan time.Duration) (int64, error)
}
