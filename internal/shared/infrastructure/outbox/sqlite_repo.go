package outbox

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/codestrike/internal/shared/infrastructure/database"
)

// SQLiteRepository stores outbox messages in SQLite. Timestamps are kept
// as RFC 3339 strings.
type SQLiteRepository struct {
	conn database.Connection
}

// NewSQLiteRepository creates a SQLite-backed outbox repository.
func NewSQLiteRepository(conn database.Connection) *SQLiteRepository {
	return &SQLiteRepository{conn: conn}
}

func (r *SQLiteRepository) SaveBatch(ctx context.Context, msgs []*Message) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	for _, msg := range msgs {
		_, err := exec.Exec(ctx, `
			INSERT INTO outbox_messages (event_id, aggregate_type, aggregate_id, event_type, routing_key, payload, metadata, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			msg.EventID.String(),
			msg.AggregateType,
			msg.AggregateID.String(),
			msg.EventType,
			msg.RoutingKey,
			string(msg.Payload),
			string(msg.Metadata),
			msg.CreatedAt.UTC().Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("save outbox message: %w", err)
		}
	}
	return nil
}

func (r *SQLiteRepository) GetUnpublished(ctx context.Context, limit int) ([]*Message, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	rows, err := exec.Query(ctx, `
		SELECT id, event_id, aggregate_type, aggregate_id, event_type, routing_key, payload, metadata, created_at, retry_count
		FROM outbox_messages
		WHERE published_at IS NULL
		  AND dead_lettered_at IS NULL
		  AND (next_retry_at IS NULL OR next_retry_at <= ?)
		ORDER BY created_at
		LIMIT ?`,
		time.Now().UTC().Format(time.RFC3339Nano), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query unpublished messages: %w", err)
	}
	defer rows.Close()

	var msgs []*Message
	for rows.Next() {
		var (
			msg                  Message
			eventID, aggregateID string
			payload, metadata    string
			createdAt            string
		)
		if err := rows.Scan(&msg.ID, &eventID, &msg.AggregateType, &aggregateID, &msg.EventType, &msg.RoutingKey, &payload, &metadata, &createdAt, &msg.RetryCount); err != nil {
			return nil, fmt.Errorf("scan outbox message: %w", err)
		}
		if msg.EventID, err = uuid.Parse(eventID); err != nil {
			return nil, fmt.Errorf("parse event id: %w", err)
		}
		if msg.AggregateID, err = uuid.Parse(aggregateID); err != nil {
			return nil, fmt.Errorf("parse aggregate id: %w", err)
		}
		if msg.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		msg.Payload = []byte(payload)
		msg.Metadata = []byte(metadata)
		msgs = append(msgs, &msg)
	}
	return msgs, rows.Err()
}

func (r *SQLiteRepository) MarkPublished(ctx context.Context, id int64) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	_, err := exec.Exec(ctx,
		`UPDATE outbox_messages SET published_at = ?, last_error = NULL WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano), id,
	)
	return err
}

func (r *SQLiteRepository) MarkFailed(ctx context.Context, id int64, errMsg string, nextRetryAt time.Time) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	_, err := exec.Exec(ctx,
		`UPDATE outbox_messages SET retry_count = retry_count + 1, last_error = ?, next_retry_at = ? WHERE id = ?`,
		errMsg, nextRetryAt.UTC().Format(time.RFC3339Nano), id,
	)
	return err
}

func (r *SQLiteRepository) MarkDead(ctx context.Context, id int64, reason string) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	_, err := exec.Exec(ctx,
		`UPDATE outbox_messages SET dead_lettered_at = ?, dead_letter_reason = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano), reason, id,
	)
	return err
}

func (r *SQLiteRepository) DeleteOld(ctx context.Context, olderThan time.Duration) (int64, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	cutoff := time.Now().Add(-olderThan).UTC().Format(time.RFC3339Nano)
	result, err := exec.Exec(ctx,
		`DELETE FROM outbox_messages WHERE published_at IS NOT NULL AND published_at < ?`,
		cutoff,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
