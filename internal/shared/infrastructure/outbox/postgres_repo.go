package outbox

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/codestrike/internal/shared/infrastructure/database"
)

// PostgresRepository stores outbox messages in PostgreSQL.
type PostgresRepository struct {
	conn database.Connection
}

// NewPostgresRepository creates a PostgreSQL-backed outbox repository.
func NewPostgresRepository(conn database.Connection) *PostgresRepository {
	return &PostgresRepository{conn: conn}
}

func (r *PostgresRepository) SaveBatch(ctx context.Context, msgs []*Message) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	for _, msg := range msgs {
		_, err := exec.Exec(ctx, `
			INSERT INTO outbox_messages (event_id, aggregate_type, aggregate_id, event_type, routing_key, payload, metadata, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			msg.EventID,
			msg.AggregateType,
			msg.AggregateID,
			msg.EventType,
			msg.RoutingKey,
			msg.Payload,
			msg.Metadata,
			msg.CreatedAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("save outbox message: %w", err)
		}
	}
	return nil
}

func (r *PostgresRepository) GetUnpublished(ctx context.Context, limit int) ([]*Message, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	rows, err := exec.Query(ctx, `
		SELECT id, event_id, aggregate_type, aggregate_id, event_type, routing_key, payload, metadata, created_at, retry_count
		FROM outbox_messages
		WHERE published_at IS NULL
		  AND dead_lettered_at IS NULL
		  AND (next_retry_at IS NULL OR next_retry_at <= NOW())
		ORDER BY created_at
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query unpublished messages: %w", err)
	}
	defer rows.Close()

	var msgs []*Message
	for rows.Next() {
		var msg Message
		if err := rows.Scan(&msg.ID, &msg.EventID, &msg.AggregateType, &msg.AggregateID, &msg.EventType, &msg.RoutingKey, &msg.Payload, &msg.Metadata, &msg.CreatedAt, &msg.RetryCount); err != nil {
			return nil, fmt.Errorf("scan outbox message: %w", err)
		}
		msgs = append(msgs, &msg)
	}
	return msgs, rows.Err()
}

func (r *PostgresRepository) MarkPublished(ctx context.Context, id int64) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	_, err := exec.Exec(ctx,
		`UPDATE outbox_messages SET published_at = NOW(), last_error = NULL WHERE id = $1`, id)
	return err
}

func (r *PostgresRepository) MarkFailed(ctx context.Context, id int64, errMsg string, nextRetryAt time.Time) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	_, err := exec.Exec(ctx,
		`UPDATE outbox_messages SET retry_count = retry_count + 1, last_error = $1, next_retry_at = $2 WHERE id = $3`,
		errMsg, nextRetryAt.UTC(), id,
	)
	return err
}

func (r *PostgresRepository) MarkDead(ctx context.Context, id int64, reason string) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	_, err := exec.Exec(ctx,
		`UPDATE outbox_messages SET dead_lettered_at = NOW(), dead_letter_reason = $1 WHERE id = $2`,
		reason, id,
	)
	return err
}

func (r *PostgresRepository) DeleteOld(ctx context.Context, olderThan time.Duration) (int64, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	result, err := exec.Exec(ctx,
		`DELETE FROM outbox_messages WHERE published_at IS NOT NULL AND published_at < $1`,
		time.Now().Add(-olderThan).UTC(),
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
