package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/codestrike/internal/goals/domain"
	shared "github.com/felixgeelhaar/codestrike/internal/shared/domain"
	"github.com/felixgeelhaar/codestrike/internal/shared/infrastructure/database"
)

// PostgresGoalRepository implements domain.Repository on PostgreSQL.
type PostgresGoalRepository struct {
	conn database.Connection
}

// NewPostgresGoalRepository creates a PostgreSQL goal repository.
func NewPostgresGoalRepository(conn database.Connection) *PostgresGoalRepository {
	return &PostgresGoalRepository{conn: conn}
}

const postgresGoalColumns = `id, user_id, description, kind, target_count, progress, deadline, unit, created_at, updated_at`

// FindByID returns nil, nil when the goal does not exist.
func (r *PostgresGoalRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	row := exec.QueryRow(ctx, `SELECT `+postgresGoalColumns+` FROM goals WHERE id = $1`, id)
	goal, err := scanPostgresGoal(row)
	if database.IsNoRows(err) {
		return nil, nil
	}
	return goal, err
}

// ListByUserID returns all of a user's goals.
func (r *PostgresGoalRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Goal, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	rows, err := exec.Query(ctx, `SELECT `+postgresGoalColumns+` FROM goals WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("query goals: %w", err)
	}
	defer rows.Close()

	var goals []*domain.Goal
	for rows.Next() {
		goal, err := scanPostgresGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

// Save upserts the goal.
func (r *PostgresGoalRepository) Save(ctx context.Context, goal *domain.Goal) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	_, err := exec.Exec(ctx, `
		INSERT INTO goals (id, user_id, description, kind, target_count, progress, deadline, unit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			description = EXCLUDED.description,
			kind = EXCLUDED.kind,
			target_count = EXCLUDED.target_count,
			progress = EXCLUDED.progress,
			deadline = EXCLUDED.deadline,
			unit = EXCLUDED.unit,
			updated_at = EXCLUDED.updated_at`,
		goal.ID(),
		goal.UserID(),
		goal.Description(),
		string(goal.Kind()),
		goal.TargetCount(),
		goal.Progress(),
		nullableDeadline(goal.Deadline()),
		goal.Unit(),
		goal.CreatedAt(),
		goal.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save goal: %w", err)
	}
	return nil
}

// DeleteByUserID removes every goal the user owns.
func (r *PostgresGoalRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	if _, err := exec.Exec(ctx, `DELETE FROM goals WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete goals: %w", err)
	}
	return nil
}

func scanPostgresGoal(row database.Row) (*domain.Goal, error) {
	var (
		id, userID            uuid.UUID
		description, kind     string
		targetCount, progress int
		deadline              *string
		unit                  string
		createdAt, updatedAt  time.Time
	)
	err := row.Scan(&id, &userID, &description, &kind, &targetCount, &progress, &deadline, &unit, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	var due string
	if deadline != nil {
		due = *deadline
	}
	entity := shared.RehydrateBaseEntity(id, createdAt, updatedAt)
	return domain.RehydrateGoal(entity, userID, description, domain.Kind(kind), targetCount, progress, due, unit), nil
}
