package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/codestrike/internal/goals/domain"
	shared "github.com/felixgeelhaar/codestrike/internal/shared/domain"
	"github.com/felixgeelhaar/codestrike/internal/shared/infrastructure/database"
)

// SQLiteGoalRepository implements domain.Repository on SQLite.
type SQLiteGoalRepository struct {
	conn database.Connection
}

// NewSQLiteGoalRepository creates a SQLite goal repository.
func NewSQLiteGoalRepository(conn database.Connection) *SQLiteGoalRepository {
	return &SQLiteGoalRepository{conn: conn}
}

const sqliteGoalColumns = `id, user_id, description, kind, target_count, progress, deadline, unit, created_at, updated_at`

// FindByID returns nil, nil when the goal does not exist.
func (r *SQLiteGoalRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	row := exec.QueryRow(ctx, `SELECT `+sqliteGoalColumns+` FROM goals WHERE id = ?`, id.String())
	goal, err := scanSQLiteGoal(row)
	if database.IsNoRows(err) {
		return nil, nil
	}
	return goal, err
}

// ListByUserID returns all of a user's goals.
func (r *SQLiteGoalRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Goal, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	rows, err := exec.Query(ctx, `SELECT `+sqliteGoalColumns+` FROM goals WHERE user_id = ? ORDER BY created_at`, userID.String())
	if err != nil {
		return nil, fmt.Errorf("query goals: %w", err)
	}
	defer rows.Close()

	var goals []*domain.Goal
	for rows.Next() {
		goal, err := scanSQLiteGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

// Save upserts the goal.
func (r *SQLiteGoalRepository) Save(ctx context.Context, goal *domain.Goal) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	_, err := exec.Exec(ctx, `
		INSERT INTO goals (id, user_id, description, kind, target_count, progress, deadline, unit, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			description = excluded.description,
			kind = excluded.kind,
			target_count = excluded.target_count,
			progress = excluded.progress,
			deadline = excluded.deadline,
			unit = excluded.unit,
			updated_at = excluded.updated_at`,
		goal.ID().String(),
		goal.UserID().String(),
		goal.Description(),
		string(goal.Kind()),
		goal.TargetCount(),
		goal.Progress(),
		nullableDeadline(goal.Deadline()),
		goal.Unit(),
		goal.CreatedAt().UTC().Format(time.RFC3339Nano),
		goal.UpdatedAt().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save goal: %w", err)
	}
	return nil
}

// DeleteByUserID removes every goal the user owns.
func (r *SQLiteGoalRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	if _, err := exec.Exec(ctx, `DELETE FROM goals WHERE user_id = ?`, userID.String()); err != nil {
		return fmt.Errorf("delete goals: %w", err)
	}
	return nil
}

func scanSQLiteGoal(row database.Row) (*domain.Goal, error) {
	var (
		id, userID, description, kind string
		targetCount, progress         int
		deadline                      sql.NullString
		unit                          string
		createdAt, updatedAt          string
	)
	err := row.Scan(&id, &userID, &description, &kind, &targetCount, &progress, &deadline, &unit, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	goalID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse goal id: %w", err)
	}
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("parse goal user id: %w", err)
	}
	created, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse goal created_at: %w", err)
	}
	updated, err := time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse goal updated_at: %w", err)
	}

	entity := shared.RehydrateBaseEntity(goalID, created, updated)
	return domain.RehydrateGoal(entity, ownerID, description, domain.Kind(kind), targetCount, progress, deadline.String, unit), nil
}

func nullableDeadline(deadline string) any {
	if deadline == "" {
		return nil
	}
	return deadline
}
