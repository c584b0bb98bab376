package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	advisorDomain "github.com/felixgeelhaar/codestrike/internal/advisor/domain"
	"github.com/felixgeelhaar/codestrike/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/codestrike/internal/tracking/domain"
)

// PostgresTrackerRepository implements domain.Repository on PostgreSQL.
type PostgresTrackerRepository struct {
	conn database.Connection
}

// NewPostgresTrackerRepository creates a PostgreSQL tracker repository.
func NewPostgresTrackerRepository(conn database.Connection) *PostgresTrackerRepository {
	return &PostgresTrackerRepository{conn: conn}
}

// FindByUserID loads the tracker with its full log history. Returns
// nil, nil when the user has no tracker yet.
func (r *PostgresTrackerRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.Tracker, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)

	row := exec.QueryRow(ctx, `
		SELECT id, daily_target, baseline_target, streak, total_solved, last_sync_at, version, created_at, updated_at
		FROM trackers
		WHERE user_id = $1`,
		userID,
	)

	var (
		id                           uuid.UUID
		dailyTarget, baselineTarget  int
		streak, totalSolved, version int
		lastSyncAt                   *time.Time
		createdAt, updatedAt         time.Time
	)
	err := row.Scan(&id, &dailyTarget, &baselineTarget, &streak, &totalSolved, &lastSyncAt, &version, &createdAt, &updatedAt)
	if database.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load tracker: %w", err)
	}

	logs, err := r.loadLogs(ctx, exec, userID)
	if err != nil {
		return nil, err
	}

	return domain.RehydrateTracker(id, userID, dailyTarget, baselineTarget, streak, totalSolved, lastSyncAt, logs, version, createdAt, updatedAt), nil
}

func (r *PostgresTrackerRepository) loadLogs(ctx context.Context, exec database.Executor, userID uuid.UUID) ([]domain.DailyLog, error) {
	rows, err := exec.Query(ctx, `
		SELECT id, day, source, solved, missed_target, miss_reason, impact, created_at, updated_at
		FROM daily_logs
		WHERE user_id = $1
		ORDER BY day, source`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query daily logs: %w", err)
	}
	defer rows.Close()

	var logs []domain.DailyLog
	for rows.Next() {
		var (
			log                domain.DailyLog
			day, source        string
			missReason, impact *string
		)
		if err := rows.Scan(&log.ID, &day, &source, &log.Solved, &log.MissedTarget, &missReason, &impact, &log.CreatedAt, &log.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan daily log: %w", err)
		}
		if log.Day, err = domain.ParseDayKey(day); err != nil {
			return nil, fmt.Errorf("parse log day: %w", err)
		}
		log.Source = domain.Source(source)
		if missReason != nil {
			log.MissReason = *missReason
		}
		if impact != nil && *impact != "" {
			var analysis advisorDomain.ImpactAnalysis
			if err := json.Unmarshal([]byte(*impact), &analysis); err != nil {
				return nil, fmt.Errorf("decode impact analysis: %w", err)
			}
			log.Impact = &analysis
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

// Save writes the tracker state and replaces its log set wholesale.
func (r *PostgresTrackerRepository) Save(ctx context.Context, tracker *domain.Tracker) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	tracker.IncrementVersion()

	_, err := exec.Exec(ctx, `
		INSERT INTO trackers (id, user_id, daily_target, baseline_target, streak, total_solved, last_sync_at, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id) DO UPDATE SET
			daily_target = EXCLUDED.daily_target,
			baseline_target = EXCLUDED.baseline_target,
			streak = EXCLUDED.streak,
			total_solved = EXCLUDED.total_solved,
			last_sync_at = EXCLUDED.last_sync_at,
			version = EXCLUDED.version,
			updated_at = EXCLUDED.updated_at`,
		tracker.ID(),
		tracker.UserID(),
		tracker.DailyTarget(),
		tracker.BaselineTarget(),
		tracker.Streak(),
		tracker.TotalSolved(),
		tracker.LastSyncAt(),
		tracker.Version(),
		tracker.CreatedAt(),
		tracker.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save tracker: %w", err)
	}

	if _, err := exec.Exec(ctx, `DELETE FROM daily_logs WHERE user_id = $1`, tracker.UserID()); err != nil {
		return fmt.Errorf("clear daily logs: %w", err)
	}
	for _, log := range tracker.Logs() {
		impact, err := encodeImpact(log.Impact)
		if err != nil {
			return err
		}
		_, err = exec.Exec(ctx, `
			INSERT INTO daily_logs (id, user_id, day, source, solved, missed_target, miss_reason, impact, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			log.ID,
			tracker.UserID(),
			log.Day.String(),
			string(log.Source),
			log.Solved,
			log.MissedTarget,
			nullableString(log.MissReason),
			impact,
			log.CreatedAt,
			log.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("save daily log: %w", err)
		}
	}
	return nil
}

// DeleteByUserID removes the tracker and every log it owns.
func (r *PostgresTrackerRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	if _, err := exec.Exec(ctx, `DELETE FROM daily_logs WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete daily logs: %w", err)
	}
	if _, err := exec.Exec(ctx, `DELETE FROM trackers WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete tracker: %w", err)
	}
	return nil
}
