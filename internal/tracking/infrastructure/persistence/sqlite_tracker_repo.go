package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	advisorDomain "github.com/felixgeelhaar/codestrike/internal/advisor/domain"
	"github.com/felixgeelhaar/codestrike/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/codestrike/internal/tracking/domain"
)

// SQLiteTrackerRepository implements domain.Repository on SQLite. The
// tracker row holds the counters; daily logs live in their own table keyed
// by (user, day, source). Timestamps are RFC 3339 strings, the impact
// analysis is a JSON column.
type SQLiteTrackerRepository struct {
	conn database.Connection
}

// NewSQLiteTrackerRepository creates a SQLite tracker repository.
func NewSQLiteTrackerRepository(conn database.Connection) *SQLiteTrackerRepository {
	return &SQLiteTrackerRepository{conn: conn}
}

// FindByUserID loads the tracker with its full log history. Returns
// nil, nil when the user has no tracker yet.
func (r *SQLiteTrackerRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.Tracker, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)

	row := exec.QueryRow(ctx, `
		SELECT id, daily_target, baseline_target, streak, total_solved, last_sync_at, version, created_at, updated_at
		FROM trackers
		WHERE user_id = ?`,
		userID.String(),
	)

	var (
		id                           string
		dailyTarget, baselineTarget  int
		streak, totalSolved, version int
		lastSyncAt                   sql.NullString
		createdAt, updatedAt         string
	)
	err := row.Scan(&id, &dailyTarget, &baselineTarget, &streak, &totalSolved, &lastSyncAt, &version, &createdAt, &updatedAt)
	if database.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load tracker: %w", err)
	}

	trackerID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse tracker id: %w", err)
	}
	created, err := parseStoredTime(createdAt)
	if err != nil {
		return nil, err
	}
	updated, err := parseStoredTime(updatedAt)
	if err != nil {
		return nil, err
	}
	var lastSync *time.Time
	if lastSyncAt.Valid {
		t, err := parseStoredTime(lastSyncAt.String)
		if err != nil {
			return nil, err
		}
		lastSync = &t
	}

	logs, err := r.loadLogs(ctx, exec, userID)
	if err != nil {
		return nil, err
	}

	return domain.RehydrateTracker(trackerID, userID, dailyTarget, baselineTarget, streak, totalSolved, lastSync, logs, version, created, updated), nil
}

func (r *SQLiteTrackerRepository) loadLogs(ctx context.Context, exec database.Executor, userID uuid.UUID) ([]domain.DailyLog, error) {
	rows, err := exec.Query(ctx, `
		SELECT id, day, source, solved, missed_target, miss_reason, impact, created_at, updated_at
		FROM daily_logs
		WHERE user_id = ?
		ORDER BY day, source`,
		userID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("query daily logs: %w", err)
	}
	defer rows.Close()

	var logs []domain.DailyLog
	for rows.Next() {
		var (
			log                  domain.DailyLog
			id, day, source      string
			missedTarget         int
			missReason, impact   sql.NullString
			createdAt, updatedAt string
		)
		if err := rows.Scan(&id, &day, &source, &log.Solved, &missedTarget, &missReason, &impact, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan daily log: %w", err)
		}
		if log.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse log id: %w", err)
		}
		if log.Day, err = domain.ParseDayKey(day); err != nil {
			return nil, fmt.Errorf("parse log day: %w", err)
		}
		log.Source = domain.Source(source)
		log.MissedTarget = missedTarget != 0
		log.MissReason = missReason.String
		if impact.Valid && impact.String != "" {
			var analysis advisorDomain.ImpactAnalysis
			if err := json.Unmarshal([]byte(impact.String), &analysis); err != nil {
				return nil, fmt.Errorf("decode impact analysis: %w", err)
			}
			log.Impact = &analysis
		}
		if log.CreatedAt, err = parseStoredTime(createdAt); err != nil {
			return nil, err
		}
		if log.UpdatedAt, err = parseStoredTime(updatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

// Save writes the tracker state and replaces its log set wholesale. The
// log table mirrors the aggregate, so deletions from reconciliation are
// carried through.
func (r *SQLiteTrackerRepository) Save(ctx context.Context, tracker *domain.Tracker) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	tracker.IncrementVersion()

	_, err := exec.Exec(ctx, `
		INSERT INTO trackers (id, user_id, daily_target, baseline_target, streak, total_solved, last_sync_at, version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			daily_target = excluded.daily_target,
			baseline_target = excluded.baseline_target,
			streak = excluded.streak,
			total_solved = excluded.total_solved,
			last_sync_at = excluded.last_sync_at,
			version = excluded.version,
			updated_at = excluded.updated_at`,
		tracker.ID().String(),
		tracker.UserID().String(),
		tracker.DailyTarget(),
		tracker.BaselineTarget(),
		tracker.Streak(),
		tracker.TotalSolved(),
		formatNullableTime(tracker.LastSyncAt()),
		tracker.Version(),
		formatStoredTime(tracker.CreatedAt()),
		formatStoredTime(tracker.UpdatedAt()),
	)
	if err != nil {
		return fmt.Errorf("save tracker: %w", err)
	}

	if _, err := exec.Exec(ctx, `DELETE FROM daily_logs WHERE user_id = ?`, tracker.UserID().String()); err != nil {
		return fmt.Errorf("clear daily logs: %w", err)
	}
	for _, log := range tracker.Logs() {
		impact, err := encodeImpact(log.Impact)
		if err != nil {
			return err
		}
		_, err = exec.Exec(ctx, `
			INSERT INTO daily_logs (id, user_id, day, source, solved, missed_target, miss_reason, impact, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			log.ID.String(),
			tracker.UserID().String(),
			log.Day.String(),
			string(log.Source),
			log.Solved,
			boolToInt(log.MissedTarget),
			nullableString(log.MissReason),
			impact,
			formatStoredTime(log.CreatedAt),
			formatStoredTime(log.UpdatedAt),
		)
		if err != nil {
			return fmt.Errorf("save daily log: %w", err)
		}
	}
	return nil
}

// DeleteByUserID removes the tracker and every log it owns.
func (r *SQLiteTrackerRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	if _, err := exec.Exec(ctx, `DELETE FROM daily_logs WHERE user_id = ?`, userID.String()); err != nil {
		return fmt.Errorf("delete daily logs: %w", err)
	}
	if _, err := exec.Exec(ctx, `DELETE FROM trackers WHERE user_id = ?`, userID.String()); err != nil {
		return fmt.Errorf("delete tracker: %w", err)
	}
	return nil
}

func parseStoredTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored time: %w", err)
	}
	return t, nil
}

func formatStoredTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func formatNullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatStoredTime(*t)
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func encodeImpact(impact *advisorDomain.ImpactAnalysis) (any, error) {
	if impact == nil {
		return nil, nil
	}
	data, err := json.Marshal(impact)
	if err != nil {
		return nil, fmt.Errorf("encode impact analysis: %w", err)
	}
	return string(data), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
