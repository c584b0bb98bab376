package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	advisorDomain "github.com/felixgeelhaar/codestrike/internal/advisor/domain"
	"github.com/felixgeelhaar/codestrike/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/codestrike/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/codestrike/internal/shared/infrastructure/migrations"
	"github.com/felixgeelhaar/codestrike/internal/tracking/domain"
)

func setupTrackerTestDB(t *testing.T) database.Connection {
	t.Helper()

	ctx := context.Background()
	conn, err := sqlite.NewMemoryConnection(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, migrations.Run(ctx, conn))
	return conn
}

func TestSQLiteTrackerRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("missing tracker returns nil without error", func(t *testing.T) {
		repo := NewSQLiteTrackerRepository(setupTrackerTestDB(t))

		tracker, err := repo.FindByUserID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, tracker)
	})

	t.Run("round trips state and logs", func(t *testing.T) {
		repo := NewSQLiteTrackerRepository(setupTrackerTestDB(t))
		userID := uuid.New()
		now := time.Now()

		tracker, err := domain.NewTracker(userID, 3)
		require.NoError(t, err)
		_, err = tracker.RecordManual(2, now)
		require.NoError(t, err)
		tracker.ApplySync(domain.SyncBatch{
			TotalSolved: 40,
			SolvedToday: 1,
			Entries:     []domain.DayCount{{Day: domain.NewDayKey(now), Count: 1}},
		}, now)
		require.NoError(t, repo.Save(ctx, tracker))

		loaded, err := repo.FindByUserID(ctx, userID)
		require.NoError(t, err)
		require.NotNil(t, loaded)

		assert.Equal(t, tracker.ID(), loaded.ID())
		assert.Equal(t, userID, loaded.UserID())
		assert.Equal(t, 3, loaded.DailyTarget())
		assert.Equal(t, 42, loaded.TotalSolved())
		assert.Equal(t, tracker.Streak(), loaded.Streak())
		require.NotNil(t, loaded.LastSyncAt())
		assert.WithinDuration(t, now, *loaded.LastSyncAt(), time.Second)

		require.Len(t, loaded.Logs(), 2)
		assert.Equal(t, 3, loaded.TodayTotal(now))
	})

	t.Run("save replaces the log set", func(t *testing.T) {
		repo := NewSQLiteTrackerRepository(setupTrackerTestDB(t))
		userID := uuid.New()
		now := time.Now()

		tracker, err := domain.NewTracker(userID, 3)
		require.NoError(t, err)
		tracker.ApplySync(domain.SyncBatch{
			TotalSolved: 5,
			Entries: []domain.DayCount{
				{Day: domain.NewDayKey(now.AddDate(0, 0, -1)), Count: 2},
				{Day: domain.NewDayKey(now), Count: 3},
			},
		}, now)
		require.NoError(t, repo.Save(ctx, tracker))

		// A later sync drops yesterday from the external history.
		tracker.ApplySync(domain.SyncBatch{
			TotalSolved: 3,
			Entries:     []domain.DayCount{{Day: domain.NewDayKey(now), Count: 3}},
		}, now)
		require.NoError(t, repo.Save(ctx, tracker))

		loaded, err := repo.FindByUserID(ctx, userID)
		require.NoError(t, err)
		require.Len(t, loaded.Logs(), 1)
		assert.Equal(t, 3, loaded.TotalSolved())
	})

	t.Run("persists miss details and impact analysis", func(t *testing.T) {
		repo := NewSQLiteTrackerRepository(setupTrackerTestDB(t))
		userID := uuid.New()
		now := time.Now()

		tracker, err := domain.NewTracker(userID, 3)
		require.NoError(t, err)
		analysis := advisorDomain.FallbackAnalysis()
		_, err = tracker.AcceptCatchUp("late meeting", &analysis, now)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, tracker))

		loaded, err := repo.FindByUserID(ctx, userID)
		require.NoError(t, err)
		require.Len(t, loaded.Logs(), 1)

		log := loaded.Logs()[0]
		assert.True(t, log.MissedTarget)
		assert.Equal(t, "late meeting", log.MissReason)
		require.NotNil(t, log.Impact)
		assert.Equal(t, analysis, *log.Impact)
		assert.Equal(t, 6, loaded.DailyTarget(), "elevated target survives the round trip")
		assert.Equal(t, 3, loaded.BaselineTarget())
	})

	t.Run("version increments on each save", func(t *testing.T) {
		repo := NewSQLiteTrackerRepository(setupTrackerTestDB(t))
		userID := uuid.New()

		tracker, err := domain.NewTracker(userID, 3)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, tracker))
		require.NoError(t, repo.Save(ctx, tracker))

		loaded, err := repo.FindByUserID(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 2, loaded.Version())
	})

	t.Run("delete removes tracker and logs", func(t *testing.T) {
		conn := setupTrackerTestDB(t)
		repo := NewSQLiteTrackerRepository(conn)
		userID := uuid.New()

		tracker, err := domain.NewTracker(userID, 3)
		require.NoError(t, err)
		_, err = tracker.RecordManual(1, time.Now())
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, tracker))

		require.NoError(t, repo.DeleteByUserID(ctx, userID))

		loaded, err := repo.FindByUserID(ctx, userID)
		require.NoError(t, err)
		assert.Nil(t, loaded)

		var count int
		row := conn.QueryRow(ctx, `SELECT COUNT(*) FROM daily_logs WHERE user_id = ?`, userID.String())
		require.NoError(t, row.Scan(&count))
		assert.Zero(t, count)
	})
}
