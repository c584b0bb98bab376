package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	advisor "github.com/felixgeelhaar/codestrike/internal/advisor/domain"
)

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()
	tracker, err := NewTracker(uuid.New(), 3)
	require.NoError(t, err)
	return tracker
}

func TestNewTracker(t *testing.T) {
	tracker := newTestTracker(t)

	assert.Equal(t, 3, tracker.DailyTarget())
	assert.Equal(t, 3, tracker.BaselineTarget())
	assert.Equal(t, 0, tracker.Streak())
	assert.Equal(t, 0, tracker.TotalSolved())
	assert.Nil(t, tracker.LastSyncAt())

	_, err := NewTracker(uuid.New(), 0)
	assert.ErrorIs(t, err, ErrInvalidTarget)
}

func TestRecordManual(t *testing.T) {
	t.Run("rejects non-positive counts", func(t *testing.T) {
		tracker := newTestTracker(t)
		_, err := tracker.RecordManual(0, noon)
		assert.ErrorIs(t, err, ErrInvalidCount)
		_, err = tracker.RecordManual(-2, noon)
		assert.ErrorIs(t, err, ErrInvalidCount)
	})

	t.Run("accumulates into a single manual log per day", func(t *testing.T) {
		tracker := newTestTracker(t)

		_, err := tracker.RecordManual(1, noon)
		require.NoError(t, err)
		_, err = tracker.RecordManual(2, noon)
		require.NoError(t, err)

		require.Len(t, tracker.Logs(), 1)
		assert.Equal(t, 3, tracker.TodayTotal(noon))
		assert.Equal(t, 3, tracker.TotalSolved())
	})

	t.Run("celebration fires exactly once at the crossing", func(t *testing.T) {
		tracker := newTestTracker(t)

		crossed, err := tracker.RecordManual(2, noon)
		require.NoError(t, err)
		assert.False(t, crossed, "still below target")

		crossed, err = tracker.RecordManual(1, noon)
		require.NoError(t, err)
		assert.True(t, crossed, "total reaches the target")

		crossed, err = tracker.RecordManual(5, noon)
		require.NoError(t, err)
		assert.False(t, crossed, "already above target")
	})

	t.Run("single entry meeting the target crosses", func(t *testing.T) {
		tracker := newTestTracker(t)

		crossed, err := tracker.RecordManual(3, noon)
		require.NoError(t, err)
		assert.True(t, crossed)
		assert.Equal(t, 1, tracker.Streak())
	})

	t.Run("raises progress and target events", func(t *testing.T) {
		tracker := newTestTracker(t)

		_, err := tracker.RecordManual(3, noon)
		require.NoError(t, err)

		events := tracker.DomainEvents()
		require.Len(t, events, 2)
		logged, ok := events[0].(*ProgressLogged)
		require.True(t, ok)
		assert.Equal(t, 3, logged.Count)
		assert.Equal(t, 3, logged.DayTotal)
		met, ok := events[1].(*TargetMet)
		require.True(t, ok)
		assert.Equal(t, 3, met.Total)
	})
}

func TestApplySync(t *testing.T) {
	batch := func() SyncBatch {
		return SyncBatch{
			TotalSolved: 120,
			SolvedToday: 4,
			Entries: []DayCount{
				{Day: day(-1), Count: 3},
				{Day: day(0), Count: 4},
			},
		}
	}

	t.Run("zero batch is a no-op", func(t *testing.T) {
		tracker := newTestTracker(t)
		_, err := tracker.RecordManual(2, noon)
		require.NoError(t, err)

		tracker.ApplySync(SyncBatch{}, noon)

		assert.Equal(t, 2, tracker.TotalSolved())
		assert.Nil(t, tracker.LastSyncAt())
	})

	t.Run("combined total sums manual and synced contributions", func(t *testing.T) {
		tracker := newTestTracker(t)
		_, err := tracker.RecordManual(2, noon)
		require.NoError(t, err)

		tracker.ApplySync(SyncBatch{TotalSolved: 50, SolvedToday: 2, Entries: []DayCount{{Day: day(0), Count: 2}}}, noon)

		assert.Equal(t, 4, tracker.TodayTotal(noon), "manual 2 plus synced 2")
		assert.Equal(t, 52, tracker.TotalSolved())
	})

	t.Run("applying the same batch twice equals applying it once", func(t *testing.T) {
		tracker := newTestTracker(t)
		_, err := tracker.RecordManual(1, noon)
		require.NoError(t, err)

		tracker.ApplySync(batch(), noon)
		logsOnce := DayTotals(tracker.Logs())
		streakOnce := tracker.Streak()
		totalOnce := tracker.TotalSolved()

		tracker.ApplySync(batch(), noon)

		assert.Equal(t, logsOnce, DayTotals(tracker.Logs()))
		assert.Equal(t, streakOnce, tracker.Streak())
		assert.Equal(t, totalOnce, tracker.TotalSolved())
	})

	t.Run("recomputes streak and records sync time", func(t *testing.T) {
		tracker := newTestTracker(t)

		tracker.ApplySync(batch(), noon)

		assert.Equal(t, 2, tracker.Streak())
		require.NotNil(t, tracker.LastSyncAt())
	})

	t.Run("sync crossing the target reports a celebration", func(t *testing.T) {
		tracker := newTestTracker(t)

		crossed := tracker.ApplySync(batch(), noon)

		assert.True(t, crossed)
	})
}

func TestEvaluateDay(t *testing.T) {
	tracker := newTestTracker(t)

	outcome, deficit := tracker.EvaluateDay(noon)
	assert.Equal(t, OutcomeMissed, outcome)
	assert.Equal(t, 3, deficit)

	_, err := tracker.RecordManual(3, noon)
	require.NoError(t, err)

	outcome, deficit = tracker.EvaluateDay(noon)
	assert.Equal(t, OutcomeMet, outcome)
	assert.Equal(t, 0, deficit)
}

func TestAcceptCatchUp(t *testing.T) {
	analysis := advisor.FallbackAnalysis()

	t.Run("requires a reason", func(t *testing.T) {
		tracker := newTestTracker(t)
		_, err := tracker.AcceptCatchUp("   ", &analysis, noon)
		assert.ErrorIs(t, err, ErrReasonRequired)
	})

	t.Run("rejected when the target is already met", func(t *testing.T) {
		tracker := newTestTracker(t)
		_, err := tracker.RecordManual(3, noon)
		require.NoError(t, err)

		_, err = tracker.AcceptCatchUp("Busy schedule 📅", &analysis, noon)
		assert.ErrorIs(t, err, ErrTargetAlreadyMet)
	})

	t.Run("raises the target by the deficit and marks the day", func(t *testing.T) {
		tracker := newTestTracker(t)
		_, err := tracker.RecordManual(1, noon)
		require.NoError(t, err)

		deficit, err := tracker.AcceptCatchUp("Feeling tired 😴", &analysis, noon)
		require.NoError(t, err)

		assert.Equal(t, 2, deficit)
		assert.Equal(t, 5, tracker.DailyTarget())
		assert.Equal(t, 3, tracker.BaselineTarget(), "baseline unchanged")

		logs := tracker.Logs()
		require.Len(t, logs, 1)
		assert.True(t, logs[0].MissedTarget)
		assert.Equal(t, "Feeling tired 😴", logs[0].MissReason)
		require.NotNil(t, logs[0].Impact)
	})

	t.Run("creates a zero-count log when the day has none", func(t *testing.T) {
		tracker := newTestTracker(t)

		deficit, err := tracker.AcceptCatchUp("Travelling ✈️", &analysis, noon)
		require.NoError(t, err)

		assert.Equal(t, 3, deficit)
		logs := tracker.Logs()
		require.Len(t, logs, 1)
		assert.Equal(t, 0, logs[0].Solved)
		assert.True(t, logs[0].MissedTarget)
	})

	t.Run("re-closing updates the log without raising the target again", func(t *testing.T) {
		tracker := newTestTracker(t)

		_, err := tracker.AcceptCatchUp("Not in a mood 😒", &analysis, noon)
		require.NoError(t, err)
		targetAfterFirst := tracker.DailyTarget()

		_, err = tracker.AcceptCatchUp("Procrastinated 🐢", &analysis, noon)
		require.NoError(t, err)

		assert.Equal(t, targetAfterFirst, tracker.DailyTarget())
		logs := tracker.Logs()
		require.Len(t, logs, 1, "one log entry for the day")
		assert.Equal(t, "Procrastinated 🐢", logs[0].MissReason, "latest reason retained")
	})
}

func TestAcknowledgeMet(t *testing.T) {
	t.Run("rejected when target not met", func(t *testing.T) {
		tracker := newTestTracker(t)
		_, err := tracker.AcknowledgeMet(noon)
		assert.ErrorIs(t, err, ErrTargetNotMet)
	})

	t.Run("no reset at baseline", func(t *testing.T) {
		tracker := newTestTracker(t)
		_, err := tracker.RecordManual(3, noon)
		require.NoError(t, err)

		reset, err := tracker.AcknowledgeMet(noon)
		require.NoError(t, err)
		assert.False(t, reset)
		assert.Equal(t, 3, tracker.DailyTarget())
	})

	t.Run("elevated target drops back to baseline", func(t *testing.T) {
		tracker := newTestTracker(t)
		analysis := advisor.FallbackAnalysis()

		yesterday := noon.AddDate(0, 0, -1)
		_, err := tracker.AcceptCatchUp("Topic too hard 🤯", &analysis, yesterday)
		require.NoError(t, err)
		require.Equal(t, 6, tracker.DailyTarget())

		_, err = tracker.RecordManual(6, noon)
		require.NoError(t, err)

		reset, err := tracker.AcknowledgeMet(noon)
		require.NoError(t, err)
		assert.True(t, reset)
		assert.Equal(t, 3, tracker.DailyTarget())
	})
}

func TestSetDailyTarget(t *testing.T) {
	tracker := newTestTracker(t)

	require.NoError(t, tracker.SetDailyTarget(5, noon))
	assert.Equal(t, 5, tracker.DailyTarget())
	assert.Equal(t, 5, tracker.BaselineTarget())

	assert.ErrorIs(t, tracker.SetDailyTarget(0, noon), ErrInvalidTarget)
}

func TestRehydrateTracker(t *testing.T) {
	id := uuid.New()
	userID := uuid.New()
	syncedAt := time.Now().UTC()
	logs := []DailyLog{NewDailyLog(day(0), SourceManual, 2)}

	tracker := RehydrateTracker(id, userID, 4, 3, 2, 40, &syncedAt, logs, 7, syncedAt, syncedAt)

	assert.Equal(t, id, tracker.ID())
	assert.Equal(t, userID, tracker.UserID())
	assert.Equal(t, 4, tracker.DailyTarget())
	assert.Equal(t, 3, tracker.BaselineTarget())
	assert.Equal(t, 2, tracker.Streak())
	assert.Equal(t, 40, tracker.TotalSolved())
	assert.Equal(t, 7, tracker.Version())
	assert.Empty(t, tracker.DomainEvents())
}
