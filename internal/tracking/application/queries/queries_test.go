package queries

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	goalsDomain "github.com/felixgeelhaar/codestrike/internal/goals/domain"
	"github.com/felixgeelhaar/codestrike/internal/tracking/domain"
)

type mockTrackerRepo struct {
	mock.Mock
}

func (m *mockTrackerRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.Tracker, error) {
	args := m.Called(ctx, userID)
	if tracker, ok := args.Get(0).(*domain.Tracker); ok {
		return tracker, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTrackerRepo) Save(ctx context.Context, tracker *domain.Tracker) error {
	return m.Called(ctx, tracker).Error(0)
}

func (m *mockTrackerRepo) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

type mockGoalRepo struct {
	mock.Mock
}

func (m *mockGoalRepo) FindByID(ctx context.Context, id uuid.UUID) (*goalsDomain.Goal, error) {
	args := m.Called(ctx, id)
	if goal, ok := args.Get(0).(*goalsDomain.Goal); ok {
		return goal, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGoalRepo) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*goalsDomain.Goal, error) {
	args := m.Called(ctx, userID)
	if goals, ok := args.Get(0).([]*goalsDomain.Goal); ok {
		return goals, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGoalRepo) Save(ctx context.Context, goal *goalsDomain.Goal) error {
	return m.Called(ctx, goal).Error(0)
}

func (m *mockGoalRepo) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func TestGetDashboardHandler(t *testing.T) {
	userID := uuid.New()

	t.Run("reports today against the target", func(t *testing.T) {
		trackers := new(mockTrackerRepo)
		goals := new(mockGoalRepo)

		tracker, err := domain.NewTracker(userID, 3)
		require.NoError(t, err)
		_, err = tracker.RecordManual(2, time.Now())
		require.NoError(t, err)

		goal, err := goalsDomain.NewGoal(userID, "Complete 75", goalsDomain.KindShortTerm, 75, "", "problems")
		require.NoError(t, err)
		goal.SetProgress(2)

		trackers.On("FindByUserID", mock.Anything, userID).Return(tracker, nil)
		goals.On("ListByUserID", mock.Anything, userID).Return([]*goalsDomain.Goal{goal}, nil)

		h := NewGetDashboardHandler(trackers, goals, 3)
		view, err := h.Handle(context.Background(), GetDashboardQuery{UserID: userID})

		require.NoError(t, err)
		assert.Equal(t, 3, view.DailyTarget)
		assert.Equal(t, 2, view.TodayTotal)
		assert.Equal(t, 1, view.Remaining)
		assert.False(t, view.TargetMet)
		assert.Equal(t, 2, view.TotalSolved)
		require.Len(t, view.Goals, 1)
		assert.Equal(t, "Complete 75", view.Goals[0].Description)
		assert.Equal(t, 2, view.Goals[0].Percent)
	})

	t.Run("missing tracker yields the zero view at baseline", func(t *testing.T) {
		trackers := new(mockTrackerRepo)
		goals := new(mockGoalRepo)

		trackers.On("FindByUserID", mock.Anything, userID).Return(nil, nil)
		goals.On("ListByUserID", mock.Anything, userID).Return([]*goalsDomain.Goal{}, nil)

		h := NewGetDashboardHandler(trackers, goals, 3)
		view, err := h.Handle(context.Background(), GetDashboardQuery{UserID: userID})

		require.NoError(t, err)
		assert.Equal(t, 3, view.DailyTarget)
		assert.Zero(t, view.TodayTotal)
		assert.Equal(t, 3, view.Remaining)
		assert.Zero(t, view.Streak)
	})

	t.Run("remaining never goes negative", func(t *testing.T) {
		trackers := new(mockTrackerRepo)
		goals := new(mockGoalRepo)

		tracker, err := domain.NewTracker(userID, 3)
		require.NoError(t, err)
		_, err = tracker.RecordManual(7, time.Now())
		require.NoError(t, err)

		trackers.On("FindByUserID", mock.Anything, userID).Return(tracker, nil)
		goals.On("ListByUserID", mock.Anything, userID).Return([]*goalsDomain.Goal{}, nil)

		h := NewGetDashboardHandler(trackers, goals, 3)
		view, err := h.Handle(context.Background(), GetDashboardQuery{UserID: userID})

		require.NoError(t, err)
		assert.Zero(t, view.Remaining)
		assert.True(t, view.TargetMet)
	})
}

func TestGetWeekHandler(t *testing.T) {
	userID := uuid.New()
	fixedNow := time.Date(2026, 8, 31, 15, 0, 0, 0, time.Local)

	t.Run("zero fills seven days oldest first", func(t *testing.T) {
		trackers := new(mockTrackerRepo)

		tracker, err := domain.NewTracker(userID, 3)
		require.NoError(t, err)
		_, err = tracker.RecordManual(4, fixedNow)
		require.NoError(t, err)

		trackers.On("FindByUserID", mock.Anything, userID).Return(tracker, nil)

		h := NewGetWeekHandler(trackers, 3)
		h.now = func() time.Time { return fixedNow }
		week, err := h.Handle(context.Background(), GetWeekQuery{UserID: userID})

		require.NoError(t, err)
		require.Len(t, week, 7)
		assert.Equal(t, domain.NewDayKey(fixedNow.AddDate(0, 0, -6)), week[0].Day)
		assert.Equal(t, domain.NewDayKey(fixedNow), week[6].Day)
		for _, d := range week[:6] {
			assert.Zero(t, d.Solved)
			assert.False(t, d.Met)
		}
		assert.Equal(t, 4, week[6].Solved)
		assert.True(t, week[6].Met)
		assert.Equal(t, 3, week[6].Target)
	})

	t.Run("missing tracker still yields a full week", func(t *testing.T) {
		trackers := new(mockTrackerRepo)
		trackers.On("FindByUserID", mock.Anything, userID).Return(nil, nil)

		h := NewGetWeekHandler(trackers, 3)
		week, err := h.Handle(context.Background(), GetWeekQuery{UserID: userID})

		require.NoError(t, err)
		require.Len(t, week, 7)
		for _, d := range week {
			assert.Zero(t, d.Solved)
			assert.Equal(t, 3, d.Target)
		}
	})
}

func TestGetHeatmapHandler(t *testing.T) {
	userID := uuid.New()
	// A Monday afternoon.
	fixedNow := time.Date(2026, 8, 31, 15, 0, 0, 0, time.Local)

	trackers := new(mockTrackerRepo)
	tracker, err := domain.NewTracker(userID, 3)
	require.NoError(t, err)
	_, err = tracker.RecordManual(5, fixedNow)
	require.NoError(t, err)
	trackers.On("FindByUserID", mock.Anything, userID).Return(tracker, nil)

	h := NewGetHeatmapHandler(trackers)
	h.now = func() time.Time { return fixedNow }
	view, err := h.Handle(context.Background(), GetHeatmapQuery{UserID: userID})
	require.NoError(t, err)
	require.Len(t, view.Weeks, 53)

	lastWeek := view.Weeks[52]
	assert.Equal(t, time.Sunday, lastWeek[0].Day.Time().Weekday())

	// Monday of the current week is today.
	today := lastWeek[1]
	assert.Equal(t, domain.NewDayKey(fixedNow), today.Day)
	assert.Equal(t, 5, today.Solved)
	assert.Equal(t, 3, today.Level)
	assert.False(t, today.Future)

	// Tuesday onward has not happened yet.
	for _, cell := range lastWeek[2:] {
		assert.True(t, cell.Future)
		assert.Zero(t, cell.Level)
	}

	// Oldest column is exactly 52 weeks before the current one.
	first := view.Weeks[0][0]
	assert.Equal(t, time.Sunday, first.Day.Time().Weekday())
	assert.False(t, first.Future)
}

func TestIntensityLevel(t *testing.T) {
	cases := []struct {
		solved int
		level  int
	}{
		{0, 0},
		{1, 1},
		{2, 1},
		{3, 2},
		{4, 2},
		{5, 3},
		{6, 3},
		{7, 4},
		{20, 4},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.level, intensityLevel(tc.solved), "solved=%d", tc.solved)
	}
}

func TestGetExcusesHandler(t *testing.T) {
	userID := uuid.New()

	t.Run("counts reasons most frequent first", func(t *testing.T) {
		trackers := new(mockTrackerRepo)

		tracker, err := domain.NewTracker(userID, 3)
		require.NoError(t, err)
		now := time.Now()
		for i, reason := range []string{"too tired", "too tired", "work ran late", "too tired", "friends visited"} {
			_, err := tracker.AcceptCatchUp(reason, nil, now.AddDate(0, 0, -(i + 1)))
			require.NoError(t, err)
		}

		trackers.On("FindByUserID", mock.Anything, userID).Return(tracker, nil)

		h := NewGetExcusesHandler(trackers)
		stats, err := h.Handle(context.Background(), GetExcusesQuery{UserID: userID})

		require.NoError(t, err)
		require.Len(t, stats, 3)
		assert.Equal(t, ExcuseStat{Reason: "too tired", Count: 3, Percent: 60}, stats[0])
		assert.Equal(t, ExcuseStat{Reason: "friends visited", Count: 1, Percent: 20}, stats[1])
		assert.Equal(t, ExcuseStat{Reason: "work ran late", Count: 1, Percent: 20}, stats[2])
	})

	t.Run("no misses yields no stats", func(t *testing.T) {
		trackers := new(mockTrackerRepo)

		tracker, err := domain.NewTracker(userID, 3)
		require.NoError(t, err)
		trackers.On("FindByUserID", mock.Anything, userID).Return(tracker, nil)

		h := NewGetExcusesHandler(trackers)
		stats, err := h.Handle(context.Background(), GetExcusesQuery{UserID: userID})

		require.NoError(t, err)
		assert.Empty(t, stats)
	})

	t.Run("missing tracker yields no stats", func(t *testing.T) {
		trackers := new(mockTrackerRepo)
		trackers.On("FindByUserID", mock.Anything, userID).Return(nil, nil)

		h := NewGetExcusesHandler(trackers)
		stats, err := h.Handle(context.Background(), GetExcusesQuery{UserID: userID})

		require.NoError(t, err)
		assert.Empty(t, stats)
	})
}
