package commands

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	advisorDomain "github.com/felixgeelhaar/codestrike/internal/advisor/domain"
	goalsDomain "github.com/felixgeelhaar/codestrike/internal/goals/domain"
	"github.com/felixgeelhaar/codestrike/internal/shared/infrastructure/outbox"
	statsDomain "github.com/felixgeelhaar/codestrike/internal/stats/domain"
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

type mockOutboxRepo struct {
	mock.Mock
}

func (m *mockOutboxRepo) SaveBatch(ctx context.Context, msgs []*outbox.Message) error {
	return m.Called(ctx, msgs).Error(0)
}

func (m *mockOutboxRepo) GetUnpublished(ctx context.Context, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, limit)
	if msgs, ok := args.Get(0).([]*outbox.Message); ok {
		return msgs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOutboxRepo) MarkPublished(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockOutboxRepo) MarkFailed(ctx context.Context, id int64, errMsg string, nextRetryAt time.Time) error {
	return m.Called(ctx, id, errMsg, nextRetryAt).Error(0)
}

func (m *mockOutboxRepo) MarkDead(ctx context.Context, id int64, reason string) error {
	return m.Called(ctx, id, reason).Error(0)
}

func (m *mockOutboxRepo) DeleteOld(ctx context.Context, olderThan time.Duration) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) FetchStats(ctx context.Context, username string) (statsDomain.SyncResult, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(statsDomain.SyncResult), args.Error(1)
}

type mockAnalyzer struct {
	mock.Mock
}

func (m *mockAnalyzer) AnalyzeMiss(ctx context.Context, miss advisorDomain.MissContext) (advisorDomain.ImpactAnalysis, error) {
	args := m.Called(ctx, miss)
	return args.Get(0).(advisorDomain.ImpactAnalysis), args.Error(1)
}

// passthroughUoW runs the work function on the plain context; command
// tests assert behavior, not transaction plumbing.
type passthroughUoW struct{}

func (passthroughUoW) Begin(ctx context.Context) (context.Context, error) { return ctx, nil }
func (passthroughUoW) Commit(ctx context.Context) error                   { return nil }
func (passthroughUoW) Rollback(ctx context.Context) error                 { return nil }
