package commands

import (
	"context"
	"time"

	"github.com/google/uuid"

	goalsDomain "github.com/felixgeelhaar/codestrike/internal/goals/domain"
	sharedApplication "github.com/felixgeelhaar/codestrike/internal/shared/application"
	"github.com/felixgeelhaar/codestrike/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/codestrike/internal/tracking/domain"
)

// RecordManualCommand logs hand-entered progress for today.
type RecordManualCommand struct {
	UserID uuid.UUID
	Count  int
}

// RecordManualResult reports the state after logging.
type RecordManualResult struct {
	TodayTotal    int
	DailyTarget   int
	Streak        int
	TotalSolved   int
	TargetJustMet bool
}

// RecordManualHandler applies a manual count, reprojects goal progress,
// and stages the resulting events, all in one transaction.
type RecordManualHandler struct {
	trackers       domain.Repository
	goals          goalsDomain.Repository
	outboxRepo     outbox.Repository
	uow            sharedApplication.UnitOfWork
	baselineTarget int
}

// NewRecordManualHandler creates the handler.
func NewRecordManualHandler(trackers domain.Repository, goals goalsDomain.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork, baselineTarget int) *RecordManualHandler {
	return &RecordManualHandler{
		trackers:       trackers,
		goals:          goals,
		outboxRepo:     outboxRepo,
		uow:            uow,
		baselineTarget: baselineTarget,
	}
}

// Handle executes the command.
func (h *RecordManualHandler) Handle(ctx context.Context, cmd RecordManualCommand) (*RecordManualResult, error) {
	var result *RecordManualResult

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		now := time.Now()

		tracker, err := h.trackers.FindByUserID(txCtx, cmd.UserID)
		if err != nil {
			return err
		}
		if tracker == nil {
			if tracker, err = domain.NewTracker(cmd.UserID, h.baselineTarget); err != nil {
				return err
			}
		}

		crossed, err := tracker.RecordManual(cmd.Count, now)
		if err != nil {
			return err
		}

		if err := h.projectGoals(txCtx, cmd.UserID, tracker.TotalSolved()); err != nil {
			return err
		}
		if err := h.trackers.Save(txCtx, tracker); err != nil {
			return err
		}
		if err := stageEvents(txCtx, h.outboxRepo, cmd.UserID, tracker); err != nil {
			return err
		}

		result = &RecordManualResult{
			TodayTotal:    tracker.TodayTotal(now),
			DailyTarget:   tracker.DailyTarget(),
			Streak:        tracker.Streak(),
			TotalSolved:   tracker.TotalSolved(),
			TargetJustMet: crossed,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (h *RecordManualHandler) projectGoals(ctx context.Context, userID uuid.UUID, totalSolved int) error {
	goals, err := h.goals.ListByUserID(ctx, userID)
	if err != nil {
		return err
	}
	goalsDomain.ProjectProgress(goals, totalSolved)
	for _, g := range goals {
		if !g.TracksTotal() {
			continue
		}
		if err := h.goals.Save(ctx, g); err != nil {
			return err
		}
	}
	return nil
}
