package commands

import (
	"context"
	"time"

	"github.com/google/uuid"

	sharedApplication "github.com/felixgeelhaar/codestrike/internal/shared/application"
	"github.com/felixgeelhaar/codestrike/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/codestrike/internal/tracking/domain"
)

// CloseDayCommand closes out today against the daily target.
type CloseDayCommand struct {
	UserID uuid.UUID
}

// CloseDayResult reports the outcome. A missed day carries the deficit the
// user must acknowledge through the catch-up flow.
type CloseDayResult struct {
	Outcome     domain.DayOutcome
	Deficit     int
	TodayTotal  int
	DailyTarget int
	TargetReset bool
}

// CloseDayHandler evaluates today and, when met, acknowledges it, dropping
// an elevated target back to baseline.
type CloseDayHandler struct {
	trackers       domain.Repository
	outboxRepo     outbox.Repository
	uow            sharedApplication.UnitOfWork
	baselineTarget int
}

// NewCloseDayHandler creates the handler.
func NewCloseDayHandler(trackers domain.Repository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork, baselineTarget int) *CloseDayHandler {
	return &CloseDayHandler{
		trackers:       trackers,
		outboxRepo:     outboxRepo,
		uow:            uow,
		baselineTarget: baselineTarget,
	}
}

// Handle executes the command.
func (h *CloseDayHandler) Handle(ctx context.Context, cmd CloseDayCommand) (*CloseDayResult, error) {
	var result *CloseDayResult

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

		outcome, deficit := tracker.EvaluateDay(now)
		result = &CloseDayResult{
			Outcome:     outcome,
			Deficit:     deficit,
			TodayTotal:  tracker.TodayTotal(now),
			DailyTarget: tracker.DailyTarget(),
		}
		if outcome != domain.OutcomeMet {
			return nil
		}

		reset, err := tracker.AcknowledgeMet(now)
		if err != nil {
			return err
		}
		if err := h.trackers.Save(txCtx, tracker); err != nil {
			return err
		}
		if err := stageEvents(txCtx, h.outboxRepo, cmd.UserID, tracker); err != nil {
			return err
		}

		result.TargetReset = reset
		result.DailyTarget = tracker.DailyTarget()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
