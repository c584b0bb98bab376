package commands

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/codestrike/internal/goals/domain"
	sharedApplication "github.com/felixgeelhaar/codestrike/internal/shared/application"
	trackingDomain "github.com/felixgeelhaar/codestrike/internal/tracking/domain"
)

// ErrGoalNotFound is returned when the goal does not exist or belongs to
// another user.
var ErrGoalNotFound = errors.New("goal not found")

// UpdateGoalCommand edits a goal's details.
type UpdateGoalCommand struct {
	UserID      uuid.UUID
	GoalID      uuid.UUID
	Description string
	TargetCount int
	Deadline    string
}

// UpdateGoalHandler updates a goal. Editing the daily goal's target also
// moves the tracker's daily target, keeping the two views of "how many per
// day" in step.
type UpdateGoalHandler struct {
	goals    domain.Repository
	trackers trackingDomain.Repository
	uow      sharedApplication.UnitOfWork
}

// NewUpdateGoalHandler creates the handler.
func NewUpdateGoalHandler(goals domain.Repository, trackers trackingDomain.Repository, uow sharedApplication.UnitOfWork) *UpdateGoalHandler {
	return &UpdateGoalHandler{goals: goals, trackers: trackers, uow: uow}
}

// Handle executes the command.
func (h *UpdateGoalHandler) Handle(ctx context.Context, cmd UpdateGoalCommand) (*domain.Goal, error) {
	var updated *domain.Goal
	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		goal, err := h.goals.FindByID(txCtx, cmd.GoalID)
		if err != nil {
			return err
		}
		if goal == nil || goal.UserID() != cmd.UserID {
			return ErrGoalNotFound
		}

		if err := goal.UpdateDetails(cmd.Description, cmd.TargetCount, cmd.Deadline); err != nil {
			return err
		}
		if err := h.goals.Save(txCtx, goal); err != nil {
			return err
		}

		if goal.Kind() == domain.KindDaily {
			if err := h.syncDailyTarget(txCtx, cmd.UserID, cmd.TargetCount); err != nil {
				return err
			}
		}

		updated = goal
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (h *UpdateGoalHandler) syncDailyTarget(ctx context.Context, userID uuid.UUID, target int) error {
	tracker, err := h.trackers.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if tracker == nil {
		if tracker, err = trackingDomain.NewTracker(userID, target); err != nil {
			return err
		}
	} else if err := tracker.SetDailyTarget(target, time.Now()); err != nil {
		return err
	}
	return h.trackers.Save(ctx, tracker)
}
