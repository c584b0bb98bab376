package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/codestrike/internal/goals/domain"
	sharedApplication "github.com/felixgeelhaar/codestrike/internal/shared/application"
)

// SeedGoalsCommand creates the starter goals for a user with none.
type SeedGoalsCommand struct {
	UserID uuid.UUID
}

// SeedGoalsHandler seeds the default goal set exactly once. Running it
// again for a user who already has goals is a no-op.
type SeedGoalsHandler struct {
	goals domain.Repository
	uow   sharedApplication.UnitOfWork
}

// NewSeedGoalsHandler creates the handler.
func NewSeedGoalsHandler(goals domain.Repository, uow sharedApplication.UnitOfWork) *SeedGoalsHandler {
	return &SeedGoalsHandler{goals: goals, uow: uow}
}

// Handle executes the command and reports whether anything was seeded.
func (h *SeedGoalsHandler) Handle(ctx context.Context, cmd SeedGoalsCommand) (bool, error) {
	seeded := false
	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		existing, err := h.goals.ListByUserID(txCtx, cmd.UserID)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return nil
		}

		defaults := []struct {
			description string
			kind        domain.Kind
			target      int
			unit        string
		}{
			{"Complete 75", domain.KindShortTerm, 75, "problems"},
			{"Master DSA for MAANG Interview", domain.KindLongTerm, 450, "problems"},
		}
		for _, d := range defaults {
			goal, err := domain.NewGoal(cmd.UserID, d.description, d.kind, d.target, "", d.unit)
			if err != nil {
				return err
			}
			if err := h.goals.Save(txCtx, goal); err != nil {
				return err
			}
		}
		seeded = true
		return nil
	})
	return seeded, err
}
