package commands

import (
	"context"

	"github.com/google/uuid"

	goalsDomain "github.com/felixgeelhaar/codestrike/internal/goals/domain"
	sharedApplication "github.com/felixgeelhaar/codestrike/internal/shared/application"
	"github.com/felixgeelhaar/codestrike/internal/tracking/domain"
)

// DeleteAccountCommand purges all data for a user.
type DeleteAccountCommand struct {
	UserID uuid.UUID
}

// DeleteAccountHandler removes the tracker, its logs, and all goals in one
// transaction. Unlike the collaborator calls elsewhere, failures here are
// returned to the caller: a destructive action must never appear to
// succeed when it did not.
type DeleteAccountHandler struct {
	trackers domain.Repository
	goals    goalsDomain.Repository
	uow      sharedApplication.UnitOfWork
}

// NewDeleteAccountHandler creates the handler.
func NewDeleteAccountHandler(trackers domain.Repository, goals goalsDomain.Repository, uow sharedApplication.UnitOfWork) *DeleteAccountHandler {
	return &DeleteAccountHandler{trackers: trackers, goals: goals, uow: uow}
}

// Handle executes the command.
func (h *DeleteAccountHandler) Handle(ctx context.Context, cmd DeleteAccountCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if err := h.trackers.DeleteByUserID(txCtx, cmd.UserID); err != nil {
			return err
		}
		return h.goals.DeleteByUserID(txCtx, cmd.UserID)
	})
}
