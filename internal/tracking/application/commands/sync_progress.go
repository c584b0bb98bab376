package commands

import (
	"context"
	"time"

	"github.com/google/uuid"

	goalsDomain "github.com/felixgeelhaar/codestrike/internal/goals/domain"
	sharedApplication "github.com/felixgeelhaar/codestrike/internal/shared/application"
	"github.com/felixgeelhaar/codestrike/internal/shared/infrastructure/outbox"
	statsDomain "github.com/felixgeelhaar/codestrike/internal/stats/domain"
	"github.com/felixgeelhaar/codestrike/internal/tracking/domain"
)

// SyncProgressCommand pulls external stats and reconciles them in.
type SyncProgressCommand struct {
	UserID   uuid.UUID
	Username string
}

// SyncProgressResult reports the state after the sync.
type SyncProgressResult struct {
	Synced        bool
	SolvedToday   int
	TodayTotal    int
	DailyTarget   int
	Streak        int
	TotalSolved   int
	TargetJustMet bool
	LastSyncAt    *time.Time
}

// SyncProgressHandler fetches stats from the provider and applies the
// batch to the tracker. A failed fetch arrives as a zero result and the
// command completes without touching any state.
type SyncProgressHandler struct {
	trackers       domain.Repository
	goals          goalsDomain.Repository
	provider       statsDomain.Provider
	outboxRepo     outbox.Repository
	uow            sharedApplication.UnitOfWork
	baselineTarget int
}

// NewSyncProgressHandler creates the handler.
func NewSyncProgressHandler(trackers domain.Repository, goals goalsDomain.Repository, provider statsDomain.Provider, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork, baselineTarget int) *SyncProgressHandler {
	return &SyncProgressHandler{
		trackers:       trackers,
		goals:          goals,
		provider:       provider,
		outboxRepo:     outboxRepo,
		uow:            uow,
		baselineTarget: baselineTarget,
	}
}

// Handle executes the command. The provider call happens outside the
// transaction; only applying the batch is transactional.
func (h *SyncProgressHandler) Handle(ctx context.Context, cmd SyncProgressCommand) (*SyncProgressResult, error) {
	fetched, err := h.provider.FetchStats(ctx, cmd.Username)
	if err != nil {
		return nil, err
	}
	if fetched.IsZero() {
		return &SyncProgressResult{Synced: false}, nil
	}

	batch := toBatch(fetched)

	var result *SyncProgressResult
	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
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

		crossed := tracker.ApplySync(batch, now)

		if err := h.projectGoals(txCtx, cmd.UserID, tracker.TotalSolved()); err != nil {
			return err
		}
		if err := h.trackers.Save(txCtx, tracker); err != nil {
			return err
		}
		if err := stageEvents(txCtx, h.outboxRepo, cmd.UserID, tracker); err != nil {
			return err
		}

		result = &SyncProgressResult{
			Synced:        true,
			SolvedToday:   batch.SolvedToday,
			TodayTotal:    tracker.TodayTotal(now),
			DailyTarget:   tracker.DailyTarget(),
			Streak:        tracker.Streak(),
			TotalSolved:   tracker.TotalSolved(),
			TargetJustMet: crossed,
			LastSyncAt:    tracker.LastSyncAt(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (h *SyncProgressHandler) projectGoals(ctx context.Context, userID uuid.UUID, totalSolved int) error {
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

// toBatch converts the provider result into domain terms, dropping any
// malformed day keys.
func toBatch(result statsDomain.SyncResult) domain.SyncBatch {
	batch := domain.SyncBatch{
		TotalSolved: result.TotalSolved,
		SolvedToday: result.SolvedToday,
	}
	for _, d := range result.Days {
		day, err := domain.ParseDayKey(d.Day)
		if err != nil {
			continue
		}
		batch.Entries = append(batch.Entries, domain.DayCount{Day: day, Count: d.Count})
	}
	return batch
}
