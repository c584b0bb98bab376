package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	advisorDomain "github.com/felixgeelhaar/codestrike/internal/advisor/domain"
	goalsDomain "github.com/felixgeelhaar/codestrike/internal/goals/domain"
	sharedApplication "github.com/felixgeelhaar/codestrike/internal/shared/application"
	"github.com/felixgeelhaar/codestrike/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/codestrike/internal/tracking/domain"
)

// AcceptCatchUpCommand accepts a catch-up plan for a missed day.
type AcceptCatchUpCommand struct {
	UserID uuid.UUID
	Reason string
}

// AcceptCatchUpResult reports the adjusted state and the impact analysis
// shown to the user.
type AcceptCatchUpResult struct {
	Deficit     int
	DailyTarget int
	Analysis    advisorDomain.ImpactAnalysis
}

// AcceptCatchUpHandler closes a missed day: it asks the analyzer for an
// impact assessment, falling back to the canned one when the analyzer is
// missing or failing, then raises the target by the deficit.
type AcceptCatchUpHandler struct {
	trackers       domain.Repository
	goals          goalsDomain.Repository
	analyzer       advisorDomain.Analyzer
	outboxRepo     outbox.Repository
	uow            sharedApplication.UnitOfWork
	baselineTarget int
	logger         *slog.Logger
}

// NewAcceptCatchUpHandler creates the handler. analyzer may be nil when no
// text-generation service is configured.
func NewAcceptCatchUpHandler(trackers domain.Repository, goals goalsDomain.Repository, analyzer advisorDomain.Analyzer, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork, baselineTarget int, logger *slog.Logger) *AcceptCatchUpHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AcceptCatchUpHandler{
		trackers:       trackers,
		goals:          goals,
		analyzer:       analyzer,
		outboxRepo:     outboxRepo,
		uow:            uow,
		baselineTarget: baselineTarget,
		logger:         logger,
	}
}

// Handle executes the command. The analyzer call happens before the
// transaction so a slow model never holds a database lock.
func (h *AcceptCatchUpHandler) Handle(ctx context.Context, cmd AcceptCatchUpCommand) (*AcceptCatchUpResult, error) {
	now := time.Now()

	tracker, err := h.trackers.FindByUserID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}
	if tracker == nil {
		if tracker, err = domain.NewTracker(cmd.UserID, h.baselineTarget); err != nil {
			return nil, err
		}
	}

	analysis := h.analyze(ctx, cmd, tracker, now)

	var result *AcceptCatchUpResult
	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		// Reload inside the transaction; the pre-transaction copy only
		// fed the analyzer.
		current, err := h.trackers.FindByUserID(txCtx, cmd.UserID)
		if err != nil {
			return err
		}
		if current == nil {
			current = tracker
		}

		deficit, err := current.AcceptCatchUp(cmd.Reason, &analysis, now)
		if err != nil {
			return err
		}
		if err := h.trackers.Save(txCtx, current); err != nil {
			return err
		}
		if err := stageEvents(txCtx, h.outboxRepo, cmd.UserID, current); err != nil {
			return err
		}

		result = &AcceptCatchUpResult{
			Deficit:     deficit,
			DailyTarget: current.DailyTarget(),
			Analysis:    analysis,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (h *AcceptCatchUpHandler) analyze(ctx context.Context, cmd AcceptCatchUpCommand, tracker *domain.Tracker, now time.Time) advisorDomain.ImpactAnalysis {
	if h.analyzer == nil {
		return advisorDomain.FallbackAnalysis()
	}

	outcome, deficit := tracker.EvaluateDay(now)
	if outcome == domain.OutcomeMet {
		deficit = 0
	}

	miss := advisorDomain.MissContext{
		Reason:      cmd.Reason,
		Deficit:     deficit,
		DailyTarget: tracker.DailyTarget(),
		SolvedToday: tracker.TodayTotal(now),
		Streak:      tracker.Streak(),
	}
	if goals, err := h.goals.ListByUserID(ctx, cmd.UserID); err == nil {
		for _, g := range goals {
			snapshot := &advisorDomain.GoalSnapshot{
				Description: g.Description(),
				Target:      g.TargetCount(),
				Progress:    g.Progress(),
				Deadline:    g.Deadline(),
			}
			switch g.Kind() {
			case goalsDomain.KindShortTerm:
				miss.ShortTerm = snapshot
			case goalsDomain.KindLongTerm:
				miss.LongTerm = snapshot
			}
		}
	}

	analysis, err := h.analyzer.AnalyzeMiss(ctx, miss)
	if err != nil {
		h.logger.Warn("impact analysis failed, using fallback", "error", err)
		return advisorDomain.FallbackAnalysis()
	}
	return analysis
}
