package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	goalsDomain "github.com/felixgeelhaar/codestrike/internal/goals/domain"
	"github.com/felixgeelhaar/codestrike/internal/tracking/domain"
)

// GoalView is a display projection of one goal.
type GoalView struct {
	ID          uuid.UUID
	Description string
	Kind        string
	TargetCount int
	Progress    int
	Percent     int
	Deadline    string
	Unit        string
}

// DashboardView is everything the today screen needs in one read.
type DashboardView struct {
	DailyTarget int
	TodayTotal  int
	Remaining   int
	TargetMet   bool
	Streak      int
	TotalSolved int
	LastSyncAt  *time.Time
	Goals       []GoalView
}

// GetDashboardQuery contains the parameters for the dashboard read.
type GetDashboardQuery struct {
	UserID uuid.UUID
}

// GetDashboardHandler handles the GetDashboardQuery.
type GetDashboardHandler struct {
	trackers       domain.Repository
	goals          goalsDomain.Repository
	baselineTarget int
}

// NewGetDashboardHandler creates a new GetDashboardHandler.
func NewGetDashboardHandler(trackers domain.Repository, goals goalsDomain.Repository, baselineTarget int) *GetDashboardHandler {
	return &GetDashboardHandler{trackers: trackers, goals: goals, baselineTarget: baselineTarget}
}

// Handle executes the GetDashboardQuery. A user without a tracker yet gets
// an all-zero view against the baseline target.
func (h *GetDashboardHandler) Handle(ctx context.Context, query GetDashboardQuery) (*DashboardView, error) {
	now := time.Now()

	view := &DashboardView{DailyTarget: h.baselineTarget, Remaining: h.baselineTarget}

	tracker, err := h.trackers.FindByUserID(ctx, query.UserID)
	if err != nil {
		return nil, err
	}
	if tracker != nil {
		todayTotal := tracker.TodayTotal(now)
		remaining := tracker.DailyTarget() - todayTotal
		if remaining < 0 {
			remaining = 0
		}
		view.DailyTarget = tracker.DailyTarget()
		view.TodayTotal = todayTotal
		view.Remaining = remaining
		view.TargetMet = todayTotal >= tracker.DailyTarget()
		view.Streak = tracker.Streak()
		view.TotalSolved = tracker.TotalSolved()
		view.LastSyncAt = tracker.LastSyncAt()
	}

	goals, err := h.goals.ListByUserID(ctx, query.UserID)
	if err != nil {
		return nil, err
	}
	view.Goals = toGoalViews(goals)
	return view, nil
}

func toGoalViews(goals []*goalsDomain.Goal) []GoalView {
	views := make([]GoalView, len(goals))
	for i, g := range goals {
		views[i] = GoalView{
			ID:          g.ID(),
			Description: g.Description(),
			Kind:        string(g.Kind()),
			TargetCount: g.TargetCount(),
			Progress:    g.Progress(),
			Percent:     g.Percent(),
			Deadline:    g.Deadline(),
			Unit:        g.Unit(),
		}
	}
	return views
}
