package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/codestrike/internal/tracking/domain"
)

// WeekDay is one day of the consistency series.
type WeekDay struct {
	Day    domain.DayKey
	Solved int
	Target int
	Met    bool
}

// GetWeekQuery contains the parameters for the weekly series.
type GetWeekQuery struct {
	UserID uuid.UUID
}

// GetWeekHandler builds the last-7-day series, oldest first. Days without
// any log appear with zero solved so gaps stay visible.
type GetWeekHandler struct {
	trackers       domain.Repository
	baselineTarget int
	now            func() time.Time
}

// NewGetWeekHandler creates a new GetWeekHandler.
func NewGetWeekHandler(trackers domain.Repository, baselineTarget int) *GetWeekHandler {
	return &GetWeekHandler{trackers: trackers, baselineTarget: baselineTarget, now: time.Now}
}

// Handle executes the GetWeekQuery.
func (h *GetWeekHandler) Handle(ctx context.Context, query GetWeekQuery) ([]WeekDay, error) {
	tracker, err := h.trackers.FindByUserID(ctx, query.UserID)
	if err != nil {
		return nil, err
	}

	target := h.baselineTarget
	totals := map[domain.DayKey]int{}
	if tracker != nil {
		target = tracker.DailyTarget()
		totals = domain.DayTotals(tracker.Logs())
	}

	now := h.now()
	week := make([]WeekDay, 0, 7)
	for offset := 6; offset >= 0; offset-- {
		day := domain.NewDayKey(now.AddDate(0, 0, -offset))
		solved := totals[day]
		week = append(week, WeekDay{
			Day:    day,
			Solved: solved,
			Target: target,
			Met:    solved >= target,
		})
	}
	return week, nil
}
