package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/codestrike/internal/tracking/domain"
)

// heatmapWeeks is the width of the contribution grid.
const heatmapWeeks = 53

// HeatmapCell is one day of the contribution grid.
type HeatmapCell struct {
	Day    domain.DayKey
	Solved int
	// Level buckets the count for rendering: 0 for none, then 1..4 for
	// up to 2, up to 4, up to 6, and more.
	Level  int
	Future bool
}

// HeatmapView is a year of activity as week columns, oldest week first.
// Each column runs Sunday through Saturday.
type HeatmapView struct {
	Weeks [][7]HeatmapCell
}

// GetHeatmapQuery contains the parameters for the heatmap read.
type GetHeatmapQuery struct {
	UserID uuid.UUID
}

// GetHeatmapHandler handles the GetHeatmapQuery.
type GetHeatmapHandler struct {
	trackers domain.Repository
	now      func() time.Time
}

// NewGetHeatmapHandler creates a new GetHeatmapHandler.
func NewGetHeatmapHandler(trackers domain.Repository) *GetHeatmapHandler {
	return &GetHeatmapHandler{trackers: trackers, now: time.Now}
}

// Handle executes the GetHeatmapQuery. The grid always spans 53 Sunday
// aligned weeks ending with the current week; days after today are marked
// future and carry no level.
func (h *GetHeatmapHandler) Handle(ctx context.Context, query GetHeatmapQuery) (*HeatmapView, error) {
	tracker, err := h.trackers.FindByUserID(ctx, query.UserID)
	if err != nil {
		return nil, err
	}

	totals := map[domain.DayKey]int{}
	if tracker != nil {
		totals = domain.DayTotals(tracker.Logs())
	}

	now := h.now()
	today := domain.NewDayKey(now)

	// Back up to the Sunday that starts the current week, then go back
	// another 52 full weeks.
	weekStart := now.AddDate(0, 0, -int(now.Weekday()))
	gridStart := weekStart.AddDate(0, 0, -7*(heatmapWeeks-1))

	view := &HeatmapView{Weeks: make([][7]HeatmapCell, heatmapWeeks)}
	for w := 0; w < heatmapWeeks; w++ {
		for d := 0; d < 7; d++ {
			day := domain.NewDayKey(gridStart.AddDate(0, 0, w*7+d))
			cell := HeatmapCell{Day: day}
			if today.Before(day) {
				cell.Future = true
			} else {
				cell.Solved = totals[day]
				cell.Level = intensityLevel(cell.Solved)
			}
			view.Weeks[w][d] = cell
		}
	}
	return view, nil
}

func intensityLevel(solved int) int {
	switch {
	case solved <= 0:
		return 0
	case solved <= 2:
		return 1
	case solved <= 4:
		return 2
	case solved <= 6:
		return 3
	default:
		return 4
	}
}
