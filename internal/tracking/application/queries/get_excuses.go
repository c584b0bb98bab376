package queries

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/codestrike/internal/tracking/domain"
)

// ExcuseStat is one reason's share of all missed days.
type ExcuseStat struct {
	Reason  string
	Count   int
	Percent int
}

// GetExcusesQuery contains the parameters for the Hall of Excuses read.
type GetExcusesQuery struct {
	UserID uuid.UUID
}

// GetExcusesHandler aggregates miss reasons across the full log history,
// most frequent first.
type GetExcusesHandler struct {
	trackers domain.Repository
}

// NewGetExcusesHandler creates a new GetExcusesHandler.
func NewGetExcusesHandler(trackers domain.Repository) *GetExcusesHandler {
	return &GetExcusesHandler{trackers: trackers}
}

// Handle executes the GetExcusesQuery.
func (h *GetExcusesHandler) Handle(ctx context.Context, query GetExcusesQuery) ([]ExcuseStat, error) {
	tracker, err := h.trackers.FindByUserID(ctx, query.UserID)
	if err != nil {
		return nil, err
	}
	if tracker == nil {
		return nil, nil
	}

	counts := make(map[string]int)
	total := 0
	for _, log := range tracker.Logs() {
		if !log.MissedTarget || log.MissReason == "" {
			continue
		}
		counts[log.MissReason]++
		total++
	}
	if total == 0 {
		return nil, nil
	}

	stats := make([]ExcuseStat, 0, len(counts))
	for reason, count := range counts {
		stats = append(stats, ExcuseStat{
			Reason:  reason,
			Count:   count,
			Percent: count * 100 / total,
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Reason < stats[j].Reason
	})
	return stats, nil
}
