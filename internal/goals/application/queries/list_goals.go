package queries

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/codestrike/internal/goals/domain"
)

// GoalDTO is a data transfer object for goals.
type GoalDTO struct {
	ID          uuid.UUID
	Description string
	Kind        string
	TargetCount int
	Progress    int
	Percent     int
	Deadline    string
	Unit        string
}

// ListGoalsQuery contains the parameters for listing goals.
type ListGoalsQuery struct {
	UserID uuid.UUID
}

// ListGoalsHandler handles the ListGoalsQuery.
type ListGoalsHandler struct {
	goals domain.Repository
}

// NewListGoalsHandler creates a new ListGoalsHandler.
func NewListGoalsHandler(goals domain.Repository) *ListGoalsHandler {
	return &ListGoalsHandler{goals: goals}
}

// Handle executes the ListGoalsQuery, ordered daily, short term, long term.
func (h *ListGoalsHandler) Handle(ctx context.Context, query ListGoalsQuery) ([]GoalDTO, error) {
	goals, err := h.goals.ListByUserID(ctx, query.UserID)
	if err != nil {
		return nil, err
	}

	sorted := make([]*domain.Goal, len(goals))
	copy(sorted, goals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return kindRank(sorted[i].Kind()) < kindRank(sorted[j].Kind())
	})

	dtos := make([]GoalDTO, len(sorted))
	for i, g := range sorted {
		dtos[i] = GoalDTO{
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
	return dtos, nil
}

func kindRank(kind domain.Kind) int {
	switch kind {
	case domain.KindDaily:
		return 0
	case domain.KindShortTerm:
		return 1
	default:
		return 2
	}
}
