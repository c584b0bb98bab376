// Package domain models the user's practice goals.
package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	shared "github.com/felixgeelhaar/codestrike/internal/shared/domain"
)

var (
	ErrEmptyDescription = errors.New("goal description must not be empty")
	ErrInvalidKind      = errors.New("unknown goal kind")
	ErrInvalidTarget    = errors.New("goal target must be positive")
)

// Kind distinguishes how a goal relates to the running total.
type Kind string

const (
	// KindDaily mirrors the daily target; it is managed by the tracker,
	// not by progress projection.
	KindDaily Kind = "DAILY"
	// KindShortTerm and KindLongTerm track the lifetime solved total.
	KindShortTerm Kind = "SHORT_TERM"
	KindLongTerm  Kind = "LONG_TERM"
)

// IsValid reports whether the kind is known.
func (k Kind) IsValid() bool {
	switch k {
	case KindDaily, KindShortTerm, KindLongTerm:
		return true
	default:
		return false
	}
}

// Goal is a target commitment. Short- and long-term goals all track the
// same global solved counter; their progress is projected, not counted
// independently.
type Goal struct {
	shared.BaseEntity
	userID      uuid.UUID
	description string
	kind        Kind
	targetCount int
	progress    int
	deadline    string
	unit        string
}

// NewGoal creates a goal after validating its shape.
func NewGoal(userID uuid.UUID, description string, kind Kind, targetCount int, deadline, unit string) (*Goal, error) {
	if strings.TrimSpace(description) == "" {
		return nil, ErrEmptyDescription
	}
	if !kind.IsValid() {
		return nil, ErrInvalidKind
	}
	if targetCount <= 0 {
		return nil, ErrInvalidTarget
	}
	return &Goal{
		BaseEntity:  shared.NewBaseEntity(),
		userID:      userID,
		description: description,
		kind:        kind,
		targetCount: targetCount,
		deadline:    deadline,
		unit:        unit,
	}, nil
}

// RehydrateGoal restores a goal from persistence.
func RehydrateGoal(entity shared.BaseEntity, userID uuid.UUID, description string, kind Kind, targetCount, progress int, deadline, unit string) *Goal {
	return &Goal{
		BaseEntity:  entity,
		userID:      userID,
		description: description,
		kind:        kind,
		targetCount: targetCount,
		progress:    progress,
		deadline:    deadline,
		unit:        unit,
	}
}

func (g *Goal) UserID() uuid.UUID   { return g.userID }
func (g *Goal) Description() string { return g.description }
func (g *Goal) Kind() Kind          { return g.kind }
func (g *Goal) TargetCount() int    { return g.targetCount }
func (g *Goal) Progress() int       { return g.progress }
func (g *Goal) Deadline() string    { return g.deadline }

// Unit is a display label only; it plays no part in projection.
func (g *Goal) Unit() string { return g.unit }

// TracksTotal reports whether progress projection applies to this goal.
func (g *Goal) TracksTotal() bool {
	return g.kind == KindShortTerm || g.kind == KindLongTerm
}

// SetProgress overwrites the projected progress. Negative input clamps to
// zero.
func (g *Goal) SetProgress(progress int) {
	if progress < 0 {
		progress = 0
	}
	g.progress = progress
	g.Touch()
}

// UpdateDetails edits the user-facing goal fields.
func (g *Goal) UpdateDetails(description string, targetCount int, deadline string) error {
	if strings.TrimSpace(description) == "" {
		return ErrEmptyDescription
	}
	if targetCount <= 0 {
		return ErrInvalidTarget
	}
	g.description = description
	g.targetCount = targetCount
	g.deadline = deadline
	g.Touch()
	return nil
}

// Percent returns completion as a whole percentage, capped at 100.
func (g *Goal) Percent() int {
	if g.targetCount <= 0 {
		return 0
	}
	pct := g.progress * 100 / g.targetCount
	if pct > 100 {
		return 100
	}
	return pct
}
