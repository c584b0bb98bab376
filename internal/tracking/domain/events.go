package domain

import (
	"github.com/google/uuid"

	shared "github.com/felixgeelhaar/codestrike/internal/shared/domain"
)

const aggregateType = "tracker"

// ProgressLogged is raised when the user records manual progress.
type ProgressLogged struct {
	shared.BaseEvent
	Day         DayKey `json:"day"`
	Count       int    `json:"count"`
	DayTotal    int    `json:"day_total"`
	TotalSolved int    `json:"total_solved"`
	Streak      int    `json:"streak"`
}

func newProgressLogged(trackerID uuid.UUID, day DayKey, count, dayTotal, totalSolved, streak int) *ProgressLogged {
	return &ProgressLogged{
		BaseEvent:   shared.NewBaseEvent(trackerID, aggregateType, "tracking.progress.logged"),
		Day:         day,
		Count:       count,
		DayTotal:    dayTotal,
		TotalSolved: totalSolved,
		Streak:      streak,
	}
}

// SyncApplied is raised when an external stats batch is reconciled in.
type SyncApplied struct {
	shared.BaseEvent
	Entries     int `json:"entries"`
	TotalSolved int `json:"total_solved"`
	SolvedToday int `json:"solved_today"`
	Streak      int `json:"streak"`
}

func newSyncApplied(trackerID uuid.UUID, entries, totalSolved, solvedToday, streak int) *SyncApplied {
	return &SyncApplied{
		BaseEvent:   shared.NewBaseEvent(trackerID, aggregateType, "tracking.sync.applied"),
		Entries:     entries,
		TotalSolved: totalSolved,
		SolvedToday: solvedToday,
		Streak:      streak,
	}
}

// TargetMet is raised once when a day's total first reaches the target.
type TargetMet struct {
	shared.BaseEvent
	Day    DayKey `json:"day"`
	Total  int    `json:"total"`
	Target int    `json:"target"`
}

func newTargetMet(trackerID uuid.UUID, day DayKey, total, target int) *TargetMet {
	return &TargetMet{
		BaseEvent: shared.NewBaseEvent(trackerID, aggregateType, "tracking.target.met"),
		Day:       day,
		Total:     total,
		Target:    target,
	}
}

// TargetMissed is raised when a day is closed out below target.
type TargetMissed struct {
	shared.BaseEvent
	Day     DayKey `json:"day"`
	Deficit int    `json:"deficit"`
	Reason  string `json:"reason"`
}

func newTargetMissed(trackerID uuid.UUID, day DayKey, deficit int, reason string) *TargetMissed {
	return &TargetMissed{
		BaseEvent: shared.NewBaseEvent(trackerID, aggregateType, "tracking.target.missed"),
		Day:       day,
		Deficit:   deficit,
		Reason:    reason,
	}
}

// TargetAdjusted is raised when the daily target is raised by a catch-up plan.
type TargetAdjusted struct {
	shared.BaseEvent
	OldTarget int `json:"old_target"`
	NewTarget int `json:"new_target"`
	Deficit   int `json:"deficit"`
}

func newTargetAdjusted(trackerID uuid.UUID, oldTarget, newTarget, deficit int) *TargetAdjusted {
	return &TargetAdjusted{
		BaseEvent: shared.NewBaseEvent(trackerID, aggregateType, "tracking.target.adjusted"),
		OldTarget: oldTarget,
		NewTarget: newTarget,
		Deficit:   deficit,
	}
}

// TargetReset is raised when a met day ends an elevated catch-up period.
type TargetReset struct {
	shared.BaseEvent
	OldTarget int `json:"old_target"`
	Baseline  int `json:"baseline"`
}

func newTargetReset(trackerID uuid.UUID, oldTarget, baseline int) *TargetReset {
	return &TargetReset{
		BaseEvent: shared.NewBaseEvent(trackerID, aggregateType, "tracking.target.reset"),
		OldTarget: oldTarget,
		Baseline:  baseline,
	}
}
