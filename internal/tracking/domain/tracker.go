package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	advisor "github.com/felixgeelhaar/codestrike/internal/advisor/domain"
	shared "github.com/felixgeelhaar/codestrike/internal/shared/domain"
)

var (
	ErrInvalidCount     = errors.New("count must be positive")
	ErrInvalidTarget    = errors.New("daily target must be positive")
	ErrReasonRequired   = errors.New("a reason is required to close a missed day")
	ErrTargetAlreadyMet = errors.New("today's target is already met")
	ErrTargetNotMet     = errors.New("today's target is not met yet")
)

// DayOutcome is the result of evaluating a day against the target.
type DayOutcome string

const (
	OutcomeMet    DayOutcome = "MET"
	OutcomeMissed DayOutcome = "MISSED"
)

// DayCount is one day's synced count from the external provider.
type DayCount struct {
	Day   DayKey
	Count int
}

// SyncBatch is a normalized external stats result.
type SyncBatch struct {
	TotalSolved int
	SolvedToday int
	Entries     []DayCount
}

// IsZero reports whether the batch carries no data, which is how upstream
// fetch failures reach the domain.
func (b SyncBatch) IsZero() bool {
	return b.TotalSolved == 0 && b.SolvedToday == 0 && len(b.Entries) == 0
}

// Tracker is the aggregate root for one user's practice history: the daily
// log set, the running totals derived from it, and the adaptive daily
// target. All mutation goes through its methods so the derived state never
// drifts from the logs.
type Tracker struct {
	shared.BaseAggregateRoot
	userID         uuid.UUID
	dailyTarget    int
	baselineTarget int
	streak         int
	totalSolved    int
	lastSyncAt     *time.Time
	logs           []DailyLog
}

// NewTracker creates a fresh tracker with the baseline daily target.
func NewTracker(userID uuid.UUID, baselineTarget int) (*Tracker, error) {
	if baselineTarget <= 0 {
		return nil, ErrInvalidTarget
	}
	return &Tracker{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		userID:            userID,
		dailyTarget:       baselineTarget,
		baselineTarget:    baselineTarget,
	}, nil
}

// RehydrateTracker restores a tracker from persistence.
func RehydrateTracker(
	id, userID uuid.UUID,
	dailyTarget, baselineTarget, streak, totalSolved int,
	lastSyncAt *time.Time,
	logs []DailyLog,
	version int,
	createdAt, updatedAt time.Time,
) *Tracker {
	return &Tracker{
		BaseAggregateRoot: shared.RehydrateBaseAggregateRoot(shared.RehydrateBaseEntity(id, createdAt, updatedAt), version),
		userID:            userID,
		dailyTarget:       dailyTarget,
		baselineTarget:    baselineTarget,
		streak:            streak,
		totalSolved:       totalSolved,
		lastSyncAt:        lastSyncAt,
		logs:              logs,
	}
}

func (t *Tracker) UserID() uuid.UUID     { return t.userID }
func (t *Tracker) DailyTarget() int      { return t.dailyTarget }
func (t *Tracker) BaselineTarget() int   { return t.baselineTarget }
func (t *Tracker) Streak() int           { return t.streak }
func (t *Tracker) TotalSolved() int      { return t.totalSolved }
func (t *Tracker) LastSyncAt() *time.Time { return t.lastSyncAt }

// Logs returns a copy of the log set.
func (t *Tracker) Logs() []DailyLog {
	out := make([]DailyLog, len(t.logs))
	copy(out, t.logs)
	return out
}

// TotalFor sums all contributions to one day.
func (t *Tracker) TotalFor(day DayKey) int {
	total := 0
	for _, l := range t.logs {
		if l.Day == day {
			total += l.Solved
		}
	}
	return total
}

// TodayTotal sums today's contributions.
func (t *Tracker) TodayTotal(now time.Time) int {
	return t.TotalFor(NewDayKey(now))
}

// RecordManual adds a hand-entered count to today's log. It reports
// whether this entry pushed today's total across the target, which fires
// exactly once per crossing.
func (t *Tracker) RecordManual(count int, now time.Time) (bool, error) {
	if count <= 0 {
		return false, ErrInvalidCount
	}

	today := NewDayKey(now)
	before := t.TotalFor(today)

	if idx := t.findLog(today, SourceManual); idx >= 0 {
		t.logs[idx].Solved += count
		t.logs[idx].UpdatedAt = now.UTC()
	} else {
		t.logs = append(t.logs, NewDailyLog(today, SourceManual, count))
	}

	t.totalSolved += count
	t.recomputeStreak(now)

	after := before + count
	crossed := before < t.dailyTarget && after >= t.dailyTarget

	t.Record(newProgressLogged(t.ID(), today, count, after, t.totalSolved, t.streak))
	if crossed {
		t.Record(newTargetMet(t.ID(), today, after, t.dailyTarget))
	}
	t.Touch()
	return crossed, nil
}

// ApplySync reconciles an external stats batch into the log set. The batch
// replaces the synced partition wholesale; manual entries survive. A zero
// batch, the shape of an upstream failure, changes nothing.
func (t *Tracker) ApplySync(batch SyncBatch, now time.Time) bool {
	if batch.IsZero() {
		return false
	}

	today := NewDayKey(now)
	before := t.TotalFor(today)

	fresh := make([]DailyLog, 0, len(batch.Entries))
	for _, e := range batch.Entries {
		fresh = append(fresh, NewDailyLog(e.Day, SourceLeetCode, e.Count))
	}
	t.logs = Reconcile(t.logs, fresh)

	// Lifetime total is the provider's figure plus whatever was logged
	// by hand on top of it.
	manual := 0
	for _, l := range t.logs {
		if l.IsManual() {
			manual += l.Solved
		}
	}
	t.totalSolved = batch.TotalSolved + manual

	t.recomputeStreak(now)
	syncedAt := now.UTC()
	t.lastSyncAt = &syncedAt

	after := t.TotalFor(today)
	crossed := before < t.dailyTarget && after >= t.dailyTarget

	t.Record(newSyncApplied(t.ID(), len(batch.Entries), t.totalSolved, batch.SolvedToday, t.streak))
	if crossed {
		t.Record(newTargetMet(t.ID(), today, after, t.dailyTarget))
	}
	t.Touch()
	return crossed
}

// EvaluateDay decides how today would close right now.
func (t *Tracker) EvaluateDay(now time.Time) (DayOutcome, int) {
	total := t.TodayTotal(now)
	if total >= t.dailyTarget {
		return OutcomeMet, 0
	}
	return OutcomeMissed, t.dailyTarget - total
}

// AcknowledgeMet closes a met day. When the target was elevated by an
// earlier catch-up plan it drops back to baseline; the catch-up period is
// over. Reports whether a reset happened.
func (t *Tracker) AcknowledgeMet(now time.Time) (bool, error) {
	if t.TodayTotal(now) < t.dailyTarget {
		return false, ErrTargetNotMet
	}
	if t.dailyTarget <= t.baselineTarget {
		return false, nil
	}

	old := t.dailyTarget
	t.dailyTarget = t.baselineTarget
	t.recomputeStreak(now)
	t.Record(newTargetReset(t.ID(), old, t.baselineTarget))
	t.Touch()
	return true, nil
}

// AcceptCatchUp closes a missed day: today's log is marked missed with the
// supplied reason and analysis, and the deficit is added to the daily
// target until the next met day resets it. Re-closing an already-missed
// day updates the log in place without raising the target again.
func (t *Tracker) AcceptCatchUp(reason string, impact *advisor.ImpactAnalysis, now time.Time) (int, error) {
	if strings.TrimSpace(reason) == "" {
		return 0, ErrReasonRequired
	}

	today := NewDayKey(now)
	deficit := t.dailyTarget - t.TotalFor(today)
	if deficit <= 0 {
		return 0, ErrTargetAlreadyMet
	}

	alreadyMissed := false
	if idx := t.findLog(today, SourceManual); idx >= 0 {
		alreadyMissed = t.logs[idx].MissedTarget
		t.logs[idx].MissedTarget = true
		t.logs[idx].MissReason = reason
		t.logs[idx].Impact = impact
		t.logs[idx].UpdatedAt = now.UTC()
	} else {
		l := NewDailyLog(today, SourceManual, 0)
		l.MissedTarget = true
		l.MissReason = reason
		l.Impact = impact
		t.logs = append(t.logs, l)
	}

	t.Record(newTargetMissed(t.ID(), today, deficit, reason))

	if !alreadyMissed {
		old := t.dailyTarget
		t.dailyTarget += deficit
		t.recomputeStreak(now)
		t.Record(newTargetAdjusted(t.ID(), old, t.dailyTarget, deficit))
	}

	t.Touch()
	return deficit, nil
}

// SetDailyTarget replaces both the active target and the baseline it
// resets to.
func (t *Tracker) SetDailyTarget(target int, now time.Time) error {
	if target <= 0 {
		return ErrInvalidTarget
	}
	old := t.dailyTarget
	t.dailyTarget = target
	t.baselineTarget = target
	t.recomputeStreak(now)
	if old != target {
		t.Record(newTargetAdjusted(t.ID(), old, target, 0))
	}
	t.Touch()
	return nil
}

func (t *Tracker) recomputeStreak(now time.Time) {
	t.streak = CurrentStreak(DayTotals(t.logs), t.dailyTarget, now)
}

func (t *Tracker) findLog(day DayKey, source Source) int {
	for i := range t.logs {
		if t.logs[i].Day == day && t.logs[i].Source == source {
			return i
		}
	}
	return -1
}
