package domain

import (
	"time"

	"github.com/google/uuid"

	advisor "github.com/felixgeelhaar/codestrike/internal/advisor/domain"
)

// Source identifies where a daily log's count came from.
type Source string

const (
	// SourceManual marks counts the user entered by hand.
	SourceManual Source = "manual"
	// SourceLeetCode marks counts synced from the LeetCode stats provider.
	SourceLeetCode Source = "leetcode"
)

// IsValid reports whether the source is known.
func (s Source) IsValid() bool {
	return s == SourceManual || s == SourceLeetCode
}

// DailyLog is one source's contribution to a calendar day. A day may hold
// one manual and one synced log; the day's total is the sum of both.
type DailyLog struct {
	ID           uuid.UUID
	Day          DayKey
	Source       Source
	Solved       int
	MissedTarget bool
	MissReason   string
	Impact       *advisor.ImpactAnalysis
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewDailyLog creates a log entry for one day and source.
func NewDailyLog(day DayKey, source Source, solved int) DailyLog {
	now := time.Now().UTC()
	return DailyLog{
		ID:        uuid.New(),
		Day:       day,
		Source:    source,
		Solved:    solved,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsManual reports whether the entry was hand-entered.
func (l DailyLog) IsManual() bool {
	return l.Source == SourceManual
}

// DayTotals sums log counts per calendar day. Days without logs are
// simply absent; callers treat absence as zero.
func DayTotals(logs []DailyLog) map[DayKey]int {
	totals := make(map[DayKey]int, len(logs))
	for _, l := range logs {
		totals[l.Day] += l.Solved
	}
	return totals
}
