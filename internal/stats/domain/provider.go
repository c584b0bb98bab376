// Package domain defines the external statistics boundary.
package domain

import "context"

// DayCount is one day's solved count taken from the provider's calendar.
type DayCount struct {
	Day   string
	Count int
}

// SyncResult is the normalized outcome of a stats fetch. A zero value
// signals that nothing could be fetched this cycle.
type SyncResult struct {
	TotalSolved int
	SolvedToday int
	Days        []DayCount
}

// IsZero reports whether the fetch produced no data.
func (r SyncResult) IsZero() bool {
	return r.TotalSolved == 0 && r.SolvedToday == 0 && len(r.Days) == 0
}

// Provider fetches practice statistics for a platform account.
//
// Implementations never fail the caller: any transport or parse problem
// yields the zero-value result and a nil error, so the sync flow always
// sees well-formed input.
type Provider interface {
	FetchStats(ctx context.Context, username string) (SyncResult, error)
}
