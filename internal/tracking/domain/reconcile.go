package domain

import "sort"

// Reconcile merges freshly synced external logs with the existing log set.
//
// The external provider is the full source of truth for its own history, so
// the old synced partition is dropped wholesale and replaced by the fresh
// batch. Manual entries are always retained; when a manual and a synced
// entry share a day both survive as separate contributions and callers sum
// them per day.
//
// An empty batch means the upstream fetch produced nothing this cycle and
// the existing set is returned unchanged.
func Reconcile(existing []DailyLog, fresh []DailyLog) []DailyLog {
	if len(fresh) == 0 {
		return existing
	}

	merged := make([]DailyLog, 0, len(existing)+len(fresh))
	for _, l := range existing {
		if l.IsManual() {
			merged = append(merged, l)
		}
	}
	merged = append(merged, fresh...)

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].Day != merged[j].Day {
			return merged[i].Day.Before(merged[j].Day)
		}
		return merged[i].Source < merged[j].Source
	})
	return merged
}
