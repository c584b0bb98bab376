package domain

import "time"

// CurrentStreak counts consecutive qualifying days under the strict rule:
// a day qualifies when its summed count is at or above target.
//
// Counting starts at today when today already qualifies. When it does not,
// a still-qualifying yesterday anchors the streak instead; the day is not
// over, so an unmet today does not yet break it. When neither qualifies
// the streak is zero.
//
// Pure function of (totals, target, now); the same inputs always yield the
// same streak.
func CurrentStreak(totals map[DayKey]int, target int, now time.Time) int {
	if target <= 0 {
		return 0
	}

	today := NewDayKey(now)
	yesterday := today.Prev()

	var start DayKey
	switch {
	case totals[today] >= target:
		start = today
	case totals[yesterday] >= target:
		start = yesterday
	default:
		return 0
	}

	streak := 0
	for day := start; totals[day] >= target; day = day.Prev() {
		streak++
	}
	return streak
}
