package domain

import "time"

// dayLayout is the calendar-day identity format.
const dayLayout = "2006-01-02"

// DayKey identifies a calendar day in the user's local time zone. All
// reconciliation and streak logic operates at this granularity.
type DayKey string

// NewDayKey truncates a timestamp to its local calendar day.
func NewDayKey(t time.Time) DayKey {
	return DayKey(t.Format(dayLayout))
}

// ParseDayKey validates a stored day string.
func ParseDayKey(s string) (DayKey, error) {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return "", err
	}
	return NewDayKey(t), nil
}

func (k DayKey) String() string { return string(k) }

// Time returns midnight of the day. The zone is irrelevant because keys
// only ever step whole days.
func (k DayKey) Time() time.Time {
	t, err := time.Parse(dayLayout, string(k))
	if err != nil {
		return time.Time{}
	}
	return t
}

// Prev returns the preceding calendar day.
func (k DayKey) Prev() DayKey {
	return DayKey(k.Time().AddDate(0, 0, -1).Format(dayLayout))
}

// Next returns the following calendar day.
func (k DayKey) Next() DayKey {
	return DayKey(k.Time().AddDate(0, 0, 1).Format(dayLayout))
}

// Before reports whether k is an earlier day than other.
func (k DayKey) Before(other DayKey) bool {
	return string(k) < string(other)
}
