package recurrence

import "time"

// Day truncates t to a whole calendar day at UTC midnight. All scheduling
// math operates on Day-normalized values so that time-of-day never affects
// a decision.
func Day(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole calendar days from "from" to
// "to", negative when "to" precedes "from".
func DaysBetween(from, to time.Time) int {
	return int(Day(to).Sub(Day(from)).Hours() / 24)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// LastDayOfMonth returns the last calendar day of t's month.
func LastDayOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC)
}

// FirstDayOfMonth returns the first calendar day of t's month.
func FirstDayOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// At combines a calendar date with a fixed local hour, e.g. the 09:00
// reminder slot. Minutes and below are zeroed.
func At(date time.Time, hour int) time.Time {
	year, month, day := date.Date()
	return time.Date(year, month, day, hour, 0, 0, 0, date.Location())
}
