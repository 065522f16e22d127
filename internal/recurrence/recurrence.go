// Package recurrence implements the frequency calendar: pure date math that
// advances a bill's due date by its billing frequency. Every call site that
// rolls a bill forward goes through NextDueDate; there is exactly one copy
// of the frequency switch in the codebase.
package recurrence

import (
	"time"

	"github.com/paydue/reminder-engine/internal/domain"
	customError "github.com/paydue/reminder-engine/pkg/errors"
)

// monthSteps maps the month-based frequencies to how many months one
// occurrence advances the due date.
var monthSteps = map[string]int{
	domain.FrequencyMonthly:      1,
	domain.FrequencyBiMonthly:    2,
	domain.FrequencyQuarterly:    3,
	domain.FrequencySemiAnnually: 6,
	domain.FrequencyYearly:       12,
}

// NextDueDate returns the due date of the occurrence after current.
//
// Weekly frequencies advance by exactly 7 or 14 days. Month-based
// frequencies advance calendar-correct: the day of month is preserved where
// it exists and clamped to the last valid day otherwise (Jan 31 + 1 month
// is Feb 28, or Feb 29 in a leap year, never a rollover into March).
//
// customDayOfMonth, when non-zero, overrides the day of month for
// month-based frequencies after the month step: 1-31 snaps to that day
// (clamped to the target month's length), domain.LastDayOfMonth always
// means the true last day. Week-based frequencies ignore it. Zero means no
// override.
//
// Frequency "once" has no next occurrence and returns INVALID_OPERATION.
// Time-of-day and timezone are discarded; the result is a UTC midnight date.
func NextDueDate(current time.Time, frequency string, customDayOfMonth int) (time.Time, error) {
	if err := validateCustomDay(customDayOfMonth); err != nil {
		return time.Time{}, err
	}

	date := Day(current)

	switch frequency {
	case domain.FrequencyOnce:
		return time.Time{}, customError.WrapNoNextOccurrence()
	case domain.FrequencyWeekly:
		return date.AddDate(0, 0, 7), nil
	case domain.FrequencyBiWeekly:
		return date.AddDate(0, 0, 14), nil
	}

	months, ok := monthSteps[frequency]
	if !ok {
		return time.Time{}, customError.WrapUnknownFrequency(frequency)
	}

	return addMonthsClamped(date, months, customDayOfMonth), nil
}

// IsRecurring reports whether the frequency produces further occurrences.
func IsRecurring(frequency string) bool {
	return frequency != domain.FrequencyOnce
}

// ValidFrequency reports whether frequency is one of the closed enum values.
func ValidFrequency(frequency string) bool {
	switch frequency {
	case domain.FrequencyOnce, domain.FrequencyWeekly, domain.FrequencyBiWeekly:
		return true
	}
	_, ok := monthSteps[frequency]
	return ok
}

func validateCustomDay(day int) error {
	if day == 0 || day == domain.LastDayOfMonth {
		return nil
	}
	if day < 1 || day > 31 {
		return customError.WrapInvalidDayOfMonth(day)
	}
	return nil
}

// addMonthsClamped advances by the given number of months without the
// rollover behavior of time.Time.AddDate (which turns Jan 31 + 1 month into
// Mar 2/3). The day of month is clamped to the target month's length, or
// snapped to customDay when one is set.
func addMonthsClamped(date time.Time, months, customDay int) time.Time {
	year, month, day := date.Date()

	// First of the target month; time.Date normalizes month overflow.
	target := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	last := DaysInMonth(target.Year(), target.Month())

	switch {
	case customDay == domain.LastDayOfMonth:
		day = last
	case customDay > 0:
		day = min(customDay, last)
	case day > last:
		day = last
	}

	return time.Date(target.Year(), target.Month(), day, 0, 0, 0, 0, time.UTC)
}
