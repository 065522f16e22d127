package recurrence

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/paydue/reminder-engine/internal/domain"
	customError "github.com/paydue/reminder-engine/pkg/errors"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextDueDate(t *testing.T) {
	tests := []struct {
		name      string
		current   time.Time
		frequency string
		customDay int
		expected  time.Time
	}{
		{
			name:      "weekly adds exactly 7 days",
			current:   date(2024, time.March, 15),
			frequency: domain.FrequencyWeekly,
			expected:  date(2024, time.March, 22),
		},
		{
			name:      "bi-weekly adds exactly 14 days",
			current:   date(2024, time.March, 15),
			frequency: domain.FrequencyBiWeekly,
			expected:  date(2024, time.March, 29),
		},
		{
			name:      "weekly crosses a month boundary",
			current:   date(2024, time.January, 29),
			frequency: domain.FrequencyWeekly,
			expected:  date(2024, time.February, 5),
		},
		{
			name:      "monthly keeps day of month",
			current:   date(2024, time.March, 15),
			frequency: domain.FrequencyMonthly,
			expected:  date(2024, time.April, 15),
		},
		{
			name:      "monthly Jan 31 clamps to leap-year Feb 29",
			current:   date(2024, time.January, 31),
			frequency: domain.FrequencyMonthly,
			expected:  date(2024, time.February, 29),
		},
		{
			name:      "monthly Jan 31 clamps to Feb 28 in a common year",
			current:   date(2023, time.January, 31),
			frequency: domain.FrequencyMonthly,
			expected:  date(2023, time.February, 28),
		},
		{
			name:      "monthly Dec rolls into the next year",
			current:   date(2024, time.December, 10),
			frequency: domain.FrequencyMonthly,
			expected:  date(2025, time.January, 10),
		},
		{
			name:      "bi-monthly adds two months",
			current:   date(2024, time.January, 31),
			frequency: domain.FrequencyBiMonthly,
			expected:  date(2024, time.March, 31),
		},
		{
			name:      "quarterly adds three months with clamp",
			current:   date(2024, time.November, 30),
			frequency: domain.FrequencyQuarterly,
			expected:  date(2025, time.February, 28),
		},
		{
			name:      "semi-annually adds six months",
			current:   date(2024, time.August, 31),
			frequency: domain.FrequencySemiAnnually,
			expected:  date(2025, time.February, 28),
		},
		{
			name:      "yearly keeps the date",
			current:   date(2024, time.March, 15),
			frequency: domain.FrequencyYearly,
			expected:  date(2025, time.March, 15),
		},
		{
			name:      "yearly from leap day clamps to Feb 28",
			current:   date(2024, time.February, 29),
			frequency: domain.FrequencyYearly,
			expected:  date(2025, time.February, 28),
		},
		{
			name:      "custom day snaps after the month step",
			current:   date(2024, time.March, 15),
			frequency: domain.FrequencyMonthly,
			customDay: 1,
			expected:  date(2024, time.April, 1),
		},
		{
			name:      "custom day 31 clamps to shorter months",
			current:   date(2024, time.March, 31),
			frequency: domain.FrequencyMonthly,
			customDay: 31,
			expected:  date(2024, time.April, 30),
		},
		{
			name:      "custom last-day yields the true month end",
			current:   date(2024, time.January, 15),
			frequency: domain.FrequencyMonthly,
			customDay: domain.LastDayOfMonth,
			expected:  date(2024, time.February, 29),
		},
		{
			name:      "custom last-day on quarterly",
			current:   date(2024, time.January, 31),
			frequency: domain.FrequencyQuarterly,
			customDay: domain.LastDayOfMonth,
			expected:  date(2024, time.April, 30),
		},
		{
			name:      "week-based frequency ignores custom day",
			current:   date(2024, time.March, 15),
			frequency: domain.FrequencyWeekly,
			customDay: 10,
			expected:  date(2024, time.March, 22),
		},
		{
			name:      "time of day is discarded",
			current:   time.Date(2024, time.March, 15, 23, 59, 59, 0, time.UTC),
			frequency: domain.FrequencyWeekly,
			expected:  date(2024, time.March, 22),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NextDueDate(tt.current, tt.frequency, tt.customDay)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestNextDueDate_Errors(t *testing.T) {
	tests := []struct {
		name      string
		frequency string
		customDay int
		wantErr   error
		wantCode  string
	}{
		{
			name:      "once has no next occurrence",
			frequency: domain.FrequencyOnce,
			wantErr:   customError.ErrNoNextOccurrence,
			wantCode:  customError.ErrCodeInvalidOperation,
		},
		{
			name:      "unknown frequency",
			frequency: "fortnightly",
			wantErr:   customError.ErrUnknownFrequency,
			wantCode:  customError.ErrCodeInvalidArgument,
		},
		{
			name:      "custom day above 31",
			frequency: domain.FrequencyMonthly,
			customDay: 32,
			wantErr:   customError.ErrInvalidDayOfMonth,
			wantCode:  customError.ErrCodeInvalidArgument,
		},
		{
			name:      "custom day below -1",
			frequency: domain.FrequencyMonthly,
			customDay: -2,
			wantErr:   customError.ErrInvalidDayOfMonth,
			wantCode:  customError.ErrCodeInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NextDueDate(date(2024, time.March, 15), tt.frequency, tt.customDay)
			assert.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var bizErr *customError.BusinessError
			assert.True(t, errors.As(err, &bizErr))
			assert.Equal(t, tt.wantCode, bizErr.Code)
		})
	}
}

func TestNextDueDate_WeeklyDeltaIsConstant(t *testing.T) {
	// Property: for any start date, weekly and bi-weekly advance by exactly
	// 7 and 14 days, including across DST-free month and year boundaries.
	start := date(2023, time.January, 1)
	for i := 0; i < 500; i++ {
		current := start.AddDate(0, 0, i)

		next, err := NextDueDate(current, domain.FrequencyWeekly, 0)
		assert.NoError(t, err)
		assert.Equal(t, 7, DaysBetween(current, next))

		next, err = NextDueDate(current, domain.FrequencyBiWeekly, 0)
		assert.NoError(t, err)
		assert.Equal(t, 14, DaysBetween(current, next))
	}
}

func TestNextDueDate_MonthlyNeverSkipsAMonth(t *testing.T) {
	// Property: monthly advancement lands in the immediately following
	// month for every start day, including the 29th-31st.
	for day := 1; day <= 31; day++ {
		current := date(2024, time.January, day)
		next, err := NextDueDate(current, domain.FrequencyMonthly, 0)
		assert.NoError(t, err)
		assert.Equal(t, time.February, next.Month(), "start day %d", day)
	}
}

func TestValidFrequency(t *testing.T) {
	for _, f := range []string{
		domain.FrequencyOnce, domain.FrequencyWeekly, domain.FrequencyBiWeekly,
		domain.FrequencyMonthly, domain.FrequencyBiMonthly, domain.FrequencyQuarterly,
		domain.FrequencySemiAnnually, domain.FrequencyYearly,
	} {
		assert.True(t, ValidFrequency(f), f)
	}
	assert.False(t, ValidFrequency("daily"))
	assert.False(t, ValidFrequency(""))
}

func TestDateHelpers(t *testing.T) {
	assert.Equal(t, 29, DaysInMonth(2024, time.February))
	assert.Equal(t, 28, DaysInMonth(2023, time.February))
	assert.Equal(t, 31, DaysInMonth(2024, time.December))

	assert.Equal(t, date(2024, time.February, 29), LastDayOfMonth(date(2024, time.February, 10)))
	assert.Equal(t, date(2024, time.February, 1), FirstDayOfMonth(date(2024, time.February, 10)))

	assert.Equal(t, 1, DaysBetween(date(2024, time.March, 15), date(2024, time.March, 16)))
	assert.Equal(t, -1, DaysBetween(date(2024, time.March, 15), date(2024, time.March, 14)))
	assert.Equal(t, 0, DaysBetween(
		time.Date(2024, time.March, 15, 1, 0, 0, 0, time.UTC),
		time.Date(2024, time.March, 15, 23, 0, 0, 0, time.UTC),
	))

	assert.Equal(t, time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC), At(date(2024, time.March, 15), 9))
}
