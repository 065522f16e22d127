package reminder

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/paydue/reminder-engine/internal/domain"
)

func TestWeeklyContext(t *testing.T) {
	now := date(2024, time.May, 10)
	windowStart := now
	windowEnd := now.AddDate(0, 0, 6)

	amount := func(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

	bills := []domain.Bill{
		{Name: "Water", Amount: amount(50), DueDate: date(2024, time.May, 11), Status: domain.BillStatusPending},
		{Name: "Power", Amount: amount(75.50), DueDate: date(2024, time.May, 16), Status: domain.BillStatusPending},
		{Name: "Rent", Amount: amount(200), DueDate: date(2024, time.May, 12), Status: domain.BillStatusPaid},
		{Name: "Gym", Amount: amount(30), DueDate: date(2024, time.May, 20), Status: domain.BillStatusPending},
	}

	ctx := WeeklyContext(bills, windowStart, windowEnd, now)

	// Paid bill excluded, out-of-window bill excluded.
	assert.Equal(t, 2, ctx.Count)
	assert.True(t, ctx.TotalAmount.Equal(amount(125.50)),
		"expected 125.50, got %s", ctx.TotalAmount)
	assert.Equal(t, 0, ctx.OverdueCount)
}

func TestWeeklyContext_WindowInclusiveBothEnds(t *testing.T) {
	now := date(2024, time.May, 10)
	start := date(2024, time.May, 10)
	end := date(2024, time.May, 17)

	bills := []domain.Bill{
		{Name: "OnStart", Amount: decimal.NewFromInt(10), DueDate: start, Status: domain.BillStatusPending},
		{Name: "OnEnd", Amount: decimal.NewFromInt(20), DueDate: end, Status: domain.BillStatusPending},
		{Name: "After", Amount: decimal.NewFromInt(40), DueDate: end.AddDate(0, 0, 1), Status: domain.BillStatusPending},
	}

	ctx := WeeklyContext(bills, start, end, now)

	assert.Equal(t, 2, ctx.Count)
	assert.True(t, ctx.TotalAmount.Equal(decimal.NewFromInt(30)))
}

func TestWeeklyContext_OverdueIndependentOfWindow(t *testing.T) {
	now := date(2024, time.May, 10)

	bills := []domain.Bill{
		{Name: "OldOne", Amount: decimal.NewFromInt(10), DueDate: date(2024, time.April, 1), Status: domain.BillStatusPending},
		{Name: "OldTwo", Amount: decimal.NewFromInt(10), DueDate: date(2024, time.May, 9), Status: domain.BillStatusPending},
		{Name: "OldPaid", Amount: decimal.NewFromInt(10), DueDate: date(2024, time.May, 1), Status: domain.BillStatusPaid},
	}

	ctx := WeeklyContext(bills, now, now.AddDate(0, 0, 6), now)

	assert.Equal(t, 0, ctx.Count)
	assert.Equal(t, 2, ctx.OverdueCount)
}

func TestWeeklyContext_EmptyInput(t *testing.T) {
	now := date(2024, time.May, 10)

	ctx := WeeklyContext(nil, now, now.AddDate(0, 0, 6), now)

	assert.Equal(t, 0, ctx.Count)
	assert.Equal(t, 0, ctx.OverdueCount)
	assert.True(t, ctx.TotalAmount.IsZero())
}

func TestCategoryCluster(t *testing.T) {
	now := date(2024, time.May, 10)
	end := now.AddDate(0, 0, 6)

	utility := func(name string, day int) domain.Bill {
		return domain.Bill{
			Name:     name,
			Amount:   decimal.NewFromInt(10),
			DueDate:  date(2024, time.May, day),
			Status:   domain.BillStatusPending,
			Category: domain.CategoryUtilities,
		}
	}

	bills := []domain.Bill{utility("Water", 11), utility("Power", 12), utility("Gas", 13)}

	assert.Equal(t, "Utilities", CategoryCluster(bills, bills[0], now, end, 2))
	assert.Equal(t, "", CategoryCluster(bills[:2], bills[0], now, end, 2))
}
