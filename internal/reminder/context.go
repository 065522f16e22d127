package reminder

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/paydue/reminder-engine/internal/domain"
	"github.com/paydue/reminder-engine/internal/recurrence"
)

// Context carries the aggregate figures used to enrich notification text:
// how many pending bills fall in the window, their total amount, and how
// many bills are overdue overall.
type Context struct {
	Count        int
	TotalAmount  decimal.Decimal
	OverdueCount int
	IsPayday     bool
	CategoryName string
}

// WeeklyContext aggregates pending bills whose due date falls inside
// [windowStart, windowEnd], inclusive on both ends. OverdueCount counts all
// pending bills past due relative to now, independent of the window. Empty
// input yields a zeroed Context, never an error.
func WeeklyContext(bills []domain.Bill, windowStart, windowEnd, now time.Time) Context {
	start := recurrence.Day(windowStart)
	end := recurrence.Day(windowEnd)
	today := recurrence.Day(now)

	ctx := Context{TotalAmount: decimal.Zero}
	for _, bill := range bills {
		if bill.Status != domain.BillStatusPending {
			continue
		}

		due := recurrence.Day(bill.DueDate)
		if !due.Before(start) && !due.After(end) {
			ctx.Count++
			ctx.TotalAmount = ctx.TotalAmount.Add(bill.Amount)
		}
		if due.Before(today) {
			ctx.OverdueCount++
		}
	}

	return ctx
}

// CategoryCluster returns the category name when more than the given number
// of pending bills in the window share bill's category, or "" otherwise.
// Used for the "3 utilities bills coming up" style of message.
func CategoryCluster(bills []domain.Bill, bill domain.Bill, windowStart, windowEnd time.Time, threshold int) string {
	start := recurrence.Day(windowStart)
	end := recurrence.Day(windowEnd)

	count := 0
	for _, other := range bills {
		if other.Status != domain.BillStatusPending || other.Category != bill.Category {
			continue
		}
		due := recurrence.Day(other.DueDate)
		if !due.Before(start) && !due.After(end) {
			count++
		}
	}

	if count > threshold {
		return domain.CategoryDisplayName(bill.Category)
	}
	return ""
}
