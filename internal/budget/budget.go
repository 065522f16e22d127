// Package budget computes per-category monthly spending summaries against
// configured limits. Pure aggregation over caller-supplied rows.
package budget

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paydue/reminder-engine/internal/domain"
	"github.com/paydue/reminder-engine/internal/recurrence"
)

// Budget health states
const (
	StatusSafe    = "safe"
	StatusWarning = "warning"
	StatusDanger  = "danger"
)

// DefaultAlertThreshold is the warning percentage used when a budget row
// does not carry its own.
const DefaultAlertThreshold = 80

// Summary is the health of one category's budget for the current month.
type Summary struct {
	Category   string          `json:"category"`
	Spent      decimal.Decimal `json:"spent"`
	Limit      decimal.Decimal `json:"limit"`
	Percentage int             `json:"percentage"`
	Remaining  decimal.Decimal `json:"remaining"`
	BillsCount int             `json:"bills_count"`
	Status     string          `json:"status"`
}

// CategorySpending sums the bills of one category whose due date falls in
// the month containing now.
func CategorySpending(bills []domain.Bill, category string, now time.Time) decimal.Decimal {
	monthStart := recurrence.FirstDayOfMonth(now)
	monthEnd := recurrence.LastDayOfMonth(now)

	total := decimal.Zero
	for _, bill := range bills {
		if bill.Category != category {
			continue
		}
		due := recurrence.Day(bill.DueDate)
		if !due.Before(monthStart) && !due.After(monthEnd) {
			total = total.Add(bill.Amount)
		}
	}
	return total
}

// Summarize reports the month's spending against every configured budget,
// sorted by percentage used, highest first.
func Summarize(budgets []*domain.CategoryBudget, bills []domain.Bill, now time.Time) []Summary {
	summaries := make([]Summary, 0, len(budgets))
	for _, b := range budgets {
		spent := CategorySpending(bills, b.Category, now)

		percentage := 0
		if b.MonthlyLimit.IsPositive() {
			percentage = int(spent.Div(b.MonthlyLimit).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
		}

		count := 0
		for _, bill := range bills {
			if bill.Category == b.Category {
				count++
			}
		}

		threshold := b.AlertThreshold
		if threshold == 0 {
			threshold = DefaultAlertThreshold
		}

		summaries = append(summaries, Summary{
			Category:   b.Category,
			Spent:      spent,
			Limit:      b.MonthlyLimit,
			Percentage: percentage,
			Remaining:  b.MonthlyLimit.Sub(spent),
			BillsCount: count,
			Status:     Status(spent, b.MonthlyLimit, threshold),
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Percentage > summaries[j].Percentage
	})

	return summaries
}

// Status classifies spending against a limit: danger at or above 100%,
// warning at or above the alert threshold, safe below it.
func Status(spent, limit decimal.Decimal, alertThreshold int) string {
	if !limit.IsPositive() {
		return StatusSafe
	}

	percentage := spent.Div(limit).Mul(decimal.NewFromInt(100))
	switch {
	case percentage.GreaterThanOrEqual(decimal.NewFromInt(100)):
		return StatusDanger
	case percentage.GreaterThanOrEqual(decimal.NewFromInt(int64(alertThreshold))):
		return StatusWarning
	default:
		return StatusSafe
	}
}

// OverBudgetCategories lists the display names of categories whose spending
// exceeds the limit.
func OverBudgetCategories(budgets []*domain.CategoryBudget, bills []domain.Bill, now time.Time) []string {
	var over []string
	for _, s := range Summarize(budgets, bills, now) {
		if s.Spent.GreaterThan(s.Limit) {
			over = append(over, domain.CategoryDisplayName(s.Category))
		}
	}
	return over
}

// TotalBudget sums every configured monthly limit.
func TotalBudget(budgets []*domain.CategoryBudget) decimal.Decimal {
	total := decimal.Zero
	for _, b := range budgets {
		total = total.Add(b.MonthlyLimit)
	}
	return total
}

// TotalSpending sums all bills due in the month containing now, across
// categories.
func TotalSpending(bills []domain.Bill, now time.Time) decimal.Decimal {
	monthStart := recurrence.FirstDayOfMonth(now)
	monthEnd := recurrence.LastDayOfMonth(now)

	total := decimal.Zero
	for _, bill := range bills {
		due := recurrence.Day(bill.DueDate)
		if !due.Before(monthStart) && !due.After(monthEnd) {
			total = total.Add(bill.Amount)
		}
	}
	return total
}
