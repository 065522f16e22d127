package budget

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paydue/reminder-engine/internal/domain"
)

var now = time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC)

func bill(category string, amount float64, due time.Time) domain.Bill {
	return domain.Bill{
		Category: category,
		Amount:   decimal.NewFromFloat(amount),
		DueDate:  due,
		Status:   domain.BillStatusPending,
	}
}

func budgetRow(category string, limit float64, threshold int) *domain.CategoryBudget {
	return &domain.CategoryBudget{
		Category:       category,
		MonthlyLimit:   decimal.NewFromFloat(limit),
		AlertThreshold: threshold,
	}
}

func TestCategorySpending_CurrentMonthOnly(t *testing.T) {
	bills := []domain.Bill{
		bill(domain.CategoryUtilities, 50, time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)),
		bill(domain.CategoryUtilities, 75, time.Date(2024, time.May, 31, 0, 0, 0, 0, time.UTC)),
		bill(domain.CategoryUtilities, 40, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)),
		bill(domain.CategoryRent, 1200, time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)),
	}

	spent := CategorySpending(bills, domain.CategoryUtilities, now)
	assert.True(t, spent.Equal(decimal.NewFromInt(125)), "got %s", spent)
}

func TestStatus(t *testing.T) {
	limit := decimal.NewFromInt(100)

	assert.Equal(t, StatusSafe, Status(decimal.NewFromInt(50), limit, 80))
	assert.Equal(t, StatusWarning, Status(decimal.NewFromInt(80), limit, 80))
	assert.Equal(t, StatusWarning, Status(decimal.NewFromInt(99), limit, 80))
	assert.Equal(t, StatusDanger, Status(decimal.NewFromInt(100), limit, 80))
	assert.Equal(t, StatusDanger, Status(decimal.NewFromInt(150), limit, 80))
	assert.Equal(t, StatusSafe, Status(decimal.NewFromInt(10), decimal.Zero, 80))
}

func TestSummarize(t *testing.T) {
	bills := []domain.Bill{
		bill(domain.CategoryUtilities, 90, time.Date(2024, time.May, 5, 0, 0, 0, 0, time.UTC)),
		bill(domain.CategoryRent, 600, time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)),
	}
	budgets := []*domain.CategoryBudget{
		budgetRow(domain.CategoryRent, 1200, 80),
		budgetRow(domain.CategoryUtilities, 100, 80),
	}

	summaries := Summarize(budgets, bills, now)
	require.Len(t, summaries, 2)

	// Sorted by percentage used, highest first.
	assert.Equal(t, domain.CategoryUtilities, summaries[0].Category)
	assert.Equal(t, 90, summaries[0].Percentage)
	assert.Equal(t, StatusWarning, summaries[0].Status)
	assert.True(t, summaries[0].Remaining.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, 1, summaries[0].BillsCount)

	assert.Equal(t, domain.CategoryRent, summaries[1].Category)
	assert.Equal(t, 50, summaries[1].Percentage)
	assert.Equal(t, StatusSafe, summaries[1].Status)
}

func TestOverBudgetCategories(t *testing.T) {
	bills := []domain.Bill{
		bill(domain.CategoryUtilities, 150, time.Date(2024, time.May, 5, 0, 0, 0, 0, time.UTC)),
		bill(domain.CategoryRent, 600, time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)),
	}
	budgets := []*domain.CategoryBudget{
		budgetRow(domain.CategoryUtilities, 100, 80),
		budgetRow(domain.CategoryRent, 1200, 80),
	}

	assert.Equal(t, []string{"Utilities"}, OverBudgetCategories(budgets, bills, now))
}

func TestTotals(t *testing.T) {
	budgets := []*domain.CategoryBudget{
		budgetRow(domain.CategoryUtilities, 100, 80),
		budgetRow(domain.CategoryRent, 1200, 80),
	}
	bills := []domain.Bill{
		bill(domain.CategoryUtilities, 50, time.Date(2024, time.May, 5, 0, 0, 0, 0, time.UTC)),
		bill(domain.CategoryRent, 600, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)),
	}

	assert.True(t, TotalBudget(budgets).Equal(decimal.NewFromInt(1300)))
	assert.True(t, TotalSpending(bills, now).Equal(decimal.NewFromInt(50)))
}

func TestSummarize_EmptyInputs(t *testing.T) {
	assert.Empty(t, Summarize(nil, nil, now))
}
