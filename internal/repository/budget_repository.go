package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/paydue/reminder-engine/internal/domain"
)

type budgetRepository struct {
	db *sqlx.DB
}

func NewBudgetRepository(db *sqlx.DB) BudgetRepository {
	return &budgetRepository{db: db}
}

func (r *budgetRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.CategoryBudget, error) {
	query := `
		SELECT id, user_id, category, monthly_limit, alert_threshold, created_at, updated_at
		FROM category_budgets
		WHERE user_id = $1
		ORDER BY category
	`

	var budgets []*domain.CategoryBudget
	err := r.db.SelectContext(ctx, &budgets, query, userID)
	if err != nil {
		return nil, err
	}

	return budgets, nil
}

func (r *budgetRepository) Upsert(ctx context.Context, budget *domain.CategoryBudget) error {
	query := `
		INSERT INTO category_budgets (id, user_id, category, monthly_limit, alert_threshold, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, category)
		DO UPDATE SET monthly_limit = $4, alert_threshold = $5, updated_at = $7
	`

	now := time.Now()
	_, err := r.db.ExecContext(ctx, query,
		budget.ID,
		budget.UserID,
		budget.Category,
		budget.MonthlyLimit,
		budget.AlertThreshold,
		now,
		now,
	)

	return err
}
