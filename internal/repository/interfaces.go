package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/paydue/reminder-engine/internal/domain"
)

// BillRepository defines the interface for bill data operations
type BillRepository interface {
	// Create creates a new bill
	Create(ctx context.Context, bill *domain.Bill) error

	// GetByID retrieves a bill by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Bill, error)

	// ListByUser retrieves all bills for a user
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Bill, error)

	// ListPending retrieves all non-paid bills across users, for the
	// scheduled pass
	ListPending(ctx context.Context) ([]domain.Bill, error)

	// ListPendingByUser retrieves a user's non-paid bills
	ListPendingByUser(ctx context.Context, userID uuid.UUID) ([]domain.Bill, error)

	// Update updates a bill
	Update(ctx context.Context, bill *domain.Bill) error

	// MarkOverdue flips stored status pending -> overdue for bills past
	// asOf, returning how many rows changed
	MarkOverdue(ctx context.Context, asOf time.Time) (int64, error)
}

// PaymentRepository defines the interface for payment history operations
type PaymentRepository interface {
	// Create appends one immutable payment record
	Create(ctx context.Context, payment *domain.PaymentHistory) error

	// ListByBill retrieves all payments for a bill, newest first
	ListByBill(ctx context.Context, billID uuid.UUID) ([]*domain.PaymentHistory, error)

	// ListPaidBetween retrieves a user's payments with paid_date inside
	// [start, end]
	ListPaidBetween(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.PaymentHistory, error)
}

// ReminderLogRepository defines the interface for the dispatched-reminder log
type ReminderLogRepository interface {
	// Create records one dispatch attempt; the unique index on
	// (bill_id, reminder_date, lead_days) rejects duplicates
	Create(ctx context.Context, entry *domain.ReminderLog) error

	// ListByDate retrieves every log entry for one calendar day
	ListByDate(ctx context.Context, date time.Time) ([]*domain.ReminderLog, error)
}

// StatsRepository defines the interface for user stats and achievements
type StatsRepository interface {
	// Get retrieves a user's stats, creating the zeroed row on first use
	Get(ctx context.Context, userID uuid.UUID) (*domain.UserStats, error)

	// Update persists a stats snapshot
	Update(ctx context.Context, stats *domain.UserStats) error

	// ListAchievements retrieves a user's unlocked achievements
	ListAchievements(ctx context.Context, userID uuid.UUID) ([]*domain.Achievement, error)

	// CreateAchievement inserts an unlock record; the unique index on
	// (user_id, type) enforces at-most-once
	CreateAchievement(ctx context.Context, achievement *domain.Achievement) error
}

// BudgetRepository defines the interface for category budget rows
type BudgetRepository interface {
	// ListByUser retrieves a user's category budgets
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.CategoryBudget, error)

	// Upsert creates or replaces the budget for (user, category)
	Upsert(ctx context.Context, budget *domain.CategoryBudget) error
}
