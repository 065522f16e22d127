package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserStats holds the monotonically-evolving payment counters the
// achievement evaluator reads. Counters are updated by the mark-as-paid
// workflow; the evaluator itself only compares a snapshot against fixed
// thresholds.
type UserStats struct {
	UserID          uuid.UUID       `json:"user_id" db:"user_id"`
	CurrentStreak   int             `json:"current_streak" db:"current_streak"`
	LongestStreak   int             `json:"longest_streak" db:"longest_streak"`
	TotalBillsPaid  int             `json:"total_bills_paid" db:"total_bills_paid"`
	TotalAmountPaid decimal.Decimal `json:"total_amount_paid" db:"total_amount_paid"`
	OnTimePayments  int             `json:"on_time_payments" db:"on_time_payments"`
	LatePayments    int             `json:"late_payments" db:"late_payments"`
	TotalSaved      decimal.Decimal `json:"total_saved" db:"total_saved"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

// Achievement is an immutable unlock record, created at most once per type
// per user. The store enforces the uniqueness; the evaluator only decides
// when a new row is warranted.
type Achievement struct {
	ID          uuid.UUID `json:"id" db:"id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	Type        string    `json:"type" db:"type"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Icon        string    `json:"icon" db:"icon"`
	UnlockedAt  time.Time `json:"unlocked_at" db:"unlocked_at"`
}
