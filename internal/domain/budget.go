package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryBudget is a per-category monthly spending limit with an alert
// threshold expressed as a percentage (80 means warn at 80% of the limit).
type CategoryBudget struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	UserID         uuid.UUID       `json:"user_id" db:"user_id"`
	Category       string          `json:"category" db:"category"`
	MonthlyLimit   decimal.Decimal `json:"monthly_limit" db:"monthly_limit"`
	AlertThreshold int             `json:"alert_threshold" db:"alert_threshold"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}
