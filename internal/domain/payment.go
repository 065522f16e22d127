package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentHistory is an immutable, append-only record of one mark-as-paid
// action. Rows are never mutated or deleted by the engine.
type PaymentHistory struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	BillID    uuid.UUID       `json:"bill_id" db:"bill_id"`
	PaidDate  time.Time       `json:"paid_date" db:"paid_date"`
	Amount    decimal.Decimal `json:"amount" db:"amount"`
	Notes     string          `json:"notes,omitempty" db:"notes"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}
