package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const (
	BillStatusPending = "pending"
	BillStatusPaid    = "paid"
	BillStatusOverdue = "overdue"
)

// Billing frequencies
const (
	FrequencyOnce         = "once"
	FrequencyWeekly       = "weekly"
	FrequencyBiWeekly     = "bi-weekly"
	FrequencyMonthly      = "monthly"
	FrequencyBiMonthly    = "bi-monthly"
	FrequencyQuarterly    = "quarterly"
	FrequencySemiAnnually = "semi-annually"
	FrequencyYearly       = "yearly"
)

// Bill categories
const (
	CategoryUtilities     = "utilities"
	CategorySubscriptions = "subscriptions"
	CategoryInsurance     = "insurance"
	CategoryRent          = "rent"
	CategoryLoans         = "loans"
	CategoryCreditCard    = "credit_card"
	CategoryOther         = "other"
)

// LastDayOfMonth is the custom_day_of_month sentinel meaning "last calendar
// day of the month". Zero means no custom day is set.
const LastDayOfMonth = -1

// CategoryDisplayName maps a category enum value to its display form.
func CategoryDisplayName(category string) string {
	names := map[string]string{
		CategoryUtilities:     "Utilities",
		CategorySubscriptions: "Subscriptions",
		CategoryInsurance:     "Insurance",
		CategoryRent:          "Rent",
		CategoryLoans:         "Loans",
		CategoryCreditCard:    "Credit Card",
		CategoryOther:         "Other",
	}
	if name, ok := names[category]; ok {
		return name
	}
	return category
}

// Bill represents one unresolved occurrence of a recurring bill. DueDate is
// always the next unpaid occurrence; paying it either closes the series
// (frequency "once") or advances DueDate and resets the status to pending.
type Bill struct {
	ID                 uuid.UUID       `json:"id" db:"id"`
	UserID             uuid.UUID       `json:"user_id" db:"user_id"`
	Name               string          `json:"name" db:"name"`
	Amount             decimal.Decimal `json:"amount" db:"amount"`
	DueDate            time.Time       `json:"due_date" db:"due_date"`
	Frequency          string          `json:"frequency" db:"frequency"`
	Category           string          `json:"category" db:"category"`
	Status             string          `json:"status" db:"status"`
	Notes              string          `json:"notes,omitempty" db:"notes"`
	ReminderDaysBefore pq.Int64Array   `json:"reminder_days_before" db:"reminder_days_before"`
	AutoPay            bool            `json:"auto_pay" db:"auto_pay"`
	CustomDayOfMonth   int             `json:"custom_day_of_month,omitempty" db:"custom_day_of_month"`
	CreatedAt          time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at" db:"updated_at"`
}

// DTOs for requests and responses

type CreateBillRequest struct {
	Name               string          `json:"name" validate:"required"`
	Amount             decimal.Decimal `json:"amount" validate:"required"`
	DueDate            string          `json:"due_date" validate:"required,datetime=2006-01-02"`
	Frequency          string          `json:"frequency" validate:"required,oneof=once weekly bi-weekly monthly bi-monthly quarterly semi-annually yearly"`
	Category           string          `json:"category" validate:"required,oneof=utilities subscriptions insurance rent loans credit_card other"`
	Notes              string          `json:"notes"`
	ReminderDaysBefore []int           `json:"reminder_days_before" validate:"dive,gte=0"`
	AutoPay            bool            `json:"auto_pay"`
	CustomDayOfMonth   int             `json:"custom_day_of_month"`
}

type MarkPaidRequest struct {
	PaidDate string `json:"paid_date" validate:"omitempty,datetime=2006-01-02"`
}

type MarkPaidResponse struct {
	Bill         *Bill           `json:"bill"`
	Payment      *PaymentHistory `json:"payment"`
	Achievements []*Achievement  `json:"achievements,omitempty"`
}
