package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	NotificationTypePush  = "push"
	NotificationTypeEmail = "email"
)

const (
	ReminderStatusSent   = "sent"
	ReminderStatusFailed = "failed"
)

// ReminderLog records one dispatched reminder. The (bill_id, reminder_date,
// lead_days) uniqueness constraint on the table is what makes the daily
// scheduling pass idempotent under overlapping invocations.
type ReminderLog struct {
	ID               uuid.UUID `json:"id" db:"id"`
	BillID           uuid.UUID `json:"bill_id" db:"bill_id"`
	ReminderDate     time.Time `json:"reminder_date" db:"reminder_date"`
	LeadDays         int       `json:"lead_days" db:"lead_days"`
	NotificationType string    `json:"notification_type" db:"notification_type"`
	Status           string    `json:"status" db:"status"`
	SentAt           time.Time `json:"sent_at" db:"sent_at"`
}
