package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/paydue/reminder-engine/internal/domain"
)

type reminderLogRepository struct {
	db *sqlx.DB
}

func NewReminderLogRepository(db *sqlx.DB) ReminderLogRepository {
	return &reminderLogRepository{db: db}
}

func (r *reminderLogRepository) Create(ctx context.Context, entry *domain.ReminderLog) error {
	query := `
		INSERT INTO reminder_log (id, bill_id, reminder_date, lead_days, notification_type, status, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.BillID,
		entry.ReminderDate,
		entry.LeadDays,
		entry.NotificationType,
		entry.Status,
		entry.SentAt,
	)

	return err
}

func (r *reminderLogRepository) ListByDate(ctx context.Context, date time.Time) ([]*domain.ReminderLog, error) {
	query := `
		SELECT id, bill_id, reminder_date, lead_days, notification_type, status, sent_at
		FROM reminder_log
		WHERE reminder_date = $1
	`

	var entries []*domain.ReminderLog
	err := r.db.SelectContext(ctx, &entries, query, date)
	if err != nil {
		return nil, err
	}

	return entries, nil
}
