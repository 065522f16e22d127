package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/paydue/reminder-engine/internal/domain"
)

const billColumns = `id, user_id, name, amount, due_date, frequency, category, status,
		notes, reminder_days_before, auto_pay, custom_day_of_month, created_at, updated_at`

type billRepository struct {
	db *sqlx.DB
}

func NewBillRepository(db *sqlx.DB) BillRepository {
	return &billRepository{db: db}
}

func (r *billRepository) Create(ctx context.Context, bill *domain.Bill) error {
	query := `
		INSERT INTO bills (id, user_id, name, amount, due_date, frequency, category, status,
			notes, reminder_days_before, auto_pay, custom_day_of_month, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.ExecContext(ctx, query,
		bill.ID,
		bill.UserID,
		bill.Name,
		bill.Amount,
		bill.DueDate,
		bill.Frequency,
		bill.Category,
		bill.Status,
		bill.Notes,
		bill.ReminderDaysBefore,
		bill.AutoPay,
		bill.CustomDayOfMonth,
		bill.CreatedAt,
		bill.UpdatedAt,
	)

	return err
}

func (r *billRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE id = $1`

	var bill domain.Bill
	err := r.db.GetContext(ctx, &bill, query, id)
	if err != nil {
		return nil, err
	}

	return &bill, nil
}

func (r *billRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE user_id = $1 ORDER BY due_date`

	var bills []domain.Bill
	err := r.db.SelectContext(ctx, &bills, query, userID)
	if err != nil {
		return nil, err
	}

	return bills, nil
}

func (r *billRepository) ListPending(ctx context.Context) ([]domain.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE status <> 'paid' ORDER BY due_date`

	var bills []domain.Bill
	err := r.db.SelectContext(ctx, &bills, query)
	if err != nil {
		return nil, err
	}

	return bills, nil
}

func (r *billRepository) ListPendingByUser(ctx context.Context, userID uuid.UUID) ([]domain.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE user_id = $1 AND status <> 'paid' ORDER BY due_date`

	var bills []domain.Bill
	err := r.db.SelectContext(ctx, &bills, query, userID)
	if err != nil {
		return nil, err
	}

	return bills, nil
}

func (r *billRepository) Update(ctx context.Context, bill *domain.Bill) error {
	query := `
		UPDATE bills
		SET name = $2, amount = $3, due_date = $4, frequency = $5, category = $6,
			status = $7, notes = $8, reminder_days_before = $9, auto_pay = $10,
			custom_day_of_month = $11, updated_at = $12
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query,
		bill.ID,
		bill.Name,
		bill.Amount,
		bill.DueDate,
		bill.Frequency,
		bill.Category,
		bill.Status,
		bill.Notes,
		bill.ReminderDaysBefore,
		bill.AutoPay,
		bill.CustomDayOfMonth,
		time.Now(),
	)

	return err
}

func (r *billRepository) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	query := `
		UPDATE bills
		SET status = 'overdue', updated_at = $2
		WHERE status = 'pending' AND due_date < $1
	`

	result, err := r.db.ExecContext(ctx, query, asOf, time.Now())
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
