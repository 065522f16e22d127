package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/paydue/reminder-engine/internal/domain"
)

type paymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *domain.PaymentHistory) error {
	query := `
		INSERT INTO payment_history (id, bill_id, paid_date, amount, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		payment.ID,
		payment.BillID,
		payment.PaidDate,
		payment.Amount,
		payment.Notes,
		payment.CreatedAt,
	)

	return err
}

func (r *paymentRepository) ListByBill(ctx context.Context, billID uuid.UUID) ([]*domain.PaymentHistory, error) {
	query := `
		SELECT id, bill_id, paid_date, amount, notes, created_at
		FROM payment_history
		WHERE bill_id = $1
		ORDER BY paid_date DESC
	`

	var payments []*domain.PaymentHistory
	err := r.db.SelectContext(ctx, &payments, query, billID)
	if err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *paymentRepository) ListPaidBetween(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.PaymentHistory, error) {
	query := `
		SELECT p.id, p.bill_id, p.paid_date, p.amount, p.notes, p.created_at
		FROM payment_history p
		JOIN bills b ON b.id = p.bill_id
		WHERE b.user_id = $1 AND p.paid_date >= $2 AND p.paid_date <= $3
		ORDER BY p.paid_date
	`

	var payments []*domain.PaymentHistory
	err := r.db.SelectContext(ctx, &payments, query, userID, start, end)
	if err != nil {
		return nil, err
	}

	return payments, nil
}
