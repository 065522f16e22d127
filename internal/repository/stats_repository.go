package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/paydue/reminder-engine/internal/domain"
)

type statsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Get(ctx context.Context, userID uuid.UUID) (*domain.UserStats, error) {
	query := `
		SELECT user_id, current_streak, longest_streak, total_bills_paid, total_amount_paid,
			on_time_payments, late_payments, total_saved, updated_at
		FROM user_stats
		WHERE user_id = $1
	`

	var stats domain.UserStats
	err := r.db.GetContext(ctx, &stats, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return r.createInitial(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	return &stats, nil
}

func (r *statsRepository) createInitial(ctx context.Context, userID uuid.UUID) (*domain.UserStats, error) {
	stats := &domain.UserStats{
		UserID:          userID,
		TotalAmountPaid: decimal.Zero,
		TotalSaved:      decimal.Zero,
		UpdatedAt:       time.Now(),
	}

	query := `
		INSERT INTO user_stats (user_id, current_streak, longest_streak, total_bills_paid,
			total_amount_paid, on_time_payments, late_payments, total_saved, updated_at)
		VALUES ($1, 0, 0, 0, 0, 0, 0, 0, $2)
		ON CONFLICT (user_id) DO NOTHING
	`

	if _, err := r.db.ExecContext(ctx, query, userID, stats.UpdatedAt); err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *statsRepository) Update(ctx context.Context, stats *domain.UserStats) error {
	query := `
		UPDATE user_stats
		SET current_streak = $2, longest_streak = $3, total_bills_paid = $4,
			total_amount_paid = $5, on_time_payments = $6, late_payments = $7,
			total_saved = $8, updated_at = $9
		WHERE user_id = $1
	`

	_, err := r.db.ExecContext(ctx, query,
		stats.UserID,
		stats.CurrentStreak,
		stats.LongestStreak,
		stats.TotalBillsPaid,
		stats.TotalAmountPaid,
		stats.OnTimePayments,
		stats.LatePayments,
		stats.TotalSaved,
		time.Now(),
	)

	return err
}

func (r *statsRepository) ListAchievements(ctx context.Context, userID uuid.UUID) ([]*domain.Achievement, error) {
	query := `
		SELECT id, user_id, type, title, description, icon, unlocked_at
		FROM achievements
		WHERE user_id = $1
		ORDER BY unlocked_at DESC
	`

	var achievements []*domain.Achievement
	err := r.db.SelectContext(ctx, &achievements, query, userID)
	if err != nil {
		return nil, err
	}

	return achievements, nil
}

func (r *statsRepository) CreateAchievement(ctx context.Context, achievement *domain.Achievement) error {
	query := `
		INSERT INTO achievements (id, user_id, type, title, description, icon, unlocked_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		achievement.ID,
		achievement.UserID,
		achievement.Type,
		achievement.Title,
		achievement.Description,
		achievement.Icon,
		achievement.UnlockedAt,
	)

	return err
}
