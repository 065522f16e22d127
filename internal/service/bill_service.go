package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paydue/reminder-engine/internal/achievement"
	"github.com/paydue/reminder-engine/internal/budget"
	"github.com/paydue/reminder-engine/internal/config"
	"github.com/paydue/reminder-engine/internal/domain"
	"github.com/paydue/reminder-engine/internal/recurrence"
	"github.com/paydue/reminder-engine/internal/repository"
	"github.com/paydue/reminder-engine/internal/status"
	customError "github.com/paydue/reminder-engine/pkg/errors"
)

// averageLateFee is the estimated fee avoided by one on-time payment,
// credited to total_saved. Typical fees run $25-35.
var averageLateFee = decimal.NewFromInt(30)

type BillService struct {
	billRepo    repository.BillRepository
	paymentRepo repository.PaymentRepository
	statsRepo   repository.StatsRepository
	budgetRepo  repository.BudgetRepository
	config      *config.Config
}

func NewBillService(
	billRepo repository.BillRepository,
	paymentRepo repository.PaymentRepository,
	statsRepo repository.StatsRepository,
	budgetRepo repository.BudgetRepository,
	config *config.Config,
) *BillService {
	return &BillService{
		billRepo:    billRepo,
		paymentRepo: paymentRepo,
		statsRepo:   statsRepo,
		budgetRepo:  budgetRepo,
		config:      config,
	}
}

// BillView is a bill plus its derived display state.
type BillView struct {
	domain.Bill
	Display status.Info `json:"display"`
}

// CreateBill validates and persists a new bill for the user.
func (s *BillService) CreateBill(ctx context.Context, userID uuid.UUID, request *domain.CreateBillRequest) (*domain.Bill, error) {
	if !recurrence.ValidFrequency(request.Frequency) {
		return nil, customError.WrapUnknownFrequency(request.Frequency)
	}

	if request.Amount.IsNegative() {
		return nil, customError.WrapInvalidBillAmount(request.Amount.String())
	}

	dueDate, err := time.Parse("2006-01-02", request.DueDate)
	if err != nil {
		return nil, customError.NewBusinessError(customError.ErrCodeInvalidArgument, "due_date must be YYYY-MM-DD", err)
	}

	// Probe the custom day the same way the calendar will use it, so bad
	// values are rejected at creation rather than at the first rollover.
	if request.CustomDayOfMonth != 0 && recurrence.IsRecurring(request.Frequency) {
		if _, err := recurrence.NextDueDate(dueDate, request.Frequency, request.CustomDayOfMonth); err != nil {
			return nil, err
		}
	}

	leads := make([]int64, 0, len(request.ReminderDaysBefore))
	for _, d := range request.ReminderDaysBefore {
		leads = append(leads, int64(d))
	}
	if len(leads) == 0 {
		leads = []int64{7, 3, 1}
	}

	now := time.Now()
	bill := &domain.Bill{
		ID:                 uuid.New(),
		UserID:             userID,
		Name:               request.Name,
		Amount:             request.Amount,
		DueDate:            recurrence.Day(dueDate),
		Frequency:          request.Frequency,
		Category:           request.Category,
		Status:             domain.BillStatusPending,
		Notes:              request.Notes,
		ReminderDaysBefore: leads,
		AutoPay:            request.AutoPay,
		CustomDayOfMonth:   request.CustomDayOfMonth,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.billRepo.Create(ctx, bill); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return bill, nil
}

// ListBills returns the user's bills with display classification applied.
func (s *BillService) ListBills(ctx context.Context, userID uuid.UUID, now time.Time) ([]BillView, error) {
	bills, err := s.billRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	views := make([]BillView, 0, len(bills))
	for _, bill := range bills {
		views = append(views, BillView{
			Bill:    bill,
			Display: status.ClassifyWithin(bill, now, s.config.Notifications.DueSoonDays),
		})
	}

	return views, nil
}

// MarkPaid records a payment against the bill: one immutable history row,
// then either series termination (frequency once) or advancement to the
// next occurrence with status reset to pending. Stats and achievements
// update afterwards; their failures are logged, not surfaced, since the
// payment itself already succeeded.
func (s *BillService) MarkPaid(ctx context.Context, billID uuid.UUID, paidDate time.Time) (*domain.MarkPaidResponse, error) {
	bill, err := s.billRepo.GetByID(ctx, billID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapBillNotFound(billID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	if bill.Status == domain.BillStatusPaid {
		return nil, customError.WrapBillAlreadyPaid(billID.String())
	}

	paidDay := recurrence.Day(paidDate)
	dueDay := recurrence.Day(bill.DueDate)

	payment := &domain.PaymentHistory{
		ID:        uuid.New(),
		BillID:    bill.ID,
		PaidDate:  paidDay,
		Amount:    bill.Amount,
		CreatedAt: time.Now(),
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	if recurrence.IsRecurring(bill.Frequency) {
		nextDue, err := recurrence.NextDueDate(bill.DueDate, bill.Frequency, bill.CustomDayOfMonth)
		if err != nil {
			return nil, err
		}
		bill.DueDate = nextDue
		bill.Status = domain.BillStatusPending
	} else {
		bill.Status = domain.BillStatusPaid
	}

	if err := s.billRepo.Update(ctx, bill); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	onTime := !paidDay.After(dueDay)
	unlocked := s.recordPayment(ctx, bill, onTime)

	return &domain.MarkPaidResponse{
		Bill:         bill,
		Payment:      payment,
		Achievements: unlocked,
	}, nil
}

// recordPayment advances the user's counters and persists any achievements
// the new snapshot unlocks.
func (s *BillService) recordPayment(ctx context.Context, bill *domain.Bill, onTime bool) []*domain.Achievement {
	stats, err := s.statsRepo.Get(ctx, bill.UserID)
	if err != nil {
		slog.Error("loading user stats", "user_id", bill.UserID, "error", err)
		return nil
	}

	stats.TotalBillsPaid++
	stats.TotalAmountPaid = stats.TotalAmountPaid.Add(bill.Amount)
	if onTime {
		stats.OnTimePayments++
		stats.CurrentStreak++
		stats.LongestStreak = max(stats.LongestStreak, stats.CurrentStreak)
		stats.TotalSaved = stats.TotalSaved.Add(averageLateFee)
	} else {
		stats.LatePayments++
		stats.CurrentStreak = 0
	}

	if err := s.statsRepo.Update(ctx, stats); err != nil {
		slog.Error("updating user stats", "user_id", bill.UserID, "error", err)
		return nil
	}

	return s.unlockAchievements(ctx, bill.UserID, *stats)
}

func (s *BillService) unlockAchievements(ctx context.Context, userID uuid.UUID, stats domain.UserStats) []*domain.Achievement {
	existing, err := s.statsRepo.ListAchievements(ctx, userID)
	if err != nil {
		slog.Error("listing achievements", "user_id", userID, "error", err)
		return nil
	}

	var unlocked []*domain.Achievement
	for _, achievementType := range achievement.Unlocked(stats, achievement.UnlockedSet(existing)) {
		def, ok := achievement.DefinitionFor(achievementType)
		if !ok {
			continue
		}

		row := &domain.Achievement{
			ID:          uuid.New(),
			UserID:      userID,
			Type:        def.Type,
			Title:       def.Title,
			Description: def.Description,
			Icon:        def.Icon,
			UnlockedAt:  time.Now(),
		}

		// The (user_id, type) unique index makes a stale snapshot on a
		// retry harmless; the duplicate insert is rejected and skipped.
		if err := s.statsRepo.CreateAchievement(ctx, row); err != nil {
			slog.Warn("persisting achievement", "user_id", userID, "type", def.Type, "error", err)
			continue
		}
		unlocked = append(unlocked, row)
	}

	return unlocked
}

// AchievementView is one rule-table entry with the user's unlock state and
// progress toward it.
type AchievementView struct {
	Type        string               `json:"type"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Icon        string               `json:"icon"`
	Unlocked    bool                 `json:"unlocked"`
	UnlockedAt  *time.Time           `json:"unlocked_at,omitempty"`
	Progress    achievement.Progress `json:"progress"`
}

// AchievementSummary is the achievements screen payload.
type AchievementSummary struct {
	Stats         *domain.UserStats `json:"stats"`
	StreakEmoji   string            `json:"streak_emoji"`
	StreakMessage string            `json:"streak_message"`
	Achievements  []AchievementView `json:"achievements"`
}

// GetAchievements returns the full rule table annotated with the user's
// unlocks and progress.
func (s *BillService) GetAchievements(ctx context.Context, userID uuid.UUID) (*AchievementSummary, error) {
	stats, err := s.statsRepo.Get(ctx, userID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	existing, err := s.statsRepo.ListAchievements(ctx, userID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	unlockedAt := make(map[string]time.Time, len(existing))
	for _, a := range existing {
		unlockedAt[a.Type] = a.UnlockedAt
	}

	views := make([]AchievementView, 0, len(achievement.Definitions))
	for _, def := range achievement.Definitions {
		view := AchievementView{
			Type:        def.Type,
			Title:       def.Title,
			Description: def.Description,
			Icon:        def.Icon,
			Progress:    achievement.ProgressFor(*stats, def.Type),
		}
		if at, ok := unlockedAt[def.Type]; ok {
			view.Unlocked = true
			view.UnlockedAt = &at
		}
		views = append(views, view)
	}

	return &AchievementSummary{
		Stats:         stats,
		StreakEmoji:   achievement.StreakEmoji(stats.CurrentStreak),
		StreakMessage: achievement.StreakMessage(stats.CurrentStreak),
		Achievements:  views,
	}, nil
}

// BudgetSummary reports the user's category budgets against this month's
// bills.
func (s *BillService) BudgetSummary(ctx context.Context, userID uuid.UUID, now time.Time) ([]budget.Summary, error) {
	budgets, err := s.budgetRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	bills, err := s.billRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return budget.Summarize(budgets, bills, now), nil
}

// SetBudget creates or replaces the budget for one category.
func (s *BillService) SetBudget(ctx context.Context, userID uuid.UUID, category string, monthlyLimit decimal.Decimal, alertThreshold int) (*domain.CategoryBudget, error) {
	if alertThreshold == 0 {
		alertThreshold = budget.DefaultAlertThreshold
	}

	row := &domain.CategoryBudget{
		ID:             uuid.New(),
		UserID:         userID,
		Category:       category,
		MonthlyLimit:   monthlyLimit,
		AlertThreshold: alertThreshold,
	}

	if err := s.budgetRepo.Upsert(ctx, row); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return row, nil
}
