package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/paydue/reminder-engine/internal/config"
	"github.com/paydue/reminder-engine/internal/domain"
	"github.com/paydue/reminder-engine/internal/notify"
	"github.com/paydue/reminder-engine/internal/recurrence"
	"github.com/paydue/reminder-engine/internal/reminder"
	"github.com/paydue/reminder-engine/internal/repository"
	customError "github.com/paydue/reminder-engine/pkg/errors"
)

// dedupeTTL keeps the redis claim alive long past the fire date so a pass
// re-run later the same day still sees it.
const dedupeTTL = 48 * time.Hour

// Notifier delivers one rendered message to a user. The push transport
// lives behind this seam; the scheduler only decides and renders.
type Notifier interface {
	Send(ctx context.Context, userID uuid.UUID, message notify.Message) error
}

type ReminderService struct {
	billRepo        repository.BillRepository
	paymentRepo     repository.PaymentRepository
	reminderLogRepo repository.ReminderLogRepository
	notifier        Notifier
	redis           *redis.Client
	config          *config.Config
}

// NewReminderService wires the scheduled notification passes. The redis
// client may be nil; the reminder_log unique index is the durable dedupe
// and redis only short-circuits concurrent passes.
func NewReminderService(
	billRepo repository.BillRepository,
	paymentRepo repository.PaymentRepository,
	reminderLogRepo repository.ReminderLogRepository,
	notifier Notifier,
	redisClient *redis.Client,
	config *config.Config,
) *ReminderService {
	return &ReminderService{
		billRepo:        billRepo,
		paymentRepo:     paymentRepo,
		reminderLogRepo: reminderLogRepo,
		notifier:        notifier,
		redis:           redisClient,
		config:          config,
	}
}

// SweepOverdue flips pending bills past their due date to overdue.
func (s *ReminderService) SweepOverdue(ctx context.Context, now time.Time) (int64, error) {
	swept, err := s.billRepo.MarkOverdue(ctx, recurrence.Day(now))
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}
	if swept > 0 {
		slog.Info("marked bills overdue", "count", swept)
	}
	return swept, nil
}

// RunDailyPass computes and dispatches every reminder due today. Returns
// the number of messages handed to the notifier. Safe to run repeatedly:
// the persisted log, the redis claim, and the table's unique index each
// suppress duplicates independently.
func (s *ReminderService) RunDailyPass(ctx context.Context, now time.Time) (int, error) {
	if !s.config.Notifications.SmartEnabled {
		return 0, nil
	}

	if _, err := s.SweepOverdue(ctx, now); err != nil {
		return 0, err
	}

	bills, err := s.billRepo.ListPending(ctx)
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	today := recurrence.Day(now)
	entries, err := s.reminderLogRepo.ListByDate(ctx, today)
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	events := reminder.DueReminders(bills, now, reminder.NewSentLog(entries))
	if len(events) == 0 {
		return 0, nil
	}

	byUser := make(map[uuid.UUID][]domain.Bill)
	for _, bill := range bills {
		byUser[bill.UserID] = append(byUser[bill.UserID], bill)
	}

	windowEnd := today.AddDate(0, 0, s.config.Notifications.WeeklyWindowDays)
	dispatched := 0
	for _, event := range events {
		if !s.claim(ctx, event) {
			continue
		}

		userBills := byUser[event.Bill.UserID]
		weekCtx := reminder.WeeklyContext(userBills, today, windowEnd, now)
		weekCtx.IsPayday = s.paydayTomorrow(today)
		weekCtx.CategoryName = reminder.CategoryCluster(userBills, event.Bill, today, windowEnd, notify.CategoryClusterThreshold)

		message := notify.BuildReminder(event.Bill, event.LeadDays, weekCtx, now)

		status := domain.ReminderStatusSent
		if err := s.notifier.Send(ctx, event.Bill.UserID, message); err != nil {
			slog.Error("dispatching reminder", "bill_id", event.Bill.ID, "lead_days", event.LeadDays, "error", err)
			status = domain.ReminderStatusFailed
		} else {
			dispatched++
		}

		entry := &domain.ReminderLog{
			ID:               uuid.New(),
			BillID:           event.Bill.ID,
			ReminderDate:     event.FireDate,
			LeadDays:         event.LeadDays,
			NotificationType: domain.NotificationTypePush,
			Status:           status,
			SentAt:           time.Now(),
		}
		if err := s.reminderLogRepo.Create(ctx, entry); err != nil {
			slog.Warn("recording reminder dispatch", "bill_id", event.Bill.ID, "lead_days", event.LeadDays, "error", err)
		}
	}

	slog.Info("daily reminder pass complete", "events", len(events), "dispatched", dispatched)
	return dispatched, nil
}

// claim takes the redis marker for one event. A lost SETNX means another
// pass holds the event; a redis failure falls through to the database
// constraint rather than blocking dispatch.
func (s *ReminderService) claim(ctx context.Context, event reminder.Event) bool {
	if s.redis == nil {
		return true
	}

	key := fmt.Sprintf("reminder:%s:%s:%d",
		event.Bill.ID, event.FireDate.Format("2006-01-02"), event.LeadDays)
	ok, err := s.redis.SetNX(ctx, key, 1, dedupeTTL).Result()
	if err != nil {
		slog.Warn("reminder dedupe cache unavailable", "key", key, "error", err)
		return true
	}
	return ok
}

// paydayTomorrow reports whether the configured payday falls on tomorrow's
// calendar day. Zero disables the payday variants entirely.
func (s *ReminderService) paydayTomorrow(today time.Time) bool {
	payday := s.config.Notifications.PaydayDayOfMonth
	if payday == 0 {
		return false
	}
	tomorrow := today.AddDate(0, 0, 1)
	if payday == domain.LastDayOfMonth {
		return tomorrow.Equal(recurrence.LastDayOfMonth(tomorrow))
	}
	return tomorrow.Day() == payday
}

// SendWeeklySummaries delivers the week-ahead overview to every user with
// pending bills. Intended to run Monday morning.
func (s *ReminderService) SendWeeklySummaries(ctx context.Context, now time.Time) (int, error) {
	if !s.config.Notifications.WeeklySummaryEnabled {
		return 0, nil
	}

	byUser, err := s.pendingByUser(ctx)
	if err != nil {
		return 0, err
	}

	weekStart := recurrence.Day(now)
	sent := 0
	for userID, userBills := range byUser {
		message := notify.BuildWeeklySummary(userBills, weekStart)
		if err := s.notifier.Send(ctx, userID, message); err != nil {
			slog.Error("dispatching weekly summary", "user_id", userID, "error", err)
			continue
		}
		sent++
	}

	return sent, nil
}

// SendMonthEndSummaries recaps the month's payments for every known user.
// A no-op except on the last calendar day of the month, so it can run on a
// plain daily schedule.
func (s *ReminderService) SendMonthEndSummaries(ctx context.Context, now time.Time) (int, error) {
	if !s.config.Notifications.MonthSummaryEnabled {
		return 0, nil
	}

	today := recurrence.Day(now)
	if !today.Equal(recurrence.LastDayOfMonth(now)) {
		return 0, nil
	}

	byUser, err := s.pendingByUser(ctx)
	if err != nil {
		return 0, err
	}

	monthStart := recurrence.FirstDayOfMonth(now)
	sent := 0
	for userID := range byUser {
		payments, err := s.paymentRepo.ListPaidBetween(ctx, userID, monthStart, today)
		if err != nil {
			slog.Error("loading month payments", "user_id", userID, "error", err)
			continue
		}

		message := notify.BuildMonthEndSummary(payments, today)
		if err := s.notifier.Send(ctx, userID, message); err != nil {
			slog.Error("dispatching month summary", "user_id", userID, "error", err)
			continue
		}
		sent++
	}

	return sent, nil
}

// SendPaydaySummaries delivers the payday digest to users whose coming week
// holds pending bills. A no-op unless today is the configured payday.
func (s *ReminderService) SendPaydaySummaries(ctx context.Context, now time.Time) (int, error) {
	payday := s.config.Notifications.PaydayDayOfMonth
	if payday == 0 {
		return 0, nil
	}

	today := recurrence.Day(now)
	if payday == domain.LastDayOfMonth {
		if !today.Equal(recurrence.LastDayOfMonth(now)) {
			return 0, nil
		}
	} else if today.Day() != payday {
		return 0, nil
	}

	byUser, err := s.pendingByUser(ctx)
	if err != nil {
		return 0, err
	}

	sent := 0
	for userID, userBills := range byUser {
		message := notify.BuildPaydaySummary(userBills, today)
		if message == nil {
			continue
		}
		if err := s.notifier.Send(ctx, userID, *message); err != nil {
			slog.Error("dispatching payday summary", "user_id", userID, "error", err)
			continue
		}
		sent++
	}

	return sent, nil
}

func (s *ReminderService) pendingByUser(ctx context.Context) (map[uuid.UUID][]domain.Bill, error) {
	bills, err := s.billRepo.ListPending(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	byUser := make(map[uuid.UUID][]domain.Bill)
	for _, bill := range bills {
		byUser[bill.UserID] = append(byUser[bill.UserID], bill)
	}
	return byUser, nil
}
