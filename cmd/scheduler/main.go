package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/paydue/reminder-engine/internal/config"
	"github.com/paydue/reminder-engine/internal/notify"
	"github.com/paydue/reminder-engine/internal/repository"
	"github.com/paydue/reminder-engine/internal/service"
	"github.com/paydue/reminder-engine/pkg/logging"
)

const jobTimeout = 5 * time.Minute

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("loading configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup()
	slog.Info("starting reminder scheduler", "timezone", cfg.Scheduler.Timezone)

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		slog.Error("connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	billRepo := repository.NewBillRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	reminderLogRepo := repository.NewReminderLogRepository(db)

	reminderService := service.NewReminderService(
		billRepo, paymentRepo, reminderLogRepo, &logNotifier{}, redisClient, cfg)

	c := cron.New(cron.WithSeconds(), cron.WithLocation(cfg.GetSchedulerLocation()))
	setupCronJobs(c, reminderService)

	c.Start()
	slog.Info("scheduler started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down scheduler")
	<-c.Stop().Done()
	slog.Info("scheduler stopped")
}

func setupCronJobs(c *cron.Cron, reminders *service.ReminderService) {
	schedule := func(spec, name string, job func(ctx context.Context, now time.Time) (int, error)) {
		_, err := c.AddFunc(spec, func() {
			ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
			defer cancel()

			count, err := job(ctx, time.Now())
			if err != nil {
				slog.Error("scheduled job failed", "job", name, "error", err)
				return
			}
			slog.Info("scheduled job complete", "job", name, "count", count)
		})
		if err != nil {
			slog.Error("scheduling job", "job", name, "error", err)
		}
	}

	// Midnight sweep flips pending bills past due to overdue before the
	// morning reminder pass reads them.
	schedule("0 0 0 * * *", "overdue-sweep", func(ctx context.Context, now time.Time) (int, error) {
		swept, err := reminders.SweepOverdue(ctx, now)
		return int(swept), err
	})

	schedule("0 0 9 * * *", "daily-reminders", reminders.RunDailyPass)
	schedule("0 0 9 * * MON", "weekly-summary", reminders.SendWeeklySummaries)
	schedule("0 0 20 * * *", "month-end-summary", reminders.SendMonthEndSummaries)
	schedule("0 0 8 * * *", "payday-summary", reminders.SendPaydaySummaries)
}

// logNotifier stands in for the push transport: it records every message
// it would deliver. Delivery integration replaces this at the Notifier
// seam without touching scheduling.
type logNotifier struct{}

func (n *logNotifier) Send(_ context.Context, userID uuid.UUID, message notify.Message) error {
	slog.Info("notification",
		"user_id", userID,
		"title", message.Title,
		"body", message.Body,
		"trigger_at", message.TriggerAt,
	)
	return nil
}
