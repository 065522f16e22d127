package achievement

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/paydue/reminder-engine/internal/domain"
)

// Progress describes how far a user is from unlocking one achievement,
// used by the achievements screen.
type Progress struct {
	Current    int `json:"current"`
	Target     int `json:"target"`
	Percentage int `json:"percentage"`
}

// ProgressFor reports current/target progress toward an achievement.
func ProgressFor(stats domain.UserStats, achievementType string) Progress {
	var current, target int

	switch achievementType {
	case TypeFirstBill:
		current, target = min(stats.TotalBillsPaid, 1), 1
	case TypeStreak7:
		current, target = min(stats.CurrentStreak, 7), 7
	case TypeStreak30:
		current, target = min(stats.CurrentStreak, 30), 30
	case TypeStreak100:
		current, target = min(stats.CurrentStreak, 100), 100
	case TypeBills10:
		current, target = min(stats.TotalBillsPaid, 10), 10
	case TypeBills50:
		current, target = min(stats.TotalBillsPaid, 50), 50
	case TypeBills100:
		current, target = min(stats.TotalBillsPaid, 100), 100
	case TypeSaved100:
		current, target = savedProgress(stats, 100), 100
	case TypeSaved500:
		current, target = savedProgress(stats, 500), 500
	case TypeSaved1000:
		current, target = savedProgress(stats, 1000), 1000
	case TypeEarlyBird:
		current, target = min(stats.OnTimePayments, 10), 10
	case TypePerfectMonth:
		target = 1
		if stats.LatePayments == 0 && stats.OnTimePayments >= 5 {
			current = 1
		}
	default:
		current, target = 0, 1
	}

	percentage := 0
	if target > 0 {
		percentage = current * 100 / target
	}

	return Progress{Current: current, Target: target, Percentage: percentage}
}

func savedProgress(stats domain.UserStats, target int64) int {
	limit := decimal.NewFromInt(target)
	if stats.TotalSaved.GreaterThanOrEqual(limit) {
		return int(target)
	}
	return int(stats.TotalSaved.IntPart())
}

// StreakEmoji returns the flame tier for a streak count.
func StreakEmoji(streak int) string {
	switch {
	case streak == 0:
		return "💤"
	case streak < 7:
		return "🔥"
	case streak < 30:
		return "🔥🔥"
	case streak < 100:
		return "🔥🔥🔥"
	default:
		return "🔥🔥🔥💯"
	}
}

// StreakMessage returns the status line shown under the streak counter.
func StreakMessage(streak int) string {
	switch {
	case streak == 0:
		return "Start your streak by paying bills on time!"
	case streak == 1:
		return "Great start! Keep it going!"
	case streak < 7:
		return fmt.Sprintf("%d in a row! You're on fire!", streak)
	case streak < 30:
		return fmt.Sprintf("%d streak! Amazing consistency!", streak)
	case streak < 100:
		return fmt.Sprintf("%d payments! You're a legend!", streak)
	default:
		return fmt.Sprintf("%d STREAK! 🏆 Absolutely incredible!", streak)
	}
}
