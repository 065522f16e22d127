// Package achievement evaluates the fixed unlock rule table against a
// snapshot of user payment stats. Deciding is pure; persisting the unlock
// row (and enforcing one-per-type uniqueness) belongs to the store.
package achievement

import (
	"github.com/shopspring/decimal"

	"github.com/paydue/reminder-engine/internal/domain"
)

// Achievement types
const (
	TypeFirstBill    = "first_bill"
	TypeStreak7      = "streak_7"
	TypeStreak30     = "streak_30"
	TypeStreak100    = "streak_100"
	TypeBills10      = "bills_10"
	TypeBills50      = "bills_50"
	TypeBills100     = "bills_100"
	TypeSaved100     = "saved_100"
	TypeSaved500     = "saved_500"
	TypeSaved1000    = "saved_1000"
	TypeEarlyBird    = "early_bird"
	TypePerfectMonth = "perfect_month"
)

// Definition is one row of the rule table: an achievement type, its display
// copy, and the predicate that unlocks it.
type Definition struct {
	Type        string
	Title       string
	Description string
	Icon        string
	Condition   func(stats domain.UserStats) bool
}

func savedAtLeast(threshold int64) func(domain.UserStats) bool {
	limit := decimal.NewFromInt(threshold)
	return func(stats domain.UserStats) bool {
		return stats.TotalSaved.GreaterThanOrEqual(limit)
	}
}

// Definitions is the fixed, ordered rule table. Order matters: unlocks are
// reported in table order, and clients render progress in this order too.
var Definitions = []Definition{
	{
		Type:        TypeFirstBill,
		Title:       "🎉 First Payment",
		Description: "Pay your first bill",
		Icon:        "🎉",
		Condition:   func(s domain.UserStats) bool { return s.TotalBillsPaid >= 1 },
	},
	{
		Type:        TypeStreak7,
		Title:       "🔥 Week Warrior",
		Description: "Pay 7 bills on time in a row",
		Icon:        "🔥",
		Condition:   func(s domain.UserStats) bool { return s.CurrentStreak >= 7 },
	},
	{
		Type:        TypeStreak30,
		Title:       "🌟 Month Master",
		Description: "Maintain a 30-bill streak",
		Icon:        "🌟",
		Condition:   func(s domain.UserStats) bool { return s.CurrentStreak >= 30 },
	},
	{
		Type:        TypeStreak100,
		Title:       "👑 Streak King",
		Description: "Achieve 100 consecutive on-time payments",
		Icon:        "👑",
		Condition:   func(s domain.UserStats) bool { return s.CurrentStreak >= 100 },
	},
	{
		Type:        TypeBills10,
		Title:       "💪 Getting Started",
		Description: "Pay 10 bills total",
		Icon:        "💪",
		Condition:   func(s domain.UserStats) bool { return s.TotalBillsPaid >= 10 },
	},
	{
		Type:        TypeBills50,
		Title:       "⭐ Consistent Payer",
		Description: "Pay 50 bills total",
		Icon:        "⭐",
		Condition:   func(s domain.UserStats) bool { return s.TotalBillsPaid >= 50 },
	},
	{
		Type:        TypeBills100,
		Title:       "💯 Century Club",
		Description: "Pay 100 bills total",
		Icon:        "💯",
		Condition:   func(s domain.UserStats) bool { return s.TotalBillsPaid >= 100 },
	},
	{
		Type:        TypeSaved100,
		Title:       "💰 Saver",
		Description: "Save $100 by paying early",
		Icon:        "💰",
		Condition:   savedAtLeast(100),
	},
	{
		Type:        TypeSaved500,
		Title:       "💎 Smart Saver",
		Description: "Save $500 total",
		Icon:        "💎",
		Condition:   savedAtLeast(500),
	},
	{
		Type:        TypeSaved1000,
		Title:       "🏆 Savings Champion",
		Description: "Save $1000 by avoiding late fees",
		Icon:        "🏆",
		Condition:   savedAtLeast(1000),
	},
	{
		Type:        TypeEarlyBird,
		Title:       "🌅 Early Bird",
		Description: "Pay 10 bills at least 7 days early",
		Icon:        "🌅",
		Condition:   func(s domain.UserStats) bool { return s.OnTimePayments >= 10 },
	},
	{
		Type:        TypePerfectMonth,
		Title:       "✨ Perfect Month",
		Description: "Pay all bills on time in a calendar month",
		Icon:        "✨",
		Condition:   func(s domain.UserStats) bool { return s.OnTimePayments >= 5 && s.LatePayments == 0 },
	},
}

// DefinitionFor returns the rule-table row for a type.
func DefinitionFor(achievementType string) (Definition, bool) {
	for _, def := range Definitions {
		if def.Type == achievementType {
			return def, true
		}
	}
	return Definition{}, false
}

// Unlocked returns the types newly unlocked by the given stats snapshot, in
// table order. Types already present in alreadyUnlocked are never reported
// again, so a retry with a stale set stays safe: the store's per-type
// uniqueness catches the duplicate insert.
func Unlocked(stats domain.UserStats, alreadyUnlocked map[string]struct{}) []string {
	var newlyUnlocked []string
	for _, def := range Definitions {
		if _, ok := alreadyUnlocked[def.Type]; ok {
			continue
		}
		if def.Condition(stats) {
			newlyUnlocked = append(newlyUnlocked, def.Type)
		}
	}
	return newlyUnlocked
}

// UnlockedSet converts persisted achievement rows into the set Unlocked
// consumes.
func UnlockedSet(achievements []*domain.Achievement) map[string]struct{} {
	set := make(map[string]struct{}, len(achievements))
	for _, a := range achievements {
		set[a.Type] = struct{}{}
	}
	return set
}
