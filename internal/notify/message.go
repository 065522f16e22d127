// Package notify turns scheduling decisions into notification content. It
// produces message text and a trigger instant only; delivery belongs to the
// push transport behind the service layer's Notifier.
package notify

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paydue/reminder-engine/internal/domain"
	"github.com/paydue/reminder-engine/internal/recurrence"
	"github.com/paydue/reminder-engine/internal/reminder"
)

// Fixed local delivery hours. Notifications always trigger at one of these
// slots on the computed calendar date, never at the moment of scheduling.
const (
	ReminderHour = 9
	PaydayHour   = 8
	MonthEndHour = 20
)

// CategoryClusterThreshold is how many same-category bills must share the
// window before the clustered message variant is used.
const CategoryClusterThreshold = 2

// Message is one renderable notification.
type Message struct {
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	TriggerAt time.Time `json:"trigger_at"`
}

// BuildReminder generates the context-aware reminder for one bill at one
// lead time, evaluated at now (the fire date). Variants are checked in
// fixed priority order: overdue, due today, due tomorrow, payday-aligned,
// category cluster, generic lead-time reminder.
func BuildReminder(bill domain.Bill, leadDays int, ctx reminder.Context, now time.Time) Message {
	amount := money(bill.Amount)
	daysUntil := recurrence.DaysBetween(now, bill.DueDate)
	triggerAt := recurrence.At(recurrence.Day(now), ReminderHour)

	if daysUntil < 0 {
		daysOverdue := -daysUntil
		return Message{
			Title:     "🚨 Overdue Bill!",
			Body:      fmt.Sprintf("%s was due %d %s ago. Amount: %s", bill.Name, daysOverdue, plural(daysOverdue, "day"), amount),
			TriggerAt: triggerAt,
		}
	}

	if daysUntil == 0 {
		if ctx.Count > 1 {
			others := ctx.Count - 1
			return Message{
				Title:     "⚡ Bill Due Today!",
				Body:      fmt.Sprintf("%s (%s) is due today. You have %d more %s this week.", bill.Name, amount, others, plural(others, "bill")),
				TriggerAt: triggerAt,
			}
		}
		return Message{
			Title:     "⚡ Bill Due Today!",
			Body:      fmt.Sprintf("%s - %s is due today", bill.Name, amount),
			TriggerAt: triggerAt,
		}
	}

	if daysUntil == 1 {
		if ctx.Count > 1 {
			return Message{
				Title:     "📅 Bill Due Tomorrow",
				Body:      fmt.Sprintf("%s (%s) is due tomorrow. %d bills this week totaling %s", bill.Name, amount, ctx.Count, money(ctx.TotalAmount)),
				TriggerAt: triggerAt,
			}
		}
		return Message{
			Title:     "📅 Bill Due Tomorrow",
			Body:      fmt.Sprintf("%s - %s", bill.Name, amount),
			TriggerAt: triggerAt,
		}
	}

	if ctx.IsPayday && ctx.Count > 0 {
		return Message{
			Title:     "💰 Payday Tomorrow!",
			Body:      fmt.Sprintf("You have %d %s due this week (%s). Total: %s", ctx.Count, plural(ctx.Count, "bill"), bill.DueDate.Format("Jan 2"), money(ctx.TotalAmount)),
			TriggerAt: triggerAt,
		}
	}

	if ctx.CategoryName != "" && ctx.Count > CategoryClusterThreshold {
		return Message{
			Title:     fmt.Sprintf("💳 %s Bills Coming Up", ctx.CategoryName),
			Body:      fmt.Sprintf("%s and %d other bills due soon. Total: %s", bill.Name, ctx.Count-1, money(ctx.TotalAmount)),
			TriggerAt: triggerAt,
		}
	}

	return Message{
		Title:     "💳 Bill Reminder",
		Body:      fmt.Sprintf("%s - %s due in %d %s", bill.Name, amount, leadDays, plural(leadDays, "day")),
		TriggerAt: triggerAt,
	}
}

// BuildPaydaySummary summarizes the pending bills falling in the week after
// payday. Returns nil when that week holds no bills: skipping the
// notification is the correct outcome, not an error.
func BuildPaydaySummary(bills []domain.Bill, payday time.Time) *Message {
	start := recurrence.Day(payday)
	end := start.AddDate(0, 0, 7)

	var due []domain.Bill
	total := decimal.Zero
	for _, bill := range bills {
		if bill.Status != domain.BillStatusPending {
			continue
		}
		day := recurrence.Day(bill.DueDate)
		if !day.Before(start) && !day.After(end) {
			due = append(due, bill)
			total = total.Add(bill.Amount)
		}
	}

	if len(due) == 0 {
		return nil
	}

	sort.SliceStable(due, func(i, j int) bool {
		return due[i].DueDate.Before(due[j].DueDate)
	})

	var lines []string
	for _, bill := range due[:min(3, len(due))] {
		lines = append(lines, fmt.Sprintf("• %s - %s", bill.Name, money(bill.Amount)))
	}
	body := fmt.Sprintf("You have %d %s due this week. Total: %s\n\n%s",
		len(due), plural(len(due), "bill"), money(total), strings.Join(lines, "\n"))
	if len(due) > 3 {
		body += fmt.Sprintf("\n...and %d more", len(due)-3)
	}

	return &Message{
		Title:     "💰 Payday Reminder",
		Body:      body,
		TriggerAt: recurrence.At(start, PaydayHour),
	}
}

// BuildWeeklySummary produces the Monday-morning overview of the week
// starting at weekStart. The week is the half-open range
// [weekStart, weekStart+7). An empty week still yields a message.
func BuildWeeklySummary(bills []domain.Bill, weekStart time.Time) Message {
	start := recurrence.Day(weekStart)
	end := start.AddDate(0, 0, 7)
	triggerAt := recurrence.At(start, ReminderHour)

	var due []domain.Bill
	total := decimal.Zero
	for _, bill := range bills {
		if bill.Status != domain.BillStatusPending {
			continue
		}
		day := recurrence.Day(bill.DueDate)
		if !day.Before(start) && day.Before(end) {
			due = append(due, bill)
			total = total.Add(bill.Amount)
		}
	}

	if len(due) == 0 {
		return Message{
			Title:     "✅ Good News!",
			Body:      "No bills due this week. Enjoy your week!",
			TriggerAt: triggerAt,
		}
	}

	sort.SliceStable(due, func(i, j int) bool {
		return due[i].DueDate.Before(due[j].DueDate)
	})

	return Message{
		Title: "📊 Week Ahead",
		Body: fmt.Sprintf("%d %s due this week: %s. Total: %s",
			len(due), plural(len(due), "bill"), categorySummary(due), money(total)),
		TriggerAt: triggerAt,
	}
}

// BuildMonthEndSummary recaps the month's payments, delivered at 20:00 on
// the last day of the month.
func BuildMonthEndSummary(payments []*domain.PaymentHistory, monthEnd time.Time) Message {
	total := decimal.Zero
	for _, payment := range payments {
		total = total.Add(payment.Amount)
	}

	count := len(payments)
	return Message{
		Title: "📈 Month Summary",
		Body: fmt.Sprintf("You paid %d %s this month totaling %s. Great job staying on top of your finances! 💪",
			count, plural(count, "bill"), money(total)),
		TriggerAt: recurrence.At(recurrence.Day(monthEnd), MonthEndHour),
	}
}

// categorySummary renders counts per category in first-seen order of the
// due-date-sorted bills, e.g. "2 utilities, 1 rent".
func categorySummary(bills []domain.Bill) string {
	counts := make(map[string]int)
	var order []string
	for _, bill := range bills {
		if counts[bill.Category] == 0 {
			order = append(order, bill.Category)
		}
		counts[bill.Category]++
	}

	parts := make([]string, 0, len(order))
	for _, category := range order {
		parts = append(parts, fmt.Sprintf("%d %s", counts[category], category))
	}
	return strings.Join(parts, ", ")
}

func money(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

func plural(n int, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
