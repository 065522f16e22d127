// Package status derives a bill's display state from its stored status and
// due date. Classification is side-effect-free: a stored "pending" bill
// past its date displays as overdue without anything being written back;
// the stored status only changes when the overdue sweep runs.
package status

import (
	"fmt"
	"time"

	"github.com/paydue/reminder-engine/internal/domain"
	"github.com/paydue/reminder-engine/internal/recurrence"
)

// Display states, ordered by urgency.
const (
	StatePaid     = "paid"
	StateOverdue  = "overdue"
	StateDueToday = "due_today"
	StateDueSoon  = "due_soon"
	StatePending  = "pending"
)

// DefaultDueSoonDays is how far out a bill counts as "due soon". Kept
// separate from the weekly notification window, which is configured
// independently.
const DefaultDueSoonDays = 7

// Info is the derived display state plus a short human-readable distance
// label ("Due Today", "Tomorrow", "3d", ...).
type Info struct {
	State string `json:"state"`
	Label string `json:"label"`
}

// Classify derives the display state of a bill at the given instant using
// the default due-soon threshold.
func Classify(bill domain.Bill, now time.Time) Info {
	return ClassifyWithin(bill, now, DefaultDueSoonDays)
}

// ClassifyWithin is Classify with an explicit due-soon threshold in days.
// Stored "paid" is authoritative and never overridden by the date.
func ClassifyWithin(bill domain.Bill, now time.Time, dueSoonDays int) Info {
	if bill.Status == domain.BillStatusPaid {
		return Info{State: StatePaid, Label: "Paid"}
	}

	daysUntil := recurrence.DaysBetween(now, bill.DueDate)

	switch {
	case daysUntil < 0:
		return Info{State: StateOverdue, Label: "Overdue"}
	case daysUntil == 0:
		return Info{State: StateDueToday, Label: "Due Today"}
	case daysUntil == 1:
		return Info{State: StateDueSoon, Label: "Tomorrow"}
	case daysUntil <= dueSoonDays:
		return Info{State: StateDueSoon, Label: fmt.Sprintf("%dd", daysUntil)}
	default:
		return Info{State: StatePending, Label: fmt.Sprintf("%dd", daysUntil)}
	}
}

// IsOverdue reports whether a non-paid bill's due date has passed.
func IsOverdue(bill domain.Bill, now time.Time) bool {
	return bill.Status != domain.BillStatusPaid && recurrence.DaysBetween(now, bill.DueDate) < 0
}
