// Package reminder decides which reminder notifications are due on a given
// day. Both the interactive mark-as-paid flow and the cron pass call the
// same DueReminders; the only state it consults is the caller-supplied sent
// log, which keeps repeated invocations idempotent.
package reminder

import (
	"sort"
	"time"

	"github.com/paydue/reminder-engine/internal/domain"
	"github.com/paydue/reminder-engine/internal/recurrence"
)

// Event is one reminder that should fire: this bill, at this lead time,
// dispatched on FireDate.
type Event struct {
	Bill     domain.Bill
	LeadDays int
	FireDate time.Time
}

// sentKey identifies one dispatched reminder. The lead time is part of the
// key so that two lead times colliding on the same calendar day remain
// independent events.
type sentKey struct {
	billID   string
	date     string // yyyy-mm-dd
	leadDays int
}

// SentLog is the set of reminders already dispatched, keyed by
// (bill, fire date, lead time). It mirrors the reminder_log table's unique
// index; the scheduler consults it but never mutates the store.
type SentLog map[sentKey]struct{}

// NewSentLog builds a SentLog from persisted reminder log rows. Failed
// dispatches are excluded so they are retried on the next pass.
func NewSentLog(entries []*domain.ReminderLog) SentLog {
	log := make(SentLog, len(entries))
	for _, entry := range entries {
		if entry.Status == domain.ReminderStatusFailed {
			continue
		}
		log.Add(entry.BillID.String(), entry.ReminderDate, entry.LeadDays)
	}
	return log
}

// Add records a dispatched reminder.
func (s SentLog) Add(billID string, fireDate time.Time, leadDays int) {
	s[key(billID, fireDate, leadDays)] = struct{}{}
}

// Contains reports whether the reminder was already dispatched.
func (s SentLog) Contains(billID string, fireDate time.Time, leadDays int) bool {
	_, ok := s[key(billID, fireDate, leadDays)]
	return ok
}

func key(billID string, fireDate time.Time, leadDays int) sentKey {
	return sentKey{
		billID:   billID,
		date:     recurrence.Day(fireDate).Format("2006-01-02"),
		leadDays: leadDays,
	}
}

// DueReminders returns every reminder whose fire date is today and which is
// not already in the sent log. Paid bills are skipped; bills stored as
// overdue (or pending past their date) still participate, including
// one-time bills. Only advancing a one-time bill is an error, never
// reminding about it.
//
// Events come back ordered by ascending due date, ties broken by ascending
// lead time.
func DueReminders(bills []domain.Bill, now time.Time, sent SentLog) []Event {
	today := recurrence.Day(now)

	var events []Event
	for _, bill := range bills {
		if bill.Status == domain.BillStatusPaid {
			continue
		}

		for _, lead := range bill.ReminderDaysBefore {
			leadDays := int(lead)
			if leadDays < 0 {
				continue
			}

			fireDate := recurrence.Day(bill.DueDate).AddDate(0, 0, -leadDays)
			if !fireDate.Equal(today) {
				continue
			}
			if sent.Contains(bill.ID.String(), fireDate, leadDays) {
				continue
			}

			events = append(events, Event{
				Bill:     bill,
				LeadDays: leadDays,
				FireDate: fireDate,
			})
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].Bill.DueDate.Equal(events[j].Bill.DueDate) {
			return events[i].Bill.DueDate.Before(events[j].Bill.DueDate)
		}
		return events[i].LeadDays < events[j].LeadDays
	})

	return events
}
