package reminder

import (
	"time"

	"brf-backend/internal/task/domain"
)

// Window is the firing tolerance around a reminder instant. A 1-minute poll
// must catch the instant within one tick on either side, and the same window
// doubles as the dedup guard against re-firing for one occurrence.
const Window = 60 * time.Second

// Patch is the minimal set of fields the engine wants persisted for one task
// after a pass. ClearLastReminder wins over LastReminderSent: a rollover in
// the same pass as a notification resets the dedup state for the new
// occurrence.
type Patch struct {
	Datetime          *time.Time
	LastReminderSent  *time.Time
	ClearLastReminder bool
}

// Fields converts the patch to column updates for the store.
func (p Patch) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if p.Datetime != nil {
		fields["datetime"] = *p.Datetime
	}
	if p.ClearLastReminder {
		fields["last_reminder_sent"] = nil
	} else if p.LastReminderSent != nil {
		fields["last_reminder_sent"] = *p.LastReminderSent
	}
	return fields
}

// Evaluate scans the full task snapshot at the reference instant now and
// decides which tasks must produce a reminder right now and which recurring
// tasks must roll forward. It is pure: side effects (dispatch, persistence)
// are the caller's job.
//
// notifyAllowed is the external platform condition, checked once per pass;
// when false no task notifies but rollovers still happen. Tasks without a
// parseable occurrence (nil Datetime) are skipped entirely.
func Evaluate(tasks []domain.Task, now time.Time, notifyAllowed bool) ([]domain.Task, map[string]Patch) {
	var notify []domain.Task
	patches := make(map[string]Patch)

	for _, task := range tasks {
		if task.Datetime == nil {
			continue
		}
		due := *task.Datetime
		reminderAt := due.Add(-time.Duration(task.ReminderBefore) * time.Minute)

		if notifyAllowed && shouldNotify(task, now, reminderAt) {
			notify = append(notify, task)
			sent := now
			patch := patches[task.ID]
			patch.LastReminderSent = &sent
			patches[task.ID] = patch
		}

		if task.Recurring.Recurs() && !now.Before(due) {
			next := NextOccurrence(due, task.Recurring, now)
			patch := patches[task.ID]
			patch.Datetime = &next
			patch.LastReminderSent = nil
			patch.ClearLastReminder = true
			patches[task.ID] = patch
		}
	}

	return notify, patches
}

// shouldNotify applies the dedup guard and the ±Window firing check.
func shouldNotify(task domain.Task, now, reminderAt time.Time) bool {
	if task.LastReminderSent != nil && absDelta(*task.LastReminderSent, reminderAt) <= Window {
		return false
	}
	return absDelta(now, reminderAt) <= Window
}

// NextOccurrence advances current by one recurrence step at a time until the
// result is strictly after now. Calendar-day addition keeps the time of day
// (and, for weekly, the day of week) stable across DST transitions, and a
// task that missed several periods jumps straight past them.
func NextOccurrence(current time.Time, recurring domain.Recurrence, now time.Time) time.Time {
	days := 1
	if recurring == domain.RecurrenceWeekly {
		days = 7
	}
	next := current
	for {
		next = next.AddDate(0, 0, days)
		if next.After(now) {
			return next
		}
	}
}

func absDelta(a, b time.Time) time.Duration {
	d := a.Sub(b)
	if d < 0 {
		return -d
	}
	return d
}
