package week

import (
	"sort"
	"time"

	taskdomain "brf-backend/internal/task/domain"
)

// Occurrence is one upcoming instant of a task inside the agenda horizon.
type Occurrence struct {
	TaskID        string    `json:"taskId"`
	Title         string    `json:"title"`
	Datetime      time.Time `json:"datetime"`
	Category      string    `json:"category,omitempty"`
	CategoryLabel string    `json:"categoryLabel,omitempty"`
	Recurring     bool      `json:"recurring"`
}

// Agenda is the read-only per-person view: the next seven days split into
// today, tomorrow, and the rest of the week.
type Agenda struct {
	Today      []Occurrence `json:"today"`
	Tomorrow   []Occurrence `json:"tomorrow"`
	RestOfWeek []Occurrence `json:"restOfWeek"`
}

// BuildAgenda expands the tasks into occurrences over [today, today+7d) and
// buckets them. Weekly tasks project onto their next weekday in the horizon,
// from the explicit weekday+time shape when present, otherwise from the
// rolling Datetime. Everything else contributes its stored instant only.
func BuildAgenda(tasks []taskdomain.Task, now time.Time, loc *time.Location) Agenda {
	if loc == nil {
		loc = time.Local
	}
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 7)

	var occurrences []Occurrence
	for _, task := range tasks {
		at, ok := nextAgendaInstant(task, start, end, loc)
		if !ok {
			continue
		}
		cat := task.EffectiveCategory()
		occurrences = append(occurrences, Occurrence{
			TaskID:        task.ID,
			Title:         task.Title,
			Datetime:      at,
			Category:      cat,
			CategoryLabel: taskdomain.CategoryLabel(cat),
			Recurring:     task.Recurring.Recurs() || task.Weekday != nil,
		})
	}

	sort.Slice(occurrences, func(i, j int) bool {
		return occurrences[i].Datetime.Before(occurrences[j].Datetime)
	})

	tomorrow := start.AddDate(0, 0, 1)
	rest := start.AddDate(0, 0, 2)

	var agenda Agenda
	for _, occ := range occurrences {
		switch {
		case occ.Datetime.Before(tomorrow):
			agenda.Today = append(agenda.Today, occ)
		case occ.Datetime.Before(rest):
			agenda.Tomorrow = append(agenda.Tomorrow, occ)
		default:
			agenda.RestOfWeek = append(agenda.RestOfWeek, occ)
		}
	}
	return agenda
}

func nextAgendaInstant(task taskdomain.Task, start, end time.Time, loc *time.Location) (time.Time, bool) {
	weekly := task.Recurring == taskdomain.RecurrenceWeekly || (task.Weekday != nil && task.TimeOfDay != "")

	if weekly {
		weekday, hour, minute, ok := weeklyShape(task, loc)
		if !ok {
			return time.Time{}, false
		}
		diff := (weekday - int(start.Weekday()) + 7) % 7
		day := start.AddDate(0, 0, diff)
		at := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc)
		if at.Before(start) || !at.Before(end) {
			return time.Time{}, false
		}
		return at, true
	}

	if task.Datetime == nil {
		return time.Time{}, false
	}
	at := task.Datetime.In(loc)
	if at.Before(start) || !at.Before(end) {
		return time.Time{}, false
	}
	return at, true
}

// weeklyShape resolves a weekly task's weekday and clock time, preferring the
// explicit legacy fields over the rolling Datetime.
func weeklyShape(task taskdomain.Task, loc *time.Location) (weekday, hour, minute int, ok bool) {
	if task.Weekday != nil && task.TimeOfDay != "" {
		hour, minute, ok = ParseHM(task.TimeOfDay)
		if !ok || *task.Weekday < 0 || *task.Weekday > 6 {
			return 0, 0, 0, false
		}
		return *task.Weekday, hour, minute, true
	}
	if task.Datetime == nil {
		return 0, 0, 0, false
	}
	at := task.Datetime.In(loc)
	return int(at.Weekday()), at.Hour(), at.Minute(), true
}
