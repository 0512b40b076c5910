package domain

import (
	"strings"
	"time"
)

// Recurrence governs the rollover rule for a task's occurrence.
type Recurrence string

const (
	RecurrenceNone   Recurrence = "none"
	RecurrenceDaily  Recurrence = "daily"
	RecurrenceWeekly Recurrence = "weekly"
)

// Valid reports whether r is one of the known recurrence values.
func (r Recurrence) Valid() bool {
	switch r {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly:
		return true
	}
	return false
}

// Recurs reports whether the task rolls forward after its occurrence elapses.
func (r Recurrence) Recurs() bool {
	return r == RecurrenceDaily || r == RecurrenceWeekly
}

// Category tags used for grouping and coloring on the board. Free text is
// allowed; these are the ones the UI knows labels for.
const (
	CategoryWeeklyClub = "weekly_club"
	CategoryBirthday   = "birthday"
	CategorySchool     = "school"
	CategoryFamily     = "family"
	CategoryImportant  = "important"
)

// DefaultTitle is the placeholder stored when a task is created without one.
const DefaultTitle = "ללא כותרת"

// CategoryLabel returns the display label for a category tag. Unknown tags
// are shown as-is.
func CategoryLabel(cat string) string {
	switch strings.TrimSpace(cat) {
	case CategoryWeeklyClub:
		return "חוג שבועי"
	case CategoryBirthday:
		return "יום הולדת"
	case CategorySchool:
		return "פעילות בית ספר"
	case CategoryFamily:
		return "פעילות משפחה"
	case CategoryImportant:
		return "אירוע חשוב"
	default:
		return strings.TrimSpace(cat)
	}
}

// Task is the central entity: a scheduled event with optional recurrence and
// a reminder lead time.
//
// Datetime holds the next (or only) occurrence. For recurring tasks it is
// mutated forward in place once the occurrence elapses; there is no separate
// "original start". A nil Datetime marks a task that was persisted without a
// parseable instant: it is inert — never notified, never rolled.
type Task struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description"`
	PersonID    *string    `json:"personId,omitempty" gorm:"index"`
	Datetime    *time.Time `json:"datetime,omitempty" gorm:"index"`

	// ReminderBefore is minutes before Datetime at which a reminder fires.
	// Zero means "at the instant".
	ReminderBefore int        `json:"reminderBefore" gorm:"default:0"`
	Recurring      Recurrence `json:"recurring" gorm:"default:none"`
	Category       string     `json:"category"`

	// LastReminderSent marks the reminder for the occurrence currently held
	// in Datetime. It is reset to nil on every rollover, never carried across
	// occurrences.
	LastReminderSent *time.Time `json:"lastReminderSent,omitempty"`

	// Legacy explicit weekly shape: some records carry weekday+time instead
	// of relying on the rolling Datetime. The week grid accepts both.
	Weekday   *int   `json:"weekday,omitempty"`
	TimeOfDay string `json:"time,omitempty" gorm:"column:time_of_day"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EffectiveCategory applies the weekly-club default: a weekly task with no
// category is shown as a weekly club.
func (t Task) EffectiveCategory() string {
	cat := strings.TrimSpace(t.Category)
	if cat == "" && t.Recurring == RecurrenceWeekly {
		return CategoryWeeklyClub
	}
	return cat
}
