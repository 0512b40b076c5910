package week

import (
	"sort"
	"strconv"
	"strings"
	"time"

	persondomain "brf-backend/internal/person/domain"
	taskdomain "brf-backend/internal/task/domain"
)

// TimeWindow is one fixed row of the grid. Start and End are fractional
// hours; a task belongs to the window when Start <= h < End.
type TimeWindow struct {
	Key   string  `json:"key"`
	Label string  `json:"label"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Windows are the four fixed, non-configurable day slices of the board.
// Anything outside them (late night, early morning) is silently dropped.
var Windows = []TimeWindow{
	{Key: "morning", Label: "בוקר (06:00–12:00)", Start: 6, End: 12},
	{Key: "noon", Label: "צהריים (12:00–16:00)", Start: 12, End: 16},
	{Key: "afternoon", Label: "אחהצ (16:00–19:00)", Start: 16, End: 19},
	{Key: "evening", Label: "ערב (19:00–23:00)", Start: 19, End: 23},
}

// Chip is one task rendered into a grid cell.
type Chip struct {
	TaskID        string  `json:"taskId"`
	Title         string  `json:"title"`
	Time          string  `json:"time"`
	PersonID      *string `json:"personId,omitempty"`
	PersonName    string  `json:"personName,omitempty"`
	Category      string  `json:"category,omitempty"`
	CategoryLabel string  `json:"categoryLabel,omitempty"`
}

// Row is one time window across the seven days of the week.
type Row struct {
	Window TimeWindow `json:"window"`
	Cells  [7][]Chip  `json:"cells"`
}

// Grid is the 7-day × 4-window board projection for the week containing now.
type Grid struct {
	WeekStart time.Time    `json:"weekStart"`
	Days      [7]time.Time `json:"days"`
	Rows      []Row        `json:"rows"`
}

// BuildGrid buckets the task set into the current week's grid. Weekly tasks
// are accepted in both shapes: explicit weekday+time, or day/time inferred
// from the rolling Datetime.
func BuildGrid(people []persondomain.Person, tasks []taskdomain.Task, now time.Time, loc *time.Location) Grid {
	if loc == nil {
		loc = time.Local
	}
	weekStart := StartOfWeek(now.In(loc))

	grid := Grid{WeekStart: weekStart}
	for i := range grid.Days {
		grid.Days[i] = weekStart.AddDate(0, 0, i)
	}

	names := make(map[string]string, len(people))
	for _, person := range people {
		names[person.ID] = person.Name
	}

	type placed struct {
		chip Chip
		at   time.Time
	}
	var occurrences []placed
	for _, task := range tasks {
		at, ok := occurrenceInWeek(task, weekStart, loc)
		if !ok {
			continue
		}
		chip := Chip{
			TaskID:   task.ID,
			Title:    task.Title,
			Time:     at.Format("15:04"),
			PersonID: task.PersonID,
			Category: task.EffectiveCategory(),
		}
		chip.CategoryLabel = taskdomain.CategoryLabel(chip.Category)
		if task.PersonID != nil {
			chip.PersonName = names[*task.PersonID]
		}
		occurrences = append(occurrences, placed{chip: chip, at: at})
	}

	sort.Slice(occurrences, func(i, j int) bool {
		return occurrences[i].at.Before(occurrences[j].at)
	})

	grid.Rows = make([]Row, len(Windows))
	for w, window := range Windows {
		grid.Rows[w].Window = window
		for _, occ := range occurrences {
			day, ok := dayIndex(occ.at, grid.Days)
			if !ok {
				continue
			}
			h := float64(occ.at.Hour()) + float64(occ.at.Minute())/60
			if h >= window.Start && h < window.End {
				grid.Rows[w].Cells[day] = append(grid.Rows[w].Cells[day], occ.chip)
			}
		}
	}
	return grid
}

// occurrenceInWeek finds the task's instant inside [weekStart, weekStart+7d),
// or reports that it has none.
func occurrenceInWeek(task taskdomain.Task, weekStart time.Time, loc *time.Location) (time.Time, bool) {
	weekEnd := weekStart.AddDate(0, 0, 7)

	if task.Weekday != nil && task.TimeOfDay != "" {
		hour, minute, ok := ParseHM(task.TimeOfDay)
		if !ok || *task.Weekday < 0 || *task.Weekday > 6 {
			return time.Time{}, false
		}
		day := weekStart.AddDate(0, 0, *task.Weekday)
		return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc), true
	}

	if task.Datetime == nil {
		return time.Time{}, false
	}
	at := task.Datetime.In(loc)
	if at.Before(weekStart) || !at.Before(weekEnd) {
		return time.Time{}, false
	}
	return at, true
}

func dayIndex(at time.Time, days [7]time.Time) (int, bool) {
	for i, day := range days {
		if at.Year() == day.Year() && at.Month() == day.Month() && at.Day() == day.Day() {
			return i, true
		}
	}
	return 0, false
}

// StartOfWeek returns midnight of the Sunday on or before t.
func StartOfWeek(t time.Time) time.Time {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return midnight.AddDate(0, 0, -int(midnight.Weekday()))
}

// ParseHM parses an "HH:MM" clock string.
func ParseHM(s string) (hour, minute int, ok bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, false
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}
