package usecase

import (
	"fmt"
	"strings"
	"time"

	personrepo "brf-backend/internal/person/repository"
	"brf-backend/internal/task/domain"
	"brf-backend/internal/task/repository"
)

// taskUsecase implements TaskUsecase.
type taskUsecase struct {
	tasks    repository.TaskRepository
	people   personrepo.PersonRepository
	loc      *time.Location
	onChange func()
}

func NewTaskUsecase(tasks repository.TaskRepository, people personrepo.PersonRepository, loc *time.Location) TaskUsecase {
	if loc == nil {
		loc = time.Local
	}
	return &taskUsecase{tasks: tasks, people: people, loc: loc}
}

func (u *taskUsecase) SetChangeListener(fn func()) {
	u.onChange = fn
}

func (u *taskUsecase) notifyChange() {
	if u.onChange != nil {
		u.onChange()
	}
}

func (u *taskUsecase) List(personID *string) ([]domain.Task, error) {
	return u.tasks.FindAll(personID)
}

func (u *taskUsecase) Get(id string) (*domain.Task, error) {
	task, err := u.tasks.FindByID(id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrNotFound
	}
	return task, nil
}

func (u *taskUsecase) Create(input CreateTaskInput) (*domain.Task, error) {
	people, err := u.people.FindAll()
	if err != nil {
		return nil, err
	}
	if len(people) == 0 {
		return nil, fmt.Errorf("%w: add a person before creating a task", ErrValidation)
	}

	datetime, err := u.parseDatetime(input.Datetime)
	if err != nil {
		return nil, err
	}
	if datetime == nil {
		return nil, fmt.Errorf("%w: datetime is required", ErrValidation)
	}

	recurring, err := parseRecurrence(input.Recurring)
	if err != nil {
		return nil, err
	}
	if input.ReminderBefore < 0 {
		return nil, fmt.Errorf("%w: reminderBefore must be >= 0", ErrValidation)
	}

	personID, err := u.resolvePerson(input.PersonID)
	if err != nil {
		return nil, err
	}

	task := &domain.Task{
		Title:          normalizeTitle(input.Title),
		Description:    strings.TrimSpace(input.Description),
		PersonID:       personID,
		Datetime:       datetime,
		ReminderBefore: input.ReminderBefore,
		Recurring:      recurring,
		Category:       normalizeCategory(input.Category, recurring),
		Weekday:        input.Weekday,
	}
	if input.TimeOfDay != nil {
		task.TimeOfDay = strings.TrimSpace(*input.TimeOfDay)
	}

	if err := u.tasks.Create(task); err != nil {
		return nil, err
	}
	u.notifyChange()
	return task, nil
}

func (u *taskUsecase) Update(id string, input UpdateTaskInput) (*domain.Task, error) {
	task, err := u.tasks.FindByID(id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrNotFound
	}

	if input.Title != nil {
		if title := strings.TrimSpace(*input.Title); title != "" {
			task.Title = title
		}
	}
	if input.Description != nil {
		task.Description = strings.TrimSpace(*input.Description)
	}
	if input.Datetime != nil {
		datetime, err := u.parseDatetime(*input.Datetime)
		if err != nil {
			return nil, err
		}
		task.Datetime = datetime
	}
	if input.ReminderBefore != nil {
		if *input.ReminderBefore < 0 {
			return nil, fmt.Errorf("%w: reminderBefore must be >= 0", ErrValidation)
		}
		task.ReminderBefore = *input.ReminderBefore
	}
	if input.Recurring != nil {
		recurring, err := parseRecurrence(*input.Recurring)
		if err != nil {
			return nil, err
		}
		task.Recurring = recurring
	}
	if input.PersonID != nil {
		personID, err := u.resolvePerson(input.PersonID)
		if err != nil {
			return nil, err
		}
		task.PersonID = personID
	}
	if input.Category != nil {
		task.Category = strings.TrimSpace(*input.Category)
	}
	task.Category = normalizeCategory(task.Category, task.Recurring)
	if input.Weekday != nil {
		task.Weekday = input.Weekday
	}
	if input.TimeOfDay != nil {
		task.TimeOfDay = strings.TrimSpace(*input.TimeOfDay)
	}

	if err := u.tasks.Update(task); err != nil {
		return nil, err
	}
	u.notifyChange()
	return task, nil
}

func (u *taskUsecase) Delete(id string) error {
	task, err := u.tasks.FindByID(id)
	if err != nil {
		return err
	}
	if task == nil {
		return ErrNotFound
	}
	if err := u.tasks.Delete(id); err != nil {
		return err
	}
	u.notifyChange()
	return nil
}

// parseDatetime accepts RFC 3339 or the datetime-local form value
// ("2006-01-02T15:04", interpreted in the board timezone). Empty means no
// occurrence.
func (u *taskUsecase) parseDatetime(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04", raw, u.loc); err == nil {
		return &t, nil
	}
	return nil, fmt.Errorf("%w: invalid datetime %q", ErrValidation, raw)
}

func (u *taskUsecase) resolvePerson(personID *string) (*string, error) {
	if personID == nil || strings.TrimSpace(*personID) == "" {
		return nil, nil
	}
	id := strings.TrimSpace(*personID)
	person, err := u.people.FindByID(id)
	if err != nil {
		return nil, err
	}
	if person == nil {
		return nil, fmt.Errorf("%w: person %s not found", ErrValidation, id)
	}
	return &id, nil
}

func parseRecurrence(raw string) (domain.Recurrence, error) {
	recurring := domain.Recurrence(strings.TrimSpace(raw))
	if recurring == "" {
		return domain.RecurrenceNone, nil
	}
	if !recurring.Valid() {
		return "", fmt.Errorf("%w: invalid recurrence %q", ErrValidation, raw)
	}
	return recurring, nil
}

func normalizeTitle(raw string) string {
	title := strings.TrimSpace(raw)
	if title == "" {
		return domain.DefaultTitle
	}
	return title
}

func normalizeCategory(raw string, recurring domain.Recurrence) string {
	cat := strings.TrimSpace(raw)
	if cat == "" && recurring == domain.RecurrenceWeekly {
		return domain.CategoryWeeklyClub
	}
	return cat
}
