package usecase

import (
	"errors"

	"brf-backend/internal/task/domain"
)

// Sentinel errors surfaced to the HTTP boundary.
var (
	ErrNotFound   = errors.New("task not found")
	ErrValidation = errors.New("validation failed")
)

// CreateTaskInput is the admin-submitted shape of a new task. Datetime is the
// raw form value; the usecase owns parsing so internal logic never sees wire
// shapes.
type CreateTaskInput struct {
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	PersonID       *string `json:"personId"`
	Datetime       string  `json:"datetime"`
	ReminderBefore int     `json:"reminderBefore"`
	Recurring      string  `json:"recurring"`
	Category       string  `json:"category"`
	Weekday        *int    `json:"weekday"`
	TimeOfDay      *string `json:"time"`
}

// UpdateTaskInput is a partial patch; nil fields are left untouched. An empty
// personId string unassigns the task.
type UpdateTaskInput struct {
	Title          *string `json:"title"`
	Description    *string `json:"description"`
	PersonID       *string `json:"personId"`
	Datetime       *string `json:"datetime"`
	ReminderBefore *int    `json:"reminderBefore"`
	Recurring      *string `json:"recurring"`
	Category       *string `json:"category"`
	Weekday        *int    `json:"weekday"`
	TimeOfDay      *string `json:"time"`
}

// TaskUsecase is the admin-facing task surface. Engine-owned fields
// (lastReminderSent, rolled datetime) are not reachable through it.
type TaskUsecase interface {
	List(personID *string) ([]domain.Task, error)
	Get(id string) (*domain.Task, error)
	Create(input CreateTaskInput) (*domain.Task, error)
	Update(id string, input UpdateTaskInput) (*domain.Task, error)
	Delete(id string) error

	// SetChangeListener registers the callback fired after every successful
	// mutation (snapshot fan-out and an extra engine pass hang off it).
	SetChangeListener(fn func())
}
