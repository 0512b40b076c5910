package repository

import "brf-backend/internal/task/domain"

// TaskRepository defines data access for tasks.
type TaskRepository interface {
	Create(task *domain.Task) error
	FindByID(id string) (*domain.Task, error)

	// FindAll returns every task; personID, when non-nil, filters to one
	// person's tasks. Ordered by occurrence instant, nulls last.
	FindAll(personID *string) ([]domain.Task, error)

	Update(task *domain.Task) error
	Delete(id string) error

	// UpdateFields merges named columns into an existing record; used by the
	// reminder engine to persist its per-task patches.
	UpdateFields(id string, fields map[string]interface{}) error
}
