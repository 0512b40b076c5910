package usecase

import (
	"errors"

	"brf-backend/internal/person/domain"
)

var (
	ErrNotFound   = errors.New("person not found")
	ErrValidation = errors.New("validation failed")
)

// PersonUsecase is the admin-facing people surface plus device registration
// for push delivery.
type PersonUsecase interface {
	List() ([]domain.Person, error)
	Get(id string) (*domain.Person, error)
	Create(name string) (*domain.Person, error)
	Rename(id, name string) (*domain.Person, error)

	// Delete removes the person and, best-effort, every task assigned to
	// them. The cascade is not transactional: a failure mid-way leaves
	// orphans behind and is only logged.
	Delete(id string) error

	RegisterDevice(token, platform string, personID *string) error
	UnregisterDevice(token string) error

	SetChangeListener(fn func())
}
