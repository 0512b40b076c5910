package repository

import "brf-backend/internal/person/domain"

// PersonRepository defines data access for people.
type PersonRepository interface {
	Create(person *domain.Person) error
	FindByID(id string) (*domain.Person, error)
	FindAll() ([]domain.Person, error)
	Update(person *domain.Person) error
	Delete(id string) error
}

// DeviceTokenRepository defines data access for registered push tokens.
type DeviceTokenRepository interface {
	Save(token, platform string, personID *string) error
	FindByPersonID(personID string) ([]domain.DeviceToken, error)
	FindAll() ([]domain.DeviceToken, error)
	Delete(token string) error
	DeleteByPersonID(personID string) error
}
