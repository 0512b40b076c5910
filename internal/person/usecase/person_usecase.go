package usecase

import (
	"fmt"
	"strings"

	"brf-backend/internal/person/domain"
	"brf-backend/internal/person/repository"
	taskrepo "brf-backend/internal/task/repository"
	"brf-backend/pkg/logger"
)

var log = logger.Component("person")

type personUsecase struct {
	people   repository.PersonRepository
	devices  repository.DeviceTokenRepository
	tasks    taskrepo.TaskRepository
	onChange func()
}

func NewPersonUsecase(people repository.PersonRepository, devices repository.DeviceTokenRepository, tasks taskrepo.TaskRepository) PersonUsecase {
	return &personUsecase{people: people, devices: devices, tasks: tasks}
}

func (u *personUsecase) SetChangeListener(fn func()) {
	u.onChange = fn
}

func (u *personUsecase) notifyChange() {
	if u.onChange != nil {
		u.onChange()
	}
}

func (u *personUsecase) List() ([]domain.Person, error) {
	return u.people.FindAll()
}

func (u *personUsecase) Get(id string) (*domain.Person, error) {
	person, err := u.people.FindByID(id)
	if err != nil {
		return nil, err
	}
	if person == nil {
		return nil, ErrNotFound
	}
	return person, nil
}

func (u *personUsecase) Create(name string) (*domain.Person, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	person := &domain.Person{Name: name}
	if err := u.people.Create(person); err != nil {
		return nil, err
	}
	u.notifyChange()
	return person, nil
}

func (u *personUsecase) Rename(id, name string) (*domain.Person, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	person, err := u.people.FindByID(id)
	if err != nil {
		return nil, err
	}
	if person == nil {
		return nil, ErrNotFound
	}
	person.Name = name
	if err := u.people.Update(person); err != nil {
		return nil, err
	}
	u.notifyChange()
	return person, nil
}

func (u *personUsecase) Delete(id string) error {
	person, err := u.people.FindByID(id)
	if err != nil {
		return err
	}
	if person == nil {
		return ErrNotFound
	}

	related, err := u.tasks.FindAll(&id)
	if err != nil {
		return err
	}

	if err := u.people.Delete(id); err != nil {
		return err
	}

	// Best-effort cascade: each related record is removed independently and
	// a failure leaves an orphan rather than aborting the rest.
	for _, task := range related {
		if err := u.tasks.Delete(task.ID); err != nil {
			log.WithError(err).WithField("task", task.ID).Warn("cascade task delete failed")
		}
	}
	if err := u.devices.DeleteByPersonID(id); err != nil {
		log.WithError(err).WithField("person", id).Warn("cascade device delete failed")
	}

	u.notifyChange()
	return nil
}

func (u *personUsecase) RegisterDevice(token, platform string, personID *string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("%w: token is required", ErrValidation)
	}
	if personID != nil {
		person, err := u.people.FindByID(*personID)
		if err != nil {
			return err
		}
		if person == nil {
			return ErrNotFound
		}
	}
	if platform == "" {
		platform = "web"
	}
	return u.devices.Save(token, platform, personID)
}

func (u *personUsecase) UnregisterDevice(token string) error {
	return u.devices.Delete(token)
}
