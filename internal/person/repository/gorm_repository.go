package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"brf-backend/internal/person/domain"
)

// gormPersonRepository implements PersonRepository using GORM.
type gormPersonRepository struct {
	db *gorm.DB
}

func NewPersonRepository(db *gorm.DB) PersonRepository {
	return &gormPersonRepository{db: db}
}

func (r *gormPersonRepository) Create(person *domain.Person) error {
	if person.ID == "" {
		person.ID = uuid.New().String()
	}
	person.CreatedAt = time.Now()
	person.UpdatedAt = time.Now()
	return r.db.Create(person).Error
}

func (r *gormPersonRepository) FindByID(id string) (*domain.Person, error) {
	var person domain.Person
	err := r.db.Where("id = ?", id).First(&person).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &person, nil
}

func (r *gormPersonRepository) FindAll() ([]domain.Person, error) {
	var people []domain.Person
	err := r.db.Order("created_at ASC").Find(&people).Error
	return people, err
}

func (r *gormPersonRepository) Update(person *domain.Person) error {
	person.UpdatedAt = time.Now()
	return r.db.Save(person).Error
}

func (r *gormPersonRepository) Delete(id string) error {
	return r.db.Delete(&domain.Person{}, "id = ?", id).Error
}

// gormDeviceTokenRepository implements DeviceTokenRepository using GORM.
type gormDeviceTokenRepository struct {
	db *gorm.DB
}

func NewDeviceTokenRepository(db *gorm.DB) DeviceTokenRepository {
	return &gormDeviceTokenRepository{db: db}
}

// Save upserts a token. Re-registering an existing token moves it to the new
// person (atomic INSERT ... ON CONFLICT (token) DO UPDATE).
func (r *gormDeviceTokenRepository) Save(token, platform string, personID *string) error {
	record := &domain.DeviceToken{
		ID:        uuid.New().String(),
		PersonID:  personID,
		Token:     token,
		Platform:  platform,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token"}},
		DoUpdates: clause.AssignmentColumns([]string{"person_id", "platform", "updated_at"}),
	}).Create(record).Error
}

func (r *gormDeviceTokenRepository) FindByPersonID(personID string) ([]domain.DeviceToken, error) {
	var tokens []domain.DeviceToken
	err := r.db.Where("person_id = ?", personID).Find(&tokens).Error
	return tokens, err
}

func (r *gormDeviceTokenRepository) FindAll() ([]domain.DeviceToken, error) {
	var tokens []domain.DeviceToken
	err := r.db.Find(&tokens).Error
	return tokens, err
}

func (r *gormDeviceTokenRepository) Delete(token string) error {
	return r.db.Where("token = ?", token).Delete(&domain.DeviceToken{}).Error
}

func (r *gormDeviceTokenRepository) DeleteByPersonID(personID string) error {
	return r.db.Where("person_id = ?", personID).Delete(&domain.DeviceToken{}).Error
}
