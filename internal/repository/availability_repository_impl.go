package repository

import (
	"errors"
	"time"

	"go-clinic-scheduling/internal/domain/entity"
	domainRepo "go-clinic-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type availabilityRepository struct{}

func NewAvailabilityRepository() domainRepo.AvailabilityRepository {
	return &availabilityRepository{}
}

func (r *availabilityRepository) ReplaceRules(db *gorm.DB, professionalID uuid.UUID, rules []*entity.AvailabilityRule) error {
	if err := db.Where("professional_id = ?", professionalID).Delete(&entity.AvailabilityRule{}).Error; err != nil {
		return err
	}
	if len(rules) == 0 {
		return nil
	}
	return db.Create(rules).Error
}

func (r *availabilityRepository) FindRulesByProfessional(db *gorm.DB, professionalID uuid.UUID) ([]entity.AvailabilityRule, error) {
	var rules []entity.AvailabilityRule
	err := db.Where("professional_id = ?", professionalID).
		Order("day_of_week ASC, start_time ASC").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *availabilityRepository) FindActiveRulesForDay(db *gorm.DB, professionalID uuid.UUID, dayOfWeek int) ([]entity.AvailabilityRule, error) {
	var rules []entity.AvailabilityRule
	err := db.Where("professional_id = ? AND day_of_week = ? AND is_active = ?", professionalID, dayOfWeek, true).
		Order("start_time ASC").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *availabilityRepository) CreateException(db *gorm.DB, exception *entity.AvailabilityException) error {
	return db.Create(exception).Error
}

func (r *availabilityRepository) FindExceptionByID(db *gorm.DB, id uuid.UUID) (*entity.AvailabilityException, error) {
	var exception entity.AvailabilityException
	err := db.Where("id = ?", id).First(&exception).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &exception, nil
}

func (r *availabilityRepository) FindExceptionsByDate(db *gorm.DB, professionalID uuid.UUID, date time.Time) ([]entity.AvailabilityException, error) {
	var exceptions []entity.AvailabilityException
	err := db.Where("professional_id = ? AND date = ?", professionalID, date.Format("2006-01-02")).
		Find(&exceptions).Error
	if err != nil {
		return nil, err
	}
	return exceptions, nil
}

func (r *availabilityRepository) FindExceptionsInRange(db *gorm.DB, professionalID uuid.UUID, start, end time.Time) ([]entity.AvailabilityException, error) {
	var exceptions []entity.AvailabilityException
	err := db.Where("professional_id = ? AND date >= ? AND date <= ?",
		professionalID, start.Format("2006-01-02"), end.Format("2006-01-02")).
		Order("date ASC").
		Find(&exceptions).Error
	if err != nil {
		return nil, err
	}
	return exceptions, nil
}

func (r *availabilityRepository) DeleteException(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.AvailabilityException{})
	return result.RowsAffected, result.Error
}
