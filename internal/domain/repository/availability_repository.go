package repository

import (
	"time"

	"go-clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AvailabilityRepository interface {
	// ReplaceRules deletes every rule of the professional and recreates the
	// given set. Callers run it inside a transaction.
	ReplaceRules(db *gorm.DB, professionalID uuid.UUID, rules []*entity.AvailabilityRule) error
	FindRulesByProfessional(db *gorm.DB, professionalID uuid.UUID) ([]entity.AvailabilityRule, error)
	FindActiveRulesForDay(db *gorm.DB, professionalID uuid.UUID, dayOfWeek int) ([]entity.AvailabilityRule, error)

	CreateException(db *gorm.DB, exception *entity.AvailabilityException) error
	FindExceptionByID(db *gorm.DB, id uuid.UUID) (*entity.AvailabilityException, error)
	FindExceptionsByDate(db *gorm.DB, professionalID uuid.UUID, date time.Time) ([]entity.AvailabilityException, error)
	FindExceptionsInRange(db *gorm.DB, professionalID uuid.UUID, start, end time.Time) ([]entity.AvailabilityException, error)
	DeleteException(db *gorm.DB, id uuid.UUID) (int64, error)
}
