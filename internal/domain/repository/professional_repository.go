package repository

import (
	"go-clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfessionalRepository interface {
	Create(db *gorm.DB, profile *entity.ProfessionalProfile) error
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.ProfessionalProfile, error)
	FindByClinic(db *gorm.DB, clinicID uuid.UUID) ([]entity.ProfessionalProfile, error)
	// ExistsAll reports whether every ID belongs to an active professional of
	// the clinic; used to validate additional-professional rosters.
	ExistsAll(db *gorm.DB, clinicID uuid.UUID, ids []uuid.UUID) (bool, error)
}
