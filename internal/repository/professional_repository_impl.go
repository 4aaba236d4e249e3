package repository

import (
	"errors"

	"go-clinic-scheduling/internal/domain/entity"
	domainRepo "go-clinic-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type professionalRepository struct{}

func NewProfessionalRepository() domainRepo.ProfessionalRepository {
	return &professionalRepository{}
}

func (r *professionalRepository) Create(db *gorm.DB, profile *entity.ProfessionalProfile) error {
	return db.Create(profile).Error
}

func (r *professionalRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.ProfessionalProfile, error) {
	var profile entity.ProfessionalProfile
	err := db.Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *professionalRepository) FindByClinic(db *gorm.DB, clinicID uuid.UUID) ([]entity.ProfessionalProfile, error) {
	var profiles []entity.ProfessionalProfile
	err := db.Joins("JOIN users ON users.id = professional_profiles.user_id").
		Where("users.clinic_id = ? AND users.is_active = ?", clinicID, true).
		Preload("User").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *professionalRepository) ExistsAll(db *gorm.DB, clinicID uuid.UUID, ids []uuid.UUID) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}
	var count int64
	err := db.Model(&entity.ProfessionalProfile{}).
		Joins("JOIN users ON users.id = professional_profiles.user_id").
		Where("users.clinic_id = ? AND users.is_active = ?", clinicID, true).
		Where("professional_profiles.user_id IN ?", ids).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count == int64(len(ids)), nil
}
