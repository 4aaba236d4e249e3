package repository

import (
	"errors"
	"time"

	"go-clinic-scheduling/internal/domain/entity"
	domainRepo "go-clinic-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type recurrenceRepository struct{}

func NewRecurrenceRepository() domainRepo.RecurrenceRepository {
	return &recurrenceRepository{}
}

func (r *recurrenceRepository) Create(db *gorm.DB, recurrence *entity.AppointmentRecurrence) error {
	return db.Create(recurrence).Error
}

func (r *recurrenceRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.AppointmentRecurrence, error) {
	var recurrence entity.AppointmentRecurrence
	err := db.Preload("Patient").Preload("AdditionalProfessionals").Where("id = ?", id).First(&recurrence).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &recurrence, nil
}

func (r *recurrenceRepository) Update(db *gorm.DB, recurrence *entity.AppointmentRecurrence) error {
	return db.Omit("Patient", "Professional", "Appointments", "AdditionalProfessionals").Save(recurrence).Error
}

func (r *recurrenceRepository) UpdateFields(db *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return db.Model(&entity.AppointmentRecurrence{}).Where("id = ?", id).Updates(fields).Error
}

func (r *recurrenceRepository) FindExtendable(db *gorm.DB, cutoff time.Time) ([]entity.AppointmentRecurrence, error) {
	var recurrences []entity.AppointmentRecurrence
	err := db.Where("is_active = ?", true).
		Where("recurrence_end_type = ?", entity.RecurrenceEndIndefinite).
		Where("last_generated_date IS NULL OR last_generated_date <= ?", cutoff).
		Preload("AdditionalProfessionals").
		Find(&recurrences).Error
	if err != nil {
		return nil, err
	}
	return recurrences, nil
}

func (r *recurrenceRepository) ReplaceAdditionalProfessionals(db *gorm.DB, recurrenceID uuid.UUID, professionalIDs []uuid.UUID) error {
	if err := db.Where("recurrence_id = ?", recurrenceID).Delete(&entity.RecurrenceProfessional{}).Error; err != nil {
		return err
	}
	if len(professionalIDs) == 0 {
		return nil
	}
	rows := make([]entity.RecurrenceProfessional, len(professionalIDs))
	for i, id := range professionalIDs {
		rows[i] = entity.RecurrenceProfessional{
			RecurrenceID:   recurrenceID,
			ProfessionalID: id,
		}
	}
	return db.Create(&rows).Error
}
