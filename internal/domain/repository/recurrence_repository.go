package repository

import (
	"time"

	"go-clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecurrenceRepository interface {
	Create(db *gorm.DB, recurrence *entity.AppointmentRecurrence) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.AppointmentRecurrence, error)
	Update(db *gorm.DB, recurrence *entity.AppointmentRecurrence) error
	UpdateFields(db *gorm.DB, id uuid.UUID, fields map[string]interface{}) error

	// FindExtendable returns active INDEFINITE recurrences whose generated
	// window ends on or before the cutoff date.
	FindExtendable(db *gorm.DB, cutoff time.Time) ([]entity.AppointmentRecurrence, error)

	// ReplaceAdditionalProfessionals swaps the recurrence's roster template
	// (delete-all + recreate).
	ReplaceAdditionalProfessionals(db *gorm.DB, recurrenceID uuid.UUID, professionalIDs []uuid.UUID) error
}
