package repository

import (
	"time"

	"go-clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GroupRepository interface {
	Create(db *gorm.DB, group *entity.TherapyGroup) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.TherapyGroup, error)
	FindByClinic(db *gorm.DB, clinicID uuid.UUID) ([]entity.TherapyGroup, error)
	Update(db *gorm.DB, group *entity.TherapyGroup) error

	AddMember(db *gorm.DB, membership *entity.GroupMembership) error
	// RemoveMember records the leave date instead of deleting, so historical
	// sessions keep their roster.
	RemoveMember(db *gorm.DB, groupID, patientID uuid.UUID, leftAt time.Time) (int64, error)
	FindMemberships(db *gorm.DB, groupID uuid.UUID) ([]entity.GroupMembership, error)
}
