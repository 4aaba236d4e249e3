package repository

import (
	"errors"
	"time"

	"go-clinic-scheduling/internal/domain/entity"
	domainRepo "go-clinic-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type groupRepository struct{}

func NewGroupRepository() domainRepo.GroupRepository {
	return &groupRepository{}
}

func (r *groupRepository) Create(db *gorm.DB, group *entity.TherapyGroup) error {
	return db.Create(group).Error
}

func (r *groupRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.TherapyGroup, error) {
	var group entity.TherapyGroup
	err := db.Preload("Memberships").Where("id = ?", id).First(&group).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

func (r *groupRepository) FindByClinic(db *gorm.DB, clinicID uuid.UUID) ([]entity.TherapyGroup, error) {
	var groups []entity.TherapyGroup
	err := db.Where("clinic_id = ?", clinicID).Order("name ASC").Find(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *groupRepository) Update(db *gorm.DB, group *entity.TherapyGroup) error {
	return db.Omit("Memberships", "Professional", "Appointments").Save(group).Error
}

func (r *groupRepository) AddMember(db *gorm.DB, membership *entity.GroupMembership) error {
	return db.Create(membership).Error
}

func (r *groupRepository) RemoveMember(db *gorm.DB, groupID, patientID uuid.UUID, leftAt time.Time) (int64, error) {
	result := db.Model(&entity.GroupMembership{}).
		Where("group_id = ? AND patient_id = ? AND left_at IS NULL", groupID, patientID).
		Update("left_at", leftAt.Format("2006-01-02"))
	return result.RowsAffected, result.Error
}

func (r *groupRepository) FindMemberships(db *gorm.DB, groupID uuid.UUID) ([]entity.GroupMembership, error) {
	var memberships []entity.GroupMembership
	err := db.Where("group_id = ?", groupID).Preload("Patient").Find(&memberships).Error
	if err != nil {
		return nil, err
	}
	return memberships, nil
}
