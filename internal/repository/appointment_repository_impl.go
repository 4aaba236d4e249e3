package repository

import (
	"errors"
	"time"

	"go-clinic-scheduling/internal/domain/entity"
	domainRepo "go-clinic-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) CreateBatch(db *gorm.DB, appointments []*entity.Appointment) error {
	if len(appointments) == 0 {
		return nil
	}
	return db.Create(appointments).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Patient").Preload("AdditionalProfessionals").Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByFilter(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	query := db.Where("clinic_id = ?", filter.ClinicID)

	if filter.ProfessionalID != nil {
		query = query.Where("professional_id = ?", *filter.ProfessionalID)
	}
	if filter.PatientID != nil {
		query = query.Where("patient_id = ?", *filter.PatientID)
	}
	if filter.StartAt != "" {
		query = query.Where("scheduled_at >= ?", filter.StartAt)
	}
	if filter.EndAt != "" {
		query = query.Where("scheduled_at < ?", filter.EndAt)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var appointments []entity.Appointment
	err := query.Preload("Patient").Order("scheduled_at ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) Update(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Omit("Patient", "Professional", "Service", "AdditionalProfessionals").Save(appointment).Error
}

func (r *appointmentRepository) UpdateFields(db *gorm.DB, ids []uuid.UUID, fields map[string]interface{}) error {
	if len(ids) == 0 || len(fields) == 0 {
		return nil
	}
	return db.Model(&entity.Appointment{}).Where("id IN ?", ids).Updates(fields).Error
}

func (r *appointmentRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Appointment{})
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) DeleteBatch(db *gorm.DB, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return db.Where("id IN ?", ids).Delete(&entity.Appointment{}).Error
}

// cancelledStatuses never occupy calendar time
var cancelledStatuses = []entity.AppointmentStatus{
	entity.AppointmentStatusCancelledByPatient,
	entity.AppointmentStatusCancelledByProfessional,
}

func (r *appointmentRepository) FindBlockingInWindow(db *gorm.DB, professionalIDs []uuid.UUID, windowStart, windowEnd time.Time, exclude domainRepo.ConflictExclusion) ([]entity.Appointment, error) {
	query := db.Model(&entity.Appointment{}).
		Where("blocks_time = ?", true).
		Where("status NOT IN ?", cancelledStatuses).
		Where("scheduled_at < ? AND end_at > ?", windowEnd, windowStart).
		Where(
			db.Where("professional_id IN ?", professionalIDs).
				Or("id IN (?)", db.Session(&gorm.Session{NewDB: true}).
					Model(&entity.AppointmentProfessional{}).
					Select("appointment_id").
					Where("professional_id IN ?", professionalIDs)),
		)

	if exclude.AppointmentID != nil {
		query = query.Where("id != ?", *exclude.AppointmentID)
	}
	if exclude.RecurrenceID != nil {
		query = query.Where("recurrence_id IS NULL OR recurrence_id != ?", *exclude.RecurrenceID)
	}
	if exclude.GroupID != nil {
		query = query.Where("group_id IS NULL OR group_id != ?", *exclude.GroupID)
	}

	var appointments []entity.Appointment
	err := query.Preload("Patient").Order("scheduled_at ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindFutureByRecurrence(db *gorm.DB, recurrenceID uuid.UUID, from time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Where("recurrence_id = ?", recurrenceID).
		Where("scheduled_at >= ?", from).
		Where("status IN ?", []entity.AppointmentStatus{
			entity.AppointmentStatusScheduled,
			entity.AppointmentStatusConfirmed,
		}).
		Order("scheduled_at ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByGroupInWindow(db *gorm.DB, groupID uuid.UUID, windowStart, windowEnd time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Where("group_id = ?", groupID).
		Where("scheduled_at >= ? AND scheduled_at < ?", windowStart, windowEnd).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindUpcoming(db *gorm.DB, windowStart, windowEnd time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Where("blocks_time = ?", true).
		Where("status IN ?", []entity.AppointmentStatus{
			entity.AppointmentStatusScheduled,
			entity.AppointmentStatusConfirmed,
		}).
		Where("scheduled_at >= ? AND scheduled_at < ?", windowStart, windowEnd).
		Preload("Patient").
		Order("scheduled_at ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) ReplaceAdditionalProfessionals(db *gorm.DB, appointmentID uuid.UUID, professionalIDs []uuid.UUID) error {
	if err := db.Where("appointment_id = ?", appointmentID).Delete(&entity.AppointmentProfessional{}).Error; err != nil {
		return err
	}
	if len(professionalIDs) == 0 {
		return nil
	}
	rows := make([]entity.AppointmentProfessional, len(professionalIDs))
	for i, id := range professionalIDs {
		rows[i] = entity.AppointmentProfessional{
			AppointmentID:  appointmentID,
			ProfessionalID: id,
		}
	}
	return db.Create(&rows).Error
}
