package repository

import (
	"time"

	"go-clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConflictExclusion narrows the calendar window a conflict check looks at:
// the appointment being rescheduled (or a whole group's sessions) must not
// collide with itself.
type ConflictExclusion struct {
	AppointmentID *uuid.UUID
	RecurrenceID  *uuid.UUID
	GroupID       *uuid.UUID
}

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	CreateBatch(db *gorm.DB, appointments []*entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindByFilter(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	Update(db *gorm.DB, appointment *entity.Appointment) error
	UpdateFields(db *gorm.DB, ids []uuid.UUID, fields map[string]interface{}) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
	DeleteBatch(db *gorm.DB, ids []uuid.UUID) error

	// FindBlockingInWindow returns every blocking, non-cancelled appointment
	// that overlaps [windowStart, windowEnd) on any of the given
	// professionals' calendars, including appointments where the professional
	// participates as an additional attendee. Exclusions remove the
	// appointment (or group) being rescheduled from the result.
	FindBlockingInWindow(db *gorm.DB, professionalIDs []uuid.UUID, windowStart, windowEnd time.Time, exclude ConflictExclusion) ([]entity.Appointment, error)

	// FindFutureByRecurrence returns AGENDADO/CONFIRMADO instances of a
	// series scheduled at or after the given time, ordered by scheduled_at.
	FindFutureByRecurrence(db *gorm.DB, recurrenceID uuid.UUID, from time.Time) ([]entity.Appointment, error)

	// FindByGroupInWindow returns every appointment materialized for a group
	// inside the window, regardless of status.
	FindByGroupInWindow(db *gorm.DB, groupID uuid.UUID, windowStart, windowEnd time.Time) ([]entity.Appointment, error)

	// FindUpcoming returns blocking AGENDADO/CONFIRMADO appointments
	// scheduled inside the window, for reminder dispatch.
	FindUpcoming(db *gorm.DB, windowStart, windowEnd time.Time) ([]entity.Appointment, error)

	// ReplaceAdditionalProfessionals swaps the join rows of an appointment
	// with the given roster (delete-all + recreate).
	ReplaceAdditionalProfessionals(db *gorm.DB, appointmentID uuid.UUID, professionalIDs []uuid.UUID) error
}
