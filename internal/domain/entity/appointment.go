package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AppointmentStatus represents the status of an appointment.
// Status values follow the clinic's wire format.
type AppointmentStatus string

const (
	AppointmentStatusScheduled              AppointmentStatus = "AGENDADO"
	AppointmentStatusConfirmed              AppointmentStatus = "CONFIRMADO"
	AppointmentStatusFinished               AppointmentStatus = "FINALIZADO"
	AppointmentStatusCancelledByPatient     AppointmentStatus = "CANCELADO_PACIENTE"
	AppointmentStatusCancelledByProfessional AppointmentStatus = "CANCELADO_PROFISSIONAL"
	AppointmentStatusNoShow                 AppointmentStatus = "NAO_COMPARECEU"
)

// AppointmentModality distinguishes in-person from remote consultations
type AppointmentModality string

const (
	ModalityInPerson AppointmentModality = "PRESENCIAL"
	ModalityOnline   AppointmentModality = "ONLINE"
)

// Appointment represents one concrete calendar entry for a professional.
// Entries with BlocksTime=false are informational and never participate in
// conflict checks.
type Appointment struct {
	ID                 uuid.UUID           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ClinicID           uuid.UUID           `gorm:"type:uuid;not null;index" json:"clinic_id"`
	ProfessionalID     uuid.UUID           `gorm:"type:uuid;not null;index" json:"professional_id"`
	PatientID          *uuid.UUID          `gorm:"type:uuid;index" json:"patient_id,omitempty"`
	GroupID            *uuid.UUID          `gorm:"type:uuid;index" json:"group_id,omitempty"`
	RecurrenceID       *uuid.UUID          `gorm:"type:uuid;index" json:"recurrence_id,omitempty"`
	ScheduledAt        time.Time           `gorm:"not null;index" json:"scheduled_at"`
	EndAt              time.Time           `gorm:"not null;index" json:"end_at"`
	Status             AppointmentStatus   `gorm:"type:varchar(30);not null;default:'AGENDADO';index" json:"status"`
	Modality           AppointmentModality `gorm:"type:varchar(20);not null;default:'PRESENCIAL'" json:"modality"`
	BlocksTime         *bool               `gorm:"not null;default:true" json:"blocks_time"`
	Notes              string              `gorm:"type:text" json:"notes,omitempty"`
	ServiceID          *uuid.UUID          `gorm:"type:uuid" json:"service_id,omitempty"`
	Price              *decimal.Decimal    `gorm:"type:decimal(10,2)" json:"price,omitempty"`
	CancellationReason string              `gorm:"type:text" json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time           `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient                 *Patient                  `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Professional            ProfessionalProfile       `gorm:"foreignKey:ProfessionalID" json:"professional,omitempty"`
	Service                 *ServiceCatalog           `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	AdditionalProfessionals []AppointmentProfessional `gorm:"foreignKey:AppointmentID" json:"additional_professionals,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsCancelled checks if the appointment was cancelled by either party
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelledByPatient ||
		a.Status == AppointmentStatusCancelledByProfessional
}

// IsTerminal checks if the appointment reached a state that forbids further transitions
func (a *Appointment) IsTerminal() bool {
	return a.IsCancelled() ||
		a.Status == AppointmentStatusFinished ||
		a.Status == AppointmentStatusNoShow
}

// BlocksCalendar reports whether the appointment occupies calendar time for
// conflict-checking purposes: it must block time and not be cancelled.
func (a *Appointment) BlocksCalendar() bool {
	if a.BlocksTime == nil || !*a.BlocksTime {
		return false
	}
	return !a.IsCancelled()
}

// OverlapsWithBuffer checks whether this appointment collides with the
// candidate range, requiring at least buffer idle time around the existing
// booking: existingStart < candidateEnd+buffer AND existingEnd+buffer > candidateStart.
func (a *Appointment) OverlapsWithBuffer(candidateStart, candidateEnd time.Time, buffer time.Duration) bool {
	return a.ScheduledAt.Before(candidateEnd.Add(buffer)) &&
		a.EndAt.Add(buffer).After(candidateStart)
}

// CanTransitionTo validates the status machine:
// AGENDADO -> CONFIRMADO -> FINALIZADO, or either -> cancelled/no-show.
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	if a.IsTerminal() {
		return false
	}
	switch next {
	case AppointmentStatusConfirmed:
		return a.Status == AppointmentStatusScheduled
	case AppointmentStatusFinished, AppointmentStatusNoShow:
		return a.Status == AppointmentStatusScheduled || a.Status == AppointmentStatusConfirmed
	case AppointmentStatusCancelledByPatient, AppointmentStatusCancelledByProfessional:
		return a.Status == AppointmentStatusScheduled || a.Status == AppointmentStatusConfirmed
	default:
		return false
	}
}

// AppointmentProfessional joins additional professionals co-attending an
// appointment beyond the primary owner. Each participant's calendar is also
// conflict-checked.
type AppointmentProfessional struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	AppointmentID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_appt_prof" json:"appointment_id"`
	ProfessionalID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_appt_prof;index" json:"professional_id"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Appointment  Appointment         `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
	Professional ProfessionalProfile `gorm:"foreignKey:ProfessionalID" json:"professional,omitempty"`
}

func (AppointmentProfessional) TableName() string {
	return "appointment_professionals"
}
