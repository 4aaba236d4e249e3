package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateAppointmentRequest struct {
	ProfessionalID          uuid.UUID   `json:"professional_id" validate:"required"`
	PatientID               *uuid.UUID  `json:"patient_id" validate:"omitempty"`
	Date                    string      `json:"date" validate:"required"`       // Format: YYYY-MM-DD
	StartTime               string      `json:"start_time" validate:"required,datetime=15:04"` // Format: HH:MM
	DurationMinutes         int         `json:"duration_minutes" validate:"required,min=5,max=480"`
	Modality                string      `json:"modality" validate:"omitempty,oneof=PRESENCIAL ONLINE"`
	BlocksTime              *bool       `json:"blocks_time" validate:"omitempty"`
	Notes                   string      `json:"notes" validate:"omitempty"`
	ServiceID               *uuid.UUID  `json:"service_id" validate:"omitempty"`
	AdditionalProfessionals []uuid.UUID `json:"additional_professionals" validate:"omitempty"`
}

// UpdateAppointmentRequest carries a partial update: nil pointers mean "leave
// the field untouched".
type UpdateAppointmentRequest struct {
	Date            *string          `json:"date" validate:"omitempty"`
	StartTime       *string          `json:"start_time" validate:"omitempty,datetime=15:04"`
	DurationMinutes *int             `json:"duration_minutes" validate:"omitempty,min=5,max=480"`
	Modality        *string          `json:"modality" validate:"omitempty,oneof=PRESENCIAL ONLINE"`
	Notes           *string          `json:"notes" validate:"omitempty"`
	ServiceID       *uuid.UUID       `json:"service_id" validate:"omitempty"`
	Price           *decimal.Decimal `json:"price" validate:"omitempty"`
}

type CancelAppointmentRequest struct {
	By     string `json:"by" validate:"required,oneof=patient professional"`
	Reason string `json:"reason" validate:"omitempty"`
}

type CreateRecurringAppointmentRequest struct {
	ProfessionalID          uuid.UUID   `json:"professional_id" validate:"required"`
	PatientID               uuid.UUID   `json:"patient_id" validate:"required"`
	StartDate               string      `json:"start_date" validate:"required"` // Format: YYYY-MM-DD
	StartTime               string      `json:"start_time" validate:"required,datetime=15:04"`
	DurationMinutes         int         `json:"duration_minutes" validate:"required,min=5,max=480"`
	RecurrenceType          string      `json:"recurrence_type" validate:"required,oneof=WEEKLY BIWEEKLY MONTHLY"`
	RecurrenceEndType       string      `json:"recurrence_end_type" validate:"required,oneof=BY_DATE BY_OCCURRENCES INDEFINITE"`
	EndDate                 *string     `json:"end_date" validate:"omitempty"` // Format: YYYY-MM-DD
	Occurrences             *int        `json:"occurrences" validate:"omitempty,min=1,max=200"`
	Modality                string      `json:"modality" validate:"omitempty,oneof=PRESENCIAL ONLINE"`
	ServiceID               *uuid.UUID  `json:"service_id" validate:"omitempty"`
	AdditionalProfessionals []uuid.UUID `json:"additional_professionals" validate:"omitempty"`
}

// Response DTOs

type AppointmentResponse struct {
	ID                      uuid.UUID        `json:"id"`
	ClinicID                uuid.UUID        `json:"clinic_id"`
	ProfessionalID          uuid.UUID        `json:"professional_id"`
	PatientID               *uuid.UUID       `json:"patient_id,omitempty"`
	Patient                 *PatientResponse `json:"patient,omitempty"`
	GroupID                 *uuid.UUID       `json:"group_id,omitempty"`
	RecurrenceID            *uuid.UUID       `json:"recurrence_id,omitempty"`
	ScheduledAt             time.Time        `json:"scheduled_at"`
	EndAt                   time.Time        `json:"end_at"`
	Status                  string           `json:"status"`
	Modality                string           `json:"modality"`
	BlocksTime              bool             `json:"blocks_time"`
	Notes                   string           `json:"notes,omitempty"`
	Price                   *decimal.Decimal `json:"price,omitempty"`
	CancellationReason      string           `json:"cancellation_reason,omitempty"`
	AdditionalProfessionals []uuid.UUID      `json:"additional_professionals,omitempty"`
	CreatedAt               time.Time        `json:"created_at"`
	UpdatedAt               time.Time        `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// ConflictingAppointmentResponse identifies the colliding booking so the
// caller can resolve the conflict.
type ConflictingAppointmentResponse struct {
	AppointmentID uuid.UUID `json:"appointment_id"`
	PatientName   string    `json:"patient_name,omitempty"`
	ScheduledAt   time.Time `json:"scheduled_at"`
	EndAt         time.Time `json:"end_at"`
}

// ConflictResponse is the structured body of every 409 returned by
// scheduling endpoints.
type ConflictResponse struct {
	Error                   string                           `json:"error"`
	Code                    string                           `json:"code"`
	ConflictDate            string                           `json:"conflict_date,omitempty"`
	OccurrenceIndex         *int                             `json:"occurrence_index,omitempty"`
	ConflictingAppointments []ConflictingAppointmentResponse `json:"conflicting_appointments,omitempty"`
}

// AvailabilityViolationResponse is the structured body of availability 422s
type AvailabilityViolationResponse struct {
	Error           string `json:"error"`
	Reason          string `json:"reason"`
	ConflictDate    string `json:"conflict_date"`
	OccurrenceIndex *int   `json:"occurrence_index,omitempty"`
}
