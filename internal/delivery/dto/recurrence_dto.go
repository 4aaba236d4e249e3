package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// UpdateRecurrenceRequest carries a partial update of an active series.
// Nil pointers mean "leave the field untouched"; AdditionalProfessionals nil
// means keep the roster, non-nil (including empty) replaces it.
type UpdateRecurrenceRequest struct {
	DayOfWeek               *int         `json:"day_of_week" validate:"omitempty,min=0,max=6"`
	StartTime               *string      `json:"start_time" validate:"omitempty,datetime=15:04"`
	EndTime                 *string      `json:"end_time" validate:"omitempty,datetime=15:04"`
	RecurrenceType          *string      `json:"recurrence_type" validate:"omitempty,oneof=WEEKLY BIWEEKLY MONTHLY"`
	RecurrenceEndType       *string      `json:"recurrence_end_type" validate:"omitempty,oneof=BY_DATE BY_OCCURRENCES INDEFINITE"`
	EndDate                 *string      `json:"end_date" validate:"omitempty"` // Format: YYYY-MM-DD
	Occurrences             *int         `json:"occurrences" validate:"omitempty,min=1,max=200"`
	Modality                *string      `json:"modality" validate:"omitempty,oneof=PRESENCIAL ONLINE"`
	AdditionalProfessionals *[]uuid.UUID `json:"additional_professionals" validate:"omitempty"`
}

type FinalizeRecurrenceRequest struct {
	EndDate string `json:"end_date" validate:"required"` // Format: YYYY-MM-DD
}

// Response DTOs

type RecurrenceResponse struct {
	ID                      uuid.UUID   `json:"id"`
	ClinicID                uuid.UUID   `json:"clinic_id"`
	ProfessionalID          uuid.UUID   `json:"professional_id"`
	PatientID               uuid.UUID   `json:"patient_id"`
	DayOfWeek               int         `json:"day_of_week"`
	StartTime               string      `json:"start_time"`
	EndTime                 string      `json:"end_time"`
	DurationMinutes         int         `json:"duration_minutes"`
	RecurrenceType          string      `json:"recurrence_type"`
	RecurrenceEndType       string      `json:"recurrence_end_type"`
	StartDate               string      `json:"start_date"`
	EndDate                 *string     `json:"end_date,omitempty"`
	Occurrences             *int        `json:"occurrences,omitempty"`
	LastGeneratedDate       *string     `json:"last_generated_date,omitempty"`
	Modality                string      `json:"modality"`
	Exceptions              []string    `json:"exceptions,omitempty"`
	IsActive                bool        `json:"is_active"`
	AdditionalProfessionals []uuid.UUID `json:"additional_professionals,omitempty"`
	CreatedAt               time.Time   `json:"created_at"`
	UpdatedAt               time.Time   `json:"updated_at"`
}

type RecurrenceWithInstancesResponse struct {
	Recurrence   RecurrenceResponse    `json:"recurrence"`
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

type ExtendRecurrencesResponse struct {
	RecurrencesExtended int `json:"recurrences_extended"`
	AppointmentsCreated int `json:"appointments_created"`
}
