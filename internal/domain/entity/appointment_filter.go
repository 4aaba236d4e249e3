package entity

import "github.com/google/uuid"

// AppointmentFilter is a domain-level filter for querying appointments.
// Used by repository layer to avoid coupling with delivery DTOs.
type AppointmentFilter struct {
	ClinicID       uuid.UUID
	ProfessionalID *uuid.UUID // set when the caller's scope is "own"
	PatientID      *uuid.UUID
	StartAt        string // Format: YYYY-MM-DD
	EndAt          string // Format: YYYY-MM-DD
	Status         string
}
