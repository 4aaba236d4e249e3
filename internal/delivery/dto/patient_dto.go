package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreatePatientRequest struct {
	FullName  string `json:"full_name" validate:"required,min=2"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone" validate:"omitempty,min=8,max=20"`
	BirthDate string `json:"birth_date" validate:"omitempty"` // Format: YYYY-MM-DD
	Notes     string `json:"notes" validate:"omitempty"`
}

type UpdatePatientRequest struct {
	FullName  *string `json:"full_name" validate:"omitempty,min=2"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Phone     *string `json:"phone" validate:"omitempty,min=8,max=20"`
	BirthDate *string `json:"birth_date" validate:"omitempty"` // Format: YYYY-MM-DD
	Notes     *string `json:"notes" validate:"omitempty"`
	IsActive  *bool   `json:"is_active" validate:"omitempty"`
}

// Response DTOs

type PatientResponse struct {
	ID        uuid.UUID `json:"id"`
	ClinicID  uuid.UUID `json:"clinic_id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	BirthDate *string   `json:"birth_date,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int64             `json:"total"`
}
