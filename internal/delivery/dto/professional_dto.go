package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type UpdateProfessionalProfileRequest struct {
	RegistrationNumber *string `json:"registration_number" validate:"omitempty,min=2,max=50"`
	Specialty          *string `json:"specialty" validate:"omitempty,min=2,max=100"`
	Biography          *string `json:"biography" validate:"omitempty,max=2000"`
}

// Response DTOs

type ProfessionalResponse struct {
	ID                 uuid.UUID `json:"id"`
	UserID             uuid.UUID `json:"user_id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	RegistrationNumber string    `json:"registration_number,omitempty"`
	Specialty          string    `json:"specialty,omitempty"`
	Biography          string    `json:"biography,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
