package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RegisterProfessionalRequest creates a professional account (admin only)
type RegisterProfessionalRequest struct {
	Email              string `json:"email" validate:"required,email"`
	Password           string `json:"password" validate:"required,min=6"`
	FullName           string `json:"full_name" validate:"required,min=2"`
	RegistrationNumber string `json:"registration_number" validate:"required"`
	Specialty          string `json:"specialty" validate:"required"`
	Biography          string `json:"biography" validate:"omitempty"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type UserResponse struct {
	ID                  uuid.UUID             `json:"id"`
	ClinicID            uuid.UUID             `json:"clinic_id"`
	Email               string                `json:"email"`
	FullName            string                `json:"full_name"`
	Role                string                `json:"role"`
	ProfessionalProfile *ProfessionalResponse `json:"professional_profile,omitempty"`
	CreatedAt           time.Time             `json:"created_at"`
	UpdatedAt           time.Time             `json:"updated_at"`
}
