package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type AvailabilityRuleInput struct {
	DayOfWeek int    `json:"day_of_week" validate:"min=0,max=6"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
	IsActive  *bool  `json:"is_active" validate:"omitempty"`
}

// SaveAvailabilityRulesRequest replaces the professional's full rule set
type SaveAvailabilityRulesRequest struct {
	ProfessionalID uuid.UUID               `json:"professional_id" validate:"required"`
	Rules          []AvailabilityRuleInput `json:"rules" validate:"required,dive"`
}

type CreateExceptionRequest struct {
	ProfessionalID uuid.UUID `json:"professional_id" validate:"required"`
	Date           string    `json:"date" validate:"required"` // Format: YYYY-MM-DD
	IsAvailable    *bool     `json:"is_available" validate:"required"`
	StartTime      *string   `json:"start_time" validate:"omitempty,datetime=15:04"`
	EndTime        *string   `json:"end_time" validate:"omitempty,datetime=15:04"`
	Reason         string    `json:"reason" validate:"omitempty"`
}

// Response DTOs

type AvailabilityRuleResponse struct {
	ID             uuid.UUID `json:"id"`
	ProfessionalID uuid.UUID `json:"professional_id"`
	DayOfWeek      int       `json:"day_of_week"`
	StartTime      string    `json:"start_time"`
	EndTime        string    `json:"end_time"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type AvailabilityRuleListResponse struct {
	Rules []AvailabilityRuleResponse `json:"rules"`
	Total int                        `json:"total"`
}

type ExceptionResponse struct {
	ID             uuid.UUID `json:"id"`
	ProfessionalID uuid.UUID `json:"professional_id"`
	Date           string    `json:"date"`
	IsAvailable    bool      `json:"is_available"`
	StartTime      *string   `json:"start_time,omitempty"`
	EndTime        *string   `json:"end_time,omitempty"`
	Reason         string    `json:"reason,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type ExceptionListResponse struct {
	Exceptions []ExceptionResponse `json:"exceptions"`
	Total      int                 `json:"total"`
}
