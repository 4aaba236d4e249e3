package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateGroupRequest struct {
	ProfessionalID  uuid.UUID `json:"professional_id" validate:"required"`
	Name            string    `json:"name" validate:"required,min=2"`
	DayOfWeek       int       `json:"day_of_week" validate:"min=0,max=6"`
	StartTime       string    `json:"start_time" validate:"required,datetime=15:04"`
	DurationMinutes int       `json:"duration_minutes" validate:"required,min=5,max=480"`
	RecurrenceType  string    `json:"recurrence_type" validate:"omitempty,oneof=WEEKLY BIWEEKLY MONTHLY"`
}

type AddGroupMemberRequest struct {
	PatientID uuid.UUID `json:"patient_id" validate:"required"`
	JoinedAt  string    `json:"joined_at" validate:"required"` // Format: YYYY-MM-DD
}

type RemoveGroupMemberRequest struct {
	PatientID uuid.UUID `json:"patient_id" validate:"required"`
	LeftAt    string    `json:"left_at" validate:"required"` // Format: YYYY-MM-DD
}

type GenerateSessionsRequest struct {
	StartDate string `json:"start_date" validate:"required"` // Format: YYYY-MM-DD
	EndDate   string `json:"end_date" validate:"required"`   // Format: YYYY-MM-DD
}

// Response DTOs

type GroupMembershipResponse struct {
	PatientID   uuid.UUID `json:"patient_id"`
	PatientName string    `json:"patient_name,omitempty"`
	JoinedAt    string    `json:"joined_at"`
	LeftAt      *string   `json:"left_at,omitempty"`
}

type GroupResponse struct {
	ID              uuid.UUID                 `json:"id"`
	ClinicID        uuid.UUID                 `json:"clinic_id"`
	ProfessionalID  uuid.UUID                 `json:"professional_id"`
	Name            string                    `json:"name"`
	DayOfWeek       int                       `json:"day_of_week"`
	StartTime       string                    `json:"start_time"`
	DurationMinutes int                       `json:"duration_minutes"`
	RecurrenceType  string                    `json:"recurrence_type"`
	IsActive        bool                      `json:"is_active"`
	Members         []GroupMembershipResponse `json:"members,omitempty"`
	CreatedAt       time.Time                 `json:"created_at"`
	UpdatedAt       time.Time                 `json:"updated_at"`
}

type GroupListResponse struct {
	Groups []GroupResponse `json:"groups"`
	Total  int             `json:"total"`
}

type GenerateSessionsResponse struct {
	SessionsCreated int `json:"sessions_created"`
}
