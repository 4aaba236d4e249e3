package entity

import (
	"time"

	"github.com/google/uuid"
)

// TherapyGroup is a group therapy session template with its own recurrence
// parameters. Session generation materializes one appointment per active
// member per computed session date.
type TherapyGroup struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ClinicID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"clinic_id"`
	ProfessionalID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"professional_id"`
	Name            string         `gorm:"type:varchar(255);not null" json:"name"`
	DayOfWeek       int            `gorm:"not null" json:"day_of_week"`
	StartTime       string         `gorm:"type:varchar(5);not null" json:"start_time"` // "HH:mm"
	DurationMinutes int            `gorm:"not null" json:"duration_minutes"`
	RecurrenceType  RecurrenceType `gorm:"type:varchar(20);not null;default:'WEEKLY'" json:"recurrence_type"`
	IsActive        *bool          `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Professional ProfessionalProfile `gorm:"foreignKey:ProfessionalID" json:"professional,omitempty"`
	Memberships  []GroupMembership   `gorm:"foreignKey:GroupID" json:"memberships,omitempty"`
	Appointments []Appointment       `gorm:"foreignKey:GroupID" json:"appointments,omitempty"`
}

func (TherapyGroup) TableName() string {
	return "therapy_groups"
}

// GroupMembership tracks a patient's participation window in a group
type GroupMembership struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	GroupID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_group_patient" json:"group_id"`
	PatientID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_group_patient;index" json:"patient_id"`
	JoinedAt  time.Time  `gorm:"type:date;not null" json:"joined_at"`
	LeftAt    *time.Time `gorm:"type:date" json:"left_at,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Group   TherapyGroup `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	Patient Patient      `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (GroupMembership) TableName() string {
	return "group_memberships"
}

// IsActiveOn reports whether the member belongs to the roster as of the given
// session date: joined on/before the date and not left before it.
func (m *GroupMembership) IsActiveOn(date time.Time) bool {
	if m.JoinedAt.After(date) {
		return false
	}
	if m.LeftAt != nil && m.LeftAt.Before(date) {
		return false
	}
	return true
}
