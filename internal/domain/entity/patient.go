package entity

import (
	"time"

	"github.com/google/uuid"
)

// Patient represents a patient record owned by a clinic.
// Patients do not log in; they are managed by clinic staff.
type Patient struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ClinicID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"clinic_id"`
	FullName  string     `gorm:"type:varchar(255);not null" json:"full_name"`
	Email     string     `gorm:"type:varchar(255);index" json:"email,omitempty"`
	Phone     string     `gorm:"type:varchar(20)" json:"phone,omitempty"`
	BirthDate *time.Time `gorm:"type:date" json:"birth_date,omitempty"`
	Notes     string     `gorm:"type:text" json:"notes,omitempty"`
	IsActive  *bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Clinic       Clinic        `gorm:"foreignKey:ClinicID" json:"clinic,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"appointments,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}
