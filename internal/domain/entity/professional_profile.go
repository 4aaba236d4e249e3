package entity

import "github.com/google/uuid"

// ProfessionalProfile represents professional-specific profile data
type ProfessionalProfile struct {
	UserID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	RegistrationNumber string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"registration_number"`
	Specialty          string    `gorm:"type:varchar(100);not null;index" json:"specialty"`
	Biography          string    `gorm:"type:text" json:"biography,omitempty"`

	// Relationships
	User              User               `gorm:"foreignKey:UserID" json:"user,omitempty"`
	AvailabilityRules []AvailabilityRule `gorm:"foreignKey:ProfessionalID" json:"availability_rules,omitempty"`
	Appointments      []Appointment      `gorm:"foreignKey:ProfessionalID" json:"appointments,omitempty"`
}

func (ProfessionalProfile) TableName() string {
	return "professional_profiles"
}
