package entity

import (
	"time"

	"github.com/google/uuid"
)

// Clinic is the tenant root: every professional, patient and appointment
// belongs to exactly one clinic.
type Clinic struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Timezone  string    `gorm:"type:varchar(64);not null;default:'America/Sao_Paulo'" json:"timezone"`
	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Users []User `gorm:"foreignKey:ClinicID" json:"users,omitempty"`
}

func (Clinic) TableName() string {
	return "clinics"
}
