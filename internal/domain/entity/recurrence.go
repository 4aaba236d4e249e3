package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RecurrenceType represents the repetition interval of a series
type RecurrenceType string

const (
	RecurrenceWeekly   RecurrenceType = "WEEKLY"
	RecurrenceBiweekly RecurrenceType = "BIWEEKLY"
	RecurrenceMonthly  RecurrenceType = "MONTHLY"
)

// RecurrenceEndType represents how a series is bounded
type RecurrenceEndType string

const (
	RecurrenceEndByDate        RecurrenceEndType = "BY_DATE"
	RecurrenceEndByOccurrences RecurrenceEndType = "BY_OCCURRENCES"
	RecurrenceEndIndefinite    RecurrenceEndType = "INDEFINITE"
)

// DateList stores a jsonb array of "YYYY-MM-DD" strings (recurrence
// exception dates skipped during generation).
type DateList []string

// Value implements driver.Valuer
func (d DateList) Value() (driver.Value, error) {
	if len(d) == 0 {
		return nil, nil
	}
	return json.Marshal(d)
}

// Scan implements sql.Scanner
func (d *DateList) Scan(value interface{}) error {
	if value == nil {
		*d = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal jsonb date list:", value))
	}
	return json.Unmarshal(bytes, d)
}

// Contains reports whether the list holds the given date (date part only)
func (d DateList) Contains(date time.Time) bool {
	key := date.Format("2006-01-02")
	for _, v := range d {
		if v == key {
			return true
		}
	}
	return false
}

// AppointmentRecurrence is a parametrized repeating booking pattern. It owns
// zero or more appointment instances. Exactly one of EndDate/Occurrences is
// meaningful depending on RecurrenceEndType; INDEFINITE series are extended
// in rolling windows with LastGeneratedDate tracking progress.
type AppointmentRecurrence struct {
	ID                uuid.UUID           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ClinicID          uuid.UUID           `gorm:"type:uuid;not null;index" json:"clinic_id"`
	ProfessionalID    uuid.UUID           `gorm:"type:uuid;not null;index" json:"professional_id"`
	PatientID         uuid.UUID           `gorm:"type:uuid;not null;index" json:"patient_id"`
	DayOfWeek         int                 `gorm:"not null" json:"day_of_week"`
	StartTime         string              `gorm:"type:varchar(5);not null" json:"start_time"` // "HH:mm"
	EndTime           string              `gorm:"type:varchar(5);not null" json:"end_time"`   // "HH:mm"
	DurationMinutes   int                 `gorm:"not null" json:"duration_minutes"`
	RecurrenceType    RecurrenceType      `gorm:"type:varchar(20);not null" json:"recurrence_type"`
	RecurrenceEndType RecurrenceEndType   `gorm:"type:varchar(20);not null" json:"recurrence_end_type"`
	StartDate         time.Time           `gorm:"type:date;not null" json:"start_date"`
	EndDate           *time.Time          `gorm:"type:date" json:"end_date,omitempty"`
	Occurrences       *int                `json:"occurrences,omitempty"`
	LastGeneratedDate *time.Time          `gorm:"type:date" json:"last_generated_date,omitempty"`
	Modality          AppointmentModality `gorm:"type:varchar(20);not null;default:'PRESENCIAL'" json:"modality"`
	Exceptions        DateList            `gorm:"type:jsonb" json:"exceptions,omitempty"`
	IsActive          *bool               `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt         time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time           `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Professional            ProfessionalProfile      `gorm:"foreignKey:ProfessionalID" json:"professional,omitempty"`
	Patient                 Patient                  `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Appointments            []Appointment            `gorm:"foreignKey:RecurrenceID" json:"appointments,omitempty"`
	AdditionalProfessionals []RecurrenceProfessional `gorm:"foreignKey:RecurrenceID" json:"additional_professionals,omitempty"`
}

func (AppointmentRecurrence) TableName() string {
	return "appointment_recurrences"
}

// StepDays returns the repetition step in days, or 0 for monthly series
func (r *AppointmentRecurrence) StepDays() int {
	switch r.RecurrenceType {
	case RecurrenceWeekly:
		return 7
	case RecurrenceBiweekly:
		return 14
	default:
		return 0
	}
}

// RecurrenceProfessional joins additional professionals to a recurrence
// template; the roster is copied onto every generated appointment instance.
type RecurrenceProfessional struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	RecurrenceID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rec_prof" json:"recurrence_id"`
	ProfessionalID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rec_prof;index" json:"professional_id"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Recurrence   AppointmentRecurrence `gorm:"foreignKey:RecurrenceID" json:"recurrence,omitempty"`
	Professional ProfessionalProfile   `gorm:"foreignKey:ProfessionalID" json:"professional,omitempty"`
}

func (RecurrenceProfessional) TableName() string {
	return "recurrence_professionals"
}
