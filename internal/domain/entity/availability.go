package entity

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilityRule represents a professional's recurring weekly open hours.
// Multiple rules per day are allowed (split shifts). Rules are persisted with
// a replace-all strategy: each save deletes and recreates the full set.
type AvailabilityRule struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProfessionalID uuid.UUID `gorm:"type:uuid;not null;index" json:"professional_id"`
	DayOfWeek      int       `gorm:"not null" json:"day_of_week"` // 0=Sunday ... 6=Saturday
	StartTime      string    `gorm:"type:varchar(5);not null" json:"start_time"` // "HH:mm"
	EndTime        string    `gorm:"type:varchar(5);not null" json:"end_time"`   // "HH:mm"
	IsActive       *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Professional ProfessionalProfile `gorm:"foreignKey:ProfessionalID" json:"professional,omitempty"`
}

func (AvailabilityRule) TableName() string {
	return "availability_rules"
}

// Contains reports whether the candidate range fits fully inside the rule's
// open hours. Comparisons are lexicographic on zero-padded "HH:mm", which is
// valid because the format is fixed-width.
func (r *AvailabilityRule) Contains(startTime, endTime string) bool {
	return r.StartTime <= startTime && endTime <= r.EndTime
}

// AvailabilityException is a date-specific override of the weekly rules.
// A full-day exception has nil start/end times; a partial exception blocks a
// sub-range of the day.
type AvailabilityException struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProfessionalID uuid.UUID `gorm:"type:uuid;not null;index" json:"professional_id"`
	Date           time.Time `gorm:"type:date;not null;index" json:"date"`
	IsAvailable    *bool     `gorm:"not null;default:false" json:"is_available"`
	StartTime      *string   `gorm:"type:varchar(5)" json:"start_time,omitempty"` // "HH:mm"
	EndTime        *string   `gorm:"type:varchar(5)" json:"end_time,omitempty"`   // "HH:mm"
	Reason         string    `gorm:"type:text" json:"reason,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Professional ProfessionalProfile `gorm:"foreignKey:ProfessionalID" json:"professional,omitempty"`
}

func (AvailabilityException) TableName() string {
	return "availability_exceptions"
}

// IsFullDay reports whether the exception covers the whole day
func (e *AvailabilityException) IsFullDay() bool {
	return e.StartTime == nil || e.EndTime == nil
}

// Blocks reports whether the exception denies the candidate "HH:mm" range.
// A full-day unavailable exception blocks unconditionally; a partial one
// blocks when [candidateStart, candidateEnd) intersects [StartTime, EndTime).
func (e *AvailabilityException) Blocks(candidateStart, candidateEnd string) bool {
	if e.IsAvailable != nil && *e.IsAvailable {
		return false
	}
	if e.IsFullDay() {
		return true
	}
	return *e.StartTime < candidateEnd && candidateStart < *e.EndTime
}

// Opens reports whether an is_available exception grants the candidate
// "HH:mm" range on its date even where no weekly rule covers it. A full-day
// available exception opens the whole day; a partial one opens only ranges
// it fully contains.
func (e *AvailabilityException) Opens(candidateStart, candidateEnd string) bool {
	if e.IsAvailable == nil || !*e.IsAvailable {
		return false
	}
	if e.IsFullDay() {
		return true
	}
	return *e.StartTime <= candidateStart && candidateEnd <= *e.EndTime
}
