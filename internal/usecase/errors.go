package usecase

import (
	"fmt"
	"time"

	"go-clinic-scheduling/internal/delivery/dto"
)

// Conflict codes carried in 409 bodies
const (
	ConflictCodeSlotTaken          = "SLOT_CONFLICT"
	ConflictCodeSeriesConflict     = "SERIES_CONFLICT"
	ConflictCodeDayChangeConflicts = "DAY_CHANGE_CONFLICTS"
)

// ConflictError reports a calendar collision. Handlers map it to HTTP 409
// with a structured body; series operations attach the occurrence index of
// the first colliding instance.
type ConflictError struct {
	Code            string
	ConflictDate    time.Time
	OccurrenceIndex *int
	Conflicts       []dto.ConflictingAppointmentResponse
}

func (e *ConflictError) Error() string {
	if e.OccurrenceIndex != nil {
		return fmt.Sprintf("scheduling conflict on %s (occurrence %d)",
			e.ConflictDate.Format("2006-01-02"), *e.OccurrenceIndex)
	}
	return fmt.Sprintf("scheduling conflict on %s", e.ConflictDate.Format("2006-01-02"))
}

// AvailabilityError reports a slot outside the professional's configured
// hours. Handlers map it to HTTP 422.
type AvailabilityError struct {
	Reason          string
	ConflictDate    time.Time
	OccurrenceIndex *int
}

func (e *AvailabilityError) Error() string {
	return fmt.Sprintf("professional unavailable on %s: %s",
		e.ConflictDate.Format("2006-01-02"), e.Reason)
}
