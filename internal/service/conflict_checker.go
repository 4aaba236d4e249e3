package service

import (
	"time"

	"go-clinic-scheduling/internal/domain/entity"
	"go-clinic-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ConflictCheckInput describes one candidate booking to test against the
// participating professionals' calendars.
type ConflictCheckInput struct {
	ProfessionalID          uuid.UUID
	AdditionalProfessionals []uuid.UUID
	ScheduledAt             time.Time
	EndAt                   time.Time
	BufferMinutes           int
	ExcludeAppointmentID    *uuid.UUID
	ExcludeGroupID          *uuid.UUID
}

// CandidateSlot is one (start, end) pair in a bulk conflict check
type CandidateSlot struct {
	ScheduledAt time.Time
	EndAt       time.Time
}

// SlotConflict reports a collision for the candidate at Index
type SlotConflict struct {
	Index       int
	ScheduledAt time.Time
	Conflicting entity.Appointment
}

// ConflictChecker detects double-bookings. Callers must run checks inside the
// same transaction as the write that depends on the result, so two concurrent
// bookings serialize at the database instead of both passing the check.
type ConflictChecker struct {
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
}

func NewConflictChecker(log *logrus.Logger, appointmentRepo repository.AppointmentRepository) *ConflictChecker {
	return &ConflictChecker{
		log:             log,
		appointmentRepo: appointmentRepo,
	}
}

// Check returns the first blocking appointment colliding with the candidate
// on any participant's calendar, or nil when the slot is free.
func (c *ConflictChecker) Check(db *gorm.DB, in ConflictCheckInput) (*entity.Appointment, error) {
	buffer := time.Duration(in.BufferMinutes) * time.Minute
	professionalIDs := append([]uuid.UUID{in.ProfessionalID}, in.AdditionalProfessionals...)

	// Widen the window by the buffer so bookings adjacent to the candidate
	// are loaded and tested by the precise predicate.
	existing, err := c.appointmentRepo.FindBlockingInWindow(
		db,
		professionalIDs,
		in.ScheduledAt.Add(-buffer),
		in.EndAt.Add(buffer),
		repository.ConflictExclusion{
			AppointmentID: in.ExcludeAppointmentID,
			GroupID:       in.ExcludeGroupID,
		},
	)
	if err != nil {
		c.log.Warnf("Failed to load blocking appointments: %+v", err)
		return nil, err
	}

	for i := range existing {
		if existing[i].OverlapsWithBuffer(in.ScheduledAt, in.EndAt, buffer) {
			return &existing[i], nil
		}
	}
	return nil, nil
}

// CheckBulk evaluates many candidate slots against one professional's
// calendar in a single query pass, returning conflicts ordered by input
// index. Used to validate every instance of a series mutation before
// committing any change.
func (c *ConflictChecker) CheckBulk(db *gorm.DB, professionalID uuid.UUID, additionalProfessionals []uuid.UUID, candidates []CandidateSlot, bufferMinutes int, exclude repository.ConflictExclusion) ([]SlotConflict, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	buffer := time.Duration(bufferMinutes) * time.Minute
	professionalIDs := append([]uuid.UUID{professionalID}, additionalProfessionals...)

	windowStart := candidates[0].ScheduledAt
	windowEnd := candidates[0].EndAt
	for _, candidate := range candidates[1:] {
		if candidate.ScheduledAt.Before(windowStart) {
			windowStart = candidate.ScheduledAt
		}
		if candidate.EndAt.After(windowEnd) {
			windowEnd = candidate.EndAt
		}
	}

	existing, err := c.appointmentRepo.FindBlockingInWindow(
		db,
		professionalIDs,
		windowStart.Add(-buffer),
		windowEnd.Add(buffer),
		exclude,
	)
	if err != nil {
		c.log.Warnf("Failed to load blocking appointments for bulk check: %+v", err)
		return nil, err
	}

	return EvaluateCandidates(existing, candidates, buffer), nil
}

// EvaluateCandidates is the pure pass of CheckBulk: it tests every candidate
// against the loaded calendar and reports the first collision per candidate,
// ordered by input index.
func EvaluateCandidates(existing []entity.Appointment, candidates []CandidateSlot, buffer time.Duration) []SlotConflict {
	var conflicts []SlotConflict
	for i, candidate := range candidates {
		for j := range existing {
			if existing[j].OverlapsWithBuffer(candidate.ScheduledAt, candidate.EndAt, buffer) {
				conflicts = append(conflicts, SlotConflict{
					Index:       i,
					ScheduledAt: candidate.ScheduledAt,
					Conflicting: existing[j],
				})
				break
			}
		}
	}
	return conflicts
}
