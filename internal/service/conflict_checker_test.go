package service

import (
	"testing"
	"time"

	"go-clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
)

func slot(hour, durationMinutes int) (time.Time, time.Time) {
	start := time.Date(2026, time.March, 2, hour, 0, 0, 0, time.UTC)
	return start, start.Add(time.Duration(durationMinutes) * time.Minute)
}

func booked(hour, durationMinutes int) entity.Appointment {
	start, end := slot(hour, durationMinutes)
	return entity.Appointment{
		ID:          uuid.New(),
		ScheduledAt: start,
		EndAt:       end,
	}
}

func TestEvaluateCandidatesOrdering(t *testing.T) {
	existing := []entity.Appointment{
		booked(10, 60),
		booked(15, 60),
	}

	start9, end9 := slot(9, 30)
	start10, end10 := slot(10, 30)
	start15, end15 := slot(15, 30)
	start12, end12 := slot(12, 30)

	candidates := []CandidateSlot{
		{ScheduledAt: start15, EndAt: end15}, // collides with 15:00
		{ScheduledAt: start9, EndAt: end9},   // free
		{ScheduledAt: start10, EndAt: end10}, // collides with 10:00
		{ScheduledAt: start12, EndAt: end12}, // free
	}

	conflicts := EvaluateCandidates(existing, candidates, 0)
	if len(conflicts) != 2 {
		t.Fatalf("expected 2 conflicts, got %d", len(conflicts))
	}
	if conflicts[0].Index != 0 || conflicts[1].Index != 2 {
		t.Errorf("expected conflicts at indexes 0 and 2, got %d and %d",
			conflicts[0].Index, conflicts[1].Index)
	}
	if !conflicts[0].ScheduledAt.Equal(start15) {
		t.Errorf("expected first conflict at %s, got %s", start15, conflicts[0].ScheduledAt)
	}
	if conflicts[1].Conflicting.ID != existing[0].ID {
		t.Errorf("expected second conflict against the 10:00 booking")
	}
}

func TestEvaluateCandidatesBuffer(t *testing.T) {
	// Existing booking 10:00-11:00. A candidate at 11:00-11:30 touches it
	// exactly and is fine without a buffer, but a 15 minute buffer makes the
	// calendars too tight.
	existing := []entity.Appointment{booked(10, 60)}
	start, end := slot(11, 30)
	candidates := []CandidateSlot{{ScheduledAt: start, EndAt: end}}

	if got := EvaluateCandidates(existing, candidates, 0); len(got) != 0 {
		t.Errorf("expected no conflicts without buffer, got %d", len(got))
	}
	if got := EvaluateCandidates(existing, candidates, 15*time.Minute); len(got) != 1 {
		t.Errorf("expected 1 conflict with 15m buffer, got %d", len(got))
	}
}

func TestEvaluateCandidatesFirstCollisionPerCandidate(t *testing.T) {
	// Both existing bookings overlap the candidate; only the first is
	// reported.
	existing := []entity.Appointment{
		booked(10, 120),
		booked(10, 60),
	}
	start, end := slot(10, 30)
	conflicts := EvaluateCandidates(existing, []CandidateSlot{{ScheduledAt: start, EndAt: end}}, 0)
	if len(conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %d", len(conflicts))
	}
	if conflicts[0].Conflicting.ID != existing[0].ID {
		t.Errorf("expected the first loaded booking to be reported")
	}
}
