package usecase

import (
	"testing"
	"time"

	"go-clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
)

func futureInstance(loc *time.Location, year int, month time.Month, day int) entity.Appointment {
	start := time.Date(year, month, day, 10, 0, 0, 0, loc)
	return entity.Appointment{
		ID:          uuid.New(),
		ScheduledAt: start,
		EndAt:       start.Add(50 * time.Minute),
	}
}

func TestMutationCandidatesRosterOnly(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Fatalf("LoadLocation() error = %v", err)
	}

	future := []entity.Appointment{
		futureInstance(loc, 2026, time.March, 2),
		futureInstance(loc, 2026, time.March, 9),
	}

	// No day shift and an unchanged start time: the candidates handed to
	// the conflict check must be exactly the current slots, so a roster
	// change is validated against the series' real calendar positions.
	candidates, err := mutationCandidates(future, nil, "10:00", 50*time.Minute, loc)
	if err != nil {
		t.Fatalf("mutationCandidates() error = %v", err)
	}
	if len(candidates) != len(future) {
		t.Fatalf("expected %d candidates, got %d", len(future), len(candidates))
	}
	for i := range future {
		if !candidates[i].ScheduledAt.Equal(future[i].ScheduledAt) {
			t.Errorf("candidate %d start = %s, want %s", i, candidates[i].ScheduledAt, future[i].ScheduledAt)
		}
		if !candidates[i].EndAt.Equal(future[i].EndAt) {
			t.Errorf("candidate %d end = %s, want %s", i, candidates[i].EndAt, future[i].EndAt)
		}
	}
}

func TestMutationCandidatesDayShift(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Fatalf("LoadLocation() error = %v", err)
	}

	future := []entity.Appointment{
		futureInstance(loc, 2026, time.March, 2), // Monday
		futureInstance(loc, 2026, time.March, 9),
	}

	wednesday := int(time.Wednesday)
	candidates, err := mutationCandidates(future, &wednesday, "14:00", 50*time.Minute, loc)
	if err != nil {
		t.Fatalf("mutationCandidates() error = %v", err)
	}

	wantDays := []int{4, 11}
	for i, candidate := range candidates {
		if candidate.ScheduledAt.Day() != wantDays[i] {
			t.Errorf("candidate %d shifted to day %d, want %d", i, candidate.ScheduledAt.Day(), wantDays[i])
		}
		if candidate.ScheduledAt.Hour() != 14 {
			t.Errorf("candidate %d start hour = %d, want 14", i, candidate.ScheduledAt.Hour())
		}
	}
}

func TestSplitByPattern(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Fatalf("LoadLocation() error = %v", err)
	}

	future := []entity.Appointment{
		futureInstance(loc, 2026, time.March, 2), // anchor
		futureInstance(loc, 2026, time.March, 9),
		futureInstance(loc, 2026, time.March, 16),
		futureInstance(loc, 2026, time.March, 23),
	}
	oddWeeks := []uuid.UUID{future[1].ID, future[3].ID}

	kept, removed := splitByPattern(future, entity.RecurrenceBiweekly, loc)

	if len(kept) != 2 {
		t.Fatalf("expected 2 kept instances, got %d", len(kept))
	}
	if kept[0].ScheduledAt.Day() != 2 || kept[1].ScheduledAt.Day() != 16 {
		t.Errorf("kept days = %d, %d, want 2, 16", kept[0].ScheduledAt.Day(), kept[1].ScheduledAt.Day())
	}

	if len(removed) != 2 {
		t.Fatalf("expected 2 removed IDs, got %d", len(removed))
	}
	for i, id := range removed {
		if id != oddWeeks[i] {
			t.Errorf("removed[%d] = %s, want %s", i, id, oddWeeks[i])
		}
	}

	// Survivors carry no pruned IDs, so later bulk updates and roster
	// replacements touch only rows that still exist.
	for _, instance := range kept {
		for _, id := range removed {
			if instance.ID == id {
				t.Errorf("kept instance %s was also marked removed", id)
			}
		}
	}
}

func TestSplitByPatternEmpty(t *testing.T) {
	loc := time.UTC
	kept, removed := splitByPattern(nil, entity.RecurrenceWeekly, loc)
	if len(kept) != 0 || removed != nil {
		t.Errorf("empty input must yield no kept instances and no removals")
	}
}
