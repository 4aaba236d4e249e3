package usecase

import (
	"testing"
	"time"

	"go-clinic-scheduling/internal/domain/entity"
	"go-clinic-scheduling/internal/service"
)

func TestParseDateIn(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Fatalf("LoadLocation() error = %v", err)
	}

	parsed, err := parseDateIn("2026-03-02", loc)
	if err != nil {
		t.Fatalf("parseDateIn() error = %v", err)
	}
	if parsed.Location() != loc {
		t.Errorf("expected location %s, got %s", loc, parsed.Location())
	}
	if parsed.Year() != 2026 || parsed.Month() != time.March || parsed.Day() != 2 {
		t.Errorf("unexpected date %s", parsed)
	}

	for _, bad := range []string{"", "02/03/2026", "2026-3-2", "not a date"} {
		if _, err := parseDateIn(bad, loc); err != ErrInvalidDate {
			t.Errorf("parseDateIn(%q) error = %v, want ErrInvalidDate", bad, err)
		}
	}
}

func TestTruncateInLoc(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Fatalf("LoadLocation() error = %v", err)
	}

	// 01:30 UTC on Mar 3 is still Mar 2 in Sao Paulo (UTC-3).
	instant := time.Date(2026, time.March, 3, 1, 30, 0, 0, time.UTC)
	truncated := truncateInLoc(instant, loc)

	if truncated.Day() != 2 || truncated.Month() != time.March {
		t.Errorf("expected local Mar 2, got %s", truncated)
	}
	if truncated.Hour() != 0 || truncated.Minute() != 0 {
		t.Errorf("expected midnight, got %s", truncated)
	}
	if truncated.Location() != loc {
		t.Errorf("expected location %s, got %s", loc, truncated.Location())
	}
}

func TestDurationBetween(t *testing.T) {
	got, err := durationBetween("10:00", "10:50")
	if err != nil {
		t.Fatalf("durationBetween() error = %v", err)
	}
	if got != 50*time.Minute {
		t.Errorf("expected 50m, got %s", got)
	}

	if _, err := durationBetween("10:00", "10:00"); err == nil {
		t.Error("expected error for zero-length range")
	}
	if _, err := durationBetween("11:00", "10:00"); err == nil {
		t.Error("expected error for inverted range")
	}
	if _, err := durationBetween("bad", "10:00"); err != service.ErrBadTimeOfDay {
		t.Errorf("expected ErrBadTimeOfDay, got %v", err)
	}
}

func TestModalityOrDefault(t *testing.T) {
	if got := modalityOrDefault(""); got != entity.ModalityInPerson {
		t.Errorf("expected PRESENCIAL default, got %s", got)
	}
	if got := modalityOrDefault("ONLINE"); got != entity.ModalityOnline {
		t.Errorf("expected ONLINE, got %s", got)
	}
}

func TestConflictErrorMessage(t *testing.T) {
	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

	plain := &ConflictError{Code: ConflictCodeSlotTaken, ConflictDate: day}
	if got := plain.Error(); got != "scheduling conflict on 2026-03-02" {
		t.Errorf("unexpected message %q", got)
	}

	index := 3
	series := &ConflictError{Code: ConflictCodeSeriesConflict, ConflictDate: day, OccurrenceIndex: &index}
	if got := series.Error(); got != "scheduling conflict on 2026-03-02 (occurrence 3)" {
		t.Errorf("unexpected message %q", got)
	}
}
