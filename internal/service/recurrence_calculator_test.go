package service

import (
	"testing"
	"time"

	"go-clinic-scheduling/internal/domain/entity"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestCalculateRecurrenceDatesWeekly(t *testing.T) {
	count := 4
	occurrences, err := CalculateRecurrenceDates(RecurrenceParams{
		StartDate:       date(2026, time.February, 23), // a Monday
		StartTime:       "10:00",
		DurationMinutes: 50,
		Type:            entity.RecurrenceWeekly,
		EndType:         entity.RecurrenceEndByOccurrences,
		Occurrences:     &count,
	})
	if err != nil {
		t.Fatalf("CalculateRecurrenceDates() error = %v", err)
	}

	want := []time.Time{
		date(2026, time.February, 23),
		date(2026, time.March, 2),
		date(2026, time.March, 9),
		date(2026, time.March, 16),
	}
	if len(occurrences) != len(want) {
		t.Fatalf("expected %d occurrences, got %d", len(want), len(occurrences))
	}
	for i, occ := range occurrences {
		if !occ.Date.Equal(want[i]) {
			t.Errorf("occurrence %d: expected %s, got %s", i, want[i], occ.Date)
		}
		if occ.Index != i {
			t.Errorf("occurrence %d: expected index %d, got %d", i, i, occ.Index)
		}
		if occ.ScheduledAt.Hour() != 10 || occ.ScheduledAt.Minute() != 0 {
			t.Errorf("occurrence %d: expected 10:00 start, got %s", i, occ.ScheduledAt)
		}
		if got := occ.EndAt.Sub(occ.ScheduledAt); got != 50*time.Minute {
			t.Errorf("occurrence %d: expected 50m duration, got %s", i, got)
		}
	}
}

func TestCalculateRecurrenceDatesBiweeklyByDate(t *testing.T) {
	end := date(2026, time.April, 1)
	occurrences, err := CalculateRecurrenceDates(RecurrenceParams{
		StartDate:       date(2026, time.March, 3),
		StartTime:       "14:30",
		DurationMinutes: 60,
		Type:            entity.RecurrenceBiweekly,
		EndType:         entity.RecurrenceEndByDate,
		EndDate:         &end,
	})
	if err != nil {
		t.Fatalf("CalculateRecurrenceDates() error = %v", err)
	}

	want := []time.Time{
		date(2026, time.March, 3),
		date(2026, time.March, 17),
		date(2026, time.March, 31),
	}
	if len(occurrences) != len(want) {
		t.Fatalf("expected %d occurrences, got %d", len(want), len(occurrences))
	}
	for i, occ := range occurrences {
		if !occ.Date.Equal(want[i]) {
			t.Errorf("occurrence %d: expected %s, got %s", i, want[i], occ.Date)
		}
	}
}

func TestCalculateRecurrenceDatesMonthlySkipsShortMonths(t *testing.T) {
	// Anchored on the 31st: February, April and June have no 31st and must
	// be skipped without consuming an occurrence slot.
	count := 4
	occurrences, err := CalculateRecurrenceDates(RecurrenceParams{
		StartDate:       date(2026, time.January, 31),
		StartTime:       "09:00",
		DurationMinutes: 30,
		Type:            entity.RecurrenceMonthly,
		EndType:         entity.RecurrenceEndByOccurrences,
		Occurrences:     &count,
	})
	if err != nil {
		t.Fatalf("CalculateRecurrenceDates() error = %v", err)
	}

	want := []time.Time{
		date(2026, time.January, 31),
		date(2026, time.March, 31),
		date(2026, time.May, 31),
		date(2026, time.July, 31),
	}
	if len(occurrences) != len(want) {
		t.Fatalf("expected %d occurrences, got %d", len(want), len(occurrences))
	}
	for i, occ := range occurrences {
		if !occ.Date.Equal(want[i]) {
			t.Errorf("occurrence %d: expected %s, got %s", i, want[i], occ.Date)
		}
	}
}

func TestCalculateRecurrenceDatesIndefiniteHorizon(t *testing.T) {
	horizon := date(2026, time.March, 31)
	occurrences, err := CalculateRecurrenceDates(RecurrenceParams{
		StartDate:       date(2026, time.March, 2),
		StartTime:       "08:00",
		DurationMinutes: 45,
		Type:            entity.RecurrenceWeekly,
		EndType:         entity.RecurrenceEndIndefinite,
		Horizon:         &horizon,
	})
	if err != nil {
		t.Fatalf("CalculateRecurrenceDates() error = %v", err)
	}

	// Mar 2, 9, 16, 23, 30 are all within the horizon; Apr 6 is not.
	if len(occurrences) != 5 {
		t.Fatalf("expected 5 occurrences, got %d", len(occurrences))
	}
	last := occurrences[len(occurrences)-1]
	if !last.Date.Equal(date(2026, time.March, 30)) {
		t.Errorf("expected last occurrence on 2026-03-30, got %s", last.Date)
	}
}

func TestCalculateRecurrenceDatesValidation(t *testing.T) {
	count := 2
	end := date(2026, time.June, 1)

	tests := []struct {
		name    string
		params  RecurrenceParams
		wantErr error
	}{
		{
			name: "bad time of day",
			params: RecurrenceParams{
				StartDate:   date(2026, time.March, 2),
				StartTime:   "25:99",
				Type:        entity.RecurrenceWeekly,
				EndType:     entity.RecurrenceEndByOccurrences,
				Occurrences: &count,
			},
			wantErr: ErrBadTimeOfDay,
		},
		{
			name: "by date without end date",
			params: RecurrenceParams{
				StartDate: date(2026, time.March, 2),
				StartTime: "10:00",
				Type:      entity.RecurrenceWeekly,
				EndType:   entity.RecurrenceEndByDate,
			},
			wantErr: ErrMissingEndDate,
		},
		{
			name: "by occurrences without count",
			params: RecurrenceParams{
				StartDate: date(2026, time.March, 2),
				StartTime: "10:00",
				Type:      entity.RecurrenceWeekly,
				EndType:   entity.RecurrenceEndByOccurrences,
			},
			wantErr: ErrMissingOccurrences,
		},
		{
			name: "indefinite without horizon",
			params: RecurrenceParams{
				StartDate: date(2026, time.March, 2),
				StartTime: "10:00",
				Type:      entity.RecurrenceWeekly,
				EndType:   entity.RecurrenceEndIndefinite,
			},
			wantErr: ErrMissingHorizon,
		},
		{
			name: "unknown recurrence type",
			params: RecurrenceParams{
				StartDate: date(2026, time.March, 2),
				StartTime: "10:00",
				Type:      entity.RecurrenceType("YEARLY"),
				EndType:   entity.RecurrenceEndByDate,
				EndDate:   &end,
			},
			wantErr: ErrInvalidRecurrenceType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CalculateRecurrenceDates(tt.params)
			if err != tt.wantErr {
				t.Errorf("CalculateRecurrenceDates() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCalculateDayShiftedDates(t *testing.T) {
	dates := []time.Time{
		date(2026, time.March, 2),  // Monday
		date(2026, time.March, 9),  // Monday
		date(2026, time.March, 16), // Monday
	}

	// Monday -> Wednesday shifts forward two days within each week
	shifted := CalculateDayShiftedDates(dates, int(time.Wednesday))
	want := []time.Time{
		date(2026, time.March, 4),
		date(2026, time.March, 11),
		date(2026, time.March, 18),
	}
	for i := range shifted {
		if !shifted[i].Equal(want[i]) {
			t.Errorf("shifted[%d]: expected %s, got %s", i, want[i], shifted[i])
		}
	}

	// Wednesday -> Sunday shifts backward within the same Sunday-based week
	back := CalculateDayShiftedDates([]time.Time{date(2026, time.March, 4)}, int(time.Sunday))
	if !back[0].Equal(date(2026, time.March, 1)) {
		t.Errorf("expected 2026-03-01, got %s", back[0])
	}
}

func TestFitsPattern(t *testing.T) {
	anchor := date(2026, time.March, 2) // Monday

	tests := []struct {
		name           string
		date           time.Time
		recurrenceType entity.RecurrenceType
		want           bool
	}{
		{"weekly aligned", date(2026, time.March, 16), entity.RecurrenceWeekly, true},
		{"weekly misaligned day", date(2026, time.March, 17), entity.RecurrenceWeekly, false},
		{"weekly before anchor", date(2026, time.February, 23), entity.RecurrenceWeekly, false},
		{"biweekly aligned", date(2026, time.March, 30), entity.RecurrenceBiweekly, true},
		{"biweekly odd week", date(2026, time.March, 9), entity.RecurrenceBiweekly, false},
		{"monthly same day", date(2026, time.June, 2), entity.RecurrenceMonthly, true},
		{"monthly different day", date(2026, time.June, 3), entity.RecurrenceMonthly, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FitsPattern(tt.date, anchor, tt.recurrenceType); got != tt.want {
				t.Errorf("FitsPattern(%s) = %v, want %v", tt.date.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestFitsPatternAcrossDST(t *testing.T) {
	// A clock change makes consecutive weeks 167 or 169 wall-clock hours
	// apart; the day count must stay calendar-based.
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("LoadLocation() error = %v", err)
	}

	anchor := time.Date(2026, time.March, 2, 0, 0, 0, 0, loc)   // Monday before spring forward
	springed := time.Date(2026, time.March, 9, 0, 0, 0, 0, loc) // Monday after
	if !FitsPattern(springed, anchor, entity.RecurrenceWeekly) {
		t.Error("weekly date one calendar week past the anchor must fit across spring forward")
	}
	if !FitsPattern(time.Date(2026, time.March, 16, 0, 0, 0, 0, loc), anchor, entity.RecurrenceBiweekly) {
		t.Error("biweekly date two calendar weeks past the anchor must fit across spring forward")
	}

	fallAnchor := time.Date(2026, time.October, 26, 0, 0, 0, 0, loc) // Monday before fall back
	if !FitsPattern(time.Date(2026, time.November, 2, 0, 0, 0, 0, loc), fallAnchor, entity.RecurrenceWeekly) {
		t.Error("weekly date one calendar week past the anchor must fit across fall back")
	}
	if FitsPattern(time.Date(2026, time.November, 3, 0, 0, 0, 0, loc), fallAnchor, entity.RecurrenceWeekly) {
		t.Error("misaligned weekday must not fit, clock change or not")
	}
}

func TestCombineDateTime(t *testing.T) {
	combined, err := CombineDateTime(date(2026, time.March, 2), "14:30")
	if err != nil {
		t.Fatalf("CombineDateTime() error = %v", err)
	}
	if combined.Hour() != 14 || combined.Minute() != 30 {
		t.Errorf("expected 14:30, got %s", combined)
	}

	if _, err := CombineDateTime(date(2026, time.March, 2), "2pm"); err != ErrBadTimeOfDay {
		t.Errorf("expected ErrBadTimeOfDay, got %v", err)
	}
}
