package service

import (
	"testing"
	"time"

	"go-clinic-scheduling/internal/domain/entity"
)

func boolPtr(v bool) *bool    { return &v }
func strPtr(v string) *string { return &v }

func workdayRule(start, end string) entity.AvailabilityRule {
	return entity.AvailabilityRule{
		DayOfWeek: int(time.Monday),
		StartTime: start,
		EndTime:   end,
		IsActive:  boolPtr(true),
	}
}

func TestEvaluateSlot(t *testing.T) {
	monday := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	rules := []entity.AvailabilityRule{workdayRule("08:00", "12:00"), workdayRule("14:00", "18:00")}

	fullDayOff := entity.AvailabilityException{
		Date:        monday,
		IsAvailable: boolPtr(false),
	}
	lunchBlocked := entity.AvailabilityException{
		Date:        monday,
		IsAvailable: boolPtr(false),
		StartTime:   strPtr("09:00"),
		EndTime:     strPtr("10:00"),
	}
	eveningOpened := entity.AvailabilityException{
		Date:        monday,
		IsAvailable: boolPtr(true),
		StartTime:   strPtr("19:00"),
		EndTime:     strPtr("21:00"),
	}
	fullDayOpened := entity.AvailabilityException{
		Date:        monday,
		IsAvailable: boolPtr(true),
	}

	tests := []struct {
		name       string
		rules      []entity.AvailabilityRule
		exceptions []entity.AvailabilityException
		start      string
		end        string
		allowed    bool
		reason     string
	}{
		{
			name:    "inside morning rule",
			rules:   rules,
			start:   "09:00",
			end:     "10:00",
			allowed: true,
		},
		{
			name:    "exactly fills a rule",
			rules:   rules,
			start:   "14:00",
			end:     "18:00",
			allowed: true,
		},
		{
			name:    "no rules at all",
			start:   "09:00",
			end:     "10:00",
			allowed: false,
			reason:  DenialNoRule,
		},
		{
			name:    "straddles the lunch gap",
			rules:   rules,
			start:   "11:00",
			end:     "15:00",
			allowed: false,
			reason:  DenialOutsideRule,
		},
		{
			name:    "past closing",
			rules:   rules,
			start:   "17:30",
			end:     "18:30",
			allowed: false,
			reason:  DenialOutsideRule,
		},
		{
			name:       "full day exception wins over rules",
			rules:      rules,
			exceptions: []entity.AvailabilityException{fullDayOff},
			start:      "09:00",
			end:        "10:00",
			allowed:    false,
			reason:     DenialFullDayException,
		},
		{
			name:       "partial exception blocks overlapping slot",
			rules:      rules,
			exceptions: []entity.AvailabilityException{lunchBlocked},
			start:      "09:30",
			end:        "10:30",
			allowed:    false,
			reason:     DenialPartialException,
		},
		{
			name:       "partial exception leaves the rest of the day open",
			rules:      rules,
			exceptions: []entity.AvailabilityException{lunchBlocked},
			start:      "10:00",
			end:        "11:00",
			allowed:    true,
		},
		{
			name:       "available exception opens hours past closing",
			rules:      rules,
			exceptions: []entity.AvailabilityException{eveningOpened},
			start:      "19:00",
			end:        "20:00",
			allowed:    true,
		},
		{
			name:       "available exception does not open beyond its window",
			rules:      rules,
			exceptions: []entity.AvailabilityException{eveningOpened},
			start:      "20:30",
			end:        "21:30",
			allowed:    false,
			reason:     DenialOutsideRule,
		},
		{
			name:       "full day available exception opens a ruleless day",
			exceptions: []entity.AvailabilityException{fullDayOpened},
			start:      "09:00",
			end:        "10:00",
			allowed:    true,
		},
		{
			name:       "blocking exception wins over an opening one",
			exceptions: []entity.AvailabilityException{eveningOpened, fullDayOff},
			start:      "19:00",
			end:        "20:00",
			allowed:    false,
			reason:     DenialFullDayException,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := EvaluateSlot(tt.rules, tt.exceptions, monday, tt.start, tt.end)
			if decision.Allowed != tt.allowed {
				t.Errorf("EvaluateSlot() allowed = %v, want %v", decision.Allowed, tt.allowed)
			}
			if decision.Reason != tt.reason {
				t.Errorf("EvaluateSlot() reason = %q, want %q", decision.Reason, tt.reason)
			}
			if !decision.Date.Equal(monday) {
				t.Errorf("EvaluateSlot() date = %s, want %s", decision.Date, monday)
			}
		})
	}
}

func TestExceptionBlocks(t *testing.T) {
	available := entity.AvailabilityException{
		IsAvailable: boolPtr(true),
		StartTime:   strPtr("09:00"),
		EndTime:     strPtr("10:00"),
	}
	if available.Blocks("09:00", "10:00") {
		t.Error("an is_available exception must never block")
	}

	partial := entity.AvailabilityException{
		IsAvailable: boolPtr(false),
		StartTime:   strPtr("09:00"),
		EndTime:     strPtr("10:00"),
	}
	// Touching at a boundary is not an intersection.
	if partial.Blocks("10:00", "11:00") {
		t.Error("adjacent slot must not be blocked")
	}
	if !partial.Blocks("09:59", "10:30") {
		t.Error("overlapping slot must be blocked")
	}
}

func TestExceptionOpens(t *testing.T) {
	opened := entity.AvailabilityException{
		IsAvailable: boolPtr(true),
		StartTime:   strPtr("19:00"),
		EndTime:     strPtr("21:00"),
	}
	if !opened.Opens("19:00", "21:00") {
		t.Error("range filling the window must be opened")
	}
	if opened.Opens("18:30", "20:00") {
		t.Error("range leaking outside the window must not be opened")
	}

	blocked := entity.AvailabilityException{
		IsAvailable: boolPtr(false),
		StartTime:   strPtr("19:00"),
		EndTime:     strPtr("21:00"),
	}
	if blocked.Opens("19:00", "20:00") {
		t.Error("an unavailable exception must never open hours")
	}

	wholeDay := entity.AvailabilityException{IsAvailable: boolPtr(true)}
	if !wholeDay.Opens("07:00", "22:00") {
		t.Error("a full day available exception must open any range")
	}
}
