package entity

import (
	"testing"
	"time"
)

func appt(status AppointmentStatus) *Appointment {
	blocks := true
	return &Appointment{Status: status, BlocksTime: &blocks}
}

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from AppointmentStatus
		to   AppointmentStatus
		want bool
	}{
		{"schedule to confirmed", AppointmentStatusScheduled, AppointmentStatusConfirmed, true},
		{"schedule to finished", AppointmentStatusScheduled, AppointmentStatusFinished, true},
		{"schedule to no-show", AppointmentStatusScheduled, AppointmentStatusNoShow, true},
		{"schedule to patient cancel", AppointmentStatusScheduled, AppointmentStatusCancelledByPatient, true},
		{"confirmed to finished", AppointmentStatusConfirmed, AppointmentStatusFinished, true},
		{"confirmed to confirmed", AppointmentStatusConfirmed, AppointmentStatusConfirmed, false},
		{"confirmed to professional cancel", AppointmentStatusConfirmed, AppointmentStatusCancelledByProfessional, true},
		{"finished is terminal", AppointmentStatusFinished, AppointmentStatusConfirmed, false},
		{"no-show is terminal", AppointmentStatusNoShow, AppointmentStatusCancelledByPatient, false},
		{"cancelled cannot be confirmed", AppointmentStatusCancelledByPatient, AppointmentStatusConfirmed, false},
		{"cancelled cannot be recancelled", AppointmentStatusCancelledByProfessional, AppointmentStatusCancelledByPatient, false},
		{"cannot jump back to scheduled", AppointmentStatusConfirmed, AppointmentStatusScheduled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := appt(tt.from).CanTransitionTo(tt.to); got != tt.want {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestBlocksCalendar(t *testing.T) {
	blocking := appt(AppointmentStatusScheduled)
	if !blocking.BlocksCalendar() {
		t.Error("scheduled blocking appointment must occupy the calendar")
	}

	cancelled := appt(AppointmentStatusCancelledByPatient)
	if cancelled.BlocksCalendar() {
		t.Error("cancelled appointment must not occupy the calendar")
	}

	nonBlocking := appt(AppointmentStatusScheduled)
	f := false
	nonBlocking.BlocksTime = &f
	if nonBlocking.BlocksCalendar() {
		t.Error("blocks_time=false appointment must not occupy the calendar")
	}

	unset := &Appointment{Status: AppointmentStatusScheduled}
	if unset.BlocksCalendar() {
		t.Error("nil blocks_time must not occupy the calendar")
	}
}

func TestOverlapsWithBuffer(t *testing.T) {
	at := func(hour, minute int) time.Time {
		return time.Date(2026, time.March, 2, hour, minute, 0, 0, time.UTC)
	}
	existing := &Appointment{ScheduledAt: at(10, 0), EndAt: at(11, 0)}

	tests := []struct {
		name   string
		start  time.Time
		end    time.Time
		buffer time.Duration
		want   bool
	}{
		{"fully inside", at(10, 15), at(10, 45), 0, true},
		{"exact same slot", at(10, 0), at(11, 0), 0, true},
		{"overlaps the start", at(9, 30), at(10, 30), 0, true},
		{"overlaps the end", at(10, 30), at(11, 30), 0, true},
		{"adjacent before", at(9, 0), at(10, 0), 0, false},
		{"adjacent after", at(11, 0), at(12, 0), 0, false},
		{"adjacent after within buffer", at(11, 0), at(12, 0), 15 * time.Minute, true},
		{"adjacent before within buffer", at(9, 0), at(10, 0), 15 * time.Minute, true},
		{"clear of the buffer", at(11, 15), at(12, 0), 15 * time.Minute, false},
		{"candidate swallows existing", at(9, 0), at(12, 0), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := existing.OverlapsWithBuffer(tt.start, tt.end, tt.buffer); got != tt.want {
				t.Errorf("OverlapsWithBuffer(%s-%s, %s) = %v, want %v",
					tt.start.Format("15:04"), tt.end.Format("15:04"), tt.buffer, got, tt.want)
			}

			// Symmetry: A colliding with B implies B colliding with A.
			other := &Appointment{ScheduledAt: tt.start, EndAt: tt.end}
			if got := other.OverlapsWithBuffer(existing.ScheduledAt, existing.EndAt, tt.buffer); got != tt.want {
				t.Errorf("overlap must be symmetric: reverse check = %v, want %v", got, tt.want)
			}
		})
	}
}
