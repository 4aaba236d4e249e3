package entity

import (
	"testing"
	"time"
)

func TestDateListContains(t *testing.T) {
	list := DateList{"2026-03-02", "2026-03-09"}

	if !list.Contains(time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)) {
		t.Error("expected 2026-03-02 to be contained")
	}
	if list.Contains(time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)) {
		t.Error("did not expect 2026-03-03 to be contained")
	}
	if (DateList{}).Contains(time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)) {
		t.Error("empty list must contain nothing")
	}
}

func TestGroupMembershipIsActiveOn(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
	}
	left := day(20)

	member := &GroupMembership{JoinedAt: day(10), LeftAt: &left}

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"before joining", day(9), false},
		{"joining day", day(10), true},
		{"while active", day(15), true},
		{"leaving day", day(20), true},
		{"after leaving", day(21), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := member.IsActiveOn(tt.date); got != tt.want {
				t.Errorf("IsActiveOn(%s) = %v, want %v", tt.date.Format("2006-01-02"), got, tt.want)
			}
		})
	}

	open := &GroupMembership{JoinedAt: day(10)}
	if !open.IsActiveOn(day(25)) {
		t.Error("membership without left_at must stay active")
	}
}
