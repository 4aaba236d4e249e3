package service

import (
	"errors"
	"time"

	"go-clinic-scheduling/internal/domain/entity"
)

var (
	ErrInvalidRecurrenceType = errors.New("invalid recurrence type")
	ErrMissingEndDate        = errors.New("recurrence end type BY_DATE requires an end date")
	ErrMissingOccurrences    = errors.New("recurrence end type BY_OCCURRENCES requires an occurrence count")
	ErrMissingHorizon        = errors.New("indefinite recurrence requires a generation horizon")
	ErrBadTimeOfDay          = errors.New("invalid time of day, use HH:MM")
)

// Occurrence is one computed instance of a recurring series
type Occurrence struct {
	Index       int
	Date        time.Time // midnight in the clinic timezone
	ScheduledAt time.Time
	EndAt       time.Time
}

// RecurrenceParams drives date generation for a series.
// Exactly one of EndDate/Occurrences/Horizon bounds the sequence, depending
// on EndType: BY_DATE uses EndDate (inclusive), BY_OCCURRENCES counts
// instances including the first, INDEFINITE generates up to Horizon
// (inclusive) and is extended in rolling windows by the extension job.
type RecurrenceParams struct {
	StartDate       time.Time
	StartTime       string // "HH:mm"
	DurationMinutes int
	Type            entity.RecurrenceType
	EndType         entity.RecurrenceEndType
	EndDate         *time.Time
	Occurrences     *int
	Horizon         *time.Time
}

// hard cap so a BY_DATE bound decades away cannot generate unbounded rows
const maxGeneratedOccurrences = 1000

// CalculateRecurrenceDates produces the ordered sequence of instances for a
// recurrence pattern. WEEKLY steps 7 days, BIWEEKLY 14 days, MONTHLY repeats
// the anchor's day-of-month; months missing that day (e.g. the 31st in
// February) are skipped.
func CalculateRecurrenceDates(params RecurrenceParams) ([]Occurrence, error) {
	hour, minute, err := parseTimeOfDay(params.StartTime)
	if err != nil {
		return nil, err
	}

	var limit time.Time
	switch params.EndType {
	case entity.RecurrenceEndByDate:
		if params.EndDate == nil {
			return nil, ErrMissingEndDate
		}
		limit = *params.EndDate
	case entity.RecurrenceEndByOccurrences:
		if params.Occurrences == nil || *params.Occurrences < 1 {
			return nil, ErrMissingOccurrences
		}
	case entity.RecurrenceEndIndefinite:
		if params.Horizon == nil {
			return nil, ErrMissingHorizon
		}
		limit = *params.Horizon
	default:
		return nil, errors.New("invalid recurrence end type")
	}

	anchor := truncateToDay(params.StartDate)
	duration := time.Duration(params.DurationMinutes) * time.Minute

	var occurrences []Occurrence
	for step := 0; len(occurrences) < maxGeneratedOccurrences; step++ {
		date, ok, err := nthOccurrenceDate(anchor, params.Type, step)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue // month without the anchor's day-of-month
		}

		if params.EndType == entity.RecurrenceEndByOccurrences {
			if len(occurrences) >= *params.Occurrences {
				break
			}
		} else if date.After(limit) {
			break
		}

		scheduledAt := time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location())
		occurrences = append(occurrences, Occurrence{
			Index:       len(occurrences),
			Date:        date,
			ScheduledAt: scheduledAt,
			EndAt:       scheduledAt.Add(duration),
		})

		if params.EndType == entity.RecurrenceEndByOccurrences && len(occurrences) == *params.Occurrences {
			break
		}
	}

	return occurrences, nil
}

// nthOccurrenceDate returns the date of the step-th instance counted from the
// anchor. For MONTHLY, ok=false marks a month that lacks the anchor's
// day-of-month.
func nthOccurrenceDate(anchor time.Time, recurrenceType entity.RecurrenceType, step int) (time.Time, bool, error) {
	switch recurrenceType {
	case entity.RecurrenceWeekly:
		return anchor.AddDate(0, 0, 7*step), true, nil
	case entity.RecurrenceBiweekly:
		return anchor.AddDate(0, 0, 14*step), true, nil
	case entity.RecurrenceMonthly:
		candidate := time.Date(anchor.Year(), anchor.Month()+time.Month(step), anchor.Day(),
			0, 0, 0, 0, anchor.Location())
		// time.Date normalizes overflowing days (Feb 31 -> Mar 3); a changed
		// day-of-month means the target month has no such day.
		if candidate.Day() != anchor.Day() {
			return time.Time{}, false, nil
		}
		return candidate, true, nil
	default:
		return time.Time{}, false, ErrInvalidRecurrenceType
	}
}

// CalculateDayShiftedDates moves each date to the given weekday within its own
// week (Sunday-based), preserving the series' week alignment. Times of day are
// preserved.
func CalculateDayShiftedDates(dates []time.Time, newDayOfWeek int) []time.Time {
	shifted := make([]time.Time, len(dates))
	for i, date := range dates {
		diff := newDayOfWeek - int(date.Weekday())
		shifted[i] = date.AddDate(0, 0, diff)
	}
	return shifted
}

// FitsPattern reports whether a date remains valid under a recurrence pattern
// anchored at the given date: MONTHLY requires the anchor's day-of-month,
// WEEKLY/BIWEEKLY require the date to be reachable from the anchor by whole
// steps of the interval.
func FitsPattern(date, anchor time.Time, recurrenceType entity.RecurrenceType) bool {
	date = truncateToDay(date)
	anchor = truncateToDay(anchor)

	switch recurrenceType {
	case entity.RecurrenceMonthly:
		return date.Day() == anchor.Day() && !date.Before(anchor)
	case entity.RecurrenceWeekly, entity.RecurrenceBiweekly:
		days := calendarDaysBetween(anchor, date)
		if days < 0 {
			return false
		}
		step := 7
		if recurrenceType == entity.RecurrenceBiweekly {
			step = 14
		}
		return days%step == 0
	default:
		return false
	}
}

// calendarDaysBetween counts whole calendar days from a to b. The dates are
// re-expressed in UTC first so DST transitions in the clinic timezone cannot
// shorten a week to 167 wall-clock hours and skew the count.
func calendarDaysBetween(a, b time.Time) int {
	au := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bu := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au) / (24 * time.Hour))
}

// CombineDateTime builds a timestamp from a date and an "HH:mm" string in the
// date's location.
func CombineDateTime(date time.Time, timeOfDay string) (time.Time, error) {
	hour, minute, err := parseTimeOfDay(timeOfDay)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location()), nil
}

func parseTimeOfDay(value string) (int, int, error) {
	parsed, err := time.Parse("15:04", value)
	if err != nil {
		return 0, 0, ErrBadTimeOfDay
	}
	return parsed.Hour(), parsed.Minute(), nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
