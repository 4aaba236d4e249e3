package service

import (
	"time"

	"go-clinic-scheduling/internal/domain/entity"
	"go-clinic-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Denial reasons for availability checks
const (
	DenialNone             = ""
	DenialNoRule           = "NO_RULE"
	DenialOutsideRule      = "OUTSIDE_RULE"
	DenialFullDayException = "FULL_DAY_EXCEPTION"
	DenialPartialException = "PARTIAL_EXCEPTION"
)

// AvailabilityDecision is the result of evaluating a candidate slot against a
// professional's weekly rules and date exceptions.
type AvailabilityDecision struct {
	Allowed bool
	Reason  string
	Date    time.Time
}

// AvailabilityChecker decides whether a candidate (date, start, end) falls
// inside a professional's configured open hours.
type AvailabilityChecker struct {
	log              *logrus.Logger
	availabilityRepo repository.AvailabilityRepository
}

func NewAvailabilityChecker(log *logrus.Logger, availabilityRepo repository.AvailabilityRepository) *AvailabilityChecker {
	return &AvailabilityChecker{
		log:              log,
		availabilityRepo: availabilityRepo,
	}
}

// Evaluate loads the professional's rules for the date's weekday and the
// date's exceptions, then applies EvaluateSlot.
func (c *AvailabilityChecker) Evaluate(db *gorm.DB, professionalID uuid.UUID, date time.Time, startTime, endTime string) (AvailabilityDecision, error) {
	rules, err := c.availabilityRepo.FindActiveRulesForDay(db, professionalID, int(date.Weekday()))
	if err != nil {
		c.log.Warnf("Failed to load availability rules: %+v", err)
		return AvailabilityDecision{}, err
	}

	exceptions, err := c.availabilityRepo.FindExceptionsByDate(db, professionalID, date)
	if err != nil {
		c.log.Warnf("Failed to load availability exceptions: %+v", err)
		return AvailabilityDecision{}, err
	}

	return EvaluateSlot(rules, exceptions, date, startTime, endTime), nil
}

// EvaluateSlot is the pure decision: blocking exceptions deny first (a
// full-day exception wins over any rule), then the range must fall fully
// inside one weekly rule or inside an is_available exception that opens
// extra hours on the date.
func EvaluateSlot(rules []entity.AvailabilityRule, exceptions []entity.AvailabilityException, date time.Time, startTime, endTime string) AvailabilityDecision {
	// Blocking exceptions take precedence over everything.
	for i := range exceptions {
		e := &exceptions[i]
		if !e.Blocks(startTime, endTime) {
			continue
		}
		reason := DenialPartialException
		if e.IsFullDay() {
			reason = DenialFullDayException
		}
		return AvailabilityDecision{Allowed: false, Reason: reason, Date: date}
	}

	for i := range rules {
		if rules[i].Contains(startTime, endTime) {
			return AvailabilityDecision{Allowed: true, Date: date}
		}
	}

	// An available exception opens hours the weekly rules do not cover.
	for i := range exceptions {
		if exceptions[i].Opens(startTime, endTime) {
			return AvailabilityDecision{Allowed: true, Date: date}
		}
	}

	if len(rules) == 0 {
		return AvailabilityDecision{Allowed: false, Reason: DenialNoRule, Date: date}
	}
	return AvailabilityDecision{Allowed: false, Reason: DenialOutsideRule, Date: date}
}
