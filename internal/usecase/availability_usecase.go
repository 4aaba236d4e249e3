package usecase

import (
	"context"
	"errors"
	"time"

	"go-clinic-scheduling/internal/converter"
	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/domain/entity"
	"go-clinic-scheduling/internal/domain/repository"
	"go-clinic-scheduling/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrExceptionNotFound      = errors.New("availability exception not found")
	ErrRuleTimesInverted      = errors.New("rule end time must be after start time")
	ErrExceptionTimesRequired = errors.New("partial exception requires both start and end time")
	ErrDuplicateFullDay       = errors.New("a full-day exception already exists for this date")
	ErrExceptionOverlap       = errors.New("a partial exception overlapping this range already exists")
	ErrNotOwnCalendar         = errors.New("cannot manage another professional's availability")
)

type AvailabilityUsecase interface {
	SaveRules(ctx context.Context, req *dto.SaveAvailabilityRulesRequest) (*dto.AvailabilityRuleListResponse, error)
	ListRules(ctx context.Context, professionalID uuid.UUID) (*dto.AvailabilityRuleListResponse, error)
	CreateException(ctx context.Context, req *dto.CreateExceptionRequest) (*dto.ExceptionResponse, error)
	ListExceptions(ctx context.Context, professionalID uuid.UUID, from, to string) (*dto.ExceptionListResponse, error)
	DeleteException(ctx context.Context, id uuid.UUID) error
}

type availabilityUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	loc              *time.Location
	availabilityRepo repository.AvailabilityRepository
	auditService     service.AuditService
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	loc *time.Location,
	availabilityRepo repository.AvailabilityRepository,
	auditService service.AuditService,
) AvailabilityUsecase {
	return &availabilityUsecase{
		db:               db,
		log:              log,
		loc:              loc,
		availabilityRepo: availabilityRepo,
		auditService:     auditService,
	}
}

// canManage enforces scope: professionals manage only their own calendar
func canManage(act actor, professionalID uuid.UUID) bool {
	if !act.scopedToOwn(service.ResourceAvailability, service.ActionWrite) {
		return true
	}
	return professionalID == act.UserID
}

// SaveRules replaces the professional's whole weekly rule set in one
// transaction: delete everything, recreate the request's rules.
func (u *availabilityUsecase) SaveRules(ctx context.Context, req *dto.SaveAvailabilityRulesRequest) (*dto.AvailabilityRuleListResponse, error) {
	act, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !canManage(act, req.ProfessionalID) {
		return nil, ErrNotOwnCalendar
	}

	rules := make([]*entity.AvailabilityRule, len(req.Rules))
	for i, input := range req.Rules {
		if input.EndTime <= input.StartTime {
			return nil, ErrRuleTimesInverted
		}
		rules[i] = &entity.AvailabilityRule{
			ProfessionalID: req.ProfessionalID,
			DayOfWeek:      input.DayOfWeek,
			StartTime:      input.StartTime,
			EndTime:        input.EndTime,
			IsActive:       input.IsActive,
		}
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.availabilityRepo.ReplaceRules(tx, req.ProfessionalID, rules); err != nil {
		u.log.Errorf("Failed to replace availability rules for %s: %+v", req.ProfessionalID, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &act.UserID, entity.AuditActionAvailabilitySave,
		"availability_rules", req.ProfessionalID.String(), nil,
		entity.JSON{"rules": len(rules)}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	saved := make([]entity.AvailabilityRule, len(rules))
	for i, rule := range rules {
		saved[i] = *rule
	}

	u.log.Infof("Availability rules saved: professional=%s, rules=%d", req.ProfessionalID, len(rules))
	return &dto.AvailabilityRuleListResponse{
		Rules: converter.AvailabilityRulesToResponses(saved),
		Total: len(saved),
	}, nil
}

func (u *availabilityUsecase) ListRules(ctx context.Context, professionalID uuid.UUID) (*dto.AvailabilityRuleListResponse, error) {
	if _, err := actorFromContext(ctx); err != nil {
		return nil, err
	}

	rules, err := u.availabilityRepo.FindRulesByProfessional(u.db.WithContext(ctx), professionalID)
	if err != nil {
		u.log.Warnf("Failed to list availability rules: %+v", err)
		return nil, err
	}

	return &dto.AvailabilityRuleListResponse{
		Rules: converter.AvailabilityRulesToResponses(rules),
		Total: len(rules),
	}, nil
}

// CreateException adds a date override. At most one full-day exception per
// date; partial exceptions must not overlap each other.
func (u *availabilityUsecase) CreateException(ctx context.Context, req *dto.CreateExceptionRequest) (*dto.ExceptionResponse, error) {
	act, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !canManage(act, req.ProfessionalID) {
		return nil, ErrNotOwnCalendar
	}

	date, err := parseDateIn(req.Date, u.loc)
	if err != nil {
		return nil, err
	}

	fullDay := req.StartTime == nil && req.EndTime == nil
	if !fullDay {
		if req.StartTime == nil || req.EndTime == nil {
			return nil, ErrExceptionTimesRequired
		}
		if *req.EndTime <= *req.StartTime {
			return nil, ErrRuleTimesInverted
		}
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	existing, err := u.availabilityRepo.FindExceptionsByDate(tx, req.ProfessionalID, date)
	if err != nil {
		return nil, err
	}
	for i := range existing {
		if fullDay && existing[i].IsFullDay() {
			return nil, ErrDuplicateFullDay
		}
		if !fullDay && !existing[i].IsFullDay() &&
			*existing[i].StartTime < *req.EndTime && *req.StartTime < *existing[i].EndTime {
			return nil, ErrExceptionOverlap
		}
	}

	exception := &entity.AvailabilityException{
		ProfessionalID: req.ProfessionalID,
		Date:           date,
		IsAvailable:    req.IsAvailable,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Reason:         req.Reason,
	}
	if err := u.availabilityRepo.CreateException(tx, exception); err != nil {
		u.log.Errorf("Failed to create availability exception: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &act.UserID, entity.AuditActionExceptionCreate,
		"availability_exception", exception.ID.String(), exception); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	u.log.Infof("Availability exception created: professional=%s, date=%s", req.ProfessionalID, req.Date)
	return converter.ExceptionToResponse(exception), nil
}

func (u *availabilityUsecase) ListExceptions(ctx context.Context, professionalID uuid.UUID, from, to string) (*dto.ExceptionListResponse, error) {
	if _, err := actorFromContext(ctx); err != nil {
		return nil, err
	}

	start, err := parseDateIn(from, u.loc)
	if err != nil {
		return nil, err
	}
	end, err := parseDateIn(to, u.loc)
	if err != nil {
		return nil, err
	}

	exceptions, err := u.availabilityRepo.FindExceptionsInRange(u.db.WithContext(ctx), professionalID, start, end)
	if err != nil {
		u.log.Warnf("Failed to list availability exceptions: %+v", err)
		return nil, err
	}

	return &dto.ExceptionListResponse{
		Exceptions: converter.ExceptionsToResponses(exceptions),
		Total:      len(exceptions),
	}, nil
}

func (u *availabilityUsecase) DeleteException(ctx context.Context, id uuid.UUID) error {
	act, err := actorFromContext(ctx)
	if err != nil {
		return err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	exception, err := u.availabilityRepo.FindExceptionByID(tx, id)
	if err != nil {
		return err
	}
	if exception == nil {
		return ErrExceptionNotFound
	}
	if !canManage(act, exception.ProfessionalID) {
		return ErrNotOwnCalendar
	}

	rows, err := u.availabilityRepo.DeleteException(tx, id)
	if err != nil {
		u.log.Errorf("Failed to delete availability exception %s: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrExceptionNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, &act.UserID, entity.AuditActionExceptionDelete,
		"availability_exception", id.String(), exception); err != nil {
		return err
	}

	return tx.Commit().Error
}
