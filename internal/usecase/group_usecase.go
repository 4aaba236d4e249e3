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
	ErrGroupNotFound       = errors.New("group not found")
	ErrGroupNotOwned       = errors.New("group does not belong to your calendar")
	ErrGroupMemberNotFound = errors.New("patient is not a member of this group")
	ErrBadDateRange        = errors.New("end date must not precede start date")
)

type GroupUsecase interface {
	Create(ctx context.Context, req *dto.CreateGroupRequest) (*dto.GroupResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.GroupResponse, error)
	List(ctx context.Context) (*dto.GroupListResponse, error)
	AddMember(ctx context.Context, groupID uuid.UUID, req *dto.AddGroupMemberRequest) (*dto.GroupResponse, error)
	RemoveMember(ctx context.Context, groupID uuid.UUID, req *dto.RemoveGroupMemberRequest) (*dto.GroupResponse, error)
	GenerateSessions(ctx context.Context, groupID uuid.UUID, req *dto.GenerateSessionsRequest) (*dto.GenerateSessionsResponse, error)
}

type groupUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	loc             *time.Location
	defaultBuffer   int
	groupRepo       repository.GroupRepository
	appointmentRepo repository.AppointmentRepository
	patientRepo     repository.PatientRepository
	conflictChecker *service.ConflictChecker
	auditService    service.AuditService
}

func NewGroupUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	loc *time.Location,
	defaultBuffer int,
	groupRepo repository.GroupRepository,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	conflictChecker *service.ConflictChecker,
	auditService service.AuditService,
) GroupUsecase {
	return &groupUsecase{
		db:              db,
		log:             log,
		loc:             loc,
		defaultBuffer:   defaultBuffer,
		groupRepo:       groupRepo,
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		conflictChecker: conflictChecker,
		auditService:    auditService,
	}
}

func (u *groupUsecase) loadOwned(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.TherapyGroup, actor, error) {
	act, err := actorFromContext(ctx)
	if err != nil {
		return nil, actor{}, err
	}

	group, err := u.groupRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find group %s: %+v", id, err)
		return nil, act, err
	}
	if group == nil {
		return nil, act, ErrGroupNotFound
	}
	if group.ClinicID != act.ClinicID {
		return nil, act, ErrGroupNotOwned
	}
	if act.scopedToOwn(service.ResourceGroups, service.ActionWrite) && group.ProfessionalID != act.UserID {
		return nil, act, ErrGroupNotOwned
	}
	return group, act, nil
}

func (u *groupUsecase) Create(ctx context.Context, req *dto.CreateGroupRequest) (*dto.GroupResponse, error) {
	act, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	professionalID := req.ProfessionalID
	if act.scopedToOwn(service.ResourceGroups, service.ActionWrite) {
		professionalID = act.UserID
	}

	recurrenceType := entity.RecurrenceWeekly
	if req.RecurrenceType != "" {
		recurrenceType = entity.RecurrenceType(req.RecurrenceType)
	}

	group := &entity.TherapyGroup{
		ClinicID:        act.ClinicID,
		ProfessionalID:  professionalID,
		Name:            req.Name,
		DayOfWeek:       req.DayOfWeek,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		RecurrenceType:  recurrenceType,
	}
	if err := u.groupRepo.Create(u.db.WithContext(ctx), group); err != nil {
		u.log.Errorf("Failed to create group: %+v", err)
		return nil, err
	}

	u.log.Infof("Group created: id=%s, name=%s", group.ID, group.Name)
	return converter.GroupToResponse(group), nil
}

func (u *groupUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.GroupResponse, error) {
	group, _, err := u.loadOwned(ctx, u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	return converter.GroupToResponse(group), nil
}

func (u *groupUsecase) List(ctx context.Context) (*dto.GroupListResponse, error) {
	act, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	groups, err := u.groupRepo.FindByClinic(u.db.WithContext(ctx), act.ClinicID)
	if err != nil {
		u.log.Warnf("Failed to list groups: %+v", err)
		return nil, err
	}

	if act.scopedToOwn(service.ResourceGroups, service.ActionRead) {
		own := groups[:0]
		for _, group := range groups {
			if group.ProfessionalID == act.UserID {
				own = append(own, group)
			}
		}
		groups = own
	}

	return &dto.GroupListResponse{
		Groups: converter.GroupsToResponses(groups),
		Total:  len(groups),
	}, nil
}

func (u *groupUsecase) AddMember(ctx context.Context, groupID uuid.UUID, req *dto.AddGroupMemberRequest) (*dto.GroupResponse, error) {
	group, _, err := u.loadOwned(ctx, u.db.WithContext(ctx), groupID)
	if err != nil {
		return nil, err
	}

	joinedAt, err := parseDateIn(req.JoinedAt, u.loc)
	if err != nil {
		return nil, err
	}

	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), req.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil || patient.ClinicID != group.ClinicID {
		return nil, ErrPatientNotFound
	}

	membership := &entity.GroupMembership{
		GroupID:   groupID,
		PatientID: req.PatientID,
		JoinedAt:  joinedAt,
	}
	if err := u.groupRepo.AddMember(u.db.WithContext(ctx), membership); err != nil {
		u.log.Errorf("Failed to add member to group %s: %+v", groupID, err)
		return nil, err
	}

	return u.Get(ctx, groupID)
}

// RemoveMember records the leave date. Past sessions keep the patient;
// future session generation stops including them from that date on.
func (u *groupUsecase) RemoveMember(ctx context.Context, groupID uuid.UUID, req *dto.RemoveGroupMemberRequest) (*dto.GroupResponse, error) {
	if _, _, err := u.loadOwned(ctx, u.db.WithContext(ctx), groupID); err != nil {
		return nil, err
	}

	leftAt, err := parseDateIn(req.LeftAt, u.loc)
	if err != nil {
		return nil, err
	}

	rows, err := u.groupRepo.RemoveMember(u.db.WithContext(ctx), groupID, req.PatientID, leftAt)
	if err != nil {
		u.log.Errorf("Failed to remove member from group %s: %+v", groupID, err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrGroupMemberNotFound
	}

	return u.Get(ctx, groupID)
}

// GenerateSessions materializes one appointment per (session date x member
// active on that date) inside the window. Already-materialized pairs are
// skipped, so the operation is idempotent under re-invocation.
func (u *groupUsecase) GenerateSessions(ctx context.Context, groupID uuid.UUID, req *dto.GenerateSessionsRequest) (*dto.GenerateSessionsResponse, error) {
	startDate, err := parseDateIn(req.StartDate, u.loc)
	if err != nil {
		return nil, err
	}
	endDate, err := parseDateIn(req.EndDate, u.loc)
	if err != nil {
		return nil, err
	}
	if endDate.Before(startDate) {
		return nil, ErrBadDateRange
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	group, act, err := u.loadOwned(ctx, tx, groupID)
	if err != nil {
		return nil, err
	}

	memberships, err := u.groupRepo.FindMemberships(tx, groupID)
	if err != nil {
		return nil, err
	}

	// The group's recurrence anchors at the first matching weekday on or
	// after the window start.
	anchor := startDate
	for int(anchor.Weekday()) != group.DayOfWeek {
		anchor = anchor.AddDate(0, 0, 1)
	}

	occurrences, err := service.CalculateRecurrenceDates(service.RecurrenceParams{
		StartDate:       anchor,
		StartTime:       group.StartTime,
		DurationMinutes: group.DurationMinutes,
		Type:            group.RecurrenceType,
		EndType:         entity.RecurrenceEndByDate,
		EndDate:         &endDate,
	})
	if err != nil {
		return nil, err
	}

	existing, err := u.appointmentRepo.FindByGroupInWindow(tx, groupID, startDate, endDate.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	materialized := make(map[string]bool, len(existing))
	for i := range existing {
		if existing[i].PatientID != nil {
			materialized[sessionKey(*existing[i].PatientID, existing[i].ScheduledAt)] = true
		}
	}

	var appointments []*entity.Appointment
	for _, occ := range occurrences {
		for i := range memberships {
			member := &memberships[i]
			if !member.IsActiveOn(occ.Date) {
				continue
			}
			if materialized[sessionKey(member.PatientID, occ.ScheduledAt)] {
				continue
			}
			patientID := member.PatientID
			appointments = append(appointments, &entity.Appointment{
				ClinicID:       group.ClinicID,
				ProfessionalID: group.ProfessionalID,
				PatientID:      &patientID,
				GroupID:        &group.ID,
				ScheduledAt:    occ.ScheduledAt,
				EndAt:          occ.EndAt,
				Status:         entity.AppointmentStatusScheduled,
				Modality:       entity.ModalityInPerson,
			})
		}
	}

	if err := u.appointmentRepo.CreateBatch(tx, appointments); err != nil {
		u.log.Errorf("Failed to materialize group sessions: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &act.UserID, entity.AuditActionGroupSessionsGen,
		"therapy_group", groupID.String(),
		entity.JSON{"start_date": req.StartDate, "end_date": req.EndDate, "created": len(appointments)}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	u.log.Infof("Group sessions generated: group=%s, created=%d", groupID, len(appointments))
	return &dto.GenerateSessionsResponse{SessionsCreated: len(appointments)}, nil
}

func sessionKey(patientID uuid.UUID, scheduledAt time.Time) string {
	return patientID.String() + "@" + scheduledAt.UTC().Format(time.RFC3339)
}
