package usecase

import (
	"context"
	"errors"
	"time"

	"go-clinic-scheduling/internal/converter"
	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/delivery/http/middleware"
	"go-clinic-scheduling/internal/domain/entity"
	"go-clinic-scheduling/internal/domain/repository"
	"go-clinic-scheduling/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound     = errors.New("appointment not found")
	ErrAppointmentNotOwned     = errors.New("appointment does not belong to your calendar")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrInvalidDate             = errors.New("invalid date, use YYYY-MM-DD")
	ErrRosterInvalid           = errors.New("one or more additional professionals do not exist in this clinic")
	ErrServiceNotFound         = errors.New("service not found")
	ErrActorNotFound           = errors.New("user not found in context")
)

type AppointmentUsecase interface {
	List(ctx context.Context, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	CreateRecurring(ctx context.Context, req *dto.CreateRecurringAppointmentRequest) (*dto.RecurrenceWithInstancesResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	Confirm(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	Finalize(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	MarkNoShow(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, id uuid.UUID, req *dto.CancelAppointmentRequest) (*dto.AppointmentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ConfirmByToken(ctx context.Context, token string) (*dto.AppointmentResponse, error)
	CancelByToken(ctx context.Context, token string) (*dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	db                  *gorm.DB
	log                 *logrus.Logger
	loc                 *time.Location
	defaultBuffer       int
	appointmentRepo     repository.AppointmentRepository
	recurrenceRepo      repository.RecurrenceRepository
	patientRepo         repository.PatientRepository
	professionalRepo    repository.ProfessionalRepository
	serviceRepo         repository.ServiceCatalogRepository
	conflictChecker     *service.ConflictChecker
	availabilityChecker *service.AvailabilityChecker
	auditService        service.AuditService
	tokenService        *service.ActionTokenService
	dispatcher          service.NotificationDispatcher
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	loc *time.Location,
	defaultBuffer int,
	appointmentRepo repository.AppointmentRepository,
	recurrenceRepo repository.RecurrenceRepository,
	patientRepo repository.PatientRepository,
	professionalRepo repository.ProfessionalRepository,
	serviceRepo repository.ServiceCatalogRepository,
	conflictChecker *service.ConflictChecker,
	availabilityChecker *service.AvailabilityChecker,
	auditService service.AuditService,
	tokenService *service.ActionTokenService,
	dispatcher service.NotificationDispatcher,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:                  db,
		log:                 log,
		loc:                 loc,
		defaultBuffer:       defaultBuffer,
		appointmentRepo:     appointmentRepo,
		recurrenceRepo:      recurrenceRepo,
		patientRepo:         patientRepo,
		professionalRepo:    professionalRepo,
		serviceRepo:         serviceRepo,
		conflictChecker:     conflictChecker,
		availabilityChecker: availabilityChecker,
		auditService:        auditService,
		tokenService:        tokenService,
		dispatcher:          dispatcher,
	}
}

// actor bundles the identity the middleware stored in the request context
type actor struct {
	UserID   uuid.UUID
	ClinicID uuid.UUID
	RoleID   int
}

func actorFromContext(ctx context.Context) (actor, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return actor{}, ErrActorNotFound
	}
	clinicID, ok := middleware.GetClinicIDFromContext(ctx)
	if !ok {
		return actor{}, ErrActorNotFound
	}
	roleID, ok := middleware.GetRoleIDFromContext(ctx)
	if !ok {
		return actor{}, ErrActorNotFound
	}
	return actor{UserID: userID, ClinicID: clinicID, RoleID: roleID}, nil
}

// scopedToOwn asks the permission boundary whether this actor is confined
// to their own calendar for the given resource and action.
func (a actor) scopedToOwn(resource, action string) bool {
	return service.ResolveScope(a.RoleID, resource, action) == service.ScopeOwn
}

// canTouchAppointment enforces scope: professionals only mutate calendars
// they own or co-attend; admins and receptionists act clinic-wide.
func (a actor) canTouchAppointment(appointment *entity.Appointment) bool {
	if appointment.ClinicID != a.ClinicID {
		return false
	}
	if !a.scopedToOwn(service.ResourceAppointments, service.ActionWrite) {
		return true
	}
	if appointment.ProfessionalID == a.UserID {
		return true
	}
	for _, ap := range appointment.AdditionalProfessionals {
		if ap.ProfessionalID == a.UserID {
			return true
		}
	}
	return false
}

func parseDateIn(value string, loc *time.Location) (time.Time, error) {
	parsed, err := time.ParseInLocation("2006-01-02", value, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return parsed, nil
}

// List returns the clinic's appointments matching the filter. Professionals
// are always narrowed to their own calendar.
func (u *appointmentUsecase) List(ctx context.Context, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error) {
	act, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	filter.ClinicID = act.ClinicID
	if act.scopedToOwn(service.ResourceAppointments, service.ActionRead) {
		filter.ProfessionalID = &act.UserID
	}

	appointments, err := u.appointmentRepo.FindByFilter(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	act, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if !act.canTouchAppointment(appointment) {
		return nil, ErrAppointmentNotOwned
	}

	return converter.AppointmentToResponse(appointment), nil
}

// Create books a single appointment. Availability is evaluated first; the
// conflict check and the insert share one transaction so two concurrent
// bookings of the same slot serialize at the database.
func (u *appointmentUsecase) Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	act, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	professionalID := req.ProfessionalID
	if act.scopedToOwn(service.ResourceAppointments, service.ActionWrite) {
		professionalID = act.UserID
	}

	date, err := parseDateIn(req.Date, u.loc)
	if err != nil {
		return nil, err
	}
	scheduledAt, err := service.CombineDateTime(date, req.StartTime)
	if err != nil {
		return nil, err
	}
	endAt := scheduledAt.Add(time.Duration(req.DurationMinutes) * time.Minute)

	if err := u.validateRoster(ctx, act.ClinicID, req.AdditionalProfessionals); err != nil {
		return nil, err
	}

	appointment := &entity.Appointment{
		ClinicID:       act.ClinicID,
		ProfessionalID: professionalID,
		PatientID:      req.PatientID,
		ScheduledAt:    scheduledAt,
		EndAt:          endAt,
		Status:         entity.AppointmentStatusScheduled,
		Modality:       modalityOrDefault(req.Modality),
		BlocksTime:     req.BlocksTime,
		Notes:          req.Notes,
		ServiceID:      req.ServiceID,
	}

	// Service defaults: price comes from the catalog when a service is set.
	if req.ServiceID != nil {
		catalogService, err := u.serviceRepo.FindByID(u.db.WithContext(ctx), *req.ServiceID)
		if err != nil {
			return nil, err
		}
		if catalogService == nil {
			return nil, ErrServiceNotFound
		}
		appointment.Price = &catalogService.Price
	}

	// Availability applies only to calendar-blocking entries.
	if appointment.BlocksTime == nil || *appointment.BlocksTime {
		endTime := endAt.Format("15:04")
		decision, err := u.availabilityChecker.Evaluate(u.db.WithContext(ctx), professionalID, date, req.StartTime, endTime)
		if err != nil {
			return nil, err
		}
		if !decision.Allowed {
			return nil, &AvailabilityError{Reason: decision.Reason, ConflictDate: date}
		}
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	conflicting, err := u.conflictChecker.Check(tx, service.ConflictCheckInput{
		ProfessionalID:          professionalID,
		AdditionalProfessionals: req.AdditionalProfessionals,
		ScheduledAt:             scheduledAt,
		EndAt:                   endAt,
		BufferMinutes:           u.defaultBuffer,
	})
	if err != nil {
		return nil, err
	}
	if conflicting != nil {
		return nil, &ConflictError{
			Code:         ConflictCodeSlotTaken,
			ConflictDate: scheduledAt,
			Conflicts:    converter.AppointmentsToConflictResponses([]entity.Appointment{*conflicting}),
		}
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		u.log.Errorf("Failed to insert appointment: %+v", err)
		return nil, err
	}
	if len(req.AdditionalProfessionals) > 0 {
		if err := u.appointmentRepo.ReplaceAdditionalProfessionals(tx, appointment.ID, req.AdditionalProfessionals); err != nil {
			return nil, err
		}
	}

	if err := u.auditService.LogCreate(ctx, tx, &act.UserID, entity.AuditActionAppointmentCreate,
		"appointment", appointment.ID.String(), appointment); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Errorf("Failed to commit appointment create: %+v", err)
		return nil, err
	}

	full, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointment.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload appointment %s: %+v", appointment.ID, err)
		full = appointment
	}

	u.notifyBooked(ctx, full)

	u.log.Infof("Appointment created: id=%s, professional=%s, at=%s", appointment.ID, professionalID, scheduledAt)
	return converter.AppointmentToResponse(full), nil
}

// CreateRecurring books a whole series atomically: every instance must pass
// availability and conflict checks or nothing is written.
func (u *appointmentUsecase) CreateRecurring(ctx context.Context, req *dto.CreateRecurringAppointmentRequest) (*dto.RecurrenceWithInstancesResponse, error) {
	act, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	professionalID := req.ProfessionalID
	if act.scopedToOwn(service.ResourceAppointments, service.ActionWrite) {
		professionalID = act.UserID
	}

	startDate, err := parseDateIn(req.StartDate, u.loc)
	if err != nil {
		return nil, err
	}

	params := service.RecurrenceParams{
		StartDate:       startDate,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		Type:            entity.RecurrenceType(req.RecurrenceType),
		EndType:         entity.RecurrenceEndType(req.RecurrenceEndType),
	}
	switch params.EndType {
	case entity.RecurrenceEndByDate:
		if req.EndDate == nil {
			return nil, service.ErrMissingEndDate
		}
		endDate, err := parseDateIn(*req.EndDate, u.loc)
		if err != nil {
			return nil, err
		}
		params.EndDate = &endDate
	case entity.RecurrenceEndByOccurrences:
		params.Occurrences = req.Occurrences
	case entity.RecurrenceEndIndefinite:
		horizon := time.Now().In(u.loc).AddDate(0, generationWindowMonths, 0)
		params.Horizon = &horizon
	}

	occurrences, err := service.CalculateRecurrenceDates(params)
	if err != nil {
		return nil, err
	}
	if len(occurrences) == 0 {
		return nil, errors.New("recurrence generates no instances")
	}

	if err := u.validateRoster(ctx, act.ClinicID, req.AdditionalProfessionals); err != nil {
		return nil, err
	}

	// Every instance must fall inside the professional's open hours before
	// anything is written; the first denial aborts with its index and date.
	endTime := occurrences[0].EndAt.Format("15:04")
	for i := range occurrences {
		decision, err := u.availabilityChecker.Evaluate(u.db.WithContext(ctx), professionalID, occurrences[i].Date, req.StartTime, endTime)
		if err != nil {
			return nil, err
		}
		if !decision.Allowed {
			index := occurrences[i].Index
			return nil, &AvailabilityError{
				Reason:          decision.Reason,
				ConflictDate:    occurrences[i].Date,
				OccurrenceIndex: &index,
			}
		}
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	candidates := make([]service.CandidateSlot, len(occurrences))
	for i, occ := range occurrences {
		candidates[i] = service.CandidateSlot{ScheduledAt: occ.ScheduledAt, EndAt: occ.EndAt}
	}
	conflicts, err := u.conflictChecker.CheckBulk(tx, professionalID, req.AdditionalProfessionals, candidates, u.defaultBuffer, repository.ConflictExclusion{})
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		first := conflicts[0]
		return nil, &ConflictError{
			Code:            ConflictCodeSeriesConflict,
			ConflictDate:    first.ScheduledAt,
			OccurrenceIndex: &first.Index,
			Conflicts:       converter.AppointmentsToConflictResponses(conflictingOf(conflicts)),
		}
	}

	lastDate := occurrences[len(occurrences)-1].Date
	recurrence := &entity.AppointmentRecurrence{
		ClinicID:          act.ClinicID,
		ProfessionalID:    professionalID,
		PatientID:         req.PatientID,
		DayOfWeek:         int(startDate.Weekday()),
		StartTime:         req.StartTime,
		EndTime:           endTime,
		DurationMinutes:   req.DurationMinutes,
		RecurrenceType:    params.Type,
		RecurrenceEndType: params.EndType,
		StartDate:         startDate,
		EndDate:           params.EndDate,
		Occurrences:       params.Occurrences,
		LastGeneratedDate: &lastDate,
		Modality:          modalityOrDefault(req.Modality),
	}
	if err := u.recurrenceRepo.Create(tx, recurrence); err != nil {
		u.log.Errorf("Failed to insert recurrence: %+v", err)
		return nil, err
	}
	if len(req.AdditionalProfessionals) > 0 {
		if err := u.recurrenceRepo.ReplaceAdditionalProfessionals(tx, recurrence.ID, req.AdditionalProfessionals); err != nil {
			return nil, err
		}
	}

	appointments := make([]*entity.Appointment, len(occurrences))
	for i, occ := range occurrences {
		appointments[i] = &entity.Appointment{
			ClinicID:       act.ClinicID,
			ProfessionalID: professionalID,
			PatientID:      &recurrence.PatientID,
			RecurrenceID:   &recurrence.ID,
			ScheduledAt:    occ.ScheduledAt,
			EndAt:          occ.EndAt,
			Status:         entity.AppointmentStatusScheduled,
			Modality:       recurrence.Modality,
			ServiceID:      req.ServiceID,
		}
	}
	if err := u.appointmentRepo.CreateBatch(tx, appointments); err != nil {
		u.log.Errorf("Failed to insert recurrence instances: %+v", err)
		return nil, err
	}
	for _, appointment := range appointments {
		if len(req.AdditionalProfessionals) > 0 {
			if err := u.appointmentRepo.ReplaceAdditionalProfessionals(tx, appointment.ID, req.AdditionalProfessionals); err != nil {
				return nil, err
			}
		}
	}

	if err := u.auditService.LogCreate(ctx, tx, &act.UserID, entity.AuditActionRecurrenceCreate,
		"appointment_recurrence", recurrence.ID.String(), recurrence); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Errorf("Failed to commit recurring create: %+v", err)
		return nil, err
	}

	created := make([]entity.Appointment, len(appointments))
	for i, appointment := range appointments {
		created[i] = *appointment
	}

	u.log.Infof("Recurrence created: id=%s, instances=%d", recurrence.ID, len(created))
	return converter.RecurrenceWithInstancesToResponse(recurrence, created), nil
}

// Update applies a partial update; nil request fields keep their current
// values. Time changes re-run availability and conflict checks.
func (u *appointmentUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	act, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if !act.canTouchAppointment(appointment) {
		return nil, ErrAppointmentNotOwned
	}
	if appointment.IsTerminal() {
		return nil, ErrInvalidStatusTransition
	}

	oldValue := *appointment

	timeChanged := req.Date != nil || req.StartTime != nil || req.DurationMinutes != nil
	if timeChanged {
		date := truncateInLoc(appointment.ScheduledAt, u.loc)
		if req.Date != nil {
			date, err = parseDateIn(*req.Date, u.loc)
			if err != nil {
				return nil, err
			}
		}
		startTime := appointment.ScheduledAt.In(u.loc).Format("15:04")
		if req.StartTime != nil {
			startTime = *req.StartTime
		}
		duration := appointment.EndAt.Sub(appointment.ScheduledAt)
		if req.DurationMinutes != nil {
			duration = time.Duration(*req.DurationMinutes) * time.Minute
		}

		scheduledAt, err := service.CombineDateTime(date, startTime)
		if err != nil {
			return nil, err
		}
		endAt := scheduledAt.Add(duration)

		if appointment.BlocksCalendar() {
			decision, err := u.availabilityChecker.Evaluate(tx, appointment.ProfessionalID, date, startTime, endAt.Format("15:04"))
			if err != nil {
				return nil, err
			}
			if !decision.Allowed {
				return nil, &AvailabilityError{Reason: decision.Reason, ConflictDate: date}
			}

			extras := make([]uuid.UUID, len(appointment.AdditionalProfessionals))
			for i, ap := range appointment.AdditionalProfessionals {
				extras[i] = ap.ProfessionalID
			}
			conflicting, err := u.conflictChecker.Check(tx, service.ConflictCheckInput{
				ProfessionalID:          appointment.ProfessionalID,
				AdditionalProfessionals: extras,
				ScheduledAt:             scheduledAt,
				EndAt:                   endAt,
				BufferMinutes:           u.defaultBuffer,
				ExcludeAppointmentID:    &appointment.ID,
			})
			if err != nil {
				return nil, err
			}
			if conflicting != nil {
				return nil, &ConflictError{
					Code:         ConflictCodeSlotTaken,
					ConflictDate: scheduledAt,
					Conflicts:    converter.AppointmentsToConflictResponses([]entity.Appointment{*conflicting}),
				}
			}
		}

		appointment.ScheduledAt = scheduledAt
		appointment.EndAt = endAt
	}

	if req.Modality != nil {
		appointment.Modality = entity.AppointmentModality(*req.Modality)
	}
	if req.Notes != nil {
		appointment.Notes = *req.Notes
	}
	if req.ServiceID != nil {
		appointment.ServiceID = req.ServiceID
	}
	if req.Price != nil {
		appointment.Price = req.Price
	}

	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		u.log.Errorf("Failed to update appointment %s: %+v", id, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &act.UserID, entity.AuditActionAppointmentUpdate,
		"appointment", appointment.ID.String(), oldValue, appointment); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	u.log.Infof("Appointment updated: id=%s", id)
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) Confirm(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	return u.transition(ctx, id, entity.AppointmentStatusConfirmed, entity.AuditActionAppointmentConfirm, "")
}

func (u *appointmentUsecase) Finalize(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	return u.transition(ctx, id, entity.AppointmentStatusFinished, entity.AuditActionAppointmentUpdate, "")
}

func (u *appointmentUsecase) MarkNoShow(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	return u.transition(ctx, id, entity.AppointmentStatusNoShow, entity.AuditActionAppointmentUpdate, "")
}

func (u *appointmentUsecase) Cancel(ctx context.Context, id uuid.UUID, req *dto.CancelAppointmentRequest) (*dto.AppointmentResponse, error) {
	status := entity.AppointmentStatusCancelledByProfessional
	if req.By == "patient" {
		status = entity.AppointmentStatusCancelledByPatient
	}
	response, err := u.transition(ctx, id, status, entity.AuditActionAppointmentCancel, req.Reason)
	if err != nil {
		return nil, err
	}

	appointment, loadErr := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if loadErr == nil && appointment != nil {
		u.notifyCancelled(ctx, appointment, req.Reason)
	}
	return response, nil
}

// transition moves the appointment through the status machine inside one
// transaction, rejecting moves the entity forbids.
func (u *appointmentUsecase) transition(ctx context.Context, id uuid.UUID, next entity.AppointmentStatus, auditAction, reason string) (*dto.AppointmentResponse, error) {
	act, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if !act.canTouchAppointment(appointment) {
		return nil, ErrAppointmentNotOwned
	}
	if !appointment.CanTransitionTo(next) {
		return nil, ErrInvalidStatusTransition
	}

	oldStatus := appointment.Status
	appointment.Status = next
	if reason != "" {
		appointment.CancellationReason = reason
	}

	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		u.log.Errorf("Failed to transition appointment %s to %s: %+v", id, next, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &act.UserID, auditAction,
		"appointment", appointment.ID.String(),
		entity.JSON{"status": oldStatus}, entity.JSON{"status": next, "reason": reason}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	u.log.Infof("Appointment %s: %s -> %s", id, oldStatus, next)
	return converter.AppointmentToResponse(appointment), nil
}

// Delete removes one appointment. A recurrence instance can be deleted
// without touching the parent series.
func (u *appointmentUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	act, err := actorFromContext(ctx)
	if err != nil {
		return err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, id)
	if err != nil {
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}
	if !act.canTouchAppointment(appointment) {
		return ErrAppointmentNotOwned
	}

	rows, err := u.appointmentRepo.Delete(tx, id)
	if err != nil {
		u.log.Errorf("Failed to delete appointment %s: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrAppointmentNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, &act.UserID, entity.AuditActionAppointmentDelete,
		"appointment", id.String(), appointment); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	u.log.Infof("Appointment deleted: id=%s", id)
	return nil
}

// ConfirmByToken confirms an appointment through a single-use patient link
func (u *appointmentUsecase) ConfirmByToken(ctx context.Context, token string) (*dto.AppointmentResponse, error) {
	return u.transitionByToken(ctx, token, service.ActionConfirm, entity.AppointmentStatusConfirmed)
}

// CancelByToken cancels an appointment through a single-use patient link
func (u *appointmentUsecase) CancelByToken(ctx context.Context, token string) (*dto.AppointmentResponse, error) {
	return u.transitionByToken(ctx, token, service.ActionCancel, entity.AppointmentStatusCancelledByPatient)
}

func (u *appointmentUsecase) transitionByToken(ctx context.Context, token, action string, next entity.AppointmentStatus) (*dto.AppointmentResponse, error) {
	appointmentID, err := u.tokenService.Redeem(ctx, token, action)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if !appointment.CanTransitionTo(next) {
		return nil, ErrInvalidStatusTransition
	}

	oldStatus := appointment.Status
	appointment.Status = next
	if next == entity.AppointmentStatusCancelledByPatient {
		appointment.CancellationReason = "cancelled via patient link"
	}

	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		return nil, err
	}

	auditAction := entity.AuditActionAppointmentConfirm
	if action == service.ActionCancel {
		auditAction = entity.AuditActionAppointmentCancel
	}
	if err := u.auditService.LogUpdate(ctx, tx, nil, auditAction,
		"appointment", appointment.ID.String(),
		entity.JSON{"status": oldStatus}, entity.JSON{"status": next, "via": "action_token"}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	u.log.Infof("Appointment %s: %s -> %s via action token", appointmentID, oldStatus, next)
	return converter.AppointmentToResponse(appointment), nil
}

// validateRoster checks every additional professional exists in the clinic
func (u *appointmentUsecase) validateRoster(ctx context.Context, clinicID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	ok, err := u.professionalRepo.ExistsAll(u.db.WithContext(ctx), clinicID, ids)
	if err != nil {
		return err
	}
	if !ok {
		return ErrRosterInvalid
	}
	return nil
}

// notifyBooked sends the confirmation email with single-use confirm/cancel
// links. Failures are logged, never escalated.
func (u *appointmentUsecase) notifyBooked(ctx context.Context, appointment *entity.Appointment) {
	if appointment.Patient == nil || appointment.Patient.Email == "" {
		return
	}

	ttl := time.Until(appointment.ScheduledAt)
	if ttl <= 0 {
		return
	}

	confirmToken, err := u.tokenService.Issue(ctx, appointment.ID, service.ActionConfirm, ttl)
	if err != nil {
		u.log.Warnf("Failed to issue confirm token for appointment %s: %+v", appointment.ID, err)
		return
	}
	cancelToken, err := u.tokenService.Issue(ctx, appointment.ID, service.ActionCancel, ttl)
	if err != nil {
		u.log.Warnf("Failed to issue cancel token for appointment %s: %+v", appointment.ID, err)
		return
	}

	notification := service.Notification{
		Channel:   service.ChannelEmail,
		Recipient: appointment.Patient.Email,
		Subject:   "Appointment booked",
		Template:  service.TemplateAppointmentConfirmation,
		Variables: map[string]string{
			"patient":     appointment.Patient.FullName,
			"date":        appointment.ScheduledAt.In(u.loc).Format("2006-01-02"),
			"time":        appointment.ScheduledAt.In(u.loc).Format("15:04"),
			"confirm_url": "/public/appointments/confirm?token=" + confirmToken,
			"cancel_url":  "/public/appointments/cancel?token=" + cancelToken,
		},
	}
	if err := u.dispatcher.Dispatch(ctx, notification); err != nil {
		u.log.Warnf("Failed to send booking notification for appointment %s (non-fatal): %+v", appointment.ID, err)
	}
}

func (u *appointmentUsecase) notifyCancelled(ctx context.Context, appointment *entity.Appointment, reason string) {
	if appointment.Patient == nil || appointment.Patient.Email == "" {
		return
	}

	notification := service.Notification{
		Channel:   service.ChannelEmail,
		Recipient: appointment.Patient.Email,
		Subject:   "Appointment cancelled",
		Template:  service.TemplateAppointmentCancellation,
		Variables: map[string]string{
			"patient": appointment.Patient.FullName,
			"date":    appointment.ScheduledAt.In(u.loc).Format("2006-01-02"),
			"time":    appointment.ScheduledAt.In(u.loc).Format("15:04"),
			"reason":  reason,
		},
	}
	if err := u.dispatcher.Dispatch(ctx, notification); err != nil {
		u.log.Warnf("Failed to send cancellation notification for appointment %s (non-fatal): %+v", appointment.ID, err)
	}
}

func modalityOrDefault(value string) entity.AppointmentModality {
	if value == "" {
		return entity.ModalityInPerson
	}
	return entity.AppointmentModality(value)
}

func truncateInLoc(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func conflictingOf(conflicts []service.SlotConflict) []entity.Appointment {
	appointments := make([]entity.Appointment, len(conflicts))
	for i, conflict := range conflicts {
		appointments[i] = conflict.Conflicting
	}
	return appointments
}
