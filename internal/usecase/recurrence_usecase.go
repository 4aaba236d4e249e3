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
	ErrRecurrenceNotFound   = errors.New("recurrence not found")
	ErrRecurrenceNotOwned   = errors.New("recurrence does not belong to your calendar")
	ErrRecurrenceInactive   = errors.New("recurrence is no longer active")
	ErrRecurrenceNotForever = errors.New("only indefinite recurrences can be finalized")
)

// Rolling-window parameters for INDEFINITE series: instances are generated
// generationWindowMonths ahead, and a series becomes extendable once its
// generated window ends within extensionCutoffMonths of now.
const (
	generationWindowMonths = 3
	extensionCutoffMonths  = 2
)

type RecurrenceUsecase interface {
	Get(ctx context.Context, id uuid.UUID) (*dto.RecurrenceWithInstancesResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateRecurrenceRequest) (*dto.RecurrenceResponse, error)
	Finalize(ctx context.Context, id uuid.UUID, req *dto.FinalizeRecurrenceRequest) (*dto.RecurrenceResponse, error)
	ExtendIndefiniteRecurrences(ctx context.Context) (*dto.ExtendRecurrencesResponse, error)
}

type recurrenceUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	loc              *time.Location
	defaultBuffer    int
	recurrenceRepo   repository.RecurrenceRepository
	appointmentRepo  repository.AppointmentRepository
	professionalRepo repository.ProfessionalRepository
	conflictChecker  *service.ConflictChecker
	auditService     service.AuditService
}

func NewRecurrenceUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	loc *time.Location,
	defaultBuffer int,
	recurrenceRepo repository.RecurrenceRepository,
	appointmentRepo repository.AppointmentRepository,
	professionalRepo repository.ProfessionalRepository,
	conflictChecker *service.ConflictChecker,
	auditService service.AuditService,
) RecurrenceUsecase {
	return &recurrenceUsecase{
		db:               db,
		log:              log,
		loc:              loc,
		defaultBuffer:    defaultBuffer,
		recurrenceRepo:   recurrenceRepo,
		appointmentRepo:  appointmentRepo,
		professionalRepo: professionalRepo,
		conflictChecker:  conflictChecker,
		auditService:     auditService,
	}
}

func (u *recurrenceUsecase) loadOwned(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.AppointmentRecurrence, actor, error) {
	act, err := actorFromContext(ctx)
	if err != nil {
		return nil, actor{}, err
	}

	recurrence, err := u.recurrenceRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find recurrence %s: %+v", id, err)
		return nil, act, err
	}
	if recurrence == nil {
		return nil, act, ErrRecurrenceNotFound
	}
	if recurrence.ClinicID != act.ClinicID {
		return nil, act, ErrRecurrenceNotOwned
	}
	if act.scopedToOwn(service.ResourceRecurrences, service.ActionWrite) && recurrence.ProfessionalID != act.UserID {
		return nil, act, ErrRecurrenceNotOwned
	}
	return recurrence, act, nil
}

func (u *recurrenceUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.RecurrenceWithInstancesResponse, error) {
	recurrence, _, err := u.loadOwned(ctx, u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}

	instances, err := u.appointmentRepo.FindFutureByRecurrence(u.db.WithContext(ctx), id, time.Now().In(u.loc))
	if err != nil {
		return nil, err
	}

	return converter.RecurrenceWithInstancesToResponse(recurrence, instances), nil
}

// Update mutates an active series. Changes that move instances in time
// (day-of-week shift) are conflict-checked across every future instance
// before any write: a single collision aborts the whole mutation with a
// DAY_CHANGE_CONFLICTS error and zero rows touched.
func (u *recurrenceUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateRecurrenceRequest) (*dto.RecurrenceResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	recurrence, act, err := u.loadOwned(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if recurrence.IsActive == nil || !*recurrence.IsActive {
		return nil, ErrRecurrenceInactive
	}

	oldValue := *recurrence
	now := time.Now().In(u.loc)

	future, err := u.appointmentRepo.FindFutureByRecurrence(tx, id, now)
	if err != nil {
		return nil, err
	}

	roster, err := u.resolveRoster(tx, act.ClinicID, recurrence, req.AdditionalProfessionals)
	if err != nil {
		return nil, err
	}

	startTime := recurrence.StartTime
	if req.StartTime != nil {
		startTime = *req.StartTime
	}
	endTime := recurrence.EndTime
	if req.EndTime != nil {
		endTime = *req.EndTime
	}
	duration, err := durationBetween(startTime, endTime)
	if err != nil {
		return nil, err
	}

	dayChanged := req.DayOfWeek != nil && *req.DayOfWeek != recurrence.DayOfWeek
	timeChanged := startTime != recurrence.StartTime || endTime != recurrence.EndTime
	rosterChanged := req.AdditionalProfessionals != nil

	// A roster change re-checks the current slots against the new roster
	// even when nothing moves in time: the incoming co-professional may be
	// double-booked.
	if dayChanged || timeChanged || rosterChanged {
		var shiftTo *int
		if dayChanged {
			shiftTo = req.DayOfWeek
		}
		candidates, err := mutationCandidates(future, shiftTo, startTime, duration, u.loc)
		if err != nil {
			return nil, err
		}

		conflicts, err := u.conflictChecker.CheckBulk(tx, recurrence.ProfessionalID, roster, candidates,
			u.defaultBuffer, repository.ConflictExclusion{RecurrenceID: &recurrence.ID})
		if err != nil {
			return nil, err
		}
		if len(conflicts) > 0 {
			first := conflicts[0]
			code := ConflictCodeSeriesConflict
			if dayChanged {
				code = ConflictCodeDayChangeConflicts
			}
			return nil, &ConflictError{
				Code:            code,
				ConflictDate:    first.ScheduledAt,
				OccurrenceIndex: &first.Index,
				Conflicts:       converter.AppointmentsToConflictResponses(conflictingOf(conflicts)),
			}
		}

		// No conflicts anywhere: rewrite every future instance.
		if dayChanged || timeChanged {
			for i := range future {
				future[i].ScheduledAt = candidates[i].ScheduledAt
				future[i].EndAt = candidates[i].EndAt
				if err := u.appointmentRepo.Update(tx, &future[i]); err != nil {
					u.log.Errorf("Failed to shift appointment %s: %+v", future[i].ID, err)
					return nil, err
				}
			}

			if dayChanged {
				recurrence.DayOfWeek = *req.DayOfWeek
			}
			recurrence.StartTime = startTime
			recurrence.EndTime = endTime
			recurrence.DurationMinutes = int(duration / time.Minute)
		}
	}

	// Recurrence-type change keeps instances that still fit the new pattern
	// and deletes the rest. The anchor is the first future occurrence.
	if req.RecurrenceType != nil && entity.RecurrenceType(*req.RecurrenceType) != recurrence.RecurrenceType {
		newType := entity.RecurrenceType(*req.RecurrenceType)
		kept, removed := splitByPattern(future, newType, u.loc)
		if err := u.appointmentRepo.DeleteBatch(tx, removed); err != nil {
			u.log.Errorf("Failed to prune instances for type change: %+v", err)
			return nil, err
		}
		// Later bulk updates must not touch the pruned rows.
		future = kept
		recurrence.RecurrenceType = newType
	}

	if req.Modality != nil {
		recurrence.Modality = entity.AppointmentModality(*req.Modality)
		ids := appointmentIDs(future)
		if err := u.appointmentRepo.UpdateFields(tx, ids, map[string]interface{}{"modality": *req.Modality}); err != nil {
			return nil, err
		}
	}

	if req.RecurrenceEndType != nil {
		recurrence.RecurrenceEndType = entity.RecurrenceEndType(*req.RecurrenceEndType)
	}
	if req.EndDate != nil {
		endDate, err := parseDateIn(*req.EndDate, u.loc)
		if err != nil {
			return nil, err
		}
		recurrence.EndDate = &endDate
	}
	if req.Occurrences != nil {
		recurrence.Occurrences = req.Occurrences
	}

	if rosterChanged {
		if err := u.recurrenceRepo.ReplaceAdditionalProfessionals(tx, recurrence.ID, roster); err != nil {
			return nil, err
		}
		for i := range future {
			if err := u.appointmentRepo.ReplaceAdditionalProfessionals(tx, future[i].ID, roster); err != nil {
				return nil, err
			}
		}
	}

	if err := u.recurrenceRepo.Update(tx, recurrence); err != nil {
		u.log.Errorf("Failed to update recurrence %s: %+v", id, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &act.UserID, entity.AuditActionRecurrenceUpdate,
		"appointment_recurrence", recurrence.ID.String(), oldValue, recurrence); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Errorf("Failed to commit recurrence update: %+v", err)
		return nil, err
	}

	u.log.Infof("Recurrence updated: id=%s, future_instances=%d", id, len(future))
	return converter.RecurrenceToResponse(recurrence), nil
}

// mutationCandidates projects future instances onto their post-mutation
// slots: dates optionally shifted to a new weekday, recombined with the
// effective start time. With no shift and an unchanged start time the
// candidates are the instances' current slots.
func mutationCandidates(future []entity.Appointment, newDayOfWeek *int, startTime string, duration time.Duration, loc *time.Location) ([]service.CandidateSlot, error) {
	dates := make([]time.Time, len(future))
	for i := range future {
		dates[i] = truncateInLoc(future[i].ScheduledAt, loc)
	}
	if newDayOfWeek != nil {
		dates = service.CalculateDayShiftedDates(dates, *newDayOfWeek)
	}

	candidates := make([]service.CandidateSlot, len(dates))
	for i, date := range dates {
		scheduledAt, err := service.CombineDateTime(date, startTime)
		if err != nil {
			return nil, err
		}
		candidates[i] = service.CandidateSlot{ScheduledAt: scheduledAt, EndAt: scheduledAt.Add(duration)}
	}
	return candidates, nil
}

// splitByPattern partitions future instances by whether they still fit the
// new recurrence pattern, anchored at the first future occurrence.
func splitByPattern(future []entity.Appointment, newType entity.RecurrenceType, loc *time.Location) (kept []entity.Appointment, removed []uuid.UUID) {
	if len(future) == 0 {
		return future, nil
	}
	anchor := truncateInLoc(future[0].ScheduledAt, loc)
	kept = future[:0]
	for i := range future {
		if service.FitsPattern(truncateInLoc(future[i].ScheduledAt, loc), anchor, newType) {
			kept = append(kept, future[i])
		} else {
			removed = append(removed, future[i].ID)
		}
	}
	return kept, removed
}

// Finalize converts an INDEFINITE series into BY_DATE bounded at endDate.
// Instances strictly after the end date are soft-cancelled so the audit
// trail keeps them.
func (u *recurrenceUsecase) Finalize(ctx context.Context, id uuid.UUID, req *dto.FinalizeRecurrenceRequest) (*dto.RecurrenceResponse, error) {
	endDate, err := parseDateIn(req.EndDate, u.loc)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	recurrence, act, err := u.loadOwned(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if recurrence.RecurrenceEndType != entity.RecurrenceEndIndefinite {
		return nil, ErrRecurrenceNotForever
	}

	future, err := u.appointmentRepo.FindFutureByRecurrence(tx, id, time.Now().In(u.loc))
	if err != nil {
		return nil, err
	}

	cutoff := endDate.AddDate(0, 0, 1)
	var removed []uuid.UUID
	for i := range future {
		if !future[i].ScheduledAt.Before(cutoff) {
			removed = append(removed, future[i].ID)
		}
	}
	if err := u.appointmentRepo.UpdateFields(tx, removed, map[string]interface{}{
		"status":              entity.AppointmentStatusCancelledByProfessional,
		"cancellation_reason": "recurrence finalized",
	}); err != nil {
		u.log.Errorf("Failed to cancel instances past end date: %+v", err)
		return nil, err
	}

	recurrence.RecurrenceEndType = entity.RecurrenceEndByDate
	recurrence.EndDate = &endDate
	if err := u.recurrenceRepo.Update(tx, recurrence); err != nil {
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &act.UserID, entity.AuditActionRecurrenceFinalize,
		"appointment_recurrence", recurrence.ID.String(),
		entity.JSON{"recurrence_end_type": entity.RecurrenceEndIndefinite},
		entity.JSON{"recurrence_end_type": entity.RecurrenceEndByDate, "end_date": req.EndDate, "cancelled": len(removed)}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	u.log.Infof("Recurrence finalized: id=%s, end_date=%s, cancelled=%d", id, req.EndDate, len(removed))
	return converter.RecurrenceToResponse(recurrence), nil
}

// ExtendIndefiniteRecurrences rolls every INDEFINITE series' generated window
// forward by generationWindowMonths. Dates in the series' exception list and
// dates that would collide are skipped, but the watermark always advances to
// the end of the considered window, so re-invocation is idempotent.
func (u *recurrenceUsecase) ExtendIndefiniteRecurrences(ctx context.Context) (*dto.ExtendRecurrencesResponse, error) {
	now := time.Now().In(u.loc)
	cutoff := now.AddDate(0, extensionCutoffMonths, 0)

	extendable, err := u.recurrenceRepo.FindExtendable(u.db.WithContext(ctx), cutoff)
	if err != nil {
		u.log.Warnf("Failed to load extendable recurrences: %+v", err)
		return nil, err
	}

	response := &dto.ExtendRecurrencesResponse{}
	for i := range extendable {
		created, err := u.extendOne(ctx, &extendable[i])
		if err != nil {
			// One broken series must not starve the rest of the batch.
			u.log.Errorf("Failed to extend recurrence %s: %+v", extendable[i].ID, err)
			continue
		}
		response.RecurrencesExtended++
		response.AppointmentsCreated += created
	}

	u.log.Infof("Extension pass done: recurrences=%d, appointments=%d",
		response.RecurrencesExtended, response.AppointmentsCreated)
	return response, nil
}

func (u *recurrenceUsecase) extendOne(ctx context.Context, recurrence *entity.AppointmentRecurrence) (int, error) {
	watermark := recurrence.StartDate
	if recurrence.LastGeneratedDate != nil {
		watermark = *recurrence.LastGeneratedDate
	}
	horizon := watermark.AddDate(0, generationWindowMonths, 0)

	occurrences, err := service.CalculateRecurrenceDates(service.RecurrenceParams{
		StartDate:       recurrence.StartDate,
		StartTime:       recurrence.StartTime,
		DurationMinutes: recurrence.DurationMinutes,
		Type:            recurrence.RecurrenceType,
		EndType:         entity.RecurrenceEndIndefinite,
		Horizon:         &horizon,
	})
	if err != nil {
		return 0, err
	}

	roster := rosterIDs(recurrence)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	var appointments []*entity.Appointment
	lastConsidered := watermark
	for _, occ := range occurrences {
		if !occ.Date.After(watermark) {
			continue
		}
		lastConsidered = occ.Date
		if recurrence.Exceptions.Contains(occ.Date) {
			continue
		}

		conflicting, err := u.conflictChecker.Check(tx, service.ConflictCheckInput{
			ProfessionalID:          recurrence.ProfessionalID,
			AdditionalProfessionals: roster,
			ScheduledAt:             occ.ScheduledAt,
			EndAt:                   occ.EndAt,
			BufferMinutes:           u.defaultBuffer,
		})
		if err != nil {
			return 0, err
		}
		if conflicting != nil {
			u.log.Warnf("Skipping occurrence %s of recurrence %s: slot taken", occ.Date.Format("2006-01-02"), recurrence.ID)
			continue
		}

		appointments = append(appointments, &entity.Appointment{
			ClinicID:       recurrence.ClinicID,
			ProfessionalID: recurrence.ProfessionalID,
			PatientID:      &recurrence.PatientID,
			RecurrenceID:   &recurrence.ID,
			ScheduledAt:    occ.ScheduledAt,
			EndAt:          occ.EndAt,
			Status:         entity.AppointmentStatusScheduled,
			Modality:       recurrence.Modality,
		})
	}

	if err := u.appointmentRepo.CreateBatch(tx, appointments); err != nil {
		return 0, err
	}
	for _, appointment := range appointments {
		if len(roster) > 0 {
			if err := u.appointmentRepo.ReplaceAdditionalProfessionals(tx, appointment.ID, roster); err != nil {
				return 0, err
			}
		}
	}

	// The watermark advances past skipped dates too; they were considered.
	if err := u.recurrenceRepo.UpdateFields(tx, recurrence.ID, map[string]interface{}{
		"last_generated_date": lastConsidered,
	}); err != nil {
		return 0, err
	}

	if err := tx.Commit().Error; err != nil {
		return 0, err
	}
	return len(appointments), nil
}

// resolveRoster validates a replacement roster or falls back to the current one
func (u *recurrenceUsecase) resolveRoster(db *gorm.DB, clinicID uuid.UUID, recurrence *entity.AppointmentRecurrence, replacement *[]uuid.UUID) ([]uuid.UUID, error) {
	if replacement == nil {
		return rosterIDs(recurrence), nil
	}
	if len(*replacement) == 0 {
		return []uuid.UUID{}, nil
	}
	ok, err := u.professionalRepo.ExistsAll(db, clinicID, *replacement)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrRosterInvalid
	}
	return *replacement, nil
}

func rosterIDs(recurrence *entity.AppointmentRecurrence) []uuid.UUID {
	ids := make([]uuid.UUID, len(recurrence.AdditionalProfessionals))
	for i, rp := range recurrence.AdditionalProfessionals {
		ids[i] = rp.ProfessionalID
	}
	return ids
}

func appointmentIDs(appointments []entity.Appointment) []uuid.UUID {
	ids := make([]uuid.UUID, len(appointments))
	for i := range appointments {
		ids[i] = appointments[i].ID
	}
	return ids
}

// durationBetween computes the minutes between two same-day "HH:mm" marks
func durationBetween(startTime, endTime string) (time.Duration, error) {
	start, err := time.Parse("15:04", startTime)
	if err != nil {
		return 0, service.ErrBadTimeOfDay
	}
	end, err := time.Parse("15:04", endTime)
	if err != nil {
		return 0, service.ErrBadTimeOfDay
	}
	if !end.After(start) {
		return 0, errors.New("end time must be after start time")
	}
	return end.Sub(start), nil
}
