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

var ErrPatientNotFound = errors.New("patient not found")

type PatientUsecase interface {
	Create(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	GetAll(ctx context.Context, page, limit int) (*dto.PatientListResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type patientUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	loc          *time.Location
	patientRepo  repository.PatientRepository
	auditService service.AuditService
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	loc *time.Location,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		db:           db,
		log:          log,
		loc:          loc,
		patientRepo:  patientRepo,
		auditService: auditService,
	}
}

func (u *patientUsecase) Create(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	act, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	patient := &entity.Patient{
		ClinicID: act.ClinicID,
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Notes:    req.Notes,
	}
	if req.BirthDate != "" {
		birthDate, err := parseDateIn(req.BirthDate, u.loc)
		if err != nil {
			return nil, err
		}
		patient.BirthDate = &birthDate
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.patientRepo.Create(tx, patient); err != nil {
		u.log.Errorf("Failed to create patient: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &act.UserID, entity.AuditActionPatientCreate,
		"patient", patient.ID.String(), patient); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	u.log.Infof("Patient created: id=%s", patient.ID)
	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetAll(ctx context.Context, page, limit int) (*dto.PatientListResponse, error) {
	clinicID, ok := middleware.GetClinicIDFromContext(ctx)
	if !ok {
		return nil, ErrActorNotFound
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	patients, total, err := u.patientRepo.FindByClinic(u.db.WithContext(ctx), clinicID, limit, offset)
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Total:    total,
	}, nil
}

func (u *patientUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error) {
	clinicID, ok := middleware.GetClinicIDFromContext(ctx)
	if !ok {
		return nil, ErrActorNotFound
	}

	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if patient == nil || patient.ClinicID != clinicID {
		return nil, ErrPatientNotFound
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	act, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByID(tx, id)
	if err != nil {
		return nil, err
	}
	if patient == nil || patient.ClinicID != act.ClinicID {
		return nil, ErrPatientNotFound
	}

	oldValue := *patient

	if req.FullName != nil {
		patient.FullName = *req.FullName
	}
	if req.Email != nil {
		patient.Email = *req.Email
	}
	if req.Phone != nil {
		patient.Phone = *req.Phone
	}
	if req.BirthDate != nil {
		birthDate, err := parseDateIn(*req.BirthDate, u.loc)
		if err != nil {
			return nil, err
		}
		patient.BirthDate = &birthDate
	}
	if req.Notes != nil {
		patient.Notes = *req.Notes
	}
	if req.IsActive != nil {
		patient.IsActive = req.IsActive
	}

	if err := u.patientRepo.Update(tx, patient); err != nil {
		u.log.Errorf("Failed to update patient %s: %+v", id, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &act.UserID, entity.AuditActionPatientUpdate,
		"patient", patient.ID.String(), oldValue, patient); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	act, err := actorFromContext(ctx)
	if err != nil {
		return err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByID(tx, id)
	if err != nil {
		return err
	}
	if patient == nil || patient.ClinicID != act.ClinicID {
		return ErrPatientNotFound
	}

	rows, err := u.patientRepo.Delete(tx, id)
	if err != nil {
		u.log.Errorf("Failed to delete patient %s: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrPatientNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, &act.UserID, entity.AuditActionPatientDelete,
		"patient", id.String(), patient); err != nil {
		return err
	}

	return tx.Commit().Error
}
