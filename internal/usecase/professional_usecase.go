package usecase

import (
	"context"
	"errors"

	"go-clinic-scheduling/internal/converter"
	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/domain/repository"
	"go-clinic-scheduling/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrProfessionalNotFound = errors.New("professional not found")

type ProfessionalUsecase interface {
	GetAll(ctx context.Context) ([]dto.ProfessionalResponse, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*dto.ProfessionalResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfessionalProfileRequest) (*dto.ProfessionalResponse, error)
}

type professionalUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	professionalRepo repository.ProfessionalRepository
	userRepo         repository.UserRepository
}

func NewProfessionalUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	professionalRepo repository.ProfessionalRepository,
	userRepo repository.UserRepository,
) ProfessionalUsecase {
	return &professionalUsecase{
		db:               db,
		log:              log,
		professionalRepo: professionalRepo,
		userRepo:         userRepo,
	}
}

func (u *professionalUsecase) GetAll(ctx context.Context) ([]dto.ProfessionalResponse, error) {
	act, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	profiles, err := u.professionalRepo.FindByClinic(u.db.WithContext(ctx), act.ClinicID)
	if err != nil {
		u.log.Warnf("Failed to list professionals: %+v", err)
		return nil, err
	}

	return converter.ProfessionalsToResponses(profiles), nil
}

func (u *professionalUsecase) GetByID(ctx context.Context, userID uuid.UUID) (*dto.ProfessionalResponse, error) {
	act, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	profile, err := u.professionalRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		return nil, err
	}
	if profile == nil || profile.User.ClinicID != act.ClinicID {
		return nil, ErrProfessionalNotFound
	}

	return converter.ProfessionalToResponse(profile, &profile.User), nil
}

// UpdateProfile lets a professional edit their own profile; admins can edit
// any profile in the clinic.
func (u *professionalUsecase) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfessionalProfileRequest) (*dto.ProfessionalResponse, error) {
	act, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if act.scopedToOwn(service.ResourceProfessionals, service.ActionWrite) && userID != act.UserID {
		return nil, ErrProfessionalNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.professionalRepo.FindByUserID(tx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil || profile.User.ClinicID != act.ClinicID {
		return nil, ErrProfessionalNotFound
	}

	if req.RegistrationNumber != nil {
		profile.RegistrationNumber = *req.RegistrationNumber
	}
	if req.Specialty != nil {
		profile.Specialty = *req.Specialty
	}
	if req.Biography != nil {
		profile.Biography = *req.Biography
	}

	if err := tx.Omit("User", "AvailabilityRules", "Appointments").Save(profile).Error; err != nil {
		u.log.Errorf("Failed to update professional profile %s: %+v", userID, err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return converter.ProfessionalToResponse(profile, &profile.User), nil
}
