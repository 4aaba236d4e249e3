package usecase

import (
	"context"
	"errors"

	"go-clinic-scheduling/internal/converter"
	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/domain/entity"
	"go-clinic-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrCatalogServiceNotFound = errors.New("service not found in catalog")

type ServiceCatalogUsecase interface {
	Create(ctx context.Context, req *dto.CreateServiceRequest) (*dto.ServiceResponse, error)
	GetAll(ctx context.Context, page, limit int) ([]dto.ServiceResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ServiceResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateServiceRequest) (*dto.ServiceResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type serviceCatalogUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	serviceRepo repository.ServiceCatalogRepository
}

func NewServiceCatalogUsecase(db *gorm.DB, log *logrus.Logger, serviceRepo repository.ServiceCatalogRepository) ServiceCatalogUsecase {
	return &serviceCatalogUsecase{
		db:          db,
		log:         log,
		serviceRepo: serviceRepo,
	}
}

func (u *serviceCatalogUsecase) Create(ctx context.Context, req *dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	act, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	catalogService := &entity.ServiceCatalog{
		ClinicID:        act.ClinicID,
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
	}
	if err := u.serviceRepo.Create(u.db.WithContext(ctx), catalogService); err != nil {
		u.log.Errorf("Failed to create catalog service: %+v", err)
		return nil, err
	}

	return converter.ServiceToResponse(catalogService), nil
}

func (u *serviceCatalogUsecase) GetAll(ctx context.Context, page, limit int) ([]dto.ServiceResponse, int64, error) {
	act, err := actorFromContext(ctx)
	if err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	services, total, err := u.serviceRepo.FindByClinic(u.db.WithContext(ctx), act.ClinicID, limit, offset)
	if err != nil {
		u.log.Warnf("Failed to list catalog services: %+v", err)
		return nil, 0, err
	}

	return converter.ServicesToResponses(services), total, nil
}

func (u *serviceCatalogUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.ServiceResponse, error) {
	act, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	catalogService, err := u.serviceRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if catalogService == nil || catalogService.ClinicID != act.ClinicID {
		return nil, ErrCatalogServiceNotFound
	}

	return converter.ServiceToResponse(catalogService), nil
}

func (u *serviceCatalogUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateServiceRequest) (*dto.ServiceResponse, error) {
	act, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	catalogService, err := u.serviceRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if catalogService == nil || catalogService.ClinicID != act.ClinicID {
		return nil, ErrCatalogServiceNotFound
	}

	if req.Name != nil {
		catalogService.Name = *req.Name
	}
	if req.Description != nil {
		catalogService.Description = *req.Description
	}
	if req.DurationMinutes != nil {
		catalogService.DurationMinutes = *req.DurationMinutes
	}
	if req.Price != nil {
		catalogService.Price = *req.Price
	}
	if req.IsActive != nil {
		catalogService.IsActive = req.IsActive
	}

	if err := u.serviceRepo.Update(u.db.WithContext(ctx), catalogService); err != nil {
		u.log.Errorf("Failed to update catalog service %s: %+v", id, err)
		return nil, err
	}

	return converter.ServiceToResponse(catalogService), nil
}

func (u *serviceCatalogUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	act, err := actorFromContext(ctx)
	if err != nil {
		return err
	}

	catalogService, err := u.serviceRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		return err
	}
	if catalogService == nil || catalogService.ClinicID != act.ClinicID {
		return ErrCatalogServiceNotFound
	}

	rows, err := u.serviceRepo.Delete(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Errorf("Failed to delete catalog service %s: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrCatalogServiceNotFound
	}
	return nil
}
