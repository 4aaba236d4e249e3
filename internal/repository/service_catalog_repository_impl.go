package repository

import (
	"errors"

	"go-clinic-scheduling/internal/domain/entity"
	domainRepo "go-clinic-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type serviceCatalogRepository struct{}

func NewServiceCatalogRepository() domainRepo.ServiceCatalogRepository {
	return &serviceCatalogRepository{}
}

func (r *serviceCatalogRepository) Create(db *gorm.DB, service *entity.ServiceCatalog) error {
	return db.Create(service).Error
}

func (r *serviceCatalogRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.ServiceCatalog, error) {
	var service entity.ServiceCatalog
	err := db.Where("id = ?", id).First(&service).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &service, nil
}

func (r *serviceCatalogRepository) FindByClinic(db *gorm.DB, clinicID uuid.UUID, limit, offset int) ([]entity.ServiceCatalog, int64, error) {
	var services []entity.ServiceCatalog
	var total int64

	query := db.Model(&entity.ServiceCatalog{}).Where("clinic_id = ?", clinicID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("name ASC").Limit(limit).Offset(offset).Find(&services).Error
	if err != nil {
		return nil, 0, err
	}
	return services, total, nil
}

func (r *serviceCatalogRepository) Update(db *gorm.DB, service *entity.ServiceCatalog) error {
	return db.Save(service).Error
}

func (r *serviceCatalogRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.ServiceCatalog{})
	return result.RowsAffected, result.Error
}
