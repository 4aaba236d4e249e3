package repository

import (
	"go-clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceCatalogRepository interface {
	Create(db *gorm.DB, service *entity.ServiceCatalog) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.ServiceCatalog, error)
	FindByClinic(db *gorm.DB, clinicID uuid.UUID, limit, offset int) ([]entity.ServiceCatalog, int64, error)
	Update(db *gorm.DB, service *entity.ServiceCatalog) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
