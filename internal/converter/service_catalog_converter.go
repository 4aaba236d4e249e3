package converter

import (
	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/domain/entity"
)

// ServiceToResponse converts a ServiceCatalog entity to ServiceResponse DTO
func ServiceToResponse(service *entity.ServiceCatalog) *dto.ServiceResponse {
	if service == nil {
		return nil
	}

	return &dto.ServiceResponse{
		ID:              service.ID,
		ClinicID:        service.ClinicID,
		Name:            service.Name,
		Description:     service.Description,
		DurationMinutes: service.DurationMinutes,
		Price:           service.Price,
		IsActive:        service.IsActive != nil && *service.IsActive,
		CreatedAt:       service.CreatedAt,
		UpdatedAt:       service.UpdatedAt,
	}
}

// ServicesToResponses converts a slice of ServiceCatalog entities to slice of ServiceResponse DTOs
func ServicesToResponses(services []entity.ServiceCatalog) []dto.ServiceResponse {
	responses := make([]dto.ServiceResponse, len(services))
	for i, service := range services {
		resp := ServiceToResponse(&service)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
