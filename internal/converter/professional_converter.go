package converter

import (
	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/domain/entity"
)

// ProfessionalToResponse converts a ProfessionalProfile entity to
// ProfessionalResponse DTO. The user carries name, email and timestamps; pass
// profile.User when it is preloaded.
func ProfessionalToResponse(profile *entity.ProfessionalProfile, user *entity.User) *dto.ProfessionalResponse {
	if profile == nil {
		return nil
	}

	response := &dto.ProfessionalResponse{
		ID:                 profile.UserID,
		UserID:             profile.UserID,
		RegistrationNumber: profile.RegistrationNumber,
		Specialty:          profile.Specialty,
		Biography:          profile.Biography,
	}

	if user != nil {
		response.Name = user.FullName
		response.Email = user.Email
		response.CreatedAt = user.CreatedAt
		response.UpdatedAt = user.UpdatedAt
	}

	return response
}

// ProfessionalsToResponses converts a slice of ProfessionalProfile entities
// with preloaded users to response DTOs
func ProfessionalsToResponses(profiles []entity.ProfessionalProfile) []dto.ProfessionalResponse {
	responses := make([]dto.ProfessionalResponse, len(profiles))
	for i, profile := range profiles {
		resp := ProfessionalToResponse(&profile, &profile.User)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
