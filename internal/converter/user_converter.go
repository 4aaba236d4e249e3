package converter

import (
	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO.
// Includes the professional profile if it is loaded.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	response := &dto.UserResponse{
		ID:        user.ID,
		ClinicID:  user.ClinicID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      user.Role.RoleName,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}

	if user.ProfessionalProfile != nil {
		response.ProfessionalProfile = ProfessionalToResponse(user.ProfessionalProfile, user)
	}

	return response
}
