package converter

import (
	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/domain/entity"
)

// GroupToResponse converts a TherapyGroup entity to GroupResponse DTO.
// Memberships are included when preloaded.
func GroupToResponse(group *entity.TherapyGroup) *dto.GroupResponse {
	if group == nil {
		return nil
	}

	response := &dto.GroupResponse{
		ID:              group.ID,
		ClinicID:        group.ClinicID,
		ProfessionalID:  group.ProfessionalID,
		Name:            group.Name,
		DayOfWeek:       group.DayOfWeek,
		StartTime:       group.StartTime,
		DurationMinutes: group.DurationMinutes,
		RecurrenceType:  string(group.RecurrenceType),
		IsActive:        group.IsActive != nil && *group.IsActive,
		CreatedAt:       group.CreatedAt,
		UpdatedAt:       group.UpdatedAt,
	}

	if len(group.Memberships) > 0 {
		response.Members = MembershipsToResponses(group.Memberships)
	}

	return response
}

// GroupsToResponses converts a slice of TherapyGroup entities to slice of GroupResponse DTOs
func GroupsToResponses(groups []entity.TherapyGroup) []dto.GroupResponse {
	responses := make([]dto.GroupResponse, len(groups))
	for i, group := range groups {
		resp := GroupToResponse(&group)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// MembershipsToResponses converts GroupMembership entities to response DTOs
func MembershipsToResponses(memberships []entity.GroupMembership) []dto.GroupMembershipResponse {
	responses := make([]dto.GroupMembershipResponse, len(memberships))
	for i, membership := range memberships {
		response := dto.GroupMembershipResponse{
			PatientID:   membership.PatientID,
			PatientName: membership.Patient.FullName,
			JoinedAt:    membership.JoinedAt.Format("2006-01-02"),
		}
		if membership.LeftAt != nil {
			leftAt := membership.LeftAt.Format("2006-01-02")
			response.LeftAt = &leftAt
		}
		responses[i] = response
	}
	return responses
}
