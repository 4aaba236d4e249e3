package converter

import (
	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/domain/entity"
)

// AvailabilityRuleToResponse converts an AvailabilityRule entity to AvailabilityRuleResponse DTO
func AvailabilityRuleToResponse(rule *entity.AvailabilityRule) *dto.AvailabilityRuleResponse {
	if rule == nil {
		return nil
	}

	return &dto.AvailabilityRuleResponse{
		ID:             rule.ID,
		ProfessionalID: rule.ProfessionalID,
		DayOfWeek:      rule.DayOfWeek,
		StartTime:      rule.StartTime,
		EndTime:        rule.EndTime,
		IsActive:       rule.IsActive != nil && *rule.IsActive,
		CreatedAt:      rule.CreatedAt,
		UpdatedAt:      rule.UpdatedAt,
	}
}

// AvailabilityRulesToResponses converts a slice of AvailabilityRule entities to response DTOs
func AvailabilityRulesToResponses(rules []entity.AvailabilityRule) []dto.AvailabilityRuleResponse {
	responses := make([]dto.AvailabilityRuleResponse, len(rules))
	for i, rule := range rules {
		resp := AvailabilityRuleToResponse(&rule)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// ExceptionToResponse converts an AvailabilityException entity to ExceptionResponse DTO
func ExceptionToResponse(exception *entity.AvailabilityException) *dto.ExceptionResponse {
	if exception == nil {
		return nil
	}

	return &dto.ExceptionResponse{
		ID:             exception.ID,
		ProfessionalID: exception.ProfessionalID,
		Date:           exception.Date.Format("2006-01-02"),
		IsAvailable:    exception.IsAvailable != nil && *exception.IsAvailable,
		StartTime:      exception.StartTime,
		EndTime:        exception.EndTime,
		Reason:         exception.Reason,
		CreatedAt:      exception.CreatedAt,
	}
}

// ExceptionsToResponses converts a slice of AvailabilityException entities to response DTOs
func ExceptionsToResponses(exceptions []entity.AvailabilityException) []dto.ExceptionResponse {
	responses := make([]dto.ExceptionResponse, len(exceptions))
	for i, exception := range exceptions {
		resp := ExceptionToResponse(&exception)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
