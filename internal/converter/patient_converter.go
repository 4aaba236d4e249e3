package converter

import (
	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to PatientResponse DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	response := &dto.PatientResponse{
		ID:        patient.ID,
		ClinicID:  patient.ClinicID,
		FullName:  patient.FullName,
		Email:     patient.Email,
		Phone:     patient.Phone,
		Notes:     patient.Notes,
		IsActive:  patient.IsActive != nil && *patient.IsActive,
		CreatedAt: patient.CreatedAt,
		UpdatedAt: patient.UpdatedAt,
	}

	if patient.BirthDate != nil {
		birthDate := patient.BirthDate.Format("2006-01-02")
		response.BirthDate = &birthDate
	}

	return response
}

// PatientsToResponses converts a slice of Patient entities to slice of PatientResponse DTOs
func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i, patient := range patients {
		resp := PatientToResponse(&patient)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
