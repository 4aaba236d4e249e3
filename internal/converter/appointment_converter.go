package converter

import (
	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:                 appointment.ID,
		ClinicID:           appointment.ClinicID,
		ProfessionalID:     appointment.ProfessionalID,
		PatientID:          appointment.PatientID,
		GroupID:            appointment.GroupID,
		RecurrenceID:       appointment.RecurrenceID,
		ScheduledAt:        appointment.ScheduledAt,
		EndAt:              appointment.EndAt,
		Status:             string(appointment.Status),
		Modality:           string(appointment.Modality),
		BlocksTime:         appointment.BlocksTime != nil && *appointment.BlocksTime,
		Notes:              appointment.Notes,
		Price:              appointment.Price,
		CancellationReason: appointment.CancellationReason,
		CreatedAt:          appointment.CreatedAt,
		UpdatedAt:          appointment.UpdatedAt,
	}

	// Include patient info if preloaded
	if appointment.Patient != nil {
		response.Patient = PatientToResponse(appointment.Patient)
	}

	if len(appointment.AdditionalProfessionals) > 0 {
		ids := make([]uuid.UUID, len(appointment.AdditionalProfessionals))
		for i, ap := range appointment.AdditionalProfessionals {
			ids[i] = ap.ProfessionalID
		}
		response.AdditionalProfessionals = ids
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to slice of AppointmentResponse DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		resp := AppointmentToResponse(&appointment)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// AppointmentToConflictResponse reduces an appointment to the identifying
// fields exposed in a 409 conflict body
func AppointmentToConflictResponse(appointment *entity.Appointment) dto.ConflictingAppointmentResponse {
	response := dto.ConflictingAppointmentResponse{
		AppointmentID: appointment.ID,
		ScheduledAt:   appointment.ScheduledAt,
		EndAt:         appointment.EndAt,
	}
	if appointment.Patient != nil {
		response.PatientName = appointment.Patient.FullName
	}
	return response
}

// AppointmentsToConflictResponses converts the colliding appointments of a
// conflict check into response DTOs
func AppointmentsToConflictResponses(appointments []entity.Appointment) []dto.ConflictingAppointmentResponse {
	responses := make([]dto.ConflictingAppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		responses[i] = AppointmentToConflictResponse(&appointment)
	}
	return responses
}
