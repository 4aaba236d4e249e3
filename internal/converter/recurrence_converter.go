package converter

import (
	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
)

// RecurrenceToResponse converts an AppointmentRecurrence entity to RecurrenceResponse DTO
func RecurrenceToResponse(recurrence *entity.AppointmentRecurrence) *dto.RecurrenceResponse {
	if recurrence == nil {
		return nil
	}

	response := &dto.RecurrenceResponse{
		ID:                recurrence.ID,
		ClinicID:          recurrence.ClinicID,
		ProfessionalID:    recurrence.ProfessionalID,
		PatientID:         recurrence.PatientID,
		DayOfWeek:         recurrence.DayOfWeek,
		StartTime:         recurrence.StartTime,
		EndTime:           recurrence.EndTime,
		DurationMinutes:   recurrence.DurationMinutes,
		RecurrenceType:    string(recurrence.RecurrenceType),
		RecurrenceEndType: string(recurrence.RecurrenceEndType),
		StartDate:         recurrence.StartDate.Format("2006-01-02"),
		Occurrences:       recurrence.Occurrences,
		Modality:          string(recurrence.Modality),
		Exceptions:        recurrence.Exceptions,
		IsActive:          recurrence.IsActive != nil && *recurrence.IsActive,
		CreatedAt:         recurrence.CreatedAt,
		UpdatedAt:         recurrence.UpdatedAt,
	}

	if recurrence.EndDate != nil {
		endDate := recurrence.EndDate.Format("2006-01-02")
		response.EndDate = &endDate
	}
	if recurrence.LastGeneratedDate != nil {
		lastGenerated := recurrence.LastGeneratedDate.Format("2006-01-02")
		response.LastGeneratedDate = &lastGenerated
	}

	if len(recurrence.AdditionalProfessionals) > 0 {
		ids := make([]uuid.UUID, len(recurrence.AdditionalProfessionals))
		for i, rp := range recurrence.AdditionalProfessionals {
			ids[i] = rp.ProfessionalID
		}
		response.AdditionalProfessionals = ids
	}

	return response
}

// RecurrenceWithInstancesToResponse bundles a recurrence template with its
// generated appointment instances
func RecurrenceWithInstancesToResponse(recurrence *entity.AppointmentRecurrence, appointments []entity.Appointment) *dto.RecurrenceWithInstancesResponse {
	if recurrence == nil {
		return nil
	}

	return &dto.RecurrenceWithInstancesResponse{
		Recurrence:   *RecurrenceToResponse(recurrence),
		Appointments: AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}
}
