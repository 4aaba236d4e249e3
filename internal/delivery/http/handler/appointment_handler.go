package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/domain/entity"
	"go-clinic-scheduling/internal/service"
	"go-clinic-scheduling/internal/usecase"
	"go-clinic-scheduling/pkg/response"
	"go-clinic-scheduling/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

// writeSchedulingError maps the structured scheduling failures shared by
// single and recurring booking endpoints. Returns false when the error is
// not one of them and the caller should keep matching.
func writeSchedulingError(w http.ResponseWriter, err error) bool {
	var conflictErr *usecase.ConflictError
	if errors.As(err, &conflictErr) {
		response.Conflict(w, dto.ConflictResponse{
			Error:                   conflictErr.Error(),
			Code:                    conflictErr.Code,
			ConflictDate:            conflictErr.ConflictDate.Format("2006-01-02"),
			OccurrenceIndex:         conflictErr.OccurrenceIndex,
			ConflictingAppointments: conflictErr.Conflicts,
		})
		return true
	}

	var availErr *usecase.AvailabilityError
	if errors.As(err, &availErr) {
		response.UnprocessableEntity(w, dto.AvailabilityViolationResponse{
			Error:           availErr.Error(),
			Reason:          availErr.Reason,
			ConflictDate:    availErr.ConflictDate.Format("2006-01-02"),
			OccurrenceIndex: availErr.OccurrenceIndex,
		})
		return true
	}

	return false
}

func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := &entity.AppointmentFilter{
		StartAt: query.Get("start_date"),
		EndAt:   query.Get("end_date"),
		Status:  query.Get("status"),
	}
	if raw := query.Get("professional_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid professional ID", nil)
			return
		}
		filter.ProfessionalID = &id
	}
	if raw := query.Get("patient_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
			return
		}
		filter.PatientID = &id
	}

	appointments, err := h.appointmentUsecase.List(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to list appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	appointment, err := h.appointmentUsecase.Get(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrAppointmentNotOwned:
			response.Forbidden(w, "Appointment does not belong to your calendar")
		default:
			response.InternalServerError(w, "Failed to get appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Create(r.Context(), &req)
	if err != nil {
		if writeSchedulingError(w, err) {
			return
		}
		switch err {
		case usecase.ErrInvalidDate:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrServiceNotFound:
			response.NotFound(w, "Service not found")
		case usecase.ErrProfessionalNotFound:
			response.NotFound(w, "Professional not found")
		case usecase.ErrRosterInvalid:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case usecase.ErrAppointmentNotOwned:
			response.Forbidden(w, "Cannot book on another professional's calendar")
		default:
			response.InternalServerError(w, "Failed to create appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment created successfully", appointment)
}

func (h *AppointmentHandler) CreateRecurring(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRecurringAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	series, err := h.appointmentUsecase.CreateRecurring(r.Context(), &req)
	if err != nil {
		if writeSchedulingError(w, err) {
			return
		}
		switch err {
		case usecase.ErrInvalidDate:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrServiceNotFound:
			response.NotFound(w, "Service not found")
		case usecase.ErrProfessionalNotFound:
			response.NotFound(w, "Professional not found")
		case usecase.ErrRosterInvalid:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case usecase.ErrAppointmentNotOwned:
			response.Forbidden(w, "Cannot book on another professional's calendar")
		default:
			response.InternalServerError(w, "Failed to create recurring appointments")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Recurring appointments created successfully", series)
}

func (h *AppointmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.UpdateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Update(r.Context(), id, &req)
	if err != nil {
		if writeSchedulingError(w, err) {
			return
		}
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrAppointmentNotOwned:
			response.Forbidden(w, "Appointment does not belong to your calendar")
		case usecase.ErrInvalidDate:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case usecase.ErrServiceNotFound:
			response.NotFound(w, "Service not found")
		default:
			response.InternalServerError(w, "Failed to update appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment updated successfully", appointment)
}

// transition handles the shared shape of the status endpoints.
func (h *AppointmentHandler) transition(
	w http.ResponseWriter,
	r *http.Request,
	message string,
	fn func(r *http.Request, id uuid.UUID) (*dto.AppointmentResponse, error),
) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	appointment, err := fn(r, id)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrAppointmentNotOwned:
			response.Forbidden(w, "Appointment does not belong to your calendar")
		case usecase.ErrInvalidStatusTransition:
			response.Error(w, http.StatusConflict, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to update appointment status")
		}
		return
	}

	response.Success(w, http.StatusOK, message, appointment)
}

func (h *AppointmentHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "Appointment confirmed successfully",
		func(r *http.Request, id uuid.UUID) (*dto.AppointmentResponse, error) {
			return h.appointmentUsecase.Confirm(r.Context(), id)
		})
}

func (h *AppointmentHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "Appointment finalized successfully",
		func(r *http.Request, id uuid.UUID) (*dto.AppointmentResponse, error) {
			return h.appointmentUsecase.Finalize(r.Context(), id)
		})
}

func (h *AppointmentHandler) MarkNoShow(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "Appointment marked as no-show",
		func(r *http.Request, id uuid.UUID) (*dto.AppointmentResponse, error) {
			return h.appointmentUsecase.MarkNoShow(r.Context(), id)
		})
}

func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	var req dto.CancelAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	h.transition(w, r, "Appointment cancelled successfully",
		func(r *http.Request, id uuid.UUID) (*dto.AppointmentResponse, error) {
			return h.appointmentUsecase.Cancel(r.Context(), id, &req)
		})
}

func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	if err := h.appointmentUsecase.Delete(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrAppointmentNotOwned:
			response.Forbidden(w, "Appointment does not belong to your calendar")
		default:
			response.InternalServerError(w, "Failed to delete appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment deleted successfully", nil)
}

// ConfirmByToken confirms an appointment through the single-use link sent to
// the patient. No authentication; the token is the credential.
func (h *AppointmentHandler) ConfirmByToken(w http.ResponseWriter, r *http.Request) {
	h.byToken(w, r, "Appointment confirmed successfully", h.appointmentUsecase.ConfirmByToken)
}

func (h *AppointmentHandler) CancelByToken(w http.ResponseWriter, r *http.Request) {
	h.byToken(w, r, "Appointment cancelled successfully", h.appointmentUsecase.CancelByToken)
}

func (h *AppointmentHandler) byToken(
	w http.ResponseWriter,
	r *http.Request,
	message string,
	fn func(ctx context.Context, token string) (*dto.AppointmentResponse, error),
) {
	token := r.URL.Query().Get("token")
	if token == "" {
		response.Error(w, http.StatusBadRequest, "Missing token", nil)
		return
	}

	appointment, err := fn(r.Context(), token)
	if err != nil {
		switch err {
		case service.ErrActionTokenInvalid:
			response.Error(w, http.StatusUnauthorized, "Invalid or expired token", nil)
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrInvalidStatusTransition:
			response.Error(w, http.StatusConflict, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to process token")
		}
		return
	}

	response.Success(w, http.StatusOK, message, appointment)
}
