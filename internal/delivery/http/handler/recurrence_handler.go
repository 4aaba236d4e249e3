package handler

import (
	"encoding/json"
	"net/http"

	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/usecase"
	"go-clinic-scheduling/pkg/response"
	"go-clinic-scheduling/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type RecurrenceHandler struct {
	recurrenceUsecase usecase.RecurrenceUsecase
	validator         *validator.CustomValidator
}

func NewRecurrenceHandler(recurrenceUsecase usecase.RecurrenceUsecase, validator *validator.CustomValidator) *RecurrenceHandler {
	return &RecurrenceHandler{
		recurrenceUsecase: recurrenceUsecase,
		validator:         validator,
	}
}

func (h *RecurrenceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid recurrence ID", nil)
		return
	}

	recurrence, err := h.recurrenceUsecase.Get(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrRecurrenceNotFound:
			response.NotFound(w, "Recurrence not found")
		case usecase.ErrRecurrenceNotOwned:
			response.Forbidden(w, "Recurrence does not belong to your calendar")
		default:
			response.InternalServerError(w, "Failed to get recurrence")
		}
		return
	}

	response.Success(w, http.StatusOK, "Recurrence retrieved successfully", recurrence)
}

func (h *RecurrenceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid recurrence ID", nil)
		return
	}

	var req dto.UpdateRecurrenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	recurrence, err := h.recurrenceUsecase.Update(r.Context(), id, &req)
	if err != nil {
		if writeSchedulingError(w, err) {
			return
		}
		switch err {
		case usecase.ErrRecurrenceNotFound:
			response.NotFound(w, "Recurrence not found")
		case usecase.ErrRecurrenceNotOwned:
			response.Forbidden(w, "Recurrence does not belong to your calendar")
		case usecase.ErrRecurrenceInactive:
			response.Error(w, http.StatusConflict, err.Error(), nil)
		case usecase.ErrInvalidDate:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case usecase.ErrRosterInvalid:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to update recurrence")
		}
		return
	}

	response.Success(w, http.StatusOK, "Recurrence updated successfully", recurrence)
}

func (h *RecurrenceHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid recurrence ID", nil)
		return
	}

	var req dto.FinalizeRecurrenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	recurrence, err := h.recurrenceUsecase.Finalize(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrRecurrenceNotFound:
			response.NotFound(w, "Recurrence not found")
		case usecase.ErrRecurrenceNotOwned:
			response.Forbidden(w, "Recurrence does not belong to your calendar")
		case usecase.ErrRecurrenceNotForever:
			response.Error(w, http.StatusConflict, err.Error(), nil)
		case usecase.ErrInvalidDate:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to finalize recurrence")
		}
		return
	}

	response.Success(w, http.StatusOK, "Recurrence finalized successfully", recurrence)
}
