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

type AvailabilityHandler struct {
	availabilityUsecase usecase.AvailabilityUsecase
	validator           *validator.CustomValidator
}

func NewAvailabilityHandler(availabilityUsecase usecase.AvailabilityUsecase, validator *validator.CustomValidator) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityUsecase: availabilityUsecase,
		validator:           validator,
	}
}

func (h *AvailabilityHandler) SaveRules(w http.ResponseWriter, r *http.Request) {
	var req dto.SaveAvailabilityRulesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	rules, err := h.availabilityUsecase.SaveRules(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrNotOwnCalendar:
			response.Forbidden(w, "Cannot manage another professional's availability")
		case usecase.ErrRuleTimesInverted:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to save availability rules")
		}
		return
	}

	response.Success(w, http.StatusOK, "Availability rules saved successfully", rules)
}

func (h *AvailabilityHandler) ListRules(w http.ResponseWriter, r *http.Request) {
	professionalID, err := uuid.Parse(mux.Vars(r)["professionalId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid professional ID", nil)
		return
	}

	rules, err := h.availabilityUsecase.ListRules(r.Context(), professionalID)
	if err != nil {
		response.InternalServerError(w, "Failed to list availability rules")
		return
	}

	response.Success(w, http.StatusOK, "Availability rules retrieved successfully", rules)
}

func (h *AvailabilityHandler) CreateException(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateExceptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	exception, err := h.availabilityUsecase.CreateException(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrNotOwnCalendar:
			response.Forbidden(w, "Cannot manage another professional's availability")
		case usecase.ErrInvalidDate, usecase.ErrExceptionTimesRequired, usecase.ErrRuleTimesInverted:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case usecase.ErrDuplicateFullDay, usecase.ErrExceptionOverlap:
			response.Error(w, http.StatusConflict, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to create availability exception")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Availability exception created successfully", exception)
}

func (h *AvailabilityHandler) ListExceptions(w http.ResponseWriter, r *http.Request) {
	professionalID, err := uuid.Parse(mux.Vars(r)["professionalId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid professional ID", nil)
		return
	}

	query := r.URL.Query()
	exceptions, err := h.availabilityUsecase.ListExceptions(r.Context(), professionalID, query.Get("from"), query.Get("to"))
	if err != nil {
		switch err {
		case usecase.ErrInvalidDate:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to list availability exceptions")
		}
		return
	}

	response.Success(w, http.StatusOK, "Availability exceptions retrieved successfully", exceptions)
}

func (h *AvailabilityHandler) DeleteException(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid exception ID", nil)
		return
	}

	if err := h.availabilityUsecase.DeleteException(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrExceptionNotFound:
			response.NotFound(w, "Availability exception not found")
		case usecase.ErrNotOwnCalendar:
			response.Forbidden(w, "Cannot manage another professional's availability")
		default:
			response.InternalServerError(w, "Failed to delete availability exception")
		}
		return
	}

	response.Success(w, http.StatusOK, "Availability exception deleted successfully", nil)
}
