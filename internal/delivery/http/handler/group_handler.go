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

type GroupHandler struct {
	groupUsecase usecase.GroupUsecase
	validator    *validator.CustomValidator
}

func NewGroupHandler(groupUsecase usecase.GroupUsecase, validator *validator.CustomValidator) *GroupHandler {
	return &GroupHandler{
		groupUsecase: groupUsecase,
		validator:    validator,
	}
}

func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	group, err := h.groupUsecase.Create(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to create group")
		return
	}

	response.Success(w, http.StatusCreated, "Group created successfully", group)
}

func (h *GroupHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid group ID", nil)
		return
	}

	group, err := h.groupUsecase.Get(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrGroupNotFound:
			response.NotFound(w, "Group not found")
		case usecase.ErrGroupNotOwned:
			response.Forbidden(w, "Group does not belong to your calendar")
		default:
			response.InternalServerError(w, "Failed to get group")
		}
		return
	}

	response.Success(w, http.StatusOK, "Group retrieved successfully", group)
}

func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groupUsecase.List(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list groups")
		return
	}

	response.Success(w, http.StatusOK, "Groups retrieved successfully", groups)
}

func (h *GroupHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	groupID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid group ID", nil)
		return
	}

	var req dto.AddGroupMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	group, err := h.groupUsecase.AddMember(r.Context(), groupID, &req)
	if err != nil {
		switch err {
		case usecase.ErrGroupNotFound:
			response.NotFound(w, "Group not found")
		case usecase.ErrGroupNotOwned:
			response.Forbidden(w, "Group does not belong to your calendar")
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to add group member")
		}
		return
	}

	response.Success(w, http.StatusOK, "Group member added successfully", group)
}

func (h *GroupHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	groupID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid group ID", nil)
		return
	}

	var req dto.RemoveGroupMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	group, err := h.groupUsecase.RemoveMember(r.Context(), groupID, &req)
	if err != nil {
		switch err {
		case usecase.ErrGroupNotFound:
			response.NotFound(w, "Group not found")
		case usecase.ErrGroupNotOwned:
			response.Forbidden(w, "Group does not belong to your calendar")
		case usecase.ErrGroupMemberNotFound:
			response.NotFound(w, "Patient is not a member of this group")
		default:
			response.InternalServerError(w, "Failed to remove group member")
		}
		return
	}

	response.Success(w, http.StatusOK, "Group member removed successfully", group)
}

func (h *GroupHandler) GenerateSessions(w http.ResponseWriter, r *http.Request) {
	groupID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid group ID", nil)
		return
	}

	var req dto.GenerateSessionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.groupUsecase.GenerateSessions(r.Context(), groupID, &req)
	if err != nil {
		switch err {
		case usecase.ErrGroupNotFound:
			response.NotFound(w, "Group not found")
		case usecase.ErrGroupNotOwned:
			response.Forbidden(w, "Group does not belong to your calendar")
		case usecase.ErrInvalidDate, usecase.ErrBadDateRange:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to generate group sessions")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Group sessions generated successfully", result)
}
