package class_handler

import (
	"net/http"

	"github.com/benedekkincses/edu-bridge-sub000/internal/dtos/class_dto"
	app_error "github.com/benedekkincses/edu-bridge-sub000/internal/errors"
	"github.com/benedekkincses/edu-bridge-sub000/internal/handlers"
	"github.com/benedekkincses/edu-bridge-sub000/internal/middleware"
	class_service "github.com/benedekkincses/edu-bridge-sub000/internal/use-case/class-case"
	"github.com/benedekkincses/edu-bridge-sub000/state"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type ClassHandler struct {
	State    *state.AppState
	Validate *validator.Validate
	Service  class_service.ClassServiceContract
}

func NewClassHandler(appState *state.AppState, service class_service.ClassServiceContract) *ClassHandler {
	return &ClassHandler{
		State:    appState,
		Validate: validator.New(),
		Service:  service,
	}
}

func (h *ClassHandler) ListClasses(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		return app_error.Unauthorized("user id is not found in context")
	}

	resp, err := h.Service.ListClasses(r.Context(), userID)
	if err != nil {
		return err
	}

	handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse(resp, handlers.RequestID(r)))
	return nil
}

func (h *ClassHandler) ListClassMembers(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	classID := chi.URLParam(r, "classId")

	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		return app_error.Unauthorized("user id is not found in context")
	}

	resp, err := h.Service.ListClassMembers(r.Context(), userID, classID)
	if err != nil {
		return err
	}

	handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse(resp, handlers.RequestID(r)))
	return nil
}

func (h *ClassHandler) ListGroups(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	classID := chi.URLParam(r, "classId")

	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		return app_error.Unauthorized("user id is not found in context")
	}

	resp, err := h.Service.ListGroups(r.Context(), userID, classID)
	if err != nil {
		return err
	}

	handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse(resp, handlers.RequestID(r)))
	return nil
}

func (h *ClassHandler) CreateGroup(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req class_dto.CreateGroupRequest
	defer r.Body.Close()

	classID := chi.URLParam(r, "classId")

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.BadRequest("Invalid JSON", "body")
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.BadRequest("name is required", "validation")
	}

	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		return app_error.Unauthorized("user id is not found in context")
	}

	resp, err := h.Service.CreateGroup(r.Context(), req, userID, classID)
	if err != nil {
		return err
	}

	handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse(*resp, handlers.RequestID(r)))
	return nil
}

func (h *ClassHandler) AddGroupMember(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req class_dto.AddGroupMemberRequest
	defer r.Body.Close()

	groupID := chi.URLParam(r, "groupId")

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.BadRequest("Invalid JSON", "body")
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.BadRequest("userId is required", "validation")
	}

	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		return app_error.Unauthorized("user id is not found in context")
	}

	resp, err := h.Service.AddGroupMember(r.Context(), req, userID, groupID)
	if err != nil {
		return err
	}

	handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse(*resp, handlers.RequestID(r)))
	return nil
}
