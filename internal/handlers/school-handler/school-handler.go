package school_handler

import (
	"net/http"

	app_error "github.com/benedekkincses/edu-bridge-sub000/internal/errors"
	"github.com/benedekkincses/edu-bridge-sub000/internal/handlers"
	"github.com/benedekkincses/edu-bridge-sub000/internal/middleware"
	school_service "github.com/benedekkincses/edu-bridge-sub000/internal/use-case/school-case"
	"github.com/benedekkincses/edu-bridge-sub000/state"
	"github.com/go-chi/chi/v5"
)

type SchoolHandler struct {
	State   *state.AppState
	Service school_service.SchoolServiceContract
}

func NewSchoolHandler(appState *state.AppState, service school_service.SchoolServiceContract) *SchoolHandler {
	return &SchoolHandler{
		State:   appState,
		Service: service,
	}
}

func (h *SchoolHandler) ListSchools(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		return app_error.Unauthorized("user id is not found in context")
	}

	resp, err := h.Service.ListSchools(r.Context(), userID)
	if err != nil {
		return err
	}

	handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse(resp, handlers.RequestID(r)))
	return nil
}

func (h *SchoolHandler) ListSchoolUsers(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	schoolID := chi.URLParam(r, "schoolId")

	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		return app_error.Unauthorized("user id is not found in context")
	}

	resp, err := h.Service.ListSchoolUsers(r.Context(), userID, schoolID)
	if err != nil {
		return err
	}

	handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse(resp, handlers.RequestID(r)))
	return nil
}
