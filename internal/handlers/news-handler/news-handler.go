package news_handler

import (
	"net/http"

	"github.com/benedekkincses/edu-bridge-sub000/internal/dtos/news_dto"
	app_error "github.com/benedekkincses/edu-bridge-sub000/internal/errors"
	"github.com/benedekkincses/edu-bridge-sub000/internal/handlers"
	"github.com/benedekkincses/edu-bridge-sub000/internal/middleware"
	news_service "github.com/benedekkincses/edu-bridge-sub000/internal/use-case/news-case"
	"github.com/benedekkincses/edu-bridge-sub000/state"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type NewsHandler struct {
	State    *state.AppState
	Validate *validator.Validate
	Service  news_service.NewsServiceContract
}

func NewNewsHandler(appState *state.AppState, service news_service.NewsServiceContract) *NewsHandler {
	return &NewsHandler{
		State:    appState,
		Validate: validator.New(),
		Service:  service,
	}
}

// ListNews serves both scopes; exactly one of schoolId and classId must
// be present as a query parameter.
func (h *NewsHandler) ListNews(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	schoolID := r.URL.Query().Get("schoolId")
	classID := r.URL.Query().Get("classId")

	if (schoolID == "") == (classID == "") {
		return app_error.BadRequest("exactly one of schoolId and classId is required", "scope")
	}

	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		return app_error.Unauthorized("user id is not found in context")
	}

	var (
		resp []news_dto.NewsResponse
		err  *app_error.AppError
	)
	if schoolID != "" {
		resp, err = h.Service.ListSchoolPosts(r.Context(), userID, schoolID)
	} else {
		resp, err = h.Service.ListClassPosts(r.Context(), userID, classID)
	}
	if err != nil {
		return err
	}

	handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse(resp, handlers.RequestID(r)))
	return nil
}

func (h *NewsHandler) CreateNews(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req news_dto.CreateNewsRequest
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.BadRequest("Invalid JSON", "body")
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.BadRequest("invalid news post fields", "validation")
	}

	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		return app_error.Unauthorized("user id is not found in context")
	}

	resp, err := h.Service.CreatePost(r.Context(), req, userID)
	if err != nil {
		return err
	}

	handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse(*resp, handlers.RequestID(r)))
	return nil
}

func (h *NewsHandler) DeleteNews(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	newsID := chi.URLParam(r, "newsId")

	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		return app_error.Unauthorized("user id is not found in context")
	}

	if err := h.Service.DeletePost(r.Context(), userID, newsID); err != nil {
		return err
	}

	handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse("deleted", handlers.RequestID(r)))
	return nil
}

func (h *NewsHandler) ToggleLike(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	newsID := chi.URLParam(r, "newsId")

	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		return app_error.Unauthorized("user id is not found in context")
	}

	resp, err := h.Service.ToggleLike(r.Context(), userID, newsID)
	if err != nil {
		return err
	}

	handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse(*resp, handlers.RequestID(r)))
	return nil
}

func (h *NewsHandler) ToggleVote(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	pollOptionID := chi.URLParam(r, "pollOptionId")

	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		return app_error.Unauthorized("user id is not found in context")
	}

	resp, err := h.Service.ToggleVote(r.Context(), userID, pollOptionID)
	if err != nil {
		return err
	}

	handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse(*resp, handlers.RequestID(r)))
	return nil
}

func (h *NewsHandler) SchoolNewsPermissions(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	schoolID := chi.URLParam(r, "schoolId")

	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		return app_error.Unauthorized("user id is not found in context")
	}

	resp, err := h.Service.SchoolNewsPermissions(r.Context(), userID, schoolID)
	if err != nil {
		return err
	}

	handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse(*resp, handlers.RequestID(r)))
	return nil
}

func (h *NewsHandler) ClassNewsPermissions(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	classID := chi.URLParam(r, "classId")

	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		return app_error.Unauthorized("user id is not found in context")
	}

	resp, err := h.Service.ClassNewsPermissions(r.Context(), userID, classID)
	if err != nil {
		return err
	}

	handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse(*resp, handlers.RequestID(r)))
	return nil
}
