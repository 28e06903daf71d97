package thread_handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/benedekkincses/edu-bridge-sub000/internal/dtos/thread_dto"
	app_error "github.com/benedekkincses/edu-bridge-sub000/internal/errors"
	"github.com/benedekkincses/edu-bridge-sub000/internal/handlers"
	"github.com/benedekkincses/edu-bridge-sub000/internal/middleware"
	thread_service "github.com/benedekkincses/edu-bridge-sub000/internal/use-case/thread-case"
	"github.com/benedekkincses/edu-bridge-sub000/state"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type ThreadHandler struct {
	State    *state.AppState
	Validate *validator.Validate
	Service  thread_service.ThreadServiceContract
}

func NewThreadHandler(appState *state.AppState, service thread_service.ThreadServiceContract) *ThreadHandler {
	return &ThreadHandler{
		State:    appState,
		Validate: validator.New(),
		Service:  service,
	}
}

func (h *ThreadHandler) ListThreads(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		return app_error.Unauthorized("user id is not found in context")
	}

	resp, err := h.Service.ListThreads(r.Context(), userID)
	if err != nil {
		return err
	}

	handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse(resp, handlers.RequestID(r)))
	return nil
}

func (h *ThreadHandler) CreateDirectThread(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req thread_dto.CreateDirectThreadRequest
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.BadRequest("Invalid JSON", "body")
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.BadRequest("otherUserId is required", "validation")
	}

	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		return app_error.Unauthorized("user id is not found in context")
	}

	resp, err := h.Service.CreateDirectThread(r.Context(), userID, req.OtherUserID)
	if err != nil {
		return err
	}

	handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse(*resp, handlers.RequestID(r)))
	return nil
}

func (h *ThreadHandler) CreateGroupThread(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	groupID := chi.URLParam(r, "groupId")

	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		return app_error.Unauthorized("user id is not found in context")
	}

	resp, err := h.Service.CreateGroupThread(r.Context(), userID, groupID)
	if err != nil {
		return err
	}

	handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse(*resp, handlers.RequestID(r)))
	return nil
}

func (h *ThreadHandler) CreateClassThread(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	classID := chi.URLParam(r, "classId")

	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		return app_error.Unauthorized("user id is not found in context")
	}

	resp, err := h.Service.CreateClassThread(r.Context(), userID, classID)
	if err != nil {
		return err
	}

	handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse(*resp, handlers.RequestID(r)))
	return nil
}

func (h *ThreadHandler) GetThreadMessages(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	threadID := chi.URLParam(r, "threadId")

	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		return app_error.Unauthorized("user id is not found in context")
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	query := thread_dto.GetMessagesQuery{Limit: limit, Offset: offset}
	if err := h.Validate.Struct(query); err != nil {
		return app_error.BadRequest("invalid limit or offset", "validation")
	}

	resp, err := h.Service.GetThreadMessages(r.Context(), threadID, userID, limit, offset)
	if err != nil {
		return err
	}

	handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse(*resp, handlers.RequestID(r)))
	return nil
}

func (h *ThreadHandler) SendMessage(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req thread_dto.SendMessageRequest
	defer r.Body.Close()

	threadID := chi.URLParam(r, "threadId")

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.BadRequest("Invalid JSON", "body")
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.BadRequest("content is required", "validation")
	}

	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		return app_error.Unauthorized("user id is not found in context")
	}

	resp, err := h.Service.SendMessage(r.Context(), req, threadID, userID)
	if err != nil {
		return err
	}

	handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse(*resp, handlers.RequestID(r)))
	return nil
}

func (h *ThreadHandler) MarkMessageAsRead(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	messageID := chi.URLParam(r, "messageId")

	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		return app_error.Unauthorized("user id is not found in context")
	}

	resp, err := h.Service.MarkMessageAsRead(r.Context(), messageID, userID)
	if err != nil {
		return err
	}

	handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse(*resp, handlers.RequestID(r)))
	return nil
}

// PollNewMessages holds the request open until a qualifying message
// exists or the timeout elapses. since is an ISO8601 instant, timeout
// is in milliseconds.
func (h *ThreadHandler) PollNewMessages(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	threadID := chi.URLParam(r, "threadId")

	sinceStr := r.URL.Query().Get("since")
	if sinceStr == "" {
		return app_error.BadRequest("since is required", "since")
	}
	since, parseErr := time.Parse(time.RFC3339Nano, sinceStr)
	if parseErr != nil {
		return app_error.BadRequest("since must be an ISO8601 timestamp", "since")
	}

	timeoutMs, _ := strconv.Atoi(r.URL.Query().Get("timeout"))

	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		return app_error.Unauthorized("user id is not found in context")
	}

	resp, err := h.Service.PollNewMessages(r.Context(), threadID, userID, since, time.Duration(timeoutMs)*time.Millisecond)
	if err != nil {
		return err
	}

	handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse(*resp, handlers.RequestID(r)))
	return nil
}
