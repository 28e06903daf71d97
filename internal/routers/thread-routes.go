package routers

import (
	"net/http"
	"time"

	"github.com/benedekkincses/edu-bridge-sub000/config"
	"github.com/benedekkincses/edu-bridge-sub000/internal/handlers"
	thread_handler "github.com/benedekkincses/edu-bridge-sub000/internal/handlers/thread-handler"
	thread_service "github.com/benedekkincses/edu-bridge-sub000/internal/use-case/thread-case"
	"github.com/benedekkincses/edu-bridge-sub000/state"
	"github.com/go-chi/chi/v5"
)

func ThreadRouter(r chi.Router, state *state.AppState, auth func(http.Handler) http.Handler) {
	service := thread_service.NewThreadService(
		state,
		time.Duration(config.Conf.POLL.IntervalMs)*time.Millisecond,
		time.Duration(config.Conf.POLL.MaxTimeoutMs)*time.Millisecond,
	)
	threadHandler := thread_handler.NewThreadHandler(state, service)
	r.Group(func(protected chi.Router) {
		protected.Use(auth)
		protected.Get("/api/threads", handlers.WrapHandler(threadHandler.ListThreads))
		protected.Post("/api/threads", handlers.WrapHandler(threadHandler.CreateDirectThread))
		protected.Get("/api/threads/{threadId}/messages", handlers.WrapHandler(threadHandler.GetThreadMessages))
		protected.Post("/api/threads/{threadId}/messages", handlers.WrapHandler(threadHandler.SendMessage))
		protected.Get("/api/threads/{threadId}/poll", handlers.WrapHandler(threadHandler.PollNewMessages))
		protected.Post("/api/messages/{messageId}/read", handlers.WrapHandler(threadHandler.MarkMessageAsRead))
		protected.Post("/api/groups/{groupId}/thread", handlers.WrapHandler(threadHandler.CreateGroupThread))
		protected.Post("/api/classes/{classId}/thread", handlers.WrapHandler(threadHandler.CreateClassThread))
	})
}
