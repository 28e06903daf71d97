package routers

import (
	"net/http"

	"github.com/benedekkincses/edu-bridge-sub000/internal/handlers"
	news_handler "github.com/benedekkincses/edu-bridge-sub000/internal/handlers/news-handler"
	news_service "github.com/benedekkincses/edu-bridge-sub000/internal/use-case/news-case"
	"github.com/benedekkincses/edu-bridge-sub000/state"
	"github.com/go-chi/chi/v5"
)

func NewsRouter(r chi.Router, state *state.AppState, auth func(http.Handler) http.Handler) {
	newsHandler := news_handler.NewNewsHandler(state, news_service.NewNewsService(state))
	r.Group(func(protected chi.Router) {
		protected.Use(auth)
		protected.Get("/api/news", handlers.WrapHandler(newsHandler.ListNews))
		protected.Post("/api/news", handlers.WrapHandler(newsHandler.CreateNews))
		protected.Delete("/api/news/{newsId}", handlers.WrapHandler(newsHandler.DeleteNews))
		protected.Post("/api/news/{newsId}/like", handlers.WrapHandler(newsHandler.ToggleLike))
		protected.Post("/api/news/poll/{pollOptionId}/vote", handlers.WrapHandler(newsHandler.ToggleVote))
		protected.Get("/api/schools/{schoolId}/news/permissions", handlers.WrapHandler(newsHandler.SchoolNewsPermissions))
		protected.Get("/api/classes/{classId}/news/permissions", handlers.WrapHandler(newsHandler.ClassNewsPermissions))
	})
}
